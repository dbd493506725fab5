package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionFlag(t *testing.T) {
	output := captureOutput(t, func() {
		err := RunWithArgs("0.1.0-test", []string{"--version"})
		assert.NoError(t, err)
	})
	assert.Equal(t, "studystream 0.1.0-test", strings.TrimSpace(output))
}

func TestAllTopLevelCommandsRegistered(t *testing.T) {
	parser, _, _ := buildParser("test")

	for _, name := range []string{
		"dashboard", "cards", "notes", "tasks", "habits", "kanban",
		"calendar", "writing", "planner", "journal", "log",
		"pomodoro", "grade", "blurt", "quiz",
		"export", "import", "purge",
	} {
		assert.NotNil(t, parser.Find(name), "command %q must be registered", name)
	}
}

func TestModuleVerbsRegistered(t *testing.T) {
	parser, _, _ := buildParser("test")

	verbs := map[string][]string{
		"cards":    {"create", "add", "list", "shuffle", "review"},
		"notes":    {"add", "update", "delete", "search", "list"},
		"tasks":    {"add", "toggle", "delete", "clear", "list"},
		"habits":   {"add", "delete", "toggle", "list"},
		"kanban":   {"add", "move", "delete", "list"},
		"calendar": {"add", "delete", "list"},
		"writing":  {"save", "show", "delete", "list"},
		"planner":  {"course-add", "course-delete", "assign-add", "assign-done", "list"},
		"journal":  {"save", "delete", "list"},
		"log":      {"add", "list", "stats"},
	}
	for module, subs := range verbs {
		parent := parser.Find(module)
		require.NotNil(t, parent, "command %q must be registered", module)
		for _, sub := range subs {
			assert.NotNil(t, parent.Find(sub), "%s %s must be registered", module, sub)
		}
	}
}

func TestUnknownCommandErrors(t *testing.T) {
	parser, _, _ := buildParser("test")
	_, err := parser.ParseArgs([]string{"definitely-not-a-command"})
	require.Error(t, err)
}

func TestPurgeRequiresAllFlag(t *testing.T) {
	cmd := &PurgeCommand{globals: &GlobalFlags{}}
	err := cmd.Execute(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--all")
}
