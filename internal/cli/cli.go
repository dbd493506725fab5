// Package cli wires the studystream command tree. Each study tool gets
// one top-level command with verb subcommands; every leaf command opens
// the store, applies one mutation or render, and exits.
package cli

import (
	"database/sql"
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"

	"github.com/runnerr0/studystream/internal/config"
	"github.com/runnerr0/studystream/internal/storage"
)

// commands holds references to all leaf command structs for testing.
type commands struct {
	Dashboard *DashboardCommand

	FlashcardsCreate  *FlashcardsCreateCommand
	FlashcardsAdd     *FlashcardsAddCommand
	FlashcardsList    *FlashcardsListCommand
	FlashcardsShuffle *FlashcardsShuffleCommand
	FlashcardsReview  *FlashcardsReviewCommand

	NotesAdd    *NotesAddCommand
	NotesUpdate *NotesUpdateCommand
	NotesDelete *NotesDeleteCommand
	NotesSearch *NotesSearchCommand
	NotesList   *NotesListCommand

	TasksAdd    *TasksAddCommand
	TasksToggle *TasksToggleCommand
	TasksDelete *TasksDeleteCommand
	TasksClear  *TasksClearCommand
	TasksList   *TasksListCommand

	HabitsAdd    *HabitsAddCommand
	HabitsDelete *HabitsDeleteCommand
	HabitsToggle *HabitsToggleCommand
	HabitsList   *HabitsListCommand

	KanbanAdd    *KanbanAddCommand
	KanbanMove   *KanbanMoveCommand
	KanbanDelete *KanbanDeleteCommand
	KanbanList   *KanbanListCommand

	CalendarAdd    *CalendarAddCommand
	CalendarDelete *CalendarDeleteCommand
	CalendarList   *CalendarListCommand

	WritingSave   *WritingSaveCommand
	WritingShow   *WritingShowCommand
	WritingDelete *WritingDeleteCommand
	WritingList   *WritingListCommand

	PlannerCourseAdd    *PlannerCourseAddCommand
	PlannerCourseDelete *PlannerCourseDeleteCommand
	PlannerAssignAdd    *PlannerAssignAddCommand
	PlannerAssignDone   *PlannerAssignDoneCommand
	PlannerList         *PlannerListCommand

	JournalSave   *JournalSaveCommand
	JournalDelete *JournalDeleteCommand
	JournalList   *JournalListCommand

	LogAdd   *LogAddCommand
	LogList  *LogListCommand
	LogStats *LogStatsCommand

	Pomodoro *PomodoroCommand

	Grade *GradeCommand
	Blurt *BlurtCommand
	Quiz  *QuizCommand

	Export *ExportCommand
	Import *ImportCommand
	Purge  *PurgeCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "studystream"
	parser.LongDescription = "Local-first study suite: flashcards, notes, tasks, habits, kanban, calendar, writing, planner, journal, study log, and pomodoro."

	g := &globals
	cmds := &commands{
		Dashboard: &DashboardCommand{globals: g, version: version},

		FlashcardsCreate:  &FlashcardsCreateCommand{globals: g},
		FlashcardsAdd:     &FlashcardsAddCommand{globals: g},
		FlashcardsList:    &FlashcardsListCommand{globals: g},
		FlashcardsShuffle: &FlashcardsShuffleCommand{globals: g},
		FlashcardsReview:  &FlashcardsReviewCommand{globals: g},

		NotesAdd:    &NotesAddCommand{globals: g},
		NotesUpdate: &NotesUpdateCommand{globals: g},
		NotesDelete: &NotesDeleteCommand{globals: g},
		NotesSearch: &NotesSearchCommand{globals: g},
		NotesList:   &NotesListCommand{globals: g},

		TasksAdd:    &TasksAddCommand{globals: g},
		TasksToggle: &TasksToggleCommand{globals: g},
		TasksDelete: &TasksDeleteCommand{globals: g},
		TasksClear:  &TasksClearCommand{globals: g},
		TasksList:   &TasksListCommand{globals: g},

		HabitsAdd:    &HabitsAddCommand{globals: g},
		HabitsDelete: &HabitsDeleteCommand{globals: g},
		HabitsToggle: &HabitsToggleCommand{globals: g},
		HabitsList:   &HabitsListCommand{globals: g},

		KanbanAdd:    &KanbanAddCommand{globals: g},
		KanbanMove:   &KanbanMoveCommand{globals: g},
		KanbanDelete: &KanbanDeleteCommand{globals: g},
		KanbanList:   &KanbanListCommand{globals: g},

		CalendarAdd:    &CalendarAddCommand{globals: g},
		CalendarDelete: &CalendarDeleteCommand{globals: g},
		CalendarList:   &CalendarListCommand{globals: g},

		WritingSave:   &WritingSaveCommand{globals: g},
		WritingShow:   &WritingShowCommand{globals: g},
		WritingDelete: &WritingDeleteCommand{globals: g},
		WritingList:   &WritingListCommand{globals: g},

		PlannerCourseAdd:    &PlannerCourseAddCommand{globals: g},
		PlannerCourseDelete: &PlannerCourseDeleteCommand{globals: g},
		PlannerAssignAdd:    &PlannerAssignAddCommand{globals: g},
		PlannerAssignDone:   &PlannerAssignDoneCommand{globals: g},
		PlannerList:         &PlannerListCommand{globals: g},

		JournalSave:   &JournalSaveCommand{globals: g},
		JournalDelete: &JournalDeleteCommand{globals: g},
		JournalList:   &JournalListCommand{globals: g},

		LogAdd:   &LogAddCommand{globals: g},
		LogList:  &LogListCommand{globals: g},
		LogStats: &LogStatsCommand{globals: g},

		Pomodoro: &PomodoroCommand{globals: g},

		Grade: &GradeCommand{globals: g},
		Blurt: &BlurtCommand{globals: g},
		Quiz:  &QuizCommand{globals: g},

		Export: &ExportCommand{globals: g},
		Import: &ImportCommand{globals: g},
		Purge:  &PurgeCommand{globals: g},
	}

	parser.AddCommand("dashboard", "Show today's activity summary", "Show today's pomodoros, cards reviewed, completed tasks, streak, and focus list.", cmds.Dashboard)

	cards, _ := parser.AddCommand("cards", "Manage flashcard decks", "Create decks, add cards, shuffle, and log review sessions.", &struct{}{})
	cards.AddCommand("create", "Create a new deck", "Create a new flashcard deck.", cmds.FlashcardsCreate)
	cards.AddCommand("add", "Add a card to a deck", "Add a front/back card to an existing deck.", cmds.FlashcardsAdd)
	cards.AddCommand("list", "List decks and cards", "List all decks with their cards.", cmds.FlashcardsList)
	cards.AddCommand("shuffle", "Shuffle a deck", "Randomize the card order of a deck.", cmds.FlashcardsShuffle)
	cards.AddCommand("review", "Log reviewed cards", "Record cards reviewed today for the dashboard counter.", cmds.FlashcardsReview)

	notes, _ := parser.AddCommand("notes", "Manage notes", "Create, edit, delete, and search notes.", &struct{}{})
	notes.AddCommand("add", "Add a note", "Add a new note (newest first).", cmds.NotesAdd)
	notes.AddCommand("update", "Update a note", "Replace the note at an index.", cmds.NotesUpdate)
	notes.AddCommand("delete", "Delete a note", "Delete the note at an index.", cmds.NotesDelete)
	notes.AddCommand("search", "Search notes", "Case-insensitive search over titles and content.", cmds.NotesSearch)
	notes.AddCommand("list", "List notes", "List all notes, newest first.", cmds.NotesList)

	tasks, _ := parser.AddCommand("tasks", "Manage the checklist", "Add, toggle, and clear checklist tasks.", &struct{}{})
	tasks.AddCommand("add", "Add a task", "Append a task to the checklist.", cmds.TasksAdd)
	tasks.AddCommand("toggle", "Toggle a task", "Flip a task between done and not done.", cmds.TasksToggle)
	tasks.AddCommand("delete", "Delete a task", "Remove a task from the checklist.", cmds.TasksDelete)
	tasks.AddCommand("clear", "Clear completed tasks", "Remove every completed task.", cmds.TasksClear)
	tasks.AddCommand("list", "List tasks", "List tasks, optionally filtered by state.", cmds.TasksList)

	habits, _ := parser.AddCommand("habits", "Manage habits", "Track recurring habits and daily completions.", &struct{}{})
	habits.AddCommand("add", "Add a habit", "Create a habit to track.", cmds.HabitsAdd)
	habits.AddCommand("delete", "Delete a habit", "Remove a habit and its history.", cmds.HabitsDelete)
	habits.AddCommand("toggle", "Toggle a day's completion", "Mark or unmark a habit done for a day.", cmds.HabitsToggle)
	habits.AddCommand("list", "List habits", "List habits with completion counts.", cmds.HabitsList)

	kanban, _ := parser.AddCommand("kanban", "Manage the kanban board", "Move cards across todo, progress, review, and done.", &struct{}{})
	kanban.AddCommand("add", "Add a card", "Create a card in a lane.", cmds.KanbanAdd)
	kanban.AddCommand("move", "Move a card", "Move a card to another lane.", cmds.KanbanMove)
	kanban.AddCommand("delete", "Delete a card", "Remove a card from the board.", cmds.KanbanDelete)
	kanban.AddCommand("list", "List the board", "List cards, whole board or one lane.", cmds.KanbanList)

	calendar, _ := parser.AddCommand("calendar", "Manage calendar events", "Add and list dated events.", &struct{}{})
	calendar.AddCommand("add", "Add an event", "Add an event on a day, optionally with a time.", cmds.CalendarAdd)
	calendar.AddCommand("delete", "Delete an event", "Remove an event.", cmds.CalendarDelete)
	calendar.AddCommand("list", "List events", "List events for a day or all days.", cmds.CalendarList)

	writing, _ := parser.AddCommand("writing", "Manage writing documents", "Draft, save, and inspect writing with word stats.", &struct{}{})
	writing.AddCommand("save", "Save a document", "Save a new document or replace one at an index.", cmds.WritingSave)
	writing.AddCommand("show", "Show a document", "Print a document with its word stats.", cmds.WritingShow)
	writing.AddCommand("delete", "Delete a document", "Delete the document at an index.", cmds.WritingDelete)
	writing.AddCommand("list", "List documents", "List documents, newest first.", cmds.WritingList)

	planner, _ := parser.AddCommand("planner", "Manage courses and assignments", "Track courses and their assignments.", &struct{}{})
	planner.AddCommand("course-add", "Add a course", "Create a course.", cmds.PlannerCourseAdd)
	planner.AddCommand("course-delete", "Delete a course", "Delete a course (assignments keep their reference).", cmds.PlannerCourseDelete)
	planner.AddCommand("assign-add", "Add an assignment", "Create an assignment for a course.", cmds.PlannerAssignAdd)
	planner.AddCommand("assign-done", "Complete an assignment", "Mark an assignment completed.", cmds.PlannerAssignDone)
	planner.AddCommand("list", "List the planner", "List courses and assignments.", cmds.PlannerList)

	journal, _ := parser.AddCommand("journal", "Manage journal entries", "Write and revise dated journal entries.", &struct{}{})
	journal.AddCommand("save", "Save an entry", "Create a new entry or update one by id.", cmds.JournalSave)
	journal.AddCommand("delete", "Delete an entry", "Remove an entry by id.", cmds.JournalDelete)
	journal.AddCommand("list", "List entries", "List entries, newest first.", cmds.JournalList)

	logCmd, _ := parser.AddCommand("log", "Manage the study log", "Record study sessions and view weekly stats.", &struct{}{})
	logCmd.AddCommand("add", "Record a session", "Log a study session.", cmds.LogAdd)
	logCmd.AddCommand("list", "List sessions", "List study sessions, newest first.", cmds.LogList)
	logCmd.AddCommand("stats", "Weekly statistics", "Show totals and averages for the last seven days.", cmds.LogStats)

	parser.AddCommand("pomodoro", "Run a pomodoro session", "Run a work or break countdown; completed work sessions count toward the streak.", cmds.Pomodoro)

	parser.AddCommand("grade", "Grade a piece of writing", "Heuristic writing feedback: grammar, structure, clarity, vocabulary.", cmds.Grade)
	parser.AddCommand("blurt", "Score a recall session", "Compare notes against a from-memory recall and score the overlap.", cmds.Blurt)
	parser.AddCommand("quiz", "Generate practice questions", "Turn study material into fill-in, true/false, and short-answer questions.", cmds.Quiz)

	parser.AddCommand("export", "Export all data", "Write every module's data to a single JSON archive.", cmds.Export)
	parser.AddCommand("import", "Import an archive", "Restore module data from a JSON archive.", cmds.Import)
	parser.AddCommand("purge", "Delete ALL StudyStream data", "Delete ALL StudyStream data. Destructive operation with safety prompt.", cmds.Purge)

	return parser, &globals, cmds
}

// Run is the main entry point for the studystream CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("studystream %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}

// openFromGlobals resolves config and opens the configured store. Every
// leaf command funnels through here.
func openFromGlobals(globals *GlobalFlags) (*storage.SQLiteStore, *sql.DB, *config.Config, error) {
	cfg, err := loadConfig(globals)
	if err != nil {
		return nil, nil, nil, err
	}
	store, db, err := openDefaultStore(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return store, db, cfg, nil
}
