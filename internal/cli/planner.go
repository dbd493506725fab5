package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/runnerr0/studystream/internal/storage"
	"github.com/runnerr0/studystream/internal/study"
)

// PlannerCourseAddCommand — create a course.
type PlannerCourseAddCommand struct {
	Name    string `long:"name" description:"Course name (required)"`
	Teacher string `long:"teacher" description:"Teacher name"`
	Color   string `long:"color" description:"Display color" default:"#6c5ce7"`

	globals *GlobalFlags
}

// PlannerCourseDeleteCommand — delete a course; its assignments keep
// their reference.
type PlannerCourseDeleteCommand struct {
	ID int64 `long:"id" description:"Course id (required)"`

	globals *GlobalFlags
}

// PlannerAssignAddCommand — create an assignment for a course.
type PlannerAssignAddCommand struct {
	Course int64  `long:"course" description:"Course id (required)"`
	Title  string `long:"title" description:"Assignment title (required)"`
	Due    string `long:"due" description:"Due date"`

	globals *GlobalFlags
}

// PlannerAssignDoneCommand — mark an assignment completed.
type PlannerAssignDoneCommand struct {
	ID int64 `long:"id" description:"Assignment id (required)"`

	globals *GlobalFlags
}

// PlannerListCommand — list courses and assignments.
type PlannerListCommand struct {
	globals *GlobalFlags
}

func loadPlanner(ctx context.Context, store storage.Store) (*study.Planner, error) {
	p := study.NewPlanner(store)
	if err := p.Load(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *PlannerCourseAddCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store, time.Now())
}

func (c *PlannerCourseAddCommand) executeWithStore(store storage.Store, now time.Time) error {
	ctx := context.Background()
	p, err := loadPlanner(ctx, store)
	if err != nil {
		return err
	}
	course, err := p.AddCourse(ctx, c.Name, c.Teacher, c.Color, now)
	if err != nil {
		return err
	}
	if c.globals != nil && c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(course)
	}
	fmt.Printf("Added course %d: %s\n", course.ID, course.Name)
	return nil
}

func (c *PlannerCourseDeleteCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store)
}

func (c *PlannerCourseDeleteCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	p, err := loadPlanner(ctx, store)
	if err != nil {
		return err
	}
	if err := p.DeleteCourse(ctx, c.ID); err != nil {
		return err
	}
	if c.globals != nil && c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{"deleted": c.ID})
	}
	fmt.Printf("Deleted course %d\n", c.ID)
	return nil
}

func (c *PlannerAssignAddCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store, time.Now())
}

func (c *PlannerAssignAddCommand) executeWithStore(store storage.Store, now time.Time) error {
	ctx := context.Background()
	p, err := loadPlanner(ctx, store)
	if err != nil {
		return err
	}
	a, err := p.AddAssignment(ctx, c.Course, c.Title, c.Due, now)
	if err != nil {
		return err
	}
	if c.globals != nil && c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(a)
	}
	fmt.Printf("Added assignment %d: %s (%s)\n", a.ID, a.Title, p.CourseName(a.CourseID))
	return nil
}

func (c *PlannerAssignDoneCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store)
}

func (c *PlannerAssignDoneCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	p, err := loadPlanner(ctx, store)
	if err != nil {
		return err
	}
	if err := p.CompleteAssignment(ctx, c.ID); err != nil {
		return err
	}
	if c.globals != nil && c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{"completed": c.ID})
	}
	fmt.Printf("Completed assignment %d\n", c.ID)
	return nil
}

func (c *PlannerListCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store)
}

func (c *PlannerListCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	p, err := loadPlanner(ctx, store)
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"courses":     p.Courses(),
			"assignments": p.Assignments(),
		})
	}

	courses := p.Courses()
	if len(courses) == 0 {
		fmt.Println("No courses yet.")
	}
	for _, course := range courses {
		fmt.Printf("%d  %s", course.ID, course.Name)
		if course.Teacher != "" {
			fmt.Printf(" (%s)", course.Teacher)
		}
		fmt.Println()
	}

	assignments := p.Assignments()
	if len(assignments) > 0 {
		fmt.Println()
		fmt.Println("Assignments:")
		for _, a := range assignments {
			mark := " "
			if a.Completed {
				mark = "x"
			}
			fmt.Printf("  [%s] %d  %s (%s", mark, a.ID, a.Title, p.CourseName(a.CourseID))
			if a.Due != "" {
				fmt.Printf(", due %s", a.Due)
			}
			fmt.Println(")")
		}
	}
	return nil
}
