package study

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/runnerr0/studystream/internal/collection"
	"github.com/runnerr0/studystream/internal/storage"
)

// Course is a class on the planner.
type Course struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Teacher string `json:"teacher"`
	Color   string `json:"color"`
}

// Assignment references its course by id value only. Deleting a course
// does not cascade; a dangling CourseID renders as "Unknown".
type Assignment struct {
	ID        int64  `json:"id"`
	CourseID  int64  `json:"courseId"`
	Title     string `json:"title"`
	Due       string `json:"due"`
	Completed bool   `json:"completed"`
}

// plannerModel is the single stored document holding both lists.
type plannerModel struct {
	Courses     []Course     `json:"courses"`
	Assignments []Assignment `json:"assignments"`
}

// Planner owns the course and assignment lists, persisted together
// under one key.
type Planner struct {
	data *collection.Collection[plannerModel]
}

func NewPlanner(store storage.Store) *Planner {
	return &Planner{data: collection.New[plannerModel](store, KeyPlanner)}
}

func (p *Planner) Load(ctx context.Context) error {
	return p.data.Load(ctx)
}

// AddCourse creates a course.
func (p *Planner) AddCourse(ctx context.Context, name, teacher, color string, now time.Time) (Course, error) {
	if strings.TrimSpace(name) == "" {
		return Course{}, fmt.Errorf("course name is required")
	}
	course := Course{ID: NewID(now), Name: name, Teacher: teacher, Color: color}
	err := p.data.Mutate(ctx, func(m *plannerModel) error {
		m.Courses = append(m.Courses, course)
		return nil
	})
	return course, err
}

// DeleteCourse removes a course. Assignments referencing it are left in
// place with a dangling CourseID.
func (p *Planner) DeleteCourse(ctx context.Context, id int64) error {
	return p.data.Mutate(ctx, func(m *plannerModel) error {
		for i := range m.Courses {
			if m.Courses[i].ID == id {
				m.Courses = append(m.Courses[:i], m.Courses[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("course %d not found", id)
	})
}

// AddAssignment creates an assignment for a course. The course must
// exist at creation time; it may be deleted afterwards.
func (p *Planner) AddAssignment(ctx context.Context, courseID int64, title, due string, now time.Time) (Assignment, error) {
	if strings.TrimSpace(title) == "" {
		return Assignment{}, fmt.Errorf("assignment title is required")
	}
	a := Assignment{ID: NewID(now), CourseID: courseID, Title: title, Due: due}
	err := p.data.Mutate(ctx, func(m *plannerModel) error {
		found := false
		for _, c := range m.Courses {
			if c.ID == courseID {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("course %d not found", courseID)
		}
		m.Assignments = append(m.Assignments, a)
		return nil
	})
	return a, err
}

// CompleteAssignment marks an assignment done.
func (p *Planner) CompleteAssignment(ctx context.Context, id int64) error {
	return p.data.Mutate(ctx, func(m *plannerModel) error {
		for i := range m.Assignments {
			if m.Assignments[i].ID == id {
				m.Assignments[i].Completed = true
				return nil
			}
		}
		return fmt.Errorf("assignment %d not found", id)
	})
}

// Courses returns all courses in creation order.
func (p *Planner) Courses() []Course {
	return p.data.View().Courses
}

// Assignments returns all assignments in creation order.
func (p *Planner) Assignments() []Assignment {
	return p.data.View().Assignments
}

// CourseName resolves a course id for display. A dangling reference
// never fails the render; it shows as "Unknown".
func (p *Planner) CourseName(id int64) string {
	for _, c := range p.data.View().Courses {
		if c.ID == id {
			return c.Name
		}
	}
	return "Unknown"
}
