package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/matt-steen/project-tracker/pkg/store"
	"github.com/rs/zerolog/log"
)

// projectsKey is the record holding the project document.
const projectsKey = "projects"

// systemCreator is recorded as the creator when a project is created with no
// active session.
const systemCreator = "System"

// projectDocument is the serialized layout of the projects record.
type projectDocument struct {
	Projects []Project `json:"projects"`
}

// Repository owns the collection of projects and their tasks. Every
// mutation reads the full document, changes it in memory, and writes it back
// wholesale; a failed mutation leaves the record untouched.
type Repository struct {
	store *store.Store
	auth  *Auth
	now   func() time.Time
}

// NewRepository creates a Repository over the given store. The auth is
// consulted only to stamp the creator on new projects.
func NewRepository(s *store.Store, auth *Auth) *Repository {
	return &Repository{store: s, auth: auth, now: time.Now}
}

func (r *Repository) load(ctx context.Context) (*projectDocument, error) {
	raw, ok, err := r.store.Get(ctx, projectsKey)
	if err != nil {
		return nil, err
	}

	doc := projectDocument{Projects: []Project{}}

	if ok {
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("error decoding projects record: %w", err)
		}
	}

	return &doc, nil
}

func (r *Repository) save(ctx context.Context, doc *projectDocument) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("error encoding projects record: %w", err)
	}

	return r.store.Set(ctx, projectsKey, raw)
}

// List returns all projects in creation order.
func (r *Repository) List(ctx context.Context) ([]Project, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	return doc.Projects, nil
}

// FindByID returns the project with the given id, or ErrNotFound.
func (r *Repository) FindByID(ctx context.Context, id string) (*Project, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range doc.Projects {
		if doc.Projects[i].ID == id {
			return &doc.Projects[i], nil
		}
	}

	return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
}

// Create adds a new project with a fresh id. The creator name and creation
// time are captured once from the current session, or from the system
// sentinel when nobody is logged in.
func (r *Repository) Create(ctx context.Context, name, description string, managerID int) (*Project, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	creator := systemCreator
	if s := r.auth.Current(); s != nil {
		creator = s.Name
	}

	project := Project{
		ID:          r.newID(doc),
		Name:        name,
		Description: description,
		ManagerID:   managerID,
		Tasks:       []Task{},
		CreatorName: creator,
		CreatedAt:   r.now().Format(CreatedAtFormat),
	}

	doc.Projects = append(doc.Projects, project)

	if err := r.save(ctx, doc); err != nil {
		return nil, err
	}

	log.Info().Str("id", project.ID).Str("name", project.Name).Msg("created project")

	return &project, nil
}

// newID returns a fresh project id guaranteed not to collide with any
// existing one at the time of creation.
func (r *Repository) newID(doc *projectDocument) string {
	for {
		id := uuid.NewString()

		exists := false

		for i := range doc.Projects {
			if doc.Projects[i].ID == id {
				exists = true

				break
			}
		}

		if !exists {
			return id
		}
	}
}

// Update overwrites the three mutable project fields. The id, tasks,
// creator, and creation time are untouched.
func (r *Repository) Update(ctx context.Context, id, name, description string, managerID int) error {
	doc, err := r.load(ctx)
	if err != nil {
		return err
	}

	for i := range doc.Projects {
		if doc.Projects[i].ID == id {
			doc.Projects[i].Name = name
			doc.Projects[i].Description = description
			doc.Projects[i].ManagerID = managerID

			return r.save(ctx, doc)
		}
	}

	return fmt.Errorf("project %s: %w", id, ErrNotFound)
}

// Delete removes the project and discards all of its tasks. Confirmation is
// the caller's responsibility.
func (r *Repository) Delete(ctx context.Context, id string) error {
	doc, err := r.load(ctx)
	if err != nil {
		return err
	}

	kept := make([]Project, 0, len(doc.Projects))

	for _, p := range doc.Projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}

	doc.Projects = kept

	if err := r.save(ctx, doc); err != nil {
		return err
	}

	log.Info().Str("id", id).Msg("deleted project")

	return nil
}

// AddTask appends a new task to the project with status todo. Text, a valid
// assignee, and parseable start/end dates are all required, and the start
// date may not fall after the end date.
func (r *Repository) AddTask(
	ctx context.Context, projectID, text string, assigneeID int, startDate, endDate string,
) (*Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, validationf("the task text is required")
	}

	if assigneeID <= 0 {
		return nil, validationf("the task must be assigned to a member")
	}

	start, err := time.Parse(DateFormat, startDate)
	if err != nil {
		return nil, validationf("invalid start date '%s'", startDate)
	}

	end, err := time.Parse(DateFormat, endDate)
	if err != nil {
		return nil, validationf("invalid end date '%s'", endDate)
	}

	if start.After(end) {
		return nil, validationf("the end date cannot come before the start date")
	}

	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range doc.Projects {
		if doc.Projects[i].ID != projectID {
			continue
		}

		task := Task{
			ID:         uuid.NewString(),
			Text:       text,
			AssigneeID: assigneeID,
			ProjectID:  projectID,
			Status:     StatusTodo,
			StartDate:  startDate,
			EndDate:    endDate,
		}

		doc.Projects[i].Tasks = append(doc.Projects[i].Tasks, task)

		if err := r.save(ctx, doc); err != nil {
			return nil, err
		}

		return &task, nil
	}

	return nil, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
}

// AdvanceTask sets the task's status to the given value. The one-step
// workflow rule lives in the calling surface, which only ever offers the
// single legal next status; the value is stored as given.
func (r *Repository) AdvanceTask(ctx context.Context, projectID, taskID, status string) error {
	doc, err := r.load(ctx)
	if err != nil {
		return err
	}

	for i := range doc.Projects {
		if doc.Projects[i].ID != projectID {
			continue
		}

		for j := range doc.Projects[i].Tasks {
			if doc.Projects[i].Tasks[j].ID == taskID {
				doc.Projects[i].Tasks[j].Status = status

				return r.save(ctx, doc)
			}
		}

		return fmt.Errorf("task %s: %w", taskID, ErrNotFound)
	}

	return fmt.Errorf("project %s: %w", projectID, ErrNotFound)
}

// DeleteTask removes the task from its project's sequence. Confirmation is
// the caller's responsibility.
func (r *Repository) DeleteTask(ctx context.Context, projectID, taskID string) error {
	doc, err := r.load(ctx)
	if err != nil {
		return err
	}

	for i := range doc.Projects {
		if doc.Projects[i].ID != projectID {
			continue
		}

		tasks := doc.Projects[i].Tasks
		kept := make([]Task, 0, len(tasks))

		for _, t := range tasks {
			if t.ID != taskID {
				kept = append(kept, t)
			}
		}

		doc.Projects[i].Tasks = kept

		return r.save(ctx, doc)
	}

	return fmt.Errorf("project %s: %w", projectID, ErrNotFound)
}

// Stats are the dashboard KPIs aggregated over all projects.
type Stats struct {
	Projects        int
	ActiveTasks     int
	CompletedTasks  int
	AverageProgress int
}

// Stats aggregates the dashboard numbers: project count, active and
// completed task counts, and the average progress across projects (0 when
// there are none).
func (r *Repository) Stats(ctx context.Context) (Stats, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{Projects: len(doc.Projects)}
	totalProgress := 0

	for i := range doc.Projects {
		for _, task := range doc.Projects[i].Tasks {
			if task.Status == StatusDone {
				stats.CompletedTasks++
			} else {
				stats.ActiveTasks++
			}
		}

		totalProgress += Progress(&doc.Projects[i])
	}

	if stats.Projects > 0 {
		stats.AverageProgress = int(float64(totalProgress)/float64(stats.Projects) + 0.5)
	}

	return stats, nil
}
