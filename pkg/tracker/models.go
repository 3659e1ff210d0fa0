package tracker

import "math"

// These constants refer to the task statuses supported by the app. A task
// walks them strictly in order: todo, in_progress, review, done.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusReview     = "review"
	StatusDone       = "done"
)

// These constants refer to the roles a user can hold.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// DateFormat is the calendar-date layout used for task start and end dates.
const DateFormat = "2006-01-02"

// CreatedAtFormat is the layout of the display-only project creation stamp.
const CreatedAtFormat = "2006-01-02 15:04:05"

// User is a team member. Passwords are stored in the clear; hardening the
// credential model is out of scope for this app.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Task is a unit of work owned by exactly one project. ProjectID is a
// back-reference and always equals the id of the project whose Tasks slice
// holds the task. AssigneeID may dangle after a member is deleted.
type Task struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	AssigneeID int    `json:"assigneeId"`
	ProjectID  string `json:"projectId"`
	Status     string `json:"status"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
}

// Project owns an ordered collection of tasks. CreatorName and CreatedAt are
// captured once at creation and are display-only. ManagerID may dangle after
// a member is deleted.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ManagerID   int    `json:"managerId"`
	Tasks       []Task `json:"tasks"`
	CreatorName string `json:"creatorName"`
	CreatedAt   string `json:"createdAt"`
}

// Statuses returns the task statuses in workflow order.
func Statuses() []string {
	return []string{StatusTodo, StatusInProgress, StatusReview, StatusDone}
}

// NextStatus returns the single status a task may advance to from the given
// one. The second return value is false for done (terminal) and for unknown
// statuses.
func NextStatus(status string) (string, bool) {
	switch status {
	case StatusTodo:
		return StatusInProgress, true
	case StatusInProgress:
		return StatusReview, true
	case StatusReview:
		return StatusDone, true
	}

	return "", false
}

// StatusAction returns the label of the action that advances a task out of
// the given status, or "" when no such action exists.
func StatusAction(status string) string {
	switch status {
	case StatusTodo:
		return "Start"
	case StatusInProgress:
		return "Finish"
	case StatusReview:
		return "Approve"
	}

	return ""
}

// StatusName returns the display name of a status.
func StatusName(status string) string {
	switch status {
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusReview:
		return "Review"
	case StatusDone:
		return "Done"
	}

	return status
}

// Progress returns the completion percentage of a project: 0 when it has no
// tasks, otherwise round(100 * done / total). It operates on plain data so it
// survives storage round-trips.
func Progress(project *Project) int {
	if len(project.Tasks) == 0 {
		return 0
	}

	done := 0

	for _, task := range project.Tasks {
		if task.Status == StatusDone {
			done++
		}
	}

	return int(math.Round(float64(done) / float64(len(project.Tasks)) * 100))
}
