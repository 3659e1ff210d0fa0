package controller

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/project-tracker/pkg/tracker"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

// Page names for the tview.Pages root.
const (
	pageLogin       = "login"
	pageDashboard   = "dashboard"
	pageProjects    = "projects"
	pageProjectForm = "projectForm"
	pageBoard       = "board"
	pageTaskForm    = "taskForm"
	pageTeam        = "team"
	pageMemberForm  = "memberForm"
	pageConfirm     = "confirm"
)

// unknownUser is displayed where a manager or assignee id no longer resolves
// to a member.
const unknownUser = "unknown"

const descTitleRatio = 2

// Controller mediates between the tracker components and the view. After
// every action it re-reads the affected data before rendering; the tracker
// never pushes updates.
type Controller struct {
	ctx      context.Context
	auth     *tracker.Auth
	users    *tracker.Directory
	projects *tracker.Repository

	app    *tview.Application
	pages  *tview.Pages
	layout *tview.Grid
	footer *tview.TextView

	confirm     Confirmer
	events      map[string]map[tcell.Key]KeyEvent
	currentPage string
	returnPage  string

	loginForm  *tview.Form
	loginError *tview.TextView

	dashboardView *tview.TextView

	projectsTable  *tview.Table
	projectContent *projectContent

	boardTitle       *tview.TextView
	boardTables      map[string]*tview.Table
	boardContents    map[string]*boardContent
	currentProjectID string
	boardColumn      int

	teamTable   *tview.Table
	teamContent *teamContent
}

// KeyEvent defines an event associated with a keypress.
type KeyEvent struct {
	Description string
	Action      func(*tcell.EventKey) *tcell.EventKey
}

// NewController creates a new Controller to run the app.
func NewController(
	ctx context.Context,
	auth *tracker.Auth,
	users *tracker.Directory,
	projects *tracker.Repository,
) (*Controller, error) {
	c := Controller{
		ctx:      ctx,
		auth:     auth,
		users:    users,
		projects: projects,
		app:      tview.NewApplication(),
		pages:    tview.NewPages(),
		footer:   tview.NewTextView().SetDynamicColors(true),
	}

	c.confirm = c.modalConfirm

	initKeys()
	c.initEvents()

	return &c, nil
}

// Go builds the pages, restores any persisted session, and runs the app.
func (c *Controller) Go() {
	c.initPages()

	c.layout = tview.NewGrid().SetRows(0, 1)
	c.layout.AddItem(c.pages, 0, 0, 1, 1, 0, 0, true)
	c.layout.AddItem(c.footer, 1, 0, 1, 1, 0, 0, false)

	session, err := c.auth.Restore(c.ctx)
	if err != nil {
		log.Warn().Err(err).Msg("error restoring the session; starting logged out")
	}

	if session != nil {
		c.showDashboard()
	} else {
		c.showLogin()
	}

	c.app.SetInputCapture(c.handleKeys)

	if err := c.app.SetRoot(c.layout, true).SetFocus(c.layout).Run(); err != nil {
		panic(err)
	}
}

func (c *Controller) initPages() {
	c.pages.AddPage(pageLogin, c.getLoginGrid(), true, false)
	c.pages.AddPage(pageDashboard, c.getDashboardGrid(), true, false)
	c.pages.AddPage(pageProjects, c.getProjectsGrid(), true, false)
	c.pages.AddPage(pageBoard, c.getBoardGrid(), true, false)
	c.pages.AddPage(pageTeam, c.getTeamGrid(), true, false)
}

func (c *Controller) switchTo(page string) {
	c.currentPage = page
	c.pages.SwitchToPage(page)
}

func (c *Controller) handleKeys(evt *tcell.EventKey) *tcell.EventKey {
	events, ok := c.events[c.currentPage]
	if !ok {
		return evt
	}

	if k, ok := events[AsKey(evt)]; ok {
		return k.Action(evt)
	}

	return evt
}

// getHeader returns the header shown at the top of each page: the page title
// followed by three columns of keyboard shortcuts. The first column holds
// misc shortcuts, the second "Show" shortcuts, and the third the rest, each
// sorted alphabetically.
func (c *Controller) getHeader(title string, events map[tcell.Key]KeyEvent) *tview.Table {
	table := tview.NewTable().SetBorders(false).SetSelectable(false, false)

	row := 0
	table.SetCell(row, 0, tview.NewTableCell(fmt.Sprintf("[yellow]%s", title)))
	row++

	shortcuts := map[int][]string{
		0: {},
		1: {},
		2: {},
	}

	for key, event := range events {
		text := fmt.Sprintf("[orange]<%s>[white] %s", tcell.KeyNames[key], event.Description)

		switch event.Description[:4] {
		case "Show":
			shortcuts[1] = append(shortcuts[1], text)
		case "New ", "Edit", "Dele", "Add ", "Adva":
			shortcuts[2] = append(shortcuts[2], text)
		default:
			shortcuts[0] = append(shortcuts[0], text)
		}
	}

	for col := 0; col < 3; col++ {
		sort.Strings(shortcuts[col])
	}

	for row-1 < len(shortcuts[0]) || row-1 < len(shortcuts[1]) || row-1 < len(shortcuts[2]) {
		for col := 0; col < 3; col++ {
			if row-1 < len(shortcuts[col]) {
				table.SetCell(row, col, tview.NewTableCell(shortcuts[col][row-1]).SetExpansion(1))
			}
		}

		row++
	}

	return table
}

// userNames returns a lookup from member id to display name for rendering
// manager and assignee references. Dangling ids simply miss the map.
func (c *Controller) userNames() map[int]string {
	names := map[int]string{}

	users, err := c.users.List(c.ctx)
	if err != nil {
		log.Warn().Err(err).Msg("error listing users for display")

		return names
	}

	for _, u := range users {
		names[u.ID] = u.Name
	}

	return names
}

func nameFor(names map[int]string, id int, fallback string) string {
	if name, ok := names[id]; ok {
		return name
	}

	return fallback
}

// showError surfaces a failed action in the footer and logs it. Validation
// and authorization failures carry their own message; anything else gets a
// generic one.
func (c *Controller) showError(err error) {
	log.Warn().Err(err).Str("page", c.currentPage).Msg("action failed")

	msg := "something went wrong; see the log for details"

	var verr *tracker.ValidationError

	switch {
	case errors.As(err, &verr):
		msg = verr.Msg
	case errors.Is(err, tracker.ErrForbidden),
		errors.Is(err, tracker.ErrNotFound),
		errors.Is(err, tracker.ErrInvalidCredentials):
		msg = err.Error()
	}

	c.footer.SetText(fmt.Sprintf("[red]%s", msg))
}

func (c *Controller) showDenied() {
	c.footer.SetText("[red]access denied")
}

func (c *Controller) clearFooter() {
	c.footer.SetText("")
}
