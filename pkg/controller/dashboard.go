package controller

import (
	"fmt"

	"github.com/matt-steen/project-tracker/pkg/tracker"
	"github.com/rivo/tview"
)

func (c *Controller) getDashboardGrid() *tview.Grid {
	c.dashboardView = tview.NewTextView().SetDynamicColors(true)
	c.dashboardView.SetScrollable(false)

	grid := tview.NewGrid().SetBorders(true).SetRows(7, 0)
	grid.AddItem(c.getHeader("dashboard", c.events[pageDashboard]), 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.dashboardView, 1, 0, 1, 1, 0, 0, true)

	return grid
}

// renderDashboard re-reads the KPIs and the session before drawing.
func (c *Controller) renderDashboard() {
	stats, err := c.projects.Stats(c.ctx)
	if err != nil {
		c.showError(err)

		return
	}

	session := c.auth.Current()

	who := ""
	if session != nil {
		who = fmt.Sprintf("logged in as [yellow]%s[white] (%s)\n\n", session.Name, session.Role)
	}

	c.dashboardView.SetText(fmt.Sprintf(
		"%sprojects:        [yellow]%d[white]\n"+
			"active tasks:    [yellow]%d[white]\n"+
			"completed tasks: [yellow]%d[white]\n"+
			"avg progress:    [yellow]%d%%[white]",
		who, stats.Projects, stats.ActiveTasks, stats.CompletedTasks, stats.AverageProgress,
	))
}

func (c *Controller) showDashboard() {
	if !tracker.CanView(c.auth.Current()) {
		c.showLogin()

		return
	}

	c.clearFooter()
	c.renderDashboard()
	c.switchTo(pageDashboard)
	c.app.SetFocus(c.pages)
}
