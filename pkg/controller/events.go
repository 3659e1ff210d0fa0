package controller

import (
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"
)

func (c *Controller) initEvents() {
	c.events = map[string]map[tcell.Key]KeyEvent{
		pageDashboard: {},
		pageProjects:  {},
		pageBoard:     {},
		pageTeam:      {},
	}

	for _, page := range []string{pageDashboard, pageProjects, pageBoard, pageTeam} {
		c.initNavEvents(c.events[page])
	}

	c.initProjectEvents(c.events[pageProjects])
	c.initBoardEvents(c.events[pageBoard])
	c.initTeamEvents(c.events[pageTeam])
}

func (c *Controller) getExitAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		c.app.Stop()

		log.Info().Msg("terminating application")

		os.Exit(0)

		return key
	}
}

func (c *Controller) initNavEvents(events map[tcell.Key]KeyEvent) {
	events[KeyShiftD] = KeyEvent{
		Description: "Show Dashboard",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.showDashboard()

			return key
		},
	}

	events[KeyShiftP] = KeyEvent{
		Description: "Show Projects",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.showProjects()

			return key
		},
	}

	events[KeyShiftT] = KeyEvent{
		Description: "Show Team",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.showTeam()

			return key
		},
	}

	events[KeyShiftL] = KeyEvent{
		Description: "Logout",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.logout()

			return key
		},
	}

	events[KeyQ] = KeyEvent{
		Description: "Exit",
		Action:      c.getExitAction(),
	}
}

func (c *Controller) initProjectEvents(events map[tcell.Key]KeyEvent) {
	events[tcell.KeyEnter] = KeyEvent{
		Description: "Open Board",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.openSelectedProject()

			return nil
		},
	}

	events[KeyN] = KeyEvent{
		Description: "New Project",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.showProjectForm(nil)

			return key
		},
	}

	events[KeyE] = KeyEvent{
		Description: "Edit Project",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.editSelectedProject()

			return key
		},
	}

	events[KeyX] = KeyEvent{
		Description: "Delete Project",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.deleteSelectedProject()

			return key
		},
	}
}

func (c *Controller) initBoardEvents(events map[tcell.Key]KeyEvent) {
	events[tcell.KeyLeft] = KeyEvent{
		Description: "Previous Column",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.moveColumn(-1)

			return nil
		},
	}

	events[tcell.KeyRight] = KeyEvent{
		Description: "Next Column",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.moveColumn(1)

			return nil
		},
	}

	events[KeyA] = KeyEvent{
		Description: "Add Task",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.showTaskForm()

			return key
		},
	}

	events[KeyS] = KeyEvent{
		Description: "Advance Task",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.advanceSelectedTask()

			return key
		},
	}

	events[KeyX] = KeyEvent{
		Description: "Delete Task",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.deleteSelectedTask()

			return key
		},
	}

	events[tcell.KeyEscape] = KeyEvent{
		Description: "Show Projects",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.showProjects()

			return nil
		},
	}
}

func (c *Controller) initTeamEvents(events map[tcell.Key]KeyEvent) {
	events[KeyN] = KeyEvent{
		Description: "New Member",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.showMemberForm(nil)

			return key
		},
	}

	events[KeyE] = KeyEvent{
		Description: "Edit Member",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.editSelectedMember()

			return key
		},
	}

	events[KeyX] = KeyEvent{
		Description: "Delete Member",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.deleteSelectedMember()

			return key
		},
	}
}
