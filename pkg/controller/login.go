package controller

import (
	"errors"

	"github.com/matt-steen/project-tracker/pkg/tracker"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

func (c *Controller) getLoginGrid() *tview.Grid {
	header := tview.NewTextView().SetDynamicColors(true)
	header.SetText("[yellow]project tracker\n[white]log in to continue")

	c.loginError = tview.NewTextView().SetDynamicColors(true)

	fieldWidth := 40

	c.loginForm = tview.NewForm().
		AddInputField("Username", "", fieldWidth, nil, nil).
		AddPasswordField("Password", "", fieldWidth, '*', nil)

	c.loginForm.AddButton("Login", c.doLogin)

	grid := tview.NewGrid().SetBorders(true).SetRows(2, 0, 1)
	grid.AddItem(header, 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.loginForm, 1, 0, 1, 1, 0, 0, true)
	grid.AddItem(c.loginError, 2, 0, 1, 1, 0, 0, false)

	return grid
}

func (c *Controller) doLogin() {
	usernameField, _ := c.loginForm.GetFormItemByLabel("Username").(*tview.InputField)
	passwordField, _ := c.loginForm.GetFormItemByLabel("Password").(*tview.InputField)

	_, err := c.auth.Login(c.ctx, usernameField.GetText(), passwordField.GetText())
	if err != nil {
		if errors.Is(err, tracker.ErrInvalidCredentials) {
			c.loginError.SetText("[red]incorrect username or password")
		} else {
			log.Err(err).Msg("error during login")
			c.loginError.SetText("[red]something went wrong; see the log for details")
		}

		return
	}

	usernameField.SetText("")
	passwordField.SetText("")
	c.loginError.SetText("")

	c.showDashboard()
}

func (c *Controller) showLogin() {
	c.switchTo(pageLogin)
	c.clearFooter()
	c.loginForm.SetFocus(0)
	c.app.SetFocus(c.loginForm)
}

func (c *Controller) logout() {
	c.confirm("Do you really want to log out?", func() {
		if err := c.auth.Logout(c.ctx); err != nil {
			c.showError(err)

			return
		}

		c.showLogin()
	})
}
