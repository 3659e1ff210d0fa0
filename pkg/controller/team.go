package controller

import (
	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/project-tracker/pkg/tracker"
	"github.com/rivo/tview"
)

// teamContent implements tview.TableContent over the member list.
type teamContent struct {
	tview.TableContentReadOnly
	users []tracker.User
}

// GetCell returns the cell at the given position or nil if no cell.
func (t *teamContent) GetCell(row, col int) *tview.TableCell {
	if row == 0 {
		switch col {
		case 0:
			return tview.NewTableCell("name").SetExpansion(1).
				SetTextColor(tcell.ColorYellow).SetSelectable(false)
		case 1:
			return tview.NewTableCell("username").SetExpansion(1).
				SetTextColor(tcell.ColorYellow).SetSelectable(false)
		case 2:
			return tview.NewTableCell("role").SetExpansion(1).
				SetTextColor(tcell.ColorYellow).SetSelectable(false)
		}

		return nil
	}

	if row-1 >= len(t.users) {
		return nil
	}

	user := &t.users[row-1]

	switch col {
	case 0:
		return tview.NewTableCell(user.Name).SetExpansion(1).SetReference(user)
	case 1:
		return tview.NewTableCell("@" + user.Username).SetExpansion(1)
	case 2:
		return tview.NewTableCell(user.Role).SetExpansion(1).SetTextColor(tcell.ColorGreen)
	}

	return nil
}

// GetRowCount returns the number of rows in the table.
func (t *teamContent) GetRowCount() int {
	return len(t.users) + 1
}

// GetColumnCount returns the number of columns in the table.
func (t *teamContent) GetColumnCount() int {
	return 3
}

func (c *Controller) getTeamGrid() *tview.Grid {
	c.teamContent = &teamContent{}

	c.teamTable = tview.NewTable().SetBorders(false)
	c.teamTable.SetContent(c.teamContent)
	c.teamTable.SetSelectable(true, false)

	grid := tview.NewGrid().SetBorders(true).SetRows(7, 0)
	grid.AddItem(c.getHeader("team", c.events[pageTeam]), 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.teamTable, 1, 0, 1, 1, 0, 0, true)

	return grid
}

func (c *Controller) renderTeam() {
	users, err := c.users.List(c.ctx)
	if err != nil {
		c.showError(err)

		return
	}

	c.teamContent.users = users

	if len(users) > 0 {
		row, _ := c.teamTable.GetSelection()
		if row < 1 || row > len(users) {
			c.teamTable.Select(1, 0).SetFixed(1, 0)
		}
	}
}

// showTeam opens team management; it is an admin-only view.
func (c *Controller) showTeam() {
	if !tracker.CanManageTeam(c.auth.Current()) {
		c.showDenied()

		return
	}

	c.clearFooter()
	c.renderTeam()
	c.switchTo(pageTeam)
	c.app.SetFocus(c.teamTable)
}

// selectedMember returns the user on the selected row, or nil.
func (c *Controller) selectedMember() *tracker.User {
	row, _ := c.teamTable.GetSelection()

	if idx := row - 1; idx >= 0 && idx < len(c.teamContent.users) {
		return &c.teamContent.users[idx]
	}

	return nil
}

func (c *Controller) editSelectedMember() {
	member := c.selectedMember()
	if member == nil {
		return
	}

	c.showMemberForm(member)
}

func (c *Controller) deleteSelectedMember() {
	member := c.selectedMember()
	if member == nil {
		return
	}

	session := c.auth.Current()

	if !tracker.CanDeleteUser(session, member.ID) {
		c.showDenied()

		return
	}

	c.confirm("Do you really want to delete this member?", func() {
		currentID := 0
		if session != nil {
			currentID = session.UserID
		}

		if err := c.users.Delete(c.ctx, member.ID, currentID); err != nil {
			c.showError(err)

			return
		}

		// projects and tasks referencing the member keep their ids and
		// render as unknown/unassigned from here on
		c.renderTeam()
	})
}

// showMemberForm opens the add/edit member form. A nil member means a new
// one. On edit, an empty password keeps the current one.
func (c *Controller) showMemberForm(member *tracker.User) {
	if !tracker.CanManageTeam(c.auth.Current()) {
		c.showDenied()

		return
	}

	roles := []string{tracker.RoleMember, tracker.RoleAdmin}

	title := "New Member"
	name, username := "", ""
	roleIdx := 0
	passwordLabel := "Password"

	if member != nil {
		title = "Edit Member"
		name, username = member.Name, member.Username
		passwordLabel = "Password (empty to keep)"

		if member.Role == tracker.RoleAdmin {
			roleIdx = 1
		}
	}

	fieldWidth := 40

	form := tview.NewForm().
		AddInputField("Name", name, fieldWidth, nil, nil).
		AddInputField("Username", username, fieldWidth, nil, nil).
		AddDropDown("Role", roles, roleIdx, nil).
		AddPasswordField(passwordLabel, "", fieldWidth, '*', nil)

	form.AddButton("Save", func() {
		nameField, _ := form.GetFormItemByLabel("Name").(*tview.InputField)
		usernameField, _ := form.GetFormItemByLabel("Username").(*tview.InputField)
		roleField, _ := form.GetFormItemByLabel("Role").(*tview.DropDown)
		passwordField, _ := form.GetFormItemByLabel(passwordLabel).(*tview.InputField)

		role := tracker.RoleMember
		if idx, _ := roleField.GetCurrentOption(); idx >= 0 {
			role = roles[idx]
		}

		var saveErr error

		if member == nil {
			_, saveErr = c.users.Create(
				c.ctx, nameField.GetText(), usernameField.GetText(), passwordField.GetText(), role,
			)
		} else {
			saveErr = c.users.Update(c.ctx, member.ID, tracker.UserUpdate{
				Name:     nameField.GetText(),
				Username: usernameField.GetText(),
				Role:     role,
				Password: passwordField.GetText(),
			})

			if saveErr == nil {
				// pick up name/role edits to one's own account
				saveErr = c.auth.Refresh(c.ctx)
			}
		}

		if saveErr != nil {
			c.showError(saveErr)

			return
		}

		c.showTeam()
	})

	back := c.showTeam

	form.AddButton("Cancel", back)
	form.SetCancelFunc(back)

	c.showForm(pageMemberForm, title, form)
}
