package controller

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/project-tracker/pkg/tracker"
	"github.com/rivo/tview"
)

// projectContent implements tview.TableContent over the project list, which
// is re-read before every render.
type projectContent struct {
	tview.TableContentReadOnly
	projects []tracker.Project
	names    map[int]string
}

// GetCell returns the cell at the given position or nil if no cell.
func (p *projectContent) GetCell(row, col int) *tview.TableCell {
	if row == 0 {
		headers := []string{"name", "manager", "progress", "tasks", "creator", "created"}
		if col < len(headers) {
			return tview.NewTableCell(headers[col]).SetExpansion(1).
				SetTextColor(tcell.ColorYellow).SetSelectable(false)
		}

		return nil
	}

	if row-1 >= len(p.projects) {
		return nil
	}

	project := &p.projects[row-1]

	switch col {
	case 0:
		return tview.NewTableCell(project.Name).SetExpansion(descTitleRatio).SetReference(project)
	case 1:
		return tview.NewTableCell(nameFor(p.names, project.ManagerID, unknownUser)).SetExpansion(1)
	case 2:
		return tview.NewTableCell(fmt.Sprintf("%d%%", tracker.Progress(project))).SetExpansion(1)
	case 3:
		return tview.NewTableCell(fmt.Sprintf("%d", len(project.Tasks))).SetExpansion(1)
	case 4:
		return tview.NewTableCell(project.CreatorName).SetExpansion(1).SetTextColor(tcell.ColorGreen)
	case 5:
		return tview.NewTableCell(project.CreatedAt).SetExpansion(1)
	}

	return nil
}

// GetRowCount returns the number of rows in the table.
func (p *projectContent) GetRowCount() int {
	return len(p.projects) + 1
}

// GetColumnCount returns the number of columns in the table.
func (p *projectContent) GetColumnCount() int {
	return 6
}

func (c *Controller) getProjectsGrid() *tview.Grid {
	c.projectContent = &projectContent{}

	c.projectsTable = tview.NewTable().SetBorders(false)
	c.projectsTable.SetContent(c.projectContent)
	c.projectsTable.SetSelectable(true, false)

	grid := tview.NewGrid().SetBorders(true).SetRows(7, 0)
	grid.AddItem(c.getHeader("projects", c.events[pageProjects]), 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.projectsTable, 1, 0, 1, 1, 0, 0, true)

	return grid
}

// renderProjects re-reads the projects and member names before drawing.
func (c *Controller) renderProjects() {
	projects, err := c.projects.List(c.ctx)
	if err != nil {
		c.showError(err)

		return
	}

	c.projectContent.projects = projects
	c.projectContent.names = c.userNames()

	if len(projects) > 0 {
		row, _ := c.projectsTable.GetSelection()
		if row < 1 || row > len(projects) {
			c.projectsTable.Select(1, 0).SetFixed(1, 0)
		}
	}
}

func (c *Controller) showProjects() {
	if !tracker.CanView(c.auth.Current()) {
		c.showLogin()

		return
	}

	c.clearFooter()
	c.renderProjects()
	c.switchTo(pageProjects)
	c.app.SetFocus(c.projectsTable)
}

// selectedProject returns the project on the selected row, or nil when the
// list is empty.
func (c *Controller) selectedProject() *tracker.Project {
	row, _ := c.projectsTable.GetSelection()

	if idx := row - 1; idx >= 0 && idx < len(c.projectContent.projects) {
		return &c.projectContent.projects[idx]
	}

	return nil
}

func (c *Controller) openSelectedProject() {
	project := c.selectedProject()
	if project == nil {
		return
	}

	c.showBoard(project.ID)
}

func (c *Controller) editSelectedProject() {
	project := c.selectedProject()
	if project == nil {
		return
	}

	if !tracker.CanEditProject(c.auth.Current(), project) {
		c.showDenied()

		return
	}

	c.showProjectForm(project)
}

func (c *Controller) deleteSelectedProject() {
	project := c.selectedProject()
	if project == nil {
		return
	}

	if !tracker.CanDeleteProject(c.auth.Current()) {
		c.showDenied()

		return
	}

	c.confirm("Deleting this project discards all of its tasks. Continue?", func() {
		if err := c.projects.Delete(c.ctx, project.ID); err != nil {
			c.showError(err)

			return
		}

		c.showProjects()
	})
}

// showProjectForm opens the add/edit form. A nil project means a new one;
// creating requires the admin role.
func (c *Controller) showProjectForm(project *tracker.Project) {
	if project == nil && !tracker.CanCreateProject(c.auth.Current()) {
		c.showDenied()

		return
	}

	users, err := c.users.List(c.ctx)
	if err != nil {
		c.showError(err)

		return
	}

	managerIDs := make([]int, len(users))
	managerNames := make([]string, len(users))

	managerIdx := 0

	for i, u := range users {
		managerIDs[i] = u.ID
		managerNames[i] = u.Name

		if project != nil && u.ID == project.ManagerID {
			managerIdx = i
		}
	}

	title := "New Project"
	name, description := "", ""

	if project != nil {
		title = "Edit Project"
		name, description = project.Name, project.Description
	}

	nameMax := 50
	descriptionMax := 500

	form := tview.NewForm().
		AddInputField("Name", name, nameMax, nil, nil).
		AddInputField("Description", description, descriptionMax, nil, nil).
		AddDropDown("Manager", managerNames, managerIdx, nil)

	form.AddButton("Save", func() {
		nameField, _ := form.GetFormItemByLabel("Name").(*tview.InputField)
		descField, _ := form.GetFormItemByLabel("Description").(*tview.InputField)
		managerField, _ := form.GetFormItemByLabel("Manager").(*tview.DropDown)

		managerID := 0
		if idx, _ := managerField.GetCurrentOption(); idx >= 0 && idx < len(managerIDs) {
			managerID = managerIDs[idx]
		}

		var saveErr error

		if project == nil {
			_, saveErr = c.projects.Create(c.ctx, nameField.GetText(), descField.GetText(), managerID)
		} else {
			saveErr = c.projects.Update(c.ctx, project.ID, nameField.GetText(), descField.GetText(), managerID)
		}

		if saveErr != nil {
			c.showError(saveErr)

			return
		}

		c.showProjects()
	})

	form.AddButton("Cancel", c.showProjects)
	form.SetCancelFunc(c.showProjects)

	c.showForm(pageProjectForm, title, form)
}

// showForm swaps in a freshly built form page; forms are rebuilt on every
// open so dropdown options track the directory.
func (c *Controller) showForm(page, title string, form *tview.Form) {
	header := tview.NewTextView().SetDynamicColors(true)
	header.SetText(fmt.Sprintf("[yellow]%s\n[orange]<Esc>[white] Cancel", title))

	grid := tview.NewGrid().SetBorders(true).SetRows(3, 0)
	grid.AddItem(header, 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(form, 1, 0, 1, 1, 0, 0, true)

	c.pages.RemovePage(page)
	c.pages.AddPage(page, grid, true, false)

	form.SetFocus(0)
	c.switchTo(page)
	c.app.SetFocus(form)
}
