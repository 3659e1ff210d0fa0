package controller

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/project-tracker/pkg/tracker"
	"github.com/rivo/tview"
)

// unassignedUser is displayed when a task's assignee id no longer resolves.
const unassignedUser = "unassigned"

// boardContent implements tview.TableContent for one Kanban column: the
// tasks of the current project holding one particular status.
type boardContent struct {
	tview.TableContentReadOnly
	tasks []tracker.Task
	names map[int]string
}

// GetCell returns the cell at the given position or nil if no cell.
func (b *boardContent) GetCell(row, col int) *tview.TableCell {
	if row == 0 {
		switch col {
		case 0:
			return tview.NewTableCell("task").SetExpansion(descTitleRatio).
				SetTextColor(tcell.ColorYellow).SetSelectable(false)
		case 1:
			return tview.NewTableCell("assignee").SetExpansion(1).
				SetTextColor(tcell.ColorYellow).SetSelectable(false)
		case 2:
			return tview.NewTableCell("dates").SetExpansion(1).
				SetTextColor(tcell.ColorYellow).SetSelectable(false)
		}

		return nil
	}

	if row-1 >= len(b.tasks) {
		return nil
	}

	task := &b.tasks[row-1]

	switch col {
	case 0:
		return tview.NewTableCell(task.Text).SetExpansion(descTitleRatio).SetReference(task)
	case 1:
		return tview.NewTableCell(nameFor(b.names, task.AssigneeID, unassignedUser)).
			SetExpansion(1).SetTextColor(tcell.ColorGreen)
	case 2:
		return tview.NewTableCell(fmt.Sprintf("%s / %s", task.StartDate, task.EndDate)).SetExpansion(1)
	}

	return nil
}

// GetRowCount returns the number of rows in the table.
func (b *boardContent) GetRowCount() int {
	return len(b.tasks) + 1
}

// GetColumnCount returns the number of columns in the table.
func (b *boardContent) GetColumnCount() int {
	return 3
}

func (c *Controller) getBoardGrid() *tview.Grid {
	c.boardTitle = tview.NewTextView().SetDynamicColors(true)
	c.boardTables = map[string]*tview.Table{}
	c.boardContents = map[string]*boardContent{}

	grid := tview.NewGrid().SetBorders(true).SetRows(7, 1, 0)
	grid.AddItem(c.getHeader("board", c.events[pageBoard]), 0, 0, 1, 4, 0, 0, false)
	grid.AddItem(c.boardTitle, 1, 0, 1, 4, 0, 0, false)

	for col, status := range tracker.Statuses() {
		content := &boardContent{}
		c.boardContents[status] = content

		table := tview.NewTable().SetBorders(false)
		table.SetContent(content)
		table.SetSelectable(true, false)

		// the column title names the status and, where one exists, the
		// action that <s> takes on its tasks
		title := tracker.StatusName(status)
		if action := tracker.StatusAction(status); action != "" {
			title = fmt.Sprintf("%s (s: %s)", title, action)
		}

		table.SetTitle(fmt.Sprintf(" %s ", title)).SetBorder(true)
		c.boardTables[status] = table

		grid.AddItem(table, 2, col, 1, 1, 0, 0, col == 0)
	}

	return grid
}

// renderBoard re-reads the current project and member names before drawing
// the four columns.
func (c *Controller) renderBoard() error {
	project, err := c.projects.FindByID(c.ctx, c.currentProjectID)
	if err != nil {
		return err
	}

	names := c.userNames()

	for _, status := range tracker.Statuses() {
		content := c.boardContents[status]
		content.names = names
		content.tasks = nil

		for _, task := range project.Tasks {
			if task.Status == status {
				content.tasks = append(content.tasks, task)
			}
		}
	}

	c.boardTitle.SetText(fmt.Sprintf(
		"[yellow]%s[white]  manager: %s  progress: %d%%",
		project.Name, nameFor(names, project.ManagerID, unknownUser), tracker.Progress(project),
	))

	return nil
}

func (c *Controller) showBoard(projectID string) {
	if !tracker.CanView(c.auth.Current()) {
		c.showLogin()

		return
	}

	c.currentProjectID = projectID

	if err := c.renderBoard(); err != nil {
		c.showError(err)

		return
	}

	c.clearFooter()
	c.switchTo(pageBoard)
	c.focusColumn(c.boardColumn)
}

func (c *Controller) focusColumn(col int) {
	statuses := tracker.Statuses()

	if col < 0 {
		col = 0
	}

	if col >= len(statuses) {
		col = len(statuses) - 1
	}

	c.boardColumn = col
	c.app.SetFocus(c.boardTables[statuses[col]])
}

func (c *Controller) moveColumn(delta int) {
	c.focusColumn(c.boardColumn + delta)
}

// selectedTask returns the task on the selected row of the focused column,
// or nil when the column is empty.
func (c *Controller) selectedTask() *tracker.Task {
	status := tracker.Statuses()[c.boardColumn]
	content := c.boardContents[status]

	row, _ := c.boardTables[status].GetSelection()

	if idx := row - 1; idx >= 0 && idx < len(content.tasks) {
		return &content.tasks[idx]
	}

	return nil
}

// advanceSelectedTask moves the selected task one step forward in the
// workflow. Done is terminal; nothing happens there.
func (c *Controller) advanceSelectedTask() {
	if !tracker.CanModifyTasks(c.auth.Current()) {
		c.showDenied()

		return
	}

	task := c.selectedTask()
	if task == nil {
		return
	}

	next, ok := tracker.NextStatus(task.Status)
	if !ok {
		return
	}

	if err := c.projects.AdvanceTask(c.ctx, c.currentProjectID, task.ID, next); err != nil {
		c.showError(err)

		return
	}

	if err := c.renderBoard(); err != nil {
		c.showError(err)
	}
}

func (c *Controller) deleteSelectedTask() {
	if !tracker.CanModifyTasks(c.auth.Current()) {
		c.showDenied()

		return
	}

	task := c.selectedTask()
	if task == nil {
		return
	}

	c.confirm("Delete this task?", func() {
		if err := c.projects.DeleteTask(c.ctx, c.currentProjectID, task.ID); err != nil {
			c.showError(err)

			return
		}

		if err := c.renderBoard(); err != nil {
			c.showError(err)
		}
	})
}

// showTaskForm opens the add-task form for the current project.
func (c *Controller) showTaskForm() {
	if !tracker.CanModifyTasks(c.auth.Current()) {
		c.showDenied()

		return
	}

	users, err := c.users.List(c.ctx)
	if err != nil {
		c.showError(err)

		return
	}

	assigneeIDs := make([]int, len(users))
	assigneeNames := make([]string, len(users))

	for i, u := range users {
		assigneeIDs[i] = u.ID
		assigneeNames[i] = u.Name
	}

	textMax := 100
	dateMax := 10

	form := tview.NewForm().
		AddInputField("Task", "", textMax, nil, nil).
		AddDropDown("Assignee", assigneeNames, -1, nil).
		AddInputField("Start date (YYYY-MM-DD)", "", dateMax, nil, nil).
		AddInputField("End date (YYYY-MM-DD)", "", dateMax, nil, nil)

	back := func() { c.showBoard(c.currentProjectID) }

	form.AddButton("Save", func() {
		textField, _ := form.GetFormItemByLabel("Task").(*tview.InputField)
		assigneeField, _ := form.GetFormItemByLabel("Assignee").(*tview.DropDown)
		startField, _ := form.GetFormItemByLabel("Start date (YYYY-MM-DD)").(*tview.InputField)
		endField, _ := form.GetFormItemByLabel("End date (YYYY-MM-DD)").(*tview.InputField)

		assigneeID := 0
		if idx, _ := assigneeField.GetCurrentOption(); idx >= 0 && idx < len(assigneeIDs) {
			assigneeID = assigneeIDs[idx]
		}

		_, err := c.projects.AddTask(
			c.ctx, c.currentProjectID, textField.GetText(), assigneeID, startField.GetText(), endField.GetText(),
		)
		if err != nil {
			c.showError(err)

			return
		}

		back()
	})

	form.AddButton("Cancel", back)
	form.SetCancelFunc(back)

	c.showForm(pageTaskForm, "Add Task", form)
}
