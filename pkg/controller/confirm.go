package controller

import "github.com/rivo/tview"

// Confirmer gates a destructive action behind a yes/no prompt. The action
// runs only when the user confirms; declining is a no-op. Keeping this as an
// injected capability keeps the tracker headless.
type Confirmer func(message string, confirmed func())

// modalConfirm is the default Confirmer: a yes/no modal over the current
// page.
func (c *Controller) modalConfirm(message string, confirmed func()) {
	c.returnPage = c.currentPage

	modal := tview.NewModal().
		SetText(message).
		AddButtons([]string{"Yes", "No"}).
		SetDoneFunc(func(index int, label string) {
			c.pages.RemovePage(pageConfirm)
			c.currentPage = c.returnPage

			if label == "Yes" {
				confirmed()
			}
		})

	c.pages.AddPage(pageConfirm, modal, true, true)
	c.currentPage = pageConfirm
	c.app.SetFocus(modal)
}
