package controller

import "github.com/gdamore/tcell/v2"

// tcell only defines constants for non-printable keys, so printable
// keystrokes are given values in the rune range.
const (
	KeyA tcell.Key = iota + 97
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
)

// Defines the shifted char keystrokes.
const (
	KeyShiftA tcell.Key = iota + 65
	KeyShiftB
	KeyShiftC
	KeyShiftD
	KeyShiftE
	KeyShiftF
	KeyShiftG
	KeyShiftH
	KeyShiftI
	KeyShiftJ
	KeyShiftK
	KeyShiftL
	KeyShiftM
	KeyShiftN
	KeyShiftO
	KeyShiftP
	KeyShiftQ
	KeyShiftR
	KeyShiftS
	KeyShiftT
	KeyShiftU
	KeyShiftV
	KeyShiftW
	KeyShiftX
	KeyShiftY
	KeyShiftZ
)

// AsKey converts a rune-based event into a key usable in the event maps.
// Non-rune events pass through unchanged.
func AsKey(evt *tcell.EventKey) tcell.Key {
	if evt.Key() != tcell.KeyRune {
		return evt.Key()
	}

	return tcell.Key(evt.Rune())
}

// initKeys registers display names for the printable keys so the page
// headers can render their shortcuts.
func initKeys() {
	for k := KeyA; k <= KeyZ; k++ {
		tcell.KeyNames[k] = string(rune(k))
	}

	for k := KeyShiftA; k <= KeyShiftZ; k++ {
		tcell.KeyNames[k] = "Shift-" + string(rune(k))
	}
}
