package panels

import "github.com/wcpan/ddltop/internal/batch"

// CloseModalMsg signals that the open modal should be closed.
type CloseModalMsg struct{}

// ClearFlashMsg signals the status bar flash should be cleared.
type ClearFlashMsg struct{}

// SearchSubmitMsg is emitted when Enter is pressed in the search box.
type SearchSubmitMsg struct {
	Pattern string
}

// ConfirmResultMsg carries the answer of a confirmation dialog.
type ConfirmResultMsg struct {
	Action    batch.Action
	Confirmed bool
}

// YankMsg asks the app to copy Text to the clipboard.
type YankMsg struct {
	Text string
	What string
}
