package board

const (
	// MsgMissingFields is shown when the create form lacks a name or image.
	MsgMissingFields = "Please enter both name and image URL."
	// MsgFailure is shown for every failed request.
	MsgFailure = "Oops! Something went wrong. Please try again."
)

// Alerter surfaces a blocking message to the user. The front end decides
// what blocking means: a modal in the TUI, a stderr line in the CLI.
type Alerter interface {
	Alert(msg string)
}

// AlertFunc adapts a function to Alerter.
type AlertFunc func(msg string)

func (f AlertFunc) Alert(msg string) { f(msg) }
