package messages

// DispatchMsg carries a bridge event or scheduled callback onto the update
// loop, where it runs against the palette controller.
type DispatchMsg struct {
	Fn func()
}

// ClipboardMsg reports the outcome of copying a result path.
type ClipboardMsg struct {
	Path string
	Err  error
}

// ErrorMsg surfaces an engine failure in the status line. It arrives
// through the model's inbox.
type ErrorMsg struct {
	Err error
}
