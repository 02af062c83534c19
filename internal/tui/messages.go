package tui

// FileUpdateMsg updates a single file row's fields by column name.
type FileUpdateMsg struct {
	Key    string
	Fields map[string]string
}

// WorkDoneMsg signals that the batch has completed.
type WorkDoneMsg struct{}

// ErrorMsg signals a fatal error; the TUI should quit.
type ErrorMsg struct {
	Err error
}
