package tui

// statusExpiredMsg asks for a redraw once a status message has aged out.
type statusExpiredMsg struct{}

// clipboardFallbackMsg carries text the system clipboard refused, to be
// sent to the terminal over OSC 52 instead.
type clipboardFallbackMsg struct{ text string }
