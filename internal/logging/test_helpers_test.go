package logging

// fakeCapabilities is a terminal.Capabilities with fixed answers.
type fakeCapabilities struct {
	interactive bool
	color       bool
}

func (f fakeCapabilities) IsInteractive() bool { return f.interactive }
func (f fakeCapabilities) SupportsColor() bool { return f.color }
