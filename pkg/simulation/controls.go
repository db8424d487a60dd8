package simulation

// Command is a discrete request coming from an input adapter.
type Command int

const (
	CommandNone Command = iota
	CommandQuit
	CommandToggleDebug
	CommandReset
)

func (c Command) String() string {
	switch c {
	case CommandQuit:
		return "quit"
	case CommandToggleDebug:
		return "toggle-debug"
	case CommandReset:
		return "reset"
	default:
		return "none"
	}
}

// Controls are the flags shared by the input adapter, the world and the renderer.
//   - ResetRequested is consumed by the next World.Step.
//   - DebugVisible is only read by the presentation layer.
//   - QuitRequested stops the driver loop once the current frame is drawn.
type Controls struct {
	ResetRequested bool
	DebugVisible   bool
	QuitRequested  bool
}

// Apply maps a command onto the flags.
func (c *Controls) Apply(cmd Command) {
	switch cmd {
	case CommandQuit:
		c.QuitRequested = true
	case CommandToggleDebug:
		c.DebugVisible = !c.DebugVisible
	case CommandReset:
		c.ResetRequested = true
	}
}
