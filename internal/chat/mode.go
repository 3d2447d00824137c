package chat

// Mode selects the endpoint and payload used for a submission.
// Exactly one mode is active, so image and code can never both be on.
type Mode int

const (
	ModeChat Mode = iota
	ModeImage
	ModeCode
)

func (m Mode) String() string {
	switch m {
	case ModeImage:
		return "image"
	case ModeCode:
		return "code"
	default:
		return "chat"
	}
}

// Label is the short name shown in the UI
func (m Mode) Label() string {
	switch m {
	case ModeImage:
		return "Image generation"
	case ModeCode:
		return "Code"
	default:
		return "Chat"
	}
}

// ParseMode maps a mode name back to a Mode
func ParseMode(name string) (Mode, bool) {
	switch name {
	case "chat", "":
		return ModeChat, true
	case "image":
		return ModeImage, true
	case "code":
		return ModeCode, true
	}
	return ModeChat, false
}
