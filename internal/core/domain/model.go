package domain

// Message is a single verified text event received from a messaging platform.
type Message struct {
	// ReplyToken routes the reply back to the conversation. It is opaque and single-use.
	ReplyToken string
	EventID    string
	UserID     string
	Text       string
}

type Attribute string

const (
	Light Attribute = "light"
)

type Status string

const (
	On  Status = "on"
	Off Status = "off"
)

// State is a point-in-time snapshot of the device record.
type State map[Attribute]Status

// Clone returns a copy that is safe to hand out while the store keeps changing.
func (s State) Clone() State {
	c := make(State, len(s))
	for k, v := range s {
		c[k] = v
	}

	return c
}
