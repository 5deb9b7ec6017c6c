package domain

// Inbound webhook event, as delivered by the messaging platform.
type Event struct {
	Type           string  `json:"type"`
	WebhookEventID string  `json:"webhookEventId,omitempty"`
	ReplyToken     string  `json:"replyToken,omitempty"`
	Timestamp      int64   `json:"timestamp,omitempty"`
	Source         Source  `json:"source"`
	Message        Message `json:"message,omitempty"`
}

type Source struct {
	Type    SourceType `json:"type"`
	UserID  string     `json:"userId,omitempty"`
	GroupID string     `json:"groupId,omitempty"`
	RoomID  string     `json:"roomId,omitempty"`
}

type Message struct {
	ID   string      `json:"id,omitempty"`
	Type MessageType `json:"type"`
	Text string      `json:"text,omitempty"`
}

type SourceType string

const (
	SourceUser  SourceType = "user"
	SourceGroup SourceType = "group"
	SourceRoom  SourceType = "room"
)

type MessageType string

const (
	MessageText  MessageType = "text"
	MessageImage MessageType = "image"
)

const EventMessage = "message"

// ConversationID returns the identifier of the conversation the event
// originated from, whichever source field is populated.
func (s Source) ConversationID() string {
	switch {
	case s.UserID != "" && s.Type == SourceUser:
		return s.UserID
	case s.GroupID != "":
		return s.GroupID
	case s.RoomID != "":
		return s.RoomID
	}
	return s.UserID
}

// IsMessage reports whether the event carries a message payload.
func (e Event) IsMessage() bool {
	return e.Type == EventMessage
}
