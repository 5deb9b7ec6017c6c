package interfaces

import "context"

// Outbound message payloads, shaped for the messaging platform's API.
type TextMessage struct {
	Type       string      `json:"type"`
	Text       string      `json:"text"`
	QuickReply *QuickReply `json:"quickReply,omitempty"`
}

type QuickReply struct {
	Items []QuickReplyItem `json:"items"`
}

type QuickReplyItem struct {
	Type   string           `json:"type"`
	Action QuickReplyAction `json:"action"`
}

type QuickReplyAction struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Profile is the platform's view of a user, fetched best-effort.
type Profile struct {
	DisplayName string `json:"displayName"`
}

// NewText builds a plain text message.
func NewText(text string) TextMessage {
	return TextMessage{Type: "text", Text: text}
}

// NewChoiceText builds a text message carrying quick-reply buttons, one
// per choice; pressing a button sends its literal text back.
func NewChoiceText(text string, choices []string) TextMessage {
	msg := TextMessage{Type: "text", Text: text, QuickReply: &QuickReply{}}
	for _, c := range choices {
		msg.QuickReply.Items = append(msg.QuickReply.Items, QuickReplyItem{
			Type:   "action",
			Action: QuickReplyAction{Type: "message", Label: c, Text: c},
		})
	}
	return msg
}

// MessageGateway is the remote messaging platform (Adapter/LineGateway).
type MessageGateway interface {
	// Reply answers a specific inbound event; the reply token is single-use.
	Reply(ctx context.Context, replyToken string, messages ...TextMessage) error
	// Push sends to an arbitrary known conversation id.
	Push(ctx context.Context, to string, messages ...TextMessage) error
	// GetProfile looks up a user's profile. A non-success response from the
	// platform yields an empty profile, not an error.
	GetProfile(ctx context.Context, userID string) (Profile, error)
}
