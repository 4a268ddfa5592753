package models

// Message is one row of the append-only chat log. Only isRead is ever updated,
// and only by the receiver's mark-read action.
type Message struct {
	ConversationKey string `dynamodbav:"conversationKey" json:"-"`
	MessageID       string `dynamodbav:"messageId" json:"messageId"`
	SenderID        string `dynamodbav:"senderId" json:"senderId"`
	ReceiverID      string `dynamodbav:"receiverId" json:"receiverId"`
	Body            string `dynamodbav:"body" json:"message"`
	IsRead          bool   `dynamodbav:"isRead" json:"isRead"`
	CreatedAt       string `dynamodbav:"createdAt" json:"createdAt"`
}

const (
	MessagesTable = "Messages"

	// GSIs on Messages, each with createdAt as the sort key.
	SenderIDIndex   = "senderId-createdAt-index"
	ReceiverIDIndex = "receiverId-createdAt-index"
)

// ConversationKey identifies the unordered pair a message belongs to, so both
// directions of a conversation land on the same partition.
func ConversationKey(userA, userB string) string {
	if userA < userB {
		return userA + "#" + userB
	}
	return userB + "#" + userA
}

// MessageView is a message annotated for one side of the conversation.
type MessageView struct {
	MessageID  string `json:"messageId"`
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Body       string `json:"message"`
	IsRead     bool   `json:"isRead"`
	CreatedAt  string `json:"createdAt"`
	IsMine     bool   `json:"isMine"`
}

// ViewFor annotates the message relative to the given caller.
func (m Message) ViewFor(userID string) MessageView {
	return MessageView{
		MessageID:  m.MessageID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Body:       m.Body,
		IsRead:     m.IsRead,
		CreatedAt:  m.CreatedAt,
		IsMine:     m.SenderID == userID,
	}
}

// ConversationSummary is one entry of the derived chat list: a distinct
// partner with the most recent message and the caller's unread count.
type ConversationSummary struct {
	Partner     UserSummary  `json:"withUser"`
	LastMessage *MessageView `json:"lastMessage"`
	UnreadCount int          `json:"unreadCount"`
}
