package types

type ChatSession struct {
	ID            string          `json:"id" db:"id"`
	Type          ChatSessionType `json:"session_type" db:"session_type"`
	ContactID     string          `json:"contact_id" db:"contact_id"`
	ContactIDs    StringList      `json:"contact_ids" db:"contact_ids"`
	UserPersonaID string          `json:"user_persona_id" db:"user_persona_id"`
	Title         string          `json:"title" db:"title"`
	CreatedAt     int64           `json:"created_at" db:"created_at"`
	LastActive    int64           `json:"last_active" db:"last_active"`
	LastMessage   string          `json:"last_message" db:"last_message"`
	LastStatus    string          `json:"last_status" db:"last_status"`
}

type ChatSessionType string

const (
	CHAT_SESSION_TYPE_PRIVATE = ChatSessionType("private")
	CHAT_SESSION_TYPE_GROUP   = ChatSessionType("group")
)

func (s *ChatSession) IsGroup() bool {
	return s.Type == CHAT_SESSION_TYPE_GROUP
}

// Members 返回会话成员，私聊返回单个联系人
func (s *ChatSession) Members() []string {
	if s.IsGroup() {
		return s.ContactIDs
	}
	if s.ContactID == "" {
		return nil
	}
	return []string{s.ContactID}
}
