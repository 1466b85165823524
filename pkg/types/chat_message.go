package types

import (
	"encoding/json"
	"fmt"
)

type MessageType string

const (
	MESSAGE_TYPE_TEXT        = MessageType("text")
	MESSAGE_TYPE_ACTION      = MessageType("action")
	MESSAGE_TYPE_THOUGHT     = MessageType("thought")
	MESSAGE_TYPE_STATE       = MessageType("state")
	MESSAGE_TYPE_EMOJI       = MessageType("emoji")
	MESSAGE_TYPE_IMAGE       = MessageType("image")
	MESSAGE_TYPE_LOCATION    = MessageType("location")
	MESSAGE_TYPE_REDPACKET   = MessageType("redpacket")
	MESSAGE_TYPE_TRANSFER    = MessageType("transfer")
	MESSAGE_TYPE_ANNIVERSARY = MessageType("anniversary")
	MESSAGE_TYPE_PRODUCT     = MessageType("product")
	MESSAGE_TYPE_LINK        = MessageType("link")
	MESSAGE_TYPE_NOTE        = MessageType("note")
	MESSAGE_TYPE_MEMORY      = MessageType("memory")
)

// IsHidden state与memory类型的消息仅用于上下文延续，不进入聊天流渲染
func (t MessageType) IsHidden() bool {
	return t == MESSAGE_TYPE_STATE || t == MESSAGE_TYPE_MEMORY
}

type MessageStatus string

const (
	MESSAGE_STATUS_NORMAL   = MessageStatus("normal")
	MESSAGE_STATUS_FOLDED   = MessageStatus("folded")
	MESSAGE_STATUS_RECALLED = MessageStatus("recalled")
)

type MessageSender string

const (
	SENDER_USER      = MessageSender("user")
	SENDER_ASSISTANT = MessageSender("assistant")
)

type ChatMessage struct {
	ID        string        `json:"id" db:"id"`
	ChatID    string        `json:"chat_id" db:"chat_id"`
	ContactID string        `json:"contact_id" db:"contact_id"`
	Sender    MessageSender `json:"sender" db:"sender"`
	Type      MessageType   `json:"msg_type" db:"msg_type"`
	Content   string        `json:"content" db:"content"`
	Status    MessageStatus `json:"status" db:"status"`
	Timestamp int64         `json:"timestamp" db:"timestamp"`
	Extra     MessageExtra  `json:"extra" db:"extra"`
}

// MessageExtra 按消息类型携带的附加字段，整体以JSON落库
type MessageExtra struct {
	Amount          float64 `json:"amount,omitempty"`
	Message         string  `json:"message,omitempty"`
	ProductName     string  `json:"product_name,omitempty"`
	Price           string  `json:"price,omitempty"`
	Image           string  `json:"image,omitempty"`
	LinkTitle       string  `json:"link_title,omitempty"`
	URL             string  `json:"url,omitempty"`
	NoteTitle       string  `json:"note_title,omitempty"`
	AnniversaryName string  `json:"anniversary_name,omitempty"`
	AnniversaryDate string  `json:"anniversary_date,omitempty"`
}

func (e MessageExtra) String() string {
	raw, _ := json.Marshal(e)
	return string(raw)
}

func (e *MessageExtra) Scan(src interface{}) error {
	switch src := src.(type) {
	case []byte:
		return e.scanBytes(src)
	case string:
		return e.scanBytes([]byte(src))
	case nil:
		*e = MessageExtra{}
		return nil
	}
	return fmt.Errorf("pq: cannot convert %T to MessageExtra", src)
}

func (e *MessageExtra) scanBytes(src []byte) error {
	if len(src) == 0 {
		*e = MessageExtra{}
		return nil
	}
	return json.Unmarshal(src, e)
}

// ParsedPart 模型单次回复经解析后的单个结构化片段，不直接落库
type ParsedPart struct {
	Type    MessageType  `json:"type"`
	Content string       `json:"content"`
	Extra   MessageExtra `json:"extra"`
}

// SideChannel 回复中抽取出的非聊天内容（日记/动态/长期记忆）
type SideChannel struct {
	Diary  string `json:"diary,omitempty"`
	Moment string `json:"moment,omitempty"`
	Memory string `json:"memory,omitempty"`
}

func (s SideChannel) Empty() bool {
	return s.Diary == "" && s.Moment == "" && s.Memory == ""
}
