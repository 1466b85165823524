package store

import (
	"context"
	"encoding/json"

	"github.com/Liunian06/LNChat-sub000/pkg/sqlstore"
	"github.com/Liunian06/LNChat-sub000/pkg/types"
)

type ContactStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.Contact) error
	Get(ctx context.Context, id string) (*types.Contact, error)
	List(ctx context.Context) ([]types.Contact, error)
	ListByIDs(ctx context.Context, ids []string) ([]types.Contact, error)
	UpdateAuthorizedEmojis(ctx context.Context, id string, emojiIDs types.StringList) error
	Delete(ctx context.Context, id string) error
}

type ChatSessionStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.ChatSession) error
	Get(ctx context.Context, id string) (*types.ChatSession, error)
	List(ctx context.Context) ([]types.ChatSession, error)
	UpdateSummary(ctx context.Context, id string, lastActive int64, lastMessage, lastStatus string) error
	UpdateTitle(ctx context.Context, id, title string) error
}

type ChatMessageStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data *types.ChatMessage) error
	Get(ctx context.Context, id string) (*types.ChatMessage, error)
	// ListBySession 按时间顺序返回会话消息，normalOnly时过滤折叠与撤回
	ListBySession(ctx context.Context, chatID string, normalOnly bool) ([]types.ChatMessage, error)
	GetSessionLatest(ctx context.Context, chatID string) (*types.ChatMessage, error)
	UpdateStatus(ctx context.Context, chatID, id string, status types.MessageStatus) error
	Delete(ctx context.Context, chatID, id string) error
}

type MemoryStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.Memory) error
	ListByContact(ctx context.Context, contactID string) ([]types.Memory, error)
	Delete(ctx context.Context, id string) error
}

type DiaryStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.Diary) error
	ListByContact(ctx context.Context, contactID string) ([]types.Diary, error)
	Delete(ctx context.Context, id string) error
}

type MomentStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.Moment) error
	List(ctx context.Context) ([]types.Moment, error)
	Delete(ctx context.Context, id string) error
}

type EmojiStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.Emoji) error
	Get(ctx context.Context, id string) (*types.Emoji, error)
	ListAll(ctx context.Context) ([]types.Emoji, error)
	Delete(ctx context.Context, id string) error
}

type EmojiLibraryStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.EmojiLibrary) error
	Get(ctx context.Context, id string) (*types.EmojiLibrary, error)
	ListAll(ctx context.Context) ([]types.EmojiLibrary, error)
	Delete(ctx context.Context, id string) error
}

type SettingStore interface {
	sqlstore.SqlCommons
	Get(ctx context.Context, key string) (*types.Setting, error)
	Put(ctx context.Context, key string, value json.RawMessage) error
	Delete(ctx context.Context, key string) error
}

type UserPersonaStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.UserPersona) error
	Get(ctx context.Context, id string) (*types.UserPersona, error)
	List(ctx context.Context) ([]types.UserPersona, error)
	Delete(ctx context.Context, id string) error
}
