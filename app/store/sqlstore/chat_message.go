package sqlstore

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/Liunian06/LNChat-sub000/pkg/register"
	"github.com/Liunian06/LNChat-sub000/pkg/types"
)

func init() {
	register.RegisterFunc[*Provider](RegisterKey{}, func(provider *Provider) {
		provider.stores.ChatMessageStore = NewChatMessageStore(provider)
	})
}

type ChatMessageStore struct {
	CommonFields
}

func NewChatMessageStore(provider SqlProviderAchieve) *ChatMessageStore {
	repo := &ChatMessageStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_CHAT_MESSAGE)
	repo.SetAllColumns("id", "chat_id", "contact_id", "sender", "msg_type", "content", "status", "timestamp", "extra")
	return repo
}

func (s *ChatMessageStore) Create(ctx context.Context, data *types.ChatMessage) error {
	if data.Timestamp == 0 {
		data.Timestamp = time.Now().Unix()
	}
	if data.Status == "" {
		data.Status = types.MESSAGE_STATUS_NORMAL
	}
	query := sq.Insert(s.GetTable()).
		Columns(s.GetAllColumns()...).
		Values(data.ID, data.ChatID, data.ContactID, data.Sender, data.Type, data.Content, data.Status, data.Timestamp, data.Extra.String())

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *ChatMessageStore) Get(ctx context.Context, id string) (*types.ChatMessage, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": id})
	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var msg types.ChatMessage
	if err := s.GetReplica(ctx).Get(&msg, queryString, args...); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (s *ChatMessageStore) ListBySession(ctx context.Context, chatID string, normalOnly bool) ([]types.ChatMessage, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).
		Where(sq.Eq{"chat_id": chatID}).
		OrderBy("timestamp ASC", "id ASC")
	if normalOnly {
		query = query.Where(sq.Eq{"status": types.MESSAGE_STATUS_NORMAL})
	}

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var list []types.ChatMessage
	if err := s.GetReplica(ctx).Select(&list, queryString, args...); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *ChatMessageStore) GetSessionLatest(ctx context.Context, chatID string) (*types.ChatMessage, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).
		Where(sq.Eq{"chat_id": chatID}).
		OrderBy("timestamp DESC", "id DESC").Limit(1)

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var msg types.ChatMessage
	if err := s.GetReplica(ctx).Get(&msg, queryString, args...); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (s *ChatMessageStore) UpdateStatus(ctx context.Context, chatID, id string, status types.MessageStatus) error {
	query := sq.Update(s.GetTable()).Set("status", status).Where(sq.Eq{"chat_id": chatID, "id": id})
	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *ChatMessageStore) Delete(ctx context.Context, chatID, id string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"chat_id": chatID, "id": id})
	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}
