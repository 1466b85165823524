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
		provider.stores.ChatSessionStore = NewChatSessionStore(provider)
	})
}

type ChatSessionStore struct {
	CommonFields
}

func NewChatSessionStore(provider SqlProviderAchieve) *ChatSessionStore {
	repo := &ChatSessionStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_CHAT_SESSION)
	repo.SetAllColumns("id", "session_type", "contact_id", "contact_ids", "user_persona_id", "title", "created_at", "last_active", "last_message", "last_status")
	return repo
}

func (s *ChatSessionStore) Create(ctx context.Context, data types.ChatSession) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}
	query := sq.Insert(s.GetTable()).
		Columns(s.GetAllColumns()...).
		Values(data.ID, data.Type, data.ContactID, data.ContactIDs.String(), data.UserPersonaID, data.Title, data.CreatedAt, data.LastActive, data.LastMessage, data.LastStatus)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *ChatSessionStore) Get(ctx context.Context, id string) (*types.ChatSession, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": id})
	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var session types.ChatSession
	if err := s.GetReplica(ctx).Get(&session, queryString, args...); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *ChatSessionStore) List(ctx context.Context) ([]types.ChatSession, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).OrderBy("last_active DESC")
	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var list []types.ChatSession
	if err := s.GetReplica(ctx).Select(&list, queryString, args...); err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateSummary lastStatus为空串时保持原值不变
func (s *ChatSessionStore) UpdateSummary(ctx context.Context, id string, lastActive int64, lastMessage, lastStatus string) error {
	query := sq.Update(s.GetTable()).
		Set("last_active", lastActive).
		Set("last_message", lastMessage).
		Where(sq.Eq{"id": id})
	if lastStatus != "" {
		query = query.Set("last_status", lastStatus)
	}

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *ChatSessionStore) UpdateTitle(ctx context.Context, id, title string) error {
	query := sq.Update(s.GetTable()).Set("title", title).Where(sq.Eq{"id": id})
	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}
