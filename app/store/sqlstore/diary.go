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
		provider.stores.DiaryStore = NewDiaryStore(provider)
	})
}

type DiaryStore struct {
	CommonFields
}

func NewDiaryStore(provider SqlProviderAchieve) *DiaryStore {
	repo := &DiaryStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_DIARY)
	repo.SetAllColumns("id", "contact_id", "content", "mood", "source", "created_at")
	return repo
}

func (s *DiaryStore) Create(ctx context.Context, data types.Diary) error {
	if data.Mood == "" {
		data.Mood = types.DIARY_DEFAULT_MOOD
	}
	if data.Source == "" {
		data.Source = types.DIARY_SOURCE_AI
	}
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}
	query := sq.Insert(s.GetTable()).
		Columns(s.GetAllColumns()...).
		Values(data.ID, data.ContactID, data.Content, data.Mood, data.Source, data.CreatedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *DiaryStore) ListByContact(ctx context.Context, contactID string) ([]types.Diary, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).
		Where(sq.Eq{"contact_id": contactID}).
		OrderBy("created_at DESC")
	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var list []types.Diary
	if err := s.GetReplica(ctx).Select(&list, queryString, args...); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *DiaryStore) Delete(ctx context.Context, id string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"id": id})
	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}
