package sqlstore

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/Liunian06/LNChat-sub000/pkg/register"
	"github.com/Liunian06/LNChat-sub000/pkg/types"
)

func init() {
	register.RegisterFunc[*Provider](RegisterKey{}, func(provider *Provider) {
		provider.stores.EmojiStore = NewEmojiStore(provider)
	})
}

type EmojiStore struct {
	CommonFields
}

func NewEmojiStore(provider SqlProviderAchieve) *EmojiStore {
	repo := &EmojiStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_EMOJI)
	repo.SetAllColumns("id", "meaning", "library_id", "image")
	return repo
}

func (s *EmojiStore) Create(ctx context.Context, data types.Emoji) error {
	query := sq.Insert(s.GetTable()).
		Columns(s.GetAllColumns()...).
		Values(data.ID, data.Meaning, data.LibraryID, data.Image)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *EmojiStore) Get(ctx context.Context, id string) (*types.Emoji, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": id})
	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var emoji types.Emoji
	if err := s.GetReplica(ctx).Get(&emoji, queryString, args...); err != nil {
		return nil, err
	}
	return &emoji, nil
}

func (s *EmojiStore) ListAll(ctx context.Context) ([]types.Emoji, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).OrderBy("id ASC")
	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var list []types.Emoji
	if err := s.GetReplica(ctx).Select(&list, queryString, args...); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *EmojiStore) Delete(ctx context.Context, id string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"id": id})
	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}
