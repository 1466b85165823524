package sqlstore

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/Liunian06/LNChat-sub000/pkg/register"
	"github.com/Liunian06/LNChat-sub000/pkg/types"
)

func init() {
	register.RegisterFunc[*Provider](RegisterKey{}, func(provider *Provider) {
		provider.stores.EmojiLibraryStore = NewEmojiLibraryStore(provider)
	})
}

type EmojiLibraryStore struct {
	CommonFields
}

func NewEmojiLibraryStore(provider SqlProviderAchieve) *EmojiLibraryStore {
	repo := &EmojiLibraryStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_EMOJI_LIBRARY)
	repo.SetAllColumns("id", "name", "library_type", "contact_ids")
	return repo
}

func (s *EmojiLibraryStore) Create(ctx context.Context, data types.EmojiLibrary) error {
	query := sq.Insert(s.GetTable()).
		Columns(s.GetAllColumns()...).
		Values(data.ID, data.Name, data.Type, data.ContactIDs.String())

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *EmojiLibraryStore) Get(ctx context.Context, id string) (*types.EmojiLibrary, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": id})
	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var library types.EmojiLibrary
	if err := s.GetReplica(ctx).Get(&library, queryString, args...); err != nil {
		return nil, err
	}
	return &library, nil
}

func (s *EmojiLibraryStore) ListAll(ctx context.Context) ([]types.EmojiLibrary, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).OrderBy("id ASC")
	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var list []types.EmojiLibrary
	if err := s.GetReplica(ctx).Select(&list, queryString, args...); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *EmojiLibraryStore) Delete(ctx context.Context, id string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"id": id})
	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}
