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
		provider.stores.ContactStore = NewContactStore(provider)
	})
}

type ContactStore struct {
	CommonFields
}

func NewContactStore(provider SqlProviderAchieve) *ContactStore {
	repo := &ContactStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_CONTACT)
	repo.SetAllColumns("id", "name", "description", "avatar", "temperature", "authorized_emoji_ids", "created_at")
	return repo
}

func (s *ContactStore) Create(ctx context.Context, data types.Contact) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}
	query := sq.Insert(s.GetTable()).
		Columns(s.GetAllColumns()...).
		Values(data.ID, data.Name, data.Description, data.Avatar, data.Temperature, data.AuthorizedEmojiIDs.String(), data.CreatedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *ContactStore) Get(ctx context.Context, id string) (*types.Contact, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": id})
	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var contact types.Contact
	if err := s.GetReplica(ctx).Get(&contact, queryString, args...); err != nil {
		return nil, err
	}
	return &contact, nil
}

func (s *ContactStore) List(ctx context.Context) ([]types.Contact, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).OrderBy("created_at ASC")
	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var list []types.Contact
	if err := s.GetReplica(ctx).Select(&list, queryString, args...); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *ContactStore) ListByIDs(ctx context.Context, ids []string) ([]types.Contact, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": ids})
	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var list []types.Contact
	if err := s.GetReplica(ctx).Select(&list, queryString, args...); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *ContactStore) UpdateAuthorizedEmojis(ctx context.Context, id string, emojiIDs types.StringList) error {
	query := sq.Update(s.GetTable()).Set("authorized_emoji_ids", emojiIDs.String()).Where(sq.Eq{"id": id})
	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *ContactStore) Delete(ctx context.Context, id string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"id": id})
	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}
