package sqlstore

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/Liunian06/LNChat-sub000/pkg/register"
	"github.com/Liunian06/LNChat-sub000/pkg/types"
)

func init() {
	register.RegisterFunc[*Provider](RegisterKey{}, func(provider *Provider) {
		provider.stores.MemoryStore = NewMemoryStore(provider)
	})
}

type MemoryStore struct {
	CommonFields
}

func NewMemoryStore(provider SqlProviderAchieve) *MemoryStore {
	repo := &MemoryStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_MEMORY)
	repo.SetAllColumns("id", "contact_id", "content", "date", "memory_type")
	return repo
}

func (s *MemoryStore) Create(ctx context.Context, data types.Memory) error {
	if data.Type == "" {
		data.Type = types.MEMORY_TYPE_FACT
	}
	query := sq.Insert(s.GetTable()).
		Columns(s.GetAllColumns()...).
		Values(data.ID, data.ContactID, data.Content, data.Date, data.Type)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *MemoryStore) ListByContact(ctx context.Context, contactID string) ([]types.Memory, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).
		Where(sq.Eq{"contact_id": contactID}).
		OrderBy("date ASC", "id ASC")
	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var list []types.Memory
	if err := s.GetReplica(ctx).Select(&list, queryString, args...); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"id": id})
	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}
