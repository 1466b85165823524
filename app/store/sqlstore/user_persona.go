package sqlstore

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/Liunian06/LNChat-sub000/pkg/register"
	"github.com/Liunian06/LNChat-sub000/pkg/types"
)

func init() {
	register.RegisterFunc[*Provider](RegisterKey{}, func(provider *Provider) {
		provider.stores.UserPersonaStore = NewUserPersonaStore(provider)
	})
}

type UserPersonaStore struct {
	CommonFields
}

func NewUserPersonaStore(provider SqlProviderAchieve) *UserPersonaStore {
	repo := &UserPersonaStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_USER_PERSONA)
	repo.SetAllColumns("id", "name", "description")
	return repo
}

func (s *UserPersonaStore) Create(ctx context.Context, data types.UserPersona) error {
	query := sq.Insert(s.GetTable()).
		Columns(s.GetAllColumns()...).
		Values(data.ID, data.Name, data.Description)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *UserPersonaStore) Get(ctx context.Context, id string) (*types.UserPersona, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": id})
	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var persona types.UserPersona
	if err := s.GetReplica(ctx).Get(&persona, queryString, args...); err != nil {
		return nil, err
	}
	return &persona, nil
}

func (s *UserPersonaStore) List(ctx context.Context) ([]types.UserPersona, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).OrderBy("id ASC")
	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var list []types.UserPersona
	if err := s.GetReplica(ctx).Select(&list, queryString, args...); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *UserPersonaStore) Delete(ctx context.Context, id string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"id": id})
	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}
