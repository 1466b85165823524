package sqlstore

import (
	"context"
	"encoding/json"

	sq "github.com/Masterminds/squirrel"

	"github.com/Liunian06/LNChat-sub000/pkg/register"
	"github.com/Liunian06/LNChat-sub000/pkg/types"
)

func init() {
	register.RegisterFunc[*Provider](RegisterKey{}, func(provider *Provider) {
		provider.stores.SettingStore = NewSettingStore(provider)
	})
}

type SettingStore struct {
	CommonFields
}

func NewSettingStore(provider SqlProviderAchieve) *SettingStore {
	repo := &SettingStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_SETTING)
	repo.SetAllColumns("key", "value")
	return repo
}

func (s *SettingStore) Get(ctx context.Context, key string) (*types.Setting, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"key": key})
	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var setting types.Setting
	if err := s.GetReplica(ctx).Get(&setting, queryString, args...); err != nil {
		return nil, err
	}
	return &setting, nil
}

func (s *SettingStore) Put(ctx context.Context, key string, value json.RawMessage) error {
	query := sq.Insert(s.GetTable()).
		Columns(s.GetAllColumns()...).
		Values(key, []byte(value)).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value")

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *SettingStore) Delete(ctx context.Context, key string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"key": key})
	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}
