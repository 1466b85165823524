package v1

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/Liunian06/LNChat-sub000/app/core"
	"github.com/Liunian06/LNChat-sub000/pkg/errors"
	"github.com/Liunian06/LNChat-sub000/pkg/i18n"
	"github.com/Liunian06/LNChat-sub000/pkg/types"
)

type SettingLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewSettingLogic(ctx context.Context, core *core.Core) *SettingLogic {
	return &SettingLogic{
		ctx:  ctx,
		core: core,
	}
}

func (l *SettingLogic) Get(key string) (*types.Setting, error) {
	setting, err := l.core.Store().SettingStore().Get(l.ctx, key)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New("SettingLogic.Get.SettingStore.Get", i18n.ERROR_NOT_FOUND, err).Code(http.StatusNotFound)
		}
		return nil, errors.New("SettingLogic.Get.SettingStore.Get", i18n.ERROR_INTERNAL, err)
	}
	return setting, nil
}

func (l *SettingLogic) Put(key string, value json.RawMessage) error {
	if key == "" || !json.Valid(value) {
		return errors.New("SettingLogic.Put.check", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}
	if err := l.core.Store().SettingStore().Put(l.ctx, key, value); err != nil {
		return errors.New("SettingLogic.Put.SettingStore.Put", i18n.ERROR_INTERNAL, err)
	}
	return nil
}

func (l *SettingLogic) Delete(key string) error {
	if err := l.core.Store().SettingStore().Delete(l.ctx, key); err != nil {
		return errors.New("SettingLogic.Delete.SettingStore.Delete", i18n.ERROR_INTERNAL, err)
	}
	return nil
}
