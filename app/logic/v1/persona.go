package v1

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/Liunian06/LNChat-sub000/app/core"
	"github.com/Liunian06/LNChat-sub000/pkg/errors"
	"github.com/Liunian06/LNChat-sub000/pkg/i18n"
	"github.com/Liunian06/LNChat-sub000/pkg/types"
	"github.com/Liunian06/LNChat-sub000/pkg/utils"
)

type PersonaLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewPersonaLogic(ctx context.Context, core *core.Core) *PersonaLogic {
	return &PersonaLogic{
		ctx:  ctx,
		core: core,
	}
}

func (l *PersonaLogic) List() ([]types.UserPersona, error) {
	list, err := l.core.Store().UserPersonaStore().List(l.ctx)
	if err != nil {
		return nil, errors.New("PersonaLogic.List.UserPersonaStore.List", i18n.ERROR_INTERNAL, err)
	}
	return list, nil
}

func (l *PersonaLogic) Get(id string) (*types.UserPersona, error) {
	persona, err := l.core.Store().UserPersonaStore().Get(l.ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New("PersonaLogic.Get.UserPersonaStore.Get", i18n.ERROR_NOT_FOUND, err).Code(http.StatusNotFound)
		}
		return nil, errors.New("PersonaLogic.Get.UserPersonaStore.Get", i18n.ERROR_INTERNAL, err)
	}
	return persona, nil
}

func (l *PersonaLogic) Create(data types.UserPersona) (*types.UserPersona, error) {
	if data.Name == "" {
		return nil, errors.New("PersonaLogic.Create.check", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}
	if data.ID == "" {
		data.ID = utils.GenUniqIDStr()
	}
	if err := l.core.Store().UserPersonaStore().Create(l.ctx, data); err != nil {
		return nil, errors.New("PersonaLogic.Create.UserPersonaStore.Create", i18n.ERROR_INTERNAL, err)
	}
	return &data, nil
}

func (l *PersonaLogic) Delete(id string) error {
	if err := l.core.Store().UserPersonaStore().Delete(l.ctx, id); err != nil {
		return errors.New("PersonaLogic.Delete.UserPersonaStore.Delete", i18n.ERROR_INTERNAL, err)
	}
	return nil
}
