package v1

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/Liunian06/LNChat-sub000/app/core"
	"github.com/Liunian06/LNChat-sub000/pkg/errors"
	"github.com/Liunian06/LNChat-sub000/pkg/i18n"
	"github.com/Liunian06/LNChat-sub000/pkg/types"
	"github.com/Liunian06/LNChat-sub000/pkg/utils"
)

type ContactLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewContactLogic(ctx context.Context, core *core.Core) *ContactLogic {
	return &ContactLogic{
		ctx:  ctx,
		core: core,
	}
}

func (l *ContactLogic) List() ([]types.Contact, error) {
	list, err := l.core.Store().ContactStore().List(l.ctx)
	if err != nil {
		return nil, errors.New("ContactLogic.List.ContactStore.List", i18n.ERROR_INTERNAL, err)
	}
	return list, nil
}

func (l *ContactLogic) Get(id string) (*types.Contact, error) {
	contact, err := l.core.Store().ContactStore().Get(l.ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New("ContactLogic.Get.ContactStore.Get", i18n.ERROR_CONTACT_NOT_FOUND, err).Code(http.StatusNotFound)
		}
		return nil, errors.New("ContactLogic.Get.ContactStore.Get", i18n.ERROR_INTERNAL, err)
	}
	return contact, nil
}

func (l *ContactLogic) Create(data types.Contact) (*types.Contact, error) {
	if data.Name == "" {
		return nil, errors.New("ContactLogic.Create.check", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}
	if data.ID == "" {
		data.ID = utils.GenUniqIDStr()
	}
	data.CreatedAt = time.Now().Unix()
	if err := l.core.Store().ContactStore().Create(l.ctx, data); err != nil {
		return nil, errors.New("ContactLogic.Create.ContactStore.Create", i18n.ERROR_INTERNAL, err)
	}
	return &data, nil
}

func (l *ContactLogic) Delete(id string) error {
	if err := l.core.Store().ContactStore().Delete(l.ctx, id); err != nil {
		return errors.New("ContactLogic.Delete.ContactStore.Delete", i18n.ERROR_INTERNAL, err)
	}
	return nil
}
