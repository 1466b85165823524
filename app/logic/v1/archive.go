package v1

import (
	"context"

	"github.com/Liunian06/LNChat-sub000/app/core"
	"github.com/Liunian06/LNChat-sub000/pkg/errors"
	"github.com/Liunian06/LNChat-sub000/pkg/i18n"
	"github.com/Liunian06/LNChat-sub000/pkg/types"
)

// ArchiveLogic 查询回复副通道沉淀下来的记忆、日记与动态
type ArchiveLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewArchiveLogic(ctx context.Context, core *core.Core) *ArchiveLogic {
	return &ArchiveLogic{
		ctx:  ctx,
		core: core,
	}
}

func (l *ArchiveLogic) ListMemories(contactID string) ([]types.Memory, error) {
	list, err := l.core.Store().MemoryStore().ListByContact(l.ctx, contactID)
	if err != nil {
		return nil, errors.New("ArchiveLogic.ListMemories.MemoryStore.ListByContact", i18n.ERROR_INTERNAL, err)
	}
	return list, nil
}

func (l *ArchiveLogic) DeleteMemory(id string) error {
	if err := l.core.Store().MemoryStore().Delete(l.ctx, id); err != nil {
		return errors.New("ArchiveLogic.DeleteMemory.MemoryStore.Delete", i18n.ERROR_INTERNAL, err)
	}
	return nil
}

func (l *ArchiveLogic) ListDiaries(contactID string) ([]types.Diary, error) {
	list, err := l.core.Store().DiaryStore().ListByContact(l.ctx, contactID)
	if err != nil {
		return nil, errors.New("ArchiveLogic.ListDiaries.DiaryStore.ListByContact", i18n.ERROR_INTERNAL, err)
	}
	return list, nil
}

func (l *ArchiveLogic) ListMoments() ([]types.Moment, error) {
	list, err := l.core.Store().MomentStore().List(l.ctx)
	if err != nil {
		return nil, errors.New("ArchiveLogic.ListMoments.MomentStore.List", i18n.ERROR_INTERNAL, err)
	}
	return list, nil
}
