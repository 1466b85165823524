package v1

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Liunian06/LNChat-sub000/app/core"
	"github.com/Liunian06/LNChat-sub000/pkg/errors"
	"github.com/Liunian06/LNChat-sub000/pkg/i18n"
	"github.com/Liunian06/LNChat-sub000/pkg/types"
	"github.com/Liunian06/LNChat-sub000/pkg/utils"
)

const SUMMARY_FALLBACK = "[新消息]"

// CommitLogic 把一次解析后的回复原子化落库：
// 消息行、副通道行、会话摘要在同一个事务内完成
type CommitLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewCommitLogic(ctx context.Context, core *core.Core) *CommitLogic {
	return &CommitLogic{
		ctx:  ctx,
		core: core,
	}
}

type CommitInput struct {
	Session   *types.ChatSession
	ContactID string
	Parts     []types.ParsedPart
	Extras    types.SideChannel
}

// CommitAssistantResponse 写入全部消息与副通道产物并刷新会话摘要。
// 任意一步失败整体回滚，调用方可安全重试
func (l *CommitLogic) CommitAssistantResponse(in CommitInput) ([]types.ChatMessage, error) {
	now := time.Now().Unix()
	created := make([]types.ChatMessage, 0, len(in.Parts))

	err := l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		for _, part := range in.Parts {
			msg := types.ChatMessage{
				ID:        utils.GenUniqIDStr(),
				ChatID:    in.Session.ID,
				ContactID: in.ContactID,
				Sender:    types.SENDER_ASSISTANT,
				Type:      part.Type,
				Content:   part.Content,
				Status:    types.MESSAGE_STATUS_NORMAL,
				Timestamp: now,
				Extra:     part.Extra,
			}
			if err := l.core.Store().ChatMessageStore().Create(ctx, &msg); err != nil {
				return errors.New("CommitLogic.CommitAssistantResponse.ChatMessageStore.Create", i18n.ERROR_INTERNAL, err)
			}
			created = append(created, msg)
		}

		for _, content := range memoryContents(in) {
			err := l.core.Store().MemoryStore().Create(ctx, types.Memory{
				ID:        utils.GenUniqIDStr(),
				ContactID: in.ContactID,
				Content:   content,
				Date:      time.Unix(now, 0).Format("2006-01-02"),
				Type:      types.MEMORY_TYPE_FACT,
			})
			if err != nil {
				return errors.New("CommitLogic.CommitAssistantResponse.MemoryStore.Create", i18n.ERROR_INTERNAL, err)
			}
		}

		if in.Extras.Diary != "" {
			err := l.core.Store().DiaryStore().Create(ctx, types.Diary{
				ID:        utils.GenUniqIDStr(),
				ContactID: in.ContactID,
				Content:   in.Extras.Diary,
				Mood:      types.DIARY_DEFAULT_MOOD,
				Source:    types.DIARY_SOURCE_AI,
				CreatedAt: now,
			})
			if err != nil {
				return errors.New("CommitLogic.CommitAssistantResponse.DiaryStore.Create", i18n.ERROR_INTERNAL, err)
			}
		}

		if in.Extras.Moment != "" {
			err := l.core.Store().MomentStore().Create(ctx, types.Moment{
				ID:        utils.GenUniqIDStr(),
				ContactID: in.ContactID,
				Content:   in.Extras.Moment,
				CreatedAt: now,
			})
			if err != nil {
				return errors.New("CommitLogic.CommitAssistantResponse.MomentStore.Create", i18n.ERROR_INTERNAL, err)
			}
		}

		lastMessage, lastStatus := DeriveSummary(in.Parts)
		if err := l.core.Store().ChatSessionStore().UpdateSummary(ctx, in.Session.ID, now, lastMessage, lastStatus); err != nil {
			return errors.New("CommitLogic.CommitAssistantResponse.ChatSessionStore.UpdateSummary", i18n.ERROR_INTERNAL, err)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Trace("CommitLogic.CommitAssistantResponse", err)
	}
	return created, nil
}

// memoryContents 本次回复需要立即落为记忆行的内容：
// 扁平memory标签进入消息片段的同时也写记忆表，addition副通道单独补一条
func memoryContents(in CommitInput) []string {
	var out []string
	for _, part := range in.Parts {
		if part.Type == types.MESSAGE_TYPE_MEMORY {
			out = append(out, part.Content)
		}
	}
	if in.Extras.Memory != "" {
		out = append(out, in.Extras.Memory)
	}
	return out
}

// DeriveSummary 从解析片段推导会话列表展示用的摘要。
// lastMessage取最后一个可见片段，lastStatus取最后一个state片段
func DeriveSummary(parts []types.ParsedPart) (lastMessage, lastStatus string) {
	for _, part := range parts {
		if part.Type == types.MESSAGE_TYPE_STATE {
			lastStatus = part.Content
		}
		if part.Type.IsHidden() {
			continue
		}
		lastMessage = summaryText(part)
	}
	if lastMessage == "" {
		lastMessage = SUMMARY_FALLBACK
	}
	return lastMessage, lastStatus
}

func summaryText(part types.ParsedPart) string {
	switch part.Type {
	case types.MESSAGE_TYPE_REDPACKET:
		return fmt.Sprintf("[红包] ¥%s", formatAmount(part.Extra.Amount))
	case types.MESSAGE_TYPE_TRANSFER:
		return fmt.Sprintf("[转账] ¥%s", formatAmount(part.Extra.Amount))
	case types.MESSAGE_TYPE_PRODUCT:
		return fmt.Sprintf("[商品] %s", part.Extra.ProductName)
	case types.MESSAGE_TYPE_LINK:
		return fmt.Sprintf("[链接] %s", part.Extra.LinkTitle)
	case types.MESSAGE_TYPE_NOTE:
		return fmt.Sprintf("[备忘] %s", part.Extra.NoteTitle)
	case types.MESSAGE_TYPE_EMOJI:
		return "[表情]"
	case types.MESSAGE_TYPE_IMAGE:
		return "[图片]"
	case types.MESSAGE_TYPE_LOCATION:
		return fmt.Sprintf("[位置] %s", part.Content)
	case types.MESSAGE_TYPE_ANNIVERSARY:
		return "[纪念日]"
	default:
		return part.Content
	}
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
