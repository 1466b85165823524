package v1

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/Liunian06/LNChat-sub000/app/core"
	"github.com/Liunian06/LNChat-sub000/pkg/ai"
	"github.com/Liunian06/LNChat-sub000/pkg/ai/openai"
	"github.com/Liunian06/LNChat-sub000/pkg/errors"
	"github.com/Liunian06/LNChat-sub000/pkg/i18n"
	"github.com/Liunian06/LNChat-sub000/pkg/parser"
	"github.com/Liunian06/LNChat-sub000/pkg/types"
	"github.com/Liunian06/LNChat-sub000/pkg/utils"
)

type ChatLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewChatLogic(ctx context.Context, core *core.Core) *ChatLogic {
	return &ChatLogic{
		ctx:  ctx,
		core: core,
	}
}

type CreateSessionRequest struct {
	Type          types.ChatSessionType `json:"session_type"`
	ContactID     string                `json:"contact_id"`
	ContactIDs    []string              `json:"contact_ids"`
	UserPersonaID string                `json:"user_persona_id"`
	Title         string                `json:"title"`
}

func (l *ChatLogic) CreateSession(req CreateSessionRequest) (*types.ChatSession, error) {
	session := types.ChatSession{
		ID:            utils.GenUniqIDStr(),
		Type:          req.Type,
		ContactID:     req.ContactID,
		ContactIDs:    req.ContactIDs,
		UserPersonaID: req.UserPersonaID,
		Title:         req.Title,
		CreatedAt:     time.Now().Unix(),
		LastActive:    time.Now().Unix(),
	}

	switch req.Type {
	case types.CHAT_SESSION_TYPE_PRIVATE:
		if req.ContactID == "" {
			return nil, errors.New("ChatLogic.CreateSession.check", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
		}
		if _, err := l.core.Store().ContactStore().Get(l.ctx, req.ContactID); err != nil {
			if err == sql.ErrNoRows {
				return nil, errors.New("ChatLogic.CreateSession.ContactStore.Get", i18n.ERROR_CONTACT_NOT_FOUND, err).Code(http.StatusNotFound)
			}
			return nil, errors.New("ChatLogic.CreateSession.ContactStore.Get", i18n.ERROR_INTERNAL, err)
		}
	case types.CHAT_SESSION_TYPE_GROUP:
		if len(req.ContactIDs) < 2 {
			return nil, errors.New("ChatLogic.CreateSession.check", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
		}
		members, err := l.core.Store().ContactStore().ListByIDs(l.ctx, req.ContactIDs)
		if err != nil {
			return nil, errors.New("ChatLogic.CreateSession.ContactStore.ListByIDs", i18n.ERROR_INTERNAL, err)
		}
		if len(members) != len(req.ContactIDs) {
			return nil, errors.New("ChatLogic.CreateSession.members.check", i18n.ERROR_CONTACT_NOT_FOUND, nil).Code(http.StatusNotFound)
		}
	default:
		return nil, errors.New("ChatLogic.CreateSession.type.check", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	if err := l.core.Store().ChatSessionStore().Create(l.ctx, session); err != nil {
		return nil, errors.New("ChatLogic.CreateSession.ChatSessionStore.Create", i18n.ERROR_INTERNAL, err)
	}
	return &session, nil
}

func (l *ChatLogic) ListSessions() ([]types.ChatSession, error) {
	list, err := l.core.Store().ChatSessionStore().List(l.ctx)
	if err != nil {
		return nil, errors.New("ChatLogic.ListSessions.ChatSessionStore.List", i18n.ERROR_INTERNAL, err)
	}
	return list, nil
}

func (l *ChatLogic) GetSession(sessionID string) (*types.ChatSession, error) {
	session, err := l.core.Store().ChatSessionStore().Get(l.ctx, sessionID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New("ChatLogic.GetSession.ChatSessionStore.Get", i18n.ERROR_SESSION_NOT_FOUND, err).Code(http.StatusNotFound)
		}
		return nil, errors.New("ChatLogic.GetSession.ChatSessionStore.Get", i18n.ERROR_INTERNAL, err)
	}
	return session, nil
}

func (l *ChatLogic) ListMessages(sessionID string) ([]types.ChatMessage, error) {
	if _, err := l.GetSession(sessionID); err != nil {
		return nil, errors.Trace("ChatLogic.ListMessages", err)
	}
	list, err := l.core.Store().ChatMessageStore().ListBySession(l.ctx, sessionID, false)
	if err != nil {
		return nil, errors.New("ChatLogic.ListMessages.ChatMessageStore.ListBySession", i18n.ERROR_INTERNAL, err)
	}
	return list, nil
}

type NewMessageRequest struct {
	Type    types.MessageType  `json:"msg_type"`
	Content string             `json:"content"`
	Extra   types.MessageExtra `json:"extra"`
}

// NewUserMessage 用户消息落库并广播，随后武装回复调度器。
// 这是触发AI回复的唯一入口，调用方不直接发起补全
func (l *ChatLogic) NewUserMessage(sessionID string, req NewMessageRequest) (*types.ChatMessage, error) {
	session, err := l.GetSession(sessionID)
	if err != nil {
		return nil, errors.Trace("ChatLogic.NewUserMessage", err)
	}

	if req.Type == "" {
		req.Type = types.MESSAGE_TYPE_TEXT
	}

	now := time.Now().Unix()
	msg := types.ChatMessage{
		ID:        utils.GenUniqIDStr(),
		ChatID:    session.ID,
		Sender:    types.SENDER_USER,
		Type:      req.Type,
		Content:   req.Content,
		Status:    types.MESSAGE_STATUS_NORMAL,
		Timestamp: now,
		Extra:     req.Extra,
	}

	err = l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		if err := l.core.Store().ChatMessageStore().Create(ctx, &msg); err != nil {
			return errors.New("ChatLogic.NewUserMessage.ChatMessageStore.Create", i18n.ERROR_INTERNAL, err)
		}
		lastMessage := summaryText(types.ParsedPart{Type: msg.Type, Content: msg.Content, Extra: msg.Extra})
		if lastMessage == "" {
			lastMessage = SUMMARY_FALLBACK
		}
		if err := l.core.Store().ChatSessionStore().UpdateSummary(ctx, session.ID, now, lastMessage, ""); err != nil {
			return errors.New("ChatLogic.NewUserMessage.ChatSessionStore.UpdateSummary", i18n.ERROR_INTERNAL, err)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Trace("ChatLogic.NewUserMessage", err)
	}

	l.core.Hub().Publish(session.ID, MessageEvent{Type: EVENT_MESSAGE_CREATED, Message: msg})

	if scheduler := GetScheduler(); scheduler != nil {
		scheduler.Arm(session)
	}
	return &msg, nil
}

// RequestAssistant 为指定角色执行一次完整回复流水线：
// 组装上下文 → 补全 → 静默判定 → 解析 → 落库 → 广播。
// 返回本次新建的消息，静默时返回空切片
func (l *ChatLogic) RequestAssistant(session *types.ChatSession, contactID string) ([]types.ChatMessage, error) {
	promptLogic := NewPromptLogic(l.ctx, l.core)

	preset, err := promptLogic.APIPreset()
	if err != nil {
		return nil, errors.Trace("ChatLogic.RequestAssistant", err)
	}

	contact, err := l.core.Store().ContactStore().Get(l.ctx, contactID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New("ChatLogic.RequestAssistant.ContactStore.Get", i18n.ERROR_CONTACT_NOT_FOUND, err).Code(http.StatusNotFound)
		}
		return nil, errors.New("ChatLogic.RequestAssistant.ContactStore.Get", i18n.ERROR_INTERNAL, err)
	}

	messages, err := promptLogic.Assemble(session, *contact)
	if err != nil {
		return nil, errors.Trace("ChatLogic.RequestAssistant", err)
	}

	var driver ai.Completer = openai.New(preset)
	ai.WarnIfOverBudget(messages, driver.Model(), session.ID)

	raw, err := driver.Completion(l.ctx, messages, contact.Temperature)
	if err != nil {
		return nil, errors.Trace("ChatLogic.RequestAssistant", err)
	}

	if parser.IsSilence(raw) {
		return nil, nil
	}

	in := CommitInput{
		Session:   session,
		ContactID: contact.ID,
	}
	if session.IsGroup() {
		result := parser.ParseGroup(raw)
		in.Parts = result.Parts
		in.Extras = types.SideChannel{Memory: result.Memory}
		if result.State != "" {
			in.Parts = append(in.Parts, types.ParsedPart{Type: types.MESSAGE_TYPE_STATE, Content: result.State})
		}
	} else {
		result := parser.Parse(raw)
		in.Parts = result.Parts
		in.Extras = result.Extras
	}

	created, err := NewCommitLogic(l.ctx, l.core).CommitAssistantResponse(in)
	if err != nil {
		return nil, errors.Trace("ChatLogic.RequestAssistant", err)
	}

	for _, msg := range created {
		if msg.Type.IsHidden() {
			continue
		}
		l.core.Hub().Publish(session.ID, MessageEvent{Type: EVENT_MESSAGE_CREATED, Message: msg})
	}
	return created, nil
}

// RecallMessage 撤回消息，撤回后不再进入上下文
func (l *ChatLogic) RecallMessage(sessionID, messageID string) error {
	return l.updateMessageStatus(sessionID, messageID, types.MESSAGE_STATUS_RECALLED)
}

// FoldMessage 折叠消息，折叠后不再进入上下文但保留展示入口
func (l *ChatLogic) FoldMessage(sessionID, messageID string) error {
	return l.updateMessageStatus(sessionID, messageID, types.MESSAGE_STATUS_FOLDED)
}

func (l *ChatLogic) updateMessageStatus(sessionID, messageID string, status types.MessageStatus) error {
	msg, err := l.core.Store().ChatMessageStore().Get(l.ctx, messageID)
	if err != nil {
		if err == sql.ErrNoRows {
			return errors.New("ChatLogic.updateMessageStatus.ChatMessageStore.Get", i18n.ERROR_MESSAGE_NOT_FOUND, err).Code(http.StatusNotFound)
		}
		return errors.New("ChatLogic.updateMessageStatus.ChatMessageStore.Get", i18n.ERROR_INTERNAL, err)
	}
	if msg.ChatID != sessionID {
		return errors.New("ChatLogic.updateMessageStatus.session.check", i18n.ERROR_FORBIDDEN, nil).Code(http.StatusForbidden)
	}
	if err := l.core.Store().ChatMessageStore().UpdateStatus(l.ctx, sessionID, messageID, status); err != nil {
		return errors.New("ChatLogic.updateMessageStatus.ChatMessageStore.UpdateStatus", i18n.ERROR_INTERNAL, err)
	}

	l.core.Hub().Publish(sessionID, MessageEvent{Type: EVENT_MESSAGE_UPDATED, Message: *msg})
	return nil
}

func (l *ChatLogic) DeleteMessage(sessionID, messageID string) error {
	if err := l.core.Store().ChatMessageStore().Delete(l.ctx, sessionID, messageID); err != nil {
		return errors.New("ChatLogic.DeleteMessage.ChatMessageStore.Delete", i18n.ERROR_INTERNAL, err)
	}
	return nil
}

func (l *ChatLogic) UpdateSessionTitle(sessionID, title string) error {
	if err := l.core.Store().ChatSessionStore().UpdateTitle(l.ctx, sessionID, title); err != nil {
		return errors.New("ChatLogic.UpdateSessionTitle.ChatSessionStore.UpdateTitle", i18n.ERROR_INTERNAL, err)
	}
	return nil
}

const (
	EVENT_MESSAGE_CREATED = "message.created"
	EVENT_MESSAGE_UPDATED = "message.updated"
)

// MessageEvent 会话websocket下发的事件载体
type MessageEvent struct {
	Type    string            `json:"type"`
	Message types.ChatMessage `json:"message"`
}
