package v1

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/samber/lo"
	openai "github.com/sashabaranov/go-openai"

	"github.com/Liunian06/LNChat-sub000/app/core"
	"github.com/Liunian06/LNChat-sub000/pkg/ai"
	"github.com/Liunian06/LNChat-sub000/pkg/errors"
	"github.com/Liunian06/LNChat-sub000/pkg/i18n"
	"github.com/Liunian06/LNChat-sub000/pkg/types"
)

// PromptLogic 负责把库里的角色、人设、记忆、环境与历史拼装成一次补全请求
type PromptLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewPromptLogic(ctx context.Context, core *core.Core) *PromptLogic {
	return &PromptLogic{
		ctx:  ctx,
		core: core,
	}
}

// settingJSON 读取settings行并反序列化，行不存在时返回false不算错误
func (l *PromptLogic) settingJSON(key string, out any) (bool, error) {
	setting, err := l.core.Store().SettingStore().Get(l.ctx, key)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, errors.New("PromptLogic.settingJSON.SettingStore.Get", i18n.ERROR_INTERNAL, err)
	}
	if len(setting.Value) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(setting.Value, out); err != nil {
		return false, errors.New("PromptLogic.settingJSON.Unmarshal", i18n.ERROR_INTERNAL, err).WithData(map[string]interface{}{
			"key": key,
		})
	}
	return true, nil
}

// APIPreset settings里的接口预设优先，缺key时直接拒绝发起请求
func (l *PromptLogic) APIPreset() (types.APIPreset, error) {
	var preset types.APIPreset
	ok, err := l.settingJSON(types.SETTING_KEY_API_PRESET, &preset)
	if err != nil {
		return preset, errors.Trace("PromptLogic.APIPreset", err)
	}
	if !ok || preset.APIKey == "" {
		return preset, errors.New("PromptLogic.APIPreset.check", i18n.ERROR_API_KEY_MISSING, nil).Code(http.StatusBadRequest)
	}
	return preset, nil
}

// ContextCount settings覆盖 → 部署配置 → 内置默认
func (l *PromptLogic) ContextCount() int {
	var count int
	if ok, err := l.settingJSON(types.SETTING_KEY_CONTEXT_COUNT, &count); err == nil && ok && count > 0 {
		return count
	}
	if cfg := l.core.Cfg().Chat.ContextCount; cfg > 0 {
		return cfg
	}
	return ai.CONTEXT_COUNT_DEFAULT
}

func (l *PromptLogic) basePrompt() string {
	var prompt string
	if ok, err := l.settingJSON(types.SETTING_KEY_BASE_PROMPT, &prompt); err == nil && ok && prompt != "" {
		return prompt
	}
	if cfg := l.core.Cfg().Chat.Prompt.Base; cfg != "" {
		return cfg
	}
	return ai.PROMPT_BASE_DEFAULT_CN
}

func (l *PromptLogic) groupPrompt() string {
	var prompt string
	if ok, err := l.settingJSON(types.SETTING_KEY_GROUP_PROMPT, &prompt); err == nil && ok && prompt != "" {
		return prompt
	}
	if cfg := l.core.Cfg().Chat.Prompt.Group; cfg != "" {
		return cfg
	}
	return ai.PROMPT_GROUP_BASE_DEFAULT_CN
}

func (l *PromptLogic) environment() (types.EnvFlags, types.Environment) {
	var flags types.EnvFlags
	var env types.Environment
	// 读取失败按全部关闭处理，环境信息属于锦上添花
	l.settingJSON(types.SETTING_KEY_ENV_FLAGS, &flags)
	l.settingJSON(types.SETTING_KEY_ENVIRONMENT, &env)
	return flags, env
}

// Assemble 为会话中的指定发言角色构造完整补全上下文
func (l *PromptLogic) Assemble(session *types.ChatSession, speaker types.Contact) ([]openai.ChatCompletionMessage, error) {
	var persona *types.UserPersona
	if session.UserPersonaID != "" {
		p, err := l.core.Store().UserPersonaStore().Get(l.ctx, session.UserPersonaID)
		if err != nil && err != sql.ErrNoRows {
			return nil, errors.New("PromptLogic.Assemble.UserPersonaStore.Get", i18n.ERROR_INTERNAL, err)
		}
		persona = p
	}

	memories, err := l.core.Store().MemoryStore().ListByContact(l.ctx, speaker.ID)
	if err != nil {
		return nil, errors.New("PromptLogic.Assemble.MemoryStore.ListByContact", i18n.ERROR_INTERNAL, err)
	}

	emojiLogic := NewEmojiLogic(l.ctx, l.core)
	listing, err := emojiLogic.BuildPromptListing(speaker)
	if err != nil {
		return nil, errors.Trace("PromptLogic.Assemble", err)
	}

	flags, env := l.environment()

	in := ai.SystemPromptInput{
		BasePrompt:   l.basePrompt(),
		Contact:      speaker,
		Persona:      persona,
		Memories:     memories,
		EnvFlags:     flags,
		Env:          env,
		Now:          time.Now(),
		EmojiListing: listing,
	}

	var members []types.Contact
	if session.IsGroup() {
		members, err = l.core.Store().ContactStore().ListByIDs(l.ctx, session.Members())
		if err != nil {
			return nil, errors.New("PromptLogic.Assemble.ContactStore.ListByIDs", i18n.ERROR_INTERNAL, err)
		}
		in.Group = true
		in.GroupPrompt = l.groupPrompt()
		in.Members = members
	}

	messages, err := l.core.Store().ChatMessageStore().ListBySession(l.ctx, session.ID, true)
	if err != nil {
		return nil, errors.New("PromptLogic.Assemble.ChatMessageStore.ListBySession", i18n.ERROR_INTERNAL, err)
	}

	history := ai.BuildHistoryMessages(ai.HistoryInput{
		Messages:     messages,
		ContextCount: l.ContextCount(),
		Group:        session.IsGroup(),
		SpeakerID:    speaker.ID,
		Names: lo.SliceToMap(members, func(c types.Contact) (string, string) {
			return c.ID, c.Name
		}),
		EmojiMeaning: emojiLogic.MeaningOf,
	})

	result := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	result = append(result, ai.BuildSystemMessage(in))
	result = append(result, history...)
	return result, nil
}
