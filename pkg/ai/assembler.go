package ai

import (
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Liunian06/LNChat-sub000/pkg/types"
	"github.com/Liunian06/LNChat-sub000/pkg/utils"
)

const (
	CONTEXT_COUNT_MIN     = 1
	CONTEXT_COUNT_MAX     = 5000
	CONTEXT_COUNT_DEFAULT = 50
)

// SystemPromptInput 组装系统消息所需的全部素材，由逻辑层提前查好
type SystemPromptInput struct {
	BasePrompt   string
	Contact      types.Contact
	Persona      *types.UserPersona
	Memories     []types.Memory
	EnvFlags     types.EnvFlags
	Env          types.Environment
	Now          time.Time
	EmojiListing string

	Group       bool
	GroupPrompt string
	Members     []types.Contact
}

// BuildSystemMessage 按固定顺序拼接系统消息：
// 全局基础提示词 → (群聊提示词+身份+成员名单) → 角色人设 → 用户人设 → 记忆 → 环境 → 表情列表
func BuildSystemMessage(in SystemPromptInput) openai.ChatCompletionMessage {
	var b strings.Builder
	b.WriteString(in.BasePrompt)

	if in.Group {
		b.WriteString("\n\n")
		b.WriteString(in.GroupPrompt)
		b.WriteString(fmt.Sprintf("\n\n## 你的身份\n你是【%s】(id: %s)。\n%s", in.Contact.Name, in.Contact.ID, in.Contact.Description))
		b.WriteString("\n\n## 群聊成员")
		for _, m := range in.Members {
			if m.ID == in.Contact.ID {
				b.WriteString(fmt.Sprintf("\n- %s (id: %s)（你自己）", m.Name, m.ID))
				continue
			}
			b.WriteString(fmt.Sprintf("\n- %s (id: %s)：%s", m.Name, m.ID, m.Description))
		}
	} else {
		b.WriteString(fmt.Sprintf("\n\n## 你的角色\n姓名：%s\n人设：%s", in.Contact.Name, in.Contact.Description))
	}

	if in.Persona != nil {
		b.WriteString(fmt.Sprintf("\n\n## 用户人设\n姓名：%s\n介绍：%s", in.Persona.Name, in.Persona.Description))
	}

	if len(in.Memories) > 0 {
		b.WriteString("\n\n## 长期记忆\n以下是你记住的关于用户的事实：")
		for _, m := range in.Memories {
			b.WriteString(fmt.Sprintf("\n- %s", m.Content))
		}
	}

	if env := buildEnvBlock(in.EnvFlags, in.Env, in.Now); env != "" {
		b.WriteString("\n\n## 当前环境\n")
		b.WriteString(env)
	}

	if in.EmojiListing != "" {
		b.WriteString("\n\n## 可用表情\n")
		b.WriteString(in.EmojiListing)
	}

	return openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: b.String(),
	}
}

// buildEnvBlock 各环境项独立受开关控制，全部关闭时返回空串
func buildEnvBlock(flags types.EnvFlags, env types.Environment, now time.Time) string {
	var lines []string
	if flags.Date {
		lines = append(lines, fmt.Sprintf("日期：%s", utils.DateTextCN(now)))
	}
	if flags.Time {
		lines = append(lines, fmt.Sprintf("时间：%s", utils.TimeTextCN(now)))
	}
	if flags.Location && env.City != "" {
		lines = append(lines, fmt.Sprintf("所在城市：%s", env.City))
	}
	if flags.Weather && env.Weather != "" {
		lines = append(lines, fmt.Sprintf("天气：%s", env.Weather))
	}
	if flags.Forecast && len(env.Forecast) > 0 {
		lines = append(lines, fmt.Sprintf("未来天气：%s", strings.Join(env.Forecast, "；")))
	}
	if flags.Battery {
		charging := "未充电"
		if env.Charging {
			charging = "充电中"
		}
		lines = append(lines, fmt.Sprintf("用户手机电量：%d%%（%s）", env.BatteryLevel, charging))
	}
	return strings.Join(lines, "\n")
}

// HistoryInput 历史消息的转换参数
type HistoryInput struct {
	Messages     []types.ChatMessage
	ContextCount int

	Group     bool
	SpeakerID string
	// Names 联系人id到显示名的映射，群聊中为其他成员的发言加前缀
	Names map[string]string
	// EmojiMeaning 表情id到语义描述的查询，查不到时原样回退id
	EmojiMeaning func(id string) string
}

// BuildHistoryMessages 取最近N条status为normal的历史并逐条转换为对话消息，
// 保持时间顺序。N被钳制在[1,5000]
func BuildHistoryMessages(in HistoryInput) []openai.ChatCompletionMessage {
	count := in.ContextCount
	if count < CONTEXT_COUNT_MIN {
		count = CONTEXT_COUNT_MIN
	}
	if count > CONTEXT_COUNT_MAX {
		count = CONTEXT_COUNT_MAX
	}

	eligible := make([]types.ChatMessage, 0, len(in.Messages))
	for _, m := range in.Messages {
		if m.Status == types.MESSAGE_STATUS_NORMAL {
			eligible = append(eligible, m)
		}
	}
	if len(eligible) > count {
		eligible = eligible[len(eligible)-count:]
	}

	result := make([]openai.ChatCompletionMessage, 0, len(eligible))
	for _, m := range eligible {
		result = append(result, convertMessage(m, in))
	}
	return result
}

func convertMessage(m types.ChatMessage, in HistoryInput) openai.ChatCompletionMessage {
	if m.Sender == types.SENDER_ASSISTANT {
		wrapped := wrapAssistantContent(m)
		if in.Group && m.ContactID != in.SpeakerID {
			// 其他成员的历史发言一律以user角色呈现，带名字前缀
			name := in.Names[m.ContactID]
			if name == "" {
				name = m.ContactID
			}
			return openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("[%s]: %s", name, wrapped),
			}
		}
		return openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleAssistant,
			Content: wrapped,
		}
	}

	switch m.Type {
	case types.MESSAGE_TYPE_IMAGE:
		url := m.Extra.Image
		if url == "" {
			url = m.Content
		}
		return openai.ChatCompletionMessage{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{Type: openai.ChatMessagePartTypeText, Text: "用户发来一张图片"},
				{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: url}},
			},
		}
	case types.MESSAGE_TYPE_EMOJI:
		meaning := m.Content
		if in.EmojiMeaning != nil {
			if v := in.EmojiMeaning(m.Content); v != "" {
				meaning = v
			}
		}
		return openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: fmt.Sprintf("[表情：%s]", meaning),
		}
	case types.MESSAGE_TYPE_LOCATION:
		return openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: fmt.Sprintf("<location>%s</location>", m.Content),
		}
	default:
		return openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: m.Content,
		}
	}
}

// wrapAssistantContent 助手历史消息按类型还原为协议标签，text类型序列化为words
func wrapAssistantContent(m types.ChatMessage) string {
	tag := string(m.Type)
	if m.Type == types.MESSAGE_TYPE_TEXT {
		tag = "words"
	}
	return fmt.Sprintf("<%s time=\"%s\">%s</%s>", tag, utils.MessageTimeText(m.Timestamp), m.Content, tag)
}
