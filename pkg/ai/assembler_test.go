package ai

import (
	"strings"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Liunian06/LNChat-sub000/pkg/types"
)

func TestBuildSystemMessage_Order(t *testing.T) {
	msg := BuildSystemMessage(SystemPromptInput{
		BasePrompt: "基础提示词",
		Contact: types.Contact{
			ID:          "c1",
			Name:        "小林",
			Description: "温柔的邻家姐姐",
		},
		Persona: &types.UserPersona{Name: "阿良", Description: "程序员"},
		Memories: []types.Memory{
			{Content: "用户喜欢喝美式"},
			{Content: "用户养了一只猫"},
		},
		EnvFlags:     types.EnvFlags{Time: true},
		Now:          time.Date(2025, 4, 12, 15, 4, 0, 0, time.Local),
		EmojiListing: "emoji_1：开心\n",
	})

	assert.Equal(t, openai.ChatMessageRoleSystem, msg.Role)

	sections := []string{
		"基础提示词",
		"## 你的角色",
		"## 用户人设",
		"## 长期记忆",
		"## 当前环境",
		"## 可用表情",
	}
	last := -1
	for _, section := range sections {
		idx := strings.Index(msg.Content, section)
		require.GreaterOrEqual(t, idx, 0, section)
		assert.Greater(t, idx, last, "段落顺序错误: %s", section)
		last = idx
	}

	assert.Contains(t, msg.Content, "用户喜欢喝美式")
	assert.Contains(t, msg.Content, "时间：15:04")
	assert.Contains(t, msg.Content, "emoji_1：开心")
}

func TestBuildSystemMessage_Group(t *testing.T) {
	members := []types.Contact{
		{ID: "c1", Name: "小林", Description: "姐姐"},
		{ID: "c2", Name: "老王", Description: "邻居"},
	}
	msg := BuildSystemMessage(SystemPromptInput{
		BasePrompt:  "base",
		Contact:     members[0],
		Group:       true,
		GroupPrompt: "群聊规则",
		Members:     members,
		Now:         time.Now(),
	})

	assert.Contains(t, msg.Content, "群聊规则")
	assert.Contains(t, msg.Content, "你是【小林】")
	assert.Contains(t, msg.Content, "小林 (id: c1)（你自己）")
	assert.Contains(t, msg.Content, "老王 (id: c2)：邻居")
	assert.NotContains(t, msg.Content, "## 你的角色")
}

func TestBuildSystemMessage_EnvFlagsOff(t *testing.T) {
	msg := BuildSystemMessage(SystemPromptInput{
		BasePrompt: "base",
		Contact:    types.Contact{Name: "小林"},
		Env:        types.Environment{City: "上海", Weather: "晴"},
		Now:        time.Now(),
	})
	// 开关全关时即使有环境数据也不输出环境段
	assert.NotContains(t, msg.Content, "## 当前环境")
}

func TestBuildHistoryMessages_WindowAndFilter(t *testing.T) {
	messages := []types.ChatMessage{
		{Sender: types.SENDER_USER, Type: types.MESSAGE_TYPE_TEXT, Content: "m1", Status: types.MESSAGE_STATUS_NORMAL},
		{Sender: types.SENDER_USER, Type: types.MESSAGE_TYPE_TEXT, Content: "m2", Status: types.MESSAGE_STATUS_FOLDED},
		{Sender: types.SENDER_USER, Type: types.MESSAGE_TYPE_TEXT, Content: "m3", Status: types.MESSAGE_STATUS_NORMAL},
		{Sender: types.SENDER_USER, Type: types.MESSAGE_TYPE_TEXT, Content: "m4", Status: types.MESSAGE_STATUS_RECALLED},
		{Sender: types.SENDER_USER, Type: types.MESSAGE_TYPE_TEXT, Content: "m5", Status: types.MESSAGE_STATUS_NORMAL},
		{Sender: types.SENDER_USER, Type: types.MESSAGE_TYPE_TEXT, Content: "m6", Status: types.MESSAGE_STATUS_NORMAL},
	}

	result := BuildHistoryMessages(HistoryInput{
		Messages:     messages,
		ContextCount: 2,
	})

	// 折叠与撤回不参与计数，窗口取最后两条normal
	require.Len(t, result, 2)
	assert.Equal(t, "m5", result[0].Content)
	assert.Equal(t, "m6", result[1].Content)
}

func TestBuildHistoryMessages_CountClamp(t *testing.T) {
	messages := []types.ChatMessage{
		{Sender: types.SENDER_USER, Type: types.MESSAGE_TYPE_TEXT, Content: "m1", Status: types.MESSAGE_STATUS_NORMAL},
		{Sender: types.SENDER_USER, Type: types.MESSAGE_TYPE_TEXT, Content: "m2", Status: types.MESSAGE_STATUS_NORMAL},
	}

	result := BuildHistoryMessages(HistoryInput{Messages: messages, ContextCount: -10})
	require.Len(t, result, 1)
	assert.Equal(t, "m2", result[0].Content)

	result = BuildHistoryMessages(HistoryInput{Messages: messages, ContextCount: 999999})
	assert.Len(t, result, 2)
}

func TestConvertMessage_AssistantWrapping(t *testing.T) {
	result := BuildHistoryMessages(HistoryInput{
		Messages: []types.ChatMessage{
			{Sender: types.SENDER_ASSISTANT, ContactID: "c1", Type: types.MESSAGE_TYPE_TEXT, Content: "你好", Status: types.MESSAGE_STATUS_NORMAL, Timestamp: 1744441440},
			{Sender: types.SENDER_ASSISTANT, ContactID: "c1", Type: types.MESSAGE_TYPE_ACTION, Content: "挥了挥手", Status: types.MESSAGE_STATUS_NORMAL, Timestamp: 1744441440},
		},
		ContextCount: 10,
	})

	require.Len(t, result, 2)
	assert.Equal(t, openai.ChatMessageRoleAssistant, result[0].Role)
	// text类型在协议里序列化为words标签
	assert.True(t, strings.HasPrefix(result[0].Content, "<words time="))
	assert.True(t, strings.HasSuffix(result[0].Content, ">你好</words>"))
	assert.Contains(t, result[1].Content, "<action time=")
}

func TestConvertMessage_GroupOtherSpeaker(t *testing.T) {
	result := BuildHistoryMessages(HistoryInput{
		Messages: []types.ChatMessage{
			{Sender: types.SENDER_ASSISTANT, ContactID: "c2", Type: types.MESSAGE_TYPE_TEXT, Content: "大家好", Status: types.MESSAGE_STATUS_NORMAL},
		},
		ContextCount: 10,
		Group:        true,
		SpeakerID:    "c1",
		Names:        map[string]string{"c2": "老王"},
	})

	require.Len(t, result, 1)
	// 其他成员的发言以user角色呈现并带名字前缀
	assert.Equal(t, openai.ChatMessageRoleUser, result[0].Role)
	assert.True(t, strings.HasPrefix(result[0].Content, "[老王]: "))
}

func TestConvertMessage_UserSpecialTypes(t *testing.T) {
	result := BuildHistoryMessages(HistoryInput{
		Messages: []types.ChatMessage{
			{Sender: types.SENDER_USER, Type: types.MESSAGE_TYPE_IMAGE, Content: "https://img.example.com/a.png", Status: types.MESSAGE_STATUS_NORMAL},
			{Sender: types.SENDER_USER, Type: types.MESSAGE_TYPE_EMOJI, Content: "emoji_3", Status: types.MESSAGE_STATUS_NORMAL},
			{Sender: types.SENDER_USER, Type: types.MESSAGE_TYPE_LOCATION, Content: "外滩", Status: types.MESSAGE_STATUS_NORMAL},
		},
		ContextCount: 10,
		EmojiMeaning: func(id string) string {
			if id == "emoji_3" {
				return "偷笑"
			}
			return ""
		},
	})

	require.Len(t, result, 3)

	require.Len(t, result[0].MultiContent, 2)
	assert.Equal(t, openai.ChatMessagePartTypeImageURL, result[0].MultiContent[1].Type)
	assert.Equal(t, "https://img.example.com/a.png", result[0].MultiContent[1].ImageURL.URL)

	assert.Equal(t, "[表情：偷笑]", result[1].Content)
	assert.Equal(t, "<location>外滩</location>", result[2].Content)
}
