package v1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Liunian06/LNChat-sub000/pkg/parser"
	"github.com/Liunian06/LNChat-sub000/pkg/types"
)

func TestMemoryContents(t *testing.T) {
	t.Run("扁平memory标签既是消息也落记忆", func(t *testing.T) {
		res := parser.Parse(`<output><words>记住了</words><memory>用户对花生过敏</memory></output>`)
		in := CommitInput{Parts: res.Parts, Extras: res.Extras}

		got := memoryContents(in)
		require.Len(t, got, 1)
		assert.Equal(t, "用户对花生过敏", got[0])
	})

	t.Run("addition副通道单独成行", func(t *testing.T) {
		res := parser.Parse(`<output><words>嗯</words><addition><memory>用户养了只猫</memory></addition></output>`)
		in := CommitInput{Parts: res.Parts, Extras: res.Extras}

		got := memoryContents(in)
		require.Len(t, got, 1)
		assert.Equal(t, "用户养了只猫", got[0])
	})

	t.Run("两路同时出现各写一条", func(t *testing.T) {
		in := CommitInput{
			Parts: []types.ParsedPart{
				{Type: types.MESSAGE_TYPE_TEXT, Content: "好"},
				{Type: types.MESSAGE_TYPE_MEMORY, Content: "他周五有考试"},
			},
			Extras: types.SideChannel{Memory: "他在准备搬家"},
		}

		got := memoryContents(in)
		assert.Equal(t, []string{"他周五有考试", "他在准备搬家"}, got)
	})

	t.Run("没有记忆内容时为空", func(t *testing.T) {
		in := CommitInput{Parts: []types.ParsedPart{{Type: types.MESSAGE_TYPE_TEXT, Content: "hi"}}}
		assert.Empty(t, memoryContents(in))
	})
}

func TestDeriveSummary(t *testing.T) {
	tests := []struct {
		name        string
		parts       []types.ParsedPart
		lastMessage string
		lastStatus  string
	}{
		{
			name: "文本加状态",
			parts: []types.ParsedPart{
				{Type: types.MESSAGE_TYPE_TEXT, Content: "hi"},
				{Type: types.MESSAGE_TYPE_STATE, Content: "忙"},
			},
			lastMessage: "hi",
			lastStatus:  "忙",
		},
		{
			name: "取最后一个可见片段",
			parts: []types.ParsedPart{
				{Type: types.MESSAGE_TYPE_TEXT, Content: "先说一句"},
				{Type: types.MESSAGE_TYPE_TEXT, Content: "再说一句"},
			},
			lastMessage: "再说一句",
		},
		{
			name: "红包金额",
			parts: []types.ParsedPart{
				{Type: types.MESSAGE_TYPE_REDPACKET, Extra: types.MessageExtra{Amount: 88, Message: "恭喜发财"}},
			},
			lastMessage: "[红包] ¥88",
		},
		{
			name: "转账带小数",
			parts: []types.ParsedPart{
				{Type: types.MESSAGE_TYPE_TRANSFER, Extra: types.MessageExtra{Amount: 5.2}},
			},
			lastMessage: "[转账] ¥5.2",
		},
		{
			name: "商品链接备忘",
			parts: []types.ParsedPart{
				{Type: types.MESSAGE_TYPE_PRODUCT, Extra: types.MessageExtra{ProductName: "咖啡机"}},
				{Type: types.MESSAGE_TYPE_LINK, Extra: types.MessageExtra{LinkTitle: "一篇文章"}},
				{Type: types.MESSAGE_TYPE_NOTE, Extra: types.MessageExtra{NoteTitle: "购物清单"}},
			},
			lastMessage: "[备忘] 购物清单",
		},
		{
			name: "位置与表情",
			parts: []types.ParsedPart{
				{Type: types.MESSAGE_TYPE_EMOJI, Content: "emoji_1"},
				{Type: types.MESSAGE_TYPE_LOCATION, Content: "外滩"},
			},
			lastMessage: "[位置] 外滩",
		},
		{
			name: "只有隐藏片段时回退占位",
			parts: []types.ParsedPart{
				{Type: types.MESSAGE_TYPE_STATE, Content: "在打游戏"},
				{Type: types.MESSAGE_TYPE_MEMORY, Content: "用户最近很累"},
			},
			lastMessage: "[新消息]",
			lastStatus:  "在打游戏",
		},
		{
			name:        "空片段",
			parts:       nil,
			lastMessage: "[新消息]",
		},
		{
			name: "状态在中间也生效",
			parts: []types.ParsedPart{
				{Type: types.MESSAGE_TYPE_STATE, Content: "听歌中"},
				{Type: types.MESSAGE_TYPE_TEXT, Content: "怎么了"},
			},
			lastMessage: "怎么了",
			lastStatus:  "听歌中",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lastMessage, lastStatus := DeriveSummary(tt.parts)
			assert.Equal(t, tt.lastMessage, lastMessage)
			assert.Equal(t, tt.lastStatus, lastStatus)
		})
	}
}
