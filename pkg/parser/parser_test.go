package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Liunian06/LNChat-sub000/pkg/types"
)

func TestParse_WellFormed(t *testing.T) {
	res := Parse(`<output><words>Hi</words><action>waves</action></output>`)

	require.Len(t, res.Parts, 2)
	assert.Equal(t, types.MESSAGE_TYPE_TEXT, res.Parts[0].Type)
	assert.Equal(t, "Hi", res.Parts[0].Content)
	assert.Equal(t, types.MESSAGE_TYPE_ACTION, res.Parts[1].Type)
	assert.Equal(t, "waves", res.Parts[1].Content)
}

func TestParse_WithoutOutputWrapper(t *testing.T) {
	res := Parse(`<words>你好</words><state>开心</state>`)

	require.Len(t, res.Parts, 2)
	assert.Equal(t, types.MESSAGE_TYPE_TEXT, res.Parts[0].Type)
	assert.Equal(t, types.MESSAGE_TYPE_STATE, res.Parts[1].Type)
	assert.Equal(t, "开心", res.Parts[1].Content)
}

func TestParse_LegacyMessageWrapper(t *testing.T) {
	res := Parse(`<output><message><words>在呢</words><thought>她来啦</thought></message></output>`)

	require.Len(t, res.Parts, 2)
	assert.Equal(t, types.MESSAGE_TYPE_TEXT, res.Parts[0].Type)
	assert.Equal(t, "在呢", res.Parts[0].Content)
	assert.Equal(t, types.MESSAGE_TYPE_THOUGHT, res.Parts[1].Type)
}

func TestParse_RegexFallbackOnMalformedXML(t *testing.T) {
	// 未转义的&会让DOM解析失败，必须由正则兜底提取
	raw := `今天 A&B 公司发工资啦 <redpacket message="福">88</redpacket>`
	res := Parse(raw)

	require.Len(t, res.Parts, 1)
	part := res.Parts[0]
	assert.Equal(t, types.MESSAGE_TYPE_REDPACKET, part.Type)
	assert.Equal(t, "88", part.Content)
	assert.Equal(t, float64(88), part.Extra.Amount)
	assert.Equal(t, "福", part.Extra.Message)
}

func TestParse_TotalFailureDegradesToText(t *testing.T) {
	res := Parse("  就是一句普通的话  ")

	require.Len(t, res.Parts, 1)
	assert.Equal(t, types.MESSAGE_TYPE_TEXT, res.Parts[0].Type)
	assert.Equal(t, "就是一句普通的话", res.Parts[0].Content)
}

func TestParse_NumericCoercion(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{name: "非法金额转账归零", raw: `<output><transfer>abc</transfer></output>`, want: 0},
		{name: "正常金额", raw: `<output><transfer>520.1</transfer></output>`, want: 520.1},
		{name: "红包非法金额归零", raw: `<output><redpacket>一百</redpacket></output>`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Parse(tt.raw)
			require.Len(t, res.Parts, 1)
			assert.Equal(t, tt.want, res.Parts[0].Extra.Amount)
		})
	}
}

func TestParse_AttributeDefaults(t *testing.T) {
	res := Parse(`<output>` +
		`<redpacket>66</redpacket>` +
		`<product>看看这个</product>` +
		`<link>点开看</link>` +
		`<note>买牛奶</note>` +
		`</output>`)

	require.Len(t, res.Parts, 4)
	assert.Equal(t, DEFAULT_REDPACKET_MESSAGE, res.Parts[0].Extra.Message)
	assert.Equal(t, DEFAULT_PRODUCT_NAME, res.Parts[1].Extra.ProductName)
	assert.Equal(t, DEFAULT_LINK_TITLE, res.Parts[2].Extra.LinkTitle)
	assert.Equal(t, DEFAULT_NOTE_TITLE, res.Parts[3].Extra.NoteTitle)
}

func TestParse_ProductLinkAttributes(t *testing.T) {
	res := Parse(`<output><product name="奶茶" price="15" image="x.png">请你喝</product>` +
		`<link title="歌单" url="https://example.com/list">分享给你</link></output>`)

	require.Len(t, res.Parts, 2)
	assert.Equal(t, "奶茶", res.Parts[0].Extra.ProductName)
	assert.Equal(t, "15", res.Parts[0].Extra.Price)
	assert.Equal(t, "x.png", res.Parts[0].Extra.Image)
	assert.Equal(t, "歌单", res.Parts[1].Extra.LinkTitle)
	assert.Equal(t, "https://example.com/list", res.Parts[1].Extra.URL)
}

func TestParse_EmptyChildSkipped(t *testing.T) {
	res := Parse(`<output><words>   </words><action>点头</action></output>`)

	require.Len(t, res.Parts, 1)
	assert.Equal(t, types.MESSAGE_TYPE_ACTION, res.Parts[0].Type)
}

func TestParse_SideChannel(t *testing.T) {
	res := Parse(`<output><words>晚安</words><diary>今天聊得很开心</diary><moment>发条动态～</moment></output>`)

	require.Len(t, res.Parts, 1)
	assert.Equal(t, "今天聊得很开心", res.Extras.Diary)
	assert.Equal(t, "发条动态～", res.Extras.Moment)
}

func TestParse_LegacyAdditionWrapper(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantDiary string
	}{
		{
			name:      "addition内的副通道生效",
			raw:       `<output><words>好</words><addition><diary>补写日记</diary></addition></output>`,
			wantDiary: "补写日记",
		},
		{
			name:      "扁平标签优先于addition",
			raw:       `<output><diary>先到的</diary><addition><diary>后到的</diary></addition></output>`,
			wantDiary: "先到的",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Parse(tt.raw)
			assert.Equal(t, tt.wantDiary, res.Extras.Diary)
		})
	}
}

func TestParse_MemoryIsBothPartAndRow(t *testing.T) {
	res := Parse(`<output><words>记住了</words><memory>用户对花生过敏</memory></output>`)

	require.Len(t, res.Parts, 2)
	assert.Equal(t, types.MESSAGE_TYPE_MEMORY, res.Parts[1].Type)
	assert.Equal(t, "用户对花生过敏", res.Parts[1].Content)
	// 扁平memory是消息片段，副通道memory只来自addition包装
	assert.Empty(t, res.Extras.Memory)

	res = Parse(`<output><words>嗯</words><addition><memory>用户养了只猫</memory></addition></output>`)
	assert.Equal(t, "用户养了只猫", res.Extras.Memory)
}

func TestIsSilence(t *testing.T) {
	assert.True(t, IsSilence("[沉默]"))
	assert.True(t, IsSilence("<output>[沉默]</output>"))
	assert.False(t, IsSilence("<output><words>我在</words></output>"))
}

func TestParseGroup(t *testing.T) {
	t.Run("常规标签", func(t *testing.T) {
		res := ParseGroup(`<words>大家好</words><emoji>em_3</emoji>`)
		require.Len(t, res.Parts, 2)
		assert.Equal(t, types.MESSAGE_TYPE_TEXT, res.Parts[0].Type)
		assert.Equal(t, types.MESSAGE_TYPE_EMOJI, res.Parts[1].Type)
	})

	t.Run("无标签纯文本", func(t *testing.T) {
		res := ParseGroup("  我先去吃饭了  ")
		require.Len(t, res.Parts, 1)
		assert.Equal(t, "我先去吃饭了", res.Parts[0].Content)
	})

	t.Run("state与memory走副通道不进消息", func(t *testing.T) {
		res := ParseGroup(`<words>忙着呢</words><state>加班中</state><memory>他周五有考试</memory>`)
		require.Len(t, res.Parts, 1)
		assert.Equal(t, "加班中", res.State)
		assert.Equal(t, "他周五有考试", res.Memory)
	})

	t.Run("群聊不支持副通道标签", func(t *testing.T) {
		res := ParseGroup(`<words>嗯嗯</words><diary>不该出现</diary>`)
		require.Len(t, res.Parts, 1)
		assert.Equal(t, types.MESSAGE_TYPE_TEXT, res.Parts[0].Type)
	})
}

func TestParse_CaseInsensitiveFallback(t *testing.T) {
	// 大小写混乱加未转义&，只能靠兜底正则
	raw := `P&G <WORDS>你好呀</WORDS>`
	res := Parse(raw)

	require.Len(t, res.Parts, 1)
	assert.Equal(t, types.MESSAGE_TYPE_TEXT, res.Parts[0].Type)
	assert.Equal(t, "你好呀", res.Parts[0].Content)
}
