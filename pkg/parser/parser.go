// Package parser 将模型输出的伪XML标签协议解析为结构化消息片段。
//
// 解析分两阶段：严格阶段用XML DOM解析<output>块，失败或无可识别标签时
// 进入正则兜底阶段；两阶段都无产出时整段原文降级为一条text消息。
package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/Liunian06/LNChat-sub000/pkg/types"
)

// SILENCE_MARKER 模型选择保持沉默时输出的标记，整轮回复直接丢弃
const SILENCE_MARKER = "[沉默]"

const (
	DEFAULT_REDPACKET_MESSAGE = "恭喜发财，大吉大利！"
	DEFAULT_PRODUCT_NAME      = "商品"
	DEFAULT_LINK_TITLE        = "链接"
	DEFAULT_NOTE_TITLE        = "备忘"
)

type Result struct {
	Parts  []types.ParsedPart
	Extras types.SideChannel
}

// GroupResult 群聊成员回复的解析结果。state/memory不进入Parts，
// 单独透出供调用方更新状态栏与记忆
type GroupResult struct {
	Parts  []types.ParsedPart
	State  string
	Memory string
}

var (
	outputBlockPattern = regexp.MustCompile(`(?is)<output>(.*?)</output>`)

	// 兜底阶段的单一选择模式：任意受支持的标签名，大小写不敏感，
	// 非贪婪标签体，允许携带属性。RE2不支持反向引用，闭合标签名在代码中比对
	tagPattern  = regexp.MustCompile(`(?is)<(words|action|thought|state|memory|emoji|location|redpacket|transfer|product|link|note|diary|moment)\b([^>]*?)/?>(.*?)</\s*(words|action|thought|state|memory|emoji|location|redpacket|transfer|product|link|note|diary|moment)\s*>`)
	attrPattern = regexp.MustCompile(`([a-zA-Z_]+)\s*=\s*"([^"]*)"`)
)

// IsSilence 判断原始回复是否为“保持沉默”
func IsSilence(raw string) bool {
	return strings.Contains(raw, SILENCE_MARKER)
}

// Parse 解析私聊模式下的一次完整模型回复，永不返回错误
func Parse(raw string) Result {
	var res Result
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return res
	}

	parseStrict(trimmed, &res)

	if len(res.Parts) == 0 && res.Extras.Empty() {
		parseFallback(raw, &res)
	}

	if len(res.Parts) == 0 && res.Extras.Empty() {
		res.Parts = append(res.Parts, types.ParsedPart{
			Type:    types.MESSAGE_TYPE_TEXT,
			Content: trimmed,
		})
	}
	return res
}

// ParseGroup 群聊成员回复的轻量解析，仅走正则路径
func ParseGroup(raw string) GroupResult {
	var res GroupResult
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return res
	}

	for _, m := range tagPattern.FindAllStringSubmatch(raw, -1) {
		open, close := strings.ToLower(m[1]), strings.ToLower(m[4])
		if open != close {
			continue
		}
		body := strings.TrimSpace(m[3])
		switch open {
		case "diary", "moment":
			// 群聊回复不支持副通道标签
			continue
		case "state":
			if res.State == "" {
				res.State = body
			}
		case "memory":
			if res.Memory == "" {
				res.Memory = body
			}
		default:
			if part, ok := buildPart(open, body, attrGetter(m[2])); ok {
				res.Parts = append(res.Parts, part)
			}
		}
	}

	if len(res.Parts) == 0 && res.State == "" && res.Memory == "" {
		res.Parts = append(res.Parts, types.ParsedPart{
			Type:    types.MESSAGE_TYPE_TEXT,
			Content: trimmed,
		})
	}
	return res
}

// parseStrict 定位首个<output>块（缺省时取全文）并做DOM解析。
// XML不合法、或块内没有任何可识别的子标签时不产出，交由兜底阶段处理
func parseStrict(text string, res *Result) {
	inner := text
	if m := outputBlockPattern.FindStringSubmatch(text); m != nil {
		inner = m[1]
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString("<output>" + inner + "</output>"); err != nil {
		return
	}
	root := doc.Root()
	if root == nil {
		return
	}

	collectChildren(root, res)
}

func collectChildren(el *etree.Element, res *Result) {
	for _, child := range el.ChildElements() {
		tag := strings.ToLower(child.Tag)
		switch tag {
		case "message":
			// 旧版协议的外层包装，展开后按顶层标签处理
			collectChildren(child, res)
		case "addition":
			// 旧版协议的副通道包装，仅在扁平标签未赋值时生效
			for _, sub := range child.ChildElements() {
				setSideChannel(&res.Extras, strings.ToLower(sub.Tag), strings.TrimSpace(sub.Text()), false)
			}
		case "diary", "moment":
			setSideChannel(&res.Extras, tag, strings.TrimSpace(child.Text()), true)
		default:
			body := strings.TrimSpace(child.Text())
			if part, ok := buildPart(tag, body, func(name, fallback string) string {
				return child.SelectAttrValue(name, fallback)
			}); ok {
				res.Parts = append(res.Parts, part)
			}
		}
	}
}

func parseFallback(raw string, res *Result) {
	for _, m := range tagPattern.FindAllStringSubmatch(raw, -1) {
		open, close := strings.ToLower(m[1]), strings.ToLower(m[4])
		if open != close {
			continue
		}
		body := strings.TrimSpace(m[3])
		switch open {
		case "diary", "moment":
			setSideChannel(&res.Extras, open, body, true)
		default:
			if part, ok := buildPart(open, body, attrGetter(m[2])); ok {
				res.Parts = append(res.Parts, part)
			}
		}
	}
}

func attrGetter(rawAttrs string) func(name, fallback string) string {
	attrs := make(map[string]string)
	for _, m := range attrPattern.FindAllStringSubmatch(rawAttrs, -1) {
		attrs[strings.ToLower(m[1])] = m[2]
	}
	return func(name, fallback string) string {
		if v, ok := attrs[name]; ok {
			return v
		}
		return fallback
	}
}

func setSideChannel(sc *types.SideChannel, tag, value string, overwrite bool) {
	if value == "" {
		return
	}
	switch tag {
	case "diary":
		if overwrite || sc.Diary == "" {
			sc.Diary = value
		}
	case "moment":
		if overwrite || sc.Moment == "" {
			sc.Moment = value
		}
	case "memory":
		if overwrite || sc.Memory == "" {
			sc.Memory = value
		}
	}
}

// buildPart 由标签名、标签体和属性读取函数构造单个消息片段。
// 标签体为空时整个片段被跳过
func buildPart(tag, body string, attr func(name, fallback string) string) (types.ParsedPart, bool) {
	if body == "" {
		return types.ParsedPart{}, false
	}

	part := types.ParsedPart{Content: body}
	switch tag {
	case "words":
		part.Type = types.MESSAGE_TYPE_TEXT
	case "action":
		part.Type = types.MESSAGE_TYPE_ACTION
	case "thought":
		part.Type = types.MESSAGE_TYPE_THOUGHT
	case "state":
		part.Type = types.MESSAGE_TYPE_STATE
	case "memory":
		part.Type = types.MESSAGE_TYPE_MEMORY
	case "emoji":
		part.Type = types.MESSAGE_TYPE_EMOJI
	case "location":
		part.Type = types.MESSAGE_TYPE_LOCATION
	case "redpacket":
		part.Type = types.MESSAGE_TYPE_REDPACKET
		part.Extra.Amount = parseAmount(body)
		part.Extra.Message = attr("message", DEFAULT_REDPACKET_MESSAGE)
	case "transfer":
		part.Type = types.MESSAGE_TYPE_TRANSFER
		part.Extra.Amount = parseAmount(body)
		part.Extra.Message = attr("message", "")
	case "product":
		part.Type = types.MESSAGE_TYPE_PRODUCT
		part.Extra.ProductName = attr("name", DEFAULT_PRODUCT_NAME)
		part.Extra.Price = attr("price", "")
		part.Extra.Image = attr("image", "")
	case "link":
		part.Type = types.MESSAGE_TYPE_LINK
		part.Extra.LinkTitle = attr("title", DEFAULT_LINK_TITLE)
		part.Extra.URL = attr("url", "")
	case "note":
		part.Type = types.MESSAGE_TYPE_NOTE
		part.Extra.NoteTitle = attr("title", DEFAULT_NOTE_TITLE)
	default:
		return types.ParsedPart{}, false
	}
	return part, true
}

// parseAmount 金额解析失败时一律按0处理，不向上传递错误
func parseAmount(body string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(body), 64)
	if err != nil {
		return 0
	}
	return v
}
