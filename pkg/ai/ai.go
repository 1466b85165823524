package ai

import (
	"context"
	"log/slog"

	"github.com/pkoukk/tiktoken-go"
	openai "github.com/sashabaranov/go-openai"
)

// Completer 聊天补全驱动。实现见openai子包
type Completer interface {
	Completion(ctx context.Context, messages []openai.ChatCompletionMessage, temperature float32) (string, error)
	Model() string
}

// TOKEN_BUDGET_WARN 组装后的提示词超过该token数时仅告警，不做静默截断
const TOKEN_BUDGET_WARN = 8000

// NumTokens 估算一组消息的token数，未知模型退回cl100k_base编码
func NumTokens(messages []openai.ChatCompletionMessage, model string) (int, error) {
	tkm, err := tiktoken.EncodingForModel(model)
	if err != nil {
		if tkm, err = tiktoken.GetEncoding("cl100k_base"); err != nil {
			return 0, err
		}
	}

	num := 0
	for _, message := range messages {
		num += 4
		num += len(tkm.Encode(message.Content, nil, nil))
		num += len(tkm.Encode(message.Role, nil, nil))
		for _, part := range message.MultiContent {
			if part.Type == openai.ChatMessagePartTypeText {
				num += len(tkm.Encode(part.Text, nil, nil))
			}
		}
	}
	num += 3
	return num, nil
}

// WarnIfOverBudget 超出token预算时打点日志，供排查上下文过长的会话
func WarnIfOverBudget(messages []openai.ChatCompletionMessage, model, sessionID string) {
	num, err := NumTokens(messages, model)
	if err != nil {
		slog.Debug("failed to count prompt tokens", slog.String("model", model), slog.String("error", err.Error()))
		return
	}
	if num > TOKEN_BUDGET_WARN {
		slog.Warn("prompt token over budget",
			slog.String("session_id", sessionID),
			slog.String("model", model),
			slog.Int("tokens", num))
	}
}
