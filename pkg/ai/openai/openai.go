// Package openai 封装OpenAI兼容接口的聊天补全驱动
package openai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/Liunian06/LNChat-sub000/pkg/ai"
	"github.com/Liunian06/LNChat-sub000/pkg/errors"
	"github.com/Liunian06/LNChat-sub000/pkg/i18n"
	"github.com/Liunian06/LNChat-sub000/pkg/metrics"
	"github.com/Liunian06/LNChat-sub000/pkg/types"
)

const NAME = "openai"

const (
	// 首次调用之外最多自动重试2次，固定间隔
	MAX_RETRIES    = 2
	RETRY_INTERVAL = time.Second * 2
)

var (
	completionCounter = metrics.NewCounterVec("completion_request", []string{"model"})
	completionErrors  = metrics.NewCounterVec("completion_error", []string{"model", "kind"})
	completionTime    = metrics.NewHistogramVec("completion_request_time", []string{"model"})
)

type Driver struct {
	client   *openai.Client
	endpoint string
	model    string
	limiter  *rate.Limiter
}

var _ ai.Completer = (*Driver)(nil)

// New 按预设构造驱动。endpoint为空时走官方默认地址
func New(preset types.APIPreset) *Driver {
	cfg := openai.DefaultConfig(preset.APIKey)
	if preset.Endpoint != "" {
		cfg.BaseURL = preset.Endpoint
	}

	return &Driver{
		client:   openai.NewClientWithConfig(cfg),
		endpoint: preset.Endpoint,
		model:    preset.Model,
		limiter:  rate.NewLimiter(rate.Every(time.Second), 3),
	}
}

func (d *Driver) Model() string {
	return d.model
}

// Completion 发起一次补全请求，网络失败与空choices按同一重试策略处理，
// 耗尽后返回的错误带有endpoint/model/attempts细节供用户手动重试
func (d *Driver) Completion(ctx context.Context, messages []openai.ChatCompletionMessage, temperature float32) (string, error) {
	if err := d.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req := openai.ChatCompletionRequest{
		Model:       d.model,
		Messages:    messages,
		Temperature: temperature,
	}

	var (
		content  string
		attempts int
	)

	timer := completionTime.WithLabelValues(d.model)
	begin := time.Now()
	defer func() {
		timer.Observe(time.Since(begin).Seconds())
	}()

	operation := func() error {
		attempts++
		completionCounter.WithLabelValues(d.model).Inc()

		resp, err := d.client.CreateChatCompletion(ctx, req)
		if err != nil {
			completionErrors.WithLabelValues(d.model, "request").Inc()
			slog.Warn("completion request failed",
				slog.String("driver", NAME),
				slog.String("model", d.model),
				slog.Int("attempt", attempts),
				slog.String("error", err.Error()))
			return err
		}
		if len(resp.Choices) == 0 {
			completionErrors.WithLabelValues(d.model, "empty").Inc()
			return fmt.Errorf("empty choices in completion response")
		}
		content = resp.Choices[0].Message.Content
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(RETRY_INTERVAL), MAX_RETRIES), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return "", errors.New("openai.Completion", i18n.ERROR_AI_REQUEST_FAILED, err).WithData(map[string]interface{}{
			"endpoint": d.endpoint,
			"model":    d.model,
			"attempts": attempts,
		})
	}

	return content, nil
}
