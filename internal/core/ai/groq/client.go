package groq

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"recipe-pantry/internal/infrastructure/config"
	"recipe-pantry/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// FinishReasonStop 模型正常結束輸出
const FinishReasonStop = "stop"

// Client Groq 聊天補全 API 客戶端
type Client struct {
	config *config.Config
	client *resty.Client
}

// Message 消息結構
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request Groq 請求結構（OpenAI 相容格式）
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// Response Groq 響應結構
type Response struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// Completion 單次補全的結果
// FinishedNormally 下游用作信心等級的提示
type Completion struct {
	Content          string
	FinishedNormally bool
}

// NewClient 創建 Groq 客戶端
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(cfg.Groq.BaseURL).
		SetTimeout(cfg.Groq.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.Groq.APIKey)).
		SetHeader("Content-Type", "application/json")

	return &Client{
		config: cfg,
		client: client,
	}
}

// Complete 發送一次聊天補全請求，取回頂部選項的原始文字
// 不做重試：傳輸錯誤或非 2xx 回應一律回報「推薦來源不可用」
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (*Completion, error) {
	req := &Request{
		Model: c.config.Groq.Model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: c.config.Groq.Temperature,
		MaxTokens:   c.config.Groq.MaxTokens,
	}

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&Response{}).
		Post("/chat/completions")
	common.LogAICall(time.Since(start), err, requestIDFromContext(ctx))

	if err != nil {
		return nil, common.ErrSuggestionUnavailable.WithCause(fmt.Errorf("failed to send request to Groq: %w", err))
	}

	if resp.StatusCode() != http.StatusOK {
		common.LogError("Groq API 回應非 200",
			zap.Int("status", resp.StatusCode()),
			zap.String("body", truncate(resp.String(), 500)),
		)
		return nil, common.ErrSuggestionUnavailable.WithCause(fmt.Errorf("groq API returned status %d", resp.StatusCode()))
	}

	result, ok := resp.Result().(*Response)
	if !ok || result == nil {
		return nil, common.ErrSuggestionUnavailable.WithCause(fmt.Errorf("failed to parse Groq response"))
	}

	if len(result.Choices) == 0 {
		return nil, common.ErrSuggestionUnavailable.WithCause(fmt.Errorf("no choices in Groq response"))
	}

	choice := result.Choices[0]
	return &Completion{
		Content:          choice.Message.Content,
		FinishedNormally: choice.FinishReason == FinishReasonStop,
	}, nil
}

// truncate 截斷過長字串避免日誌爆量
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

type ctxKey string

// RequestIDKey context 中的請求 ID 鍵
const RequestIDKey ctxKey = "request_id"

func requestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(RequestIDKey).(string); ok {
		return v
	}
	return ""
}
