package suggestion

import (
	"context"

	"recipe-pantry/internal/core/ai/groq"
	"recipe-pantry/internal/pkg/common"

	"go.uber.org/zap"
)

// Service 食譜推薦服務
// 流程：組 prompt → 呼叫 Groq → 清理 → 驗證 → 附註來源與信心等級
type Service struct {
	client *groq.Client
	cache  *Cache
}

// NewService 創建推薦服務
func NewService(client *groq.Client, cache *Cache) *Service {
	return &Service{
		client: client,
		cache:  cache,
	}
}

// Request 根據使用者的食材清單取得已驗證的推薦
// 空清單是前置條件失敗，不會發出外部呼叫
// 單次同步請求、不重試：上游失敗立即回報給呼叫方
func (s *Service) Request(ctx context.Context, ingredientNames []string, limit int) ([]Suggestion, error) {
	if len(ingredientNames) == 0 {
		return nil, common.ErrEmptyIngredientList
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	// 先查快取
	var key string
	if s.cache != nil {
		key = s.cache.Key(ingredientNames, limit)
		if cached, err := s.cache.Get(ctx, key); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	completion, err := s.client.Complete(ctx, systemPromptText, buildUserPrompt(ingredientNames, limit))
	if err != nil {
		return nil, err
	}

	content := Sanitize(completion.Content)
	common.LogDebug("已清理的 Groq 回應",
		zap.Int("length", len(content)),
		zap.Bool("finished_normally", completion.FinishedNormally),
	)

	suggestions, err := Validate(content, completion.FinishedNormally)
	if err != nil {
		common.LogError("推薦驗證失敗",
			zap.Error(err),
			zap.Int("content_length", len(content)),
		)
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, suggestions); err != nil {
			common.LogWarn("推薦快取寫入失敗", zap.Error(err))
		}
	}

	return suggestions, nil
}

// systemPromptText 啟動時組好的固定 system prompt
var systemPromptText = systemPrompt()
