package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/GregMSThompson/luongnho/internal/dto"
	"github.com/GregMSThompson/luongnho/internal/errs"
	"github.com/GregMSThompson/luongnho/pkg/helpers"
	"github.com/GregMSThompson/luongnho/pkg/logger"
)

const (
	FallbackDescription = "Chuyen khoan"
	ZeroAmountWords     = "Không đồng"
)

type vertexClient interface {
	GenerateContent(ctx context.Context, req dto.VertexGenerateRequest) (dto.VertexGenerateResponse, error)
}

type suggestService struct {
	vertex vertexClient
}

// NewSuggestService accepts a nil client; every call then degrades to its fallback.
func NewSuggestService(vertex vertexClient) *suggestService {
	return &suggestService{vertex: vertex}
}

// Suggest turns a few keywords into a short Vietnamese transfer memo.
// Model failures never reach the caller: they fall back to "Chuyen khoan".
func (s *suggestService) Suggest(ctx context.Context, keywords string) (string, error) {
	keywords = strings.TrimSpace(keywords)
	if keywords == "" {
		return "", errs.NewMissingFieldsError("Nhập một vài từ khóa vào ô nội dung để AI gợi ý.", "context")
	}

	log := logger.FromContext(ctx)
	if s.vertex == nil {
		log.Warn("suggestion model not configured, using fallback")
		return FallbackDescription, nil
	}

	resp, err := s.vertex.GenerateContent(ctx, dto.VertexGenerateRequest{
		UserMessage: fmt.Sprintf("Suggest a professional and concise Vietnamese transfer description for: %s. "+
			"Keep it under 50 characters. Just return the text.", keywords),
		Temperature:     helpers.Ptr[float32](0.4),
		MaxOutputTokens: helpers.Ptr[int32](64),
	})
	if err != nil {
		log.Warn("suggestion failed, using fallback", "error", err)
		return FallbackDescription, nil
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return FallbackDescription, nil
	}
	return text, nil
}

// AmountInWords spells an amount out in Vietnamese. Zero is answered
// locally; without a model, or on failure, the result is empty.
func (s *suggestService) AmountInWords(ctx context.Context, amount int64) (string, error) {
	if amount < 0 {
		return "", errs.NewValidationError("amount must not be negative")
	}
	if amount == 0 {
		return ZeroAmountWords, nil
	}
	if s.vertex == nil {
		return "", nil
	}

	resp, err := s.vertex.GenerateContent(ctx, dto.VertexGenerateRequest{
		UserMessage: fmt.Sprintf("Vietnamese representation of the amount %d in words. "+
			"For example: 'Một triệu hai trăm nghìn đồng'. Just return the words.", amount),
		Temperature: helpers.Ptr[float32](0),
	})
	if err != nil {
		logger.FromContext(ctx).Warn("amount in words failed", "error", err)
		return "", nil
	}
	return strings.TrimSpace(resp.Text), nil
}
