package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/agrischeme/backend/internal/core/domain"
	"github.com/agrischeme/backend/internal/core/ports"
)

const (
	maxQuestionChars = 500
	maxContextChars  = 5000
)

// AdvisoryUseCase proxies farmer questions about a scheme to the AI
// collaborator after bounding the inputs.
type AdvisoryUseCase struct {
	generator ports.AdvisoryGenerator
}

func NewAdvisoryUseCase(generator ports.AdvisoryGenerator) *AdvisoryUseCase {
	return &AdvisoryUseCase{generator: generator}
}

func (uc *AdvisoryUseCase) Ask(
	ctx context.Context,
	question domain.AdvisoryQuestion,
) (domain.AdvisoryAnswer, error) {
	question.Question = strings.TrimSpace(question.Question)
	question.SchemeContext = strings.TrimSpace(question.SchemeContext)
	question.Language = strings.TrimSpace(question.Language)
	if question.Language == "" {
		question.Language = domain.DefaultLanguage
	}

	switch {
	case question.Question == "":
		return domain.AdvisoryAnswer{}, domain.WrapError(
			domain.ErrInvalidInput, "ask advisory", errors.New("question is required"))
	case len(question.Question) > maxQuestionChars:
		return domain.AdvisoryAnswer{}, domain.WrapError(
			domain.ErrInvalidInput, "ask advisory", errors.New("question is too long"))
	case len(question.SchemeContext) > maxContextChars:
		return domain.AdvisoryAnswer{}, domain.WrapError(
			domain.ErrInvalidInput, "ask advisory", errors.New("scheme_context is too long"))
	}

	return uc.generator.Answer(ctx, question)
}
