package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/agrischeme/backend/internal/core/domain"
)

type stubAdvisoryGenerator struct {
	got    domain.AdvisoryQuestion
	answer domain.AdvisoryAnswer
	err    error
	calls  int
}

func (g *stubAdvisoryGenerator) Answer(_ context.Context, q domain.AdvisoryQuestion) (domain.AdvisoryAnswer, error) {
	g.calls++
	g.got = q
	return g.answer, g.err
}

func TestAskTrimsAndDefaultsLanguage(t *testing.T) {
	gen := &stubAdvisoryGenerator{answer: domain.AdvisoryAnswer{Answer: "Apply through your bank."}}
	uc := NewAdvisoryUseCase(gen)

	answer, err := uc.Ask(context.Background(), domain.AdvisoryQuestion{
		Question:      "  How do I apply for crop insurance?  ",
		SchemeContext: "\tPMFBY covers yield losses.\n",
	})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if answer.Answer != "Apply through your bank." {
		t.Fatalf("answer = %q", answer.Answer)
	}
	if gen.got.Question != "How do I apply for crop insurance?" {
		t.Fatalf("question not trimmed: %q", gen.got.Question)
	}
	if gen.got.SchemeContext != "PMFBY covers yield losses." {
		t.Fatalf("context not trimmed: %q", gen.got.SchemeContext)
	}
	if gen.got.Language != domain.DefaultLanguage {
		t.Fatalf("language = %q, want default %q", gen.got.Language, domain.DefaultLanguage)
	}
}

func TestAskKeepsExplicitLanguage(t *testing.T) {
	gen := &stubAdvisoryGenerator{}
	uc := NewAdvisoryUseCase(gen)

	if _, err := uc.Ask(context.Background(), domain.AdvisoryQuestion{Question: "फसल बीमा क्या है?", Language: " hi "}); err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if gen.got.Language != "hi" {
		t.Fatalf("language = %q, want hi", gen.got.Language)
	}
}

func TestAskValidatesBounds(t *testing.T) {
	gen := &stubAdvisoryGenerator{}
	uc := NewAdvisoryUseCase(gen)

	cases := []domain.AdvisoryQuestion{
		{Question: ""},
		{Question: "   "},
		{Question: strings.Repeat("q", maxQuestionChars+1)},
		{Question: "ok?", SchemeContext: strings.Repeat("c", maxContextChars+1)},
	}
	for i, q := range cases {
		if _, err := uc.Ask(context.Background(), q); !domain.IsKind(err, domain.ErrInvalidInput) {
			t.Fatalf("case %d: err = %v, want ErrInvalidInput", i, err)
		}
	}
	if gen.calls != 0 {
		t.Fatalf("generator called %d times for invalid input", gen.calls)
	}
}

func TestAskContextIsOptional(t *testing.T) {
	gen := &stubAdvisoryGenerator{}
	uc := NewAdvisoryUseCase(gen)

	if _, err := uc.Ask(context.Background(), domain.AdvisoryQuestion{Question: "Which fertilizer suits wheat?"}); err != nil {
		t.Fatalf("general question rejected: %v", err)
	}
}

func TestAskPropagatesGeneratorFailure(t *testing.T) {
	gen := &stubAdvisoryGenerator{err: domain.WrapError(domain.ErrUnavailable, "generate advisory", errors.New("502"))}
	uc := NewAdvisoryUseCase(gen)

	if _, err := uc.Ask(context.Background(), domain.AdvisoryQuestion{Question: "ok?"}); !domain.IsKind(err, domain.ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}
