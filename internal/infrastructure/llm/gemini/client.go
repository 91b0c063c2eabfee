package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/agrischeme/backend/internal/core/domain"
	"github.com/agrischeme/backend/internal/infrastructure/resilience"
)

const (
	generationTemperature = 0.4
	generationMaxTokens   = 2048
)

// Client calls the Gemini generateContent API to answer farmer questions.
type Client struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(baseURL, model, apiKey string, executor *resilience.Executor) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		executor:   executor,
	}
}

func (c *Client) Answer(ctx context.Context, question domain.AdvisoryQuestion) (domain.AdvisoryAnswer, error) {
	if c.apiKey == "" {
		return domain.AdvisoryAnswer{}, domain.WrapError(domain.ErrUnavailable, "advisory",
			fmt.Errorf("gemini api key is not configured"))
	}

	request := generateContentRequest{
		Contents: []content{{
			Parts: []part{{Text: buildAdvisoryPrompt(question)}},
		}},
		GenerationConfig: generationConfig{
			Temperature:     generationTemperature,
			MaxOutputTokens: generationMaxTokens,
		},
	}

	var response generateContentResponse
	call := func(ctx context.Context) error {
		return c.postJSON(ctx, request, &response)
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, "gemini.generate", call, classifyGeminiError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return domain.AdvisoryAnswer{}, wrapAdvisoryError(err)
	}

	text := response.firstText()
	if text == "" {
		return domain.AdvisoryAnswer{}, domain.WrapError(domain.ErrUnavailable, "advisory",
			fmt.Errorf("gemini returned no candidates"))
	}
	return domain.AdvisoryAnswer{Answer: text}, nil
}

type generateContentRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (r generateContentResponse) firstText() string {
	for _, candidate := range r.Candidates {
		for _, p := range candidate.Content.Parts {
			if text := strings.TrimSpace(p.Text); text != "" {
				return text
			}
		}
	}
	return ""
}
