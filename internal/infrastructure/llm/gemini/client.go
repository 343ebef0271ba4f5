package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/haiminh/plant-disease-assistant/internal/core/domain"
	"github.com/haiminh/plant-disease-assistant/internal/core/parse"
	"github.com/haiminh/plant-disease-assistant/internal/infrastructure/resilience"
	"github.com/haiminh/plant-disease-assistant/internal/observability/metrics"
)

// Client talks to the Gemini generative-language REST API. Generation and
// embedding share the HTTP client; embedding additionally shares one
// process-wide rate budget.
type Client struct {
	baseURL    string
	apiKey     string
	genModel   string
	embedModel string
	httpClient *http.Client
	executor   *resilience.Executor
	limiter    *rate.Limiter
}

type Options struct {
	Timeout  time.Duration
	Executor *resilience.Executor
	// Limiter overrides the default rate budget, mainly for tests.
	Limiter *rate.Limiter
}

// DefaultLimiter admits calls per a token bucket sized to the API budget:
// burst of `calls`, refilled across the window. Callers over budget block
// in Wait rather than receiving errors.
func DefaultLimiter(calls int, window time.Duration) *rate.Limiter {
	if calls <= 0 {
		calls = 1500
	}
	if window <= 0 {
		window = time.Minute
	}
	return rate.NewLimiter(rate.Limit(float64(calls)/window.Seconds()), calls)
}

func New(baseURL, apiKey, genModel, embedModel string, options Options) *Client {
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	limiter := options.Limiter
	if limiter == nil {
		limiter = DefaultLimiter(1500, time.Minute)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		genModel:   genModel,
		embedModel: embedModel,
		httpClient: &http.Client{Timeout: timeout},
		executor:   options.Executor,
		limiter:    limiter,
	}
}

// Classifier implements ports.QueryClassifier with one generateContent
// call and the shared reply parser.
type Classifier struct {
	client *Client
}

func NewClassifier(client *Client) *Classifier {
	return &Classifier{client: client}
}

func (c *Classifier) Classify(ctx context.Context, query string) (domain.ClassificationResult, domain.ParseOutcome, error) {
	raw, err := c.client.generateText(ctx, buildClassificationPrompt(query))
	if err != nil {
		return domain.ClassificationResult{}, domain.ParseOutcome{},
			domain.WrapError(domain.ErrExternalService, "gemini classify", err)
	}
	result, outcome := parse.Reply(raw)
	return result, outcome, nil
}

// Embedder implements ports.Embedder under the shared rate budget.
type Embedder struct {
	client  *Client
	metrics *metrics.PipelineMetrics
}

func NewEmbedder(client *Client, pipelineMetrics *metrics.PipelineMetrics) *Embedder {
	return &Embedder{client: client, metrics: pipelineMetrics}
}

func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float64, error) {
	waitStart := time.Now()
	if err := e.client.limiter.Wait(ctx); err != nil {
		return nil, domain.WrapError(domain.ErrExternalService, "embedding admission", err)
	}
	wait := time.Since(waitStart)

	vector, err := e.client.embedContent(ctx, text)
	e.metrics.ObserveEmbedding(err, wait)
	if err != nil {
		return nil, domain.WrapError(domain.ErrExternalService, "gemini embed", err)
	}
	return vector, nil
}

func (c *Client) generateText(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]any{{"text": prompt}}},
		},
		"generationConfig": map[string]any{
			"temperature":      1,
			"topP":             1,
			"maxOutputTokens":  2048,
			"responseMimeType": "text/plain",
		},
	}

	var response struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	path := fmt.Sprintf("/v1beta/models/%s:generateContent", c.genModel)
	call := func(ctx context.Context) error {
		return c.postJSON(ctx, path, reqBody, &response, "generate")
	}
	if err := c.execute(ctx, "gemini.generate", call); err != nil {
		return "", err
	}

	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini generate: empty candidate list")
	}
	var text strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	return strings.TrimSpace(text.String()), nil
}

func (c *Client) embedContent(ctx context.Context, text string) ([]float64, error) {
	reqBody := map[string]any{
		"content": map[string]any{
			"parts": []map[string]any{{"text": text}},
		},
		"taskType": "RETRIEVAL_DOCUMENT",
	}

	var response struct {
		Embedding struct {
			Values []float64 `json:"values"`
		} `json:"embedding"`
	}

	path := fmt.Sprintf("/v1beta/models/%s:embedContent", c.embedModel)
	call := func(ctx context.Context) error {
		return c.postJSON(ctx, path, reqBody, &response, "embed")
	}
	if err := c.execute(ctx, "gemini.embed", call); err != nil {
		return nil, err
	}

	if len(response.Embedding.Values) == 0 {
		return nil, fmt.Errorf("gemini embed: empty embedding result")
	}
	return response.Embedding.Values, nil
}

func (c *Client) execute(ctx context.Context, operation string, call func(context.Context) error) error {
	if c.executor == nil {
		return call(ctx)
	}
	return c.executor.Execute(ctx, operation, call, classifyGeminiError)
}
