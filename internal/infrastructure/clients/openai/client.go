package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/gatherhq/gatherly/internal/domain/providers"
	"github.com/gatherhq/gatherly/pkg/config"
	"github.com/gatherhq/gatherly/pkg/retry"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Client implements providers.LanguageModelProvider against the OpenAI
// Responses API with schema-constrained JSON output.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	retryCfg   retry.Config
}

// NewClient creates a new OpenAI client.
func NewClient(cfg *config.OpenAIConfig) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, providers.ErrLanguageModelUnavailable
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	baseDelay := time.Duration(cfg.RetryBaseDelay) * time.Millisecond
	if baseDelay <= 0 {
		baseDelay = time.Second
	}

	return &Client{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
		retryCfg: retry.Config{
			// MaxAttempts counts the first call plus the retries.
			MaxAttempts:   maxRetries + 1,
			InitialDelay:  baseDelay,
			MaxDelay:      30 * time.Second,
			BackoffFactor: 2.0,
		},
	}, nil
}

type responseContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type responseOutput struct {
	Content []responseContent `json:"content"`
}

type responseEnvelope struct {
	Output []responseOutput `json:"output"`
}

// Generate performs schema-validated JSON generation. Network and 5xx/429
// failures are retried with exponential backoff; any structurally wrong
// response fails immediately wrapped in providers.ErrResponseMalformed.
func (c *Client) Generate(ctx context.Context, prompt, systemInstruction string, outputSchema json.RawMessage) ([]byte, error) {
	payload := map[string]interface{}{
		"model": c.model,
		"input": []map[string]string{
			{"role": "system", "content": systemInstruction},
			{"role": "user", "content": prompt},
		},
		"temperature":       0.2,
		"max_output_tokens": 900,
	}
	if len(outputSchema) > 0 {
		payload["text"] = map[string]interface{}{
			"format": map[string]interface{}{
				"type":   "json_schema",
				"name":   "structured_output",
				"schema": outputSchema,
				"strict": true,
			},
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	var result []byte
	err = retry.Do(ctx, c.retryCfg, func() error {
		out, callErr := c.call(ctx, body)
		if callErr != nil {
			return callErr
		}
		result = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) call(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewReader(body))
	if err != nil {
		return nil, retry.Permanent(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		recordRequestMetric(ctx, c.model, 0, time.Since(start), err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := fmt.Errorf("openai request failed with status %d", resp.StatusCode)
		recordRequestMetric(ctx, c.model, resp.StatusCode, time.Since(start), statusErr)
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return nil, statusErr
		}
		// Other 4xx responses will not improve on retry.
		return nil, retry.Permanent(statusErr)
	}

	var envelope responseEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		recordRequestMetric(ctx, c.model, resp.StatusCode, time.Since(start), err)
		return nil, retry.Permanent(fmt.Errorf("%w: %v", providers.ErrResponseMalformed, err))
	}

	var text string
	for _, out := range envelope.Output {
		for _, content := range out.Content {
			if content.Type == "output_text" && content.Text != "" {
				text = content.Text
				break
			}
		}
		if text != "" {
			break
		}
	}

	if text == "" {
		err := errors.New("response missing output text")
		recordRequestMetric(ctx, c.model, resp.StatusCode, time.Since(start), err)
		return nil, retry.Permanent(fmt.Errorf("%w: %v", providers.ErrResponseMalformed, err))
	}

	cleaned := stripCodeFences(text)
	if !json.Valid([]byte(cleaned)) {
		err := errors.New("output text is not valid JSON")
		recordRequestMetric(ctx, c.model, resp.StatusCode, time.Since(start), err)
		return nil, retry.Permanent(fmt.Errorf("%w: %v", providers.ErrResponseMalformed, err))
	}

	recordRequestMetric(ctx, c.model, resp.StatusCode, time.Since(start), nil)
	return []byte(cleaned), nil
}

// stripCodeFences removes Markdown code blocks some models wrap JSON in.
func stripCodeFences(text string) string {
	cleaned := text
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	return strings.TrimSpace(cleaned)
}

type clientMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
}

var (
	metricsOnce  sync.Once
	metrics      clientMetrics
	metricsReady bool
)

func ensureMetrics() {
	metricsOnce.Do(initMetrics)
}

func initMetrics() {
	meter := otel.Meter("github.com/gatherhq/gatherly/openai")

	requestCount, err := meter.Int64Counter(
		"ai.openai.request.count",
		metric.WithDescription("Number of OpenAI requests"),
	)
	if err != nil {
		return
	}
	requestDuration, err := meter.Float64Histogram(
		"ai.openai.request.duration",
		metric.WithDescription("OpenAI request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}
	requestErrors, err := meter.Int64Counter(
		"ai.openai.request.errors",
		metric.WithDescription("Number of OpenAI request errors"),
	)
	if err != nil {
		return
	}

	metrics = clientMetrics{
		requestCount:    requestCount,
		requestDuration: requestDuration,
		requestErrors:   requestErrors,
	}
	metricsReady = true
}

func recordRequestMetric(ctx context.Context, model string, statusCode int, duration time.Duration, err error) {
	ensureMetrics()
	if !metricsReady {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "openai"),
		attribute.String("ai.model", model),
	}
	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	metrics.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	metrics.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		metrics.requestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
