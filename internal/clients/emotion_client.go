package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/spacesedan/emotion-reflection/config"
	"github.com/spacesedan/emotion-reflection/internal/models"
)

var ErrMalformedResponse = errors.New("malformed response")

// StatusError is returned when the emotion API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Endpoint   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status code %d", e.Endpoint, e.StatusCode)
}

type EmotionClient struct {
	Client  *http.Client
	BaseURL string
}

// wire form of the classification result; pointers expose missing fields.
type classificationPayload struct {
	Emotion    *string  `json:"emotion"`
	Confidence *float64 `json:"confidence"`
}

func NewEmotionClient(cfg config.ClientConfig) *EmotionClient {
	slog.Info("[EmotionClient] Initializing Client",
		slog.String("base_url", cfg.BaseURL),
		slog.Duration("timeout", cfg.Timeout))

	return &EmotionClient{
		Client: &http.Client{
			Timeout: cfg.Timeout,
		},
		BaseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// AnalyzeEmotion sends text as-is to POST /analyze-emotion.
func (e *EmotionClient) AnalyzeEmotion(ctx context.Context, text string) (models.ClassificationResult, error) {
	var payload classificationPayload
	start := time.Now()

	err := e.postJSON(ctx, e.BaseURL+ANALYZE_EMOTION_PATH, models.ClassificationRequest{Text: text}, &payload)
	if err != nil {
		slog.Error("[EmotionClient] Emotion analysis request failed",
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return models.ClassificationResult{}, err
	}

	if payload.Emotion == nil || payload.Confidence == nil {
		slog.Error("[EmotionClient] Emotion analysis response missing fields",
			slog.Bool("has_emotion", payload.Emotion != nil),
			slog.Bool("has_confidence", payload.Confidence != nil))
		return models.ClassificationResult{}, fmt.Errorf("%w: missing emotion or confidence", ErrMalformedResponse)
	}

	slog.Debug("[EmotionClient] Emotion analysis request successful",
		slog.String("emotion", *payload.Emotion),
		slog.Float64("confidence", *payload.Confidence),
		slog.Duration("elapsed", time.Since(start)))

	return models.ClassificationResult{
		Emotion:    *payload.Emotion,
		Confidence: *payload.Confidence,
	}, nil
}

// Emotions lists the labels the service can return.
func (e *EmotionClient) Emotions(ctx context.Context) ([]string, error) {
	var result models.EmotionCatalogResponse
	if err := e.getJSON(ctx, e.BaseURL+EMOTIONS_PATH, &result); err != nil {
		return nil, err
	}
	return result.Emotions, nil
}

// HealthCheck reports whether the service root answers with status "healthy".
func (e *EmotionClient) HealthCheck(ctx context.Context) bool {
	var result models.HealthResponse
	if err := e.getJSON(ctx, e.BaseURL+HEALTH_PATH, &result); err != nil {
		slog.Debug("[EmotionClient] Health check failed",
			slog.String("error", err.Error()))
		return false
	}
	return result.Status == "healthy"
}

func (e *EmotionClient) postJSON(ctx context.Context, endpoint string, input interface{}, output interface{}) error {
	body, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("failed to marshal input: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return e.do(req, output)
}

func (e *EmotionClient) getJSON(ctx context.Context, endpoint string, output interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	return e.do(req, output)
}

func (e *EmotionClient) do(req *http.Request, output interface{}) error {
	endpoint := req.URL.String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := e.Client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, MAX_RESPONSE_BYTES))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Warn("[EmotionClient] Non-success status",
			slog.String("endpoint", endpoint),
			slog.Int("status_code", resp.StatusCode),
			getPreview(respBody))
		return &StatusError{StatusCode: resp.StatusCode, Endpoint: endpoint}
	}

	if err := json.Unmarshal(respBody, output); err != nil {
		slog.Error("[EmotionClient] Failed to unmarshal response",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()),
			getPreview(respBody),
			slog.Int("raw_response_length", len(respBody)))
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return nil
}

func getPreview(respBody []byte) slog.Attr {
	raw := string(respBody)
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return slog.String("raw_response", raw)
}
