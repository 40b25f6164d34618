package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/emotion-reflection/config"
	"github.com/spacesedan/emotion-reflection/internal/clients"
	"github.com/spacesedan/emotion-reflection/internal/models"
	"github.com/spacesedan/emotion-reflection/internal/reflection"
	"github.com/spacesedan/emotion-reflection/internal/sentiment"
)

func testConfig() config.ServerConfig {
	return config.ServerConfig{
		Addr:           "127.0.0.1:0",
		AllowedOrigins: []string{"http://localhost:3000"},
		MaxTextLength:  20,
	}
}

func fixedAnalyzer(emotion string, confidence float64) AnalyzeFunc {
	return func(string) (string, float64) { return emotion, confidence }
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/analyze-emotion", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAnalyzeEmotionOK(t *testing.T) {
	s := NewServer(testConfig(), fixedAnalyzer("Happy", 0.92), sentiment.Emotions())

	rec := post(t, s.Handler(), `{"text":"I feel great"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got models.ClassificationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, models.ClassificationResult{Emotion: "Happy", Confidence: 0.92}, got)
}

func TestAnalyzeEmotionBadRequests(t *testing.T) {
	s := NewServer(testConfig(), fixedAnalyzer("Happy", 0.92), sentiment.Emotions())

	cases := map[string]string{
		"not json":     `text=hello`,
		"missing text": `{"message":"hello"}`,
		"blank text":   `{"text":"   "}`,
		"too long":     `{"text":"` + strings.Repeat("é", 21) + `"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := post(t, s.Handler(), body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var got models.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.NotEmpty(t, got.Detail)
		})
	}
}

func TestAnalyzeEmotionMaxLengthCountsCharacters(t *testing.T) {
	s := NewServer(testConfig(), fixedAnalyzer("Calm", 0.5), sentiment.Emotions())
	rec := post(t, s.Handler(), `{"text":"`+strings.Repeat("é", 20)+`"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAnalyzeEmotionAnalyzerPanic(t *testing.T) {
	s := NewServer(testConfig(), func(string) (string, float64) { panic("model unavailable") }, nil)

	rec := post(t, s.Handler(), `{"text":"hello"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error analyzing emotion: model unavailable")
}

func TestHealthAndEmotions(t *testing.T) {
	s := NewServer(testConfig(), sentiment.AnalyzeEmotion, sentiment.Emotions())

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var health models.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/emotions", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var catalog models.EmotionCatalogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &catalog))
	assert.Equal(t, 8, catalog.TotalCount)
	assert.Equal(t, sentiment.Emotions(), catalog.Emotions)
}

func TestCORSPreflight(t *testing.T) {
	s := NewServer(testConfig(), fixedAnalyzer("Happy", 0.9), nil)

	req := httptest.NewRequest(http.MethodOptions, "/analyze-emotion", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	s := NewServer(testConfig(), fixedAnalyzer("Sad", 0.65), nil)
	post(t, s.Handler(), `{"text":"so down"}`)
	post(t, s.Handler(), `{"text":""}`)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `emotion_api_emotions_detected_total{emotion="Sad"} 1`)
	assert.Contains(t, string(body), `emotion_api_analyze_requests_total{code="400"} 1`)
}

func TestRunStopsOnCancel(t *testing.T) {
	s := NewServer(testConfig(), fixedAnalyzer("Calm", 0.5), nil)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

// The reflection controller, HTTP client and service working together.
func TestControllerAgainstService(t *testing.T) {
	srv := httptest.NewServer(NewServer(testConfig(), sentiment.AnalyzeEmotion, sentiment.Emotions()).Handler())
	defer srv.Close()

	client := clients.NewEmotionClient(config.ClientConfig{BaseURL: srv.URL, Timeout: 2 * time.Second})
	c := reflection.NewController(client)

	sub, err := c.Submit(context.Background(), "I am happy today")
	require.NoError(t, err)
	assert.Equal(t, reflection.PhaseLoading, c.State().Phase())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, sub.Wait(ctx))

	state, ok := c.State().(reflection.Succeeded)
	require.True(t, ok, "got %T", c.State())
	assert.Equal(t, "Happy", state.Result.Emotion)

	sub, err = c.Submit(context.Background(), strings.Repeat("a", 21))
	require.NoError(t, err)
	var statusErr *clients.StatusError
	require.ErrorAs(t, sub.Wait(ctx), &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	assert.Equal(t, reflection.Failed{Message: reflection.GenericFailureMessage}, c.State())
}
