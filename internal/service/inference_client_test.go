package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"elderguard-data/internal/config"
)

func newTestInferenceClient(baseURL, apiKey string) *InferenceClient {
	return NewInferenceClient(&config.InferenceConfig{
		BaseURL:        baseURL,
		APIKey:         apiKey,
		SummarizeModel: "facebook/bart-large-cnn",
		GenerateModel:  "google/flan-t5-large",
	}, zap.NewNop())
}

func TestSummarize_SimulatedWhenKeyMissing(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := newTestInferenceClient(server.URL, "")

	summary := client.Summarize(context.Background(), "Patient shows stable vitals.")

	assert.Equal(t, simulationSummary, summary)
	assert.False(t, called, "simulated mode must not hit the network")
}

func TestSummarize_Success(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"summary_text":"Patient is recovering well."}]`))
	}))
	defer server.Close()

	client := newTestInferenceClient(server.URL, "hf-key")

	summary := client.Summarize(context.Background(), "Long medical report text ...")

	assert.Equal(t, "Patient is recovering well.", summary)
	assert.Equal(t, "/models/facebook/bart-large-cnn", gotPath)
}

func TestSummarize_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"Model is currently loading"}`))
	}))
	defer server.Close()

	client := newTestInferenceClient(server.URL, "hf-key")

	summary := client.Summarize(context.Background(), "text")

	assert.Equal(t, errorSummary, summary)
}

func TestGenerate_SimulatedWhenKeyMissing(t *testing.T) {
	client := newTestInferenceClient("http://unused.invalid", "")

	reply := client.Generate(context.Background(), "Analyze ...")

	assert.Equal(t, simulationGenerateReply, reply)
}

func TestGenerate_Success(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"generated_text":"Stage: Normal Aging\nScore: 20\nAdvice: Keep active, Stay social, Sleep well"}]`))
	}))
	defer server.Close()

	client := newTestInferenceClient(server.URL, "hf-key")

	reply := client.Generate(context.Background(), "Analyze the following behavior logs ...")

	assert.Contains(t, reply, "Stage: Normal Aging")
	assert.Equal(t, "/models/google/flan-t5-large", gotPath)
}

func TestGenerate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestInferenceClient(server.URL, "hf-key")

	reply := client.Generate(context.Background(), "prompt")

	assert.Equal(t, errorGenerateReply, reply)
}
