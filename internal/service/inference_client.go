package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"elderguard-data/internal/config"
)

const (
	simulationSummary = "[SIMULATION] AI Key missing. Summary: Patient is healthy but needs rest."
	errorSummary      = "AI Summarization unavailable at the moment."

	simulationGenerateReply = "Stage: Simulation Mode (No Key)\nScore: 10\nAdvice: Add HUGGINGFACE_API_KEY to enable real AI."
	errorGenerateReply      = "Stage: Error\nScore: 0\nAdvice: AI Service Error. Please check logs."
)

// summarizeParameters 摘要任务参数
type summarizeParameters struct {
	MaxLength int `json:"max_length"`
	MinLength int `json:"min_length"`
}

// summarizeRequest Hugging Face Inference API 摘要请求
type summarizeRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters summarizeParameters `json:"parameters"`
}

// summarizeResponse 摘要响应（API 返回数组）
type summarizeResponse struct {
	SummaryText string `json:"summary_text"`
}

// generateParameters 文本生成任务参数
type generateParameters struct {
	MaxNewTokens int     `json:"max_new_tokens"`
	Temperature  float64 `json:"temperature"`
}

// generateRequest Hugging Face Inference API 文本生成请求
type generateRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters generateParameters `json:"parameters"`
}

// generateResponse 文本生成响应（API 返回数组）
type generateResponse struct {
	GeneratedText string `json:"generated_text"`
}

// InferenceClient Hugging Face Inference API 客户端
// API Key 缺失时进入模拟模式：返回固定文案，不发起网络调用
// 调用失败同样折叠为固定文案，调用方无需区分处理
type InferenceClient struct {
	httpClient     *resty.Client
	apiKey         string
	summarizeModel string
	generateModel  string
	logger         *zap.Logger
}

// NewInferenceClient 创建推理客户端
func NewInferenceClient(cfg *config.InferenceConfig, logger *zap.Logger) *InferenceClient {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(30 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &InferenceClient{
		httpClient:     client,
		apiKey:         cfg.APIKey,
		summarizeModel: cfg.SummarizeModel,
		generateModel:  cfg.GenerateModel,
		logger:         logger,
	}
}

// 确保实现了接口
var (
	_ Summarizer    = (*InferenceClient)(nil)
	_ TextGenerator = (*InferenceClient)(nil)
)

// Simulated 是否处于模拟模式（API Key 缺失）
func (c *InferenceClient) Simulated() bool {
	return c.apiKey == ""
}

// Summarize 对医疗文本做摘要
// 模拟模式或调用失败时返回固定文案，不返回error
func (c *InferenceClient) Summarize(ctx context.Context, text string) string {
	if c.Simulated() {
		c.logger.Info("Simulated summarization (API key missing)")
		return simulationSummary
	}

	var results []summarizeResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetAuthToken(c.apiKey).
		SetBody(summarizeRequest{
			Inputs: text,
			Parameters: summarizeParameters{
				MaxLength: 150,
				MinLength: 40,
			},
		}).
		SetResult(&results).
		Post(fmt.Sprintf("/models/%s", c.summarizeModel))

	if err != nil {
		c.logger.Error("Summarization API call failed", zap.Error(err))
		return errorSummary
	}
	if resp.IsError() {
		c.logger.Error("Summarization API returned error",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("response", resp.String()),
		)
		return errorSummary
	}
	if len(results) == 0 || results[0].SummaryText == "" {
		c.logger.Error("Summarization API returned empty result")
		return errorSummary
	}

	return results[0].SummaryText
}

// Generate 文本生成
// 模拟模式或调用失败时返回固定格式回复，由调用方的解析路径统一处理
func (c *InferenceClient) Generate(ctx context.Context, prompt string) string {
	if c.Simulated() {
		c.logger.Info("Simulated text generation (API key missing)")
		return simulationGenerateReply
	}

	var results []generateResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetAuthToken(c.apiKey).
		SetBody(generateRequest{
			Inputs: prompt,
			Parameters: generateParameters{
				MaxNewTokens: 200,
				Temperature:  0.1,
			},
		}).
		SetResult(&results).
		Post(fmt.Sprintf("/models/%s", c.generateModel))

	if err != nil {
		c.logger.Error("Text generation API call failed", zap.Error(err))
		return errorGenerateReply
	}
	if resp.IsError() {
		c.logger.Error("Text generation API returned error",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("response", resp.String()),
		)
		return errorGenerateReply
	}
	if len(results) == 0 || results[0].GeneratedText == "" {
		c.logger.Error("Text generation API returned empty result")
		return errorGenerateReply
	}

	return results[0].GeneratedText
}
