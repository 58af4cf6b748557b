package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"elderguard-data/internal/config"
	"elderguard-data/internal/domain"
)

// WhatsAppTextBody 文本消息内容
type WhatsAppTextBody struct {
	Body string `json:"body"`
}

// WhatsAppMessageRequest WhatsApp Cloud API 消息请求
type WhatsAppMessageRequest struct {
	MessagingProduct string           `json:"messaging_product"`
	To               string           `json:"to"`
	Type             string           `json:"type"`
	Text             WhatsAppTextBody `json:"text"`
}

// WhatsAppClient WhatsApp Cloud API 客户端（Message Dispatcher）
// 凭证缺失时进入模拟模式：不发起网络调用，返回 status=simulated
type WhatsAppClient struct {
	httpClient    *resty.Client
	phoneNumberID string
	accessToken   string
	logger        *zap.Logger
}

// NewWhatsAppClient 创建 WhatsApp 客户端
// 单次发送、无重试（分发策略为 fire-and-forget），超时显式设为 10 秒
func NewWhatsAppClient(cfg *config.WhatsAppConfig, logger *zap.Logger) *WhatsAppClient {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &WhatsAppClient{
		httpClient:    client,
		phoneNumberID: cfg.PhoneNumberID,
		accessToken:   cfg.AccessToken,
		logger:        logger,
	}
}

// 确保实现了接口
var _ Dispatcher = (*WhatsAppClient)(nil)

// Simulated 是否处于模拟模式（凭证缺失）
func (c *WhatsAppClient) Simulated() bool {
	return c.phoneNumberID == "" || c.accessToken == ""
}

// Send 发送一条文本消息到指定电话号码
// 失败不向上传播：结果编码在 DispatchResult.Status 中（simulated/sent/error）
func (c *WhatsAppClient) Send(ctx context.Context, to, body string) domain.DispatchResult {
	if c.Simulated() {
		c.logger.Info("Simulated WhatsApp message (credentials missing)",
			zap.String("to", to),
			zap.String("message", body),
		)
		return domain.DispatchResult{
			Status:    domain.DispatchSimulated,
			Recipient: to,
			Detail:    body,
		}
	}

	request := WhatsAppMessageRequest{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             WhatsAppTextBody{Body: body},
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetAuthToken(c.accessToken).
		SetBody(request).
		Post(fmt.Sprintf("/%s/messages", c.phoneNumberID))

	if err != nil {
		c.logger.Error("WhatsApp API call failed",
			zap.String("to", to),
			zap.Error(err),
		)
		return domain.DispatchResult{
			Status:    domain.DispatchError,
			Recipient: to,
			Detail:    err.Error(),
		}
	}

	if resp.IsError() {
		c.logger.Error("WhatsApp API returned error",
			zap.String("to", to),
			zap.Int("status_code", resp.StatusCode()),
			zap.String("response", resp.String()),
		)
		return domain.DispatchResult{
			Status:    domain.DispatchError,
			Recipient: to,
			Detail:    fmt.Sprintf("whatsapp api error: status=%d body=%s", resp.StatusCode(), resp.String()),
		}
	}

	c.logger.Info("WhatsApp message sent",
		zap.String("to", to),
	)
	return domain.DispatchResult{
		Status:    domain.DispatchSent,
		Recipient: to,
		Detail:    body,
	}
}
