package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"elderguard-data/internal/domain"
	"elderguard-data/internal/repository"
)

const cognitivePromptTemplate = `Analyze the following behavior logs of an elderly patient and determine if they show signs of cognitive decline.

Logs:
%s

Task:
1. Identify the Cognitive Stage (Normal Aging, Mild Cognitive Impairment, Early Dementia).
2. Assign a Risk Score (0-100).
3. Provide 3 specific handling advice tips.

Format the output exactly like this:
Stage: [Stage Name]
Score: [Number]
Advice: [Tip 1], [Tip 2], [Tip 3]`

// TextGenerator 文本生成接口（InferenceClient 实现）
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) string
}

// CognitiveService 认知行为日志与AI分析服务
type CognitiveService struct {
	logsRepo  repository.BehaviorLogsRepository
	generator TextGenerator
	logger    *zap.Logger
}

// NewCognitiveService 创建认知分析服务
func NewCognitiveService(logsRepo repository.BehaviorLogsRepository, generator TextGenerator, logger *zap.Logger) *CognitiveService {
	return &CognitiveService{
		logsRepo:  logsRepo,
		generator: generator,
		logger:    logger,
	}
}

// LogBehavior 记录一条行为日志
func (s *CognitiveService) LogBehavior(ctx context.Context, userID, description, severity string, timestamp time.Time) (*domain.BehaviorLog, error) {
	if description == "" {
		return nil, fmt.Errorf("description is required")
	}
	switch severity {
	case domain.SeverityLow, domain.SeverityMedium, domain.SeverityHigh:
	default:
		return nil, fmt.Errorf("invalid severity: %s", severity)
	}
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	behaviorLog := &domain.BehaviorLog{
		UserID:      userID,
		Description: description,
		Severity:    severity,
		Timestamp:   timestamp,
	}
	logID, err := s.logsRepo.CreateLog(ctx, behaviorLog)
	if err != nil {
		return nil, fmt.Errorf("failed to create behavior log: %w", err)
	}
	behaviorLog.LogID = logID

	return behaviorLog, nil
}

// ListLogs 查询用户的行为日志（按时间倒序）
func (s *CognitiveService) ListLogs(ctx context.Context, userID string) ([]*domain.BehaviorLog, error) {
	return s.logsRepo.ListLogs(ctx, userID)
}

// Analyze 对用户全部行为日志做认知状态分析
// 无日志时直接返回固定结果，不调用推理服务
func (s *CognitiveService) Analyze(ctx context.Context, userID string) (*domain.CognitiveAnalysis, error) {
	logs, err := s.logsRepo.ListLogsChronological(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list behavior logs: %w", err)
	}

	if len(logs) == 0 {
		return &domain.CognitiveAnalysis{
			Stage:  "Unknown",
			Score:  0,
			Advice: []string{"Not enough data. Log daily behaviors for analysis."},
		}, nil
	}

	lines := make([]string, 0, len(logs))
	for _, l := range logs {
		lines = append(lines, fmt.Sprintf("- [%s] (%s): %s", l.Timestamp.Format("2006-01-02 15:04:05"), l.Severity, l.Description))
	}
	prompt := fmt.Sprintf(cognitivePromptTemplate, strings.Join(lines, "\n"))

	reply := s.generator.Generate(ctx, prompt)
	analysis := parseCognitiveReply(reply)

	s.logger.Info("Cognitive analysis completed",
		zap.String("user_id", userID),
		zap.Int("log_count", len(logs)),
		zap.String("stage", analysis.Stage),
		zap.Int("score", analysis.Score),
	)

	return analysis, nil
}

// parseCognitiveReply 解析模型回复
// 逐行扫描 Stage:/Score:/Advice: 标记，后出现的覆盖先出现的
// Score 缺失或非数字时取50（区别于无日志时的0），最终裁剪到 [0,100]
// Advice 为空时使用固定兜底建议
func parseCognitiveReply(reply string) *domain.CognitiveAnalysis {
	stage := "Unknown"
	score := 50
	var advice []string

	for _, line := range strings.Split(reply, "\n") {
		switch {
		case strings.Contains(line, "Stage:"):
			stage = strings.TrimSpace(strings.ReplaceAll(line, "Stage:", ""))
		case strings.Contains(line, "Score:"):
			value, err := strconv.Atoi(strings.TrimSpace(strings.ReplaceAll(line, "Score:", "")))
			if err != nil {
				score = 50
			} else {
				score = value
			}
		case strings.Contains(line, "Advice:"):
			advice = advice[:0]
			for _, tip := range strings.Split(strings.TrimSpace(strings.ReplaceAll(line, "Advice:", "")), ",") {
				tip = strings.TrimSpace(tip)
				if tip != "" {
					advice = append(advice, tip)
				}
			}
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	if len(advice) == 0 {
		advice = []string{"Monitor closely", "Consult a doctor", "Keep a routine"}
	}

	return &domain.CognitiveAnalysis{
		Stage:  stage,
		Score:  score,
		Advice: advice,
	}
}
