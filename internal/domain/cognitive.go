package domain

// CognitiveAnalysis 认知分析结果
// 每次分析请求重新计算，不持久化；advice 保证非空
type CognitiveAnalysis struct {
	Stage  string   `json:"stage"`  // "Normal Aging" / "Mild Cognitive Impairment" / "Early Dementia"
	Score  int      `json:"score"`  // 风险评分 0-100
	Advice []string `json:"advice"` // 处理建议（非空）
}
