// internal/models/reader.go
package models

// AnalyzeMode 分析模式：按句或按段切分
type AnalyzeMode string

const (
	ModeSentence  AnalyzeMode = "sentence"
	ModeParagraph AnalyzeMode = "paragraph"
)

// Normalize 只有 "paragraph" 会按段处理，其余值（包括空值）都按句处理
func (m AnalyzeMode) Normalize() AnalyzeMode {
	if m == ModeParagraph {
		return ModeParagraph
	}
	return ModeSentence
}

// AnalyzeRequest POST /api/analyze 请求体
type AnalyzeRequest struct {
	Text string      `json:"text"`
	Mode AnalyzeMode `json:"mode"`
}

// SummarizeRequest POST /api/summarize 请求体
type SummarizeRequest struct {
	Text   string `json:"text"`
	Length *int   `json:"length" binding:"required"`
}

// Segment 模型返回的一组中英对照，服务端不解析，仅用于描述输出格式
type Segment struct {
	En string `json:"en"`
	Zh string `json:"zh"`
}

// SummaryResult POST /api/summarize 响应体
type SummaryResult struct {
	Summary string `json:"summary"`
}

// RootStatus GET / 响应体
type RootStatus struct {
	Message string `json:"message"`
}

// ErrorBody 所有错误响应的统一格式
type ErrorBody struct {
	Detail string `json:"detail"`
}
