package entity

import "strings"

type QuestionType string

const (
	QuestionNumeric QuestionType = "NUMERIC"
	QuestionBinary  QuestionType = "BINARY"
	QuestionMCQ     QuestionType = "MCQ"
)

// NormalizeQuestionType maps a raw classification reply to a QuestionType.
// Replies that do not match any known label fall back to NUMERIC.
func NormalizeQuestionType(raw string) QuestionType {
	qt := QuestionType(strings.ToUpper(strings.TrimSpace(raw)))
	switch qt {
	case QuestionNumeric, QuestionBinary, QuestionMCQ:
		return qt
	}
	return QuestionNumeric
}

type Question struct {
	Title   string
	Context string
}

type ForecastResult struct {
	QuestionType    QuestionType
	Forecasts       []string
	JudgeFeedback   []string
	SupremeDecision string
}
