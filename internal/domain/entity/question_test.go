package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeQuestionType_KnownLabels(t *testing.T) {
	tests := []struct {
		raw      string
		expected QuestionType
	}{
		{"NUMERIC", QuestionNumeric},
		{"BINARY", QuestionBinary},
		{"MCQ", QuestionMCQ},
		{"binary", QuestionBinary},
		{"  Mcq  ", QuestionMCQ},
		{"\nnumeric\t", QuestionNumeric},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, NormalizeQuestionType(tt.raw), "raw=%q", tt.raw)
	}
}

func TestNormalizeQuestionType_DefaultsToNumeric(t *testing.T) {
	tests := []string{
		"unsure",
		"",
		"Binary!!",
		"NUMERIC BINARY",
		"multiple choice",
	}

	for _, raw := range tests {
		assert.Equal(t, QuestionNumeric, NormalizeQuestionType(raw), "raw=%q", raw)
	}
}
