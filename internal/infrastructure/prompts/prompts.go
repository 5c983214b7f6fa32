package prompts

import (
	"fmt"
	"strings"

	"forecast-agent/internal/domain/entity"
)

var forecasterTasks = map[entity.QuestionType]string{
	entity.QuestionNumeric: "Provide a single numeric forecast (number only).",
	entity.QuestionBinary:  "Provide the probability that the answer is YES as a percentage between 0 and 100.",
	entity.QuestionMCQ:     "Provide probabilities for each option, ensuring they sum to 100%.",
}

func Classification(q entity.Question) []entity.Message {
	return []entity.Message{
		{
			Role: entity.RoleSystem,
			Content: "Classify the forecasting question as exactly one of NUMERIC, BINARY, or MCQ. " +
				"Use only the provided title and context. Reply with the label only.",
		},
		{
			Role:    entity.RoleUser,
			Content: fmt.Sprintf("Title: %s\nContext: %s", q.Title, q.Context),
		},
	}
}

func Forecaster(qt entity.QuestionType, q entity.Question) ([]entity.Message, error) {
	task, ok := forecasterTasks[qt]
	if !ok {
		return nil, &entity.UnknownQuestionTypeError{Type: qt}
	}

	return []entity.Message{
		{
			Role:    entity.RoleSystem,
			Content: fmt.Sprintf("You are an independent forecaster. %s Do not explain your answer.", task),
		},
		{
			Role:    entity.RoleUser,
			Content: fmt.Sprintf("Question type: %s\nTitle: %s\nContext: %s", qt, q.Title, q.Context),
		},
	}, nil
}

func Judge(qt entity.QuestionType, q entity.Question, forecasts []string) []entity.Message {
	return []entity.Message{
		{
			Role: entity.RoleSystem,
			Content: "You are a judge evaluating multiple forecasts. " +
				"Assess reasoning quality, identify inconsistencies or outliers, and suggest adjustments. " +
				"Do not provide a final forecast.",
		},
		{
			Role: entity.RoleUser,
			Content: fmt.Sprintf("Question type: %s\nTitle: %s\nContext: %s\nForecasts:\n%s",
				qt, q.Title, q.Context, renderNumbered("Forecaster", forecasts)),
		},
	}
}

func Supreme(qt entity.QuestionType, q entity.Question, forecasts, feedback []string) []entity.Message {
	return []entity.Message{
		{
			Role: entity.RoleSystem,
			Content: "You are the Supreme Judge. Harmonize the forecasts using judge feedback. " +
				"Respond in two short paragraphs: first explain reasoning, second present the final forecast. " +
				"Use plain text only.",
		},
		{
			Role: entity.RoleUser,
			Content: fmt.Sprintf("Question type: %s\nTitle: %s\nContext: %s\nForecasts:\n%s\nJudge feedback:\n%s",
				qt, q.Title, q.Context, renderNumbered("Forecaster", forecasts), renderNumbered("Judge", feedback)),
		},
	}
}

func renderNumbered(label string, items []string) string {
	lines := make([]string, 0, len(items))
	for i, item := range items {
		lines = append(lines, fmt.Sprintf("%s %d: %s", label, i+1, item))
	}
	return strings.Join(lines, "\n")
}
