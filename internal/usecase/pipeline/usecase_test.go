package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"forecast-agent/internal/domain/entity"
	"forecast-agent/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stage string

const (
	stageClassify stage = "classify"
	stageForecast stage = "forecast"
	stageJudge    stage = "judge"
	stageSupreme  stage = "supreme"
)

// stubCompletion scripts one reply per pipeline stage. Replies within a
// fan-out stage are handed out in call-arrival order.
type stubCompletion struct {
	mu sync.Mutex

	classification string
	forecasts      []string
	feedback       []string
	decision       string

	classifyErr   error
	forecastErr   error
	forecastErrAt int

	forecastDelay func(arrival int) time.Duration

	counts   map[stage]int
	userSeen map[stage][]string
}

func newStub() *stubCompletion {
	return &stubCompletion{
		classification: "BINARY",
		forecasts:      []string{"60%", "55%", "70%", "65%"},
		feedback:       []string{"Forecast looks consistent.", "Outlier at 70%."},
		decision:       "Reasoning paragraph.\n\nFinal forecast: 60%.",
		forecastErrAt:  -1,
		counts:         make(map[stage]int),
		userSeen:       make(map[stage][]string),
	}
}

func stageOf(messages []entity.Message) stage {
	system := messages[0].Content
	switch {
	case strings.Contains(system, "Classify the forecasting question"):
		return stageClassify
	case strings.Contains(system, "independent forecaster"):
		return stageForecast
	case strings.Contains(system, "evaluating multiple forecasts"):
		return stageJudge
	case strings.Contains(system, "Supreme Judge"):
		return stageSupreme
	}
	return stage("unknown")
}

func (s *stubCompletion) Complete(ctx context.Context, messages []entity.Message) (string, error) {
	if len(messages) == 0 {
		return "", errors.New("stub: empty message list")
	}

	st := stageOf(messages)

	s.mu.Lock()
	arrival := s.counts[st]
	s.counts[st] = arrival + 1
	s.userSeen[st] = append(s.userSeen[st], messages[len(messages)-1].Content)
	s.mu.Unlock()

	switch st {
	case stageClassify:
		if s.classifyErr != nil {
			return "", s.classifyErr
		}
		return s.classification, nil
	case stageForecast:
		if s.forecastDelay != nil {
			time.Sleep(s.forecastDelay(arrival))
		}
		if s.forecastErr != nil && arrival == s.forecastErrAt {
			return "", s.forecastErr
		}
		return s.forecasts[arrival], nil
	case stageJudge:
		return s.feedback[arrival], nil
	case stageSupreme:
		return s.decision, nil
	}
	return "", fmt.Errorf("stub: unrecognized stage in system prompt %q", messages[0].Content)
}

func newUseCase(stub *stubCompletion) *UseCase {
	return New(stub, logger.NewNop())
}

var testQuestion = entity.Question{
	Title:   "Will it rain tomorrow?",
	Context: "Forecast for Berlin.",
}

func TestRun_FullPipeline(t *testing.T) {
	stub := newStub()
	uc := newUseCase(stub)

	result, err := uc.Run(context.Background(), testQuestion)

	require.NoError(t, err)
	assert.Equal(t, entity.QuestionBinary, result.QuestionType)
	assert.ElementsMatch(t, stub.forecasts, result.Forecasts)
	assert.ElementsMatch(t, stub.feedback, result.JudgeFeedback)
	assert.Equal(t, "Reasoning paragraph.\n\nFinal forecast: 60%.", result.SupremeDecision)

	assert.Equal(t, 1, stub.counts[stageClassify])
	assert.Equal(t, 4, stub.counts[stageForecast])
	assert.Equal(t, 2, stub.counts[stageJudge])
	assert.Equal(t, 1, stub.counts[stageSupreme])
}

// Downstream prompts must see the forecasts in the same order the result
// reports them, regardless of which forecaster call finished first.
func TestRun_DownstreamPromptsMatchResultOrder(t *testing.T) {
	stub := newStub()
	stub.forecastDelay = func(arrival int) time.Duration {
		return time.Duration(len(stub.forecasts)-arrival) * 10 * time.Millisecond
	}
	uc := newUseCase(stub)

	result, err := uc.Run(context.Background(), testQuestion)
	require.NoError(t, err)

	require.Len(t, result.Forecasts, 4)
	for i, forecast := range result.Forecasts {
		assert.NotEmpty(t, forecast, "slot %d", i)
	}

	var rendered []string
	for i, forecast := range result.Forecasts {
		rendered = append(rendered, fmt.Sprintf("Forecaster %d: %s", i+1, forecast))
	}
	forecastList := strings.Join(rendered, "\n")

	require.Len(t, stub.userSeen[stageJudge], 2)
	for _, seen := range stub.userSeen[stageJudge] {
		assert.Contains(t, seen, forecastList)
	}
	require.Len(t, stub.userSeen[stageSupreme], 1)
	assert.Contains(t, stub.userSeen[stageSupreme][0], forecastList)
}

func TestRun_JudgeFeedbackOrderMatchesSupremePrompt(t *testing.T) {
	stub := newStub()
	uc := newUseCase(stub)

	result, err := uc.Run(context.Background(), testQuestion)
	require.NoError(t, err)

	require.Len(t, result.JudgeFeedback, 2)
	supremeSeen := stub.userSeen[stageSupreme][0]
	assert.Contains(t, supremeSeen,
		fmt.Sprintf("Judge 1: %s\nJudge 2: %s", result.JudgeFeedback[0], result.JudgeFeedback[1]))
}

func TestRun_UnparseableClassificationDefaultsToNumeric(t *testing.T) {
	stub := newStub()
	stub.classification = "unsure"
	uc := newUseCase(stub)

	result, err := uc.Run(context.Background(), testQuestion)

	require.NoError(t, err)
	assert.Equal(t, entity.QuestionNumeric, result.QuestionType)
	assert.Contains(t, stub.userSeen[stageForecast][0], "Question type: NUMERIC")
}

func TestRun_ClassificationErrorAbortsPipeline(t *testing.T) {
	stub := newStub()
	stub.classifyErr = &entity.RequestFailedError{StatusCode: 500, Body: "boom"}
	uc := newUseCase(stub)

	result, err := uc.Run(context.Background(), testQuestion)

	assert.Nil(t, result)
	var reqErr *entity.RequestFailedError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, 500, reqErr.StatusCode)
	assert.Equal(t, 0, stub.counts[stageForecast])
	assert.Equal(t, 0, stub.counts[stageJudge])
	assert.Equal(t, 0, stub.counts[stageSupreme])
}

func TestRun_ForecasterFailureSkipsJudgeAndSynthesis(t *testing.T) {
	stub := newStub()
	stub.forecastErr = errors.New("forecaster down")
	stub.forecastErrAt = 2
	uc := newUseCase(stub)

	result, err := uc.Run(context.Background(), testQuestion)

	assert.Nil(t, result)
	require.ErrorIs(t, err, stub.forecastErr)
	assert.Equal(t, 4, stub.counts[stageForecast])
	assert.Equal(t, 0, stub.counts[stageJudge])
	assert.Equal(t, 0, stub.counts[stageSupreme])
}
