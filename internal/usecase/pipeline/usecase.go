package pipeline

import (
	"context"

	"forecast-agent/internal/application/port/input"
	"forecast-agent/internal/application/port/output"
	"forecast-agent/internal/domain/entity"
	"forecast-agent/internal/infrastructure/prompts"

	"golang.org/x/sync/errgroup"
)

const (
	forecasterCount = 4
	judgeCount      = 2
)

var _ input.ForecastRunner = (*UseCase)(nil)

type UseCase struct {
	llm    output.CompletionPort
	logger output.LoggerPort
}

func New(llm output.CompletionPort, logger output.LoggerPort) *UseCase {
	return &UseCase{
		llm:    llm,
		logger: logger,
	}
}

// Run executes the full forecasting pipeline: classify the question, fan out
// to independent forecasters, fan out to judges over the collected forecasts,
// then synthesize a final decision. Any stage failure aborts the remaining
// stages and propagates unchanged.
func (uc *UseCase) Run(ctx context.Context, question entity.Question) (*entity.ForecastResult, error) {
	uc.logger.Info("Forecast pipeline started", "title", question.Title)

	raw, err := uc.llm.Complete(ctx, prompts.Classification(question))
	if err != nil {
		return nil, err
	}
	questionType := entity.NormalizeQuestionType(raw)
	uc.logger.Debug("Question classified", "raw", raw, "type", questionType)

	forecasterPrompt, err := prompts.Forecaster(questionType, question)
	if err != nil {
		return nil, err
	}

	forecasts, err := uc.fanOut(ctx, forecasterPrompt, forecasterCount)
	if err != nil {
		uc.logger.Error("Forecast stage failed", "error", err)
		return nil, err
	}
	uc.logger.Debug("Forecasts collected", "count", len(forecasts))

	feedback, err := uc.fanOut(ctx, prompts.Judge(questionType, question, forecasts), judgeCount)
	if err != nil {
		uc.logger.Error("Judge stage failed", "error", err)
		return nil, err
	}
	uc.logger.Debug("Judge feedback collected", "count", len(feedback))

	decision, err := uc.llm.Complete(ctx, prompts.Supreme(questionType, question, forecasts, feedback))
	if err != nil {
		uc.logger.Error("Synthesis stage failed", "error", err)
		return nil, err
	}

	uc.logger.Info("Forecast pipeline completed", "type", questionType)

	return &entity.ForecastResult{
		QuestionType:    questionType,
		Forecasts:       forecasts,
		JudgeFeedback:   feedback,
		SupremeDecision: decision,
	}, nil
}

// fanOut issues width concurrent completion calls sharing one prompt and
// collects the results in submission order. In-flight calls are not
// cancelled when a sibling fails; the first error is returned after all
// calls settle.
func (uc *UseCase) fanOut(ctx context.Context, messages []entity.Message, width int) ([]string, error) {
	results := make([]string, width)

	var g errgroup.Group
	for i := 0; i < width; i++ {
		i := i
		g.Go(func() error {
			text, err := uc.llm.Complete(ctx, messages)
			if err != nil {
				return err
			}
			results[i] = text
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
