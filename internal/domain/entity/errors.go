package entity

import (
	"errors"
	"fmt"
)

var (
	ErrTimeout           = errors.New("completion request timed out")
	ErrMalformedResponse = errors.New("malformed completion response")
)

// RequestFailedError reports a non-success status from the completion service.
type RequestFailedError struct {
	StatusCode int
	Body       string
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("completion request failed: status %d: %s", e.StatusCode, e.Body)
}

// UnknownQuestionTypeError reports a question type outside the known label
// set. The pipeline normalizes types before building prompts, so hitting this
// means a caller bypassed normalization.
type UnknownQuestionTypeError struct {
	Type QuestionType
}

func (e *UnknownQuestionTypeError) Error() string {
	return fmt.Sprintf("unknown question type %q", string(e.Type))
}
