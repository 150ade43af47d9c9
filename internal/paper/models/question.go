package models

import (
	"strconv"

	dErrors "paperflow/pkg/domain-errors"
)

// QuestionType discriminates the question payload variants.
type QuestionType string

const (
	QuestionText     QuestionType = "text"
	QuestionMCQ      QuestionType = "mcq"
	QuestionMCQImage QuestionType = "mcq-image"
)

// Question is a tagged variant validated at the boundary before it enters
// the lifecycle engine. Optional fields are meaningful only for the types
// that declare them.
type Question struct {
	Type     QuestionType `json:"type"`
	Prompt   string       `json:"prompt"`
	Marks    int          `json:"marks"`
	Options  []string     `json:"options,omitempty"`  // mcq, mcq-image
	Answer   int          `json:"answer,omitempty"`   // index into Options
	ImageURL string       `json:"imageUrl,omitempty"` // mcq-image
}

// Validate enforces the per-type payload shape.
func (q Question) Validate() error {
	if q.Prompt == "" {
		return dErrors.New(dErrors.CodeValidation, "question prompt cannot be empty")
	}
	if q.Marks <= 0 {
		return dErrors.New(dErrors.CodeValidation, "question marks must be positive")
	}

	switch q.Type {
	case QuestionText:
		if len(q.Options) > 0 {
			return dErrors.New(dErrors.CodeValidation, "text questions cannot carry options")
		}
		return nil
	case QuestionMCQ, QuestionMCQImage:
		if len(q.Options) < 2 {
			return dErrors.New(dErrors.CodeValidation, "choice questions need at least two options")
		}
		if q.Answer < 0 || q.Answer >= len(q.Options) {
			return dErrors.New(dErrors.CodeValidation, "answer index out of range")
		}
		if q.Type == QuestionMCQImage && q.ImageURL == "" {
			return dErrors.New(dErrors.CodeValidation, "image questions need an image URL")
		}
		return nil
	default:
		return dErrors.Newf(dErrors.CodeValidation, "unknown question type %q", q.Type)
	}
}

// ValidateQuestions validates a whole content payload.
func ValidateQuestions(qs []Question) error {
	if len(qs) == 0 {
		return dErrors.New(dErrors.CodeValidation, "paper needs at least one question")
	}
	for i, q := range qs {
		if err := q.Validate(); err != nil {
			return dErrors.Wrap(err, dErrors.CodeValidation, "question "+strconv.Itoa(i+1))
		}
	}
	return nil
}
