package services

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validate checks the data-model invariants for a task: all counts
// non-negative, the discount within [0,100], a strictly positive daily
// throughput and a non-blank display name. Tasks that fail here never
// reach the calculation engine.
func (t Task) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Name, validation.By(nonBlank)),
		validation.Field(&t.NewWords, validation.Min(0)),
		validation.Field(&t.Repeats, validation.Min(0)),
		validation.Field(&t.CrossFileRepeats, validation.Min(0)),
		validation.Field(&t.CostPerWord, validation.Min(0.0)),
		validation.Field(&t.RepeatDiscount, validation.Min(0.0), validation.Max(100.0)),
		// ozzo skips threshold rules for zero values, so Required is paired
		// with Min to reject a zero daily throughput.
		validation.Field(&t.WordsPerDay,
			validation.Required.Error("must be at least 1"),
			validation.Min(1).Error("must be at least 1")),
	)
}

// nonBlank rejects names that are empty after trimming whitespace.
func nonBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}

// ValidateTasks validates a task list, reporting the first offending task.
func ValidateTasks(tasks []Task) error {
	for i, t := range tasks {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("task %d: %w", i, err)
		}
	}
	return nil
}
