package processor

import (
	"errors"
	"fmt"
)

// ErrTemplateNotFound indicates the template workbook does not exist on disk.
var ErrTemplateNotFound = errors.New("template not found")

// ErrSheetMissing indicates a sheet the fill cannot do without is absent from the template.
var ErrSheetMissing = errors.New("required sheet missing")

// Pipeline stages reported by StageError.
const (
	StageOpen         = "open"
	StageFill         = "fill"
	StagePrune        = "prune"
	StagePlaceholders = "placeholders"
	StageSerialize    = "serialize"
)

// StageError records which step of the fill failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(stage string, err error) error {
	return &StageError{Stage: stage, Err: err}
}
