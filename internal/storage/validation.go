// Package storage persists the prediction history in SQLite.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/credit-risk-console/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrInvalidRecord = errors.New("invalid prediction record")
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRecords checks every record against the shape the console writes.
func validateRecords(records []model.PredictionRecord) error {
	for i, r := range records {
		if !r.Valid() {
			return fmt.Errorf("%w at index %d", ErrInvalidRecord, i)
		}
	}
	return nil
}
