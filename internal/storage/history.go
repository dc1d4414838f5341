package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/credit-risk-console/internal/common"
	"github.com/Veraticus/credit-risk-console/internal/history"
	"github.com/Veraticus/credit-risk-console/internal/model"
)

// HistoryKey is the single key the prediction history lives under.
const HistoryKey = "predictionHistory"

// Get returns the raw value stored under key, or common.ErrNotFound.
func (s *SQLiteStorage) Get(ctx context.Context, key string) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateString(key, "key"); err != nil {
		return "", err
	}

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", common.ErrNotFound, key)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (s *SQLiteStorage) Set(ctx context.Context, key, value string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_store (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *SQLiteStorage) Delete(ctx context.Context, key string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// LoadHistory returns the stored prediction history, newest first. A missing
// key, unreadable JSON or any record that does not look like a prediction all
// yield an empty history.
func (s *SQLiteStorage) LoadHistory(ctx context.Context) []model.PredictionRecord {
	records, err := s.loadHistory(ctx)
	if err != nil {
		slog.Debug("treating stored history as empty", "error", err)
		return []model.PredictionRecord{}
	}
	return records
}

func (s *SQLiteStorage) loadHistory(ctx context.Context) ([]model.PredictionRecord, error) {
	raw, err := s.Get(ctx, HistoryKey)
	if err != nil {
		return nil, err
	}

	var records []model.PredictionRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDatabaseCorrupted, err)
	}
	if err := validateRecords(records); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDatabaseCorrupted, err)
	}

	return history.New(records).Records(), nil
}

// SaveHistory replaces the stored history with records.
func (s *SQLiteStorage) SaveHistory(ctx context.Context, records []model.PredictionRecord) error {
	if err := validateRecords(records); err != nil {
		return err
	}
	if records == nil {
		records = []model.PredictionRecord{}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	return s.Set(ctx, HistoryKey, string(data))
}
