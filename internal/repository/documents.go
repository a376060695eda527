package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Document keys. They match the keys the browser build kept in
// localStorage so exported data stays interchangeable.
const (
	PlayersKey      = "baseballApp.players"
	LineupKey       = "baseballApp.lineup"
	PositionsKey    = "baseballApp.positions"
	InningRosterKey = "baseballApp.inningRoster"
	MatchDetailsKey = "baseballApp.matchDetails"
)

// loadDocument decodes the document at key. A missing or undecodable
// document yields the zero T and found=false; only store failures are
// returned as errors.
func loadDocument[T any](ctx context.Context, store DocumentStore, logger zerolog.Logger, key string) (T, bool, error) {
	var zero T
	raw, err := store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, err
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("failed to parse stored document, using default")
		return zero, false, nil
	}
	return out, true, nil
}

func encodeDocuments(values map[string]any) (map[string][]byte, error) {
	docs := make(map[string][]byte, len(values))
	for key, v := range values {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s: %w", key, err)
		}
		docs[key] = raw
	}
	return docs, nil
}
