// Package share turns a portfolio state into a compact, URL-safe string and
// back, so a complete set of loan parts and settings fits in a link.
package share

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/golang/snappy"
	"github.com/hypotheekplanner/mortgage-planner/internal/domain"
)

// ErrEmptyPayload is returned when decoding an empty share string.
var ErrEmptyPayload = errors.New("share payload is empty")

// Encode serializes state as JSON, compresses it with snappy and encodes the
// result with unpadded URL-safe base64.
func Encode(state domain.PortfolioState) (string, error) {
	payload, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("failed to marshal state: %w", err)
	}
	compressed := snappy.Encode(nil, payload)
	return base64.RawURLEncoding.EncodeToString(compressed), nil
}

// Decode reverses Encode. Surrounding whitespace and base64 padding are ignored.
func Decode(s string) (domain.PortfolioState, error) {
	s = strings.TrimRight(strings.TrimSpace(s), "=")
	if s == "" {
		return domain.PortfolioState{}, ErrEmptyPayload
	}
	compressed, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return domain.PortfolioState{}, fmt.Errorf("invalid share encoding: %w", err)
	}
	payload, err := snappy.Decode(nil, compressed)
	if err != nil {
		return domain.PortfolioState{}, fmt.Errorf("invalid share compression: %w", err)
	}
	var state domain.PortfolioState
	if err := json.Unmarshal(payload, &state); err != nil {
		return domain.PortfolioState{}, fmt.Errorf("invalid share payload: %w", err)
	}
	return state, nil
}
