// Package cache provides the externally-owned result cache. The simulator
// itself stays a pure function; callers that want memoized what-if runs key
// results by a hash of the full plan and store them here.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fireplan/fireplan/internal/domain"
)

// Cache stores rendered results keyed by plan hash.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// PlanKey derives a stable cache key from a plan: a SHA-256 over its
// canonical JSON encoding. Identical plans always hash identically because
// the simulation itself is deterministic.
func PlanKey(plan *domain.Plan) (string, error) {
	data, err := json.Marshal(plan)
	if err != nil {
		return "", fmt.Errorf("failed to encode plan for cache key: %w", err)
	}
	sum := sha256.Sum256(data)
	return "fireplan:projection:" + hex.EncodeToString(sum[:]), nil
}

// PayoffKey derives a cache key for a payoff comparison request.
func PayoffKey(debts []domain.Debt, extraMonthlyCash string) (string, error) {
	payload := struct {
		Debts []domain.Debt `json:"debts"`
		Extra string        `json:"extra"`
	}{Debts: debts, Extra: extraMonthlyCash}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode payoff request for cache key: %w", err)
	}
	sum := sha256.Sum256(data)
	return "fireplan:payoff:" + hex.EncodeToString(sum[:]), nil
}
