package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// EligibilityCache caches the §4.3 longest-window results Redis-side, keyed
// by (storeId, date, roleId, minCrew), so repeated solver invocations for
// the same input don't repeat the longest-window search.
type EligibilityCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewEligibilityCache wraps client with the given entry lifetime.
func NewEligibilityCache(client *redis.Client, ttl time.Duration) *EligibilityCache {
	return &EligibilityCache{client: client, keyPrefix: "eligibility:window:", ttl: ttl}
}

// WindowResult is the cached payload for one longest-window query.
type WindowResult struct {
	Start   int  `json:"start"`
	End     int  `json:"end"`
	MinCrew int  `json:"minCrew"`
	Found   bool `json:"found"`
}

func (c *EligibilityCache) key(storeID uuid.UUID, date string, roleID uuid.UUID, minCrew int) string {
	return fmt.Sprintf("%s%s:%s:%s:%d", c.keyPrefix, storeID, date, roleID, minCrew)
}

// Get returns a cached window, or ok=false on miss.
func (c *EligibilityCache) Get(ctx context.Context, storeID uuid.UUID, date string, roleID uuid.UUID, minCrew int) (WindowResult, bool, error) {
	raw, err := c.client.Get(ctx, c.key(storeID, date, roleID, minCrew)).Bytes()
	if err == redis.Nil {
		return WindowResult{}, false, nil
	}
	if err != nil {
		return WindowResult{}, false, fmt.Errorf("failed to read eligibility cache: %w", err)
	}

	var result WindowResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return WindowResult{}, false, fmt.Errorf("failed to decode cached window: %w", err)
	}
	return result, true, nil
}

// Set stores a window result with the cache's configured TTL.
func (c *EligibilityCache) Set(ctx context.Context, storeID uuid.UUID, date string, roleID uuid.UUID, minCrew int, result WindowResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode window for cache: %w", err)
	}
	if err := c.client.Set(ctx, c.key(storeID, date, roleID, minCrew), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write eligibility cache: %w", err)
	}
	return nil
}

// AdaptiveBoostCache caches the externally supplied per-(crew,
// rolePreference) adaptive-boost factors (§9 "Banking") so the repository
// layer need not recompute them on every run.
type AdaptiveBoostCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewAdaptiveBoostCache wraps client with the given entry lifetime.
func NewAdaptiveBoostCache(client *redis.Client, ttl time.Duration) *AdaptiveBoostCache {
	return &AdaptiveBoostCache{client: client, keyPrefix: "preference:boost:", ttl: ttl}
}

func (c *AdaptiveBoostCache) key(crewID, rolePreferenceID uuid.UUID) string {
	return fmt.Sprintf("%s%s:%s", c.keyPrefix, crewID, rolePreferenceID)
}

// Get returns the cached boost factor, or ok=false on miss.
func (c *AdaptiveBoostCache) Get(ctx context.Context, crewID, rolePreferenceID uuid.UUID) (float64, bool, error) {
	raw, err := c.client.Get(ctx, c.key(crewID, rolePreferenceID)).Float64()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read adaptive boost cache: %w", err)
	}
	return raw, true, nil
}

// Set stores a boost factor with the cache's configured TTL.
func (c *AdaptiveBoostCache) Set(ctx context.Context, crewID, rolePreferenceID uuid.UUID, boost float64) error {
	if err := c.client.Set(ctx, c.key(crewID, rolePreferenceID), boost, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write adaptive boost cache: %w", err)
	}
	return nil
}
