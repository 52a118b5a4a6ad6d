package interpreter

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"MediPlan-Backend/domain"
)

const DefaultCacheTTL = 24 * time.Hour

type cacheEntry struct {
	rules    []domain.DietRule
	storedAt time.Time
}

// RuleCache keeps interpreted rule lists keyed by normalized note text so
// identical reports do not trigger repeated extraction calls. Eviction is
// lazy: expired entries are dropped on lookup. Safe for concurrent use;
// concurrent misses on the same key may compute redundantly, which is
// acceptable because results are idempotent.
type RuleCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

func NewRuleCache(ttl time.Duration) *RuleCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RuleCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

func (c *RuleCache) Get(key string) ([]domain.DietRule, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Since(entry.storedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}

	out := make([]domain.DietRule, len(entry.rules))
	copy(out, entry.rules)
	return out, true
}

func (c *RuleCache) Set(key string, rules []domain.DietRule) {
	stored := make([]domain.DietRule, len(rules))
	copy(stored, rules)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{rules: stored, storedAt: time.Now()}
}

// CacheKey normalizes the combined note text (lowercase, collapsed
// whitespace) and hashes it, so formatting differences do not defeat the
// cache.
func CacheKey(text string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(text), " "))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
