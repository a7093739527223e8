// Package dedup drops duplicate message deliveries. QoS 1 subscriptions
// may redeliver a payload; ingesting it twice would skew the monthly
// aggregates, so the ingest path keys every payload by hash and discards
// repeats inside a TTL window.
package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// Deduper remembers recently seen payload keys for a TTL.
type Deduper struct {
	mu   sync.Mutex
	ttl  time.Duration
	cap  int
	seen map[string]time.Time
}

func New(ttl time.Duration, cap int) *Deduper {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if cap <= 0 {
		cap = 10000
	}
	return &Deduper{ttl: ttl, cap: cap, seen: make(map[string]time.Time, cap)}
}

// Key hashes a payload into a dedup key.
func Key(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// Accept reports whether the key is new inside the TTL window, recording
// it if so. An empty key is always accepted.
func (d *Deduper) Accept(key string) bool {
	if key == "" {
		return true
	}
	now := time.Now()

	d.mu.Lock()
	defer d.mu.Unlock()

	if exp, ok := d.seen[key]; ok && now.Before(exp) {
		return false
	}
	d.seen[key] = now.Add(d.ttl)

	if len(d.seen) > d.cap {
		for k, exp := range d.seen {
			if now.After(exp) {
				delete(d.seen, k)
			}
			if len(d.seen) <= d.cap {
				break
			}
		}
	}
	return true
}
