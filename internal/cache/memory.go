package cache

import "time"

// DefaultTTL is how long Memory entries are served when no TTL is given.
const DefaultTTL = 15 * time.Minute

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Memory is a process-local key/value cache where every entry expires a fixed
// TTL after the write that created it. Expiry is lazy: Get treats a stale
// entry as a miss but leaves it in place until the next Set of the same key.
// There is no background sweep and no size bound.
//
// Memory is not safe for concurrent use; callers sharing one across
// goroutines must guard it with their own lock.
type Memory[K comparable, V any] struct {
	entries map[K]entry[V]
	ttl     time.Duration
	now     func() time.Time
}

// NewMemory returns an empty cache whose entries live for ttl after each
// write. If ttl <= 0, DefaultTTL is used.
func NewMemory[K comparable, V any](ttl time.Duration) *Memory[K, V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory[K, V]{
		entries: make(map[K]entry[V]),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the value stored under key. An absent key and a key whose entry
// has reached its expiry instant both report a miss.
func (m *Memory[K, V]) Get(key K) (V, bool) {
	e, ok := m.entries[key]
	if !ok || !m.now().Before(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, replacing any previous entry and restarting its
// TTL from now.
func (m *Memory[K, V]) Set(key K, value V) {
	m.entries[key] = entry[V]{value: value, expiresAt: m.now().Add(m.ttl)}
}
