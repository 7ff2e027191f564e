package repository

import "time"

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithNow overrides the clock used to stamp evaluations created without a
// submission timestamp. Intended for tests.
func WithNow(now func() time.Time) Option {
	return func(s *MemStore) {
		if now != nil {
			s.now = now
		}
	}
}
