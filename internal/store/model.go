package store

import "time"

// Record mirrors one row in the persistent `store` table.  A platform
// instance can host many stores; each request is bound to exactly one via
// its Host header.  The operational state is captured by two nullable
// timestamps:
//
//   - SuspendedAt – store is temporarily disabled (e.g., billing).
//   - DeletedAt   – store is permanently removed.
//
// Either timestamp being non-NULL prevents the lazy-loader from serving the
// store.
type Record struct {
	ID                uint64     `db:"id"`
	Host              string     `db:"host"`
	Name              string     `db:"name"`
	DefaultLanguageID int64      `db:"default_language_id"`
	SuspendedAt       *time.Time `db:"suspended_at"`
	DeletedAt         *time.Time `db:"deleted_at"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`
}

// Store groups the row and its key-value settings.  Handlers treat it as
// immutable after load; the cache owns its lifetime.
type Store struct {
	Record   Record
	Settings Settings
}

// ID is a convenience accessor used throughout the resolvers.
func (s *Store) ID() int64 { return int64(s.Record.ID) }
