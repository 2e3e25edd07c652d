package registry

import (
	"time"

	"clipflow/internal/api"
)

// Record represents a video tracked by the registry. The two completion flags
// are independent and monotone: each may flip false to true at most once per
// registration.
type Record struct {
	Name              string
	Enhanced          bool
	MetadataExtracted bool
	Metadata          api.Descriptor
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Pending reports whether no worker role has completed yet.
func (r *Record) Pending() bool {
	return !r.Enhanced && !r.MetadataExtracted
}

// Complete reports whether both worker roles have completed.
func (r *Record) Complete() bool {
	return r.Enhanced && r.MetadataExtracted
}

// Summary aggregates registry counts per lifecycle bucket.
type Summary struct {
	Total    int
	Pending  int
	Partial  int
	Complete int
}
