package tenant

import "time"

// Tenant is the per-company configuration row this engine consumes. The
// engine cares about the timezone (for "today" in the tenant's calendar) and
// the future-dated-entries flag; everything else about a tenant lives with
// the platform collaborators.
type Tenant struct {
	ID   string
	Name string

	Timezone           string // IANA name, e.g. "Asia/Jakarta"
	AllowFutureEntries bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
