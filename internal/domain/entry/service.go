package entry

import "context"

// EntryService computes durations, stamps and persists time entries
type EntryService interface {
	CreateEntry(ctx context.Context, req CreateEntryRequest) (EntryResponse, error)

	// UpdateEntry replaces the mutable fields; employee and creation time are kept
	UpdateEntry(ctx context.Context, req UpdateEntryRequest) (EntryResponse, error)

	DeleteEntry(ctx context.Context, id string) error
	GetEntry(ctx context.Context, id string) (EntryResponse, error)
	ListEntries(ctx context.Context, req ListEntriesRequest) ([]EntryResponse, error)

	// VerifyEntry recomputes the integrity hash of one entry without modifying it
	VerifyEntry(ctx context.Context, id string) (IntegrityCheckResponse, error)

	// SweepIntegrity verifies every stored entry
	SweepIntegrity(ctx context.Context) (IntegritySweepResult, error)

	// ImportRecords upserts normalized records of one employee by date
	ImportRecords(ctx context.Context, req ImportRecordsRequest) (ImportResult, error)
}
