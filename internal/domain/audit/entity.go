package audit

import (
	"context"
	"reflect"
	"sort"
	"time"
)

type Action string

const (
	ActionInsert Action = "INSERT"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

// Snapshot is the structured state of an audited record at one point in time.
// It is persisted as JSON.
type Snapshot map[string]any

// FieldChange is one before/after pair of a changed field.
type FieldChange struct {
	Before any `json:"before"`
	After  any `json:"after"`
}

type AuditRecord struct {
	ID        string
	Timestamp time.Time
	Action    Action
	Table     string
	RecordID  string
	Actor     string
	Before    Snapshot
	After     Snapshot
}

// Changes returns the fields that differ between Before and After.
// A field absent on one side is reported with a nil value on that side.
func (r AuditRecord) Changes() map[string]FieldChange {
	return Diff(r.Before, r.After)
}

// Diff compares two snapshots field by field.
func Diff(before, after Snapshot) map[string]FieldChange {
	changes := make(map[string]FieldChange)

	for _, key := range unionKeys(before, after) {
		b, a := before[key], after[key]
		if reflect.DeepEqual(b, a) {
			continue
		}
		changes[key] = FieldChange{Before: b, After: a}
	}

	return changes
}

func unionKeys(snapshots ...Snapshot) []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, s := range snapshots {
		for k := range s {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys
}

type actorKey struct{}

// DefaultActor is used when no principal is attached to the context.
const DefaultActor = "system"

// WithActor attaches the acting principal to ctx.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the acting principal or DefaultActor.
func ActorFromContext(ctx context.Context) string {
	if actor, ok := ctx.Value(actorKey{}).(string); ok && actor != "" {
		return actor
	}
	return DefaultActor
}
