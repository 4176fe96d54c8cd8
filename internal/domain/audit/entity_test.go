package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiff(t *testing.T) {
	before := Snapshot{"name": "huber", "is_admin": false, "birth_date": nil}
	after := Snapshot{"name": "huber", "is_admin": true, "last_name": "Huber"}

	changes := Diff(before, after)

	assert.Equal(t, map[string]FieldChange{
		"is_admin":  {Before: false, After: true},
		"last_name": {Before: nil, After: "Huber"},
	}, changes)
}

func TestDiffInsertAndDelete(t *testing.T) {
	snap := Snapshot{"name": "x"}

	assert.Equal(t, map[string]FieldChange{"name": {Before: nil, After: "x"}}, AuditRecord{After: snap}.Changes())
	assert.Equal(t, map[string]FieldChange{"name": {Before: "x", After: nil}}, AuditRecord{Before: snap}.Changes())
}

func TestActorFromContext(t *testing.T) {
	assert.Equal(t, DefaultActor, ActorFromContext(context.Background()))
	assert.Equal(t, "Admin", ActorFromContext(WithActor(context.Background(), "Admin")))
}
