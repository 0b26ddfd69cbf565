package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type testActor struct {
	id    int64
	staff bool
}

func (a *testActor) ActorID() int64 { return a.id }
func (a *testActor) IsStaff() bool  { return a.staff }

func TestStampCreate(t *testing.T) {
	creator := &testActor{id: 7}
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	var a Audit
	a.StampCreate(creator, at)

	assert.Equal(t, at, a.CreatedAt)
	assert.Equal(t, at, a.UpdatedAt)
	assert.Equal(t, creator, a.CreatedBy)
	assert.Nil(t, a.UpdatedBy)
}

func TestStampCreateAnonymous(t *testing.T) {
	var a Audit
	a.StampCreate(nil, time.Now())

	assert.Nil(t, a.CreatedBy)
	assert.False(t, a.CreatedAt.IsZero())
}

func TestStampUpdate(t *testing.T) {
	creator := &testActor{id: 1}
	modifier := &testActor{id: 2, staff: true}
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	var a Audit
	a.StampCreate(creator, created)
	a.StampUpdate(modifier, updated)

	assert.Equal(t, created, a.CreatedAt)
	assert.Equal(t, creator, a.CreatedBy)
	assert.Equal(t, updated, a.UpdatedAt)
	assert.Equal(t, modifier, a.UpdatedBy)
}

func TestStampUpdateAnonymousKeepsModifier(t *testing.T) {
	modifier := &testActor{id: 2}
	var a Audit
	a.StampCreate(nil, time.Now())
	a.StampUpdate(modifier, time.Now())
	a.StampUpdate(nil, time.Now())

	assert.Equal(t, modifier, a.UpdatedBy)
}

func TestSame(t *testing.T) {
	a := &testActor{id: 3}
	b := &testActor{id: 3, staff: true}
	c := &testActor{id: 4}

	assert.True(t, Same(a, b))
	assert.False(t, Same(a, c))
	assert.False(t, Same(nil, a))
	assert.False(t, Same(a, nil))
	assert.False(t, Same(nil, nil))
}

func TestStaff(t *testing.T) {
	assert.True(t, Staff(&testActor{id: 1, staff: true}))
	assert.False(t, Staff(&testActor{id: 1}))
	assert.False(t, Staff(nil))
}
