// Package audit provides creator/modifier stamping for mutable entities.
// Every mutating operation in the system receives the acting user and the
// entity records it here; the creation stamp is written once and never
// changes, the modification stamp is rewritten on every subsequent save.
package audit

import "time"

// Actor is the acting identity behind a mutation. Implemented by shop.User.
// A nil Actor means an anonymous or system action.
type Actor interface {
	ActorID() int64
	IsStaff() bool
}

// Audit is embedded in every audited entity.
type Audit struct {
	CreatedAt time.Time
	CreatedBy Actor
	UpdatedAt time.Time
	UpdatedBy Actor
}

// StampCreate records the creation time and, if present, the creator.
func (a *Audit) StampCreate(actor Actor, at time.Time) {
	a.CreatedAt = at
	a.UpdatedAt = at
	if actor != nil {
		a.CreatedBy = actor
	}
}

// StampUpdate records a modification. Callers must invoke it only when at
// least one field actually changed: an update with no changes is a no-op and
// must not bump the timestamp or the modifier.
func (a *Audit) StampUpdate(actor Actor, at time.Time) {
	a.UpdatedAt = at
	if actor != nil {
		a.UpdatedBy = actor
	}
}

// Same reports whether two actors are the same identity. An absent actor is
// never the same as anything.
func Same(a, b Actor) bool {
	if a == nil || b == nil {
		return false
	}
	return a.ActorID() == b.ActorID()
}

// Staff reports whether the actor is present and holds elevated privilege.
func Staff(a Actor) bool {
	return a != nil && a.IsStaff()
}
