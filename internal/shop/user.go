package shop

import "beverage-shop/internal/audit"

// User is the authentication identity behind customers and employees. Staff
// users hold elevated privilege: they may set prices and perform
// administrative mutations.
type User struct {
	ID       int64
	Username string
	Staff    bool
}

func (u *User) ActorID() int64 {
	if u == nil {
		return 0
	}
	return u.ID
}

func (u *User) IsStaff() bool { return u != nil && u.Staff }

// actor converts a possibly nil *User into an audit.Actor without producing
// a typed-nil interface value.
func actor(u *User) audit.Actor {
	if u == nil {
		return nil
	}
	return u
}
