package services

// EffectKind names the side effect a successful CRUD operation triggers.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectUserCreated
	EffectUserDeleted
	EffectCompanyCreated
	EffectCompanyDeleted
	EffectEventCreated
	EffectEventDeleted
	EffectAttendanceCreated
	EffectAttendanceDeleted
)

// Effect is the signal a handler returns after committing its write. The
// dispatcher hands it to the side effect coordinator; it is never part of
// the storage transaction.
type Effect struct {
	Kind     EffectKind
	MasterID string // external id carried by the message
	LocalID  string // store-generated id, set for events
	UserID   string // attendance: master user id
	EventID  string // attendance: master event id
}
