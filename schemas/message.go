package schemas

// MessageType is the root-tag discriminator of an inbound document.
type MessageType string

const (
	TypeUser       MessageType = "user"
	TypeCompany    MessageType = "company"
	TypeEvent      MessageType = "event"
	TypeAttendance MessageType = "attendance"
)

// Operation is the CRUD verb carried by every message.
type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Message is the immutable envelope the dispatcher works with. Payload is
// one of *UserMessage, *CompanyMessage, *EventMessage or
// *AttendanceMessage, decoded once per message; handlers never reach back
// into the raw bytes.
type Message struct {
	Type       MessageType
	RoutingKey string
	Operation  Operation
	ExternalID string
	Payload    any
}

// Fields flattens the payload into field-name/value pairs so the schema
// registry can evaluate presence and enum rules generically. Nested
// blocks use dotted names (address.city, speaker.user_id).
func (m *Message) Fields() map[string]string {
	switch p := m.Payload.(type) {
	case *UserMessage:
		return p.fields()
	case *CompanyMessage:
		return p.fields()
	case *EventMessage:
		return p.fields()
	case *AttendanceMessage:
		return p.fields()
	}
	return nil
}
