package schemas

import (
	"fmt"
	"slices"
	"strings"

	"planning-sync/errors"
)

// FieldRule is one constraint on a document field. A field with no rule
// is nillable: it may be empty or absent without failing validation.
type FieldRule struct {
	Name     string
	Required bool
	Enum     []string
}

// Schema is the static rule set for one message type.
type Schema struct {
	Type  MessageType
	Rules []FieldRule
}

// Registry holds one schema per message type. It is built once at startup
// and never mutated afterwards.
type Registry struct {
	schemas map[MessageType]Schema
}

var crudEnum = []string{string(OpCreate), string(OpUpdate), string(OpDelete)}

// NewRegistry loads the planning message schemas: routing_key and id must
// be present with non-empty text, crud_operation and user_role are
// constrained to their enumerated values, everything else is nillable.
func NewRegistry() *Registry {
	base := []FieldRule{
		{Name: "routing_key", Required: true},
		{Name: "crud_operation", Required: true, Enum: crudEnum},
		{Name: "id", Required: true},
	}

	schemas := map[MessageType]Schema{
		TypeUser: {Type: TypeUser, Rules: append(slices.Clone(base), FieldRule{
			Name: "user_role",
			Enum: []string{"speaker", "individual", "employee", ""},
		})},
		TypeCompany:    {Type: TypeCompany, Rules: base},
		TypeEvent:      {Type: TypeEvent, Rules: base},
		TypeAttendance: {Type: TypeAttendance, Rules: base},
	}
	return &Registry{schemas: schemas}
}

// Validate checks the message against the schema registered for its type.
// It returns a *errors.ValidationError listing every violated constraint,
// or errors.ErrUnknownMessageType when no schema covers the type. A nil
// return means the message may be routed.
func (r *Registry) Validate(msg *Message) error {
	schema, ok := r.schemas[msg.Type]
	if !ok {
		return fmt.Errorf("%w: %q", errors.ErrUnknownMessageType, msg.Type)
	}

	fields := msg.Fields()
	verr := &errors.ValidationError{}
	for _, rule := range schema.Rules {
		value := strings.TrimSpace(fields[rule.Name])
		if rule.Required && value == "" {
			verr.Add(rule.Name, "must be present with non-empty text")
			continue
		}
		if len(rule.Enum) > 0 && !slices.Contains(rule.Enum, value) {
			verr.Add(rule.Name, fmt.Sprintf("value %q not in %v", value, rule.Enum))
		}
	}
	if len(verr.Issues) > 0 {
		return verr
	}
	return nil
}
