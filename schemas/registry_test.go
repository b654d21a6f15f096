package schemas

import (
	"testing"

	"github.com/stretchr/testify/require"

	"planning-sync/errors"
)

func TestRegistry_Validate(t *testing.T) {
	registry := NewRegistry()

	valid := func() *Message {
		return &Message{
			Type:       TypeUser,
			RoutingKey: "user.planning",
			Operation:  OpCreate,
			ExternalID: "user-1",
			Payload: &UserMessage{
				RoutingKey: "user.planning",
				Operation:  "create",
				ID:         "user-1",
				FirstName:  "John",
			},
		}
	}

	t.Run("should accept a valid message", func(t *testing.T) {
		req := require.New(t)

		req.NoError(registry.Validate(valid()))
	})

	t.Run("should accept empty nillable fields", func(t *testing.T) {
		req := require.New(t)
		msg := valid()
		msg.Payload.(*UserMessage).FirstName = ""
		msg.Payload.(*UserMessage).Email = ""

		req.NoError(registry.Validate(msg))
	})

	t.Run("should reject a missing id", func(t *testing.T) {
		req := require.New(t)
		msg := valid()
		msg.Payload.(*UserMessage).ID = ""

		err := registry.Validate(msg)

		req.ErrorIs(err, errors.ErrValidation)
	})

	t.Run("should reject a whitespace-only routing key", func(t *testing.T) {
		req := require.New(t)
		msg := valid()
		msg.Payload.(*UserMessage).RoutingKey = "   "

		req.ErrorIs(registry.Validate(msg), errors.ErrValidation)
	})

	t.Run("should reject a crud_operation outside the enum", func(t *testing.T) {
		req := require.New(t)
		msg := valid()
		msg.Payload.(*UserMessage).Operation = "archive"

		err := registry.Validate(msg)

		req.ErrorIs(err, errors.ErrValidation)
		var verr *errors.ValidationError
		req.ErrorAs(err, &verr)
		req.Len(verr.Issues, 1)
		req.Equal("crud_operation", verr.Issues[0].Field)
	})

	t.Run("should reject a user_role outside the enum", func(t *testing.T) {
		req := require.New(t)
		msg := valid()
		msg.Payload.(*UserMessage).UserRole = "admin"

		req.ErrorIs(registry.Validate(msg), errors.ErrValidation)
	})

	t.Run("should accept an empty user_role", func(t *testing.T) {
		req := require.New(t)
		msg := valid()
		msg.Payload.(*UserMessage).UserRole = ""

		req.NoError(registry.Validate(msg))
	})

	t.Run("should collect every violation in one pass", func(t *testing.T) {
		req := require.New(t)
		msg := valid()
		doc := msg.Payload.(*UserMessage)
		doc.ID = ""
		doc.RoutingKey = ""
		doc.Operation = "merge"

		err := registry.Validate(msg)

		var verr *errors.ValidationError
		req.ErrorAs(err, &verr)
		req.Len(verr.Issues, 3)
	})

	t.Run("should fail with ErrUnknownMessageType for an unregistered type", func(t *testing.T) {
		req := require.New(t)
		msg := valid()
		msg.Type = MessageType("invoice")

		req.ErrorIs(registry.Validate(msg), errors.ErrUnknownMessageType)
	})
}
