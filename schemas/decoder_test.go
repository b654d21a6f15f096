package schemas

import (
	"testing"

	"github.com/stretchr/testify/require"

	"planning-sync/errors"
)

const userXML = `<user>
	<routing_key>user.planning</routing_key>
	<crud_operation>create</crud_operation>
	<id>aaaa-bbbb-cccc</id>
	<first_name>John</first_name>
	<last_name>Doe</last_name>
	<email>john.doe@mail.com</email>
	<telephone>+32476123456</telephone>
	<birthday></birthday>
	<address>
		<country>Belgium</country>
		<state></state>
		<city>Brussels</city>
		<zip>1000</zip>
		<street>Nijverheidskaai</street>
		<house_number>170</house_number>
	</address>
	<company_email></company_email>
	<company_id></company_id>
	<source>frontend</source>
	<user_role>speaker</user_role>
	<invoice></invoice>
	<calendar_link></calendar_link>
</user>`

func TestDecode(t *testing.T) {
	t.Run("should decode a user document into a typed envelope", func(t *testing.T) {
		req := require.New(t)

		msg, err := Decode([]byte(userXML))

		req.NoError(err)
		req.Equal(TypeUser, msg.Type)
		req.Equal("user.planning", msg.RoutingKey)
		req.Equal(OpCreate, msg.Operation)
		req.Equal("aaaa-bbbb-cccc", msg.ExternalID)

		doc, ok := msg.Payload.(*UserMessage)
		req.True(ok)
		req.Equal("John", doc.FirstName)
		req.Equal("Brussels", doc.Address.City)
		req.Equal("speaker", doc.UserRole)
	})

	t.Run("should decode an attendance document", func(t *testing.T) {
		req := require.New(t)
		raw := `<attendance>
			<routing_key>attendance.planning</routing_key>
			<crud_operation>delete</crud_operation>
			<id>att-1</id>
			<user_id>user-1</user_id>
			<event_id>event-1</event_id>
		</attendance>`

		msg, err := Decode([]byte(raw))

		req.NoError(err)
		req.Equal(TypeAttendance, msg.Type)
		req.Equal(OpDelete, msg.Operation)

		doc := msg.Payload.(*AttendanceMessage)
		req.Equal("user-1", doc.UserID)
		req.Equal("event-1", doc.EventID)
	})

	t.Run("should trim whitespace around envelope fields", func(t *testing.T) {
		req := require.New(t)
		raw := `<company>
			<routing_key> company.planning </routing_key>
			<crud_operation>
				update
			</crud_operation>
			<id> comp-1 </id>
		</company>`

		msg, err := Decode([]byte(raw))

		req.NoError(err)
		req.Equal("company.planning", msg.RoutingKey)
		req.Equal(OpUpdate, msg.Operation)
		req.Equal("comp-1", msg.ExternalID)
	})

	t.Run("should fail with ErrDecode on malformed XML", func(t *testing.T) {
		req := require.New(t)

		_, err := Decode([]byte(`<user><id>broken`))

		req.ErrorIs(err, errors.ErrDecode)
	})

	t.Run("should fail with ErrDecode on an empty body", func(t *testing.T) {
		req := require.New(t)

		_, err := Decode([]byte(``))

		req.ErrorIs(err, errors.ErrDecode)
	})

	t.Run("should fail with ErrUnknownMessageType on an unknown root tag", func(t *testing.T) {
		req := require.New(t)

		_, err := Decode([]byte(`<invoice><id>1</id></invoice>`))

		req.ErrorIs(err, errors.ErrUnknownMessageType)
	})
}
