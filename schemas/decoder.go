package schemas

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"planning-sync/errors"
)

// Decode parses a raw broker payload into a typed Message. The root tag
// selects the document struct; a body that is not well-formed XML is an
// ErrDecode (dropped, never retried), a root tag outside the known set is
// an ErrUnknownMessageType.
func Decode(raw []byte) (*Message, error) {
	root, err := rootTag(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrDecode, err)
	}

	switch MessageType(root) {
	case TypeUser:
		var doc UserMessage
		if err := xml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", errors.ErrDecode, err)
		}
		return envelope(TypeUser, doc.RoutingKey, doc.Operation, doc.ID, &doc), nil
	case TypeCompany:
		var doc CompanyMessage
		if err := xml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", errors.ErrDecode, err)
		}
		return envelope(TypeCompany, doc.RoutingKey, doc.Operation, doc.ID, &doc), nil
	case TypeEvent:
		var doc EventMessage
		if err := xml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", errors.ErrDecode, err)
		}
		return envelope(TypeEvent, doc.RoutingKey, doc.Operation, doc.ID, &doc), nil
	case TypeAttendance:
		var doc AttendanceMessage
		if err := xml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", errors.ErrDecode, err)
		}
		return envelope(TypeAttendance, doc.RoutingKey, doc.Operation, doc.ID, &doc), nil
	}
	return nil, fmt.Errorf("%w: %q", errors.ErrUnknownMessageType, root)
}

func envelope(t MessageType, key, op, id string, payload any) *Message {
	return &Message{
		Type:       t,
		RoutingKey: strings.TrimSpace(key),
		Operation:  Operation(strings.TrimSpace(op)),
		ExternalID: strings.TrimSpace(id),
		Payload:    payload,
	}
}

// rootTag scans for the first start element without unmarshalling the
// whole document.
func rootTag(raw []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(raw))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return "", fmt.Errorf("document has no root element")
		}
		if err != nil {
			return "", err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start.Name.Local, nil
		}
	}
}
