package schemas

import "encoding/xml"

// The structs below mirror the planning message documents field for
// field. Every element is a string on the wire; numeric and date fields
// are parsed by the handlers after validation.

type Address struct {
	Country     string `xml:"country"`
	State       string `xml:"state"`
	City        string `xml:"city"`
	Zip         string `xml:"zip"`
	Street      string `xml:"street"`
	HouseNumber string `xml:"house_number"`
}

type Speaker struct {
	UserID    string `xml:"user_id"`
	CompanyID string `xml:"company_id"`
}

type UserMessage struct {
	XMLName      xml.Name `xml:"user"`
	RoutingKey   string   `xml:"routing_key"`
	Operation    string   `xml:"crud_operation"`
	ID           string   `xml:"id"`
	FirstName    string   `xml:"first_name"`
	LastName     string   `xml:"last_name"`
	Email        string   `xml:"email"`
	Telephone    string   `xml:"telephone"`
	Birthday     string   `xml:"birthday"`
	Address      Address  `xml:"address"`
	CompanyEmail string   `xml:"company_email"`
	CompanyID    string   `xml:"company_id"`
	Source       string   `xml:"source"`
	UserRole     string   `xml:"user_role"`
	Invoice      string   `xml:"invoice"`
	CalendarLink string   `xml:"calendar_link"`
}

type CompanyMessage struct {
	XMLName    xml.Name `xml:"company"`
	RoutingKey string   `xml:"routing_key"`
	Operation  string   `xml:"crud_operation"`
	ID         string   `xml:"id"`
	Name       string   `xml:"name"`
	Email      string   `xml:"email"`
	Telephone  string   `xml:"telephone"`
	Logo       string   `xml:"logo"`
	Address    Address  `xml:"address"`
	Sponsor    string   `xml:"sponsor"`
	Invoice    string   `xml:"invoice"`
}

type EventMessage struct {
	XMLName          xml.Name `xml:"event"`
	RoutingKey       string   `xml:"routing_key"`
	Operation        string   `xml:"crud_operation"`
	ID               string   `xml:"id"`
	Title            string   `xml:"title"`
	Date             string   `xml:"date"`
	StartTime        string   `xml:"start_time"`
	EndTime          string   `xml:"end_time"`
	Location         string   `xml:"location"`
	Speaker          Speaker  `xml:"speaker"`
	MaxRegistrations string   `xml:"max_registrations"`
	AvailableSeats   string   `xml:"available_seats"`
	Description      string   `xml:"description"`
}

type AttendanceMessage struct {
	XMLName    xml.Name `xml:"attendance"`
	RoutingKey string   `xml:"routing_key"`
	Operation  string   `xml:"crud_operation"`
	ID         string   `xml:"id"`
	UserID     string   `xml:"user_id"`
	EventID    string   `xml:"event_id"`
}

func (m *UserMessage) fields() map[string]string {
	return map[string]string{
		"routing_key":          m.RoutingKey,
		"crud_operation":       m.Operation,
		"id":                   m.ID,
		"first_name":           m.FirstName,
		"last_name":            m.LastName,
		"email":                m.Email,
		"telephone":            m.Telephone,
		"birthday":             m.Birthday,
		"address.country":      m.Address.Country,
		"address.state":        m.Address.State,
		"address.city":         m.Address.City,
		"address.zip":          m.Address.Zip,
		"address.street":       m.Address.Street,
		"address.house_number": m.Address.HouseNumber,
		"company_email":        m.CompanyEmail,
		"company_id":           m.CompanyID,
		"source":               m.Source,
		"user_role":            m.UserRole,
		"invoice":              m.Invoice,
		"calendar_link":        m.CalendarLink,
	}
}

func (m *CompanyMessage) fields() map[string]string {
	return map[string]string{
		"routing_key":          m.RoutingKey,
		"crud_operation":       m.Operation,
		"id":                   m.ID,
		"name":                 m.Name,
		"email":                m.Email,
		"telephone":            m.Telephone,
		"logo":                 m.Logo,
		"address.country":      m.Address.Country,
		"address.state":        m.Address.State,
		"address.city":         m.Address.City,
		"address.zip":          m.Address.Zip,
		"address.street":       m.Address.Street,
		"address.house_number": m.Address.HouseNumber,
		"sponsor":              m.Sponsor,
		"invoice":              m.Invoice,
	}
}

func (m *EventMessage) fields() map[string]string {
	return map[string]string{
		"routing_key":        m.RoutingKey,
		"crud_operation":     m.Operation,
		"id":                 m.ID,
		"title":              m.Title,
		"date":               m.Date,
		"start_time":         m.StartTime,
		"end_time":           m.EndTime,
		"location":           m.Location,
		"speaker.user_id":    m.Speaker.UserID,
		"speaker.company_id": m.Speaker.CompanyID,
		"max_registrations":  m.MaxRegistrations,
		"available_seats":    m.AvailableSeats,
		"description":        m.Description,
	}
}

func (m *AttendanceMessage) fields() map[string]string {
	return map[string]string{
		"routing_key":    m.RoutingKey,
		"crud_operation": m.Operation,
		"id":             m.ID,
		"user_id":        m.UserID,
		"event_id":       m.EventID,
	}
}
