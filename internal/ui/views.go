package ui

import (
	"strings"

	"github.com/egarage/pitview/internal/garage"
)

// View represents the active listing view.
type View int

const (
	ViewAppointments View = iota
	ViewCustomers
	ViewPayments
	ViewMessages
)

// AllViews lists views in tab order.
var AllViews = []View{ViewAppointments, ViewCustomers, ViewPayments, ViewMessages}

// Resource returns the backend resource behind a view.
func (v View) Resource() garage.Resource {
	switch v {
	case ViewCustomers:
		return garage.Customers
	case ViewPayments:
		return garage.Payments
	case ViewMessages:
		return garage.Messages
	default:
		return garage.Appointments
	}
}

// Title returns the display name of a view.
func (v View) Title() string {
	switch v {
	case ViewCustomers:
		return "Customers"
	case ViewPayments:
		return "Payments"
	case ViewMessages:
		return "Messages"
	default:
		return "Appointments"
	}
}

// Next returns the view after v in tab order.
func (v View) Next() View {
	return AllViews[(int(v)+1)%len(AllViews)]
}

// Prev returns the view before v in tab order.
func (v View) Prev() View {
	return AllViews[(int(v)+len(AllViews)-1)%len(AllViews)]
}

// ViewFromName maps a preference string to a view, defaulting to
// appointments for anything unrecognized.
func ViewFromName(name string) View {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "customers":
		return ViewCustomers
	case "payments":
		return ViewPayments
	case "messages":
		return ViewMessages
	default:
		return ViewAppointments
	}
}
