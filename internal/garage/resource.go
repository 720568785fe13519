package garage

import "github.com/egarage/pitview/internal/normalize"

// Resource identifies one logical backend list resource together with the
// candidate request paths that may serve it. Paths are probed in order;
// older backend deployments answer on the legacy path only.
type Resource struct {
	Name   string
	Paths  []string
	Schema normalize.Schema
}

// The four admin listing resources.
var (
	Appointments = Resource{
		Name:   "appointments",
		Paths:  []string{"/api/bookings", "/api/appointments"},
		Schema: normalize.Appointments,
	}
	Customers = Resource{
		Name:   "customers",
		Paths:  []string{"/api/users", "/api/customers"},
		Schema: normalize.Customers,
	}
	Payments = Resource{
		Name:   "payments",
		Paths:  []string{"/api/payments", "/api/payments/all"},
		Schema: normalize.Payments,
	}
	Messages = Resource{
		Name:   "messages",
		Paths:  []string{"/api/contact", "/api/messages"},
		Schema: normalize.Messages,
	}
)

// Resources lists every resource in display order.
var Resources = []Resource{Appointments, Customers, Payments, Messages}
