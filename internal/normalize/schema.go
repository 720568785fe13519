package normalize

// Field describes one display column of a normalized record.
//
// Sources lists lookup paths in priority order. A path is a dot-separated
// key chain into the source object; two chains joined by "+" concatenate
// their values with a space (used for first/last name pairs). The canonical
// output key is always the first source, so re-normalizing an
// already-normalized record reproduces the same values.
type Field struct {
	Key         string
	Title       string
	Sources     []string
	Placeholder string
	Searchable  bool
	Width       int
}

// Schema describes how one entity's backend payloads map onto records.
type Schema struct {
	// Entity is the lowercase entity name used in export filenames.
	Entity string

	// ContainerKeys are the known top-level keys the backend wraps the
	// list in, in lookup priority order.
	ContainerKeys []string

	Fields []Field
}

// SearchableKeys returns the keys searched by free-text filtering.
func (s Schema) SearchableKeys() []string {
	keys := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		if f.Searchable {
			keys = append(keys, f.Key)
		}
	}
	return keys
}

// FieldKeys returns all field keys in declaration order. This is also the
// fixed CSV column order.
func (s Schema) FieldKeys() []string {
	keys := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		keys[i] = f.Key
	}
	return keys
}

// Appointments is the schema for service-booking records.
var Appointments = Schema{
	Entity:        "appointments",
	ContainerKeys: []string{"bookings", "appointments", "data"},
	Fields: []Field{
		{Key: "id", Title: "ID", Sources: []string{"id", "_id", "booking_id"}, Placeholder: "N/A", Searchable: true, Width: 12},
		{Key: "customer", Title: "Customer", Sources: []string{"customer", "customer_name", "customer.name", "customer.first_name+customer.last_name", "user.name", "user.first_name+user.last_name", "name"}, Placeholder: "Unknown Customer", Searchable: true, Width: 22},
		{Key: "service", Title: "Service", Sources: []string{"service", "service_name", "service.name", "service_type"}, Placeholder: "General Service", Searchable: true, Width: 20},
		{Key: "vehicle", Title: "Vehicle", Sources: []string{"vehicle", "vehicle_model", "car_model", "vehicle.model", "car"}, Placeholder: "N/A", Searchable: true, Width: 18},
		{Key: "date", Title: "Date", Sources: []string{"date", "appointment_date", "scheduled_at", "booking_date", "created_at"}, Placeholder: "N/A", Width: 12},
		{Key: "time", Title: "Time", Sources: []string{"time", "appointment_time", "slot"}, Placeholder: "N/A", Width: 8},
		{Key: "status", Title: "Status", Sources: []string{"status", "booking_status"}, Placeholder: "pending", Searchable: true, Width: 12},
	},
}

// Customers is the schema for registered-user records.
var Customers = Schema{
	Entity:        "customers",
	ContainerKeys: []string{"users", "customers", "data"},
	Fields: []Field{
		{Key: "id", Title: "ID", Sources: []string{"id", "_id", "user_id"}, Placeholder: "N/A", Searchable: true, Width: 12},
		{Key: "name", Title: "Name", Sources: []string{"name", "full_name", "first_name+last_name", "user.name"}, Placeholder: "Unknown Customer", Searchable: true, Width: 22},
		{Key: "email", Title: "Email", Sources: []string{"email", "user.email", "contact_email"}, Placeholder: "N/A", Searchable: true, Width: 26},
		{Key: "phone", Title: "Phone", Sources: []string{"phone", "phone_number", "mobile", "contact.phone"}, Placeholder: "N/A", Searchable: true, Width: 15},
		{Key: "joined", Title: "Joined", Sources: []string{"joined", "created_at", "createdAt", "registered_at"}, Placeholder: "N/A", Width: 12},
		{Key: "status", Title: "Status", Sources: []string{"status", "account_status"}, Placeholder: "active", Searchable: true, Width: 10},
	},
}

// Payments is the schema for payment records.
var Payments = Schema{
	Entity:        "payments",
	ContainerKeys: []string{"payments", "transactions", "data"},
	Fields: []Field{
		{Key: "id", Title: "ID", Sources: []string{"id", "_id", "payment_id", "transaction_id"}, Placeholder: "N/A", Searchable: true, Width: 12},
		{Key: "customer", Title: "Customer", Sources: []string{"customer", "customer_name", "customer.name", "user.name", "booking.customer_name"}, Placeholder: "Unknown Customer", Searchable: true, Width: 22},
		{Key: "amount", Title: "Amount", Sources: []string{"amount", "total", "price", "amount_paid"}, Placeholder: "0", Searchable: true, Width: 10},
		{Key: "method", Title: "Method", Sources: []string{"method", "payment_method", "gateway"}, Placeholder: "card", Searchable: true, Width: 10},
		{Key: "status", Title: "Status", Sources: []string{"status", "payment_status"}, Placeholder: "pending", Searchable: true, Width: 12},
		{Key: "date", Title: "Date", Sources: []string{"date", "paid_at", "created_at", "createdAt"}, Placeholder: "N/A", Width: 12},
	},
}

// Messages is the schema for contact-form messages.
var Messages = Schema{
	Entity:        "messages",
	ContainerKeys: []string{"contact_messages", "messages", "data"},
	Fields: []Field{
		{Key: "id", Title: "ID", Sources: []string{"id", "_id", "message_id"}, Placeholder: "N/A", Searchable: true, Width: 12},
		{Key: "name", Title: "From", Sources: []string{"name", "sender_name", "user.name"}, Placeholder: "N/A", Searchable: true, Width: 18},
		{Key: "email", Title: "Email", Sources: []string{"email", "sender_email"}, Placeholder: "N/A", Searchable: true, Width: 24},
		{Key: "subject", Title: "Subject", Sources: []string{"subject", "title"}, Placeholder: "(no subject)", Searchable: true, Width: 24},
		{Key: "message", Title: "Message", Sources: []string{"message", "body", "content"}, Placeholder: "", Searchable: true, Width: 32},
		{Key: "date", Title: "Date", Sources: []string{"date", "created_at", "createdAt", "sent_at"}, Placeholder: "N/A", Width: 12},
	},
}
