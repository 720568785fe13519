// Package demo supplies the sample dataset shown when the backend is
// unreachable. It implements the same fetch interface as the live client
// so the app can select it explicitly (demo mode) or fall back to it on
// total fetch failure. Callers must flag demo-sourced data to the user;
// the records here are fabricated and must never pass for live state.
package demo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	"github.com/egarage/pitview/internal/garage"
	"github.com/egarage/pitview/internal/normalize"
)

// Provider produces a fixed, deterministic set of plausible records per
// resource. The faker is reseeded on every call, so repeated fetches
// return identical data except for the dates, which track "now".
type Provider struct {
	now func() time.Time
}

// demoSeed pins the faker output. Changing it changes every sample record.
const demoSeed = 7487

const recordsPerResource = 6

// Ensure Provider implements the live fetch interface at compile time.
var _ garage.ListFetcher = (*Provider)(nil)

// NewProvider returns a Provider using the real clock.
func NewProvider() *Provider {
	return &Provider{now: time.Now}
}

// FetchList returns the sample records for one resource. It never fails
// and performs no I/O; the context is accepted only to satisfy the
// interface.
func (p *Provider) FetchList(_ context.Context, res garage.Resource) (garage.ListResult, error) {
	payload, err := json.Marshal(p.samplePayload(res))
	if err != nil {
		return garage.ListResult{}, fmt.Errorf("marshal %s samples: %w", res.Name, err)
	}
	records, err := normalize.Normalize(res.Schema, payload)
	if err != nil {
		return garage.ListResult{}, fmt.Errorf("normalize %s samples: %w", res.Name, err)
	}
	return garage.ListResult{Records: records, URL: "demo://" + res.Name}, nil
}

// samplePayload builds the raw element list for a resource. Elements go
// through the normal normalization path so demo data exercises exactly
// the same pipeline as live data.
func (p *Provider) samplePayload(res garage.Resource) []map[string]any {
	f := gofakeit.New(demoSeed)
	now := p.now()

	elems := make([]map[string]any, recordsPerResource)
	for i := range elems {
		switch res.Name {
		case garage.Customers.Name:
			elems[i] = p.sampleCustomer(f, now, i)
		case garage.Payments.Name:
			elems[i] = p.samplePayment(f, now, i)
		case garage.Messages.Name:
			elems[i] = p.sampleMessage(f, now, i)
		default:
			elems[i] = p.sampleAppointment(f, now, i)
		}
	}
	return elems
}

var sampleServices = []string{
	"Oil Change", "Brake Inspection", "Tire Rotation",
	"Engine Diagnostics", "AC Service", "Full Service",
}

var sampleStatuses = []string{"pending", "confirmed", "in_progress", "completed", "pending", "cancelled"}

func (p *Provider) sampleAppointment(f *gofakeit.Faker, now time.Time, i int) map[string]any {
	// Spread bookings around today: yesterday, today, tomorrow, ...
	day := now.AddDate(0, 0, i-1)
	return map[string]any{
		"_id":           demoID("appointments", i),
		"customer_name": f.Name(),
		"service_name":  sampleServices[i%len(sampleServices)],
		"vehicle_model": f.CarMaker() + " " + f.CarModel(),
		"date":          day.Format("2006-01-02"),
		"time":          fmt.Sprintf("%02d:00", 9+i),
		"status":        sampleStatuses[i%len(sampleStatuses)],
	}
}

func (p *Provider) sampleCustomer(f *gofakeit.Faker, now time.Time, i int) map[string]any {
	return map[string]any{
		"_id":        demoID("customers", i),
		"name":       f.Name(),
		"email":      f.Email(),
		"phone":      f.Phone(),
		"created_at": now.AddDate(0, 0, -30*(i+1)).Format("2006-01-02"),
		"status":     "active",
	}
}

func (p *Provider) samplePayment(f *gofakeit.Faker, now time.Time, i int) map[string]any {
	return map[string]any{
		"_id":            demoID("payments", i),
		"customer_name":  f.Name(),
		"amount":         f.Price(40, 600),
		"payment_method": []string{"card", "cash", "card", "transfer", "card", "cash"}[i],
		"status":         []string{"paid", "paid", "pending", "paid", "refunded", "paid"}[i],
		"created_at":     now.AddDate(0, 0, -i).Format("2006-01-02"),
	}
}

func (p *Provider) sampleMessage(f *gofakeit.Faker, now time.Time, i int) map[string]any {
	return map[string]any{
		"_id":        demoID("messages", i),
		"name":       f.Name(),
		"email":      f.Email(),
		"subject":    f.Sentence(4),
		"message":    f.Paragraph(1, 2, 8, " "),
		"created_at": now.AddDate(0, 0, -i).Format("2006-01-02"),
	}
}

// demoID derives a stable per-record identifier. SHA1-based UUIDs keep the
// set fixed across runs without storing anything.
func demoID(entity string, i int) string {
	name := fmt.Sprintf("pitview/demo/%s/%d", entity, i)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}
