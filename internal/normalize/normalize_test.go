package normalize

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_ContactMessages(t *testing.T) {
	body := []byte(`{"contact_messages":[{"_id":"m1","name":"Ann","email":"a@x.com","subject":"Hi","message":"Hello","created_at":"2024-01-01T00:00:00Z"}],"count":1,"status":true}`)

	records, err := Normalize(Messages, body)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "m1", rec.ID)
	assert.Equal(t, "Ann", rec.Get("name"))
	assert.Equal(t, "a@x.com", rec.Get("email"))
	assert.Equal(t, "Hi", rec.Get("subject"))
	assert.Equal(t, "Hello", rec.Get("message"))
	assert.Equal(t, "2024-01-01T00:00:00Z", rec.Get("date"))
}

func TestNormalize_BareArrayAndBOM(t *testing.T) {
	body := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`  [{"id":7,"amount":120.5,"status":"paid"}] `)...)

	records, err := Normalize(Payments, body)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "7", records[0].ID)
	assert.Equal(t, "120.5", records[0].Get("amount"))
	assert.Equal(t, "paid", records[0].Get("status"))
}

func TestNormalize_FirstArrayFieldInDocumentOrder(t *testing.T) {
	// No known container key: the first array-valued field wins, not an
	// arbitrary map-iteration pick.
	body := []byte(`{"count":2,"results":[{"id":"a"},{"id":"b"}],"stale":[{"id":"z"}]}`)

	records, err := Normalize(Customers, body)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].ID)
	assert.Equal(t, "b", records[1].ID)
}

func TestNormalize_ExtractsEmbeddedJSON(t *testing.T) {
	body := []byte("Warning: deprecated endpoint\n{\"users\":[{\"id\":\"u1\",\"name\":\"Bea\"}]}")

	records, err := Normalize(Customers, body)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Bea", records[0].Get("name"))
}

func TestNormalize_HTMLBodyIsDistinctError(t *testing.T) {
	_, err := Normalize(Appointments, []byte("<!DOCTYPE html><html><body>502</body></html>"))
	require.ErrorIs(t, err, ErrHTMLPayload)
}

func TestNormalize_ParseAndShapeErrors(t *testing.T) {
	_, err := Normalize(Appointments, []byte("{not-json"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrHTMLPayload)

	_, err = Normalize(Appointments, []byte(`{"count":0,"status":true}`))
	require.ErrorIs(t, err, ErrNoList)
}

func TestNormalize_TotalOverMalformedElements(t *testing.T) {
	// Property: output length equals input length for any valid array,
	// including empty objects and non-object elements.
	body := []byte(`{"bookings":[{},42,"junk",{"customer_name":"Cal"},null]}`)

	records, err := Normalize(Appointments, body)
	require.NoError(t, err)
	require.Len(t, records, 5)

	assert.Equal(t, "N/A", records[0].ID)
	assert.Equal(t, "Unknown Customer", records[0].Get("customer"))
	assert.Equal(t, "pending", records[0].Get("status"))
	assert.Equal(t, "Cal", records[3].Get("customer"))
}

func TestNormalize_FieldFallbackPriority(t *testing.T) {
	cases := []struct {
		name string
		elem string
		want string
	}{
		{"flat key", `{"customer_name":"Flat"}`, "Flat"},
		{"nested name", `{"customer":{"name":"Nested"}}`, "Nested"},
		{"split name", `{"customer":{"first_name":"Ann","last_name":"Lee"}}`, "Ann Lee"},
		{"first name only", `{"customer":{"first_name":"Solo"}}`, "Solo"},
		{"user name", `{"user":{"name":"UserName"}}`, "UserName"},
		{"missing", `{}`, "Unknown Customer"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := []byte(fmt.Sprintf(`{"bookings":[%s]}`, tc.elem))
			records, err := Normalize(Appointments, body)
			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.Equal(t, tc.want, records[0].Get("customer"))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	body := []byte(`{"bookings":[{"_id":"b1","customer":{"first_name":"Ann","last_name":"Lee"},"service_name":"Oil Change"},{}]}`)

	first, err := Normalize(Appointments, body)
	require.NoError(t, err)

	// Re-normalize the normalized view: placeholders must not cascade into
	// different placeholders and derived values must survive.
	for i, rec := range first {
		flat := make(map[string]string, len(rec.Fields)+1)
		for k, v := range rec.Fields {
			flat[k] = v
		}
		reencoded, err := json.Marshal([]map[string]string{flat})
		require.NoError(t, err)

		second, err := Normalize(Appointments, reencoded)
		require.NoError(t, err)
		require.Len(t, second, 1)
		assert.Equal(t, rec.Fields, second[0].Fields, "record %d", i)
	}
}

func TestNormalize_RawPreservedVerbatim(t *testing.T) {
	elem := `{"_id":"p1","amount":50,"extra":{"deep":true}}`
	body := []byte(`{"payments":[` + elem + `]}`)

	records, err := Normalize(Payments, body)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.JSONEq(t, elem, string(records[0].Raw))
}
