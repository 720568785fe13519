// Package normalize converts heterogeneous E-Garage backend payloads into
// fixed, display-ready records.
//
// # Overview
//
// The backend's list endpoints are not consistent about shape: the same
// logical resource may arrive as {"bookings": [...]}, {"users": [...]},
// a bare array, or an envelope whose list lives under an unadvertised key.
// Individual elements vary just as much, with the customer name appearing
// as customer_name, customer.name, customer.first_name + last_name, or
// user.name depending on which backend revision produced the row.
//
// This package absorbs all of that at one boundary. Each entity has a
// Schema listing its fields, and each field lists its source paths in
// priority order with a literal placeholder for when none match. The
// output is a flat Record per element alongside the untouched Raw payload,
// so the original server data is always available for inspection and
// export.
//
// # Pipeline
//
// Normalize applies these steps, each a fallback for the previous:
//
//  1. Strip a UTF-8 byte-order mark and surrounding whitespace.
//  2. Reject HTML bodies with ErrHTMLPayload. An HTML page where JSON was
//     expected means a misconfigured server or proxy, which operators need
//     to distinguish from a mere shape mismatch.
//  3. If the body does not start with '{' or '[', extract the first JSON
//     object/array substring before parsing.
//  4. Parse as JSON; unparsable bodies fail here.
//  5. Locate the list: known container keys first, then a bare top-level
//     array, then the first array-valued field in document order.
//
// # Guarantees
//
// Normalization is total over valid arrays: the output record count equals
// the element count, and a malformed element yields a placeholder record
// rather than an error or a dropped entry. It is also idempotent: every
// field's canonical output key is its first source path, so normalizing an
// already-normalized record reproduces the same values.
package normalize
