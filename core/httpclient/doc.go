// Package httpclient wraps net/http for the catalog and cover downloads.
//
// It owns the transport-level policy the sync pipeline does not care about:
// timeouts, optional TLS verification relaxation, the User-Agent header and a
// small retry loop for network errors and 5xx responses. Bodies are always
// read fully so callers only ever see complete payloads.
package httpclient
