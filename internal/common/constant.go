// Package common contains constants and error types shared by the storefront
// client layers.
package common

const (
	// AuthorizationHeaderName carries the session credential on outbound requests.
	AuthorizationHeaderName = "Authorization"
	BearerScheme            = "Bearer"

	// RequestIDHeaderName correlates a gateway request with its log lines.
	RequestIDHeaderName = "X-Request-ID"
)
