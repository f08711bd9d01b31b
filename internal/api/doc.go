// Package api serves the pantry HTTP API.
//
// The Server owns the store, the auth gate and the kitchen service. It
// listens on a TCP address or, when configured, on a Tailscale node via
// tsnet. All kitchen routes require a bearer token issued by /auth/login and
// may be mounted under a base path.
package api
