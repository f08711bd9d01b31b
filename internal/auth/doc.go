// Package auth provides authentication for pantry's HTTP API.
//
// # Tokens
//
// Users authenticate with a username and password (bcrypt hashes) and receive
// a JWT signed with HS256 using the configured jwt_secret. The token carries:
//
//   - sub: the numeric user id
//   - jti: a UUID that names the stored token row
//   - iat/exp: issue and expiry times
//
// Each user has at most one live token. Login returns the stored token while it
// is unexpired, so repeated logins from several devices share a token. Logout
// and Closeup delete the stored row, which revokes the token immediately even
// though its signature stays valid until exp.
//
// # Gate
//
//	gate := auth.NewGate(store, auth.NewJWTVerifier(secret), auth.GateConfig{}, logger)
//	token, err := gate.Login(ctx, "alice", "secret")
//	user, err := gate.Resolve(ctx, token)
//
// Login errors:
//
//   - ErrInvalidCredentials: unknown user or wrong password
//   - ErrAccountDisabled: the account was closed
//
// # HTTP
//
// HTTPAuthMiddleware reads "Authorization: Bearer <token>" (or the
// "Token <token>" form) and stores an AuthContext in the request context.
// Handlers read it with FromContext or MustFromContext.
package auth
