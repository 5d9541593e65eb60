// Package common contains shared constants and small utilities used across
// portal client components.
package common

// AuthorizationHeader is the HTTP header carrying the bearer credential on
// authenticated requests.
const AuthorizationHeader = "Authorization"

// BearerPrefix prefixes the credential inside the Authorization header.
const BearerPrefix = "Bearer "

// MinPasswordLength is the shortest password accepted at registration time.
const MinPasswordLength = 6
