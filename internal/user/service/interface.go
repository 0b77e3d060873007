// Package service provides technical services for user authentication.
//
// This package implements reusable services for password hashing and API
// token generation using industry-standard cryptographic practices.
package service

// PasswordService defines operations for password hashing and validation.
// Implementations must use industry-standard hashing algorithms
// (e.g., bcrypt, argon2).
type PasswordService interface {
	// HashPassword hashes a plain text password using a secure hashing algorithm.
	HashPassword(plainPassword string) (hashedPassword string, error error)

	// ComparePassword compares a plain text password against a hashed password.
	// Returns true if the plain password matches the hash, false otherwise.
	// This is constant-time to prevent timing attacks.
	ComparePassword(plainPassword string, hashedPassword string) bool
}

// TokenService defines operations for API token generation and hashing.
// Implementations must use cryptographically secure random generation and
// fast hashing algorithms suitable for bearer tokens (e.g., SHA-256).
type TokenService interface {
	// GenerateToken creates a new cryptographically secure random token.
	// Returns both the plain text token (to be shared with the user) and
	// the hashed version (to be stored in the database).
	//
	// The plain token should be treated as sensitive data and only displayed
	// once to the user during issuance.
	GenerateToken() (plainToken string, tokenHash string, error error)

	// HashToken hashes a plain text token using SHA-256.
	// Used for token validation by comparing hashes.
	HashToken(plainToken string) string
}
