package auth

import "github.com/golang-jwt/jwt/v5"

// RoleAdmin is the only role the contact administration routes accept.
const RoleAdmin = "admin"

// AdminTokenPayload captures the data available when minting an admin token.
type AdminTokenPayload struct {
	// Subject names the operator the token was issued to.
	Subject string
	JTI     string
}

// AdminClaims is the typed JWT carried by back-office clients.
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
