package session

import (
	"github.com/golang-jwt/jwt/v5"
)

// DisplayEmail extracts the account email from an access token for display
// purposes only. The token is decoded without verification; validity and
// expiry are the backend's business and a bad token just fails server-side.
func DisplayEmail(token string) string {
	if token == "" {
		return ""
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return ""
	}

	if email, ok := claims["email"].(string); ok && email != "" {
		return email
	}
	if sub, ok := claims["sub"].(string); ok {
		return sub
	}
	return ""
}
