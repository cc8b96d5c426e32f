package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Operator access token required
)

// EndpointSecurityConfig maps gRPC methods and REST routes to their
// required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	// REST - Public
	"POST /api/v1/auth/login": SecurityPublic,
	"GET /health":             SecurityPublic,

	// Served to <img> tags, which cannot carry a bearer token
	"GET /api/v1/images/{key}": SecurityPublic,

	// LedgerService - Access Protected
	"/tentledger.v1.LedgerService/PreviewTotals": SecurityAccess,
	"/tentledger.v1.LedgerService/SaveRecord":    SecurityAccess,
	"/tentledger.v1.LedgerService/GetRecord":     SecurityAccess,
	"/tentledger.v1.LedgerService/ListAccounts":  SecurityAccess,
}

// GetSecurityLevel returns the security level for a given method
func GetSecurityLevel(method string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[method]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityAccess
}
