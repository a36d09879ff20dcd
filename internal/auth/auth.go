// Package auth verifies the HMAC session tokens issued by the hosted
// sign-in service and maps them onto dashboard scopes.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
)

// Role is the dashboard access level carried in a session token.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}

// Claims extends jwt.RegisteredClaims with dashboard-specific fields.
type Claims struct {
	jwt.RegisteredClaims
	Role  Role   `json:"role"`
	BDMID string `json:"bdm_id,omitempty"` // empty for admins not tied to a BDM
}

// Scope is what a validated token entitles the caller to see.
type Scope struct {
	Role  Role
	BDMID string
}

// SeesAll reports whether the scope covers every BDM's data.
func (s Scope) SeesAll() bool {
	return s.Role == RoleAdmin || s.Role == RoleManager
}

// CanAccessBDM reports whether the scope may read data owned by bdmID.
func (s Scope) CanAccessBDM(bdmID string) bool {
	if s.SeesAll() {
		return true
	}
	return s.BDMID != "" && s.BDMID == bdmID
}

// Manager signs and validates session tokens with a shared HMAC secret.
type Manager struct {
	secret     []byte
	issuer     string
	expiration time.Duration
}

// NewManager creates a Manager. The secret must match the hosted
// sign-in service's signing key.
func NewManager(secret string, issuer string, expiration time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, eris.New("auth: empty signing secret")
	}
	if issuer == "" {
		issuer = "bdm-console"
	}
	if expiration <= 0 {
		expiration = 12 * time.Hour
	}
	return &Manager{secret: []byte(secret), issuer: issuer, expiration: expiration}, nil
}

// Issue creates a signed token for the given subject. Used by the CLI
// and tests; production tokens come from the hosted sign-in service.
func (m *Manager) Issue(subject string, role Role, bdmID string) (string, time.Time, error) {
	if !role.Valid() {
		return "", time.Time{}, eris.Errorf("auth: unknown role %q", role)
	}

	now := time.Now().UTC()
	exp := now.Add(m.expiration)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.New().String(),
		},
		Role:  role,
		BDMID: bdmID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, eris.Wrap(err, "auth: sign token")
	}
	return signed, exp, nil
}

// Validate parses and verifies a token, returning its scope.
func (m *Manager) Validate(tokenStr string) (Scope, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&Claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, eris.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return m.secret, nil
		},
		jwt.WithIssuer(m.issuer),
	)
	if err != nil {
		return Scope{}, eris.Wrap(err, "auth: validate token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Scope{}, eris.New("auth: invalid token claims")
	}
	if !claims.Role.Valid() {
		return Scope{}, eris.Errorf("auth: unknown role %q", claims.Role)
	}
	if claims.Role == RoleUser && claims.BDMID == "" {
		return Scope{}, eris.New("auth: user token missing bdm_id")
	}

	return Scope{Role: claims.Role, BDMID: claims.BDMID}, nil
}
