package security

import (
	"net/http"
	"time"

	"studio_cms/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// AuthCookieName is the cookie carrying the session token.
const AuthCookieName = "auth-token"

const signingAlg = "HS256"

// TokenAuth is the jwtauth verifier used by the session gate, which
// runs before any route resolves. It shares the key and algorithm with
// GenerateToken/VerifyToken below; the two verification paths must
// agree on every input.
var TokenAuth *jwtauth.JWTAuth

var signingKey []byte

func InitJWT() {
	signingKey = config.AppConfig.JWTKey
	TokenAuth = jwtauth.New(signingAlg, signingKey, nil)
}

// SessionClaims is the identity embedded in a session token.
type SessionClaims struct {
	UserID    string
	Email     string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// GenerateToken mints a signed session token valid for the configured
// session TTL (7 days by default).
func GenerateToken(userID, email, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"iat":     now.Unix(),
		"exp":     now.Add(config.AppConfig.SessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingKey)
}

// VerifyToken checks signature and expiry and returns the embedded
// claims, or nil on any failure. Callers treat nil uniformly as
// unauthenticated; the reason is never surfaced.
func VerifyToken(tokenString string) *SessionClaims {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return signingKey, nil
	}, jwt.WithValidMethods([]string{signingAlg}))
	if err != nil || !token.Valid {
		return nil
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	sc := sessionClaimsFromMap(mapClaims)
	if sc == nil {
		return nil
	}
	if iat, ok := mapClaims["iat"].(float64); ok {
		sc.IssuedAt = time.Unix(int64(iat), 0)
	}
	if exp, ok := mapClaims["exp"].(float64); ok {
		sc.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return sc
}

// VerifyGateToken is the verification path used by the session gate.
// It goes through the jwtauth primitive rather than VerifyToken so the
// gate needs nothing beyond TokenAuth, but the accept/reject outcome
// must match VerifyToken for every input.
func VerifyGateToken(tokenString string) *SessionClaims {
	token, err := jwtauth.VerifyToken(TokenAuth, tokenString)
	if err != nil || token == nil {
		return nil
	}
	sc := sessionClaimsFromMap(token.PrivateClaims())
	if sc == nil {
		return nil
	}
	sc.IssuedAt = token.IssuedAt()
	sc.ExpiresAt = token.Expiration()
	return sc
}

// VerifyCookieToken extracts the auth cookie from the request and
// verifies it via the gate path. Returns nil when the cookie is absent
// or the token is invalid.
func VerifyCookieToken(r *http.Request) *SessionClaims {
	raw := TokenFromCookie(r)
	if raw == "" {
		return nil
	}
	return VerifyGateToken(raw)
}

// TokenFromCookie is the find-token hook handed to jwtauth: it reads
// the session token from the auth cookie.
func TokenFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(AuthCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// sessionClaimsFromMap pulls the identity fields out of a decoded
// claim set. Both verifiers funnel through here so they agree on what
// a well-formed token looks like.
func sessionClaimsFromMap(m map[string]interface{}) *SessionClaims {
	userID, ok := m["user_id"].(string)
	if !ok || userID == "" {
		return nil
	}
	email, ok := m["email"].(string)
	if !ok {
		return nil
	}
	role, ok := m["role"].(string)
	if !ok || role == "" {
		return nil
	}
	return &SessionClaims{UserID: userID, Email: email, Role: role}
}
