package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rankscore-ai/rankscore/models"
)

// Session is one redeemed access code: the email that bought it and when the
// resulting token stops working.
type Session struct {
	Email     string
	ExpiresAt time.Time
}

// Sessions is the in-memory registry of pro session tokens. Redeeming an
// access code creates a session; the token then authorizes the pro endpoints
// until it expires. Safe for concurrent use.
type Sessions struct {
	mu      sync.Mutex
	ttl     time.Duration
	byToken map[string]Session
}

// NewSessions creates a registry with the given token lifetime and starts a
// background sweep that drops expired sessions every 5 minutes.
func NewSessions(ttl time.Duration) *Sessions {
	s := &Sessions{
		ttl:     ttl,
		byToken: make(map[string]Session),
	}

	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			s.mu.Lock()
			for token, sess := range s.byToken {
				if sess.ExpiresAt.Before(now) {
					delete(s.byToken, token)
				}
			}
			s.mu.Unlock()
		}
	}()

	return s
}

// Create registers a new session for the email and returns its bearer token.
func (s *Sessions) Create(email string) (string, time.Time) {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	token := hex.EncodeToString(b)
	expiresAt := time.Now().Add(s.ttl)

	s.mu.Lock()
	s.byToken[token] = Session{Email: email, ExpiresAt: expiresAt}
	s.mu.Unlock()

	return token, expiresAt
}

// Lookup resolves a token to its session. Expired sessions report not-found.
func (s *Sessions) Lookup(token string) (Session, bool) {
	s.mu.Lock()
	sess, ok := s.byToken[token]
	s.mu.Unlock()

	if !ok || sess.ExpiresAt.Before(time.Now()) {
		return Session{}, false
	}
	return sess, true
}

// ProAuth gates the pro endpoints behind a redeemed session token
// (Authorization: Bearer <token>).
func ProAuth(sessions *Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": models.ErrorDetail{
					Code:    models.ErrCodeUnauthorized,
					Message: "missing session token: redeem an access code and send Authorization: Bearer <token>",
				},
			})
			return
		}

		sess, ok := sessions.Lookup(token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": models.ErrorDetail{
					Code:    models.ErrCodeUnauthorized,
					Message: "invalid or expired session token",
				},
			})
			return
		}

		c.Set("session_token", token)
		c.Set("session_email", sess.Email)
		c.Next()
	}
}

// bearerToken extracts the Authorization: Bearer value, or "".
func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
