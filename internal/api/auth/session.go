package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/codr1/accresults/internal/api/authz"
)

const (
	authCookieName = "accresults_auth"
	authSessionTTL = 8 * time.Hour
)

var (
	errAuthConfigMissing = errors.New("auth configuration missing")
	ErrInvalidSession    = errors.New("invalid auth session")
	ErrSessionExpired    = errors.New("auth session expired")
)

// authSession is the signed cookie payload.
type authSession struct {
	UserID    int64  `json:"user_id"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"`
	ExpiresAt int64  `json:"exp"`
}

func (s authSession) user() *authz.AuthUser {
	return &authz.AuthUser{ID: s.UserID, Email: s.Email, IsAdmin: s.IsAdmin}
}

func secretKey() ([]byte, error) {
	if appConfig == nil || appConfig.App.SecretKey == "" {
		return nil, errAuthConfigMissing
	}
	return []byte(appConfig.App.SecretKey), nil
}

func sessionCookie(value string, expires time.Time, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     authCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   appConfig == nil || !appConfig.IsDevelopment(),
		SameSite: http.SameSiteLaxMode,
		Expires:  expires,
		MaxAge:   maxAge,
	}
}

// SetAuthCookie issues a signed session cookie for user.
func SetAuthCookie(w http.ResponseWriter, user *authz.AuthUser) error {
	if user == nil {
		return errors.New("auth session requires a user")
	}

	expires := time.Now().Add(authSessionTTL)
	value, err := encodeSession(authSession{
		UserID:    user.ID,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
		ExpiresAt: expires.Unix(),
	})
	if err != nil {
		return err
	}

	http.SetCookie(w, sessionCookie(value, expires, int(authSessionTTL.Seconds())))
	return nil
}

func ClearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, sessionCookie("", time.Unix(0, 0), -1))
}

// UserFromRequest returns the user carried by the auth cookie, or nil when
// there is no cookie.
func UserFromRequest(r *http.Request) (*authz.AuthUser, error) {
	session, err := parseAuthCookie(r)
	if err != nil || session == nil {
		return nil, err
	}
	return session.user(), nil
}

func parseAuthCookie(r *http.Request) (*authSession, error) {
	if _, err := secretKey(); err != nil {
		return nil, err
	}

	cookie, err := r.Cookie(authCookieName)
	if errors.Is(err, http.ErrNoCookie) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	session, err := decodeSession(cookie.Value)
	if err != nil {
		return nil, err
	}
	if session.ExpiresAt <= time.Now().Unix() {
		return nil, ErrSessionExpired
	}
	return &session, nil
}

// encodeSession renders "<base64 payload>.<base64 hmac>".
func encodeSession(session authSession) (string, error) {
	payload, err := json.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("encode auth session: %w", err)
	}
	encoded := base64.RawURLEncoding.EncodeToString(payload)
	signature, err := signPayload(encoded)
	if err != nil {
		return "", err
	}
	return encoded + "." + signature, nil
}

func decodeSession(value string) (authSession, error) {
	var session authSession

	encoded, signature, ok := strings.Cut(value, ".")
	if !ok {
		return session, ErrInvalidSession
	}
	expected, err := signPayload(encoded)
	if err != nil {
		return session, err
	}
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return session, fmt.Errorf("%w: bad signature", ErrInvalidSession)
	}

	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return session, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if err := json.Unmarshal(payload, &session); err != nil {
		return session, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	return session, nil
}

func signPayload(payload string) (string, error) {
	key, err := secretKey()
	if err != nil {
		return "", err
	}
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil)), nil
}
