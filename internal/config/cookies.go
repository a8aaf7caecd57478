package config

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const SessionCookie = "session"

var ErrNoToken = errors.New("no session token")

type Cookies struct {
	Domain   string
	Secure   bool
	SameSite http.SameSite
	lifetime time.Duration
}

func parseSameSite(s string) (http.SameSite, error) {
	switch strings.ToUpper(s) {
	case "DEFAULT":
		return http.SameSiteDefaultMode, nil
	case "LAX":
		return http.SameSiteLaxMode, nil
	case "STRICT", "":
		return http.SameSiteStrictMode, nil
	case "NONE":
		return http.SameSiteNoneMode, nil
	}
	return 0, fmt.Errorf("unknown same_site %q", s)
}

func NewCookies(c CookiesConfig, lifetime time.Duration) (*Cookies, error) {
	sameSite, err := parseSameSite(c.SameSite)
	if err != nil {
		return nil, err
	}

	cookies := &Cookies{
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: sameSite,
		lifetime: lifetime,
	}

	return cookies, nil
}

func (c *Cookies) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Path:     "/",
		Value:    token,
		Expires:  time.Now().Add(c.lifetime),
		HttpOnly: true,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
}

func (c *Cookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Path:     "/",
		Value:    "delete",
		MaxAge:   -1,
		HttpOnly: true,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
}

// TokenFromRequest prefers an Authorization bearer token over the session
// cookie.
func TokenFromRequest(r *http.Request) (string, error) {
	if auth := r.Header.Get("Authorization"); auth != "" {
		scheme, token, ok := strings.Cut(auth, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return "", fmt.Errorf("%w: malformed authorization header", ErrNoToken)
		}
		return token, nil
	}
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return "", ErrNoToken
	}
	return cookie.Value, nil
}
