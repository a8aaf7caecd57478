package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/jordan-pw/minesweeper/internal/config"
)

type CtxKey int

const (
	CtxSessionClaims CtxKey = iota
)

func SessionClaimsFrom(ctx context.Context) (*config.SessionClaims, bool) {
	claims, ok := ctx.Value(CtxSessionClaims).(*config.SessionClaims)
	return claims, ok
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// Session admits a request only if it carries a token for the game named
// by the {id} path value. It must wrap a handler registered on a pattern
// with an {id} wildcard.
func Session(logger *logrus.Logger, j *config.JWT) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := config.TokenFromRequest(r)
			if err != nil {
				unauthorized(w, err.Error())
				return
			}
			claims, err := j.ParseSessionClaims(token)
			if err != nil {
				logger.WithError(err).Debug("rejected session token")
				unauthorized(w, "invalid session token")
				return
			}
			if claims.GameID != r.PathValue("id") {
				unauthorized(w, "session token is for another game")
				return
			}
			ctx := context.WithValue(r.Context(), CtxSessionClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
