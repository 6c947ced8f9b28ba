package app

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/devanshm/bunkmate/config"
	"github.com/golang-jwt/jwt/v5"
)

type userIDKey struct{}

// authenticate guards the /api routes: it parses the bearer token and
// stashes the authenticated user's ID in the request context.
func authenticate(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				http.Error(w, "missing token", http.StatusUnauthorized)
				return
			}

			userID, err := parseToken(cfg, token)
			if errors.Is(err, jwt.ErrTokenExpired) {
				http.Error(w, "token has expired", http.StatusUnauthorized)
				return
			} else if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey{}, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func parseToken(cfg *config.Config, token string) (uint, error) {
	claims := jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(t *jwt.Token) (any, error) { return []byte(cfg.JWTSecret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return 0, err
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(userID), nil
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

func requestUserID(r *http.Request) uint {
	userID, _ := r.Context().Value(userIDKey{}).(uint)
	return userID
}
