// Package auth resolves the caller identity for backend requests. The API
// gateway authenticates users and forwards their id in the x-user-id header;
// this service trusts that header verbatim. When the header is absent (direct
// calls in development), the subject of the bearer token is used instead —
// decoded, not verified, since verification already happened upstream.
package auth

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const userIdKey contextKey = "userId"

// UserIdHeader is injected by the gateway after it validates the session.
const UserIdHeader = "x-user-id"

func WithUserId(ctx context.Context, userId string) context.Context {
	return context.WithValue(ctx, userIdKey, userId)
}

// UserIdFromContext returns the caller id, or "" when the request carried no
// identity.
func UserIdFromContext(ctx context.Context) string {
	if userId, ok := ctx.Value(userIdKey).(string); ok {
		return userId
	}
	return ""
}

// IdentityFromRequest extracts the caller id from the request, preferring the
// gateway-injected header over the bearer token subject.
func IdentityFromRequest(r *http.Request) string {
	if userId := r.Header.Get(UserIdHeader); userId != "" {
		return userId
	}

	tokenString, err := GetBearerToken(r.Header)
	if err != nil {
		return ""
	}
	return decodeSubject(tokenString)
}

// decodeSubject reads the token subject without verifying the signature.
func decodeSubject(tokenString string) string {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return ""
	}
	return claims.Subject
}
