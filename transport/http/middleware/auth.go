package middleware

import (
	"context"
	"net/http"

	jwtInfra "aula/infras/jwt"
	"aula/shared/constant"
	"aula/shared/failure"
	"aula/transport/http/response"
)

// Auth verifies bearer tokens and stores the caller's identity in the
// request context. Every protected route learns who the caller is from the
// context, never from request payloads.
type Auth struct {
	jwt jwtInfra.JWT
}

func NewAuth(j jwtInfra.JWT) *Auth {
	return &Auth{
		jwt: j,
	}
}

func (m *Auth) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := jwtInfra.ExtractTokenFromHeader(r.Header.Get(constant.RequestHeaderAuthorization))
		if err != nil {
			response.WithError(w, failure.Unauthorized("missing or malformed bearer token"))

			return
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			response.WithError(w, failure.Unauthorized(err.Error()))

			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, claims.Email)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin gates timetable administration and other destructive routes.
func (m *Auth) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, _ := r.Context().Value(constant.ContextKeyUserRole).(string)
		if role != constant.RoleAdmin {
			response.WithError(w, failure.Forbidden("this operation requires the admin role"))

			return
		}

		next.ServeHTTP(w, r)
	})
}
