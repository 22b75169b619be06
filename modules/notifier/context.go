package notifier

import (
	"context"
	"net/http"
	"strings"

	"github.com/deskops/notifykit/core"
)

// Caller identifies the authenticated user behind a request. The module does
// not authenticate anything itself; the surrounding application resolves its
// session or token into a Caller.
type Caller struct {
	ID   string
	Role string
}

// AdminRole is the role allowed onto the management endpoints.
const AdminRole = "admin"

// IsAdmin reports whether the caller holds the admin role.
func (c Caller) IsAdmin() bool {
	return c.Role == AdminRole
}

type callerCtxKey struct{}

// WithCaller returns a context carrying the caller.
func WithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerCtxKey{}, caller)
}

// CallerFromContext extracts the caller stored by the middleware.
func CallerFromContext(ctx context.Context) (Caller, bool) {
	caller, ok := ctx.Value(callerCtxKey{}).(Caller)
	return caller, ok
}

// CallerResolver turns an incoming request into a Caller. Returning an error
// rejects the request as unauthorized.
type CallerResolver func(r *http.Request) (Caller, error)

// HeaderCallerResolver trusts identity headers set by an upstream gateway:
// X-User-Id and X-User-Role. Suitable behind an authenticating proxy, not on
// a directly exposed listener.
func HeaderCallerResolver() CallerResolver {
	return func(r *http.Request) (Caller, error) {
		id := strings.TrimSpace(r.Header.Get("X-User-Id"))
		if id == "" {
			return Caller{}, core.ErrUnauthorized
		}
		return Caller{
			ID:   id,
			Role: strings.TrimSpace(r.Header.Get("X-User-Role")),
		}, nil
	}
}

// RequireCaller resolves the caller on every request and stores it in the
// context, rejecting requests the resolver cannot identify.
func RequireCaller(resolve CallerResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, err := resolve(r)
			if err != nil {
				core.JSONError(w, core.ErrUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		})
	}
}

// RequireAdmin rejects callers without the admin role. It assumes
// RequireCaller already ran.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := CallerFromContext(r.Context())
		if !ok {
			core.JSONError(w, core.ErrUnauthorized)
			return
		}
		if !caller.IsAdmin() {
			core.JSONError(w, core.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
