package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/pkordes/vacation-planner/internal/domain"
	"github.com/pkordes/vacation-planner/internal/session"
)

type userKey struct{}

// withUser returns a copy of ctx carrying the authenticated user.
func withUser(ctx context.Context, u domain.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// currentUser returns the user stored by requireUser.
// ok is false outside the authenticated route group.
func currentUser(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(userKey{}).(domain.User)
	return u, ok
}

// requireUser redirects anonymous visitors to "/" and loads the session's
// user, with a fresh vacation reference set, for everyone else.
func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())
		if sess == nil || !sess.Authenticated() {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		user, err := s.auth.GetUser(r.Context(), sess.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// The account is gone; forget the stale login.
				s.endSession(w, r, sess)
				http.Redirect(w, r, "/", http.StatusFound)
				return
			}
			s.serverError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}
