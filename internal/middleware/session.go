package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pkordes/vacation-planner/internal/session"
)

// SessionLoader is the part of the session store the loader needs.
type SessionLoader interface {
	New() (*session.Session, error)
	Load(ctx context.Context, id string) (*session.Session, error)
}

// NewSessionHandler returns a middleware that attaches the caller's session
// to the request context. A missing, unknown, or expired cookie yields a
// fresh anonymous session that is only persisted once a handler saves it.
//
// A Redis failure is logged and the request continues anonymously, so public
// pages stay up when the session store is down.
func NewSessionHandler(store SessionLoader, cookie session.Cookie, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sess *session.Session
			if id, ok := cookie.Read(r); ok {
				loaded, err := store.Load(r.Context(), id)
				switch {
				case err == nil:
					sess = loaded
				case !errors.Is(err, session.ErrNotFound):
					log.ErrorContext(r.Context(), "load session", "error", err)
				}
			}

			if sess == nil {
				fresh, err := store.New()
				if err != nil {
					log.ErrorContext(r.Context(), "new session", "error", err)
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					return
				}
				sess = fresh
			}

			next.ServeHTTP(w, r.WithContext(session.WithContext(r.Context(), sess)))
		})
	}
}
