package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/vacation-planner/internal/session"
)

// serverError logs err and renders the generic 500 page. It is the only
// place store and infrastructure failures reach the user.
func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.ErrorContext(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	if rerr := s.views.Render(w, http.StatusInternalServerError, "error.html", pageData{}); rerr != nil {
		s.log.ErrorContext(r.Context(), "render error page", "error", rerr)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// render writes a page, filling in the session's flash messages.
func (s *Server) render(w http.ResponseWriter, r *http.Request, page string, data pageData) {
	if sess := session.FromContext(r.Context()); sess != nil && len(sess.Flash) > 0 {
		data.Flash = sess.PopFlash()
		if err := s.sessions.Save(r.Context(), sess); err != nil {
			s.log.WarnContext(r.Context(), "save session after flash", "error", err)
		}
	}
	if err := s.views.Render(w, http.StatusOK, page, data); err != nil {
		s.serverError(w, r, err)
	}
}

// redirect sends a 302 to target.
func redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusFound)
}

// back returns the page the form was posted from: the Referer when it points
// at this host, otherwise /profile.
func back(r *http.Request) string {
	const fallback = "/profile"
	ref := r.Referer()
	if ref == "" {
		return fallback
	}
	u, err := url.Parse(ref)
	if err != nil {
		return fallback
	}
	if u.Host != "" && u.Host != r.Host {
		return fallback
	}
	if !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return fallback
	}
	if u.RawQuery != "" {
		return u.Path + "?" + u.RawQuery
	}
	return u.Path
}

// formFields parses the posted form into a flat field map, keeping the first
// value of repeated keys. ok is false when the body cannot be parsed (for
// example when it exceeds the size limit).
func formFields(r *http.Request) (map[string]string, bool) {
	if err := r.ParseForm(); err != nil {
		return nil, false
	}
	fields := make(map[string]string, len(r.PostForm))
	for k, v := range r.PostForm {
		if len(v) > 0 {
			fields[k] = v[0]
		}
	}
	return fields, true
}

// pathUUID binds the named chi path parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	return id, err
}
