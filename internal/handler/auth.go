package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/vacation-planner/internal/domain"
	"github.com/pkordes/vacation-planner/internal/session"
)

// getIndex handles GET /.
func (s *Server) getIndex(w http.ResponseWriter, r *http.Request) {
	data := pageData{}
	if sess := session.FromContext(r.Context()); sess.Authenticated() {
		if user, err := s.auth.GetUser(r.Context(), sess.UserID); err == nil {
			data.User = &user
		}
	}
	s.render(w, r, "index.html", data)
}

// getLogin handles GET /login.
func (s *Server) getLogin(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "login.html", pageData{})
}

// postLogin handles POST /login.
func (s *Server) postLogin(w http.ResponseWriter, r *http.Request) {
	fields, ok := formFields(r)
	if !ok {
		s.failWithFlash(w, r, "/login", "Invalid email or password.")
		return
	}

	user, err := s.auth.Login(r.Context(), fields["email"], fields["password"])
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			s.failWithFlash(w, r, "/login", "Invalid email or password.")
			return
		}
		s.serverError(w, r, err)
		return
	}

	s.startSession(w, r, user, "/profile")
}

// getSignup handles GET /signup.
func (s *Server) getSignup(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "signup.html", pageData{})
}

// postSignup handles POST /signup. A new account has no vacation yet, so the
// user lands on /create.
func (s *Server) postSignup(w http.ResponseWriter, r *http.Request) {
	fields, ok := formFields(r)
	if !ok {
		s.failWithFlash(w, r, "/signup", "Could not read the form.")
		return
	}

	user, err := s.auth.Signup(r.Context(), fields["email"], fields["password"])
	if err != nil {
		if msg, ok := credentialsMessage(err); ok {
			s.failWithFlash(w, r, "/signup", msg)
			return
		}
		s.serverError(w, r, err)
		return
	}

	s.startSession(w, r, user, "/create")
}

// getConnectLocal handles GET /connect/local.
func (s *Server) getConnectLocal(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "connect-local.html", pageData{})
}

// postConnectLocal handles POST /connect/local. A logged-in user gets local
// credentials attached to the existing account; anyone else signs up.
func (s *Server) postConnectLocal(w http.ResponseWriter, r *http.Request) {
	fields, ok := formFields(r)
	if !ok {
		s.failWithFlash(w, r, "/connect/local", "Could not read the form.")
		return
	}

	var (
		user domain.User
		err  error
	)
	sess := session.FromContext(r.Context())
	if sess.Authenticated() {
		user, err = s.auth.GetUser(r.Context(), sess.UserID)
		if err == nil {
			user, err = s.auth.Connect(r.Context(), user, fields["email"], fields["password"])
		}
	} else {
		user, err = s.auth.Signup(r.Context(), fields["email"], fields["password"])
	}
	if err != nil {
		if msg, ok := credentialsMessage(err); ok {
			s.failWithFlash(w, r, "/connect/local", msg)
			return
		}
		s.serverError(w, r, err)
		return
	}

	s.startSession(w, r, user, "/profile")
}

// getUnlinkLocal handles GET /unlink/local.
func (s *Server) getUnlinkLocal(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r.Context())
	if err := s.auth.Unlink(r.Context(), user); err != nil && !errors.Is(err, domain.ErrNotFound) {
		s.serverError(w, r, err)
		return
	}
	redirect(w, r, "/profile")
}

// getLogout handles GET /logout.
func (s *Server) getLogout(w http.ResponseWriter, r *http.Request) {
	s.endSession(w, r, session.FromContext(r.Context()))
	redirect(w, r, "/")
}

// startSession logs user in on the current session under a fresh id and
// redirects to target.
func (s *Server) startSession(w http.ResponseWriter, r *http.Request, user domain.User, target string) {
	sess := session.FromContext(r.Context())
	sess.UserID = user.ID
	if err := s.sessions.Rotate(r.Context(), sess); err != nil {
		s.serverError(w, r, err)
		return
	}
	s.cookie.Write(w, sess.ID)
	redirect(w, r, target)
}

// endSession deletes the session and its cookie. Store errors are logged but
// do not stop the logout.
func (s *Server) endSession(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if sess != nil {
		if err := s.sessions.Delete(r.Context(), sess.ID); err != nil {
			s.log.WarnContext(r.Context(), "delete session", "error", err)
		}
		sess.UserID = uuid.Nil
	}
	s.cookie.Clear(w)
}

// failWithFlash queues msg on the session and redirects to target.
func (s *Server) failWithFlash(w http.ResponseWriter, r *http.Request, target, msg string) {
	sess := session.FromContext(r.Context())
	sess.AddFlash(msg)
	if err := s.sessions.Save(r.Context(), sess); err != nil {
		s.log.WarnContext(r.Context(), "save flash", "error", err)
	} else {
		s.cookie.Write(w, sess.ID)
	}
	redirect(w, r, target)
}

// credentialsMessage maps expected account errors to a flash message.
func credentialsMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, domain.ErrConflict):
		return "That email is already taken.", true
	case errors.Is(err, domain.ErrValidation):
		return "Please enter a valid email and a password of at least 6 characters.", true
	case errors.Is(err, domain.ErrNotFound):
		return "Your account no longer exists.", true
	}
	return "", false
}
