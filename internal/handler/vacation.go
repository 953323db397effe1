package handler

import (
	"errors"
	"net/http"

	"github.com/pkordes/vacation-planner/internal/domain"
)

// getProfile handles GET /profile. A user without a vacation is sent to
// /create.
func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r.Context())

	profile, err := s.vacations.Profile(r.Context(), user)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			redirect(w, r, "/create")
			return
		}
		s.serverError(w, r, err)
		return
	}

	s.render(w, r, "profile.html", pageData{
		User:      &user,
		View:      &profile.Current,
		Vacations: profile.Vacations,
	})
}

// getVacation handles GET /vacation/{id}. A malformed id, a vacation owned by
// someone else, and a missing vacation all redirect to /profile.
func (s *Server) getVacation(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r.Context())

	id, err := pathUUID(r, "id")
	if err != nil {
		redirect(w, r, "/profile")
		return
	}

	view, err := s.vacations.Detail(r.Context(), user, id)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) || errors.Is(err, domain.ErrNotFound) {
			redirect(w, r, "/profile")
			return
		}
		s.serverError(w, r, err)
		return
	}

	s.render(w, r, "vacation.html", pageData{User: &user, View: &view})
}

// getCreate handles GET /create.
func (s *Server) getCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r.Context())
	s.render(w, r, "create.html", pageData{User: &user})
}

// postCreate handles POST /create.
func (s *Server) postCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r.Context())

	fields, ok := formFields(r)
	if !ok {
		redirect(w, r, "/create")
		return
	}

	if _, err := s.vacations.Create(r.Context(), user, fields); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			redirect(w, r, "/create")
			return
		}
		s.serverError(w, r, err)
		return
	}

	redirect(w, r, "/profile")
}

// postUpdateBudget handles POST /updateBudget/{id}. A vacation the user does
// not own redirects to /profile whether or not it exists; every other
// outcome goes back to the referring page.
func (s *Server) postUpdateBudget(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r.Context())

	id, err := pathUUID(r, "id")
	if err != nil {
		redirect(w, r, "/profile")
		return
	}

	fields, ok := formFields(r)
	if !ok {
		redirect(w, r, back(r))
		return
	}

	if err := s.vacations.UpdateBudget(r.Context(), user, id, fields); err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			redirect(w, r, "/profile")
		case errors.Is(err, domain.ErrValidation):
			redirect(w, r, back(r))
		default:
			s.serverError(w, r, err)
		}
		return
	}

	redirect(w, r, back(r))
}
