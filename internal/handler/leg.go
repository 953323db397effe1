package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/vacation-planner/internal/domain"
)

// postAccommodationSubmit handles POST /accommodationSubmit, which adds a leg
// to the vacation named by the vacationID field. Every outcome except a
// store failure redirects to /profile.
func (s *Server) postAccommodationSubmit(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r.Context())

	fields, ok := formFields(r)
	if !ok {
		redirect(w, r, "/profile")
		return
	}

	vacationID, err := uuid.Parse(fields["vacationID"])
	if err != nil {
		redirect(w, r, "/profile")
		return
	}

	if _, err := s.legs.AddLeg(r.Context(), user, vacationID, fields); err != nil {
		if errors.Is(err, domain.ErrForbidden) || errors.Is(err, domain.ErrValidation) {
			redirect(w, r, "/profile")
			return
		}
		s.serverError(w, r, err)
		return
	}

	redirect(w, r, "/profile")
}

// postUpdateAccommodation handles POST /updateAccommodationLeg/{id}.
func (s *Server) postUpdateAccommodation(w http.ResponseWriter, r *http.Request) {
	s.updateAndGoBack(w, r, s.legs.UpdateAccommodation)
}

// postUpdateTransportation handles POST /updateTransportationLeg/{id}.
func (s *Server) postUpdateTransportation(w http.ResponseWriter, r *http.Request) {
	s.updateAndGoBack(w, r, s.legs.UpdateTransportation)
}

// postTransportationSubmit handles POST /transportationSubmit/{id}.
func (s *Server) postTransportationSubmit(w http.ResponseWriter, r *http.Request) {
	s.updateAndGoBack(w, r, s.legs.SubmitTransportation)
}

// updateAndGoBack runs an entity update for the {id} path parameter and
// redirects to the referring page. Validation failures and unknown ids also
// go back; only store failures render the error page.
func (s *Server) updateAndGoBack(
	w http.ResponseWriter,
	r *http.Request,
	update func(ctx context.Context, id uuid.UUID, fields map[string]string) error,
) {
	id, err := pathUUID(r, "id")
	if err != nil {
		redirect(w, r, back(r))
		return
	}

	fields, ok := formFields(r)
	if !ok {
		redirect(w, r, back(r))
		return
	}

	if err := update(r.Context(), id, fields); err != nil && !errors.Is(err, domain.ErrValidation) {
		s.serverError(w, r, err)
		return
	}

	redirect(w, r, back(r))
}
