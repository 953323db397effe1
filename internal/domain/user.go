package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// User is an account holder. VacationIDs is the set of vacations the user
// owns; order carries no meaning.
// PasswordHash is empty when local credentials have been unlinked.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	VacationIDs  []uuid.UUID
	CreatedAt    time.Time
}

// OwnsVacation reports whether id is in the user's vacation reference set.
func (u User) OwnsVacation(id uuid.UUID) bool {
	return slices.Contains(u.VacationIDs, id)
}

// HasLocalLogin reports whether the user can log in with email and password.
func (u User) HasLocalLogin() bool {
	return u.Email != "" && u.PasswordHash != ""
}
