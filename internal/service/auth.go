package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pkordes/vacation-planner/internal/domain"
	"github.com/pkordes/vacation-planner/internal/repo"
)

// credentials is the validated shape of the login, signup and connect forms.
type credentials struct {
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,min=6,max=72"` // bcrypt ignores bytes past 72
}

// AuthService implements local email/password accounts.
type AuthService struct {
	users    repo.UserRepo
	validate *validator.Validate
	cost     int

	// dummyHash is compared against on failed lookups so that unknown
	// emails cost as much bcrypt work as wrong passwords.
	dummyHash []byte
}

// NewAuthService constructs an AuthService. cost is the bcrypt work factor;
// pass bcrypt.DefaultCost in production and bcrypt.MinCost in tests.
func NewAuthService(users repo.UserRepo, cost int) *AuthService {
	dummy, err := bcrypt.GenerateFromPassword([]byte("vacation-planner-dummy"), cost)
	if err != nil {
		// Only an out-of-range cost fails; fall back to the default.
		dummy, _ = bcrypt.GenerateFromPassword([]byte("vacation-planner-dummy"), bcrypt.DefaultCost)
	}
	return &AuthService{
		users:     users,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		cost:      cost,
		dummyHash: dummy,
	}
}

// Signup registers a new user.
// Returns domain.ErrValidation for a malformed email or short password and
// domain.ErrConflict if the email is taken.
func (s *AuthService) Signup(ctx context.Context, email, password string) (domain.User, error) {
	c, hash, err := s.prepare(email, password)
	if err != nil {
		return domain.User{}, err
	}

	user, err := s.users.Create(ctx, c.Email, hash)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Signup: %w", err)
	}
	return user, nil
}

// Login checks an email and password.
// Returns domain.ErrInvalidCredentials when either is wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.burnCompare(password)
			return domain.User{}, domain.ErrInvalidCredentials
		}
		return domain.User{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}
	if !user.HasLocalLogin() {
		s.burnCompare(password)
		return domain.User{}, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	return user, nil
}

// burnCompare spends the same bcrypt work as a wrong-password check and
// ignores the result.
func (s *AuthService) burnCompare(password string) {
	_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
}

// Connect attaches local credentials to an already authenticated user.
func (s *AuthService) Connect(ctx context.Context, user domain.User, email, password string) (domain.User, error) {
	c, hash, err := s.prepare(email, password)
	if err != nil {
		return domain.User{}, err
	}

	updated, err := s.users.SetCredentials(ctx, user.ID, c.Email, hash)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Connect: %w", err)
	}
	return updated, nil
}

// Unlink removes the user's local credentials. The account and its
// vacations are kept.
func (s *AuthService) Unlink(ctx context.Context, user domain.User) error {
	if err := s.users.ClearCredentials(ctx, user.ID); err != nil {
		return fmt.Errorf("service.AuthService.Unlink: %w", err)
	}
	return nil
}

// GetUser returns the user with its current vacation reference set.
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.GetUser: %w", err)
	}
	return user, nil
}

// prepare validates raw credentials and hashes the password.
func (s *AuthService) prepare(email, password string) (credentials, string, error) {
	c := credentials{Email: strings.TrimSpace(email), Password: password}
	if err := s.validate.Struct(c); err != nil {
		return credentials{}, "", fmt.Errorf("%w: %s", domain.ErrValidation, describeValidation(err))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), s.cost)
	if err != nil {
		return credentials{}, "", fmt.Errorf("service.AuthService: hash password: %w", err)
	}
	return c, string(hash), nil
}

// describeValidation renders the first failed rule as a user-facing message.
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid credentials"
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "email is not a valid address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return field + " is invalid"
	}
}
