package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/vacation-planner/internal/domain"
	"github.com/pkordes/vacation-planner/internal/handler"
	"github.com/pkordes/vacation-planner/internal/session"
	"github.com/pkordes/vacation-planner/testutil"
	"github.com/pkordes/vacation-planner/web"
)

// ---- mock servicers ---------------------------------------------------------
// Each method is a function field; a nil field panics if the handler reaches
// it, which fails the test.

type mockVacationServicer struct {
	create       func(ctx context.Context, owner domain.User, fields map[string]string) (domain.Vacation, error)
	profile      func(ctx context.Context, owner domain.User) (domain.ProfileView, error)
	detail       func(ctx context.Context, owner domain.User, id uuid.UUID) (domain.VacationView, error)
	updateBudget func(ctx context.Context, owner domain.User, id uuid.UUID, fields map[string]string) error
}

func (m *mockVacationServicer) Create(ctx context.Context, owner domain.User, fields map[string]string) (domain.Vacation, error) {
	return m.create(ctx, owner, fields)
}
func (m *mockVacationServicer) Profile(ctx context.Context, owner domain.User) (domain.ProfileView, error) {
	return m.profile(ctx, owner)
}
func (m *mockVacationServicer) Detail(ctx context.Context, owner domain.User, id uuid.UUID) (domain.VacationView, error) {
	return m.detail(ctx, owner, id)
}
func (m *mockVacationServicer) UpdateBudget(ctx context.Context, owner domain.User, id uuid.UUID, fields map[string]string) error {
	return m.updateBudget(ctx, owner, id, fields)
}

// compile-time check: mockVacationServicer must satisfy handler.VacationServicer.
var _ handler.VacationServicer = (*mockVacationServicer)(nil)

type mockLegServicer struct {
	addLeg               func(ctx context.Context, owner domain.User, vacationID uuid.UUID, fields map[string]string) (domain.Leg, error)
	updateAccommodation  func(ctx context.Context, id uuid.UUID, fields map[string]string) error
	updateTransportation func(ctx context.Context, id uuid.UUID, fields map[string]string) error
	submitTransportation func(ctx context.Context, id uuid.UUID, fields map[string]string) error
}

func (m *mockLegServicer) AddLeg(ctx context.Context, owner domain.User, vacationID uuid.UUID, fields map[string]string) (domain.Leg, error) {
	return m.addLeg(ctx, owner, vacationID, fields)
}
func (m *mockLegServicer) UpdateAccommodation(ctx context.Context, id uuid.UUID, fields map[string]string) error {
	return m.updateAccommodation(ctx, id, fields)
}
func (m *mockLegServicer) UpdateTransportation(ctx context.Context, id uuid.UUID, fields map[string]string) error {
	return m.updateTransportation(ctx, id, fields)
}
func (m *mockLegServicer) SubmitTransportation(ctx context.Context, id uuid.UUID, fields map[string]string) error {
	return m.submitTransportation(ctx, id, fields)
}

var _ handler.LegServicer = (*mockLegServicer)(nil)

type mockAuthServicer struct {
	signup  func(ctx context.Context, email, password string) (domain.User, error)
	login   func(ctx context.Context, email, password string) (domain.User, error)
	connect func(ctx context.Context, user domain.User, email, password string) (domain.User, error)
	unlink  func(ctx context.Context, user domain.User) error
	getUser func(ctx context.Context, id uuid.UUID) (domain.User, error)
}

func (m *mockAuthServicer) Signup(ctx context.Context, email, password string) (domain.User, error) {
	return m.signup(ctx, email, password)
}
func (m *mockAuthServicer) Login(ctx context.Context, email, password string) (domain.User, error) {
	return m.login(ctx, email, password)
}
func (m *mockAuthServicer) Connect(ctx context.Context, user domain.User, email, password string) (domain.User, error) {
	return m.connect(ctx, user, email, password)
}
func (m *mockAuthServicer) Unlink(ctx context.Context, user domain.User) error {
	return m.unlink(ctx, user)
}
func (m *mockAuthServicer) GetUser(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getUser(ctx, id)
}

var _ handler.AuthServicer = (*mockAuthServicer)(nil)

type mockExportServicer struct {
	export func(ctx context.Context, owner domain.User, id uuid.UUID) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context, owner domain.User, id uuid.UUID) ([]domain.ExportRow, error) {
	return m.export(ctx, owner, id)
}

var _ handler.ExportServicer = (*mockExportServicer)(nil)

// ---- harness ----------------------------------------------------------------

var testCookie = session.Cookie{Name: "sid", MaxAge: time.Hour}

// testApp is a Server wired to mocks and an in-process Redis session store.
type testApp struct {
	t         *testing.T
	handler   http.Handler
	store     *session.RedisStore
	vacations *mockVacationServicer
	legs      *mockLegServicer
	auth      *mockAuthServicer
	export    *mockExportServicer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	rdb, _ := testutil.NewRedis(t)

	views, err := handler.NewRenderer(web.Templates)
	require.NoError(t, err)

	app := &testApp{
		t:         t,
		store:     session.NewRedisStore(rdb, time.Hour),
		vacations: &mockVacationServicer{},
		legs:      &mockLegServicer{},
		auth:      &mockAuthServicer{},
		export:    &mockExportServicer{},
	}
	srv := handler.NewServer(handler.Deps{
		Vacations: app.vacations,
		Legs:      app.legs,
		Auth:      app.auth,
		Export:    app.export,
		Sessions:  app.store,
		Cookie:    testCookie,
		Views:     views,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	app.handler = srv.Routes()
	return app
}

// loginAs stores an authenticated session for user, makes GetUser return
// it, and returns the session id to send as a cookie.
func (a *testApp) loginAs(user domain.User) string {
	a.t.Helper()
	sess, err := a.store.New()
	require.NoError(a.t, err)
	sess.UserID = user.ID
	require.NoError(a.t, a.store.Save(context.Background(), sess))

	a.auth.getUser = func(_ context.Context, id uuid.UUID) (domain.User, error) {
		if id != user.ID {
			return domain.User{}, domain.ErrNotFound
		}
		return user, nil
	}
	return sess.ID
}

// do sends req with the session cookie sid (when non-empty) and returns the
// recorded response.
func (a *testApp) do(req *http.Request, sid string) *httptest.ResponseRecorder {
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: testCookie.Name, Value: sid})
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func getRequest(path string) *http.Request {
	return httptest.NewRequest(http.MethodGet, path, nil)
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// sessionCookie returns the session cookie set on rec, if any.
func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == testCookie.Name {
			return c
		}
	}
	return nil
}

func testUser(vacationIDs ...uuid.UUID) domain.User {
	return domain.User{
		ID:           uuid.New(),
		Email:        "traveller@example.com",
		PasswordHash: "hash",
		VacationIDs:  vacationIDs,
	}
}
