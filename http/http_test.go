package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"career-guide/auth"
	"career-guide/http/handlers"
	"career-guide/http/middleware"
	"career-guide/logger"
	"career-guide/models"
	"career-guide/repository"
	"career-guide/services"
	"career-guide/storage"
)

func init() {
	logger.SetDefault(logger.Discard())
}

type fakeMailer struct {
	mu   sync.Mutex
	err  error
	sent []services.Email
}

func (m *fakeMailer) Send(_ context.Context, e services.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, e)
	return nil
}

type testServer struct {
	repos   *repository.Repositories
	tokens  *auth.JWTAuthenticator
	handler http.Handler
}

func newTestServer(t *testing.T, mailer services.Mailer, limiter *middleware.RateLimiter) *testServer {
	t.Helper()
	ctx := context.Background()

	var (
		mu sync.Mutex
		n  int
	)
	store := repository.NewStore(storage.NewMemoryAdapter(), repository.WithIDGenerator(func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}))
	repos := repository.New(store)

	hash, err := auth.HashPassword("secret123")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := repos.Users.Seed(ctx, []models.User{
		{Base: models.Base{ID: "C1"}, Name: "Casey Counselor", Email: "casey@example.com", Password: hash, Role: models.RoleCounselor, IsActive: true},
		{Base: models.Base{ID: "S1"}, Name: "Sam Student", Email: "sam@example.com", Password: hash, Role: models.RoleStudent, IsActive: true},
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := repos.Blog.Seed(ctx, repository.DefaultBlogPosts()); err != nil {
		t.Fatal(err)
	}
	if _, err := repos.Assessments.Seed(ctx, repository.DefaultAssessments()); err != nil {
		t.Fatal(err)
	}

	if limiter == nil {
		limiter = middleware.NewRateLimiter(1000, 1000)
	}
	tokens := auth.NewJWTAuthenticator("test-secret", time.Hour)
	h := &handlers.Handler{
		Users:        services.NewUserService(repos.Users, tokens, nil),
		Assessments:  services.NewAssessmentService(repos.Assessments, repos.Users, nil),
		Appointments: services.NewAppointmentService(repos.Appointments, repos.Users, mailer, nil),
		Contacts:     services.NewContactService(repos.Contacts, mailer, "admin@example.com", nil),
		Blog:         repos.Blog,
		DeadLetters:  repos.DeadLetters,
	}
	return &testServer{
		repos:   repos,
		tokens:  tokens,
		handler: SetupRoutes(h, middleware.NewGuard(tokens), limiter, "*", logger.Discard()),
	}
}

func (s *testServer) token(t *testing.T, id string, role models.Role) string {
	t.Helper()
	tok, err := s.tokens.MakeToken(auth.Identity{UserID: id, Role: role})
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestPreflightAndMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, &fakeMailer{}, nil)

	for _, path := range []string{"/api/contact", "/api/appointments", "/api/admin/contacts", "/api/blog/1"} {
		if rec := s.do(http.MethodOptions, path, "", nil); rec.Code != http.StatusOK {
			t.Errorf("OPTIONS %s = %d", path, rec.Code)
		}
	}

	tests := []struct {
		method, path string
	}{
		{http.MethodGet, "/api/contact"},
		{http.MethodGet, "/api/auth/login"},
		{http.MethodPut, "/api/blog"},
		{http.MethodDelete, "/api/health"},
	}
	for _, tt := range tests {
		if rec := s.do(tt.method, tt.path, "", nil); rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s %s = %d, want 405", tt.method, tt.path, rec.Code)
		}
	}
}

func TestWrongMethodBeatsMissingToken(t *testing.T) {
	s := newTestServer(t, &fakeMailer{}, middleware.NewRateLimiter(0.001, 1))

	for _, path := range []string{"/api/appointments", "/api/assessments/submit", "/api/admin/contacts", "/api/auth/me"} {
		if rec := s.do(http.MethodDelete, path, "", nil); rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("DELETE %s without token = %d, want 405", path, rec.Code)
		}
	}

	// wrong methods do not spend the caller's rate-limit budget
	for i := 0; i < 3; i++ {
		if rec := s.do(http.MethodGet, "/api/contact", "", nil); rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("GET /api/contact = %d", rec.Code)
		}
	}
	rec := s.do(http.MethodPost, "/api/contact", "", map[string]string{
		"name": "Jo", "email": "jo@example.com", "message": "Please call me back",
	})
	if rec.Code != http.StatusOK {
		t.Errorf("first POST after wrong methods = %d", rec.Code)
	}
}

func TestCORSHeaders(t *testing.T) {
	s := newTestServer(t, &fakeMailer{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("allow-origin = %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID")
	}
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, &fakeMailer{}, nil)
	rec := s.do(http.MethodGet, "/api/nope", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestContactMessageLength(t *testing.T) {
	s := newTestServer(t, &fakeMailer{}, nil)

	rec := s.do(http.MethodPost, "/api/contact", "", map[string]string{
		"name": "Jo", "email": "jo@example.com", "message": "123456789",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("9 chars: status = %d", rec.Code)
	}
	var verr struct {
		Errors []struct{ Msg string } `json:"errors"`
	}
	decodeBody(t, rec, &verr)
	if len(verr.Errors) != 1 || verr.Errors[0].Msg != "Message must be at least 10 characters" {
		t.Errorf("errors = %+v", verr.Errors)
	}

	rec = s.do(http.MethodPost, "/api/contact", "", map[string]string{
		"name": "Jo", "email": "jo@example.com", "message": "1234567890",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("10 chars: status = %d body %s", rec.Code, rec.Body)
	}
	if got := s.repos.Contacts.List(context.Background()); len(got) != 1 {
		t.Errorf("stored %d messages", len(got))
	}
}

func TestContactItemizesEveryFailure(t *testing.T) {
	s := newTestServer(t, &fakeMailer{}, nil)
	rec := s.do(http.MethodPost, "/api/contact", "", map[string]string{"name": " ", "email": "nope", "message": "short"})

	var verr struct {
		Errors []struct{ Msg string } `json:"errors"`
	}
	decodeBody(t, rec, &verr)
	if rec.Code != http.StatusBadRequest || len(verr.Errors) != 3 {
		t.Fatalf("status %d errors %+v", rec.Code, verr.Errors)
	}
}

func TestContactMailerFailureStillSucceeds(t *testing.T) {
	s := newTestServer(t, &fakeMailer{err: errors.New("smtp down")}, nil)
	rec := s.do(http.MethodPost, "/api/contact", "", map[string]string{
		"name": "Jo", "email": "jo@example.com", "message": "Please call me back",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body struct {
		Message     string `json:"message"`
		Success     bool   `json:"success"`
		EmailStatus string `json:"emailStatus"`
	}
	decodeBody(t, rec, &body)
	if !body.Success || body.EmailStatus != "Email notification may be delayed" {
		t.Errorf("body = %+v", body)
	}
}

func TestContactConfirmationMessage(t *testing.T) {
	mailer := &fakeMailer{}
	s := newTestServer(t, mailer, nil)
	rec := s.do(http.MethodPost, "/api/contact", "", map[string]string{
		"name": "Jo", "email": "jo@example.com", "message": "Please call me back",
	})

	var body map[string]interface{}
	decodeBody(t, rec, &body)
	if !strings.Contains(body["message"].(string), "confirmation email") {
		t.Errorf("message = %v", body["message"])
	}
	if _, ok := body["emailStatus"]; ok {
		t.Error("emailStatus present on success")
	}
	if len(mailer.sent) != 2 {
		t.Errorf("sent %d emails", len(mailer.sent))
	}
}

func TestBookAndListAppointment(t *testing.T) {
	s := newTestServer(t, &fakeMailer{}, nil)
	student := s.token(t, "S1", models.RoleStudent)

	rec := s.do(http.MethodPost, "/api/appointments", student, map[string]interface{}{
		"counselorId": "C1",
		"date":        "2024-03-01",
		"timeSlot":    map[string]string{"start": "10:00", "end": "11:00"},
		"type":        "career-guidance",
		"notes":       "first session",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("book status = %d body %s", rec.Code, rec.Body)
	}
	var created map[string]interface{}
	decodeBody(t, rec, &created)
	if created["status"] != "pending" || created["student"] != "S1" {
		t.Errorf("created = %v", created)
	}

	rec = s.do(http.MethodGet, "/api/appointments", student, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var list []map[string]interface{}
	decodeBody(t, rec, &list)
	if len(list) != 1 {
		t.Fatalf("listed %d appointments", len(list))
	}

	stu := list[0]["student"].(map[string]interface{})
	cou := list[0]["counselor"].(map[string]interface{})
	if stu["id"] != "S1" || cou["id"] != "C1" {
		t.Errorf("student %v counselor %v", stu, cou)
	}
	for _, summary := range []map[string]interface{}{stu, cou} {
		if len(summary) != 3 || summary["name"] == nil || summary["email"] == nil {
			t.Errorf("summary carries extra fields: %v", summary)
		}
	}

	// the counselor sees the same booking, another student does not
	rec = s.do(http.MethodGet, "/api/appointments", s.token(t, "C1", models.RoleCounselor), nil)
	decodeBody(t, rec, &list)
	if len(list) != 1 {
		t.Errorf("counselor sees %d", len(list))
	}
	rec = s.do(http.MethodGet, "/api/appointments", s.token(t, "S2", models.RoleStudent), nil)
	decodeBody(t, rec, &list)
	if len(list) != 0 {
		t.Errorf("other student sees %d", len(list))
	}
}

func TestBookAppointmentValidation(t *testing.T) {
	s := newTestServer(t, &fakeMailer{}, nil)
	rec := s.do(http.MethodPost, "/api/appointments", s.token(t, "S1", models.RoleStudent), map[string]interface{}{
		"date": "March 1st",
		"type": "group-therapy",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	var verr struct {
		Errors []struct{ Msg, Param string } `json:"errors"`
	}
	decodeBody(t, rec, &verr)
	if len(verr.Errors) != 5 {
		t.Errorf("errors = %+v", verr.Errors)
	}
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(t, &fakeMailer{}, nil)

	rec := s.do(http.MethodGet, "/api/auth/me", "", nil)
	var body struct{ Message string }
	decodeBody(t, rec, &body)
	if rec.Code != http.StatusUnauthorized || body.Message != "No token, authorization denied" {
		t.Errorf("no token: %d %q", rec.Code, body.Message)
	}

	rec = s.do(http.MethodGet, "/api/auth/me", "garbage", nil)
	decodeBody(t, rec, &body)
	if rec.Code != http.StatusUnauthorized || body.Message != "Token is not valid" {
		t.Errorf("bad token: %d %q", rec.Code, body.Message)
	}

	rec = s.do(http.MethodGet, "/api/auth/me", s.token(t, "S1", models.RoleStudent), nil)
	if rec.Code != http.StatusOK || strings.Contains(rec.Body.String(), "password") {
		t.Errorf("me: %d %s", rec.Code, rec.Body)
	}
}

func TestAdminOnly(t *testing.T) {
	s := newTestServer(t, &fakeMailer{}, nil)

	for _, path := range []string{"/api/admin/contacts", "/api/admin/dead-letters", "/api/admin/appointments/export"} {
		if rec := s.do(http.MethodGet, path, s.token(t, "S1", models.RoleStudent), nil); rec.Code != http.StatusForbidden {
			t.Errorf("student %s = %d", path, rec.Code)
		}
	}

	admin := s.token(t, "A1", models.RoleAdmin)
	rec := s.do(http.MethodGet, "/api/admin/contacts", admin, nil)
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("contacts: %d %s", rec.Code, rec.Body)
	}

	rec = s.do(http.MethodGet, "/api/admin/appointments/export", admin, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("content type = %q", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")) {
		t.Error("export is not a zip container")
	}
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t, &fakeMailer{}, nil)

	rec := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Alex", "email": "Alex@Example.com", "password": "hunter22",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d body %s", rec.Code, rec.Body)
	}
	var res struct {
		Token string `json:"token"`
		User  struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
	}
	decodeBody(t, rec, &res)
	if res.Token == "" || res.User.Role != "student" {
		t.Errorf("register = %+v", res)
	}

	rec = s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Alex", "email": "alex@example.com", "password": "hunter22",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("duplicate status = %d", rec.Code)
	}

	rec = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "alex@example.com", "password": "hunter22"})
	if rec.Code != http.StatusOK {
		t.Errorf("login status = %d", rec.Code)
	}
	rec = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "alex@example.com", "password": "wrong-one"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad login status = %d", rec.Code)
	}

	rec = s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "A", "email": "bad", "password": "123", "role": "admin",
	})
	var verr struct {
		Errors []struct{ Msg string } `json:"errors"`
	}
	decodeBody(t, rec, &verr)
	if rec.Code != http.StatusBadRequest || len(verr.Errors) != 4 {
		t.Errorf("invalid register: %d %+v", rec.Code, verr.Errors)
	}
}

func TestProfileUpdate(t *testing.T) {
	s := newTestServer(t, &fakeMailer{}, nil)
	tok := s.token(t, "S1", models.RoleStudent)

	rec := s.do(http.MethodPut, "/api/users/profile", tok, map[string]interface{}{
		"profile": map[string]string{"bio": "Likes maths"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var u struct {
		Name    string `json:"name"`
		Profile struct {
			Bio string `json:"bio"`
		} `json:"profile"`
	}
	decodeBody(t, rec, &u)
	if u.Name != "Sam Student" || u.Profile.Bio != "Likes maths" {
		t.Errorf("user = %+v", u)
	}
}

func TestBlogLookup(t *testing.T) {
	s := newTestServer(t, &fakeMailer{}, nil)

	if rec := s.do(http.MethodGet, "/api/blog/1", "", nil); rec.Code != http.StatusOK {
		t.Errorf("post 1 = %d", rec.Code)
	}
	for _, path := range []string{"/api/blog/abc", "/api/blog/999"} {
		if rec := s.do(http.MethodGet, path, "", nil); rec.Code != http.StatusNotFound {
			t.Errorf("%s = %d", path, rec.Code)
		}
	}

	var posts []models.BlogPost
	decodeBody(t, s.do(http.MethodGet, "/api/blog", "", nil), &posts)
	if len(posts) != len(repository.DefaultBlogPosts()) {
		t.Errorf("listed %d posts", len(posts))
	}
}

func TestAssessmentSubmitResultsAndReport(t *testing.T) {
	s := newTestServer(t, &fakeMailer{}, nil)
	tok := s.token(t, "S1", models.RoleStudent)

	rec := s.do(http.MethodGet, "/api/assessments/report", tok, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("report before submit = %d", rec.Code)
	}

	rec = s.do(http.MethodPost, "/api/assessments/submit", tok, map[string]interface{}{
		"assessmentId": "1",
		"answers": map[string]interface{}{
			"q1": map[string]interface{}{"value": 4, "category": "technology"},
			"q2": map[string]interface{}{"value": 3, "category": "technology"},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("submit status = %d body %s", rec.Code, rec.Body)
	}
	var submitted struct {
		Message string `json:"message"`
		Results struct {
			TopCategory string `json:"topCategory"`
		} `json:"results"`
	}
	decodeBody(t, rec, &submitted)
	if submitted.Results.TopCategory != "technology" {
		t.Errorf("submitted = %+v", submitted)
	}

	var results []models.AssessmentResult
	decodeBody(t, s.do(http.MethodGet, "/api/assessments/results", tok, nil), &results)
	if len(results) != 1 || results[0].Score != 7 {
		t.Errorf("results = %+v", results)
	}

	rec = s.do(http.MethodGet, "/api/assessments/report", tok, nil)
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "application/pdf" {
		t.Fatalf("report: %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Error("report is not a PDF")
	}
}

func TestScoreIsPublic(t *testing.T) {
	s := newTestServer(t, &fakeMailer{}, nil)
	rec := s.do(http.MethodPost, "/api/assessments/score", "", map[string]interface{}{
		"answers": map[string]interface{}{},
	})
	var res services.ScoreResult
	decodeBody(t, rec, &res)
	if rec.Code != http.StatusOK || res.TopCategory != models.CategoryBusiness {
		t.Errorf("score: %d %+v", rec.Code, res)
	}
}

func TestRateLimitedContact(t *testing.T) {
	s := newTestServer(t, &fakeMailer{}, middleware.NewRateLimiter(0.001, 1))
	body := map[string]string{"name": "Jo", "email": "jo@example.com", "message": "Please call me back"}

	if rec := s.do(http.MethodPost, "/api/contact", "", body); rec.Code != http.StatusOK {
		t.Fatalf("first = %d", rec.Code)
	}
	if rec := s.do(http.MethodPost, "/api/contact", "", body); rec.Code != http.StatusTooManyRequests {
		t.Errorf("second = %d", rec.Code)
	}
}
