package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"career-guide/auth"
	"career-guide/errors"
	"career-guide/logger"
	"career-guide/models"
)

func init() {
	logger.SetDefault(logger.Discard())
}

type staticAuth struct {
	id  auth.Identity
	err error
}

func (a staticAuth) Authenticate(*http.Request) (auth.Identity, error) {
	return a.id, a.err
}

func ok(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func serve(h http.Handler, method string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, "/x", nil))
	return rec
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	serve(Chain(http.HandlerFunc(ok), mw("a"), mw("b")), http.MethodGet)
	if strings.Join(order, ",") != "a,b" {
		t.Errorf("order = %v", order)
	}
}

func TestRecover(t *testing.T) {
	h := Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	rec := serve(h, http.MethodGet)
	if rec.Code != http.StatusInternalServerError || !strings.Contains(rec.Body.String(), "Server error") {
		t.Errorf("got %d %s", rec.Code, rec.Body)
	}
}

func TestPreflight(t *testing.T) {
	h := Preflight(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	if rec := serve(h, http.MethodOptions); rec.Code != http.StatusOK {
		t.Errorf("OPTIONS = %d", rec.Code)
	}
	if rec := serve(h, http.MethodGet); rec.Code != http.StatusTeapot {
		t.Errorf("GET = %d", rec.Code)
	}
}

func TestMethodsRunsBeforeGuard(t *testing.T) {
	denied := NewGuard(staticAuth{err: errors.E(errors.Unauthorized, "No token, authorization denied")})
	h := Methods(denied.RequireAuth(ok), http.MethodGet)

	tests := []struct {
		method string
		want   int
	}{
		{http.MethodDelete, http.StatusMethodNotAllowed},
		{http.MethodPost, http.StatusMethodNotAllowed},
		{http.MethodGet, http.StatusUnauthorized},
		{http.MethodOptions, http.StatusOK},
	}
	for _, tt := range tests {
		if rec := serve(h, tt.method); rec.Code != tt.want {
			t.Errorf("%s = %d, want %d", tt.method, rec.Code, tt.want)
		}
	}
}

func TestRequireAuth(t *testing.T) {
	denied := NewGuard(staticAuth{err: errors.E(errors.Unauthorized, "No token, authorization denied")})
	if rec := serve(denied.RequireAuth(ok), http.MethodGet); rec.Code != http.StatusUnauthorized {
		t.Errorf("denied = %d", rec.Code)
	}
	if rec := serve(denied.RequireAuth(ok), http.MethodOptions); rec.Code != http.StatusOK {
		t.Errorf("OPTIONS = %d", rec.Code)
	}

	// any other failure is still reported as an invalid token
	broken := NewGuard(staticAuth{err: errors.NewError("clock skew")})
	if rec := serve(broken.RequireAuth(ok), http.MethodGet); rec.Code != http.StatusUnauthorized {
		t.Errorf("broken = %d", rec.Code)
	}

	var seen auth.Identity
	g := NewGuard(staticAuth{id: auth.Identity{UserID: "u1", Role: models.RoleStudent}})
	serve(g.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = IdentityFrom(r.Context())
	}), http.MethodGet)
	if seen.UserID != "u1" {
		t.Errorf("identity = %+v", seen)
	}
}

func TestRequireRole(t *testing.T) {
	student := NewGuard(staticAuth{id: auth.Identity{UserID: "u1", Role: models.RoleStudent}})
	if rec := serve(student.RequireRole(ok, models.RoleAdmin), http.MethodGet); rec.Code != http.StatusForbidden {
		t.Errorf("student = %d", rec.Code)
	}
	admin := NewGuard(staticAuth{id: auth.Identity{UserID: "a1", Role: models.RoleAdmin}})
	if rec := serve(admin.RequireRole(ok, models.RoleAdmin), http.MethodGet); rec.Code != http.StatusOK {
		t.Errorf("admin = %d", rec.Code)
	}
}

func TestRateLimiterPerClient(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	h := rl.Limit(ok)

	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/x", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h(rec, req)
		return rec.Code
	}

	for i := 0; i < 2; i++ {
		if code := call("10.0.0.1:5000"); code != http.StatusOK {
			t.Fatalf("call %d = %d", i, code)
		}
	}
	if code := call("10.0.0.1:5001"); code != http.StatusTooManyRequests {
		t.Errorf("third = %d", code)
	}
	if code := call("10.0.0.2:5000"); code != http.StatusOK {
		t.Errorf("other client = %d", code)
	}
}

func TestRequestLoggerSetsID(t *testing.T) {
	h := RequestLogger(logger.Discard())(http.HandlerFunc(ok))

	rec := serve(h, http.MethodGet)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing generated id")
	}

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "abc")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("X-Request-ID") != "abc" {
		t.Errorf("id = %q", rec.Header().Get("X-Request-ID"))
	}
}

func TestRequestLoggerReplacesUnsafeID(t *testing.T) {
	var buf bytes.Buffer
	h := RequestLogger(logger.New(logger.Config{Output: &buf}))(http.HandlerFunc(ok))

	for _, rid := range []string{"abc\nFAKE ERROR line", strings.Repeat("a", 65), "id with spaces"} {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("X-Request-ID", rid)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		got := rec.Header().Get("X-Request-ID")
		if got == rid || got == "" {
			t.Errorf("id %q echoed as %q", rid, got)
		}
		if strings.Count(buf.String(), "\n") != 1 || strings.Contains(buf.String(), rid) {
			t.Errorf("log for %q = %q", rid, buf.String())
		}
	}
}
