package adminui

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"skillswap/internal/notifications"
	"skillswap/internal/seed"
	"skillswap/internal/service"
	"skillswap/internal/store"
)

func newTestHandler(t *testing.T) (http.Handler, *notifications.Inbox) {
	t.Helper()
	state, err := seed.Demo()
	if err != nil {
		t.Fatalf("seed.Demo: %v", err)
	}
	st := store.New(state)
	inbox := notifications.NewInbox(0)
	return New(Opts{
		Auth:  &service.AuthService{Store: st},
		Admin: &service.AdminService{Store: st, Broadcaster: &service.NotificationService{Store: st, Sender: inbox}},
	}), inbox
}

func postForm(h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestNewWithoutServicesIsNotFound(t *testing.T) {
	rec := get(New(Opts{}), "/admin/")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDashboardRequiresLogin(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := get(h, "/admin/")
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/admin/login" {
		t.Fatalf("expected redirect to login, got %d %q", rec.Code, rec.Header().Get("Location"))
	}

	rec = get(h, "/admin/login")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `name="email"`) {
		t.Fatalf("login page: %d", rec.Code)
	}
}

func TestLoginRejectsNonAdmin(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := postForm(h, "/admin/login", url.Values{"email": {"john@example.com"}})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	rec = get(h, "/admin/")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("dashboard as non-admin: %d", rec.Code)
	}

	rec = postForm(h, "/admin/login", url.Values{"email": {"ghost@example.com"}})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unknown account: %d", rec.Code)
	}
}

func TestAdminDashboardFlow(t *testing.T) {
	h, inbox := newTestHandler(t)

	rec := postForm(h, "/admin/login", url.Values{"email": {"ADMIN@skillswap.com"}})
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/admin/" {
		t.Fatalf("login: %d %q", rec.Code, rec.Header().Get("Location"))
	}

	rec = get(h, "/admin/")
	body := rec.Body.String()
	if rec.Code != http.StatusOK || !strings.Contains(body, "Users: 3") || !strings.Contains(body, "req1") {
		t.Fatalf("dashboard: %d %s", rec.Code, body)
	}

	rec = get(h, "/admin/users")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "admin@skillswap.com") {
		t.Fatalf("users: %d", rec.Code)
	}

	rec = get(h, "/admin/reports/swaps")
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/csv") {
		t.Fatalf("swaps report: %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}
	if !strings.HasPrefix(rec.Body.String(), "id,from_user_id,") || !strings.Contains(rec.Body.String(), "req2") {
		t.Fatalf("swaps report body: %s", rec.Body.String())
	}
	rec = get(h, "/admin/reports/bogus")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown report: %d", rec.Code)
	}

	rec = postForm(h, "/admin/broadcast", url.Values{"message": {""}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty broadcast: %d", rec.Code)
	}
	rec = postForm(h, "/admin/broadcast", url.Values{"message": {"<b>Welcome</b>"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("broadcast: %d", rec.Code)
	}
	loc := rec.Header().Get("Location")
	rec = get(h, loc)
	body = rec.Body.String()
	if !strings.Contains(body, "Broadcast sent to 3 users") || !strings.Contains(body, "&lt;b&gt;Welcome&lt;/b&gt;") {
		t.Fatalf("dashboard after broadcast: %s", body)
	}
	if list, _ := inbox.List(t.Context(), "3"); len(list) != 1 {
		t.Fatalf("inbox: %+v", list)
	}

	rec = postForm(h, "/admin/logout", nil)
	if rec.Code != http.StatusFound {
		t.Fatalf("logout: %d", rec.Code)
	}
	rec = get(h, "/admin/")
	if rec.Code != http.StatusFound {
		t.Fatalf("dashboard after logout: %d", rec.Code)
	}
}
