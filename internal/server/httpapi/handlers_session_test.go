package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wstore/webshop/internal/common"
	"github.com/wstore/webshop/internal/server/models"
	"github.com/wstore/webshop/internal/server/services"
)

func TestLoginHandler_Success(t *testing.T) {
	sessions := &fakeSessions{
		loginSession: &services.Session{
			User:         &models.User{ID: "u1", FirstName: "Will", Email: "will@example.com"},
			AccessToken:  "access-abc",
			RefreshToken: "refresh-xyz",
		},
	}
	_, h := newTestServer(t, sessions)

	req := httptest.NewRequest(http.MethodPost, "/user/login",
		strings.NewReader(`{"email":"will@example.com","password":"pa55word"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.AccessToken != "access-abc" {
		t.Fatalf("access token missing from body: %+v", resp)
	}
	if resp.UserInfo.ID != "u1" || resp.UserInfo.Email != "will@example.com" {
		t.Fatalf("unexpected user info: %+v", resp.UserInfo)
	}
	// The refresh token must never appear in the body.
	if strings.Contains(rec.Body.String(), "refresh-xyz") {
		t.Fatalf("refresh token leaked into response body")
	}

	cookies := rec.Result().Cookies()
	refresh := findCookie(t, cookies, "refreshToken")
	if refresh == nil {
		t.Fatalf("no refreshToken cookie set")
	}
	if refresh.Value != "refresh-xyz" || !refresh.HttpOnly || !refresh.Secure {
		t.Fatalf("bad refresh cookie: %+v", refresh)
	}
	indicator := findCookie(t, cookies, "li")
	if indicator == nil || indicator.Value != "true" || indicator.HttpOnly {
		t.Fatalf("bad login indicator cookie: %+v", indicator)
	}
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	sessions := &fakeSessions{loginErr: common.ErrorInvalidCredentials}
	_, h := newTestServer(t, sessions)

	req := httptest.NewRequest(http.MethodPost, "/user/login",
		strings.NewReader(`{"email":"will@example.com","password":"wrong"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if findCookie(t, rec.Result().Cookies(), "refreshToken") != nil {
		t.Fatalf("cookie set on failed login")
	}
}

func TestLoginHandler_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no email", `{"password":"pa55word"}`},
		{"no password", `{"email":"will@example.com"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, h := newTestServer(t, &fakeSessions{})
			req := httptest.NewRequest(http.MethodPost, "/user/login", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestRefreshHandler_Success(t *testing.T) {
	sessions := &fakeSessions{
		refreshSession: &services.Session{
			User:        &models.User{ID: "u1", Email: "will@example.com"},
			AccessToken: "fresh-access",
		},
	}
	_, h := newTestServer(t, sessions)

	req := httptest.NewRequest(http.MethodGet, "/admin/refreshToken", nil)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "refresh-xyz"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if sessions.refreshedToken != "refresh-xyz" {
		t.Fatalf("refresh called with %q", sessions.refreshedToken)
	}

	var resp refreshResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.AccessToken != "fresh-access" || resp.UserInfo.ID != "u1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	// The refresh token is reused, not rotated: no new cookie.
	if findCookie(t, rec.Result().Cookies(), "refreshToken") != nil {
		t.Fatalf("refresh rotated the cookie, expected none")
	}
}

func TestRefreshHandler_NoCookie(t *testing.T) {
	_, h := newTestServer(t, &fakeSessions{})

	req := httptest.NewRequest(http.MethodGet, "/admin/refreshToken", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRefreshHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not in ledger", common.ErrorUnknownToken, http.StatusBadRequest},
		{"bad signature", common.ErrorInvalidToken, http.StatusBadRequest},
		{"subject deleted", common.ErrorNotFound, http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, h := newTestServer(t, &fakeSessions{refreshErr: tc.err})
			req := httptest.NewRequest(http.MethodGet, "/admin/refreshToken", nil)
			req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "whatever"})
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestLogoutHandler_ClearsCookiesOnly(t *testing.T) {
	sessions := &fakeSessions{}
	_, h := newTestServer(t, sessions)

	req := httptest.NewRequest(http.MethodGet, "/admin/removeRefreshToken", nil)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "refresh-xyz"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp messageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != "Refresh token removed" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}

	cookies := rec.Result().Cookies()
	refresh := findCookie(t, cookies, "refreshToken")
	if refresh == nil || refresh.Value != "" || refresh.MaxAge != -1 {
		t.Fatalf("refresh cookie not cleared: %+v", refresh)
	}
	if c := findCookie(t, cookies, "li"); c == nil || c.Value != "" {
		t.Fatalf("login indicator cookie not cleared: %+v", c)
	}

	// Logout never touches the session service; the ledger entry survives.
	if sessions.refreshedToken != "" || sessions.loginEmail != "" {
		t.Fatalf("logout reached the session service")
	}
}

func TestPayPalHandler_Public(t *testing.T) {
	_, h := newTestServer(t, &fakeSessions{})

	// The checkout client ID is served without any token.
	req := httptest.NewRequest(http.MethodGet, "/paypal", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `"paypal-client-id"` {
		t.Fatalf("body = %s", got)
	}
}
