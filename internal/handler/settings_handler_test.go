package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSettingsPublicViewOmitsAnalytics(t *testing.T) {
	api, _, cleanup := setupHandlerTest(t)
	defer cleanup()

	router := newSessionRouter()
	router.PUT("/admin/settings", api.UpdateSettings)
	router.GET("/content/settings", api.GetPublicSettings)
	router.GET("/admin/settings", api.GetAdminSettings)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, jsonRequest(http.MethodPut, "/admin/settings", map[string]any{
		"colors":    map[string]any{"primary": "#0f172a"},
		"analytics": map[string]any{"gaId": "G-XXXX"},
	}))
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", recorder.Code)
	}

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/content/settings", nil))
	body := decodeBody(t, recorder)
	settings, ok := body["settings"].(map[string]any)
	if !ok {
		t.Fatalf("missing settings object: %v", body)
	}
	if _, leaked := settings["analytics"]; leaked {
		t.Fatal("analytics group must not appear in public settings")
	}
	colors, ok := settings["colors"].(map[string]any)
	if !ok || colors["primary"] != "#0f172a" {
		t.Fatalf("unexpected colors group: %v", settings["colors"])
	}

	// 后台视图包含 analytics
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/admin/settings", nil))
	body = decodeBody(t, recorder)
	settings = body["settings"].(map[string]any)
	analytics, ok := settings["analytics"].(map[string]any)
	if !ok || analytics["gaId"] != "G-XXXX" {
		t.Fatalf("admin view should include analytics, got %v", settings["analytics"])
	}
}

func TestUploadImageUnavailableWithoutStorage(t *testing.T) {
	api, _, cleanup := setupHandlerTest(t)
	defer cleanup()

	router := newSessionRouter()
	router.POST("/admin/uploads", api.UploadImage)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/admin/uploads", nil))

	if recorder.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", recorder.Code)
	}
}
