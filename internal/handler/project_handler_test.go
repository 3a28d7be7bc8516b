package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/devfolio/internal/db"
)

func newAdminProjectRouter(api *API) *gin.Engine {
	r := gin.New()
	r.POST("/admin/projects", api.CreateProject)
	r.PUT("/admin/projects/:id", api.UpdateProject)
	r.DELETE("/admin/projects/:id", api.DeleteProject)
	return r
}

func TestCreateProjectValidationListsFields(t *testing.T) {
	api, _, cleanup := setupHandlerTest(t)
	defer cleanup()

	router := newAdminProjectRouter(api)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, jsonRequest(http.MethodPost, "/admin/projects", map[string]any{
		"category": "Web",
	}))

	if recorder.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", recorder.Code)
	}

	body := decodeBody(t, recorder)
	fields, ok := body["fields"].([]any)
	if !ok || len(fields) != 2 {
		t.Fatalf("expected 2 missing fields, got %v", body["fields"])
	}
	if fields[0] != "title" || fields[1] != "description" {
		t.Fatalf("unexpected field list: %v", fields)
	}
}

func TestCreateProjectPersists(t *testing.T) {
	api, gdb, cleanup := setupHandlerTest(t)
	defer cleanup()

	router := newAdminProjectRouter(api)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, jsonRequest(http.MethodPost, "/admin/projects", map[string]any{
		"title":       "Portfolio",
		"description": "个人作品站",
		"category":    "Web",
		"techStack":   []string{"Go", "Gin"},
		"featured":    true,
	}))

	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", recorder.Code)
	}

	var created db.Project
	if err := gdb.First(&created).Error; err != nil {
		t.Fatalf("load created project: %v", err)
	}
	if created.Title != "Portfolio" || !created.Featured || !created.Visible {
		t.Fatalf("unexpected created project: %+v", created)
	}
}

func TestUpdateProjectMissingReturns404(t *testing.T) {
	api, _, cleanup := setupHandlerTest(t)
	defer cleanup()

	router := newAdminProjectRouter(api)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, jsonRequest(http.MethodPut, "/admin/projects/99", map[string]any{
		"title": "不存在",
	}))

	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", recorder.Code)
	}
}

func TestUpdateProjectClearsEndDateWithExplicitNull(t *testing.T) {
	api, gdb, cleanup := setupHandlerTest(t)
	defer cleanup()

	end := "2025-01-31"
	project := db.Project{Title: "p", Description: "d", Category: "Web", EndDate: &end, Visible: true}
	if err := gdb.Create(&project).Error; err != nil {
		t.Fatalf("seed project: %v", err)
	}

	router := newAdminProjectRouter(api)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, jsonRequest(http.MethodPut, "/admin/projects/1", map[string]any{
		"endDate": nil,
	}))
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", recorder.Code)
	}

	var updated db.Project
	if err := gdb.First(&updated, project.ID).Error; err != nil {
		t.Fatalf("reload project: %v", err)
	}
	if updated.EndDate != nil {
		t.Fatalf("expected cleared end date, got %v", *updated.EndDate)
	}
	if updated.Title != "p" {
		t.Fatalf("omitted fields should be retained: %+v", updated)
	}
}

func TestDeleteProjectInvalidID(t *testing.T) {
	api, _, cleanup := setupHandlerTest(t)
	defer cleanup()

	router := newAdminProjectRouter(api)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/admin/projects/abc", nil))

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", recorder.Code)
	}
}
