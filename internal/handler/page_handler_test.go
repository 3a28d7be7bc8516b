package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/datatypes"

	"github.com/devfolio/internal/db"
)

func TestSaveHomeContentUpserts(t *testing.T) {
	api, gdb, cleanup := setupHandlerTest(t)
	defer cleanup()

	router := newSessionRouter()
	router.PUT("/admin/home-content", api.SaveHomeContent)

	payload := map[string]any{
		"sections": []map[string]any{
			{
				"name":  "hero",
				"type":  "hero",
				"title": "你好，我是张三",
				"content": map[string]any{
					"headline": "全栈工程师",
				},
				"order": 0,
			},
			{
				"name": "cta",
				"type": "cta",
				"content": map[string]any{
					"primaryButton": "联系我",
				},
				"order": 1,
			},
		},
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, jsonRequest(http.MethodPut, "/admin/home-content", payload))
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	// 重复提交同一批区块不产生重复行
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, jsonRequest(http.MethodPut, "/admin/home-content", payload))
	if recorder.Code != http.StatusOK {
		t.Fatalf("second save: expected status 200, got %d", recorder.Code)
	}

	var count int64
	if err := gdb.Model(&db.PageSection{}).Count(&count).Error; err != nil {
		t.Fatalf("count sections: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 section rows after resubmit, got %d", count)
	}

	body := decodeBody(t, recorder)
	sections, ok := body["page"].(map[string]any)["sections"].([]any)
	if !ok || len(sections) != 2 {
		t.Fatalf("unexpected sections payload: %v", body["page"])
	}
	hero := sections[0].(map[string]any)
	content, ok := hero["content"].(map[string]any)
	if !ok || content["headline"] != "全栈工程师" {
		t.Fatalf("content blob not round-tripped: %v", hero["content"])
	}
}

func TestSaveHomeContentValidatesSections(t *testing.T) {
	api, _, cleanup := setupHandlerTest(t)
	defer cleanup()

	router := newSessionRouter()
	router.PUT("/admin/home-content", api.SaveHomeContent)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, jsonRequest(http.MethodPut, "/admin/home-content", map[string]any{
		"sections": []map[string]any{
			{"name": "", "type": "hero"},
		},
	}))

	if recorder.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", recorder.Code)
	}
}

func TestGetAdminPageIncludesHiddenSections(t *testing.T) {
	api, gdb, cleanup := setupHandlerTest(t)
	defer cleanup()

	page := db.Page{Slug: "about", Title: "关于"}
	if err := gdb.Create(&page).Error; err != nil {
		t.Fatalf("seed page: %v", err)
	}
	section := db.PageSection{PageID: page.ID, Name: "draft", Type: db.SectionTypeText, Visible: false}
	if err := gdb.Create(&section).Error; err != nil {
		t.Fatalf("seed section: %v", err)
	}

	router := newSessionRouter()
	router.GET("/admin/pages/:slug", api.GetAdminPage)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/admin/pages/about", nil))
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", recorder.Code)
	}

	body := decodeBody(t, recorder)
	sections, ok := body["sections"].([]any)
	if !ok || len(sections) != 1 {
		t.Fatalf("admin view should include hidden sections, got %v", body["sections"])
	}
}

func TestPagePayloadNormalizesKnownSectionContent(t *testing.T) {
	api, gdb, cleanup := setupHandlerTest(t)
	defer cleanup()

	page := db.Page{Slug: "about", Title: "关于"}
	if err := gdb.Create(&page).Error; err != nil {
		t.Fatalf("seed page: %v", err)
	}
	sections := []db.PageSection{
		{PageID: page.ID, Name: "hero", Type: db.SectionTypeHero, SortOrder: 0, Visible: true,
			Content: datatypes.JSON(`{"headline":"全栈工程师","stray":"忽略"}`)},
		{PageID: page.ID, Name: "gallery", Type: "gallery", SortOrder: 1, Visible: true,
			Content: datatypes.JSON(`{"images":["a.png"]}`)},
	}
	for i := range sections {
		if err := gdb.Create(&sections[i]).Error; err != nil {
			t.Fatalf("seed section: %v", err)
		}
	}

	router := newSessionRouter()
	router.GET("/admin/pages/:slug", api.GetAdminPage)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/admin/pages/about", nil))
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", recorder.Code)
	}

	body := decodeBody(t, recorder)
	payload := body["sections"].([]any)
	if len(payload) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(payload))
	}

	// 已知类型输出归一化结构：声明之外的字段被剔除，缺失的字段补零值
	hero := payload[0].(map[string]any)["content"].(map[string]any)
	if hero["headline"] != "全栈工程师" {
		t.Fatalf("unexpected hero headline: %v", hero["headline"])
	}
	if _, ok := hero["subheadline"]; !ok {
		t.Fatalf("normalized hero content missing subheadline key: %v", hero)
	}
	if _, ok := hero["stray"]; ok {
		t.Fatalf("undeclared field leaked through normalization: %v", hero)
	}

	// 未知类型原样透传
	gallery := payload[1].(map[string]any)["content"].(map[string]any)
	images, ok := gallery["images"].([]any)
	if !ok || len(images) != 1 || images[0] != "a.png" {
		t.Fatalf("unknown section type should pass content through: %v", gallery)
	}
}

func TestDeletePageRemovesSections(t *testing.T) {
	api, gdb, cleanup := setupHandlerTest(t)
	defer cleanup()

	page := db.Page{Slug: "about"}
	if err := gdb.Create(&page).Error; err != nil {
		t.Fatalf("seed page: %v", err)
	}
	section := db.PageSection{PageID: page.ID, Name: "hero", Type: db.SectionTypeHero, Visible: true}
	if err := gdb.Create(&section).Error; err != nil {
		t.Fatalf("seed section: %v", err)
	}

	router := newSessionRouter()
	router.DELETE("/admin/pages/:id", api.DeletePage)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/admin/pages/1", nil))
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", recorder.Code)
	}

	var count int64
	if err := gdb.Model(&db.PageSection{}).Count(&count).Error; err != nil {
		t.Fatalf("count sections: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected cascading delete, got %d sections", count)
	}
}
