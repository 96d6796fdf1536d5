package handler

import (
	"net/http"
	"testing"

	"github.com/ferroline/ferro-erp/internal/erp/repository"
	"github.com/ferroline/ferro-erp/internal/erp/service"
	"github.com/ferroline/ferro-erp/internal/testutil"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func setupMaterialRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repo := repository.NewMaterialRepository(db)
	svc := service.NewMaterialService(repo)
	h := NewMaterialHandler(svc)

	r := testutil.SetupRouter()
	api := testutil.AuthGroup(r, "/api/v1")
	api.GET("/materials", h.List)
	api.POST("/materials", h.Create)
	api.GET("/materials/:id", h.Get)
	api.PUT("/materials/:id", h.Update)
	api.DELETE("/materials/:id", h.Deactivate)
	return r, db
}

func TestMaterialCreateAndGet(t *testing.T) {
	r, _ := setupMaterialRouter(t)
	token := testutil.DefaultTestToken()

	body := map[string]interface{}{
		"sku":          "SH-HR-2MM",
		"name":         "HR Sheet 2mm",
		"category":     "SHEET",
		"grade":        "IS2062",
		"thickness_mm": 2.0,
		"base_price":   "56.50",
	}
	w := testutil.DoRequest(r, http.MethodPost, "/api/v1/materials", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	id := data["id"].(string)
	if data["sku"] != "SH-HR-2MM" {
		t.Errorf("sku = %v", data["sku"])
	}

	w = testutil.DoRequest(r, http.MethodGet, "/api/v1/materials/"+id, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	resp = testutil.ParseResponse(w)
	if resp["data"].(map[string]interface{})["name"] != "HR Sheet 2mm" {
		t.Errorf("unexpected name: %v", resp["data"])
	}
}

func TestMaterialDuplicateSKURejected(t *testing.T) {
	r, _ := setupMaterialRouter(t)
	token := testutil.DefaultTestToken()

	body := map[string]interface{}{"sku": "PI-MS-50", "name": "MS Pipe 50mm", "category": "PIPE"}
	w := testutil.DoRequest(r, http.MethodPost, "/api/v1/materials", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("first create status = %d", w.Code)
	}

	w = testutil.DoRequest(r, http.MethodPost, "/api/v1/materials", body, token)
	if w.Code == http.StatusCreated {
		t.Fatal("duplicate SKU accepted")
	}
}

func TestMaterialInvalidCategoryRejected(t *testing.T) {
	r, _ := setupMaterialRouter(t)
	token := testutil.DefaultTestToken()

	body := map[string]interface{}{"sku": "XX-01", "name": "Widget", "category": "WIDGET"}
	w := testutil.DoRequest(r, http.MethodPost, "/api/v1/materials", body, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestMaterialDeactivateKeepsRow(t *testing.T) {
	r, db := setupMaterialRouter(t)
	token := testutil.DefaultTestToken()

	m := testutil.SeedMaterial(t, db, "11111111-1111-1111-1111-111111111111", "BA-12", "MS Bar 12mm", "BAR")

	w := testutil.DoRequest(r, http.MethodDelete, "/api/v1/materials/"+m.ID, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("deactivate status = %d", w.Code)
	}

	w = testutil.DoRequest(r, http.MethodGet, "/api/v1/materials/"+m.ID, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("deactivated material should still be readable, status = %d", w.Code)
	}
	resp := testutil.ParseResponse(w)
	if resp["data"].(map[string]interface{})["is_active"] != false {
		t.Error("material still active after deactivation")
	}
}

func TestMaterialRequiresAuth(t *testing.T) {
	r, _ := setupMaterialRouter(t)

	w := testutil.DoRequest(r, http.MethodGet, "/api/v1/materials", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
