package middleware_test

import (
	"net/http"
	"testing"

	"github.com/ferroline/ferro-erp/internal/middleware"
	"github.com/ferroline/ferro-erp/internal/testutil"
	"github.com/gin-gonic/gin"
)

func setupGuardedRouter() *gin.Engine {
	r := testutil.SetupRouter()
	api := testutil.AuthGroup(r, "/api/v1")
	api.POST("/purchase-orders/:id/approve",
		middleware.RequirePermission("purchase:approve"),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"code": 0}) })
	api.PUT("/batches/:id/compliance",
		middleware.RequireRole("quality"),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"code": 0}) })
	return r
}

func TestRequirePermissionDeniesMissingPermission(t *testing.T) {
	r := setupGuardedRouter()

	token := testutil.GenerateTestToken("user-1", "Clerk", "clerk@test.com",
		[]string{"buyer"}, []string{"purchase:create"})
	w := testutil.DoRequest(r, "POST", "/api/v1/purchase-orders/po-1/approve", nil, token)

	if w.Code != http.StatusForbidden {
		t.Fatalf("Expected 403, got %d", w.Code)
	}
	resp := testutil.ParseResponse(w)
	if resp["code"].(float64) != 40302 {
		t.Errorf("Expected code 40302, got %v", resp["code"])
	}
}

func TestRequirePermissionAllowsGrantAndWildcard(t *testing.T) {
	r := setupGuardedRouter()

	granted := testutil.GenerateTestToken("user-2", "Manager", "mgr@test.com",
		[]string{"buyer"}, []string{"purchase:approve"})
	w := testutil.DoRequest(r, "POST", "/api/v1/purchase-orders/po-1/approve", nil, granted)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 with explicit grant, got %d", w.Code)
	}

	w = testutil.DoRequest(r, "POST", "/api/v1/purchase-orders/po-1/approve", nil, testutil.DefaultTestToken())
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 with wildcard permission, got %d", w.Code)
	}
}

func TestRequireRoleDeniesAndAdminOverrides(t *testing.T) {
	r := setupGuardedRouter()

	clerk := testutil.GenerateTestToken("user-3", "Clerk", "clerk@test.com",
		[]string{"sales"}, nil)
	w := testutil.DoRequest(r, "PUT", "/api/v1/batches/b-1/compliance", nil, clerk)
	if w.Code != http.StatusForbidden {
		t.Fatalf("Expected 403 for missing role, got %d", w.Code)
	}
	resp := testutil.ParseResponse(w)
	if resp["code"].(float64) != 40312 {
		t.Errorf("Expected code 40312, got %v", resp["code"])
	}

	quality := testutil.GenerateTestToken("user-4", "Inspector", "qc@test.com",
		[]string{"quality"}, nil)
	w = testutil.DoRequest(r, "PUT", "/api/v1/batches/b-1/compliance", nil, quality)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for quality role, got %d", w.Code)
	}

	admin := testutil.GenerateTestToken("user-5", "Admin", "admin@test.com",
		[]string{"admin"}, nil)
	w = testutil.DoRequest(r, "PUT", "/api/v1/batches/b-1/compliance", nil, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for admin override, got %d", w.Code)
	}
}
