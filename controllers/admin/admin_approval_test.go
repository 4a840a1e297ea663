package adminController

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/lumiere-jewels/jewelry-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupApprovalRouter(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Admin{}))

	r := gin.New()
	r.GET("/admin/admins", GetAllAdmins(db))
	r.GET("/admin/admin-management/pending", ListPendingAdmins(db))
	r.POST("/admin/admin-management/approve", ApproveAdmin(db))
	r.POST("/admin/admin-management/reject", RejectAdmin(db))
	return db, r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestApproveAdmin(t *testing.T) {
	db, r := setupApprovalRouter(t)
	require.NoError(t, db.Create(&models.Admin{Email: "new@lumiere.example", Name: "New Admin"}).Error)

	w := postJSON(r, "/admin/admin-management/approve", `{"email":"new@lumiere.example"}`)
	require.Equal(t, http.StatusOK, w.Code)

	// Response carries the updated record
	var resp struct {
		Admin models.Admin `json:"admin"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Admin.Approved)
	assert.Equal(t, "new@lumiere.example", resp.Admin.Email)

	var stored models.Admin
	require.NoError(t, db.Where("email = ?", "new@lumiere.example").First(&stored).Error)
	assert.True(t, stored.Approved)

	// Approving again is a no-op, still 200
	w = postJSON(r, "/admin/admin-management/approve", `{"email":"new@lumiere.example"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestApproveAdminValidation(t *testing.T) {
	_, r := setupApprovalRouter(t)

	w := postJSON(r, "/admin/admin-management/approve", `{"email":"nobody@lumiere.example"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = postJSON(r, "/admin/admin-management/approve", `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(r, "/admin/admin-management/approve", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRejectAdmin(t *testing.T) {
	db, r := setupApprovalRouter(t)
	require.NoError(t, db.Create(&models.Admin{Email: "pending@lumiere.example"}).Error)

	w := postJSON(r, "/admin/admin-management/reject", `{"email":"pending@lumiere.example"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Admin{}).Count(&count).Error)
	assert.Zero(t, count)

	// Rejecting a missing account is a 404, not a silent success
	w = postJSON(r, "/admin/admin-management/reject", `{"email":"pending@lumiere.example"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListPendingAdmins(t *testing.T) {
	db, r := setupApprovalRouter(t)
	require.NoError(t, db.Create(&[]models.Admin{
		{Email: "a@lumiere.example", Approved: true},
		{Email: "b@lumiere.example"},
		{Email: "c@lumiere.example"},
	}).Error)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/admin-management/pending", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var pending []models.Admin
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pending))
	require.Len(t, pending, 2)
	assert.Equal(t, "b@lumiere.example", pending[0].Email)
	assert.Equal(t, "c@lumiere.example", pending[1].Email)

	// The full listing includes approved accounts too
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/admins", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var all []models.Admin
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 3)
}
