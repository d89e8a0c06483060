package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"blogapi/database"
	"blogapi/middleware"
	"blogapi/models"
	"blogapi/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig("silent"))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}))
	return db
}

func setupHub(t *testing.T) *services.HubService {
	t.Helper()
	hub := services.NewHubService()
	t.Cleanup(hub.Stop)
	return hub
}

// asCaller stands in for middleware.AuthRequired. A nil caller leaves the
// request anonymous.
func asCaller(caller *models.Caller) gin.HandlerFunc {
	return func(c *gin.Context) {
		if caller != nil {
			middleware.SetCaller(c, caller)
		}
		c.Next()
	}
}

func newRouter(caller *models.Caller) *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.Use(asCaller(caller))
	return r
}

func doRequest(t *testing.T, r http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var env ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	return env
}
