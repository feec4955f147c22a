package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fornodoro/pizzeria-api/database"
	"github.com/fornodoro/pizzeria-api/models"
	"github.com/fornodoro/pizzeria-api/routes"
)

type stubProvider struct{}

func (stubProvider) CreateIntent(amountCents int64, currency, orderRef string) (string, string, error) {
	return "pi_test", "pi_test_secret", nil
}

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	routes.SetupRoutes(r, db, stubProvider{})
	return r, db
}

func doJSON(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func TestRegisterAndLogin(t *testing.T) {
	router, db := setupRouter(t)

	register := gin.H{"email": "mario@test.local", "password": "correcthorse", "name": "Mario"}

	rec := doJSON(router, http.MethodPost, "/auth/register", register, "")
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp authResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.RoleUser, resp.User.Role)

	t.Run("token grants access to protected routes", func(t *testing.T) {
		rec := doJSON(router, http.MethodGet, "/user", nil, resp.Token)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("stored hash is not the plaintext", func(t *testing.T) {
		var user models.User
		assert.NoError(t, db.Where("email = ?", "mario@test.local").First(&user).Error)
		assert.NotEqual(t, "correcthorse", user.PasswordHash)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		rec := doJSON(router, http.MethodPost, "/auth/register", register, "")
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("login with the right password", func(t *testing.T) {
		rec := doJSON(router, http.MethodPost, "/auth/login", gin.H{"email": "mario@test.local", "password": "correcthorse"}, "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("login with the wrong password", func(t *testing.T) {
		rec := doJSON(router, http.MethodPost, "/auth/login", gin.H{"email": "mario@test.local", "password": "wrong-password"}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("short password is rejected", func(t *testing.T) {
		rec := doJSON(router, http.MethodPost, "/auth/register", gin.H{"email": "luigi@test.local", "password": "short", "name": "Luigi"}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router, _ := setupRouter(t)

	for _, path := range []string{"/user", "/cart", "/orders"} {
		rec := doJSON(router, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	rec := doJSON(router, http.MethodGet, "/user", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
