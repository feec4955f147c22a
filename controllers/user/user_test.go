package userControllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
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

func createUser(t *testing.T, db *gorm.DB, email string) models.User {
	user := models.User{Email: email, PasswordHash: "x", Name: "Address User", Role: models.RoleUser}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func authToken(t *testing.T, user models.User) string {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    string(user.Role),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
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

func addressBody(line1 string, isDefault bool) gin.H {
	return gin.H{
		"line1":       line1,
		"city":        "Napoli",
		"postal_code": "80100",
		"phone":       "+39 081 000000",
		"is_default":  isDefault,
	}
}

func TestSingleDefaultAddress(t *testing.T) {
	router, db := setupRouter(t)
	user := createUser(t, db, "default@test.local")
	token := authToken(t, user)

	rec := doJSON(router, http.MethodPost, "/user/addresses", addressBody("1 Via Roma", true), token)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(router, http.MethodPost, "/user/addresses", addressBody("2 Via Toledo", true), token)
	assert.Equal(t, http.StatusCreated, rec.Code)

	countDefaults := func() int64 {
		var n int64
		db.Model(&models.Address{}).Where("user_id = ? AND is_default = ?", user.ID, true).Count(&n)
		return n
	}
	assert.Equal(t, int64(1), countDefaults())

	var current models.Address
	db.Where("user_id = ? AND is_default = ?", user.ID, true).First(&current)
	assert.Equal(t, "2 Via Toledo", current.Line1)

	t.Run("update moves the flag", func(t *testing.T) {
		var first models.Address
		db.Where("user_id = ? AND line1 = ?", user.ID, "1 Via Roma").First(&first)

		rec := doJSON(router, http.MethodPut, fmt.Sprintf("/user/addresses/%d", first.ID), addressBody("1 Via Roma", true), token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(1), countDefaults())

		db.First(&first, "id = ?", first.ID)
		assert.True(t, first.IsDefault)
	})
}

func TestAddressOwnership(t *testing.T) {
	router, db := setupRouter(t)
	owner := createUser(t, db, "addr-owner@test.local")
	intruder := createUser(t, db, "addr-intruder@test.local")

	rec := doJSON(router, http.MethodPost, "/user/addresses", addressBody("1 Via Roma", false), authToken(t, owner))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var address models.Address
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &address))

	rec = doJSON(router, http.MethodDelete, fmt.Sprintf("/user/addresses/%d", address.ID), nil, authToken(t, intruder))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(router, http.MethodDelete, fmt.Sprintf("/user/addresses/%d", address.ID), nil, authToken(t, owner))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetUserHidesPasswordHash(t *testing.T) {
	router, db := setupRouter(t)
	user := createUser(t, db, "profile@test.local")

	rec := doJSON(router, http.MethodGet, "/user", nil, authToken(t, user))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotContains(t, body, "password_hash")
	assert.Equal(t, "profile@test.local", body["email"])
}
