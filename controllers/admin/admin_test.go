package adminControllers_test

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

	adminControllers "github.com/fornodoro/pizzeria-api/controllers/admin"
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

func createUser(t *testing.T, db *gorm.DB, email string, role models.Role) models.User {
	user := models.User{Email: email, PasswordHash: "x", Name: "Admin Test", Role: role}
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

func createOrder(t *testing.T, db *gorm.DB, user models.User, status models.OrderStatus) models.Order {
	order := models.Order{
		Ref:        fmt.Sprintf("%s-%d", t.Name(), time.Now().UnixNano()),
		UserID:     user.ID,
		TotalCents: 1800,
		Status:     status,
		Items: []models.OrderItem{
			{ProductID: 1, Name: "Margherita", UnitPriceCents: 900, Quantity: 2},
		},
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("failed to create order: %v", err)
	}
	return order
}

func TestAdminRoutesRejectNonAdmins(t *testing.T) {
	router, db := setupRouter(t)
	customer := createUser(t, db, "customer@test.local", models.RoleUser)
	token := authToken(t, customer)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/admin/orders"},
		{http.MethodGet, "/admin/users"},
		{http.MethodGet, "/admin/analytics"},
		{http.MethodPost, "/admin/products"},
	}
	for _, p := range paths {
		rec := doJSON(router, p.method, p.path, gin.H{}, token)
		assert.Equal(t, http.StatusForbidden, rec.Code, "%s %s", p.method, p.path)
	}

	t.Run("missing token is unauthorized", func(t *testing.T) {
		rec := doJSON(router, http.MethodGet, "/admin/orders", nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAdminRoleReadFromStorage(t *testing.T) {
	router, db := setupRouter(t)
	admin := createUser(t, db, "demoted@test.local", models.RoleAdmin)
	token := authToken(t, admin)

	rec := doJSON(router, http.MethodGet, "/admin/users", nil, token)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Demote directly; the still-valid token must stop working immediately.
	db.Model(&admin).Update("role", models.RoleUser)

	rec = doJSON(router, http.MethodGet, "/admin/users", nil, token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateOrderStatusTransitions(t *testing.T) {
	router, db := setupRouter(t)
	admin := createUser(t, db, "ops@test.local", models.RoleAdmin)
	customer := createUser(t, db, "buyer@test.local", models.RoleUser)
	token := authToken(t, admin)

	patchStatus := func(orderID uint, status string) *httptest.ResponseRecorder {
		return doJSON(router, http.MethodPatch, fmt.Sprintf("/admin/orders/%d/status", orderID), gin.H{"status": status}, token)
	}

	t.Run("paid to shipped is allowed", func(t *testing.T) {
		order := createOrder(t, db, customer, models.OrderStatusPaid)
		rec := patchStatus(order.ID, "SHIPPED")
		assert.Equal(t, http.StatusOK, rec.Code)

		db.First(&order, "id = ?", order.ID)
		assert.Equal(t, models.OrderStatusShipped, order.Status)
	})

	t.Run("delivered is terminal", func(t *testing.T) {
		order := createOrder(t, db, customer, models.OrderStatusDelivered)
		rec := patchStatus(order.ID, "PENDING")
		assert.Equal(t, http.StatusConflict, rec.Code)

		db.First(&order, "id = ?", order.ID)
		assert.Equal(t, models.OrderStatusDelivered, order.Status)
	})

	t.Run("failed allows a payment retry", func(t *testing.T) {
		order := createOrder(t, db, customer, models.OrderStatusFailed)
		rec := patchStatus(order.ID, "PENDING")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		order := createOrder(t, db, customer, models.OrderStatusPaid)
		rec := patchStatus(order.ID, "PAID")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		order := createOrder(t, db, customer, models.OrderStatusPaid)
		rec := patchStatus(order.ID, "TELEPORTED")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetOrdersPagination(t *testing.T) {
	router, db := setupRouter(t)
	admin := createUser(t, db, "pager@test.local", models.RoleAdmin)
	customer := createUser(t, db, "bulk@test.local", models.RoleUser)
	token := authToken(t, admin)

	for i := 0; i < 25; i++ {
		createOrder(t, db, customer, models.OrderStatusPaid)
	}
	createOrder(t, db, customer, models.OrderStatusPending)

	var page adminControllers.PageResult
	rec := doJSON(router, http.MethodGet, "/admin/orders?page=2&page_size=10", nil, token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, int64(26), page.Total)
	assert.Equal(t, 2, page.Page)

	t.Run("status filter", func(t *testing.T) {
		rec := doJSON(router, http.MethodGet, "/admin/orders?status=PENDING", nil, token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		assert.Equal(t, int64(1), page.Total)
	})

	t.Run("page size is capped", func(t *testing.T) {
		rec := doJSON(router, http.MethodGet, "/admin/orders?page_size=5000", nil, token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		assert.Equal(t, 100, page.PageSize)
	})
}

func TestUpdateUserRole(t *testing.T) {
	router, db := setupRouter(t)
	admin := createUser(t, db, "root@test.local", models.RoleAdmin)
	customer := createUser(t, db, "promotee@test.local", models.RoleUser)
	token := authToken(t, admin)

	t.Run("promotion", func(t *testing.T) {
		rec := doJSON(router, http.MethodPatch, fmt.Sprintf("/admin/users/%d/role", customer.ID), gin.H{"role": "ADMIN"}, token)
		assert.Equal(t, http.StatusOK, rec.Code)

		var updated models.User
		db.First(&updated, "id = ?", customer.ID)
		assert.Equal(t, models.RoleAdmin, updated.Role)
	})

	t.Run("self-demotion is blocked", func(t *testing.T) {
		rec := doJSON(router, http.MethodPatch, fmt.Sprintf("/admin/users/%d/role", admin.ID), gin.H{"role": "USER"}, token)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var self models.User
		db.First(&self, "id = ?", admin.ID)
		assert.Equal(t, models.RoleAdmin, self.Role)
	})

	t.Run("self-deletion is blocked", func(t *testing.T) {
		rec := doJSON(router, http.MethodDelete, fmt.Sprintf("/admin/users/%d", admin.ID), nil, token)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAnalytics(t *testing.T) {
	router, db := setupRouter(t)
	admin := createUser(t, db, "numbers@test.local", models.RoleAdmin)
	customer := createUser(t, db, "spender@test.local", models.RoleUser)
	token := authToken(t, admin)

	createOrder(t, db, customer, models.OrderStatusPaid)      // counts toward revenue
	createOrder(t, db, customer, models.OrderStatusDelivered) // counts toward revenue
	createOrder(t, db, customer, models.OrderStatusPending)   // does not

	rec := doJSON(router, http.MethodGet, "/admin/analytics?days=7", nil, token)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		RevenueCents int64 `json:"revenue_cents"`
		OrderCount   int64 `json:"order_count"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(3600), resp.RevenueCents)
	assert.Equal(t, int64(3), resp.OrderCount)
}
