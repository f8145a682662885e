package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/example/quickcart/internal/config"
	"github.com/example/quickcart/internal/handlers"
	"github.com/example/quickcart/internal/models"
	"github.com/example/quickcart/internal/notify"
	"github.com/example/quickcart/internal/services"
	"github.com/example/quickcart/internal/testutil"
	"github.com/example/quickcart/internal/utils"
)

const testSecret = "test-secret"

type testAPI struct {
	t      *testing.T
	app    *fiber.App
	db     *gorm.DB
	events *notify.Recorder
	store  *models.Warehouse
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	db := testutil.NewDB(t)
	store := testutil.CreateWarehouse(t, db, "Central", 0.045, 0)

	geo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/reverse":
			if r.URL.Query().Get("lat") == "28.6" {
				_, _ = w.Write([]byte(`{"display_name": "Connaught Place, New Delhi, India"}`))
				return
			}
			_, _ = w.Write([]byte(`{"display_name": "MI Road, Jaipur, Rajasthan, India", "address": {"road": "MI Road", "city": "Jaipur"}}`))
		case "/search":
			_, _ = w.Write([]byte(`[{"osm_id": 7, "display_name": "Bapu Bazaar, Jaipur, India", "lat": "26.91", "lon": "75.82"}]`))
		}
	}))
	t.Cleanup(geo.Close)

	cfg := &config.Config{
		JWTSecret:          testSecret,
		TokenExpires:       time.Hour,
		DefaultWarehouseID: store.ID.String(),
		LowStockThreshold:  5,
	}

	events := &notify.Recorder{}
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler(testutil.Logger())})
	Register(app, Deps{
		DB:        db,
		Config:    cfg,
		Publisher: events,
		Geocoder:  services.NewGeocoder(geo.URL, "jaipur"),
		Log:       testutil.Logger(),
	})

	return &testAPI{t: t, app: app, db: db, events: events, store: store}
}

func (a *testAPI) token(u *models.User) string {
	a.t.Helper()
	token, err := utils.GenerateToken(testSecret, u.ID, u.Role, time.Hour)
	require.NoError(a.t, err)
	return token
}

func (a *testAPI) call(method, path, token string, body any) (int, map[string]any) {
	a.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	if len(raw) > 0 {
		require.NoError(a.t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func data(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	d, ok := body["data"].(map[string]any)
	require.True(t, ok, "data is not an object: %v", body)
	return d
}

func list(t *testing.T, body map[string]any) []any {
	t.Helper()
	d, ok := body["data"].([]any)
	require.True(t, ok, "data is not a list: %v", body)
	return d
}

func money(t *testing.T, v any) decimal.Decimal {
	t.Helper()
	s, ok := v.(string)
	require.True(t, ok, "money is not a string: %v", v)
	return decimal.RequireFromString(s)
}

func TestRegisterLoginAndProfile(t *testing.T) {
	api := newTestAPI(t)

	status, body := api.call("POST", "/api/auth/register", "", fiber.Map{
		"name": "Asha", "email": "Asha@Example.com", "phone": "9999", "password": "secret1",
	})
	require.Equal(t, fiber.StatusCreated, status, body)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	status, body = api.call("POST", "/api/auth/register", "", fiber.Map{
		"name": "Asha", "email": "asha@example.com", "password": "secret1",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])

	status, _ = api.call("POST", "/api/auth/login", "", fiber.Map{"email": "asha@example.com", "password": "wrong!"})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, body = api.call("POST", "/api/auth/login", "", fiber.Map{"email": "asha@example.com", "password": "secret1"})
	require.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, body["token"])

	status, body = api.call("GET", "/api/profile", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	profile := data(t, body)
	assert.Equal(t, "asha@example.com", profile["email"])
	assert.Equal(t, "customer", profile["role"])

	status, body = api.call("GET", "/api/profile", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Not authorized, no token", body["message"])

	status, _ = api.call("PUT", "/api/profile/password", token, fiber.Map{"current_password": "nope", "new_password": "secret2"})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body = api.call("PUT", "/api/profile/password", token, fiber.Map{"current_password": "secret1", "new_password": "secret2"})
	require.Equal(t, fiber.StatusOK, status, body)

	status, _ = api.call("POST", "/api/auth/login", "", fiber.Map{"email": "asha@example.com", "password": "secret1"})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	status, _ = api.call("POST", "/api/auth/login", "", fiber.Map{"email": "asha@example.com", "password": "secret2"})
	assert.Equal(t, fiber.StatusOK, status)
}

func TestRoleGates(t *testing.T) {
	api := newTestAPI(t)
	customer := api.token(testutil.CreateUser(t, api.db, models.RoleCustomer, "0"))
	packer := api.token(testutil.CreateUser(t, api.db, models.RolePacker, "0"))
	driver := api.token(testutil.CreateUser(t, api.db, models.RoleDriver, "0"))
	admin := api.token(testutil.CreateUser(t, api.db, models.RoleAdmin, "0"))

	cases := []struct {
		path  string
		token string
		want  int
	}{
		{"/api/orders", customer, fiber.StatusForbidden},
		{"/api/orders", admin, fiber.StatusOK},
		{"/api/packer/orders", customer, fiber.StatusForbidden},
		{"/api/packer/orders", driver, fiber.StatusForbidden},
		{"/api/packer/orders", packer, fiber.StatusOK},
		{"/api/packer/orders", admin, fiber.StatusOK},
		{"/api/delivery/available", packer, fiber.StatusForbidden},
		{"/api/delivery/available", driver, fiber.StatusOK},
		{"/api/darkstores", driver, fiber.StatusForbidden},
		{"/api/darkstores", admin, fiber.StatusOK},
		{"/api/admin/dashboard", customer, fiber.StatusForbidden},
		{"/api/admin/dashboard", admin, fiber.StatusOK},
		{"/api/orders/revenue", customer, fiber.StatusForbidden},
		{"/api/products", "", fiber.StatusOK},
		{"/api/banners", "", fiber.StatusOK},
	}
	for _, tc := range cases {
		status, body := api.call("GET", tc.path, tc.token, nil)
		assert.Equal(t, tc.want, status, "%s: %v", tc.path, body)
		if tc.want == fiber.StatusForbidden {
			assert.Equal(t, "Not authorized for this action", body["message"], tc.path)
		}
	}
}

func TestCheckoutLifecycleOverHTTP(t *testing.T) {
	api := newTestAPI(t)
	customerUser := testutil.CreateUser(t, api.db, models.RoleCustomer, "1000")
	customer := api.token(customerUser)
	packer := api.token(testutil.CreateUser(t, api.db, models.RolePacker, "0"))
	driverUser := testutil.CreateUser(t, api.db, models.RoleDriver, "0")
	driver := api.token(driverUser)
	admin := api.token(testutil.CreateUser(t, api.db, models.RoleAdmin, "0"))

	milk := testutil.CreateProduct(t, api.db, "Milk", "50")
	testutil.SetStock(t, api.db, milk.ID, api.store.ID, 10)

	status, body := api.call("POST", "/api/profile/addresses", customer, fiber.Map{
		"label": "home", "street": "1 MI Road", "city": "Jaipur", "lat": 0, "lng": 0,
	})
	require.Equal(t, fiber.StatusCreated, status, body)
	addressID := data(t, body)["id"].(string)

	status, body = api.call("POST", "/api/orders", customer, fiber.Map{
		"items":          []fiber.Map{{"product_id": milk.ID.String(), "quantity": 2, "price": 50}},
		"address_id":     addressID,
		"payment_method": "wallet",
		"total_price":    100,
	})
	require.Equal(t, fiber.StatusCreated, status, body)
	order := data(t, body)
	orderID := order["id"].(string)
	assert.Equal(t, "pending", order["status"])
	assert.Equal(t, api.store.ID.String(), order["warehouse_id"])
	assert.Equal(t, 8, testutil.StockOf(t, api.db, milk.ID, api.store.ID))
	assert.Len(t, api.events.Named(notify.EventNewOrder), 1)

	status, body = api.call("GET", "/api/wallet", customer, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.True(t, money(t, data(t, body)["balance"]).Equal(decimal.NewFromInt(900)))
	assert.Len(t, data(t, body)["transactions"], 1)

	status, body = api.call("GET", "/api/orders/myorders", customer, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, list(t, body), 1)

	status, body = api.call("GET", "/api/packer/orders", packer, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, body["data"])

	status, body = api.call("PUT", "/api/orders/"+orderID+"/pay", customer, nil)
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, "confirmed", data(t, body)["status"])

	status, body = api.call("GET", "/api/packer/orders", packer, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, list(t, body), 1)

	status, body = api.call("PUT", "/api/packer/"+orderID+"/ready", packer, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Cannot mark ready order that is confirmed", body["message"])

	status, body = api.call("PUT", "/api/packer/"+orderID+"/start", packer, nil)
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, "packing", data(t, body)["status"])

	status, body = api.call("PUT", "/api/packer/"+orderID+"/ready", packer, nil)
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, "ready_for_pickup", data(t, body)["status"])
	assert.Len(t, api.events.Named(notify.EventDriverOrderReady), 1)

	status, body = api.call("GET", "/api/delivery/available", driver, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, list(t, body), 1)

	status, body = api.call("POST", "/api/delivery/"+orderID+"/accept", driver, nil)
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, "out_for_delivery", data(t, body)["status"])

	status, body = api.call("PUT", "/api/orders/"+orderID+"/cancel", customer, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Cannot cancel order that is out_for_delivery", body["message"])
	assert.Equal(t, 8, testutil.StockOf(t, api.db, milk.ID, api.store.ID))

	status, body = api.call("GET", "/api/delivery/my-deliveries", driver, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, list(t, body), 1)

	status, body = api.call("PUT", "/api/delivery/"+orderID+"/complete", driver, nil)
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, "delivered", data(t, body)["status"])

	status, body = api.call("GET", "/api/delivery/stats", driver, nil)
	require.Equal(t, fiber.StatusOK, status)
	stats := data(t, body)
	assert.EqualValues(t, 1, stats["completed"])
	assert.True(t, money(t, stats["total_earnings"]).Equal(decimal.NewFromInt(20)))

	status, body = api.call("GET", "/api/orders/"+orderID, customer, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "delivered", data(t, body)["status"])
	delivery, ok := data(t, body)["delivery"].(map[string]any)
	require.True(t, ok, body)
	courier, ok := delivery["driver"].(map[string]any)
	require.True(t, ok, delivery)
	assert.Equal(t, driverUser.ID.String(), courier["id"])
	assert.Equal(t, "driver user", courier["name"])
	assert.NotContains(t, courier, "email")
	assert.NotContains(t, courier, "wallet_balance")

	status, body = api.call("GET", "/api/orders/revenue", admin, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.True(t, money(t, data(t, body)["total"]).Equal(decimal.NewFromInt(100)))

	status, body = api.call("GET", "/api/orders/stats?period=daily", admin, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "daily", data(t, body)["period"])
	assert.Len(t, data(t, body)["series"], 7)

	status, body = api.call("GET", "/api/admin/dashboard", admin, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 1, data(t, body)["total_orders"])
}

func TestCancelOverHTTPRefundsWallet(t *testing.T) {
	api := newTestAPI(t)
	customerUser := testutil.CreateUser(t, api.db, models.RoleCustomer, "500")
	customer := api.token(customerUser)
	stranger := api.token(testutil.CreateUser(t, api.db, models.RoleCustomer, "0"))

	bread := testutil.CreateProduct(t, api.db, "Bread", "30")
	testutil.SetStock(t, api.db, bread.ID, api.store.ID, 3)
	address := testutil.CreateAddress(t, api.db, customerUser.ID, nil, nil)

	status, body := api.call("POST", "/api/orders", customer, fiber.Map{
		"items":          []fiber.Map{{"product_id": bread.ID.String(), "quantity": 3}},
		"address_id":     address.ID.String(),
		"payment_method": "wallet",
		"total_price":    90,
	})
	require.Equal(t, fiber.StatusCreated, status, body)
	orderID := data(t, body)["id"].(string)
	assert.Equal(t, 0, testutil.StockOf(t, api.db, bread.ID, api.store.ID))

	status, body = api.call("POST", "/api/orders", customer, fiber.Map{
		"items":          []fiber.Map{{"product_id": bread.ID.String(), "quantity": 1}},
		"address_id":     address.ID.String(),
		"payment_method": "cod",
		"total_price":    30,
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, `Product "Bread" is out of stock at your nearest store`, body["message"])

	status, _ = api.call("GET", "/api/orders/"+orderID, stranger, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = api.call("PUT", "/api/orders/"+orderID+"/cancel", stranger, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, body = api.call("PUT", "/api/orders/"+orderID+"/cancel", customer, nil)
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, "cancelled", data(t, body)["status"])
	assert.Equal(t, 3, testutil.StockOf(t, api.db, bread.ID, api.store.ID))
	assert.True(t, testutil.Balance(t, api.db, customerUser.ID).Equal(decimal.NewFromInt(500)))

	status, _ = api.call("PUT", "/api/orders/"+orderID+"/cancel", customer, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.True(t, testutil.Balance(t, api.db, customerUser.ID).Equal(decimal.NewFromInt(500)))
}

func TestOrderValidationErrors(t *testing.T) {
	api := newTestAPI(t)
	customer := api.token(testutil.CreateUser(t, api.db, models.RoleCustomer, "0"))

	status, body := api.call("POST", "/api/orders", customer, fiber.Map{"address_id": "nope"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "invalid address_id", body["message"])

	status, body = api.call("GET", "/api/orders/not-a-uuid", customer, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "invalid id", body["message"])
	assert.Equal(t, false, body["success"])
}

func TestAdminStockAndStores(t *testing.T) {
	api := newTestAPI(t)
	admin := api.token(testutil.CreateUser(t, api.db, models.RoleAdmin, "0"))
	customer := testutil.CreateUser(t, api.db, models.RoleCustomer, "0")

	status, body := api.call("POST", "/api/darkstores", admin, fiber.Map{"name": "North", "address": "Sikar Road", "lat": 26.98, "lng": 75.77})
	require.Equal(t, fiber.StatusCreated, status, body)
	northID := data(t, body)["id"].(string)

	status, body = api.call("POST", "/api/darkstores", admin, fiber.Map{"name": "Incomplete"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Please fill all fields", body["message"])

	status, body = api.call("POST", "/api/products", admin, fiber.Map{"name": "Paneer 200g", "sku": "DAI-PANR", "price": 90, "stock": 4})
	require.Equal(t, fiber.StatusCreated, status, body)
	productID := data(t, body)["id"].(string)

	status, body = api.call("POST", "/api/products", admin, fiber.Map{"name": "Paneer again", "sku": "DAI-PANR", "price": 95})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Product with this SKU already exists", body["message"])

	status, body = api.call("GET", "/api/products/"+productID+"?store="+api.store.ID.String(), "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 4, data(t, body)["stock"])

	status, body = api.call("PUT", "/api/darkstores/"+northID+"/stock/"+productID, admin, fiber.Map{"quantity": 12})
	require.Equal(t, fiber.StatusOK, status, body)
	assert.EqualValues(t, 12, data(t, body)["quantity"])

	status, body = api.call("PUT", "/api/darkstores/"+northID+"/stock/"+productID, admin, fiber.Map{"quantity": -1})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body = api.call("GET", "/api/products?search=paneer", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	products := list(t, body)
	require.Len(t, products, 1)
	assert.EqualValues(t, 16, products[0].(map[string]any)["stock"])

	status, body = api.call("GET", "/api/admin/stock/low", admin, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, data(t, body)["items"], 1)

	status, body = api.call("GET", "/api/darkstores/"+northID+"/stock", admin, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, list(t, body), 1)

	address := testutil.CreateAddress(t, api.db, customer.ID, testutil.Float(26.98), testutil.Float(75.77))
	require.NoError(t, api.db.Create(&models.Order{
		UserID: customer.ID, WarehouseID: api.store.ID, AddressID: address.ID,
		PaymentMethod: models.PaymentCOD, Status: models.StatusPending, TotalPrice: testutil.Money("10"),
	}).Error)

	status, body = api.call("DELETE", "/api/darkstores/"+api.store.ID.String(), admin, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Cannot delete a store that has orders", body["message"])

	status, _ = api.call("DELETE", "/api/darkstores/"+northID, admin, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, int64(0), testutil.Count(t, api.db, &models.StockItem{}, "warehouse_id = ?", northID))
}

func TestWalletTopUpAndCoupons(t *testing.T) {
	api := newTestAPI(t)
	adminUser := testutil.CreateUser(t, api.db, models.RoleAdmin, "0")
	admin := api.token(adminUser)
	customerUser := testutil.CreateUser(t, api.db, models.RoleCustomer, "0")
	customer := api.token(customerUser)

	status, _ := api.call("POST", "/api/wallet/topup", customer, fiber.Map{"user_id": customerUser.ID.String(), "amount": 250})
	assert.Equal(t, fiber.StatusForbidden, status)

	status, body := api.call("POST", "/api/wallet/topup", admin, fiber.Map{"user_id": customerUser.ID.String(), "amount": 250})
	require.Equal(t, fiber.StatusCreated, status, body)
	assert.True(t, testutil.Balance(t, api.db, customerUser.ID).Equal(decimal.NewFromInt(250)))

	status, body = api.call("POST", "/api/wallet/topup", admin, fiber.Map{"user_id": customerUser.ID.String(), "amount": 0})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Amount must be greater than zero", body["message"])

	status, body = api.call("POST", "/api/coupons", admin, fiber.Map{
		"code": "save10", "discount": 10, "type": "percentage", "min_order": 200,
		"expiry": time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, fiber.StatusCreated, status, body)
	assert.Equal(t, "SAVE10", data(t, body)["code"])

	status, body = api.call("POST", "/api/coupons/validate", customer, fiber.Map{"code": "save10", "cart_total": 300})
	require.Equal(t, fiber.StatusOK, status, body)
	assert.True(t, money(t, data(t, body)["discount_amount"]).Equal(decimal.NewFromInt(30)))

	status, body = api.call("POST", "/api/coupons/validate", customer, fiber.Map{"code": "save10", "cart_total": 100})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Minimum order of ₹200.00 required", body["message"])

	status, body = api.call("POST", "/api/coupons/validate", customer, fiber.Map{"code": "bogus", "cart_total": 100})
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Invalid coupon code", body["message"])
}

func TestLocationEndpoints(t *testing.T) {
	api := newTestAPI(t)

	status, body := api.call("POST", "/api/location/check", "", fiber.Map{"lat": 26.91, "lon": 75.78})
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, "MI Road, Jaipur", data(t, body)["name"])
	assert.Equal(t, true, data(t, body)["serviceable"])

	status, body = api.call("POST", "/api/location/check", "", fiber.Map{"lat": 28.6, "lon": 77.2})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Sorry, we don't deliver to your location yet.", body["message"])

	status, body = api.call("POST", "/api/location/check", "", fiber.Map{"lat": 26.91})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Latitude and longitude are required", body["message"])

	status, body = api.call("GET", "/api/location/search?q=bapu", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, list(t, body), 1)
}

func TestCatalogAndBanners(t *testing.T) {
	api := newTestAPI(t)
	admin := api.token(testutil.CreateUser(t, api.db, models.RoleAdmin, "0"))

	status, body := api.call("POST", "/api/categories", admin, fiber.Map{"name": "Dairy"})
	require.Equal(t, fiber.StatusCreated, status, body)
	categoryID := data(t, body)["id"].(string)

	status, _ = api.call("POST", "/api/categories", admin, fiber.Map{"name": "Dairy"})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body = api.call("POST", "/api/products", admin, fiber.Map{"name": "Curd", "sku": "DAI-CURD", "price": 35, "category_id": categoryID})
	require.Equal(t, fiber.StatusCreated, status, body)

	status, body = api.call("GET", "/api/products?category_id="+categoryID, "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, list(t, body), 1)

	status, _ = api.call("DELETE", "/api/categories/"+categoryID, admin, nil)
	assert.Equal(t, fiber.StatusNoContent, status)

	status, body = api.call("POST", "/api/banners", admin, fiber.Map{"title": "Diwali"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Image URL is required", body["message"])

	status, body = api.call("POST", "/api/banners", admin, fiber.Map{"title": "Diwali", "image_url": "https://cdn.example/diwali.png"})
	require.Equal(t, fiber.StatusCreated, status, body)

	status, body = api.call("GET", "/api/banners", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, list(t, body), 1)
}
