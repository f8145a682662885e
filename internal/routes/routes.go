package routes

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/quickcart/internal/config"
	"github.com/example/quickcart/internal/handlers"
	"github.com/example/quickcart/internal/inventory"
	"github.com/example/quickcart/internal/middleware"
	"github.com/example/quickcart/internal/models"
	"github.com/example/quickcart/internal/notify"
	"github.com/example/quickcart/internal/services"
	"github.com/example/quickcart/internal/wallet"
)

// Deps are the shared dependencies the HTTP layer is built from.
type Deps struct {
	DB        *gorm.DB
	Config    *config.Config
	Publisher notify.Publisher
	Geocoder  *services.Geocoder
	Log       *zap.Logger
}

// Register wires up all HTTP routes.
func Register(app *fiber.App, d Deps) {
	cfg := d.Config

	stock := inventory.NewLedger(d.DB)
	orderService := services.NewOrderService(d.DB, d.Publisher, d.Log, services.OrderOptions{
		DefaultWarehouseID: cfg.DefaultWarehouseID,
		StrictCoupons:      cfg.StrictCoupons,
	})
	statsService := services.NewStatsService(d.DB)
	geocoder := d.Geocoder
	if geocoder == nil {
		geocoder = services.NewGeocoder(cfg.GeocoderBaseURL, cfg.ServiceableCity)
	}

	authHandler := handlers.NewAuthHandler(d.DB, cfg)
	profileHandler := handlers.NewProfileHandler(d.DB)
	walletHandler := handlers.NewWalletHandler(wallet.NewLedger(d.DB))
	catalogHandler := handlers.NewCatalogHandler(d.DB)
	productHandler := handlers.NewProductHandler(d.DB, cfg.DefaultWarehouseID)
	couponHandler := handlers.NewCouponHandler(d.DB, services.NewCouponService(d.DB))
	locationHandler := handlers.NewLocationHandler(geocoder)
	orderHandler := handlers.NewOrderHandler(orderService, statsService)
	packerHandler := handlers.NewPackerHandler(orderService)
	deliveryHandler := handlers.NewDeliveryHandler(orderService, statsService)
	warehouseHandler := handlers.NewWarehouseHandler(d.DB, stock)
	adminHandler := handlers.NewAdminHandler(d.DB, statsService, stock, cfg.LowStockThreshold)

	auth := middleware.AuthMiddleware(cfg.JWTSecret)
	admin := middleware.RequireRoles(models.RoleAdmin)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "status": "ok"})
	})

	api := app.Group("/api")

	// Auth routes
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)

	// Profile
	profile := api.Group("/profile", auth)
	profile.Get("/", profileHandler.GetProfile)
	profile.Put("/", profileHandler.UpdateProfile)
	profile.Put("/password", profileHandler.ChangePassword)
	profile.Get("/addresses", profileHandler.ListAddresses)
	profile.Post("/addresses", profileHandler.CreateAddress)
	profile.Put("/addresses/:id", profileHandler.UpdateAddress)
	profile.Delete("/addresses/:id", profileHandler.DeleteAddress)

	// Wallet
	api.Get("/wallet", auth, walletHandler.GetWallet)
	api.Post("/wallet/topup", auth, admin, walletHandler.TopUp)

	// Catalog
	api.Get("/categories", catalogHandler.ListCategories)
	api.Post("/categories", auth, admin, catalogHandler.CreateCategory)
	api.Put("/categories/:id", auth, admin, catalogHandler.UpdateCategory)
	api.Delete("/categories/:id", auth, admin, catalogHandler.DeleteCategory)

	api.Get("/banners", catalogHandler.ListBanners)
	api.Post("/banners", auth, admin, catalogHandler.CreateBanner)
	api.Delete("/banners/:id", auth, admin, catalogHandler.DeleteBanner)

	api.Get("/products", productHandler.ListProducts)
	api.Get("/products/:id", productHandler.GetProduct)
	api.Post("/products", auth, admin, productHandler.CreateProduct)
	api.Put("/products/:id", auth, admin, productHandler.UpdateProduct)
	api.Delete("/products/:id", auth, admin, productHandler.DeleteProduct)

	// Coupons
	api.Post("/coupons/validate", auth, couponHandler.Validate)
	api.Get("/coupons", auth, admin, couponHandler.List)
	api.Post("/coupons", auth, admin, couponHandler.Create)
	api.Delete("/coupons/:id", auth, admin, couponHandler.Delete)

	// Location
	api.Post("/location/check", locationHandler.Check)
	api.Get("/location/search", locationHandler.Search)

	// Orders: static paths must precede /:id
	orders := api.Group("/orders", auth)
	orders.Post("/", orderHandler.CreateOrder)
	orders.Get("/myorders", orderHandler.MyOrders)
	orders.Get("/revenue", admin, orderHandler.Revenue)
	orders.Get("/stats", admin, orderHandler.Stats)
	orders.Get("/stats/count", admin, orderHandler.StatsCount)
	orders.Get("/", admin, orderHandler.ListOrders)
	orders.Get("/:id", orderHandler.GetOrder)
	orders.Put("/:id/status", admin, orderHandler.UpdateStatus)
	orders.Put("/:id/pay", orderHandler.Pay)
	orders.Put("/:id/cancel", orderHandler.Cancel)
	orders.Put("/:id/deliver", admin, orderHandler.Deliver)

	packer := api.Group("/packer", auth, middleware.RequireRoles(models.RolePacker, models.RoleAdmin))
	packer.Get("/orders", packerHandler.Orders)
	packer.Put("/:id/start", packerHandler.Start)
	packer.Put("/:id/ready", packerHandler.Ready)

	delivery := api.Group("/delivery", auth, middleware.RequireRoles(models.RoleDriver, models.RoleAdmin))
	delivery.Get("/available", deliveryHandler.Available)
	delivery.Get("/my-deliveries", deliveryHandler.MyDeliveries)
	delivery.Get("/stats", deliveryHandler.Stats)
	delivery.Post("/:orderId/accept", deliveryHandler.Accept)
	delivery.Put("/:orderId/complete", deliveryHandler.Complete)

	stores := api.Group("/darkstores", auth, admin)
	stores.Get("/", warehouseHandler.List)
	stores.Post("/", warehouseHandler.Create)
	stores.Get("/:id", warehouseHandler.Get)
	stores.Delete("/:id", warehouseHandler.Delete)
	stores.Get("/:id/stock", warehouseHandler.Stock)
	stores.Put("/:id/stock/:productId", warehouseHandler.SetStock)

	adminGroup := api.Group("/admin", auth, admin)
	adminGroup.Get("/dashboard", adminHandler.Dashboard)
	adminGroup.Get("/stock/low", adminHandler.LowStock)
	adminGroup.Get("/orders/recent", adminHandler.RecentOrders)
	adminGroup.Get("/users", adminHandler.ListUsers)
	adminGroup.Put("/users/:id/role", adminHandler.UpdateUserRole)
}
