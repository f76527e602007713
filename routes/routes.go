package routes

import (
	"cooldeal/configs"
	"cooldeal/controllers"
	"cooldeal/entity"
	"cooldeal/middlewares"
	"cooldeal/repository"
	"cooldeal/services"
	"cooldeal/ws"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the outside-world adapters chosen by the caller.
type Deps struct {
	Cfg      *configs.Config
	DB       *gorm.DB
	Log      *zap.Logger
	Gateway  services.PaymentGateway
	Mailer   services.Mailer
	Renderer services.PDFRenderer
}

// App exposes the pieces that run beside the HTTP server.
type App struct {
	Hub      *ws.OrderHub
	Auth     *services.AuthService
	Sessions *repository.SessionRepository
}

// RegisterRoutes wires every layer onto r; it fails when the lookups are not seeded.
func RegisterRoutes(r *gin.Engine, d Deps) (*App, error) {
	cfg, db, log := d.Cfg, d.DB, d.Log

	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	r.Static("/uploads", cfg.MediaRoot)

	// Repositories
	users := repository.NewUserRepository(db)
	customers := repository.NewCustomerRepository(db)
	sessions := repository.NewSessionRepository(db)
	carts := repository.NewCartRepository(db)
	coupons := repository.NewCouponRepository(db)
	orders := repository.NewOrderRepository(db)
	catalog := repository.NewCatalogRepository(db)
	ests := repository.NewEstablishmentRepository(db)
	tokens := repository.NewTokenRepository(db)
	site := repository.NewSiteRepository(db)

	status, err := services.LoadStatusIDs(orders)
	if err != nil {
		return nil, err
	}

	// Services
	sellerSvc := services.NewSellerService(db, ests, orders, status)
	hub := ws.NewOrderHub(sellerSvc, log)
	catalogSvc := services.NewCatalogService(db, catalog)
	cartSvc := services.NewCartService(db, carts, catalog, coupons, customers)
	checkoutSvc := services.NewCheckoutService(db, carts, orders, coupons, customers, ests,
		d.Gateway, hub, log, status, cfg.Currency, cfg.PublicURL)
	orderSvc := services.NewOrderService(db, orders, customers, ests, status)
	authSvc := services.NewAuthService(db, users, customers, tokens, sessions, d.Mailer, log,
		cfg.JWTSecret, cfg.JWTTTL, cfg.PublicURL)
	receiptSvc := services.NewReceiptService(orderSvc, site, d.Renderer, cfg.PublicURL, cfg.Currency)
	customerSvc := services.NewCustomerService(db, customers, users, orderSvc, catalogSvc)
	siteSvc := services.NewSiteService(site, catalogSvc)
	adminSvc := services.NewAdminService(db, users, catalog, ests, orders, site)
	couponSvc := services.NewCouponService(coupons, log)

	// Controllers
	siteCtrl := controllers.NewSiteController(siteSvc, cartSvc)
	shopCtrl := controllers.NewShopController(catalogSvc)
	cartCtrl := controllers.NewCartController(cartSvc)
	checkoutCtrl := controllers.NewCheckoutController(checkoutSvc, cartSvc, log)
	authCtrl := controllers.NewAuthController(authSvc, cartSvc, cfg, log)
	clientCtrl := controllers.NewClientController(customerSvc, orderSvc, receiptSvc, cfg, log)
	sellerCtrl := controllers.NewSellerController(sellerSvc, orderSvc, cfg)
	adminCtrl := controllers.NewAdminController(adminSvc, couponSvc, cfg)

	session := middlewares.Session(sessions, cfg, log)
	optional := middlewares.OptionalAuth(cfg)
	customer := middlewares.AuthMiddleware(cfg, entity.RoleCustomer)

	api := r.Group("/api", optional, session)

	// Website & contact (public)
	api.GET("/home", siteCtrl.Home)
	api.GET("/about", siteCtrl.About)
	api.GET("/layout", siteCtrl.Layout)
	api.POST("/contact", siteCtrl.Contact)
	api.POST("/newsletter", siteCtrl.Newsletter)

	// Shop
	shop := api.Group("/shop")
	{
		shop.GET("", shopCtrl.List)
		shop.GET("/products/:slug", shopCtrl.Product)
		shop.GET("/categories", shopCtrl.Categories)
		shop.GET("/categories/:slug", shopCtrl.Category)
		shop.POST("/favorites/:id", middlewares.AuthMiddleware(cfg), shopCtrl.ToggleFavorite)
	}

	// Cart (session or customer)
	cart := api.Group("/cart")
	{
		cart.GET("", cartCtrl.Show)
		cart.POST("/add", cartCtrl.Add)
		cart.POST("/update", cartCtrl.Update)
		cart.POST("/delete", cartCtrl.Delete)
		cart.POST("/coupon", cartCtrl.Coupon)
	}

	// Checkout & payment
	api.GET("/checkout", customer, checkoutCtrl.Summary)
	pay := api.Group("/paiement")
	{
		pay.POST("/details", customer, checkoutCtrl.Details)
		pay.POST("/notify", checkoutCtrl.Notify)
		pay.GET("/success", checkoutCtrl.Success)
	}

	// Customer auth
	cust := api.Group("/customer")
	{
		cust.GET("/login", authCtrl.LoginPage)
		cust.POST("/login", authCtrl.Login)
		cust.POST("/logout", authCtrl.Logout)
		cust.POST("/signup", authCtrl.Signup)
		cust.POST("/forgot-password", authCtrl.ForgotPassword)
		cust.GET("/reset-password/:token", authCtrl.CheckReset)
		cust.POST("/reset-password/:token", authCtrl.ResetPassword)
	}

	// Customer area
	client := api.Group("/client", customer)
	{
		client.GET("/profile", clientCtrl.Profile)
		client.GET("/orders", clientCtrl.Orders)
		client.GET("/orders/:id", clientCtrl.Order)
		client.GET("/orders/:id/receipt", clientCtrl.Receipt)
		client.GET("/wishlist", clientCtrl.Wishlist)
		client.POST("/settings", clientCtrl.Settings)
	}

	// Seller dashboard (seller/admin; ownership is checked per establishment)
	seller := api.Group("/seller", middlewares.AuthMiddleware(cfg, entity.RoleSeller, entity.RoleAdmin))
	{
		seller.GET("/dashboard", sellerCtrl.Dashboard)
		seller.GET("/products", sellerCtrl.Products)
		seller.POST("/products", sellerCtrl.CreateProduct)
		seller.GET("/products/:id", sellerCtrl.Product)
		seller.PATCH("/products/:id", sellerCtrl.UpdateProduct)
		seller.DELETE("/products/:id", sellerCtrl.DeleteProduct)
		seller.GET("/orders", sellerCtrl.Orders)
		seller.GET("/orders/:id", sellerCtrl.Order)
		seller.PATCH("/orders/:id/paid", sellerCtrl.MarkPaid)
		seller.PATCH("/orders/:id/deliver", sellerCtrl.Deliver)
		seller.PATCH("/orders/:id/cancel", sellerCtrl.Cancel)
		seller.GET("/establishment", sellerCtrl.Establishment)
		seller.PATCH("/establishment", sellerCtrl.UpdateEstablishment)
	}

	// Admin (admin only)
	admin := api.Group("/admin", middlewares.AuthMiddleware(cfg, entity.RoleAdmin))
	{
		admin.GET("/dashboard", adminCtrl.Dashboard)
		admin.GET("/coupons", adminCtrl.Coupons)
		admin.POST("/coupons", adminCtrl.CreateCoupon)
		admin.PATCH("/coupons/:id", adminCtrl.UpdateCoupon)
		admin.POST("/establishment-categories", adminCtrl.CreateEstablishmentCategory)
		admin.POST("/product-categories", adminCtrl.CreateProductCategory)
		admin.POST("/establishments", adminCtrl.CreateEstablishment)
		admin.GET("/contacts", adminCtrl.Contacts)
		admin.GET("/newsletter", adminCtrl.Subscribers)
	}

	// Live order feed for sellers
	r.GET("/ws/seller/orders", middlewares.WSAuthMiddleware(cfg.JWTSecret), hub.HandleWebSocket)

	return &App{Hub: hub, Auth: authSvc, Sessions: sessions}, nil
}
