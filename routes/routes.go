package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amrkal/moringa-backend/configs"
	"github.com/amrkal/moringa-backend/controllers"
	"github.com/amrkal/moringa-backend/middlewares"
	"github.com/amrkal/moringa-backend/repository"
	"github.com/amrkal/moringa-backend/services"
	"github.com/amrkal/moringa-backend/ws"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(db)
	cartRepo := repository.NewCartRepository(db)
	mealRepo := repository.NewMealRepository(db)
	ingRepo := repository.NewIngredientRepository(db)
	catRepo := repository.NewCategoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	verifyRepo := repository.NewVerificationRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	// Notification hub
	hub := ws.NewNotificationHub()
	go hub.Run()

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	cartSvc := services.NewCartService(db, cartRepo, mealRepo, ingRepo)
	paySvc := services.NewPaymentService(
		db, orderRepo,
		services.NewStripeProcessor(cfg.StripeSecretKey),
		services.NewHTTPWalletProcessor(cfg.WalletProviderURL, cfg.WalletAPIKey),
		cfg.StripePublishableKey,
	)
	checkoutSvc := services.NewCheckoutService(db, orderRepo, cartRepo, settingsRepo, userRepo, paySvc, hub)
	orderSvc := services.NewOrderService(db, orderRepo)
	verifySvc := services.NewVerificationService(verifyRepo, userRepo, services.LogSender{}, cfg.VerificationTTL)
	settingsSvc := services.NewSettingsService(settingsRepo)
	mealSvc := services.NewMealService(mealRepo)
	ingSvc := services.NewIngredientService(ingRepo)
	catSvc := services.NewCategoryService(catRepo)
	reviewSvc := services.NewReviewService(reviewRepo, orderRepo)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	cartCtrl := controllers.NewCartController(cartSvc)
	orderCtrl := controllers.NewOrderController(checkoutSvc, orderSvc)
	payCtrl := controllers.NewPaymentController(checkoutSvc, paySvc)
	settingsCtrl := controllers.NewSettingsController(settingsSvc)
	mealCtrl := controllers.NewMealController(mealSvc)
	ingCtrl := controllers.NewIngredientController(ingSvc)
	catCtrl := controllers.NewCategoryController(catSvc)
	verifyCtrl := controllers.NewVerificationController(verifySvc)
	reviewCtrl := controllers.NewReviewController(reviewSvc)

	auth := middlewares.AuthMiddleware(cfg.JWTSecret)
	admin := middlewares.AuthMiddleware(cfg.JWTSecret, "admin")

	// Auth
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}
	aAuth := a.Group("", auth)
	{
		aAuth.GET("/me", authCtrl.Me)
		aAuth.PATCH("/me/phone", authCtrl.UpdatePhone)
	}

	// Public catalog + settings
	r.GET("/settings", settingsCtrl.Get)
	r.GET("/categories", catCtrl.List)
	r.GET("/meals", mealCtrl.List)
	r.GET("/meals/:id", mealCtrl.Detail)
	r.GET("/ingredients", ingCtrl.List)
	r.GET("/reviews", reviewCtrl.List)

	// Cart (customer)
	cart := r.Group("/cart", auth)
	{
		cart.GET("", cartCtrl.Get)
		cart.POST("/items", cartCtrl.Add)
		cart.PATCH("/items/:id/qty", cartCtrl.UpdateQty)
		cart.PUT("/items/:id/ingredients", cartCtrl.UpdateIngredients)
		cart.DELETE("/items/:id", cartCtrl.RemoveItem)
		cart.DELETE("", cartCtrl.Clear)
	}

	// Orders + payments (customer)
	u := r.Group("", auth)
	{
		u.POST("/orders", orderCtrl.Create)
		u.GET("/orders", orderCtrl.ListForMe)
		u.GET("/orders/:id", orderCtrl.Detail)
		u.POST("/orders/:id/payment/confirm", orderCtrl.ConfirmPayment)
		u.POST("/orders/:id/payment/cancel", orderCtrl.CancelPayment)

		u.GET("/payments/config", payCtrl.Config)
		u.POST("/payments/create-payment-intent", payCtrl.CreatePaymentIntent)
		u.POST("/payments/retry-wallet-push", payCtrl.RetryWalletPush)

		u.POST("/verification/send", verifyCtrl.Send)
		u.POST("/verification/verify", verifyCtrl.Verify)

		u.POST("/reviews", reviewCtrl.Create)
	}

	// Back-office
	adm := r.Group("/admin", admin)
	{
		adm.GET("/orders", orderCtrl.AdminList)
		adm.GET("/orders/:id", orderCtrl.AdminDetail)
	}
	r.PUT("/orders/:id", admin, orderCtrl.UpdateStatus)
	r.PUT("/settings", admin, settingsCtrl.Update)

	r.POST("/categories", admin, catCtrl.Create)
	r.PUT("/categories/:id", admin, catCtrl.Update)
	r.DELETE("/categories/:id", admin, catCtrl.Delete)

	r.POST("/meals", admin, mealCtrl.Create)
	r.PUT("/meals/:id", admin, mealCtrl.Update)
	r.DELETE("/meals/:id", admin, mealCtrl.Delete)
	r.PUT("/meals/:id/ingredients", admin, mealCtrl.SetIngredients)

	r.POST("/ingredients", admin, ingCtrl.Create)
	r.PUT("/ingredients/:id", admin, ingCtrl.Update)
	r.DELETE("/ingredients/:id", admin, ingCtrl.Delete)

	r.DELETE("/reviews/:id", admin, reviewCtrl.Delete)

	// Admin notification bell
	r.GET("/ws/notifications", middlewares.WSAuthMiddleware(cfg.JWTSecret), hub.Serve)
}
