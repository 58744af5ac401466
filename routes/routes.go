package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"shuno-backend/controllers"
	"shuno-backend/metrics"
	"shuno-backend/middleware"
	"shuno-backend/store"
	"shuno-backend/utils"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// Deps carries the controller instances and shared pieces the router wires
// together.
type Deps struct {
	Auth         *controllers.AuthController
	Products     *controllers.ProductController
	Orders       *controllers.OrderController
	PricePeriods *controllers.PricePeriodController
	Users        *controllers.UserController
	Settings     *controllers.SettingsController
	Reports      *controllers.ReportController

	Tokens   store.TokenStore
	Secret   string
	Reporter *metrics.ErrorReporter
	Logger   zerolog.Logger
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(gin.Recovery())
	r.Use(middleware.Metrics(d.Reporter))

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "X-Csrf-Token"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := middleware.RequireAuth(d.Secret, d.Tokens)
	admin := middleware.RequireAdmin()
	csrf := middleware.CSRF(d.Tokens)

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		api.GET("/csrf-token", d.Auth.CSRFToken)

		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", d.Auth.Register)
			authRoutes.POST("/login", middleware.RateLimit(1, 5), d.Auth.Login)
			authRoutes.POST("/refresh-token", d.Auth.RefreshToken)
			authRoutes.POST("/rotate-token", d.Auth.RotateToken)
			authRoutes.POST("/logout", auth, d.Auth.Logout)
			authRoutes.POST("/revoke-token", auth, admin, d.Auth.RevokeToken)
		}

		products := api.Group("/products")
		{
			products.GET("", d.Products.GetProducts)
			products.GET("/:id", d.Products.GetProduct)
			products.GET("/location/:location", d.Products.GetByLocation)

			products.GET("/admin", auth, admin, d.Products.GetAdminProducts)
			products.POST("", auth, admin, csrf, d.Products.CreateProduct)
			products.PUT("/:id", auth, admin, csrf, d.Products.UpdateProduct)
			products.DELETE("/:id", auth, admin, csrf, d.Products.DeleteProduct)
		}

		orders := api.Group("/orders", auth, csrf)
		{
			orders.GET("", admin, d.Orders.GetOrders)
			orders.GET("/my-bookings", d.Orders.GetMyBookings)
			orders.GET("/:id", d.Orders.GetOrder)
			orders.POST("", d.Orders.CreateOrder)
			orders.POST("/create-payment-intent", d.Orders.CreatePaymentIntent)
			orders.PUT("/:id", admin, d.Orders.UpdateOrder)
			orders.DELETE("/:id", admin, d.Orders.DeleteOrder)
		}

		periods := api.Group("/price-periods")
		{
			periods.GET("/product/:productId/calculate", d.PricePeriods.Calculate)

			periods.GET("", auth, admin, d.PricePeriods.GetPeriods)
			periods.GET("/:id", auth, admin, d.PricePeriods.GetPeriod)
			periods.POST("", auth, admin, csrf, d.PricePeriods.CreatePeriod)
			periods.PUT("/:id", auth, admin, csrf, d.PricePeriods.UpdatePeriod)
			periods.DELETE("/:id", auth, admin, csrf, d.PricePeriods.DeletePeriod)
		}

		users := api.Group("/users", auth, csrf)
		{
			users.GET("/profile", d.Users.GetProfile)
			users.PUT("/profile", d.Users.UpdateProfile)

			users.GET("", admin, d.Users.GetUsers)
			users.GET("/:id", admin, d.Users.GetUser)
			users.PUT("/:id", admin, d.Users.UpdateUser)
		}

		settings := api.Group("/settings")
		{
			settings.GET("", d.Settings.GetSettings)
			settings.PUT("", auth, admin, csrf, d.Settings.UpdateSettings)
			settings.GET("/auto-confirm", auth, admin, d.Settings.GetAutoConfirm)
			settings.PUT("/auto-confirm", auth, admin, csrf, d.Settings.UpdateAutoConfirm)
			settings.POST("/auto-confirm/trigger", auth, admin, csrf, d.Settings.TriggerAutoConfirm)
		}

		contacts := api.Group("/contacts")
		{
			contacts.POST("", middleware.RateLimit(0.5, 3), controllers.SubmitContact)
			contacts.GET("", auth, admin, controllers.GetContacts)
			contacts.DELETE("/:id", auth, admin, csrf, controllers.DeleteContact)
		}

		reports := api.Group("/reports", auth, admin)
		{
			reports.GET("/revenue", d.Reports.GetRevenue)
			reports.GET("/revenue/export", d.Reports.ExportRevenue)
		}

		adminRoutes := api.Group("/admin", auth, admin)
		{
			adminRoutes.GET("/errors", func(c *gin.Context) {
				utils.JSONSuccess(c, http.StatusOK, d.Reporter.Metrics())
			})
			adminRoutes.DELETE("/errors", csrf, func(c *gin.Context) {
				d.Reporter.Reset()
				utils.JSONMessage(c, http.StatusOK, "error metrics reset")
			})
		}
	}

	return r
}
