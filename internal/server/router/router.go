package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/labeltracker/internal/server/handlers"
)

// Handlers groups everything the HTTP surface needs.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Inventory *handlers.InventoryHandler
	Users     *handlers.UsersHandler
	System    *handlers.SystemHandler
	Sync      *handlers.SyncHandler
	Session   gin.HandlerFunc
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	api.GET("/auth/bootstrap", h.Auth.Bootstrap)
	api.POST("/auth/setup", h.Auth.Setup)
	api.POST("/auth/login", h.Auth.Login)

	// Peer nodes push their full snapshot here.
	api.POST("/sync", h.Sync.Receive)

	authed := api.Group("")
	authed.Use(h.Session)

	authed.POST("/auth/logout", h.Auth.Logout)
	authed.GET("/state", h.Inventory.State)

	authed.POST("/products", h.Inventory.CreateProduct)
	authed.PUT("/products/:id", h.Inventory.UpdateProduct)
	authed.DELETE("/products/:id", h.Inventory.DeleteProduct)

	authed.POST("/orders", h.Inventory.CreateOrder)
	authed.DELETE("/orders/:id", h.Inventory.DeleteOrder)

	authed.POST("/shipments", h.Inventory.AddShipment)
	authed.PUT("/shipments/:id/status", h.Inventory.UpdateShipmentStatus)

	authed.POST("/users", h.Users.CreateUser)
	authed.PUT("/users/:id", h.Users.UpdateUser)
	authed.DELETE("/users/:id", h.Users.DeleteUser)
	authed.POST("/groups", h.Users.SaveGroup)
	authed.DELETE("/groups/:id", h.Users.DeleteGroup)

	authed.GET("/system/config", h.System.GetConfig)
	authed.PUT("/system/config", h.System.PutConfig)
	authed.GET("/system/export", h.System.Export)
	authed.POST("/system/import", h.System.Import)
	authed.POST("/system/sync", h.System.Sync)
	authed.POST("/system/reset", h.System.Reset)

	authed.GET("/reports/summary", h.System.ReportSummary)
	authed.GET("/insights", h.System.Insights)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
