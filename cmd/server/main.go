package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"pointify-pos/internal/auth"
	"pointify-pos/internal/cart"
	"pointify-pos/internal/config"
	"pointify-pos/internal/database"
	"pointify-pos/internal/handlers"
	"pointify-pos/internal/middleware"
	"pointify-pos/internal/reports"
	"pointify-pos/internal/sales"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()

	store, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}

	tokens := auth.NewJWTManager(cfg)
	carts := cart.NewManager(store)
	settler := sales.NewSettler(store)
	aggregator := reports.NewAggregator(store)
	h := handlers.New(store, tokens, carts, settler, aggregator)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CorsAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	middleware.InitMetrics()
	r.Use(middleware.PrometheusMiddleware())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })
	r.POST("/login", h.Login)

	// --- PROTECTED ROUTES ---
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(tokens))
	{
		api.POST("/logout", h.Logout)
		api.GET("/access/:view", h.CheckAccess)
		api.PUT("/profile", h.UpdateProfile)

		// POS floor: every authenticated role works the till
		pos := api.Group("/")
		pos.Use(middleware.RequireView(auth.ViewPOS))
		{
			pos.GET("/products", h.GetProducts)
			pos.GET("/products/scan/:barcode", h.ScanProduct)

			pos.GET("/cart", h.GetCart)
			pos.POST("/cart/lines", h.AddToCart)
			pos.PUT("/cart/lines/:id/qty", h.ChangeQty)
			pos.PUT("/cart/lines/:id/discount", h.ApplyDiscount)
			pos.DELETE("/cart/lines/:id", h.RemoveLine)
			pos.DELETE("/cart", h.ClearCart)

			pos.POST("/checkout", h.Checkout)
			pos.GET("/sales/:id/receipt", h.GetReceipt)
		}

		// Reports: scope is resolved per role inside the handler
		rpt := api.Group("/")
		rpt.Use(middleware.RequireView(auth.ViewReports))
		{
			rpt.GET("/reports", h.GetSalesReport)
			rpt.GET("/reports/export.csv", h.ExportSalesReport)
		}

		// Inventory management
		inv := api.Group("/")
		inv.Use(middleware.RequireView(auth.ViewInventory))
		{
			inv.POST("/products", h.AddProduct)
			inv.PUT("/products/:id", h.UpdateProduct)
			inv.DELETE("/products/:id", h.DeleteProduct)
			inv.GET("/products/low-stock", h.GetLowStock)
		}

		// Store settings + data management
		set := api.Group("/")
		set.Use(middleware.RequireView(auth.ViewSettings))
		{
			set.GET("/settings", h.GetSettings)
			set.PUT("/settings", h.UpdateSettings)
			set.GET("/backup", h.ExportBackup)
			set.POST("/backup", h.ImportBackup)
		}

		// Team management
		team := api.Group("/")
		team.Use(middleware.RequireView(auth.ViewUsers))
		{
			team.GET("/users", h.ListUsers)
			team.POST("/users", h.CreateUser)
			team.PUT("/users/:id", h.UpdateUser)
			team.DELETE("/users/:id", h.DeleteUser)
		}
	}

	// Daily automatic backup into the configured directory
	scheduler := gocron.NewScheduler(time.Local)
	scheduler.Every(1).Day().At(cfg.Backup.At).Do(func() {
		if err := writeBackup(store, cfg.Backup.Dir); err != nil {
			log.Println("Scheduled backup failed:", err)
		}
	})
	scheduler.StartAsync()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Println("Pointify POS starting on " + addr)
	if err := r.Run(addr); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}

// writeBackup snapshots all four collections to a timestamped file.
func writeBackup(store *database.Store, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := store.ExportAll()
	if err != nil {
		return err
	}
	name := filepath.Join(dir, "pointify-"+time.Now().Format("2006-01-02")+".json")
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return err
	}
	log.Println("Backup written to " + name)
	return nil
}
