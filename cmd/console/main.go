package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"go-registry-console/internal/config"
	"go-registry-console/internal/handlers"
	"go-registry-console/internal/logger"
	"go-registry-console/internal/middleware"
	"go-registry-console/internal/scan"
	"go-registry-console/internal/services"
	"go-registry-console/internal/session"
)

var (
	version    = "1.0.0"
	configPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "console",
		Short: "Web console for the device-registry catalog",
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.json", "path to the config file")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the console server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}

	rootCmd.AddCommand(serveCmd, versionCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve() error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.InitializeLogger(logger.LoggerConfig{
		Level:        logger.ParseLevel(cfg.Logging.Level),
		Service:      "registry-console",
		Version:      version,
		Environment:  gin.Mode(),
		OutputPath:   cfg.Logging.File,
		EnableCaller: cfg.Logging.EnableCaller,
	}); err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer logger.GlobalLogger.Close()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	publicBaseURL := cfg.Server.PublicBaseURL
	if publicBaseURL == "" {
		publicBaseURL = "http://" + addr
	}

	manager := session.NewManager(
		cfg.Registry.BaseURL,
		cfg.Registry.Timeout(),
		time.Duration(cfg.Security.TabIdleTimeout)*time.Second,
	)
	manager.StartCleanup(context.Background(), time.Duration(cfg.Security.CleanupInterval)*time.Second)

	barcodes := services.NewBarcodeService()
	pdfs := services.NewPDFService(cfg.Console.CatalogTitle)
	decoder := scan.NewDecoder()

	middleware.InitializePerformanceMonitor(2 * time.Second)

	router := gin.New()
	router.Use(handlers.GlobalErrorHandler())
	router.Use(logger.GlobalLogger.LoggingMiddleware())
	router.Use(middleware.GlobalPerformanceMonitor.PerformanceMiddleware())
	router.Use(middleware.HealthCheckMiddleware(middleware.GlobalPerformanceMonitor))
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CacheControlMiddleware())
	router.Use(middleware.RequestSizeLimitMiddleware(cfg.Console.MaxUploadSize))
	router.Use(middleware.TabMiddleware(manager))

	router.LoadHTMLGlob("web/templates/*.html")
	router.NoRoute(handlers.NotFoundHandler())

	auth := handlers.NewAuthHandler(manager)
	dashboard := handlers.NewDashboardHandler()
	devices := handlers.NewDeviceHandler(pdfs, barcodes)
	public := handlers.NewPublicHandler()
	qr := handlers.NewQRHandler(barcodes, decoder, publicBaseURL)

	router.GET("/", auth.Entry)
	router.GET("/login", auth.LoginForm)
	router.POST("/login", auth.Login)
	router.POST("/logout", auth.Logout)

	router.GET("/dashboard", dashboard.Dashboard)
	router.POST("/brand", dashboard.SetBrand)

	router.GET("/devices/new", devices.NewForm)
	router.POST("/devices", devices.Create)
	router.GET("/devices/form/subcategories", devices.Subcategories)
	router.GET("/devices/form/groups", devices.Groups)
	router.GET("/devices/:id/edit", devices.EditForm)
	router.POST("/devices/:id", devices.Update)
	router.POST("/devices/:id/delete", devices.Delete)
	router.GET("/devices/:id/pdf", devices.SpecSheet)
	router.GET("/devices/:id/label", devices.Label)
	router.GET("/devices/:id/qr", qr.DeviceQR)
	router.GET("/devices/:id/qr.png", qr.DeviceQRImage)
	router.GET("/devices/:id/manufacturer-qr", qr.ManufacturerQR)
	router.POST("/files/:id/delete", devices.DeleteFile)

	router.GET("/brand/qr", qr.BrandAccessQR)
	router.POST("/qr/scan", qr.ScanUpload)

	router.GET("/public/device/:uuid", public.DevicePage)
	router.GET("/public/file/:id/download", public.DownloadPrompt)
	router.POST("/public/file/:id/download", public.SubmitPassword)

	logger.GlobalLogger.LogSystemEvent("Console starting", map[string]interface{}{
		"addr":     addr,
		"registry": cfg.Registry.BaseURL,
	})
	return router.Run(addr)
}
