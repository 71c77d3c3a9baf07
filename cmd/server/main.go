package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/sblake94/plugin-gui-designer/internal/api"
	"github.com/sblake94/plugin-gui-designer/internal/config"
	"github.com/sblake94/plugin-gui-designer/internal/models"
	"github.com/sblake94/plugin-gui-designer/internal/notify"
	"github.com/sblake94/plugin-gui-designer/internal/palette"
	"github.com/sblake94/plugin-gui-designer/internal/render"
	"github.com/sblake94/plugin-gui-designer/internal/session"
	"github.com/sblake94/plugin-gui-designer/internal/store"
	"github.com/sblake94/plugin-gui-designer/internal/web"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Get the executable's directory for config resolution
	exePath, err := os.Executable()
	if err != nil {
		fmt.Printf("Failed to get executable path: %v\n", err)
		os.Exit(1)
	}
	exeDir := filepath.Dir(exePath)

	// Load XML configuration
	configPath := filepath.Join(exeDir, "PluginGuiDesigner.exe.config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Printf("Failed to create directories: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg.Advanced.LogLevel)

	// Check if running in embedded mode (frontend built into binary)
	embeddedMode := web.HasEmbeddedFiles()

	// Design persistence
	designStore, err := store.New(cfg.GetDatabasePath())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open design store")
	}
	defer designStore.Close()

	// Palette: built-in catalog, optionally replaced from disk
	pal := palette.Default()
	if cfg.Storage.PaletteFile != "" {
		f, err := os.Open(cfg.Storage.PaletteFile)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Storage.PaletteFile).Msg("failed to open palette file")
		}
		pal, err = palette.Load(f)
		f.Close()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to parse palette file")
		}
	}

	// Outbound creation events, disabled when no endpoint is configured
	notifier := notify.New(cfg.Designer.CreateEventEndpoint, log)

	defaults := models.CanvasConfig{
		Width:              cfg.Designer.CanvasWidth,
		Height:             cfg.Designer.CanvasHeight,
		BackgroundColor:    cfg.Designer.CanvasBackground,
		PluginName:         cfg.Designer.PluginName,
		PluginManufacturer: cfg.Designer.PluginManufacturer,
		GridSize:           cfg.Designer.GridSize,
		ShowGrid:           cfg.Designer.ShowGrid,
	}
	sessionMgr := session.NewManager(defaults, notifier, log)

	// Background session cleanup
	go func() {
		ticker := time.NewTicker(time.Duration(cfg.Designer.CleanupIntervalMinutes) * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			sessionMgr.CleanupOldSessions(time.Duration(cfg.Designer.SessionTimeoutMinutes) * time.Minute)
		}
	}()

	renderer := render.New()
	h := api.NewHandler(sessionMgr, renderer, designStore, pal, Version, log)
	wsHandler := api.NewWebSocketHandler(sessionMgr, renderer, cfg.Advanced.WebSocketMaxMessageSize, log)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = api.ErrorHandler

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			if !cfg.Advanced.EnableRequestLogging {
				return true
			}
			path := c.Request().URL.Path
			return path == "/health" || strings.HasSuffix(path, "/frame")
		},
	}))

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 1024 * 4,
	}))

	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	if cfg.Server.EnableCORS {
		origins := strings.Split(cfg.Server.AllowOrigins, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		if len(origins) == 0 || (len(origins) == 1 && origins[0] == "") {
			origins = []string{"*"}
		}
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: origins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}

	api.RegisterRoutes(e, h, wsHandler)

	if embeddedMode {
		if err := web.RegisterStaticRoutes(e); err != nil {
			log.Warn().Err(err).Msg("failed to register static routes")
		} else {
			log.Info().Msg("serving embedded frontend from binary")
		}
	}

	s := &http.Server{
		Addr:         cfg.GetServerAddr(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	mode := "Development"
	if embeddedMode {
		mode = "Air-Gapped (Embedded)"
	}

	fmt.Printf("\n")
	fmt.Printf("╔═══════════════════════════════════════════════════════════╗\n")
	fmt.Printf("║           Plugin GUI Designer Server                      ║\n")
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Version:    %-45s║\n", Version)
	fmt.Printf("║  Build Time: %-45s║\n", BuildTime)
	fmt.Printf("║  Mode:       %-45s║\n", mode)
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Config:    %-46s║\n", configPath)
	fmt.Printf("║  Listen:    http://%-38s║\n", cfg.GetServerAddr())
	fmt.Printf("║  Data Dir:  %-46s║\n", cfg.GetDataDir())
	fmt.Printf("╚═══════════════════════════════════════════════════════════╝\n")
	fmt.Printf("\n")

	if embeddedMode {
		fmt.Printf("Open http://localhost:%d in your browser\n\n", cfg.Server.Port)
	}

	e.Logger.Fatal(e.StartServer(s))
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).
		With().Timestamp().Logger()
}
