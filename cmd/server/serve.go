package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	glog "github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/iliyamo/restaurant-ops/internal/config"
	"github.com/iliyamo/restaurant-ops/internal/database"
	"github.com/iliyamo/restaurant-ops/internal/handler"
	mw "github.com/iliyamo/restaurant-ops/internal/middleware"
	"github.com/iliyamo/restaurant-ops/internal/repository"
	"github.com/iliyamo/restaurant-ops/internal/router"
	"github.com/iliyamo/restaurant-ops/internal/service"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

// parseLevel maps LOG_LEVEL to a gommon level; unknown values mean info.
func parseLevel(s string) glog.Lvl {
	switch s {
	case "debug":
		return glog.DEBUG
	case "warn":
		return glog.WARN
	case "error":
		return glog.ERROR
	case "off":
		return glog.OFF
	}
	return glog.INFO
}

// app is everything the server needs, built from configuration.
type app struct {
	echo  *echo.Echo
	rdb   *redis.Client
	db    *sql.DB
	close func()
}

func buildApp(ctx context.Context, cfg config.Config) (*app, error) {
	seed, err := config.LoadSeed(cfg.SeedFile)
	if err != nil {
		return nil, err
	}
	tables, err := repository.NewTableRepo(seed.Tables)
	if err != nil {
		return nil, fmt.Errorf("seed tables: %w", err)
	}
	menu, err := repository.NewMenuRepo(seed.Menu)
	if err != nil {
		return nil, fmt.Errorf("seed menu: %w", err)
	}
	bookings := repository.NewBookingRepo(nil, nil)
	orders := repository.NewOrderRepo(nil, nil)

	a := &app{close: func() {}}

	var events service.Publisher = service.NopPublisher{}
	if cfg.EventsEnabled {
		events = service.NewRabbitPublisher(cfg.RabbitURL)
		log.Printf("events: publishing to RabbitMQ")
	}

	// Typed nils must not reach the handlers' optional interfaces.
	var bookingArchive handler.BookingArchiver
	var orderArchive handler.OrderArchiver
	if cfg.ArchiveEnabled {
		db, err := database.Open("mysql", database.MySQLDSN(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName))
		if err != nil {
			return nil, fmt.Errorf("open archive: %w", err)
		}
		archive := repository.NewArchiveRepo(db)
		if err := archive.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("archive schema: %w", err)
		}
		a.db = db
		bookingArchive, orderArchive = archive, archive
		log.Printf("archive: writing to mysql %s:%s/%s", cfg.DBHost, cfg.DBPort, cfg.DBName)
	}

	a.rdb = config.NewRedisClient(config.LoadRedisConfig())
	if a.rdb == nil {
		log.Printf("redis: unavailable, rate limiting and menu cache disabled")
	}
	cacheCfg := config.LoadCacheConfig()
	purge := func(ctx context.Context) error { return mw.PurgeCache(ctx, a.rdb, cacheCfg.Prefix) }

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(parseLevel(cfg.LogLevel))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			c.Logger().Infof("%s %s %d %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	router.RegisterRoutes(e, router.Handlers{
		Health:   handler.APIHealth(nil),
		Tables:   handler.NewTableHandler(tables),
		Menu:     handler.NewMenuHandler(menu, purge),
		Bookings: handler.NewBookingHandler(bookings, events, bookingArchive),
		Orders:   handler.NewOrderHandler(orders, menu, events, orderArchive),
		Stats:    handler.NewStatsHandler(service.NewStatsService(tables, bookings, orders)),
	},
		mw.NewTokenBucket(config.LoadRateLimitConfig(), a.rdb),
		mw.NewRedisCache(cacheCfg, a.rdb),
	)
	a.echo = e
	a.close = func() {
		if a.rdb != nil {
			_ = a.rdb.Close()
		}
		if a.db != nil {
			_ = a.db.Close()
		}
	}
	return a, nil
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	a, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	errc := make(chan error, 1)
	go func() { errc <- a.echo.Start(addr) }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return a.echo.Shutdown(shutdownCtx)
}
