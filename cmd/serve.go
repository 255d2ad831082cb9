package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/amirphl/Rentora/app/handlers"
	"github.com/amirphl/Rentora/app/middleware"
	"github.com/amirphl/Rentora/app/router"
	"github.com/amirphl/Rentora/app/services"
	businessflow "github.com/amirphl/Rentora/business_flow"
	"github.com/amirphl/Rentora/config"
	"github.com/amirphl/Rentora/migrations"
	"github.com/amirphl/Rentora/repository"
	"github.com/amirphl/Rentora/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Application represents the main application structure
type Application struct {
	router    router.Router
	config    *config.Config
	server    *fiber.App
	stopFuncs []func()
}

func newServeCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the admin HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, w, err := bootstrap()
			if err != nil {
				return err
			}
			if migrate {
				if err := migrateUp(cfg.Database); err != nil {
					return err
				}
			}
			return serve(cfg, w)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before starting")
	return cmd
}

func migrateUp(cfg config.DatabaseConfig) error {
	db, err := openMigrationDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	return migrations.Up(db)
}

func serve(cfg *config.Config, accessLog io.Writer) error {
	log.Info().
		Str("environment", cfg.Deployment.Environment).
		Str("version", cfg.Deployment.Version).
		Msg("starting " + utils.AppName)

	app, err := initializeApplication(cfg, accessLog)
	if err != nil {
		return err
	}
	defer func() {
		for _, fn := range app.stopFuncs {
			fn()
		}
	}()

	app.router.SetupRoutes()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- app.router.Start(cfg.Server.Address())
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server stopped: %w", err)
	case <-sigChan:
	}
	log.Info().Msg("shutting down gracefully")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}

	log.Info().Msg("server stopped")
	return nil
}

// initializeApplication initializes the main application components
func initializeApplication(cfg *config.Config, accessLog io.Writer) (*Application, error) {
	var stopFuncs []func()

	db, err := initializeDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	rc, err := initializeCache(cfg.Cache)
	if err != nil {
		return nil, err
	}

	revocations := services.NewMemoryRevocationStore()
	biddingCache := services.NewNoopBiddingConfigCache()
	if rc != nil {
		stopFuncs = append(stopFuncs, startCacheHealthMonitor(context.Background(), rc, cfg.Cache.HealthCheckInterval))
		stopFuncs = append(stopFuncs, func() {
			if err := rc.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close redis client")
			}
		})
		revocations = services.NewRedisRevocationStore(rc, cfg.Cache.RedisPrefix)
		biddingCache = services.NewRedisBiddingConfigCache(rc, cfg.Cache.RedisPrefix, cfg.Cache.DefaultTTL)
	} else {
		log.Warn().Msg("cache disabled: token revocations are kept in memory and bidding configs are read from the database")
	}

	publisher := services.NewNoopEventPublisher()
	if cfg.Events.Enabled {
		publisher = services.NewKafkaEventPublisher(cfg.Events.Brokers, cfg.Events.Topic, cfg.Events.WriteTimeout, cfg.Events.BatchTimeout)
		log.Info().Strs("brokers", cfg.Events.Brokers).Str("topic", cfg.Events.Topic).Msg("kafka event publisher enabled")
	}
	stopFuncs = append(stopFuncs, func() {
		if err := publisher.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close event publisher")
		}
	})

	var captchaSvc services.CaptchaService
	if cfg.Security.CaptchaEnabled {
		captchaSvc, err = services.NewCaptchaServiceRotate(utils.CaptchaTTL, cfg.Security.CaptchaPadding, cfg.Security.CaptchaImageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize captcha service: %w", err)
		}
		stopFuncs = append(stopFuncs, captchaSvc.Close)
	}

	tokenService, err := services.NewTokenService(
		cfg.JWT.AccessTokenTTL,
		cfg.JWT.RefreshTokenTTL,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
		cfg.JWT.UseRSAKeys,
		cfg.JWT.PrivateKey,
		cfg.JWT.PublicKey,
		cfg.JWT.SecretKey,
		revocations,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	log.Info().Str("issuer", cfg.JWT.Issuer).Str("audience", cfg.JWT.Audience).Msg("token service initialized")

	adminRepo := repository.NewAdminRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	biddingRepo := repository.NewBiddingConfigRepository(db)
	rateCardRepo := repository.NewRateCardRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	adminAuthFlow := businessflow.NewAdminAuthFlow(adminRepo, tokenService, captchaSvc, cfg.Security.CaptchaEnabled)
	companyFlow := businessflow.NewCompanyFlow(companyRepo)
	biddingFlow := businessflow.NewBiddingConfigFlow(companyRepo, biddingRepo, biddingCache, publisher)
	rateCardFlow := businessflow.NewRateCardFlow(companyRepo, rateCardRepo)
	bidFlow := businessflow.NewBidFlow(companyRepo, rateCardRepo, biddingRepo, biddingCache)
	bookingFlow := businessflow.NewBookingFlow(companyRepo, rateCardRepo, biddingRepo, bookingRepo, biddingCache, publisher)
	accountingFlow := businessflow.NewAccountingFlow(companyRepo, bookingRepo)

	handlers.RequestTimeout = cfg.Server.RequestTimeout

	appRouter := router.NewFiberRouter(cfg, router.Handlers{
		Auth:       handlers.NewAdminAuthHandler(adminAuthFlow),
		Company:    handlers.NewCompanyHandler(companyFlow),
		Bidding:    handlers.NewBiddingHandler(biddingFlow),
		RateCard:   handlers.NewRateCardHandler(rateCardFlow),
		Bid:        handlers.NewBidHandler(bidFlow),
		Booking:    handlers.NewBookingHandler(bookingFlow),
		Accounting: handlers.NewAccountingHandler(accountingFlow),
	}, middleware.NewAuthMiddleware(tokenService), accessLog)

	return &Application{
		router:    appRouter,
		config:    cfg,
		server:    appRouter.GetApp(),
		stopFuncs: stopFuncs,
	}, nil
}
