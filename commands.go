package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"cooldeal/configs"
	"cooldeal/repository"
	"cooldeal/routes"
	"cooldeal/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			if err := configs.SeedAdmin(db, cfg, logger); err != nil {
				return fmt.Errorf("seed admin: %w", err)
			}

			if !cfg.IsDevelopment() {
				gin.SetMode(gin.ReleaseMode)
			}
			r := gin.New()
			r.Use(gin.Recovery())

			app, err := routes.RegisterRoutes(r, routes.Deps{
				Cfg:      cfg,
				DB:       db,
				Log:      logger,
				Gateway:  paymentGateway(),
				Mailer:   mailer(),
				Renderer: &services.RodRenderer{Bin: cfg.ChromeBin},
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			go app.Hub.Run(ctx)
			go app.Auth.RunTokenCleaner(ctx, cfg.TokenCleanInterval)
			go cleanSessions(ctx, app.Sessions, cfg.TokenCleanInterval)

			srv := &http.Server{
				Addr:              ":" + cfg.Port,
				Handler:           r,
				ReadHeaderTimeout: 10 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				logger.Info("server running", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}
			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

func paymentGateway() services.PaymentGateway {
	if cfg.CinetPayAPIKey != "" && cfg.CinetPaySiteID != "" {
		return services.NewCinetPayGateway(cfg.CinetPayAPIKey, cfg.CinetPaySiteID, cfg.CinetPayBaseURL)
	}
	logger.Warn("CinetPay not configured, payments are accepted locally")
	return services.LocalGateway{}
}

func mailer() services.Mailer {
	if cfg.SMTPHost == "" {
		logger.Warn("SMTP not configured, mails go to the log")
		return &services.LogMailer{Log: logger}
	}
	return &services.SMTPMailer{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
	}
}

func cleanSessions(ctx context.Context, repo *repository.SessionRepository, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.DeleteExpired(time.Now())
			if err != nil {
				logger.Error("clean sessions", zap.Error(err))
				continue
			}
			logger.Debug("expired sessions removed", zap.Int64("count", n))
		}
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := openDB(); err != nil {
				return err
			}
			logger.Info("database migrated", zap.String("driver", cfg.DBDriver))
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	var path string
	c := &cobra.Command{
		Use:   "seed",
		Short: "Load site content, categories, cities and coupons from YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			if path == "" {
				path = cfg.Fixtures
			}
			fx, err := configs.LoadFixtures(path)
			if err != nil {
				return err
			}
			if err := configs.SeedFixtures(db, fx, logger); err != nil {
				return err
			}
			return configs.SeedAdmin(db, cfg, logger)
		},
	}
	c.Flags().StringVarP(&path, "file", "f", "", "fixtures file (default: FIXTURES or the embedded set)")
	return c
}

func cleanTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean-tokens",
		Short: "Delete expired password reset tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			auth := services.NewAuthService(db,
				repository.NewUserRepository(db),
				repository.NewCustomerRepository(db),
				repository.NewTokenRepository(db),
				repository.NewSessionRepository(db),
				&services.LogMailer{Log: logger}, logger,
				cfg.JWTSecret, cfg.JWTTTL, cfg.PublicURL)
			_, err = auth.CleanExpiredTokens()
			return err
		},
	}
}
