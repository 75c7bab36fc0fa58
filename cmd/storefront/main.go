package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/checkout/session"

	"github.com/artisanwoodcraft/storefront-go/internal/cart"
	"github.com/artisanwoodcraft/storefront-go/internal/catalog"
	"github.com/artisanwoodcraft/storefront-go/internal/checkout"
	"github.com/artisanwoodcraft/storefront-go/internal/config"
	"github.com/artisanwoodcraft/storefront-go/internal/db"
	"github.com/artisanwoodcraft/storefront-go/internal/events"
	httpapi "github.com/artisanwoodcraft/storefront-go/internal/http"
	"github.com/artisanwoodcraft/storefront-go/internal/mail"
	"github.com/artisanwoodcraft/storefront-go/internal/media"
	"github.com/artisanwoodcraft/storefront-go/internal/order"
	"github.com/artisanwoodcraft/storefront-go/internal/payments"
)

func main() {
	cfg := config.Load()
	logger := log.New(os.Stdout, "[storefront] ", log.LstdFlags|log.Lshortfile)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- DB ---
	pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
			logger.Fatalf("db migrate: %v", err)
		}
	}

	// --- image content store ---
	var images catalog.ImageUploader
	if cfg.MediaEndpoint != "" {
		client, err := media.NewClient(cfg.MediaEndpoint, cfg.MediaPublicBase, cfg.MediaBucket, cfg.MediaToken, cfg.UpstreamTimeout)
		if err != nil {
			logger.Fatalf("media client: %v", err)
		}
		images = client
	}

	// --- stores ---
	catalogStore := catalog.NewStore(catalog.NewPostgresRepository(pool), images)
	if err := catalogStore.Load(ctx); err != nil {
		logger.Fatalf("load catalog: %v", err)
	}

	orderStore := order.NewStore(order.NewPostgresRepository(pool))
	if err := orderStore.Load(ctx); err != nil {
		logger.Fatalf("load orders: %v", err)
	}

	carts := cart.NewStore()

	// --- email ---
	mailClient := mail.NewClient(cfg.ResendBaseURL, cfg.ResendAPIKey, cfg.UpstreamTimeout)
	notifier := mail.NewNotifier(mailClient, cfg.MailFrom, cfg.AdminEmail)

	// --- payment processor ---
	sessions := &session.Client{B: stripe.GetBackend(stripe.APIBackend), Key: cfg.StripeSecretKey}
	initiator := checkout.NewInitiator(sessions, checkout.Config{
		SuccessURL: cfg.CheckoutSuccessURL,
		CancelURL:  cfg.CheckoutCancelURL,
		Currency:   cfg.Currency,
		Timeout:    cfg.UpstreamTimeout,
	})

	// --- events (optional) ---
	var publisher payments.EventPublisher
	if cfg.RabbitURL != "" {
		conn := events.MustDialRabbit(cfg.RabbitURL)
		defer conn.Close()

		pub, err := events.NewPublisher(conn)
		if err != nil {
			logger.Fatalf("events publisher: %v", err)
		}
		defer pub.Close()
		publisher = pub
	}

	webhooks := payments.NewHandler(orderStore, notifier, publisher, cfg.StripeWebhookSecret, logger)

	// --- HTTP ---
	router := httpapi.NewRouter(httpapi.Handlers{
		Catalog:  httpapi.NewCatalogHandler(catalogStore),
		Cart:     httpapi.NewCartHandler(carts, catalogStore),
		Checkout: httpapi.NewCheckoutHandler(initiator, carts),
		Webhook:  httpapi.NewWebhookHandler(webhooks),
		Contact:  httpapi.NewContactHandler(notifier),
		Orders:   httpapi.NewOrderHandler(orderStore),
	}, cfg.AdminToken, cfg.CORSAllowOrigins)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("storefront listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Printf("shutdown signal: %s", sig)
	case err := <-errCh:
		logger.Printf("fatal error: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	cancel()

	logger.Printf("shutdown complete")
}
