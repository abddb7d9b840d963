package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jcmexdev/bakehouse-storefront/internal/cart"
	cartsqlite "github.com/jcmexdev/bakehouse-storefront/internal/cart/sqlite"
	"github.com/jcmexdev/bakehouse-storefront/internal/catalog"
	"github.com/jcmexdev/bakehouse-storefront/internal/order"
	"github.com/jcmexdev/bakehouse-storefront/internal/order/auditlog"
	auditsqlite "github.com/jcmexdev/bakehouse-storefront/internal/order/auditlog/sqlite"
	"github.com/jcmexdev/bakehouse-storefront/internal/pkg/cache"
	"github.com/jcmexdev/bakehouse-storefront/internal/pkg/telemetry"
	"github.com/jcmexdev/bakehouse-storefront/internal/storefront/infra/httpx"
)

// defaultWebhookURL is the order collaborator fallback used when no
// environment override is present, read once at startup.
const defaultWebhookURL = "https://hook.us2.make.com/llodtafhm0mlig6bm4ykexbbkixq7l8y"

func main() {
	telemetry.InitLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.SetupTracer(ctx, getEnv("OTEL_SERVICE_NAME", "bakehouse-storefront"))
	if err != nil {
		slog.Error("failed to initialise tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	webhookURL := getEnv("WEBHOOK_BASE_URL", defaultWebhookURL)
	catalogURL := getEnv("CATALOG_BASE_URL", webhookURL)

	// Cart snapshots fail open: if the database cannot be opened the carts
	// live in memory for this process's lifetime instead of crashing the
	// storefront.
	var snapshots cart.Snapshots
	if repo, err := cartsqlite.Open(getEnv("CART_DB_PATH", "carts.db")); err != nil {
		slog.Warn("cart snapshot store unavailable, falling back to memory", "error", err)
		snapshots = cart.NewMemorySnapshots()
	} else {
		defer repo.Close()
		snapshots = repo
	}

	var audit auditlog.Repository
	if repo, err := auditsqlite.Open(getEnv("AUDIT_DB_PATH", "audit.db")); err != nil {
		slog.Warn("checkout audit log unavailable, auditing disabled", "error", err)
	} else {
		defer repo.Close()
		audit = repo
	}

	var source catalog.Source = catalog.NewClient(catalogURL)
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		source = catalog.NewCachedSource(source, cache.NewRedisCache(addr, "storefront"), time.Minute)
	}

	orders := order.NewClient(webhookURL)
	checkout := order.NewCheckout(orders, audit)
	carts := cart.NewRegistry(snapshots)

	handler := httpx.NewHandler(source, carts, checkout, orders)
	router := httpx.NewRouter(handler)

	srv := &http.Server{
		Addr:    ":" + getEnv("PORT", "8080"),
		Handler: otelhttp.NewHandler(router, "storefront"),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("http shutdown error", "error", err)
		}
	}()

	slog.Info("storefront running", "addr", srv.Addr, "webhook", webhookURL)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("http server failed", "error", err)
		os.Exit(1)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
