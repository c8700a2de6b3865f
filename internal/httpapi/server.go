package httpapi

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/huangsam/slotpulse/internal/contract"
)

const shutdownTimeout = 5 * time.Second

// NewApp wires the handler's routes into a fiber app.
func NewApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "slotpulse",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Get("/healthz", h.GetHealth)
	app.Get("/slots", h.GetSlots)
	app.Get("/heatmap", h.GetHeatmap)
	app.Get("/insights", h.GetInsights)
	app.Get("/stores", h.GetStores)
	app.Get("/daily", h.GetDaily)
	app.Get("/summary", h.GetSummary)
	return app
}

// Serve listens on cfg.Listen until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, cfg *contract.Config, src contract.RecordSource, mgr contract.CacheManager) error {
	app := NewApp(NewHandler(cfg, src, mgr))

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(cfg.Listen)
	}()
	fmt.Printf("🌐 Serving on http://%s\n", cfg.Listen)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server stopped: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
