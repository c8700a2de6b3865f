// Package httpapi serves the engine's results as a read-only JSON API.
package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/huangsam/slotpulse/core"
	"github.com/huangsam/slotpulse/internal/contract"
	"github.com/huangsam/slotpulse/schema"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Handler answers report queries against one record source.
type Handler struct {
	baseCfg *contract.Config
	src     contract.RecordSource
	mgr     contract.CacheManager
	now     func() time.Time
}

// NewHandler returns a handler that clones baseCfg for every request.
func NewHandler(baseCfg *contract.Config, src contract.RecordSource, mgr contract.CacheManager) *Handler {
	return &Handler{baseCfg: baseCfg, src: src, mgr: mgr, now: time.Now}
}

// config applies the request's query parameters to a copy of the base config.
func (h *Handler) config(c *fiber.Ctx) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	err := contract.RevalidateQuery(cfg, contract.QueryOverrides{
		Stores:      c.Query("stores"),
		Start:       c.Query("start"),
		End:         c.Query("end"),
		Weekdays:    c.Query("weekdays"),
		Granularity: c.QueryInt("granularity", 0),
		ShiftTypes:  c.Query("shift_types"),
		Limit:       c.QueryInt("limit", 0),
	}, h.now())
	if err != nil {
		return nil, fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return cfg, nil
}

// GetSlots returns the per-slot productivity table with run totals.
func (h *Handler) GetSlots(c *fiber.Ctx) error {
	cfg, err := h.config(c)
	if err != nil {
		return err
	}
	report, _, err := core.GetReport(core.WithSuppressHeader(c.UserContext()), cfg, h.src, h.mgr)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(schema.SlotReport{
		Summary: report.Summary,
		Slots:   schema.EnrichSlots(report.Slots, cfg.Insight.LowThreshold, cfg.Insight.HighThreshold),
	})
}

// GetHeatmap returns the weekday by slot matrix.
func (h *Handler) GetHeatmap(c *fiber.Ctx) error {
	cfg, err := h.config(c)
	if err != nil {
		return err
	}
	hm, _, err := core.GetHeatmapResults(core.WithSuppressHeader(c.UserContext()), cfg, h.src, h.mgr)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(hm)
}

// GetInsights returns the staffing recommendations.
func (h *Handler) GetInsights(c *fiber.Ctx) error {
	cfg, err := h.config(c)
	if err != nil {
		return err
	}
	insights, _, err := core.GetInsightResults(core.WithSuppressHeader(c.UserContext()), cfg, h.src, h.mgr)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(insights)
}

// GetStores returns the stores ranked by monthly productivity.
func (h *Handler) GetStores(c *fiber.Ctx) error {
	cfg, err := h.config(c)
	if err != nil {
		return err
	}
	stores, _, err := core.GetStoreResults(core.WithSuppressHeader(c.UserContext()), cfg, h.src, h.mgr)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(schema.EnrichStores(stores, cfg.Insight.LowThreshold, cfg.Insight.HighThreshold))
}

// GetDaily returns the most recent calendar days, oldest first.
func (h *Handler) GetDaily(c *fiber.Ctx) error {
	cfg, err := h.config(c)
	if err != nil {
		return err
	}
	daily, _, err := core.GetDailyResults(core.WithSuppressHeader(c.UserContext()), cfg, h.src, h.mgr)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(daily)
}

// GetSummary returns the headline scalars and the drop counts of the run.
func (h *Handler) GetSummary(c *fiber.Ctx) error {
	cfg, err := h.config(c)
	if err != nil {
		return err
	}
	report, _, err := core.GetReport(core.WithSuppressHeader(c.UserContext()), cfg, h.src, h.mgr)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"summary": report.Summary,
		"filter":  report.Filter,
		"dropped": report.Dropped,
	})
}

// GetHealth reports whether the record source answers.
func (h *Handler) GetHealth(c *fiber.Ctx) error {
	version, err := h.src.DatasetVersion(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusServiceUnavailable, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"status":          "ok",
		"dataset_version": version,
	})
}

// errorHandler renders fiber errors with their message and hides any other failure.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if !errors.As(err, &fe) {
		contract.LogWarn("Request failed", err)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{Error: "internal_server_error"})
	}
	return c.Status(fe.Code).JSON(ErrorResponse{
		Error:   strings.ReplaceAll(strings.ToLower(http.StatusText(fe.Code)), " ", "_"),
		Message: fe.Message,
	})
}
