package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/cycle-advisor/internal/domain/cycle"
	apperrors "github.com/yanqian/cycle-advisor/pkg/errors"
)

// Handler wires the HTTP transport to the cycle domain.
type Handler struct {
	cycleSvc cycle.Service
	logger   *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(cycleSvc cycle.Service, logger *slog.Logger) *Handler {
	return &Handler{
		cycleSvc: cycleSvc,
		logger:   logger.With("component", "http.handler"),
	}
}

// evaluateRequest is the wire shape of evaluate and timeline calls.
// last_date and target_date are accepted for older clients.
type evaluateRequest struct {
	StartDate    string      `json:"start_date"`
	ObservedDate string      `json:"observed_date"`
	LastDate     string      `json:"last_date"`
	TargetDate   string      `json:"target_date"`
	CycleLength  flexibleInt `json:"cycle_length"`
	MensesDays   flexibleInt `json:"menses_days"`
	Role         string      `json:"role"`
	Tone         string      `json:"tone"`
}

func (r evaluateRequest) toDomain() cycle.Request {
	return cycle.Request{
		StartDate:    firstNonEmpty(r.StartDate, r.LastDate),
		ObservedDate: firstNonEmpty(r.ObservedDate, r.TargetDate),
		CycleLength:  int(r.CycleLength),
		MensesDays:   int(r.MensesDays),
		Role:         r.Role,
		Tone:         r.Tone,
	}
}

var errNotNumber = errors.New("cycle_length and menses_days must be numbers")

// flexibleInt accepts JSON numbers, numeric strings, empty strings and null. Empty means unset.
type flexibleInt int

func (f *flexibleInt) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if bytes.Equal(raw, []byte("null")) {
		*f = 0
		return nil
	}
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return errNotNumber
		}
		raw = []byte(strings.TrimSpace(s))
		if len(raw) == 0 {
			*f = 0
			return nil
		}
	}
	n, err := strconv.Atoi(string(raw))
	if err != nil {
		return errNotNumber
	}
	*f = flexibleInt(n)
	return nil
}

// Evaluate returns phase, hormone profile, symptoms and advice for one observation.
func (h *Handler) Evaluate(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", bindMessage(err), err))
		return
	}

	resp, err := h.cycleSvc.Evaluate(c.Request.Context(), req.toDomain())
	if err != nil {
		abortWithError(c, domainError(err, "evaluate_failed"))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Timeline returns the per-day projection of the current cycle.
func (h *Handler) Timeline(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", bindMessage(err), err))
		return
	}

	resp, err := h.cycleSvc.Timeline(c.Request.Context(), req.toDomain())
	if err != nil {
		abortWithError(c, domainError(err, "timeline_failed"))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Status returns the flattened summary used by simple clients.
func (h *Handler) Status(c *gin.Context) {
	var req struct {
		StartDate string `json:"start_date"`
		LastDate  string `json:"last_date"`
		Gender    string `json:"gender"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", bindMessage(err), err))
		return
	}

	resp, err := h.cycleSvc.Status(c.Request.Context(), cycle.StatusRequest{
		StartDate: firstNonEmpty(req.StartDate, req.LastDate),
		Gender:    req.Gender,
	})
	if err != nil {
		abortWithError(c, domainError(err, "status_failed"))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Content describes the loaded advice library.
func (h *Handler) Content(c *gin.Context) {
	c.JSON(http.StatusOK, h.cycleSvc.Describe(c.Request.Context()))
}

// Health reports liveness together with the content version being served.
func (h *Handler) Health(c *gin.Context) {
	info := h.cycleSvc.Describe(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"status": "ok", "contentVersion": info.Version})
}

func domainError(err error, fallbackCode string) *HTTPError {
	if cycle.IsValidationError(err) {
		return NewHTTPError(http.StatusBadRequest, apperrors.CodeOf(err), apperrors.MessageOf(err), err)
	}
	return NewHTTPError(http.StatusInternalServerError, fallbackCode, "something went wrong", err)
}

func bindMessage(err error) string {
	if errors.Is(err, errNotNumber) {
		return errNotNumber.Error()
	}
	return "request body must be valid JSON"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
