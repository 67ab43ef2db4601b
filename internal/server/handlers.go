package server

import (
	"encoding/json"
	"net/http"

	"github.com/fireplan/fireplan/internal/cache"
	"github.com/fireplan/fireplan/internal/config"
	"github.com/fireplan/fireplan/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// handleProjection runs (or serves from cache) a full projection for the
// posted plan. A plan without its own box order inherits the persisted one.
func (s *Server) handleProjection(c echo.Context) error {
	var plan domain.Plan
	if err := c.Bind(&plan); err != nil {
		return badRequest(c, "invalid plan payload: "+err.Error())
	}
	if len(plan.FireSettings.BoxOrder) == 0 && s.settings != nil {
		plan.FireSettings.BoxOrder = s.settings.BoxOrder(c.Request().Context())
	}
	parser := config.NewInputParser()
	if err := parser.ValidatePlan(&plan); err != nil {
		return badRequest(c, err.Error())
	}

	ctx := c.Request().Context()
	key, err := cache.PlanKey(&plan)
	if err == nil && s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			s.log.Debug().Str("key", key).Msg("projection cache hit")
			return c.JSONBlob(http.StatusOK, cached)
		}
	}

	result, err := s.engine.RunProjection(ctx, &plan)
	if err != nil {
		return badRequest(c, err.Error())
	}
	body, err := json.Marshal(result)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to encode result")
	}
	if key != "" && s.cache != nil {
		if err := s.cache.Set(ctx, key, body, resultTTL); err != nil {
			s.log.Warn().Err(err).Msg("failed to cache projection result")
		}
	}
	return c.JSONBlob(http.StatusOK, body)
}

// PayoffRequest is the body of POST /api/v1/payoff.
type PayoffRequest struct {
	Debts            []domain.Debt   `json:"debts"`
	ExtraMonthlyCash decimal.Decimal `json:"extraMonthlyCash"`
}

func (s *Server) handlePayoff(c echo.Context) error {
	var req PayoffRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payoff payload: "+err.Error())
	}
	if len(req.Debts) == 0 {
		return badRequest(c, "no debts provided")
	}

	ctx := c.Request().Context()
	key, keyErr := cache.PayoffKey(req.Debts, req.ExtraMonthlyCash.String())
	if keyErr == nil && s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			s.log.Debug().Str("key", key).Msg("payoff cache hit")
			return c.JSONBlob(http.StatusOK, cached)
		}
	}

	cmp, err := s.engine.ComparePayoff(ctx, req.Debts, req.ExtraMonthlyCash)
	if err != nil {
		return badRequest(c, err.Error())
	}
	body, err := json.Marshal(cmp)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to encode result")
	}
	if keyErr == nil && s.cache != nil {
		if err := s.cache.Set(ctx, key, body, resultTTL); err != nil {
			s.log.Warn().Err(err).Msg("failed to cache payoff result")
		}
	}
	return c.JSONBlob(http.StatusOK, body)
}

// BoxOrderResponse carries the persisted waterfall priority order.
type BoxOrderResponse struct {
	BoxOrder []string `json:"boxOrder"`
}

func (s *Server) handleGetBoxOrder(c echo.Context) error {
	if s.settings == nil {
		return c.JSON(http.StatusOK, BoxOrderResponse{BoxOrder: domain.DefaultBoxOrder()})
	}
	return c.JSON(http.StatusOK, BoxOrderResponse{BoxOrder: s.settings.BoxOrder(c.Request().Context())})
}

func (s *Server) handlePutBoxOrder(c echo.Context) error {
	if s.settings == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "settings store not configured")
	}
	var req BoxOrderResponse
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid box order payload: "+err.Error())
	}
	if err := s.settings.SaveBoxOrder(c.Request().Context(), req.BoxOrder); err != nil {
		return badRequest(c, err.Error())
	}
	return c.JSON(http.StatusOK, BoxOrderResponse{BoxOrder: req.BoxOrder})
}
