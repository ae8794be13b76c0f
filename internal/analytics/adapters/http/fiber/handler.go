package fiber

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"community-metrics-service/internal/analytics/core/domain"
	"community-metrics-service/internal/analytics/core/usecase"
	msgdomain "community-metrics-service/internal/messages/core/domain"
)

const (
	defaultChannelDays   = 30
	defaultRetentionDays = 7
)

type GetActiveUsersUseCase interface {
	Execute(ctx context.Context, in usecase.GetActiveUsersInput) (*domain.ActiveUsersReport, error)
}

type GetChannelActivityUseCase interface {
	Execute(ctx context.Context, in usecase.GetChannelActivityInput) (*domain.ChannelActivityReport, error)
}

type GetRetentionUseCase interface {
	Execute(ctx context.Context, in usecase.GetRetentionInput) (*domain.RetentionReport, error)
}

type GetUserGrowthUseCase interface {
	Execute(ctx context.Context) (*domain.UserGrowthReport, error)
}

type AnalyticsHandler struct {
	activeUsers GetActiveUsersUseCase
	channels    GetChannelActivityUseCase
	retention   GetRetentionUseCase
	growth      GetUserGrowthUseCase
	log         *zap.Logger
}

func NewAnalyticsHandler(
	activeUsers GetActiveUsersUseCase,
	channels GetChannelActivityUseCase,
	retention GetRetentionUseCase,
	growth GetUserGrowthUseCase,
	log *zap.Logger,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		activeUsers: activeUsers,
		channels:    channels,
		retention:   retention,
		growth:      growth,
		log:         log,
	}
}

// Register mounts every analytics route on r.
func (h *AnalyticsHandler) Register(r fiber.Router) {
	r.Get("/activity/:metric", h.GetActiveUsers)
	r.Get("/channels", h.GetChannelActivity)
	r.Get("/retention", h.GetRetention)
	r.Get("/users/growth", h.GetUserGrowth)
}

// GetActiveUsers godoc
// @Summary Daily or monthly active users
// @Description Gap-free daily series of distinct active authors (dau) or distinct authors active in the trailing 30 days (mau), with a 30-day trailing mean
// @Tags Activity
// @Produce json
// @Param metric path string true "dau | mau"
// @Success 200 {object} ActiveUsersResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /activity/{metric} [get]
func (h *AnalyticsHandler) GetActiveUsers(c *fiber.Ctx) error {
	res, err := h.activeUsers.Execute(c.UserContext(), usecase.GetActiveUsersInput{
		Metric: c.Params("metric"),
	})
	if err != nil {
		return h.writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(toActiveUsersResponse(res))
}

// GetChannelActivity godoc
// @Summary Channel activity ranking
// @Description Messages per channel over the trailing window with the most active member, plus the per-day timeline
// @Tags Channels
// @Produce json
// @Param days query string false "Lookback in days, or 'all'" default(30)
// @Success 200 {object} ChannelActivityResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /channels [get]
func (h *AnalyticsHandler) GetChannelActivity(c *fiber.Ctx) error {
	var days *int
	switch v := c.Query("days", ""); v {
	case "":
		d := defaultChannelDays
		days = &d
	case "all":
	default:
		d, err := strconv.Atoi(v)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_query",
				Message: "invalid 'days' parameter",
			})
		}
		days = &d
	}

	res, err := h.channels.Execute(c.UserContext(), usecase.GetChannelActivityInput{Days: days})
	if err != nil {
		return h.writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(toChannelActivityResponse(res))
}

// GetRetention godoc
// @Summary Cohort retention
// @Description An author is retained when they post again in the second retention period after joining; cohorts younger than two periods are excluded
// @Tags Retention
// @Produce json
// @Param retention_days query int false "Retention period in days" default(7)
// @Param cohort query string false "all | new | existing" default(all)
// @Param author query []string false "Restrict to these authors" collectionFormat(multi)
// @Param channel query []string false "Restrict to these channels" collectionFormat(multi)
// @Success 200 {object} RetentionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /retention [get]
func (h *AnalyticsHandler) GetRetention(c *fiber.Ctx) error {
	retentionDays := defaultRetentionDays
	if v := c.Query("retention_days", ""); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_query",
				Message: "invalid 'retention_days' parameter",
			})
		}
		retentionDays = d
	}

	in := usecase.GetRetentionInput{
		RetentionDays: retentionDays,
		Cohort:        c.Query("cohort", ""),
		Authors:       multiQuery(c, "author"),
		Channels:      multiQuery(c, "channel"),
	}

	res, err := h.retention.Execute(c.UserContext(), in)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(toRetentionResponse(res))
}

// GetUserGrowth godoc
// @Summary Community growth
// @Description Cumulative distinct authors by first message, and how many joined with a freshly created account
// @Tags Users
// @Produce json
// @Success 200 {object} UserGrowthResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/growth [get]
func (h *AnalyticsHandler) GetUserGrowth(c *fiber.Ctx) error {
	res, err := h.growth.Execute(c.UserContext())
	if err != nil {
		return h.writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(toUserGrowthResponse(res))
}

func (h *AnalyticsHandler) writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidMetric),
		errors.Is(err, domain.ErrInvalidDays),
		errors.Is(err, domain.ErrInvalidRetentionDays),
		errors.Is(err, domain.ErrInvalidCohort):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_query",
			Message: err.Error(),
		})
	case errors.Is(err, msgdomain.ErrDataFormat):
		h.log.Error("Snapshot is malformed", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "invalid_snapshot",
			Message: err.Error(),
		})
	default:
		h.log.Error("Analytics request failed", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}

// multiQuery returns every value of a repeated query parameter, or nil when
// the parameter is absent.
func multiQuery(c *fiber.Ctx, name string) []string {
	raw := c.Context().QueryArgs().PeekMulti(name)
	if len(raw) == 0 {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		out = append(out, string(v))
	}
	return out
}
