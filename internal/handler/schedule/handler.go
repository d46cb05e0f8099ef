package schedule

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/jwalitptl/reception-gateway/internal/auth"
	"github.com/jwalitptl/reception-gateway/internal/middleware"
	"github.com/jwalitptl/reception-gateway/internal/model"
	"github.com/jwalitptl/reception-gateway/internal/upstream"
	"github.com/jwalitptl/reception-gateway/pkg/errors"
	"github.com/jwalitptl/reception-gateway/pkg/httputil"
)

// Directory is the slice of the upstream client the weekly grid needs.
type Directory interface {
	ListClinics(ctx context.Context, token string, q upstream.ClinicQuery) ([]model.Clinic, error)
	ListSchedules(ctx context.Context, token string, q upstream.ScheduleQuery) ([]model.Schedule, error)
}

// Config is the product-defined shaping of the weekly grid.
type Config struct {
	// ClinicCategoryIDs marks which clinic categories are physical rooms.
	ClinicCategoryIDs []int
	ClinicsPerPage    int
	SchedulesPerPage  int
}

// Handler serves the weekly-schedule aggregation endpoint: one response
// combining the clinic list and the schedule list for a week, pre-filtered
// and joined so the grid view needs a single round-trip.
type Handler struct {
	directory Directory
	resolver  *auth.Resolver
	cfg       Config
}

func NewHandler(directory Directory, resolver *auth.Resolver, cfg Config) *Handler {
	return &Handler{directory: directory, resolver: resolver, cfg: cfg}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	bff := r.Group("/bff")
	{
		bff.GET("/weekly-schedule", h.GetWeeklySchedule)
	}
}

type weeklyScheduleRequest struct {
	WeekStart string `form:"week_start" binding:"required,dateonly"`
	WeekEnd   string `form:"week_end" binding:"required,dateonly"`
}

type weeklyScheduleResponse struct {
	Clinics   []model.Clinic   `json:"clinics"`
	Schedules []model.Schedule `json:"schedules"`
}

func (h *Handler) GetWeeklySchedule(c *gin.Context) {
	// The credential is checked before the query parameters.
	token := h.resolver.Token(c.GetHeader("Authorization"))
	if token == "" {
		httputil.RespondWithError(c, errors.Unauthorized("missing token"))
		return
	}

	var req weeklyScheduleRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest("missing or invalid date range", err))
		return
	}

	active := true
	var (
		clinics   []model.Clinic
		schedules []model.Schedule
		schedErr  error
	)

	reqCtx := upstream.WithRequestID(c.Request.Context(), c.GetString(middleware.ContextRequestID))

	// Both reads run concurrently; they address independent resources.
	// A schedules failure is captured rather than returned so it cannot
	// cancel the clinics read: an empty grid beats no grid.
	g, ctx := errgroup.WithContext(reqCtx)
	g.Go(func() error {
		var err error
		clinics, err = h.directory.ListClinics(ctx, token, upstream.ClinicQuery{
			IsActive: &active,
			PerPage:  h.cfg.ClinicsPerPage,
		})
		return err
	})
	g.Go(func() error {
		schedules, schedErr = h.directory.ListSchedules(ctx, token, upstream.ScheduleQuery{
			FromDate: req.WeekStart,
			ToDate:   req.WeekEnd,
			PerPage:  h.cfg.SchedulesPerPage,
		})
		return nil
	})

	if err := g.Wait(); err != nil {
		// Without clinics there is no grid to build.
		httputil.RespondWithError(c, errors.UpstreamUnreachable("failed to load clinics", err))
		return
	}
	if schedErr != nil {
		log.Warn().
			Err(schedErr).
			Str("week_start", req.WeekStart).
			Str("week_end", req.WeekEnd).
			Msg("schedules fetch failed, serving empty schedule set")
		schedules = nil
	}

	filtered := filterClinics(clinics, h.cfg.ClinicCategoryIDs)
	joined := joinSchedules(schedules, filtered)

	httputil.RespondWithSuccess(c, weeklyScheduleResponse{
		Clinics:   filtered,
		Schedules: joined,
	})
}
