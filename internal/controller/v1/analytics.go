package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"roadwatch.dev/backend/internal/model/types"
	"roadwatch.dev/backend/internal/server/svr"
	"roadwatch.dev/backend/internal/service"
	"roadwatch.dev/backend/internal/util/rekuest"
)

type Analytics struct {
	fx.In

	AnalyticsService *service.Analytics
}

func RegisterAnalytics(v1 *svr.V1, c Analytics) {
	v1.Get("/analytics", c.GetStats)
}

// @Summary      Report Statistics
// @Description  Aggregated counts, daily buckets and top locations over a trailing day window.
// @Tags         Analytics
// @Produce      json
// @Param        days  query     int  false  "Trailing window in days (default 30, max 365)"
// @Success      200   {object}  v1.ReportStats
// @Failure      400   {object}  rwerr.RoadWatchError  "Invalid request"
// @Router       /api/v1/analytics [GET]
func (c *Analytics) GetStats(ctx *fiber.Ctx) error {
	var req types.AnalyticsRequest
	if err := rekuest.ValidQuery(ctx, &req); err != nil {
		return err
	}

	stats, err := c.AnalyticsService.GetStats(ctx.UserContext(), req.Days)
	if err != nil {
		return err
	}
	return ctx.JSON(stats)
}
