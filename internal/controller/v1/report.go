package v1

import (
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gopkg.in/guregu/null.v3"

	"roadwatch.dev/backend/internal/constant"
	"roadwatch.dev/backend/internal/model"
	"roadwatch.dev/backend/internal/model/types"
	"roadwatch.dev/backend/internal/pkg/fiberstore"
	"roadwatch.dev/backend/internal/pkg/flog"
	"roadwatch.dev/backend/internal/pkg/middlewares"
	"roadwatch.dev/backend/internal/pkg/rwerr"
	"roadwatch.dev/backend/internal/server/svr"
	"roadwatch.dev/backend/internal/service"
	"roadwatch.dev/backend/internal/util/rekuest"
)

type Report struct {
	fx.In

	Redis         *redis.Client
	RedSync       *redsync.Redsync
	ReportService *service.Report
}

func RegisterReport(v1 *svr.V1, c Report) {
	v1.Post("/reports", middlewares.AcceptsJSON, middlewares.Idempotency(&middlewares.IdempotencyConfig{
		Lifetime:  constant.ReportIdempotencyLifetime,
		KeyHeader: constant.IdempotencyKeyHeader,
		KeepResponseHeaders: []string{
			fiber.HeaderContentType,
			fiber.HeaderContentLength,
		},
		Storage: fiberstore.NewRedis(c.Redis, constant.ReportIdempotencyRedisPrefix),
		RedSync: c.RedSync,
	}), c.Create)
	v1.Get("/reports", c.List)
	v1.Get("/reports/nearby", c.Nearby)
	v1.Get("/reports/clusters", c.Clusters)
	v1.Get("/reports/:id", c.GetByID)
	v1.Patch("/reports/:id/status", c.UpdateStatus)
	v1.Delete("/reports/:id", c.Delete)
}

// @Summary      Submit a Road Incident Report
// @Description  Submit a new report. Provide an `Idempotency-Key` header to make retries safe.
// @Tags         Report
// @Accept       json
// @Produce      json
// @Param        report  body      types.CreateReportRequest  true  "Report request"
// @Success      201     {object}  model.Report               "Report has been created"
// @Failure      400     {object}  rwerr.RoadWatchError       "Invalid or rejected request"
// @Failure      500     {object}  rwerr.RoadWatchError       "An unexpected error occurred"
// @Router       /api/v1/reports [POST]
func (c *Report) Create(ctx *fiber.Ctx) error {
	var req types.CreateReportRequest
	if err := rekuest.ValidBody(ctx, &req); err != nil {
		return err
	}

	report, err := c.ReportService.Submit(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	flog.InfoFrom(ctx).
		Str("evt.name", "report.created").
		Str("reportId", report.ReportID).
		Str("category", report.Category).
		Str("severity", report.Severity).
		Msg("report created")

	return ctx.Status(fiber.StatusCreated).JSON(report)
}

// @Summary      List Reports
// @Description  Browse reports with filtering, search, sorting and pagination.
// @Tags         Report
// @Produce      json
// @Param        category  query     string  false  "Filter by category"
// @Param        severity  query     string  false  "Filter by severity"
// @Param        status    query     string  false  "Filter by status"
// @Param        search    query     string  false  "Free-text search over title, description and location"
// @Success      200       {object}  v1.ReportList
// @Failure      400       {object}  rwerr.RoadWatchError  "Invalid request"
// @Router       /api/v1/reports [GET]
func (c *Report) List(ctx *fiber.Ctx) error {
	var req types.ReportFilterRequest
	if err := rekuest.ValidQuery(ctx, &req); err != nil {
		return err
	}

	queryCtx, err := filterToQueryContext(&req)
	if err != nil {
		return err
	}

	list, err := c.ReportService.List(ctx.UserContext(), queryCtx)
	if err != nil {
		return err
	}
	return ctx.JSON(list)
}

// @Summary      Get a Report
// @Tags         Report
// @Produce      json
// @Param        id   path      string  true  "Report ID"
// @Success      200  {object}  model.Report
// @Failure      404  {object}  rwerr.RoadWatchError  "Report not found"
// @Router       /api/v1/reports/{id} [GET]
func (c *Report) GetByID(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if err := rekuest.ValidVar(id, "required,uuid"); err != nil {
		return err
	}

	report, err := c.ReportService.GetByID(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(report)
}

// @Summary      Update Report Status
// @Description  Apply a status action (resolve, verify, reactivate) to a report.
// @Tags         Report
// @Accept       json
// @Produce      json
// @Param        id      path      string                           true  "Report ID"
// @Param        status  body      types.UpdateReportStatusRequest  true  "Status action"
// @Success      200     {object}  model.Report
// @Failure      404     {object}  rwerr.RoadWatchError  "Report not found"
// @Failure      409     {object}  rwerr.RoadWatchError  "Transition not allowed"
// @Router       /api/v1/reports/{id}/status [PATCH]
func (c *Report) UpdateStatus(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if err := rekuest.ValidVar(id, "required,uuid"); err != nil {
		return err
	}

	var req types.UpdateReportStatusRequest
	if err := rekuest.ValidBody(ctx, &req); err != nil {
		return err
	}

	report, err := c.ReportService.UpdateStatus(ctx.UserContext(), id, req.Action)
	if err != nil {
		return err
	}

	flog.InfoFrom(ctx).
		Str("evt.name", "report.status.updated").
		Str("reportId", report.ReportID).
		Str("status", report.Status).
		Msg("report status updated")

	return ctx.JSON(report)
}

// @Summary      Delete a Report
// @Description  Resolves the report. Reports are never hard-deleted.
// @Tags         Report
// @Param        id  path  string  true  "Report ID"
// @Success      204  "Report has been resolved"
// @Failure      404  {object}  rwerr.RoadWatchError  "Report not found"
// @Router       /api/v1/reports/{id} [DELETE]
func (c *Report) Delete(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if err := rekuest.ValidVar(id, "required,uuid"); err != nil {
		return err
	}

	if err := c.ReportService.Delete(ctx.UserContext(), id); err != nil {
		return err
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// @Summary      Nearby Reports
// @Description  Reports within a radius of a coordinate, closest first.
// @Tags         Report
// @Produce      json
// @Param        latitude   query     number  true   "Center latitude"
// @Param        longitude  query     number  true   "Center longitude"
// @Param        radiusKm   query     number  false  "Radius in kilometers (default 5, max 500)"
// @Success      200        {object}  v1.NearbyReports
// @Failure      400        {object}  rwerr.RoadWatchError  "Invalid request"
// @Router       /api/v1/reports/nearby [GET]
func (c *Report) Nearby(ctx *fiber.Ctx) error {
	var req types.NearbyRequest
	if err := rekuest.ValidQuery(ctx, &req); err != nil {
		return err
	}

	nearby, err := c.ReportService.Nearby(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(nearby)
}

// @Summary      Map Clusters
// @Description  Located reports bucketed into clusters for a map zoom level.
// @Tags         Report
// @Produce      json
// @Param        zoom  query     int  false  "Zoom level, 1 to 18"
// @Success      200   {object}  v1.ReportClusters
// @Router       /api/v1/reports/clusters [GET]
func (c *Report) Clusters(ctx *fiber.Ctx) error {
	var req types.ClustersRequest
	if err := rekuest.ValidQuery(ctx, &req); err != nil {
		return err
	}

	clusters, err := c.ReportService.Clusters(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(clusters)
}

func filterToQueryContext(req *types.ReportFilterRequest) (*model.ReportQueryContext, error) {
	queryCtx := &model.ReportQueryContext{
		Category: nullFromString(req.Category),
		Severity: nullFromString(req.Severity),
		Status:   nullFromString(req.Status),
		Search:   nullFromString(req.Search),
		SortBy:   req.SortBy,
		SortDesc: req.SortDesc,
		Limit:    req.Limit,
		Offset:   req.Offset,
	}

	if req.Since != "" {
		t, err := time.Parse(time.RFC3339, req.Since)
		if err != nil {
			return nil, rwerr.ErrInvalidReq.Msg("invalid since timestamp: %s", err)
		}
		queryCtx.Since = &t
	}
	if req.Until != "" {
		t, err := time.Parse(time.RFC3339, req.Until)
		if err != nil {
			return nil, rwerr.ErrInvalidReq.Msg("invalid until timestamp: %s", err)
		}
		queryCtx.Until = &t
	}

	return queryCtx, nil
}

func nullFromString(s string) null.String {
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}
