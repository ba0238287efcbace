package meta

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"roadwatch.dev/backend/internal/app/appconfig"
	"roadwatch.dev/backend/internal/constant"
	"roadwatch.dev/backend/internal/model"
	modelcache "roadwatch.dev/backend/internal/model/cache"
	"roadwatch.dev/backend/internal/model/types"
	"roadwatch.dev/backend/internal/pkg/middlewares"
	"roadwatch.dev/backend/internal/repo"
	"roadwatch.dev/backend/internal/server/svr"
	"roadwatch.dev/backend/internal/service"
	"roadwatch.dev/backend/internal/util/rekuest"
)

type AdminController struct {
	fx.In

	Conf             *appconfig.Config
	RejectRuleRepo   *repo.RejectRule
	ArchiveService   *service.Archive
	AnalyticsService *service.Analytics
}

func RegisterAdmin(admin *svr.Admin, c AdminController) {
	admin.Use(middlewares.AdminKeyAuth(c.Conf))

	admin.Post("/purge", c.PurgeCache)

	admin.Get("/rules", c.ListRejectRules)
	admin.Post("/rules", c.CreateRejectRule)
	admin.Delete("/rules/:id", c.DeactivateRejectRule)

	admin.Post("/refresh/analytics", c.RefreshAnalytics)
	admin.Post("/archive", c.TriggerArchive)
}

func (c *AdminController) PurgeCache(ctx *fiber.Ctx) error {
	var request types.PurgeCacheRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}
	return modelcache.Delete(request.Name, request.Key)
}

func (c *AdminController) ListRejectRules(ctx *fiber.Ctx) error {
	rules, err := c.RejectRuleRepo.GetAllActiveRejectRules(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(rules)
}

func (c *AdminController) CreateRejectRule(ctx *fiber.Ctx) error {
	var request types.CreateRejectRuleRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	now := time.Now()
	rule := &model.RejectRule{
		CreatedAt:       &now,
		UpdatedAt:       &now,
		Status:          constant.StatusActive,
		Expr:            request.Expr,
		WithReliability: request.WithReliability,
	}
	if err := c.RejectRuleRepo.CreateRejectRule(ctx.UserContext(), rule); err != nil {
		return err
	}
	if err := modelcache.RejectRules.Delete(); err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(rule)
}

func (c *AdminController) DeactivateRejectRule(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return err
	}
	if err := c.RejectRuleRepo.DeactivateRejectRule(ctx.UserContext(), id); err != nil {
		return err
	}
	if err := modelcache.RejectRules.Delete(); err != nil {
		return err
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *AdminController) RefreshAnalytics(ctx *fiber.Ctx) error {
	if err := c.AnalyticsService.RefreshStats(ctx.UserContext()); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"status": "ok",
	})
}

func (c *AdminController) TriggerArchive(ctx *fiber.Ctx) error {
	// archive everything resolved before today
	before := time.Now().UTC().Truncate(24 * time.Hour)
	if err := c.ArchiveService.ArchiveResolvedBefore(ctx.UserContext(), before); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"status": "ok",
	})
}
