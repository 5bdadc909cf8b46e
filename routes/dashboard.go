package routes

import (
	"strings"
	"time"

	"estate-portal-server/services"
	"estate-portal-server/utils"

	"github.com/kataras/iris/v12"
)

func GetDashboardStats(ctx iris.Context) {
	stats, err := dashboardSvc.Stats()
	if err != nil {
		handleServiceError(err, ctx)
		return
	}
	ctx.JSON(stats)
}

// GetActivity serves filtered audit-trail entries for the dashboard feed.
// Query params: actions (comma separated), propertyID, days, limit.
func GetActivity(ctx iris.Context) {
	filter := services.AuditFilter{}
	if raw := ctx.URLParam("actions"); raw != "" {
		filter.Actions = strings.Split(raw, ",")
	}
	if propertyID, err := ctx.URLParamInt("propertyID"); err == nil && propertyID > 0 {
		filter.PropertyID = uint(propertyID)
	}
	if days, err := ctx.URLParamInt("days"); err == nil && days > 0 {
		filter.From = time.Now().AddDate(0, 0, -days)
	}
	filter.Limit, _ = ctx.URLParamInt("limit")

	entries, err := dashboardSvc.Activity(filter)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}
	ctx.JSON(iris.Map{"activity": entries})
}

func GetStatusHistory(ctx iris.Context) {
	propertyID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "bad_request", "Invalid property id.", ctx)
		return
	}
	entries, err := dashboardSvc.StatusHistory(propertyID)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}
	ctx.JSON(iris.Map{"history": entries})
}
