package routes

import (
	"estate-portal-server/metrics"
	"estate-portal-server/services"
	"estate-portal-server/utils"

	"github.com/kataras/iris/v12"
)

func CreateProperty(ctx iris.Context) {
	var input services.CreateInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if err := utils.Validate.Struct(input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	property, err := propertySvc.Create(utils.CallerID(ctx), input)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"property": property})
}

func GetUserProperties(ctx iris.Context) {
	properties, err := propertySvc.ListOwned(utils.CallerID(ctx))
	if err != nil {
		handleServiceError(err, ctx)
		return
	}
	ctx.JSON(iris.Map{"properties": properties})
}

// ListProperties is the public filtered search, paged.
func ListProperties(ctx iris.Context) {
	minPrice, _ := ctx.URLParamFloat64("minPrice")
	maxPrice, _ := ctx.URLParamFloat64("maxPrice")
	page, _ := ctx.URLParamInt("page")
	limit, _ := ctx.URLParamInt("limit")

	filter := services.ListingFilter{
		Status:       ctx.URLParam("status"),
		PropertyType: ctx.URLParam("type"),
		City:         ctx.URLParam("city"),
		MinPrice:     minPrice,
		MaxPrice:     maxPrice,
		Page:         page,
		Limit:        limit,
	}
	properties, total, err := propertySvc.ListPublic(filter)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}
	utils.JSONPage(ctx, properties, filter.PageOrFirst(), filter.PerPage(), total)
}

// GetProperty serves a single public listing through the cache.
func GetProperty(ctx iris.Context) {
	propertyID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "bad_request", "Invalid property id.", ctx)
		return
	}
	payload, err := propertySvc.GetPublic(ctx.Request().Context(), propertyID)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}
	ctx.ContentType("application/json")
	ctx.Write(payload)
}

func DeleteProperty(ctx iris.Context) {
	propertyID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "bad_request", "Invalid property id.", ctx)
		return
	}
	if err := propertySvc.Delete(utils.CallerID(ctx), propertyID); err != nil {
		handleServiceError(err, ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true})
}

type updateStatusInput struct {
	NewStatus string `json:"newStatus" validate:"required"`
}

// UpdatePropertyStatus applies an owner (or staff) status transition.
func UpdatePropertyStatus(ctx iris.Context) {
	propertyID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "bad_request", "Invalid property id.", ctx)
		return
	}
	var input updateStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if err := utils.Validate.Struct(input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	property, err := statusSvc.ChangeStatus(ctx.Request().Context(), utils.CallerID(ctx), utils.CallerRole(ctx), propertyID, input.NewStatus)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}
	metrics.StatusTransitions.WithLabelValues(input.NewStatus).Inc()
	ctx.JSON(iris.Map{"property": property})
}

type updateBiddingInput struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

func UpdatePropertyBidding(ctx iris.Context) {
	propertyID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "bad_request", "Invalid property id.", ctx)
		return
	}
	var input updateBiddingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if input.Enabled == nil {
		utils.CreateError(iris.StatusBadRequest, "validation_error", "enabled is required.", ctx)
		return
	}

	property, err := statusSvc.SetBidding(ctx.Request().Context(), utils.CallerID(ctx), propertyID, *input.Enabled)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}
	ctx.JSON(iris.Map{"property": property})
}
