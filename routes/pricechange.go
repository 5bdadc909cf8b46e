package routes

import (
	"estate-portal-server/metrics"
	"estate-portal-server/services"
	"estate-portal-server/utils"

	"github.com/kataras/iris/v12"
)

type submitPriceRequestInput struct {
	ProposedPrice float64 `json:"proposedPrice" validate:"required,gt=0"`
}

func SubmitPriceChangeRequest(ctx iris.Context) {
	propertyID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "bad_request", "Invalid property id.", ctx)
		return
	}
	var input submitPriceRequestInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if err := utils.Validate.Struct(input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	request, err := priceChangeSvc.Submit(utils.CallerID(ctx), propertyID, input.ProposedPrice)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"request": request})
}

// ListPriceChangeRequests serves the dashboard list plus the badge count.
func ListPriceChangeRequests(ctx iris.Context) {
	limit, _ := ctx.URLParamInt("limit")
	filter := services.RequestFilter{
		Status: ctx.URLParam("status"),
		Limit:  limit,
	}
	requests, pendingCount, err := priceChangeSvc.List(filter)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}
	ctx.JSON(iris.Map{"requests": requests, "pendingCount": pendingCount})
}

type resolvePriceRequestInput struct {
	Resolution string `json:"resolution" validate:"required,oneof=approve reject"`
	Reason     string `json:"reason"`
}

func ResolvePriceChangeRequest(ctx iris.Context) {
	requestID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "bad_request", "Invalid request id.", ctx)
		return
	}
	var input resolvePriceRequestInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if err := utils.Validate.Struct(input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	approve := input.Resolution == "approve"
	request, err := priceChangeSvc.Resolve(ctx.Request().Context(), utils.CallerID(ctx), requestID, approve, input.Reason)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}
	metrics.PriceRequestsResolved.WithLabelValues(request.Status).Inc()
	go notifySvc.SendPriceRequestResolvedNotification(request.OwnerID, request)
	ctx.JSON(iris.Map{"request": request})
}
