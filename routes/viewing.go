package routes

import (
	"time"

	"estate-portal-server/models"
	"estate-portal-server/storage"
	"estate-portal-server/utils"

	"github.com/kataras/iris/v12"
)

type createViewingInput struct {
	PropertyID  uint       `json:"propertyID" validate:"required"`
	ScheduledAt *time.Time `json:"scheduledAt"`
	Notes       string     `json:"notes" validate:"lt=1024"`
}

func CreateViewingRequest(ctx iris.Context) {
	var input createViewingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if err := utils.Validate.Struct(input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var property models.Property
	if err := storage.DB.First(&property, input.PropertyID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	viewing := models.ViewingRequest{
		PropertyID:  property.ID,
		CustomerID:  utils.CallerID(ctx),
		ScheduledAt: input.ScheduledAt,
		Notes:       input.Notes,
		Status:      models.ViewingPending,
	}
	if err := storage.DB.Create(&viewing).Error; err != nil {
		handleServiceError(err, ctx)
		return
	}
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"viewing": viewing})
}

type updateViewingInput struct {
	Status string `json:"status" validate:"required,oneof=PENDING CONFIRMED CANCELLED COMPLETED"`
}

// UpdateViewingStatus advances a viewing request, stamping the acting staff
// member and time for the reached state.
func UpdateViewingStatus(ctx iris.Context) {
	viewingID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "bad_request", "Invalid viewing id.", ctx)
		return
	}
	var input updateViewingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if err := utils.Validate.Struct(input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	viewing, err := viewingSvc.UpdateStatus(viewingID, utils.CallerID(ctx), input.Status)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}
	ctx.JSON(iris.Map{"viewing": viewing})
}
