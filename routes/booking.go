package routes

import (
	"time"

	"estate-portal-server/models"
	"estate-portal-server/services"
	"estate-portal-server/storage"
	"estate-portal-server/utils"

	"github.com/kataras/iris/v12"
)

type createBookingInput struct {
	PropertyID uint      `json:"propertyID" validate:"required"`
	CheckIn    time.Time `json:"checkIn" validate:"required"`
	CheckOut   time.Time `json:"checkOut" validate:"required"`
	Adults     int       `json:"adults" validate:"required,gt=0"`
	Children   int       `json:"children" validate:"gte=0"`
}

func CreateBooking(ctx iris.Context) {
	var input createBookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if err := utils.Validate.Struct(input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if !input.CheckOut.After(input.CheckIn) {
		utils.CreateError(iris.StatusBadRequest, "validation_error", "checkOut must be after checkIn.", ctx)
		return
	}

	var property models.Property
	if err := storage.DB.First(&property, input.PropertyID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	booking := models.RentalBooking{
		PropertyID: property.ID,
		CustomerID: utils.CallerID(ctx),
		CheckIn:    input.CheckIn,
		CheckOut:   input.CheckOut,
		Adults:     input.Adults,
		Children:   input.Children,
		Status:     models.BookingStatusPending,
	}
	if err := storage.DB.Create(&booking).Error; err != nil {
		handleServiceError(err, ctx)
		return
	}
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"booking": booking})
}

func GetBookingGuests(ctx iris.Context) {
	bookingID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "bad_request", "Invalid booking id.", ctx)
		return
	}
	guests, err := bookingSvc.ListGuests(bookingID, utils.CallerID(ctx), utils.CallerRole(ctx))
	if err != nil {
		handleServiceError(err, ctx)
		return
	}
	ctx.JSON(iris.Map{"guests": guests})
}

type createGuestsInput struct {
	Guests []services.GuestInput `json:"guests"`
}

// CreateBookingGuests accepts explicit guest rows or, with an empty list,
// synthesizes slots from the booking's adult/child counts.
func CreateBookingGuests(ctx iris.Context) {
	bookingID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "bad_request", "Invalid booking id.", ctx)
		return
	}
	var input createGuestsInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	guests, err := bookingSvc.CreateGuests(bookingID, utils.CallerID(ctx), utils.CallerRole(ctx), input.Guests)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"guests": guests})
}

// GetBookingMessages returns the thread and, as a side effect, marks the
// other party's messages read for this viewer.
func GetBookingMessages(ctx iris.Context) {
	bookingID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "bad_request", "Invalid booking id.", ctx)
		return
	}
	messages, err := messageSvc.ListAndMarkRead(bookingID, utils.CallerID(ctx), utils.CallerRole(ctx))
	if err != nil {
		handleServiceError(err, ctx)
		return
	}
	ctx.JSON(iris.Map{"messages": messages})
}

type createMessageInput struct {
	Body string `json:"body" validate:"required,lt=5000"`
	Role string `json:"role" validate:"omitempty,oneof=customer agent"`
}

func CreateBookingMessage(ctx iris.Context) {
	bookingID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "bad_request", "Invalid booking id.", ctx)
		return
	}
	var input createMessageInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if err := utils.Validate.Struct(input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	message, err := messageSvc.Post(bookingID, utils.CallerID(ctx), utils.CallerRole(ctx), input.Role, input.Body)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"message": message})
}
