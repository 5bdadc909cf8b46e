package routes

import (
	"errors"

	"estate-portal-server/logger"
	"estate-portal-server/services"
	"estate-portal-server/storage"
	"estate-portal-server/utils"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	propertySvc    *services.PropertyService
	statusSvc      *services.StatusService
	priceChangeSvc *services.PriceChangeService
	inviteSvc      *services.InviteService
	bookingSvc     *services.BookingService
	messageSvc     *services.MessageService
	viewingSvc     *services.ViewingService
	dashboardSvc   *services.DashboardService
	notifySvc      *services.NotificationService
)

// Initialize wires the workflow services onto the shared storage handles.
func Initialize(db *gorm.DB, cache *storage.ListingCache) {
	notifySvc = services.NewNotificationService(db)
	propertySvc = &services.PropertyService{DB: db, Cache: cache}
	statusSvc = &services.StatusService{DB: db, Cache: cache}
	priceChangeSvc = &services.PriceChangeService{DB: db, Cache: cache}
	inviteSvc = &services.InviteService{DB: db}
	bookingSvc = &services.BookingService{DB: db}
	messageSvc = &services.MessageService{DB: db, Notify: notifySvc}
	viewingSvc = &services.ViewingService{DB: db}
	dashboardSvc = &services.DashboardService{DB: db}
}

// Register mounts the API. verifier is the JWT middleware produced in main;
// public routes skip it, everything else layers it with the policy check.
func Register(app *iris.Application, verifier iris.Handler) {
	api := app.Party("/api")

	// public
	api.Get("/properties", ListProperties)
	api.Get("/properties/{id:uint}", GetProperty)
	api.Post("/invites/validate", ValidateInvite)
	api.Post("/auth/google", GoogleLoginOrSignUp)
	api.Post("/auth/apple", AppleLoginOrSignUp)

	// owner portal
	owner := api.Party("/", verifier)
	owner.Post("/properties", utils.RequireAction(utils.ActionPropertyCreate), CreateProperty)
	owner.Get("/user/properties", utils.UserIDFromTokenMiddleware, GetUserProperties)
	owner.Delete("/properties/{id:uint}", utils.UserIDFromTokenMiddleware, DeleteProperty)
	owner.Patch("/properties/{id:uint}/status", utils.RequireAction(utils.ActionPropertyStatusUpdate), UpdatePropertyStatus)
	owner.Patch("/properties/{id:uint}/bidding", utils.RequireAction(utils.ActionPropertyBiddingSet), UpdatePropertyBidding)
	owner.Post("/properties/{id:uint}/price-requests", utils.RequireAction(utils.ActionPriceRequestSubmit), SubmitPriceChangeRequest)

	// staff dashboard
	staff := api.Party("/", verifier)
	staff.Get("/price-requests", utils.RequireAction(utils.ActionPriceRequestList), ListPriceChangeRequests)
	staff.Patch("/price-requests/{id:uint}", utils.RequireAction(utils.ActionPriceRequestResolve), ResolvePriceChangeRequest)
	staff.Patch("/viewings/{id:uint}", utils.RequireAction(utils.ActionViewingUpdate), UpdateViewingStatus)
	staff.Get("/dashboard/stats", utils.RequireAction(utils.ActionDashboardView), GetDashboardStats)
	staff.Get("/dashboard/activity", utils.RequireAction(utils.ActionDashboardView), GetActivity)
	staff.Get("/dashboard/properties/{id:uint}/status-history", utils.RequireAction(utils.ActionDashboardView), GetStatusHistory)
	staff.Post("/invites", utils.RequireAction(utils.ActionDashboardView), CreateInvite)

	// shared authenticated
	auth := api.Party("/", verifier)
	auth.Post("/invites/use", utils.RequireAction(utils.ActionInviteUse), UseInvite)
	auth.Post("/bookings", utils.UserIDFromTokenMiddleware, CreateBooking)
	auth.Get("/bookings/{id:uint}/guests", utils.RequireAction(utils.ActionBookingGuestsManage), GetBookingGuests)
	auth.Post("/bookings/{id:uint}/guests", utils.RequireAction(utils.ActionBookingGuestsManage), CreateBookingGuests)
	auth.Get("/bookings/{id:uint}/messages", utils.RequireAction(utils.ActionBookingMessages), GetBookingMessages)
	auth.Post("/bookings/{id:uint}/messages", utils.RequireAction(utils.ActionBookingMessages), CreateBookingMessage)
	auth.Post("/viewings", utils.UserIDFromTokenMiddleware, CreateViewingRequest)
}

// handleServiceError maps workflow sentinels to the HTTP taxonomy. Anything
// unrecognized is logged and surfaces as a 500.
func handleServiceError(err error, ctx iris.Context) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.CreateNotFound(ctx)
	case errors.Is(err, services.ErrForbidden):
		utils.CreateForbidden(ctx)
	case errors.Is(err, services.ErrTerminal):
		utils.CreateError(iris.StatusBadRequest, "already_resolved", err.Error(), ctx)
	case errors.Is(err, services.ErrValidation):
		utils.CreateError(iris.StatusBadRequest, "validation_error", err.Error(), ctx)
	default:
		logger.GetLogger().Error("request failed",
			zap.String("path", ctx.Path()),
			zap.Error(err))
		utils.CreateInternalServerError(ctx)
	}
}
