package routes

import (
	"time"

	"estate-portal-server/models"
	"estate-portal-server/storage"
	"estate-portal-server/utils"

	"github.com/kataras/iris/v12"
)

type validateInviteInput struct {
	Code  string `json:"code" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

// ValidateInvite checks a code without consuming it, for the sign-up form.
func ValidateInvite(ctx iris.Context) {
	var input validateInviteInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if err := utils.Validate.Struct(input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	ctx.JSON(inviteSvc.Validate(input.Code))
}

type useInviteInput struct {
	Code string `json:"code" validate:"required"`
}

// UseInvite redeems a code for the authenticated caller.
func UseInvite(ctx iris.Context) {
	var input useInviteInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if err := utils.Validate.Struct(input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	role, err := inviteSvc.Redeem(input.Code, utils.CallerID(ctx))
	if err != nil {
		handleServiceError(err, ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true, "role": role})
}

type createInviteInput struct {
	Role           string `json:"role" validate:"required,oneof=owner agent"`
	UseLimit       int    `json:"useLimit"`
	ExpiresInHours int    `json:"expiresInHours"`
}

// CreateInvite mints a code granting the given role. Staff only.
func CreateInvite(ctx iris.Context) {
	var input createInviteInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if err := utils.Validate.Struct(input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var expiresAt *time.Time
	if input.ExpiresInHours > 0 {
		exp := time.Now().Add(time.Duration(input.ExpiresInHours) * time.Hour)
		expiresAt = &exp
	}
	useLimit := input.UseLimit
	if useLimit <= 0 {
		useLimit = 1
	}

	active := true
	invite := models.OwnerInvite{
		Code:      utils.GenerateShortToken(8),
		Role:      input.Role,
		IsActive:  &active,
		UseLimit:  useLimit,
		ExpiresAt: expiresAt,
	}
	if err := storage.DB.Create(&invite).Error; err != nil {
		handleServiceError(err, ctx)
		return
	}
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"invite": invite})
}
