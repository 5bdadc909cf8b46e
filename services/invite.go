package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"estate-portal-server/logger"
	"estate-portal-server/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InviteService validates and redeems owner invite codes.
type InviteService struct {
	DB *gorm.DB
}

// InviteValidation is the outcome of checking a code without redeeming it.
type InviteValidation struct {
	Valid bool   `json:"valid"`
	Role  string `json:"role,omitempty"`
	Error string `json:"error,omitempty"`
}

// Validate checks a code against the invite rules: active, under its use
// limit, and unexpired.
func (s *InviteService) Validate(code string) InviteValidation {
	if code == "" {
		return InviteValidation{Valid: false, Error: "code required"}
	}
	var invite models.OwnerInvite
	if err := s.DB.Where("code = ?", code).First(&invite).Error; err != nil {
		return InviteValidation{Valid: false, Error: "invalid code"}
	}
	if !invite.Usable(time.Now()) {
		return InviteValidation{Valid: false, Error: "code no longer usable"}
	}
	return InviteValidation{Valid: true, Role: invite.Role}
}

// Redeem grants the invite's role to the user and marks the invite used.
// Both effects happen in one transaction. Returns the granted role.
func (s *InviteService) Redeem(code string, userID uint) (string, error) {
	var invite models.OwnerInvite
	if err := s.DB.Where("code = ?", code).First(&invite).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: invalid invite code", ErrValidation)
		}
		return "", err
	}
	if !invite.Usable(time.Now()) {
		return "", fmt.Errorf("%w: invite code no longer usable", ErrValidation)
	}

	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Update("role", invite.Role).Error; err != nil {
			return err
		}
		limit := invite.UseLimit
		if limit <= 0 {
			limit = 1
		}
		// Increment guarded by the limit so two concurrent redemptions
		// cannot both consume the last use.
		res := tx.Model(&models.OwnerInvite{}).
			Where("id = ? AND used_count < ?", invite.ID, limit).
			Update("used_count", gorm.Expr("used_count + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: invite code no longer usable", ErrValidation)
		}
		meta, _ := json.Marshal(map[string]string{"code": invite.Code, "role": invite.Role})
		activity := models.OwnerActivityLog{
			UserID:      userID,
			Action:      models.ActionInviteRedeem,
			Description: fmt.Sprintf("invite redeemed, role elevated to %s", invite.Role),
			Metadata:    meta,
		}
		return tx.Create(&activity).Error
	})
	if err != nil {
		return "", err
	}
	return invite.Role, nil
}

// ApplyAfterSocialSignIn redeems an invite code after a third-party sign-up
// completes. Soft-fail policy: an invalid or absent code never blocks the
// authentication, the user just keeps the role they already have. Returns
// the user's final role.
func (s *InviteService) ApplyAfterSocialSignIn(userID uint, code string) string {
	current := models.RoleCustomer
	var user models.User
	if err := s.DB.First(&user, userID).Error; err == nil && user.Role != "" {
		current = user.Role
	}
	if code == "" {
		return current
	}
	role, err := s.Redeem(code, userID)
	if err != nil {
		logger.GetLogger().Info("invite code not applied on social sign-in",
			zap.Uint("userID", userID), zap.Error(err))
		return current
	}
	return role
}
