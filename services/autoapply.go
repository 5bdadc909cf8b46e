package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"estate-portal-server/logger"
	"estate-portal-server/models"
	"estate-portal-server/storage"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AutoApplySweeper moves PENDING price-change requests older than the
// configured threshold to AUTO_APPLIED and applies the proposed price.
// The threshold is configuration, not a hard-coded policy:
// PRICE_AUTOAPPLY_AFTER_HOURS, 0 or unset disables the sweep.
type AutoApplySweeper struct {
	DB    *gorm.DB
	Cache *storage.ListingCache
	After time.Duration
}

func NewAutoApplySweeper(db *gorm.DB, cache *storage.ListingCache) *AutoApplySweeper {
	var after time.Duration
	if raw := os.Getenv("PRICE_AUTOAPPLY_AFTER_HOURS"); raw != "" {
		if hours, err := strconv.Atoi(raw); err == nil && hours > 0 {
			after = time.Duration(hours) * time.Hour
		}
	}
	return &AutoApplySweeper{DB: db, Cache: cache, After: after}
}

// Schedule registers the sweep on the shared cron runner.
func (s *AutoApplySweeper) Schedule(c *cron.Cron) {
	if s.After <= 0 {
		logger.GetLogger().Info("price auto-apply disabled (PRICE_AUTOAPPLY_AFTER_HOURS not set)")
		return
	}
	c.AddFunc("@every 10m", func() {
		if n, err := s.Run(context.Background()); err != nil {
			logger.GetLogger().Error("auto-apply sweep failed", zap.Error(err))
		} else if n > 0 {
			logger.GetLogger().Info("auto-apply sweep finished", zap.Int("applied", n))
		}
	})
}

// Run applies every eligible request, each in its own transaction, and
// returns the number applied. A failure on one request does not stop the
// sweep.
func (s *AutoApplySweeper) Run(ctx context.Context) (int, error) {
	if s.After <= 0 {
		return 0, nil
	}
	cutoff := time.Now().Add(-s.After)

	var requests []models.PriceChangeRequest
	if err := s.DB.
		Where("status = ? AND created_at < ?", models.PriceRequestPending, cutoff).
		Find(&requests).Error; err != nil {
		return 0, err
	}

	applied := 0
	for _, request := range requests {
		request := request
		err := s.DB.Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&models.PriceChangeRequest{}).
				Where("id = ? AND status = ?", request.ID, models.PriceRequestPending).
				Updates(map[string]interface{}{
					"status":      models.PriceRequestAutoApplied,
					"resolved_at": time.Now(),
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrTerminal // resolved concurrently, skip
			}
			if err := tx.Model(&models.Property{}).
				Where("id = ?", request.PropertyID).
				Update("price", request.ProposedPrice).Error; err != nil {
				return err
			}
			meta, _ := json.Marshal(map[string]interface{}{
				"requestID": request.ID,
				"price":     request.ProposedPrice,
			})
			activity := models.OwnerActivityLog{
				UserID:      request.OwnerID,
				PropertyID:  &request.PropertyID,
				Action:      models.ActionPriceAutoApply,
				Description: fmt.Sprintf("price change request #%d auto-applied after threshold", request.ID),
				Metadata:    meta,
			}
			return tx.Create(&activity).Error
		})
		if err != nil {
			if err != ErrTerminal {
				logger.GetLogger().Error("auto-apply failed for request",
					zap.Uint("requestID", request.ID), zap.Error(err))
			}
			continue
		}
		s.Cache.Invalidate(ctx, request.PropertyID)
		applied++
	}
	return applied, nil
}
