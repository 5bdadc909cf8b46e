package services

import (
	"context"
	"testing"
	"time"

	"estate-portal-server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitCreatesPendingRequest(t *testing.T) {
	db := openTestDB(t)
	owner := createUser(t, db, models.RoleOwner)
	property := createProperty(t, db, owner.ID, models.PropertyStatusActive, 400000)
	svc := &PriceChangeService{DB: db}

	request, err := svc.Submit(owner.ID, property.ID, 425000)
	require.NoError(t, err)
	assert.Equal(t, models.PriceRequestPending, request.Status)
	assert.Equal(t, 400000.0, request.OldPrice)
	assert.Equal(t, 425000.0, request.ProposedPrice)

	// submitting never touches the live price
	var fresh models.Property
	require.NoError(t, db.First(&fresh, property.ID).Error)
	assert.Equal(t, 400000.0, fresh.Price)

	var activity models.OwnerActivityLog
	require.NoError(t, db.Where("action = ?", models.ActionPriceRequest).First(&activity).Error)
	assert.Equal(t, owner.ID, activity.UserID)
}

func TestSubmitRejectsSecondPending(t *testing.T) {
	db := openTestDB(t)
	owner := createUser(t, db, models.RoleOwner)
	property := createProperty(t, db, owner.ID, models.PropertyStatusActive, 400000)
	svc := &PriceChangeService{DB: db}

	_, err := svc.Submit(owner.ID, property.ID, 425000)
	require.NoError(t, err)

	_, err = svc.Submit(owner.ID, property.ID, 430000)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSubmitGuards(t *testing.T) {
	db := openTestDB(t)
	owner := createUser(t, db, models.RoleOwner)
	stranger := createUser(t, db, models.RoleOwner)
	property := createProperty(t, db, owner.ID, models.PropertyStatusActive, 400000)
	svc := &PriceChangeService{DB: db}

	_, err := svc.Submit(owner.ID, property.ID, 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Submit(owner.ID, property.ID, -5)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Submit(stranger.ID, property.ID, 425000)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Submit(owner.ID, 9999, 425000)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveApproveAppliesPrice(t *testing.T) {
	db := openTestDB(t)
	owner := createUser(t, db, models.RoleOwner)
	admin := createUser(t, db, models.RoleAdmin)
	property := createProperty(t, db, owner.ID, models.PropertyStatusActive, 400000)
	svc := &PriceChangeService{DB: db}

	request, err := svc.Submit(owner.ID, property.ID, 425000)
	require.NoError(t, err)

	resolved, err := svc.Resolve(context.Background(), admin.ID, request.ID, true, "")
	require.NoError(t, err)
	assert.Equal(t, models.PriceRequestApproved, resolved.Status)
	require.NotNil(t, resolved.ResolvedByID)
	assert.Equal(t, admin.ID, *resolved.ResolvedByID)
	assert.NotNil(t, resolved.ResolvedAt)

	var fresh models.Property
	require.NoError(t, db.First(&fresh, property.ID).Error)
	assert.Equal(t, 425000.0, fresh.Price)
}

func TestResolveRejectLeavesPrice(t *testing.T) {
	db := openTestDB(t)
	owner := createUser(t, db, models.RoleOwner)
	admin := createUser(t, db, models.RoleAdmin)
	property := createProperty(t, db, owner.ID, models.PropertyStatusActive, 400000)
	svc := &PriceChangeService{DB: db}

	request, err := svc.Submit(owner.ID, property.ID, 425000)
	require.NoError(t, err)

	resolved, err := svc.Resolve(context.Background(), admin.ID, request.ID, false, "market moved")
	require.NoError(t, err)
	assert.Equal(t, models.PriceRequestRejected, resolved.Status)
	assert.Equal(t, "market moved", resolved.RejectionReason)

	var fresh models.Property
	require.NoError(t, db.First(&fresh, property.ID).Error)
	assert.Equal(t, 400000.0, fresh.Price)
}

func TestResolveTerminalIsImmutable(t *testing.T) {
	db := openTestDB(t)
	owner := createUser(t, db, models.RoleOwner)
	admin := createUser(t, db, models.RoleAdmin)
	property := createProperty(t, db, owner.ID, models.PropertyStatusActive, 400000)
	svc := &PriceChangeService{DB: db}

	request, err := svc.Submit(owner.ID, property.ID, 425000)
	require.NoError(t, err)

	_, err = svc.Resolve(context.Background(), admin.ID, request.ID, false, "no")
	require.NoError(t, err)

	// second resolution, even an approval, applies nothing
	_, err = svc.Resolve(context.Background(), admin.ID, request.ID, true, "")
	assert.ErrorIs(t, err, ErrTerminal)

	var fresh models.Property
	require.NoError(t, db.First(&fresh, property.ID).Error)
	assert.Equal(t, 400000.0, fresh.Price)

	var stored models.PriceChangeRequest
	require.NoError(t, db.First(&stored, request.ID).Error)
	assert.Equal(t, models.PriceRequestRejected, stored.Status)
}

func TestListFilterAndPendingCount(t *testing.T) {
	db := openTestDB(t)
	owner := createUser(t, db, models.RoleOwner)
	admin := createUser(t, db, models.RoleAdmin)
	first := createProperty(t, db, owner.ID, models.PropertyStatusActive, 400000)
	second := createProperty(t, db, owner.ID, models.PropertyStatusActive, 250000)
	svc := &PriceChangeService{DB: db}

	requestA, err := svc.Submit(owner.ID, first.ID, 425000)
	require.NoError(t, err)
	_, err = svc.Submit(owner.ID, second.ID, 260000)
	require.NoError(t, err)

	summaries, pendingCount, err := svc.List(RequestFilter{Status: models.PriceRequestPending})
	require.NoError(t, err)
	assert.Len(t, summaries, 2)
	assert.EqualValues(t, 2, pendingCount)
	listingNumbers := []string{summaries[0].ListingNumber, summaries[1].ListingNumber}
	assert.ElementsMatch(t, []string{first.ListingNumber, second.ListingNumber}, listingNumbers)
	assert.Contains(t, summaries[0].OwnerEmail, "@example.com")

	_, _, err = svc.List(RequestFilter{Status: "OPEN"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Resolve(context.Background(), admin.ID, requestA.ID, true, "")
	require.NoError(t, err)

	summaries, pendingCount, err = svc.List(RequestFilter{Status: models.PriceRequestPending})
	require.NoError(t, err)
	assert.Len(t, summaries, 1)
	assert.EqualValues(t, 1, pendingCount)
}

func TestAutoApplySweep(t *testing.T) {
	db := openTestDB(t)
	owner := createUser(t, db, models.RoleOwner)
	property := createProperty(t, db, owner.ID, models.PropertyStatusActive, 400000)
	stale := createProperty(t, db, owner.ID, models.PropertyStatusActive, 300000)
	priceSvc := &PriceChangeService{DB: db}

	// fresh request, must be left alone
	_, err := priceSvc.Submit(owner.ID, property.ID, 425000)
	require.NoError(t, err)

	// aged request past the threshold
	aged, err := priceSvc.Submit(owner.ID, stale.ID, 310000)
	require.NoError(t, err)
	backdated := time.Now().Add(-100 * time.Hour)
	require.NoError(t, db.Model(&models.PriceChangeRequest{}).
		Where("id = ?", aged.ID).
		UpdateColumn("created_at", backdated).Error)

	sweeper := &AutoApplySweeper{DB: db, After: 72 * time.Hour}
	applied, err := sweeper.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, applied)

	var stored models.PriceChangeRequest
	require.NoError(t, db.First(&stored, aged.ID).Error)
	assert.Equal(t, models.PriceRequestAutoApplied, stored.Status)
	assert.NotNil(t, stored.ResolvedAt)

	var freshProperty models.Property
	require.NoError(t, db.First(&freshProperty, stale.ID).Error)
	assert.Equal(t, 310000.0, freshProperty.Price)

	var activity models.OwnerActivityLog
	require.NoError(t, db.Where("action = ?", models.ActionPriceAutoApply).First(&activity).Error)
	assert.Equal(t, owner.ID, activity.UserID)

	// second sweep finds nothing eligible
	applied, err = sweeper.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, applied)
}

func TestAutoApplyDisabled(t *testing.T) {
	db := openTestDB(t)
	owner := createUser(t, db, models.RoleOwner)
	property := createProperty(t, db, owner.ID, models.PropertyStatusActive, 400000)
	priceSvc := &PriceChangeService{DB: db}

	request, err := priceSvc.Submit(owner.ID, property.ID, 425000)
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.PriceChangeRequest{}).
		Where("id = ?", request.ID).
		UpdateColumn("created_at", time.Now().Add(-1000*time.Hour)).Error)

	sweeper := &AutoApplySweeper{DB: db, After: 0}
	applied, err := sweeper.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, applied)

	var stored models.PriceChangeRequest
	require.NoError(t, db.First(&stored, request.ID).Error)
	assert.Equal(t, models.PriceRequestPending, stored.Status)
}
