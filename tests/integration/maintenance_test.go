//go:build integration

package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unievents/venue-booking-service/internal/models"
	"github.com/unievents/venue-booking-service/internal/notifier"
	"github.com/unievents/venue-booking-service/internal/repository"
	"github.com/unievents/venue-booking-service/internal/service"
)

func newMaintenanceService() service.MaintenanceService {
	n := notifier.New(
		repository.NewNotificationRepository(testDB),
		repository.NewAuditLogRepository(testDB),
		nil, // no broker in integration tests, emails are skipped
	)
	return service.NewMaintenanceService(
		repository.NewMaintenanceRepository(testDB),
		repository.NewVenueRepository(testDB),
		repository.NewEquipmentRepository(testDB),
		repository.NewUserRepository(testDB),
		n,
	)
}

func createOpenRequest(t *testing.T, svc service.MaintenanceService, reporterID, venueID uint, priority models.MaintenancePriority) *models.MaintenanceRequest {
	t.Helper()
	req, err := svc.Create(t.Context(), service.CreateMaintenanceInput{
		ReportedBy:  reporterID,
		VenueID:     &venueID,
		Title:       "Projector flickering",
		Description: "The ceiling projector loses signal every few minutes",
		Priority:    priority,
	})
	require.NoError(t, err)
	require.Equal(t, models.MaintenanceOpen, req.Status)
	return req
}

func TestAssignMaintenanceNotifiesTechnician(t *testing.T) {
	cleanTables()
	svc := newMaintenanceService()
	reporter := createTestUser(t, models.RoleOrganizer)
	technician := createTestUser(t, models.RoleOrganizer)
	admin := createTestUser(t, models.RoleAdmin)
	venue := createTestVenue(t, "Lecture Hall B", nil)

	req := createOpenRequest(t, svc, reporter.ID, venue.ID, models.PriorityHigh)

	assigned, err := svc.Assign(t.Context(), req.ID, technician.ID, &admin.ID)
	require.NoError(t, err)
	require.NotNil(t, assigned.AssignedTo)
	assert.Equal(t, technician.ID, *assigned.AssignedTo)

	var rows []models.Notification
	require.NoError(t, testDB.
		Where("user_id = ? AND type = ?", technician.ID, models.NotifyMaintenanceAssigned).
		Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Contains(t, rows[0].Message, "assigned to you")

	open, err := svc.ListAssigned(t.Context(), technician.ID)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, req.ID, open[0].ID)
}

func TestMaintenanceStatusUpdateNotifiesAdmins(t *testing.T) {
	cleanTables()
	svc := newMaintenanceService()
	reporter := createTestUser(t, models.RoleOrganizer)
	admin := createTestUser(t, models.RoleAdmin)
	venue := createTestVenue(t, "Chemistry Lab", nil)

	req := createOpenRequest(t, svc, reporter.ID, venue.ID, models.PriorityMedium)

	notes := "Replaced the HDMI cable"
	updated, err := svc.UpdateStatus(t.Context(), req.ID, models.MaintenanceCompleted, &notes, &admin.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MaintenanceCompleted, updated.Status)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, notes, *updated.Notes)

	var rows []models.Notification
	require.NoError(t, testDB.
		Where("user_id = ? AND type = ?", admin.ID, models.NotifyMaintenanceUpdated).
		Find(&rows).Error)
	assert.Len(t, rows, 1)
}

func TestTerminalMaintenanceRequestIsFrozen(t *testing.T) {
	cleanTables()
	svc := newMaintenanceService()
	reporter := createTestUser(t, models.RoleOrganizer)
	technician := createTestUser(t, models.RoleOrganizer)
	venue := createTestVenue(t, "Sports Hall", nil)

	req := createOpenRequest(t, svc, reporter.ID, venue.ID, models.PriorityUrgent)

	_, err := svc.UpdateStatus(t.Context(), req.ID, models.MaintenanceCancelled, nil, nil)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(t.Context(), req.ID, models.MaintenanceInProgress, nil, nil)
	assert.ErrorIs(t, err, service.ErrInvalidStateTransition)

	_, err = svc.Assign(t.Context(), req.ID, technician.ID, nil)
	assert.ErrorIs(t, err, service.ErrInvalidStateTransition)

	current, err := svc.Get(t.Context(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MaintenanceCancelled, current.Status)
	assert.Nil(t, current.AssignedTo)
}

func TestMaintenanceListOrdersByPriority(t *testing.T) {
	cleanTables()
	svc := newMaintenanceService()
	reporter := createTestUser(t, models.RoleOrganizer)
	venue := createTestVenue(t, "Library Annex", nil)

	createOpenRequest(t, svc, reporter.ID, venue.ID, models.PriorityLow)
	createOpenRequest(t, svc, reporter.ID, venue.ID, models.PriorityUrgent)
	createOpenRequest(t, svc, reporter.ID, venue.ID, models.PriorityMedium)

	reqs, err := svc.List(t.Context(), repository.MaintenanceFilter{})
	require.NoError(t, err)
	require.Len(t, reqs, 3)
	assert.Equal(t, models.PriorityUrgent, reqs[0].Priority)
	assert.Equal(t, models.PriorityMedium, reqs[1].Priority)
	assert.Equal(t, models.PriorityLow, reqs[2].Priority)
}
