package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/unievents/venue-booking-service/internal/models"
	"github.com/unievents/venue-booking-service/internal/repository"
)

// EmailPublisher queues an email for delivery; the mailer consumes the queue.
type EmailPublisher interface {
	Publish(routingKey string, payload any) error
}

// EmailMessage is the payload placed on the notification queue. Booking and
// maintenance emails share the envelope; RequestID is set only for the latter.
type EmailMessage struct {
	Template  string `json:"template"`
	To        string `json:"to"`
	BookingID uint   `json:"booking_id,omitempty"`
	RequestID uint   `json:"request_id,omitempty"`
	Title     string `json:"title"`
	Venue     string `json:"venue"`
	Reason    string `json:"reason,omitempty"`
}

// Notifier writes in-app notifications and audit entries and queues emails.
// Every method is best-effort: failures are logged and swallowed so a slow or
// broken sink can never roll back the state transition that triggered it.
type Notifier struct {
	notificationRepo repository.NotificationRepository
	auditRepo        repository.AuditLogRepository
	publisher        EmailPublisher
}

func New(
	notificationRepo repository.NotificationRepository,
	auditRepo repository.AuditLogRepository,
	publisher EmailPublisher,
) *Notifier {
	return &Notifier{
		notificationRepo: notificationRepo,
		auditRepo:        auditRepo,
		publisher:        publisher,
	}
}

var notificationTitles = map[models.NotificationType]string{
	models.NotifyNewBookingRequest:   "New Booking Request",
	models.NotifyBookingApproved:     "Booking Approved!",
	models.NotifyBookingRejected:     "Booking Rejected",
	models.NotifyBookingCancelled:    "Booking Cancelled",
	models.NotifyBookingCompleted:    "Event Completed",
	models.NotifyMaintenanceAssigned: "Maintenance Assigned",
	models.NotifyMaintenanceUpdated:  "Maintenance Updated",
}

// NotifyUser writes one in-app notification row for the user.
func (n *Notifier) NotifyUser(ctx context.Context, userID uint, typ models.NotificationType, booking *models.Booking) {
	verb := strings.TrimPrefix(string(typ), "booking_")
	row := &models.Notification{
		UserID:           userID,
		Type:             typ,
		Title:            notificationTitles[typ],
		Message:          fmt.Sprintf("Your booking for %s has been %s", booking.EventTitle, verb),
		RelatedBookingID: &booking.ID,
	}
	if typ == models.NotifyNewBookingRequest {
		venueName := ""
		if booking.Venue != nil {
			venueName = booking.Venue.Name
		}
		row.Message = fmt.Sprintf("New booking request for %s at %s", booking.EventTitle, venueName)
	}
	if err := n.notificationRepo.Create(ctx, row); err != nil {
		log.Printf("[Notifier] failed to write notification for user %d: %v", userID, err)
	}
}

// NotifyMaintenance writes an in-app notification for a maintenance request.
// Maintenance notifications carry no booking reference.
func (n *Notifier) NotifyMaintenance(ctx context.Context, userID uint, typ models.NotificationType, req *models.MaintenanceRequest, message string) {
	row := &models.Notification{
		UserID:  userID,
		Type:    typ,
		Title:   notificationTitles[typ],
		Message: message,
	}
	if row.Message == "" {
		row.Message = fmt.Sprintf("Maintenance request #%d: %s", req.ID, req.Title)
	}
	if err := n.notificationRepo.Create(ctx, row); err != nil {
		log.Printf("[Notifier] failed to write maintenance notification for user %d: %v", userID, err)
	}
}

// QueueMaintenanceEmail publishes a maintenance email message.
func (n *Notifier) QueueMaintenanceEmail(template, recipient string, req *models.MaintenanceRequest) {
	if n.publisher == nil {
		return
	}
	venueName := ""
	if req.Venue != nil {
		venueName = req.Venue.Name
	}
	msg := EmailMessage{
		Template:  template,
		To:        recipient,
		RequestID: req.ID,
		Title:     req.Title,
		Venue:     venueName,
	}
	if err := n.publisher.Publish("notification.email", msg); err != nil {
		log.Printf("[Notifier] failed to queue %s email to %s: %v", template, recipient, err)
	}
}

// QueueEmail publishes an email message; delivery happens in the mailer.
func (n *Notifier) QueueEmail(template, recipient string, booking *models.Booking, reason string) {
	if n.publisher == nil {
		return
	}
	venueName := ""
	if booking.Venue != nil {
		venueName = booking.Venue.Name
	}
	msg := EmailMessage{
		Template:  template,
		To:        recipient,
		BookingID: booking.ID,
		Title:     booking.EventTitle,
		Venue:     venueName,
		Reason:    reason,
	}
	if err := n.publisher.Publish("notification.email", msg); err != nil {
		log.Printf("[Notifier] failed to queue %s email to %s: %v", template, recipient, err)
	}
}

// Audit appends one audit log entry. Old and new snapshots are marshalled to
// JSON; a marshal failure drops the snapshot, never the entry.
func (n *Notifier) Audit(ctx context.Context, action models.AuditAction, subjectType string, subjectID uint, oldValues, newValues any, description string, actorID *uint) {
	entry := &models.AuditLog{
		EventID:     uuid.NewString(),
		Action:      action,
		SubjectType: subjectType,
		SubjectID:   subjectID,
		Description: description,
		ActorID:     actorID,
	}
	if oldValues != nil {
		if b, err := json.Marshal(oldValues); err == nil {
			entry.OldValues = b
		} else {
			log.Printf("[Notifier] failed to marshal old values for %s: %v", action, err)
		}
	}
	if newValues != nil {
		if b, err := json.Marshal(newValues); err == nil {
			entry.NewValues = b
		} else {
			log.Printf("[Notifier] failed to marshal new values for %s: %v", action, err)
		}
	}
	if err := n.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("[Notifier] failed to write audit entry %s for %s/%d: %v", action, subjectType, subjectID, err)
	}
}
