package mailer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/unievents/venue-booking-service/internal/notifier"
)

// Sender delivers one email. Implementations are fire-and-forget from the
// service's point of view; the consumer decides whether to requeue.
type Sender interface {
	Send(msg notifier.EmailMessage) error
}

var subjects = map[string]string{
	"booking_request_received": "New venue booking request",
	"booking_approved":         "Your venue booking was approved",
	"booking_rejected":         "Your venue booking was rejected",
	"booking_completed":        "Thanks for your event",
	"maintenance_assigned":     "Maintenance request assigned to you",
}

func renderBody(msg notifier.EmailMessage) string {
	switch msg.Template {
	case "booking_approved":
		return fmt.Sprintf("Your booking #%d (%s) at %s has been approved.", msg.BookingID, msg.Title, msg.Venue)
	case "booking_rejected":
		return fmt.Sprintf("Your booking #%d (%s) was rejected. Reason: %s", msg.BookingID, msg.Title, msg.Reason)
	case "booking_request_received":
		return fmt.Sprintf("A new booking request #%d (%s) for %s is awaiting review.", msg.BookingID, msg.Title, msg.Venue)
	case "maintenance_assigned":
		if msg.Venue != "" {
			return fmt.Sprintf("Maintenance request #%d (%s) at %s has been assigned to you.", msg.RequestID, msg.Title, msg.Venue)
		}
		return fmt.Sprintf("Maintenance request #%d (%s) has been assigned to you.", msg.RequestID, msg.Title)
	default:
		return fmt.Sprintf("Update for booking #%d (%s).", msg.BookingID, msg.Title)
	}
}

// APISender posts emails to an HTTP email API (Resend-compatible).
type APISender struct {
	url    string
	apiKey string
	from   string
	client *http.Client
}

func NewAPISender(url, apiKey, from string) *APISender {
	return &APISender{
		url:    url,
		apiKey: apiKey,
		from:   from,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *APISender) Send(msg notifier.EmailMessage) error {
	payload := map[string]any{
		"from":    s.from,
		"to":      []string{msg.To},
		"subject": subjects[msg.Template],
		"text":    renderBody(msg),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("email API returned status %d", resp.StatusCode)
	}
	return nil
}

// LogSender writes emails to the log instead of delivering them. Default for
// local runs where no email API is configured.
type LogSender struct{}

func (LogSender) Send(msg notifier.EmailMessage) error {
	log.Printf("[Mailer] (log driver) to=%s template=%s booking=%d", msg.To, msg.Template, msg.BookingID)
	return nil
}
