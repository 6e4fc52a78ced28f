package mailer

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/unievents/venue-booking-service/internal/notifier"
)

type Consumer struct {
	sender Sender
}

func NewConsumer(sender Sender) *Consumer {
	return &Consumer{sender: sender}
}

// Start drains queued email messages and hands them to the sender.
func (c *Consumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			c.handleMessage(msg)
		}
		log.Println("[Mailer] channel closed, stopping consumer")
	}()
}

func (c *Consumer) handleMessage(msg amqp.Delivery) {
	var email notifier.EmailMessage
	if err := json.Unmarshal(msg.Body, &email); err != nil {
		log.Printf("[Mailer] failed to unmarshal: %v", err)
		msg.Nack(false, false)
		return
	}

	if err := c.sender.Send(email); err != nil {
		log.Printf("[Mailer] failed to send %s to %s: %v", email.Template, email.To, err)
		msg.Nack(false, true) // requeue
		return
	}

	log.Printf("[Mailer] sent %s email to %s (booking %d)", email.Template, email.To, email.BookingID)
	msg.Ack(false)
}
