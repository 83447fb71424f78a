package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/escriturashoy/escrituras-api/internal/entity"
)

// LeadCreatedEvent is the body published for every stored lead.
type LeadCreatedEvent struct {
	LeadID           string  `json:"lead_id"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	Phone            *string `json:"phone"`
	PropertyLocation string  `json:"property_location"`
	PropertyType     string  `json:"property_type"`
	Urgency          *string `json:"urgency"`
	CreatedAt        int64   `json:"created_at"`
}

func NewLeadCreatedEvent(l *entity.Lead) LeadCreatedEvent {
	return LeadCreatedEvent{
		LeadID:           l.ID,
		Name:             l.Name,
		Email:            l.Email,
		Phone:            l.Phone,
		PropertyLocation: l.PropertyLocation,
		PropertyType:     l.PropertyType,
		Urgency:          l.Urgency,
		CreatedAt:        l.CreatedAt,
	}
}

type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type LeadEventProducer struct {
	Ch Publisher
}

func NewLeadEventProducer(ch Publisher) *LeadEventProducer {
	return &LeadEventProducer{Ch: ch}
}

// NotifyLeadCreated publishes a persistent lead.created message.
func (p *LeadEventProducer) NotifyLeadCreated(ctx context.Context, lead *entity.Lead) error {
	body, err := json.Marshal(NewLeadCreatedEvent(lead))
	if err != nil {
		return fmt.Errorf("queue: encode lead event: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    lead.ID,
			Type:         RoutingKey,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("queue: publish lead %s: %w", lead.ID, err)
	}

	return nil
}
