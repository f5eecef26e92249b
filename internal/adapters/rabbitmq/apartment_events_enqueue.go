package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"listings-service/internal/contextkeys"
	"listings-service/internal/contracts"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"
	"listings-service/pkg/rabbitmq/rabbitmq_producer"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ApartmentCreatedDTO - тело события apartment.created.
// Формат зафиксирован схемой contracts/schemas/events/apartment_created.json.
type ApartmentCreatedDTO struct {
	ID          string    `json:"id"`
	UnitName    string    `json:"unitName"`
	UnitNumber  string    `json:"unitNumber"`
	Project     string    `json:"project"`
	Price       *float64  `json:"price,omitempty"`
	Bedrooms    *int      `json:"bedrooms,omitempty"`
	Bathrooms   *int      `json:"bathrooms,omitempty"`
	Area        *float64  `json:"area,omitempty"`
	Floor       *int      `json:"floor,omitempty"`
	IsAvailable bool      `json:"isAvailable"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ApartmentEventsAdapter struct {
	producer   *rabbitmq_producer.Publisher
	routingKey string
}

func NewApartmentEventsAdapter(producer *rabbitmq_producer.Publisher, routingKey string) (*ApartmentEventsAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("rabbitmq adapter: routingKey cannot be empty")
	}
	return &ApartmentEventsAdapter{
		producer:   producer,
		routingKey: routingKey,
	}, nil
}

// PublishApartmentCreated публикует событие о созданной квартире.
// Перед отправкой тело проверяется по схеме контракта, чтобы несовместимое
// изменение формата было поймано у отправителя, а не у потребителей.
func (a *ApartmentEventsAdapter) PublishApartmentCreated(ctx context.Context, apartment *domain.Apartment) error {
	logger := contextkeys.LoggerFromContext(ctx)
	adapterLogger := logger.WithFields(port.Fields{
		"component":    "ApartmentEventsAdapter",
		"routing_key":  a.routingKey,
		"apartment_id": apartment.ID.String(),
	})

	dto := ApartmentCreatedDTO{
		ID:          apartment.ID.String(),
		UnitName:    apartment.UnitName,
		UnitNumber:  apartment.UnitNumber,
		Project:     apartment.Project,
		Price:       apartment.Price,
		Bedrooms:    apartment.Bedrooms,
		Bathrooms:   apartment.Bathrooms,
		Area:        apartment.Area,
		Floor:       apartment.Floor,
		IsAvailable: apartment.IsAvailable,
		Images:      apartment.ImageFilenames(),
		CreatedAt:   apartment.CreatedAt,
	}

	body, err := json.Marshal(dto)
	if err != nil {
		return fmt.Errorf("rabbitmq adapter: failed to marshal event: %w", err)
	}

	if err := contracts.Validate("ApartmentCreated", body); err != nil {
		adapterLogger.Error("Event payload violates contract schema", err, nil)
		return err
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent, // Для сохранения сообщений при перезапуске брокера
		Timestamp:    time.Now(),
		Headers:      make(amqp.Table),
	}

	traceID := contextkeys.TraceIDFromContext(ctx)
	if traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	// Устанавливаем таймаут на операцию публикации, если контекст его не предоставляет
	publishCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	adapterLogger.Debug("Publishing apartment.created event", nil)
	if err := a.producer.Publish(publishCtx, a.routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish apartment.created for %s: %w", apartment.ID, err)
	}

	adapterLogger.Info("Successfully published apartment.created event", nil)
	return nil
}
