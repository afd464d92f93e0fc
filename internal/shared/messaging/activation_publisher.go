package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	// QueueActivationEmails - Имя очереди для писем активации.
	QueueActivationEmails = "activation_emails"
)

// ActivationMessage - сообщение для консьюмера почтового сервиса.
type ActivationMessage struct {
	Email         string `json:"email"`
	ActivationURL string `json:"activation_url"`
}

// ActivationPublisher публикует письма активации в очередь.
type ActivationPublisher interface {
	PublishActivation(ctx context.Context, email, activationURL string) error
	Close() error
}

// Compile-time check
var _ ActivationPublisher = (*RabbitMQActivationPublisher)(nil)

// RabbitMQActivationPublisher реализует ActivationPublisher поверх RabbitMQ.
type RabbitMQActivationPublisher struct {
	conn   *amqp091.Connection
	ch     *amqp091.Channel
	logger *zap.Logger
}

// NewRabbitMQActivationPublisher создает нового издателя писем активации.
// Предполагается, что соединение conn уже установлено; переподключениями
// управляет внешний код.
func NewRabbitMQActivationPublisher(conn *amqp091.Connection, logger *zap.Logger) (*RabbitMQActivationPublisher, error) {
	if conn == nil {
		return nil, fmt.Errorf("rabbitmq connection is nil")
	}

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("Failed to open a channel", zap.Error(err))
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	// Durable очередь, чтобы письма пережили перезапуск брокера.
	_, err = ch.QueueDeclare(
		QueueActivationEmails, // name
		true,                  // durable
		false,                 // auto-delete
		false,                 // exclusive
		false,                 // no-wait
		nil,                   // arguments
	)
	if err != nil {
		_ = ch.Close()
		logger.Error("Failed to declare queue", zap.Error(err), zap.String("queue", QueueActivationEmails))
		return nil, fmt.Errorf("failed to declare queue '%s': %w", QueueActivationEmails, err)
	}

	logger.Info("Activation emails queue declared successfully", zap.String("queue", QueueActivationEmails))

	return &RabbitMQActivationPublisher{
		conn:   conn,
		ch:     ch,
		logger: logger.Named("ActivationPublisher"),
	}, nil
}

// PublishActivation публикует письмо активации в очередь.
func (p *RabbitMQActivationPublisher) PublishActivation(ctx context.Context, email, activationURL string) error {
	msg := ActivationMessage{
		Email:         email,
		ActivationURL: activationURL,
	}
	body, err := json.Marshal(msg)
	if err != nil {
		p.logger.Error("Failed to marshal activation message", zap.Error(err))
		return fmt.Errorf("failed to marshal activation message: %w", err)
	}

	err = p.ch.PublishWithContext(ctx,
		"",                    // exchange (default)
		QueueActivationEmails, // routing key = имя очереди
		false,                 // mandatory
		false,                 // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		p.logger.Error("Failed to publish activation message", zap.Error(err), zap.String("email", email))
		return fmt.Errorf("failed to publish activation message: %w", err)
	}

	p.logger.Debug("Activation message published", zap.String("email", email))
	return nil
}

// Close закрывает канал RabbitMQ.
func (p *RabbitMQActivationPublisher) Close() error {
	if p.ch != nil {
		return p.ch.Close()
	}
	return nil
}
