package service

import (
	"context"
	"encoding/json"
	"time"

	"tasknotes-be/internal/dto"
	"tasknotes-be/internal/pkg/logger"
	"tasknotes-be/internal/pkg/mailer"
	"tasknotes-be/internal/repository/specification"
	"tasknotes-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the notification topic and turns each message into
// an email. Delivery is best effort: every message is acked exactly once,
// failures are logged and never retried.
type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
	logger       logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		uowFactory:   uowFactory,
		emailService: emailService,
		logger:       log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
			msg.Ack()
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.NotificationMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal notification message", map[string]interface{}{"error": err.Error()})
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	recipient, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: payload.RecipientId})
	if err != nil {
		cs.logger.Error("ConsumerService", "Failed to resolve notification recipient", map[string]interface{}{
			"recipientId": payload.RecipientId.String(),
			"error":       err.Error(),
		})
		return
	}
	if recipient == nil {
		cs.logger.Warn("ConsumerService", "Notification recipient no longer exists", map[string]interface{}{
			"recipientId": payload.RecipientId.String(),
		})
		return
	}

	switch payload.Kind {
	case dto.NotificationTaskAssigned:
		err = cs.emailService.SendTaskAssigned(recipient.Email, payload.TaskTitle, payload.ActorName)
	case dto.NotificationTaskUpdated:
		err = cs.emailService.SendTaskUpdated(recipient.Email, payload.TaskTitle, payload.ActorName)
	case dto.NotificationTaskCompleted:
		completedAt := time.Now()
		if payload.CompletedTime != nil {
			completedAt = *payload.CompletedTime
		}
		err = cs.emailService.SendTaskCompleted(recipient.Email, payload.TaskTitle, payload.CreatedOn, completedAt)
	default:
		cs.logger.Warn("ConsumerService", "Unknown notification kind", map[string]interface{}{"kind": string(payload.Kind)})
		return
	}

	if err != nil {
		cs.logger.Error("ConsumerService", "Failed to send notification email", map[string]interface{}{
			"kind":  string(payload.Kind),
			"to":    recipient.Email,
			"error": err.Error(),
		})
		return
	}

	cs.logger.Info("ConsumerService", "Notification email sent", map[string]interface{}{
		"kind": string(payload.Kind),
		"to":   recipient.Email,
	})
}
