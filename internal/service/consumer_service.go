package service

import (
	"context"
	"encoding/json"
	"log"

	"ideaboard-be/internal/dto"
	"ideaboard-be/internal/repository/specification"
	"ideaboard-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the position-flush work queue and persists the
// final position of each dragged idea.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
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
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishPositionFlushMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal position flush: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	idea, err := uow.IdeaRepository().FindOne(ctx, specification.ByID{ID: payload.IdeaId})
	if err != nil {
		log.Printf("[ERROR] Failed to get idea %s: %v", payload.IdeaId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if idea == nil {
		// Deleted mid-drag. Nothing to persist.
		msg.Ack()
		return
	}

	if err := uow.IdeaRepository().UpdatePosition(ctx, payload.IdeaId, payload.X, payload.Y); err != nil {
		log.Printf("[ERROR] Failed to persist position for idea %s: %v", payload.IdeaId, err)
		msg.Nack()
		return
	}

	msg.Ack()
}
