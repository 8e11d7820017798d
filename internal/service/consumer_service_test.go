package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"tasknotes-be/internal/dto"
	"tasknotes-be/internal/entity"
	"tasknotes-be/internal/pkg/logger"
	"tasknotes-be/internal/repository/memory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentEmail struct {
	kind  dto.NotificationKind
	to    string
	title string
}

// fakeMailer pushes every send onto a channel so tests can wait for the
// asynchronous consumer without polling.
type fakeMailer struct {
	sent chan sentEmail
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{sent: make(chan sentEmail, 16)}
}

func (m *fakeMailer) SendTaskAssigned(toEmail, taskTitle, actorName string) error {
	m.sent <- sentEmail{kind: dto.NotificationTaskAssigned, to: toEmail, title: taskTitle}
	return nil
}

func (m *fakeMailer) SendTaskUpdated(toEmail, taskTitle, actorName string) error {
	m.sent <- sentEmail{kind: dto.NotificationTaskUpdated, to: toEmail, title: taskTitle}
	return nil
}

func (m *fakeMailer) SendTaskCompleted(toEmail, taskTitle string, createdOn, completedTime time.Time) error {
	m.sent <- sentEmail{kind: dto.NotificationTaskCompleted, to: toEmail, title: taskTitle}
	return nil
}

func (m *fakeMailer) waitForEmail(t *testing.T) sentEmail {
	t.Helper()
	select {
	case e := <-m.sent:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for email")
		return sentEmail{}
	}
}

func TestNotificationPipeline(t *testing.T) {
	const topic = "TASK_NOTIFICATIONS"

	factory := memory.NewFactory()
	mailerStub := newFakeMailer()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	defer pubSub.Close()

	recipient := &entity.User{
		Id:        uuid.New(),
		FullName:  "Bob Helper",
		Email:     "bob@example.com",
		CreatedOn: time.Now(),
	}
	require.NoError(t, factory.Users().Create(context.Background(), recipient))

	consumer := NewConsumerService(pubSub, topic, factory, mailerStub, logger.NewNop())
	require.NoError(t, consumer.Consume(context.Background()))

	publisher := NewPublisherService(topic, pubSub)

	payload, err := json.Marshal(dto.NotificationMessage{
		Kind:        dto.NotificationTaskAssigned,
		RecipientId: recipient.Id,
		TaskId:      uuid.New(),
		TaskTitle:   "Shared task",
		ActorName:   "Alice Owner",
		CreatedOn:   time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, publisher.Publish(context.Background(), payload))

	email := mailerStub.waitForEmail(t)
	assert.Equal(t, dto.NotificationTaskAssigned, email.kind)
	assert.Equal(t, "bob@example.com", email.to)
	assert.Equal(t, "Shared task", email.title)
}

func TestNotificationPipelineUnknownRecipient(t *testing.T) {
	const topic = "TASK_NOTIFICATIONS"

	factory := memory.NewFactory()
	mailerStub := newFakeMailer()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	defer pubSub.Close()

	known := &entity.User{
		Id:        uuid.New(),
		FullName:  "Bob Helper",
		Email:     "bob@example.com",
		CreatedOn: time.Now(),
	}
	require.NoError(t, factory.Users().Create(context.Background(), known))

	consumer := NewConsumerService(pubSub, topic, factory, mailerStub, logger.NewNop())
	require.NoError(t, consumer.Consume(context.Background()))

	publisher := NewPublisherService(topic, pubSub)

	// A message for a deleted user is dropped without blocking the topic.
	ghost, err := json.Marshal(dto.NotificationMessage{
		Kind:        dto.NotificationTaskAssigned,
		RecipientId: uuid.New(),
		TaskTitle:   "Orphaned",
		CreatedOn:   time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, publisher.Publish(context.Background(), ghost))

	valid, err := json.Marshal(dto.NotificationMessage{
		Kind:        dto.NotificationTaskCompleted,
		RecipientId: known.Id,
		TaskTitle:   "Finished",
		CreatedOn:   time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, publisher.Publish(context.Background(), valid))

	email := mailerStub.waitForEmail(t)
	assert.Equal(t, dto.NotificationTaskCompleted, email.kind)
	assert.Equal(t, "Finished", email.title)
}
