package pubsub

import (
	"context"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
	"github.com/mauv0809/draft-league/internal/metrics"
	"github.com/vmihailenco/msgpack/v5"
	"google.golang.org/api/option"
)

func New(projectID string, metrics metrics.Metrics, opts ...option.ClientOption) PubSubClient {
	ctx := context.Background()
	pubSubC, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	return &client{
		client:  pubSubC,
		metrics: metrics,
		topics:  make(map[EventType]*pubsub.Topic),
	}
}

func (c *client) topic(event EventType) *pubsub.Topic {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.topics[event]
	if !ok {
		t = c.client.Topic(string(event))
		c.topics[event] = t
	}
	return t
}

func (c *client) SendMessage(topic EventType, data any) error {
	ctx := context.Background()
	msgpackData, err := msgpack.Marshal(data)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err)
		return err
	}
	message := &pubsub.Message{
		Data: msgpackData,
	}
	result := c.topic(topic).Publish(ctx, message)
	serverID, err := result.Get(ctx)
	if err != nil {
		log.Error("Failed to publish message", "error", err, "topic", topic)
		return err
	}
	c.metrics.IncEventsPublished(string(topic))
	log.Info("SendMessage", "serverID", serverID, "topic", topic)
	return nil
}

func (c *client) ProcessMessage(data []byte, returnValue any) error {
	err := msgpack.Unmarshal(data, returnValue)
	if err != nil {
		log.Error("MessagePack unmarshal error", "error", err)
		return err
	}
	return nil
}

// Close flushes pending publishes and releases the connection.
func (c *client) Close() error {
	c.mu.Lock()
	for _, t := range c.topics {
		t.Stop()
	}
	c.mu.Unlock()
	return c.client.Close()
}
