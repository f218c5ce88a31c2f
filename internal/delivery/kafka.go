package delivery

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
)

// KafkaSender publishes SEND_EMAIL events for the notification
// pipeline, keyed by recipient so retries for one subject stay ordered.
type KafkaSender struct {
	writer *kafka.Writer
}

func NewKafkaSender(brokers []string, topic string) *KafkaSender {
	return &KafkaSender{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (s *KafkaSender) Send(ctx context.Context, email, code string) error {
	event := map[string]any{
		"type": "SEND_EMAIL",
		"data": map[string]any{
			"to":       email,
			"template": "password_recovery",
			"variables": map[string]string{
				"otp": code,
			},
		},
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal delivery event: %w", err)
	}
	return s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(email),
		Value: payload,
	})
}

func (s *KafkaSender) Close() error {
	return s.writer.Close()
}
