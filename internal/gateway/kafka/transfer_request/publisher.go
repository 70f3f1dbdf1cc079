package transfer_request

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Boring-Software-Nation/figaro-contract/internal/entities"
	"github.com/IBM/sarama"
)

const headerTransferID = "transfer-id"

type Publisher struct {
	producer producer
	topic    string
}

func New(producer producer, topic string) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
	}
}

// Publish sends the request keyed by contract, so all transfers of one
// contract land in one partition in commit order.
func (p *Publisher) Publish(ctx context.Context, request entities.TransferRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(fromDomain(request))
	if err != nil {
		return fmt.Errorf("encode transfer request: %w", err)
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(request.ContractID),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte(headerTransferID), Value: []byte(request.TransferID)},
		},
	})
	if err != nil {
		MessagesPublishedTotal.WithLabelValues(p.topic, "error").Inc()
		return fmt.Errorf("send transfer request %s: %w", request.TransferID, err)
	}

	MessagesPublishedTotal.WithLabelValues(p.topic, "ok").Inc()
	return nil
}
