package pkg

import (
	"context"
	"strconv"

	"github.com/segmentio/kafka-go"
)

// 审核事件默认topic，未配置时兜底
const DefaultModerationTopic = "nexus-moderation-events"

// KafkaProducer 审核事件投递。Hash balancer按key分区，
// key取脚本ID即可保证同一脚本的submit/approve/reject有序
type KafkaProducer struct {
	writer *kafka.Writer
	topic  string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

func NewKafkaProducer(cfg KafkaConfig) (*KafkaProducer, error) {
	topic := cfg.Topic
	if topic == "" {
		topic = DefaultModerationTopic
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}
	return &KafkaProducer{writer: w, topic: topic}, nil
}

func (p *KafkaProducer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

func (p *KafkaProducer) Send(ctx context.Context, key string, value []byte) error {
	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
	}
	return p.writer.WriteMessages(ctx, msg)
}

// MakeKeyFromID 脚本ID作为分区key
func MakeKeyFromID(id uint64) string {
	return strconv.FormatUint(id, 10)
}
