package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"github.com/Amritansu-Adi/klantroef/models"
	"github.com/Amritansu-Adi/klantroef/platform/config"
)

const TopicMediaViews = "media.views"

type Config struct {
	BootstrapServers string
	GroupID          string
	MaxRetries       int
	BackoffInterval  time.Duration
}

type Producer struct {
	writer *kafka.Writer
	config Config
}

type Consumer struct {
	reader *kafka.Reader
	config Config
}

func NewConfig(cfg *config.Config) Config {
	return Config{
		BootstrapServers: cfg.KafkaBrokers,
		GroupID:          cfg.KafkaGroupID,
		MaxRetries:       3,
		BackoffInterval:  5 * time.Second,
	}
}

func NewProducer(config Config) *Producer {
	brokers := strings.Split(config.BootstrapServers, ",")
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		MaxAttempts:            config.MaxRetries,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		writer: writer,
		config: config,
	}
}

func (p *Producer) SendMessage(ctx context.Context, topic string, key, value []byte) error {
	message := kafka.Message{
		Topic: topic,
		Key:   key,
		Value: value,
		Time:  time.Now(),
	}

	return p.writer.WriteMessages(ctx, message)
}

// PublishView emits one message per accepted view, keyed by media id so all
// views of an asset land in the same partition.
func (p *Producer) PublishView(ctx context.Context, msg models.ViewMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return p.SendMessage(ctx, TopicMediaViews, []byte(msg.MediaID), payload)
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

func NewConsumer(config Config, topic string) *Consumer {
	brokers := strings.Split(config.BootstrapServers, ",")
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:         brokers,
		Topic:           topic,
		GroupID:         config.GroupID,
		MinBytes:        10e3, // 10KB
		MaxBytes:        10e6, // 10MB
		MaxWait:         1 * time.Second,
		ReadLagInterval: -1,
	})

	return &Consumer{
		reader: reader,
		config: config,
	}
}

func (c *Consumer) ConsumeMessages(ctx context.Context, handler func(key, value []byte) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			log.Error().Err(err).Msg("error reading kafka message")

			time.Sleep(c.config.BackoffInterval)
			continue
		}

		if err := handler(msg.Key, msg.Value); err != nil {
			log.Error().Err(err).Msg("error handling kafka message")
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
