package processor

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/Amritansu-Adi/klantroef/models"
	"github.com/Amritansu-Adi/klantroef/platform/kafka"
	"github.com/Amritansu-Adi/klantroef/store"
)

// ViewStatsProcessor consumes accepted-view events and rolls them into the
// per-asset MediaStats table backing the popular-media listing. The analytics
// endpoint never reads this rollup; losing or replaying a message only skews
// the listing, not the summaries.
type ViewStatsProcessor struct {
	consumer *kafka.Consumer
	stats    store.StatsStore
}

func NewViewStatsProcessor(kafkaConfig kafka.Config, stats store.StatsStore) *ViewStatsProcessor {
	return &ViewStatsProcessor{
		consumer: kafka.NewConsumer(kafkaConfig, kafka.TopicMediaViews),
		stats:    stats,
	}
}

func (p *ViewStatsProcessor) Start(ctx context.Context) error {
	log.Info().Str("topic", kafka.TopicMediaViews).Msg("starting view stats processor")

	return p.consumer.ConsumeMessages(ctx, func(key, value []byte) error {
		return p.handleMessage(value)
	})
}

func (p *ViewStatsProcessor) handleMessage(value []byte) error {
	var msg models.ViewMessage
	if err := json.Unmarshal(value, &msg); err != nil {
		log.Error().Err(err).Msg("could not parse view message")
		return err
	}

	if err := p.stats.BumpStats(msg.MediaID, msg.Timestamp); err != nil {
		log.Error().Err(err).Str("media_id", msg.MediaID).Msg("could not update media stats")
		return err
	}

	return nil
}

func (p *ViewStatsProcessor) Stop() error {
	return p.consumer.Close()
}
