package service

import (
	"context"
	"time"

	"Nexus_Protocols/internal/model"
	"Nexus_Protocols/internal/pkg"
	"Nexus_Protocols/internal/repository/mysql"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Sender func(ctx context.Context, ob *model.ModerationOutbox) error

// OutboxRelayer 周期性从outbox表取未投递事件交给sender
type OutboxRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	interval  time.Duration
	sender    Sender
}

func NewOutboxRelayer(db *gorm.DB, sender Sender) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      &mysql.OutboxRepository{DB: db},
		batchSize: 200,
		interval:  time.Second,
		sender:    sender,
	}
}

// Run outbox启动器
func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *OutboxRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.List(ctx, r.batchSize)
	if err != nil {
		pkg.Logger.Error("outbox query failed", zap.Error(err))
		return
	}
	for i := range rows {
		ob := rows[i]
		if err = r.sender(ctx, &ob); err != nil {
			_ = r.repo.RetryUpdate(ctx, ob.ID)
			continue
		}
		_ = r.repo.SuccessUpdate(ctx, ob.ID)
	}
}

// KafkaSender 事件投递到kafka，key取脚本ID保证同脚本有序
func KafkaSender(producer *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, ob *model.ModerationOutbox) error {
		return producer.Send(ctx, pkg.MakeKeyFromID(ob.ScriptID), []byte(ob.Payload))
	}
}

// LogSender 未配置kafka时的降级sender
func LogSender(ctx context.Context, ob *model.ModerationOutbox) error {
	pkg.Logger.Info("outbox send",
		zap.String("event", ob.EventType),
		zap.Uint64("script_id", ob.ScriptID),
		zap.Uint64("actor_id", ob.ActorID))
	return nil
}
