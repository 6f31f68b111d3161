package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/jujulabs/juju-dashboard/internal/config"
	"github.com/jujulabs/juju-dashboard/internal/logger"
	"github.com/jujulabs/juju-dashboard/internal/metrics"
	"github.com/jujulabs/juju-dashboard/internal/store/rabbitmq"
	"github.com/jujulabs/juju-dashboard/internal/store/redisstore"
)

// The worker listens for evaluation-written events from the upstream scoring
// pipeline and drops cached dashboard views so the next request recomputes
// them.

func workerConcurrency() int {
	v := os.Getenv("WORKER_CONCURRENCY")
	if v == "" {
		return 2
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 2
	}
	if n > 50 {
		return 50
	}
	return n
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		panic(err)
	}
	defer logger.Sync()

	metrics.Register()

	cache, err := redisstore.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
		time.Duration(cfg.Cache.TTLSeconds)*time.Second)
	if err != nil {
		logger.Fatal("redis dial", zap.Error(err))
	}
	defer cache.Close()

	consumer, err := rabbitmq.NewConsumer(cfg.Rabbit.URL, cfg.Rabbit.Queue)
	if err != nil {
		logger.Fatal("rabbit dial", zap.Error(err))
	}
	defer consumer.Close()

	concurrency := workerConcurrency()
	msgs, err := consumer.Consume(concurrency)
	if err != nil {
		logger.Fatal("consume", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("worker started",
		zap.String("queue", cfg.Rabbit.Queue),
		zap.Int("concurrency", concurrency),
	)

	jobs := make(chan amqp.Delivery, concurrency*2)

	var wg sync.WaitGroup
	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func(workerID int) {
			defer wg.Done()
			for d := range jobs {
				var ev rabbitmq.EvalEvent
				if err := json.Unmarshal(d.Body, &ev); err != nil || ev.MessageID == "" {
					logger.Warn("bad event", zap.Int("worker", workerID), zap.Error(err))
					metrics.EvalEventsConsumed.WithLabelValues("bad").Inc()
					_ = d.Nack(false, false)
					continue
				}

				if err := cache.InvalidateAll(ctx); err != nil {
					logger.Error("invalidate failed",
						zap.Int("worker", workerID),
						zap.String("message_id", ev.MessageID),
						zap.Error(err),
					)
					metrics.EvalEventsConsumed.WithLabelValues("failed").Inc()
					_ = d.Nack(false, false)
					continue
				}

				metrics.EvalEventsConsumed.WithLabelValues("ok").Inc()
				if err := d.Ack(false); err != nil {
					logger.Warn("ack failed", zap.Int("worker", workerID), zap.Error(err))
				}
			}
		}(i)
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info("worker shutting down")
			close(jobs)
			wg.Wait()
			return

		case d, ok := <-msgs:
			if !ok {
				logger.Warn("delivery channel closed")
				time.Sleep(1 * time.Second)
				continue
			}
			jobs <- d
		}
	}
}
