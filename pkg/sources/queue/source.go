// Package queue consumes transition requests from a Redis list and applies
// them through the entity service. It exists for states marked Automated:
// system-driven moves arrive on the queue instead of through the API.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/stageflow/stageflow/pkg/services"
)

const popTimeout = time.Second

// DefaultActor is recorded on transitions that arrive without one.
const DefaultActor = "system"

// Source pops JSON-encoded transition requests off a Redis list. Rejected
// transitions are logged and dropped; the producer gets its feedback from
// the TransitionRejected events the service publishes.
type Source struct {
	client redis.UniversalClient
	queue  string
	entity *services.Entity
	logger *slog.Logger
	stopCh chan struct{}
	wg     sync.WaitGroup
}

func NewSource(redisURL, queue string, entity *services.Entity, logger *slog.Logger) (*Source, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	if queue == "" {
		return nil, errors.New("queue name is required")
	}

	return &Source{
		client: redis.NewClient(opts),
		queue:  queue,
		entity: entity,
		logger: logger.With("module", "queue_source", "queue", queue),
		stopCh: make(chan struct{}),
	}, nil
}

// Start begins consuming in a background goroutine until Stop is called or
// the context is cancelled.
func (s *Source) Start(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return err
	}

	s.wg.Add(1)

	go s.consume(ctx)

	s.logger.InfoContext(ctx, "Queue source started")

	return nil
}

func (s *Source) consume(ctx context.Context) {
	defer s.wg.Done()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ctx.Done():
			return
		default:
		}

		result, err := s.client.BLPop(ctx, popTimeout, s.queue).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
				continue
			}

			s.logger.ErrorContext(ctx, "Failed to pop from queue", "error", err)
			time.Sleep(popTimeout)

			continue
		}

		// BLPop returns [key, value].
		if len(result) < 2 {
			continue
		}

		s.handle(ctx, []byte(result[1]))
	}
}

func (s *Source) handle(ctx context.Context, payload []byte) {
	var req services.TransitionRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		s.logger.ErrorContext(ctx, "Discarding malformed queue message", "error", err)

		return
	}

	if req.Actor == "" {
		req.Actor = DefaultActor
	}

	if _, err := s.entity.Transition(ctx, req); err != nil {
		s.logger.WarnContext(ctx, "Queued transition rejected",
			"entity_id", req.EntityID, "to", req.ToState, "error", err)
	}
}

// Stop halts consumption and closes the Redis connection.
func (s *Source) Stop() error {
	close(s.stopCh)
	s.wg.Wait()

	return s.client.Close()
}
