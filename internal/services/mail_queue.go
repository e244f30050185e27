package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/brikvest/backend/internal/config"
	"github.com/brikvest/backend/pkg/logger"
	"github.com/hibiken/asynq"
)

const TaskTypeEmail = "email:send"

// EmailTask is one outbound notice to be delivered off the request path.
type EmailTask struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
}

// MailQueue decouples confirmation notices from request handling.
type MailQueue interface {
	// Enqueue schedules a task for delivery.
	Enqueue(task *EmailTask) error
	// IsAsync returns true if the queue delivers through a worker process.
	IsAsync() bool
	// Close gracefully shuts down the queue.
	Close() error
}

var (
	globalMailQueue MailQueue
	mailQueueOnce   sync.Once
)

// InitMailQueue initializes the global mail queue: Redis-backed asynq when
// enabled, otherwise in-process delivery.
func InitMailQueue(cfg *config.Config) MailQueue {
	mailQueueOnce.Do(func() {
		if cfg.Redis.Enabled {
			queue, err := NewAsyncMailQueue(&cfg.Redis)
			if err != nil {
				logger.Warnf("[MailQueue] Redis unavailable, falling back to inline delivery: %v", err)
				globalMailQueue = NewInlineMailQueue()
			} else {
				logger.Infof("[MailQueue] Async mail queue initialized with Redis at %s", cfg.Redis.Addr)
				globalMailQueue = queue
			}
		} else {
			logger.Infof("[MailQueue] Inline mail delivery initialized (Redis disabled)")
			globalMailQueue = NewInlineMailQueue()
		}
	})
	return globalMailQueue
}

// GetMailQueue returns the global mail queue instance.
func GetMailQueue() MailQueue {
	return globalMailQueue
}

// AsyncMailQueue implements MailQueue using asynq (Redis-based).
type AsyncMailQueue struct {
	client *asynq.Client
}

func NewAsyncMailQueue(cfg *config.RedisConfig) (*AsyncMailQueue, error) {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	client := asynq.NewClient(redisOpt)

	// Verify the connection before committing to async delivery
	inspector := asynq.NewInspector(redisOpt)
	defer inspector.Close()
	if _, err := inspector.Queues(); err != nil {
		client.Close()
		return nil, err
	}

	return &AsyncMailQueue{client: client}, nil
}

func (q *AsyncMailQueue) Enqueue(task *EmailTask) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return err
	}

	info, err := q.client.Enqueue(
		asynq.NewTask(TaskTypeEmail, payload),
		asynq.Queue("default"),
		asynq.MaxRetry(0), // notices are fire and forget
	)
	if err != nil {
		return err
	}

	logger.Infof("[MailQueue] Task enqueued: id=%s, queue=%s", info.ID, info.Queue)
	return nil
}

func (q *AsyncMailQueue) IsAsync() bool { return true }

func (q *AsyncMailQueue) Close() error { return q.client.Close() }

// InlineMailQueue delivers in-process without Redis. Delivery happens in a
// goroutine so the HTTP response never waits on SMTP.
type InlineMailQueue struct {
	sender func(task *EmailTask) error
}

func NewInlineMailQueue() *InlineMailQueue {
	return &InlineMailQueue{}
}

// SetSender sets the delivery function.
func (q *InlineMailQueue) SetSender(sender func(task *EmailTask) error) {
	q.sender = sender
}

func (q *InlineMailQueue) Enqueue(task *EmailTask) error {
	if q.sender == nil {
		logger.Warnf("[MailQueue] No sender configured, dropping notice %q", task.Subject)
		return nil
	}

	go func() {
		if err := q.sender(task); err != nil {
			logger.Warnf("[MailQueue] Delivery failed: %v", err)
		}
	}()
	return nil
}

func (q *InlineMailQueue) IsAsync() bool { return false }

func (q *InlineMailQueue) Close() error { return nil }

// MailWorker consumes email tasks from Redis when async delivery is enabled.
type MailWorker struct {
	server  *asynq.Server
	mux     *asynq.ServeMux
	sender  func(task *EmailTask) error
	wg      sync.WaitGroup
	running bool
	mu      sync.Mutex
}

func NewMailWorker(cfg *config.RedisConfig) *MailWorker {
	if !cfg.Enabled {
		return nil
	}

	server := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		},
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Warnf("[MailWorker] Error processing task %s: %v", task.Type(), err)
			}),
		},
	)

	return &MailWorker{
		server: server,
		mux:    asynq.NewServeMux(),
	}
}

// SetSender sets the delivery function used for consumed tasks.
func (w *MailWorker) SetSender(sender func(task *EmailTask) error) {
	w.sender = sender
}

// Start begins consuming tasks.
func (w *MailWorker) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	w.mux.HandleFunc(TaskTypeEmail, w.handleEmailTask)

	w.running = true
	w.wg.Add(1)

	go func() {
		defer w.wg.Done()
		logger.Infof("[MailWorker] Starting...")
		if err := w.server.Run(w.mux); err != nil {
			logger.Errorf("[MailWorker] Server error: %v", err)
		}
	}()

	return nil
}

// Stop gracefully shuts down the worker.
func (w *MailWorker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}

	w.server.Shutdown()
	w.running = false
	w.wg.Wait()
	logger.Infof("[MailWorker] Shutdown complete")
}

func (w *MailWorker) handleEmailTask(ctx context.Context, t *asynq.Task) error {
	var task EmailTask
	if err := json.Unmarshal(t.Payload(), &task); err != nil {
		logger.Warnf("[MailWorker] Failed to unmarshal task: %v", err)
		return err
	}

	if w.sender == nil {
		logger.Warnf("[MailWorker] No sender configured")
		return nil
	}

	return w.sender(&task)
}
