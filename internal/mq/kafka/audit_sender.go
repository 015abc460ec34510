package kafka

import (
	"context"
	"sync"
	"time"

	"go-shopadmin/internal/logging"
	"go-shopadmin/internal/metrics"

	kafkaGo "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// AuditMessage is one audit event queued for asynchronous delivery.
type AuditMessage struct {
	Ctx     context.Context
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// AuditSender batches audit events onto Kafka off the request path. A batch
// flushes when it reaches maxBatch or after maxWait. The queue is bounded:
// when it is full events are dropped and counted, never blocking a request.
type AuditSender struct {
	producer *Producer
	logger   *logging.Logger
	queue    chan AuditMessage
	workers  int
	wg       sync.WaitGroup
	stopCh   chan struct{}

	maxBatch int
	maxWait  time.Duration
}

func NewAuditSender(p *Producer, l *logging.Logger, queueSize, workers, maxBatch int, maxWait time.Duration) *AuditSender {
	if queueSize <= 0 {
		queueSize = 10000
	}
	if workers <= 0 {
		workers = 1
	}
	if maxBatch <= 0 {
		maxBatch = 50
	}
	if maxWait <= 0 {
		maxWait = 20 * time.Millisecond
	}
	return &AuditSender{
		producer: p,
		logger:   l,
		queue:    make(chan AuditMessage, queueSize),
		workers:  workers,
		stopCh:   make(chan struct{}),
		maxBatch: maxBatch,
		maxWait:  maxWait,
	}
}

func (s *AuditSender) Start() {
	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker()
	}
}

func (s *AuditSender) worker() {
	defer s.wg.Done()
	batch := make([]AuditMessage, 0, s.maxBatch)
	var timer *time.Timer
	var timerCh <-chan time.Time

	stopTimer := func() {
		if timer != nil {
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timerCh = nil
		}
	}

	flush := func() {
		if len(batch) == 0 {
			return
		}
		msgs := make([]kafkaGo.Message, 0, len(batch))
		for _, m := range batch {
			hs := make([]kafkaGo.Header, 0, len(m.Headers))
			for k, v := range m.Headers {
				hs = append(hs, kafkaGo.Header{Key: k, Value: []byte(v)})
			}
			hs = s.producer.injectHeaders(m.Ctx, hs)
			msgs = append(msgs, kafkaGo.Message{Key: m.Key, Value: m.Value, Time: time.Now(), Headers: hs})
		}
		writeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := s.producer.Writer.WriteMessages(writeCtx, msgs...)
		cancel()
		if err != nil {
			metrics.AuditSendErrors.Add(float64(len(batch)))
			s.logger.Error("audit_kafka_write_failed", zap.Error(err), zap.Int("batch", len(batch)))
		}
		metrics.AuditBatchSize.Observe(float64(len(batch)))
		batch = batch[:0]
		stopTimer()
	}

	for {
		select {
		case <-s.stopCh:
			flush()
			return
		case msg := <-s.queue:
			metrics.AuditQueueDepth.Dec()
			batch = append(batch, msg)
			if len(batch) == 1 {
				if timer == nil {
					timer = time.NewTimer(s.maxWait)
				} else {
					stopTimer()
					timer.Reset(s.maxWait)
				}
				timerCh = timer.C
			}
			if len(batch) >= s.maxBatch {
				flush()
			}
		case <-timerCh:
			flush()
		}
	}
}

// Enqueue is non-blocking; a full queue drops the event.
func (s *AuditSender) Enqueue(m AuditMessage) {
	select {
	case s.queue <- m:
		metrics.AuditEnqueue.WithLabelValues("ok").Inc()
		metrics.AuditQueueDepth.Inc()
	default:
		metrics.AuditEnqueue.WithLabelValues("dropped").Inc()
	}
}

func (s *AuditSender) Close(ctx context.Context) error {
	close(s.stopCh)
	s.wg.Wait()
	return nil
}
