package observability

import (
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// Metrics publishes counters and durations to CloudWatch. Datapoints are
// buffered and flushed in the background so the hot path never blocks on
// the AWS API.
type Metrics struct {
	client    *cloudwatch.Client
	namespace string
	logger    *zap.Logger

	mu      sync.Mutex
	pending []cwtypes.MetricDatum

	flushInterval time.Duration
	stop          chan struct{}
	stopOnce      sync.Once
}

// NewMetrics creates a metrics publisher under the given namespace.
func NewMetrics(client *cloudwatch.Client, namespace string, logger *zap.Logger) *Metrics {
	m := &Metrics{
		client:        client,
		namespace:     namespace,
		logger:        logger,
		flushInterval: 30 * time.Second,
		stop:          make(chan struct{}),
	}
	go m.flushLoop()
	return m
}

// Increment counts one occurrence of metric for label.
func (m *Metrics) Increment(metric, label string) {
	m.record(metric, label, 1, cwtypes.StandardUnitCount)
}

// RecordDuration records an elapsed time for metric.
func (m *Metrics) RecordDuration(metric, label string, elapsed time.Duration) {
	m.record(metric, label, float64(elapsed.Milliseconds()), cwtypes.StandardUnitMilliseconds)
}

// StartTimer starts a duration measurement; Stop records it.
func (m *Metrics) StartTimer(metric, label string) Timer {
	return &timer{metrics: m, metric: metric, label: label, started: time.Now()}
}

// Timer measures one duration.
type Timer interface {
	Stop()
}

type timer struct {
	metrics *Metrics
	metric  string
	label   string
	started time.Time
}

func (t *timer) Stop() {
	t.metrics.RecordDuration(t.metric, t.label, time.Since(t.started))
}

func (m *Metrics) record(metric, label string, value float64, unit cwtypes.StandardUnit) {
	datum := cwtypes.MetricDatum{
		MetricName: aws.String(metric),
		Value:      aws.Float64(value),
		Unit:       unit,
		Timestamp:  aws.Time(time.Now()),
	}
	if label != "" {
		datum.Dimensions = []cwtypes.Dimension{
			{Name: aws.String("Label"), Value: aws.String(label)},
		}
	}

	m.mu.Lock()
	m.pending = append(m.pending, datum)
	m.mu.Unlock()
}

func (m *Metrics) flushLoop() {
	ticker := time.NewTicker(m.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Flush(context.Background())
		case <-m.stop:
			m.Flush(context.Background())
			return
		}
	}
}

// Flush publishes all buffered datapoints.
func (m *Metrics) Flush(ctx context.Context) {
	m.mu.Lock()
	pending := m.pending
	m.pending = nil
	m.mu.Unlock()

	// PutMetricData accepts at most 20 datapoints per call.
	const batchSize = 20

	for i := 0; i < len(pending); i += batchSize {
		end := i + batchSize
		if end > len(pending) {
			end = len(pending)
		}

		_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
			Namespace:  aws.String(m.namespace),
			MetricData: pending[i:end],
		})
		if err != nil {
			m.logger.Warn("Failed to publish metrics", zap.Error(err))
			return
		}
	}
}

// Close stops the background flusher after a final flush.
func (m *Metrics) Close() {
	m.stopOnce.Do(func() { close(m.stop) })
}

// NoopMetrics discards every datapoint. It stands in when metrics are
// disabled by configuration.
type NoopMetrics struct{}

// Increment does nothing.
func (NoopMetrics) Increment(metric, label string) {}

// StartTimer returns a timer whose Stop does nothing.
func (NoopMetrics) StartTimer(metric, label string) Timer { return noopTimer{} }

type noopTimer struct{}

func (noopTimer) Stop() {}
