package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/freightline/quoting-system/internal/api/metrics"
	"github.com/freightline/quoting-system/internal/core/domain"
	"github.com/freightline/quoting-system/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// persistJob is one pending write. Exactly one of the three payloads is set.
type persistJob struct {
	key      string
	shipment *domain.Shipment
	result   *domain.PricingResult
	audit    *domain.DutyAudit
}

// Dispatcher routes persistence jobs to a fixed set of workers using
// consistent hashing on the job key, keeping writes for the same key in
// enqueue order. Writes are fire-and-forget: failures are logged and counted,
// never surfaced to the request that produced them.
type Dispatcher struct {
	workers []chan persistJob
	repo    ports.QuoteRepository
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.QuoteRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan persistJob, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan persistJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// EnqueueShipment queues the normalized shipment for persistence.
func (d *Dispatcher) EnqueueShipment(s *domain.Shipment) {
	d.enqueue(persistJob{key: s.ID, shipment: s})
}

// EnqueueResult queues the computed quote for persistence.
func (d *Dispatcher) EnqueueResult(r *domain.PricingResult) {
	d.enqueue(persistJob{key: r.ShipmentID, result: r})
}

// EnqueueDutyAudit queues the duty audit record for persistence.
func (d *Dispatcher) EnqueueDutyAudit(a *domain.DutyAudit) {
	d.enqueue(persistJob{key: a.QuoteID, audit: a})
}

// enqueue sends a job to the worker responsible for its key.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) enqueue(job persistJob) {
	idx := d.shardIndex(job.key)
	d.workers[idx] <- job
	metrics.PersistQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a job key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan persistJob) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			d.process(ctx, id, job)
			metrics.PersistQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, workerID int, job persistJob) {
	var (
		kind string
		err  error
	)
	switch {
	case job.shipment != nil:
		kind = "shipment"
		err = d.repo.SaveShipment(ctx, job.shipment)
	case job.result != nil:
		kind = "result"
		err = d.repo.SaveResult(ctx, job.result)
	case job.audit != nil:
		kind = "duty_audit"
		err = d.repo.SaveDutyAudit(ctx, job.audit)
	default:
		return
	}

	if err != nil {
		metrics.PersistErrorsTotal.WithLabelValues(kind).Inc()
		d.log.Error().Err(err).
			Str("kind", kind).
			Str("key", job.key).
			Int("worker_id", workerID).
			Msg("persistence write failed")
	}
}
