// Package agent drives the periodic sample, evaluate and publish cycle.
package agent

import (
	"context"
	"sync/atomic"
	"time"

	"hostwatch/internal/alert"
	"hostwatch/internal/conf"
	"hostwatch/internal/metrics"
)

// Collector acquires the raw inputs of one Reading.
type Collector interface {
	Acquire(ctx context.Context, families conf.Metrics) (metrics.Raw, error)
	SampleUtilization(ctx context.Context) metrics.Utilization
}

// ConfigSource is consulted at the start of every cycle.
type ConfigSource interface {
	Read() conf.Config
}

// Sink receives every completed Reading together with its alerts.
type Sink interface {
	Publish(r *metrics.Reading, alerts []alert.Alert)
}

type State int32

const (
	Idle State = iota
	Sampling
)

func (s State) String() string {
	if s == Sampling {
		return "sampling"
	}
	return "idle"
}

// Scheduler runs one cycle at a time. Cycles never overlap: the next one is
// armed only after the previous one has published.
type Scheduler struct {
	collector Collector
	config    ConfigSource
	sinks     []Sink
	window    time.Duration
	now       func() time.Time

	state   atomic.Int32
	latest  atomic.Pointer[metrics.Reading]
	trigger chan struct{}
}

// New returns a Scheduler. window is the length of the utilization sample and
// is subtracted from the configured interval to get the idle wait.
func New(collector Collector, config ConfigSource, window time.Duration, sinks ...Sink) *Scheduler {
	return &Scheduler{
		collector: collector,
		config:    config,
		sinks:     sinks,
		window:    window,
		now:       time.Now,
		trigger:   make(chan struct{}, 1),
	}
}

func (s *Scheduler) State() State {
	return State(s.state.Load())
}

// Latest returns the most recently published Reading, or nil before the
// first cycle completes.
func (s *Scheduler) Latest() *metrics.Reading {
	return s.latest.Load()
}

// Trigger requests a cycle as soon as the scheduler is idle. Requests made
// while a cycle is pending or in flight are coalesced into one.
func (s *Scheduler) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Run executes cycles until ctx is done or a cycle fails. A returned error
// is fatal.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		wait, err := s.Cycle(ctx)
		if err != nil {
			return err
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		case <-s.trigger:
			timer.Stop()
		}
	}
}

// Cycle runs one complete cycle and returns how long to stay idle before the
// next one. An in-flight cycle is not cancelled by ctx.
func (s *Scheduler) Cycle(ctx context.Context) (time.Duration, error) {
	ctx = context.WithoutCancel(ctx)
	cfg := s.config.Read()

	s.state.Store(int32(Sampling))
	defer s.state.Store(int32(Idle))

	var pending <-chan metrics.Utilization
	if cfg.Metrics.CPU {
		ch := make(chan metrics.Utilization, 1)
		go func() { ch <- s.collector.SampleUtilization(ctx) }()
		pending = ch
	}

	raw, err := s.collector.Acquire(ctx, cfg.Metrics)
	if err != nil {
		return 0, err
	}
	if pending != nil {
		raw = raw.WithUtilization(<-pending)
	}

	reading := metrics.Assemble(raw, s.now())
	alerts := alert.Evaluate(reading, cfg.Thresholds)
	s.latest.Store(reading)
	for _, sink := range s.sinks {
		sink.Publish(reading, alerts)
	}

	return cfg.IntervalDuration(s.window) - s.window, nil
}
