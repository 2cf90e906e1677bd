package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// SessionEvent is one step of a digitizing session
type SessionEvent struct {
	EventType EventType              `json:"event_type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Phase     string                 `json:"phase,omitempty"`
	X         int                    `json:"x,omitempty"`
	Y         int                    `json:"y,omitempty"`
	Value     float64                `json:"value,omitempty"`
	Count     int                    `json:"count,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// EventType represents the type of session event
type EventType string

const (
	// ChartLoaded when the chart image is decoded
	ChartLoaded EventType = "chart_loaded"
	// PhaseStarted when a click phase opens on the surface
	PhaseStarted EventType = "phase_started"
	// ClickRecorded when an axis reference click is taken
	ClickRecorded EventType = "click_recorded"
	// CalibrationBuilt when both reference values are known
	CalibrationBuilt EventType = "calibration_built"
	// BarMeasured when a bar click is converted to a value
	BarMeasured EventType = "bar_measured"
	// PhaseClosed when the user ends a phase
	PhaseClosed EventType = "phase_closed"
	// SessionFailed when the session stops with an error
	SessionFailed EventType = "session_failed"
)

// Observer defines the interface for event observers
type Observer interface {
	OnEvent(ctx context.Context, event SessionEvent)
	GetObserverName() string
}

// Subject defines the interface for event publishers
type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	NotifyObservers(ctx context.Context, event SessionEvent)
}

// LoggingObserver logs session events
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *logrus.Logger) Observer {
	return &LoggingObserver{
		logger: logger,
	}
}

// OnEvent handles session events by logging them
func (o *LoggingObserver) OnEvent(ctx context.Context, event SessionEvent) {
	fields := logrus.Fields{
		"event_type": event.EventType,
		"source":     event.Source,
	}
	if event.Phase != "" {
		fields["phase"] = event.Phase
	}

	for k, v := range event.Metadata {
		fields[k] = v
	}

	switch event.EventType {
	case ClickRecorded:
		fields["x"], fields["y"] = event.X, event.Y
		o.logger.WithFields(fields).Debug("Reference point recorded")
	case BarMeasured:
		fields["x"], fields["y"], fields["value"] = event.X, event.Y, event.Value
		o.logger.WithFields(fields).Debug("Bar measured")
	case PhaseClosed:
		fields["count"] = event.Count
		o.logger.WithFields(fields).Info("Phase closed")
	case SessionFailed:
		o.logger.WithFields(fields).Error("Digitizing session failed")
	default:
		o.logger.WithFields(fields).Info("Session event occurred")
	}
}

// GetObserverName returns the observer name
func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

// StatsObserver counts what a session produced
type StatsObserver struct {
	mu         sync.RWMutex
	references int
	bars       int
	failures   int
	started    time.Time
	last       time.Time
}

// NewStatsObserver creates a new stats observer
func NewStatsObserver() *StatsObserver {
	return &StatsObserver{}
}

// OnEvent handles session events by counting them
func (o *StatsObserver) OnEvent(ctx context.Context, event SessionEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.started.IsZero() {
		o.started = event.Timestamp
	}
	o.last = event.Timestamp

	switch event.EventType {
	case ClickRecorded:
		o.references++
	case BarMeasured:
		o.bars++
	case SessionFailed:
		o.failures++
	}
}

// GetObserverName returns the observer name
func (o *StatsObserver) GetObserverName() string {
	return "stats_observer"
}

// GetStats returns current counts
func (o *StatsObserver) GetStats() map[string]interface{} {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return map[string]interface{}{
		"reference_points": o.references,
		"bars_measured":    o.bars,
		"failures":         o.failures,
		"elapsed":          o.last.Sub(o.started),
	}
}

// EventPublisher implements the Subject interface
type EventPublisher struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher() *EventPublisher {
	return &EventPublisher{
		observers: make([]Observer, 0),
	}
}

// Subscribe adds an observer
func (p *EventPublisher) Subscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, observer)
}

// Unsubscribe removes an observer
func (p *EventPublisher) Unsubscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, obs := range p.observers {
		if obs.GetObserverName() == observer.GetObserverName() {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			break
		}
	}
}

// NotifyObservers delivers event to every observer in subscription order.
// Delivery is synchronous so log lines follow the console echoes.
func (p *EventPublisher) NotifyObservers(ctx context.Context, event SessionEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	p.mu.RLock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()

	for _, observer := range observers {
		notify(ctx, observer, event)
	}
}

func notify(ctx context.Context, obs Observer, event SessionEvent) {
	defer func() {
		if r := recover(); r != nil {
			// Log panic but don't crash the session
			logrus.WithField("observer", obs.GetObserverName()).
				WithField("panic", r).
				Error("Observer panicked while handling event")
		}
	}()
	obs.OnEvent(ctx, event)
}
