// Copyright 2026 The Mapflow Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// EventKind labels the kind of observability event being emitted.
type EventKind int

const (
	// EventLog is emitted for every log line written through an
	// ObservableLogger.
	EventLog EventKind = iota

	// EventError is emitted in addition to EventLog for error-level lines.
	EventError

	// EventMetric is emitted for explicit Metric calls.
	EventMetric
)

// Event carries one observability occurrence to hooks. Only the fields
// relevant to the Kind are set: Level, Message and KeyVals for log events,
// Err for error events, Name, Value and Tags for metric events.
type Event struct {
	Kind    EventKind
	Level   log.Level
	Message string
	Err     error
	Name    string
	Value   float64
	Tags    map[string]string
	KeyVals []interface{}
	At      time.Time
}

// Hook receives observability events. Observe must be safe for concurrent
// use; Close releases any resources the hook holds.
type Hook interface {
	Observe(ctx context.Context, ev Event)
	Close() error
}

// Metric is an aggregated counter held by a MetricsCollector.
type Metric struct {
	Name      string            `json:"name"`
	Value     float64           `json:"value"`
	Tags      map[string]string `json:"tags"`
	Timestamp time.Time         `json:"timestamp"`
	Count     int64             `json:"count"`
}

// MetricsCollector is a Hook that aggregates events into in-process
// counters. Log lines count under "mapflow.logs.count" keyed by level,
// error lines additionally under "mapflow.errors.count", and metric
// events under their own name.
type MetricsCollector struct {
	mu      sync.RWMutex
	metrics map[string]*Metric
}

// NewMetricsCollector creates an empty collector.
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{metrics: make(map[string]*Metric)}
}

// Observe implements Hook.
func (mc *MetricsCollector) Observe(ctx context.Context, ev Event) {
	switch ev.Kind {
	case EventLog:
		mc.add("mapflow.logs.count", 1, map[string]string{"level": ev.Level.String()}, ev.At)
	case EventError:
		mc.add("mapflow.errors.count", 1, nil, ev.At)
	case EventMetric:
		mc.add(ev.Name, ev.Value, ev.Tags, ev.At)
	}
}

func (mc *MetricsCollector) add(name string, value float64, tags map[string]string, at time.Time) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if mc.metrics == nil {
		return
	}

	key := name
	for k, v := range tags {
		key += ":" + k + "=" + v
	}

	if m, ok := mc.metrics[key]; ok {
		m.Value += value
		m.Count++
		m.Timestamp = at
		return
	}
	mc.metrics[key] = &Metric{
		Name:      name,
		Value:     value,
		Tags:      cloneTags(tags),
		Timestamp: at,
		Count:     1,
	}
}

// Snapshot returns a copy of every aggregated metric.
func (mc *MetricsCollector) Snapshot() []*Metric {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	out := make([]*Metric, 0, len(mc.metrics))
	for _, m := range mc.metrics {
		c := *m
		c.Tags = cloneTags(m.Tags)
		out = append(out, &c)
	}
	return out
}

// Close implements Hook. A closed collector drops further events.
func (mc *MetricsCollector) Close() error {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.metrics = nil
	return nil
}

func cloneTags(tags map[string]string) map[string]string {
	if tags == nil {
		return nil
	}
	out := make(map[string]string, len(tags))
	for k, v := range tags {
		out[k] = v
	}
	return out
}

// ObservableLogger pairs a charm logger with a set of hooks so that log
// lines and explicit metrics feed the same observability path.
type ObservableLogger struct {
	logger *log.Logger
	mu     sync.RWMutex
	hooks  []Hook
}

// NewObservableLogger wraps logger with an empty hook set.
func NewObservableLogger(logger *log.Logger) *ObservableLogger {
	return &ObservableLogger{logger: logger}
}

// AddHook registers a hook for subsequent events.
func (ol *ObservableLogger) AddHook(hook Hook) {
	ol.mu.Lock()
	defer ol.mu.Unlock()
	ol.hooks = append(ol.hooks, hook)
}

// Debug logs at debug level.
func (ol *ObservableLogger) Debug(msg string, keyvals ...interface{}) {
	ol.logger.Debug(msg, keyvals...)
	ol.emit(context.Background(), Event{Kind: EventLog, Level: log.DebugLevel, Message: msg, KeyVals: keyvals})
}

// Info logs at info level.
func (ol *ObservableLogger) Info(msg string, keyvals ...interface{}) {
	ol.logger.Info(msg, keyvals...)
	ol.emit(context.Background(), Event{Kind: EventLog, Level: log.InfoLevel, Message: msg, KeyVals: keyvals})
}

// Warn logs at warn level.
func (ol *ObservableLogger) Warn(msg string, keyvals ...interface{}) {
	ol.logger.Warn(msg, keyvals...)
	ol.emit(context.Background(), Event{Kind: EventLog, Level: log.WarnLevel, Message: msg, KeyVals: keyvals})
}

// Error logs at error level and emits an error event. When the keyvals
// contain an "err" error value it is attached to the event.
func (ol *ObservableLogger) Error(msg string, keyvals ...interface{}) {
	ol.logger.Error(msg, keyvals...)

	ctx := context.Background()
	ol.emit(ctx, Event{Kind: EventLog, Level: log.ErrorLevel, Message: msg, KeyVals: keyvals})
	ol.emit(ctx, Event{Kind: EventError, Level: log.ErrorLevel, Message: msg, Err: errFromKeyVals(keyvals), KeyVals: keyvals})
}

// With returns a logger that prefixes keyvals onto every line. Hooks are
// shared with the parent.
func (ol *ObservableLogger) With(keyvals ...interface{}) *ObservableLogger {
	return &ObservableLogger{
		logger: ol.logger.With(keyvals...),
		hooks:  ol.hooks,
	}
}

// Metric emits a named metric event to every hook.
func (ol *ObservableLogger) Metric(ctx context.Context, name string, value float64, tags map[string]string) {
	ol.emit(ctx, Event{Kind: EventMetric, Name: name, Value: value, Tags: tags})
}

// Close closes every hook and drops them.
func (ol *ObservableLogger) Close() error {
	ol.mu.Lock()
	defer ol.mu.Unlock()

	for _, hook := range ol.hooks {
		_ = hook.Close()
	}
	ol.hooks = nil
	return nil
}

func (ol *ObservableLogger) emit(ctx context.Context, ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	ol.mu.RLock()
	hooks := make([]Hook, len(ol.hooks))
	copy(hooks, ol.hooks)
	ol.mu.RUnlock()

	for _, hook := range hooks {
		hook.Observe(ctx, ev)
	}
}

func errFromKeyVals(keyvals []interface{}) error {
	for i := 0; i+1 < len(keyvals); i += 2 {
		if key, ok := keyvals[i].(string); ok && key == "err" {
			if err, ok := keyvals[i+1].(error); ok {
				return err
			}
		}
	}
	return nil
}
