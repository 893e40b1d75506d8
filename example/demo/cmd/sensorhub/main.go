// Package main runs a small sensor-hub demo on top of the event registry:
// domain events dispatched on topics, an audit trail writing envelopes to
// stdout, a one-shot calibration reminder, and an observed target-temperature
// property guarded by a before-set handler.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/timofurrer/observable"
	"github.com/timofurrer/observable/example/shared/core"
	"github.com/timofurrer/observable/example/shared/shell"
	"github.com/timofurrer/observable/oteladapters"
	"github.com/timofurrer/observable/property"
)

const (
	sensorLocation = "greenhouse"
	readingLimit   = 30.0
	minTarget      = 5.0
	maxTarget      = 30.0
)

func main() {
	ctx := context.Background()

	logHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	demoLog := slog.New(logHandler)

	registry, err := observable.NewRegistry(
		observable.WithContextualLogger(oteladapters.NewSlogBridgeLoggerWithHandler(logHandler)),
	)
	if err != nil {
		log.Fatalf("Failed to create registry: %v", err)
	}

	trail := shell.NewAuditTrail(os.Stdout)
	trail.Subscribe(registry,
		shell.TopicSensorRegistered,
		shell.TopicReadingRecorded,
		shell.TopicThresholdExceeded,
	)

	registry.On(shell.TopicCalibrationDue, observable.NewNamedHandler("calibration-team",
		func(_ context.Context, call observable.Call) error {
			demoLog.Info("calibration requested", "sensor_id", call.Args[0])
			return nil
		},
	))

	// The first recorded reading schedules a calibration check; the wrapper
	// unregisters itself before running, so this fires exactly once.
	registry.Once(shell.TopicReadingRecorded, observable.NewNamedHandler("calibration-reminder",
		func(ctx context.Context, call observable.Call) error {
			reading := call.Args[0].(core.ReadingRecorded)
			_, err := registry.Trigger(ctx, shell.TopicCalibrationDue, reading.SensorID)
			return err
		},
	))

	// A reading above the limit re-enters the registry with a
	// ThresholdExceeded dispatch of its own.
	registry.On(shell.TopicReadingRecorded, observable.NewNamedHandler("threshold-watch",
		func(ctx context.Context, call observable.Call) error {
			reading, ok := call.Args[0].(core.ReadingRecorded)
			if !ok || reading.Value <= readingLimit {
				return nil
			}

			sensorID, err := uuid.Parse(reading.SensorID)
			if err != nil {
				return err
			}

			exceeded := core.BuildThresholdExceeded(sensorID, reading.Value, readingLimit, time.Now())
			_, err = registry.Trigger(ctx, shell.TopicThresholdExceeded, exceeded)

			return err
		},
	))

	hub := &sensorHub{Registry: registry, targetTemperature: 21.0}

	target, err := property.New("target_temperature", property.Accessors[float64]{
		Get: func(_ context.Context) (float64, error) {
			return hub.targetTemperature, nil
		},
		Set: func(_ context.Context, value float64) error {
			hub.targetTemperature = value
			return nil
		},
	}, property.WithSource(hub))
	if err != nil {
		log.Fatalf("Failed to create target property: %v", err)
	}

	registry.On(property.BeforeEventName(property.AccessSet, target.EventName()),
		observable.NewNamedHandler("target-guard",
			func(_ context.Context, call observable.Call) error {
				value := call.Args[0].(float64)
				if value < minTarget || value > maxTarget {
					return fmt.Errorf("target %.1f is outside the safe range [%.1f, %.1f]", value, minTarget, maxTarget)
				}
				return nil
			},
		))

	registry.On(property.AfterEventName(property.AccessSet, target.EventName()),
		observable.NewNamedHandler("target-log",
			func(_ context.Context, call observable.Call) error {
				demoLog.Info("target temperature changed", "value", call.Args[0])
				return nil
			},
		))

	runScenario(ctx, registry, target, demoLog)

	demoLog.Info("registry state before shutdown",
		"events", registry.EventNames(),
		"reading_handlers", registry.HandlerCount(shell.TopicReadingRecorded),
	)

	if err := trail.Unsubscribe(registry,
		shell.TopicSensorRegistered,
		shell.TopicReadingRecorded,
		shell.TopicThresholdExceeded,
	); err != nil {
		log.Fatalf("Failed to unsubscribe audit trail: %v", err)
	}

	registry.Clear()
}

func runScenario(
	ctx context.Context,
	registry *observable.Registry,
	target *property.Observed[float64],
	demoLog *slog.Logger,
) {
	sensorID := uuid.New()

	registered := core.BuildSensorRegistered(sensorID, sensorLocation, time.Now())
	if _, err := registry.Trigger(ctx, shell.TopicSensorRegistered, registered); err != nil {
		log.Fatalf("Failed to dispatch sensor registration: %v", err)
	}

	for _, value := range []float64{21.3, 24.8, 31.2} {
		reading := core.BuildReadingRecorded(uuid.New(), sensorID, value, "celsius", time.Now())
		if _, err := registry.Trigger(ctx, shell.TopicReadingRecorded, reading); err != nil {
			log.Fatalf("Failed to dispatch reading: %v", err)
		}
	}

	if err := target.Set(ctx, 23.5); err != nil {
		log.Fatalf("Failed to set target temperature: %v", err)
	}

	if err := target.Set(ctx, 42.0); err != nil {
		demoLog.Warn("target change rejected", "error", err)
	}

	value, err := target.Get(ctx)
	if err != nil {
		log.Fatalf("Failed to read target temperature: %v", err)
	}

	demoLog.Info("current target temperature", "value", value)
}

// sensorHub owns the demo state and is its own registry source through the
// embedded registry.
type sensorHub struct {
	*observable.Registry
	targetTemperature float64
}
