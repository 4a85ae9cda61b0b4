package observe_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/ledgerview/reqcache/observe"
)

func ExampleNewObserver() {
	cfg := observe.Config{
		ServiceName: "example-service",
		Version:     "1.0.0",
		Tracing:     observe.TracingConfig{Enabled: true, Exporter: "none"},
		Metrics:     observe.MetricsConfig{Enabled: false},
		Logging:     observe.LoggingConfig{Enabled: true, Level: "info"},
	}

	ctx := context.Background()
	obs, err := observe.NewObserver(ctx, cfg)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	defer func() {
		_ = obs.Shutdown(ctx)
	}()

	fmt.Println("Observer created successfully")
	// Output:
	// Observer created successfully
}

func ExampleNewObserver_validation() {
	// Missing service name triggers validation error
	cfg := observe.Config{
		ServiceName: "", // Empty - will fail validation
	}

	ctx := context.Background()
	_, err := observe.NewObserver(ctx, cfg)
	if errors.Is(err, observe.ErrMissingServiceName) {
		fmt.Println("Caught: missing service name")
	}
	// Output:
	// Caught: missing service name
}

func ExampleConfig_Validate() {
	// Valid configuration
	cfg := observe.Config{
		ServiceName: "my-service",
		Version:     "1.0.0",
		Tracing: observe.TracingConfig{
			Enabled:   true,
			Exporter:  "stdout",
			SamplePct: 0.5, // 50% sampling
		},
		Metrics: observe.MetricsConfig{
			Enabled:  true,
			Exporter: "prometheus",
		},
		Logging: observe.LoggingConfig{
			Enabled: true,
			Level:   "info",
		},
	}

	if err := cfg.Validate(); err != nil {
		fmt.Println("Invalid:", err)
	} else {
		fmt.Println("Configuration is valid")
	}
	// Output:
	// Configuration is valid
}

func ExampleOpMeta_SpanName() {
	// Endpoint-scoped operation
	meta := observe.OpMeta{
		Op:       "fetch",
		Endpoint: "transactions",
	}
	fmt.Println(meta.SpanName())

	// Store-wide operation
	meta2 := observe.OpMeta{
		Op: "clear",
	}
	fmt.Println(meta2.SpanName())
	// Output:
	// cache.op.fetch.transactions
	// cache.op.clear
}

func ExampleOpMeta_Label() {
	meta := observe.OpMeta{
		Op:       "patch",
		Endpoint: "transactions",
	}
	fmt.Println(meta.Label())

	meta2 := observe.OpMeta{
		Op: "clear",
	}
	fmt.Println(meta2.Label())
	// Output:
	// patch.transactions
	// clear
}

func ExampleNewLoggerWithWriter() {
	var buf bytes.Buffer
	logger := observe.NewLoggerWithWriter("info", &buf)

	ctx := context.Background()
	logger.Info(ctx, "application started", observe.Field{Key: "version", Value: "1.0.0"})

	// Output contains JSON with timestamp, level, msg, and version field
	fmt.Println("Logged message contains 'application started':", bytes.Contains(buf.Bytes(), []byte("application started")))
	// Output:
	// Logged message contains 'application started': true
}

func ExampleLogger_withOp() {
	var buf bytes.Buffer
	logger := observe.NewLoggerWithWriter("info", &buf)

	meta := observe.OpMeta{
		Op:       "fetch",
		Endpoint: "employee",
	}

	// Create operation-scoped logger
	opLogger := logger.WithOp(meta)

	ctx := context.Background()
	opLogger.Info(ctx, "cache lookup started")

	// Output contains operation context
	output := buf.String()
	fmt.Println("Contains cache.op:", bytes.Contains([]byte(output), []byte("cache.op")))
	fmt.Println("Contains cache.endpoint:", bytes.Contains([]byte(output), []byte("cache.endpoint")))
	// Output:
	// Contains cache.op: true
	// Contains cache.endpoint: true
}

func ExampleMiddleware_Wrap() {
	ctx := context.Background()

	// Create observer with disabled exporters for example
	cfg := observe.Config{
		ServiceName: "example",
		Tracing:     observe.TracingConfig{Enabled: true, Exporter: "none"},
		Metrics:     observe.MetricsConfig{Enabled: true, Exporter: "none"},
		Logging:     observe.LoggingConfig{Enabled: false},
	}
	obs, _ := observe.NewObserver(ctx, cfg)
	defer func() {
		_ = obs.Shutdown(ctx)
	}()

	// Create middleware
	mw, _ := observe.MiddlewareFromObserver(obs)

	// Define the cache operation
	opFn := func(ctx context.Context, meta observe.OpMeta) ([]byte, error) {
		return []byte(`{"status":"ok"}`), nil
	}

	// Wrap with observability
	wrapped := mw.Wrap(opFn)

	// Execute - automatically traced, metered, and logged
	payload, err := wrapped(ctx, observe.OpMeta{
		Op:       "fetch",
		Endpoint: "transactions",
	})

	if err != nil {
		fmt.Println("Error:", err)
	} else {
		fmt.Printf("Payload: %s\n", payload)
	}
	// Output:
	// Payload: {"status":"ok"}
}

func ExampleParseLogLevel() {
	levels := []string{"debug", "info", "warn", "error", "unknown"}
	for _, s := range levels {
		level := observe.ParseLogLevel(s)
		fmt.Printf("%s -> %s\n", s, level)
	}
	// Output:
	// debug -> debug
	// info -> info
	// warn -> warn
	// error -> error
	// unknown -> info
}
