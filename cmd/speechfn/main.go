// Speechfn is a text-to-speech function: it accepts text in an API Gateway
// proxy event, synthesizes it with Amazon Polly (or Google Cloud TTS), and
// returns the MP3 audio base64-encoded in the response envelope.
//
// Inside AWS Lambda it serves the runtime API; elsewhere it serves the same
// handler over HTTP for local development.
//
// Usage:
//
//	speechfn [flags]
//	speechfn --config /path/to/speechfn.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/nadzzz/speechfn/internal/config"
	"github.com/nadzzz/speechfn/internal/health"
	"github.com/nadzzz/speechfn/internal/speech"
	"github.com/nadzzz/speechfn/internal/transport"
	httptransport "github.com/nadzzz/speechfn/internal/transport/http"
	lambdatransport "github.com/nadzzz/speechfn/internal/transport/lambda"
	"github.com/nadzzz/speechfn/internal/tts"
	googletts "github.com/nadzzz/speechfn/internal/tts/google"
	pollytts "github.com/nadzzz/speechfn/internal/tts/polly"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configFile := flag.String("config", "", "path to config file (e.g. configs/speechfn.local.yaml)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("speechfn %s\n", version)
		os.Exit(0)
	}

	// Load configuration.
	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging.
	logFile := config.SetupLogging(cfg.Logging)
	defer logFile.Close()
	slog.Info("speechfn starting", "version", version)

	// Create root context with signal handling for graceful shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// The synthesizer is created once per process and shared by every invocation.
	var synth tts.Synthesizer
	switch cfg.TTS.Backend {
	case "polly":
		synth, err = pollytts.New(ctx, cfg.TTS.Polly)
		slog.Info("using Polly synthesizer",
			"voice", cfg.TTS.Polly.Voice,
			"format", cfg.TTS.Polly.OutputFormat)
	case "google":
		synth, err = googletts.New(ctx, cfg.TTS.Google)
		slog.Info("using Google synthesizer",
			"voice", cfg.TTS.Google.Voice,
			"language", cfg.TTS.Google.Language)
	}
	if err != nil {
		slog.Error("failed to create synthesizer", "backend", cfg.TTS.Backend, "error", err)
		os.Exit(1)
	}
	defer synth.Close()

	handler := speech.New(synth, tts.SynthesizeOpts{})

	// Initialize enabled transports.
	var transports []transport.Transport
	if cfg.Transports.Lambda.Enabled {
		transports = append(transports, lambdatransport.New())
	}
	if cfg.Transports.HTTP.Enabled {
		transports = append(transports, httptransport.New(cfg.Transports.HTTP.Port))
	}

	// Start health check servers.
	var healthServer *health.Server
	if cfg.Server.HealthEnabled {
		healthServer = health.New(cfg.Server.HealthPort)
		go func() {
			if err := healthServer.ListenAndServe(ctx); err != nil {
				slog.Error("health server failed", "error", err)
			}
		}()
		if cfg.Server.GRPCHealthPort > 0 {
			go func() {
				if err := healthServer.ListenGRPC(ctx, cfg.Server.GRPCHealthPort); err != nil {
					slog.Error("grpc health service failed", "error", err)
				}
			}()
		}
	}

	// Start all transports.
	var wg sync.WaitGroup
	for _, t := range transports {
		wg.Add(1)
		go func(t transport.Transport) {
			defer wg.Done()
			slog.Info("starting transport", "name", t.Name())
			if err := t.Listen(ctx, handler.Handle); err != nil {
				slog.Error("transport failed", "name", t.Name(), "error", err)
			}
		}(t)
	}

	if healthServer != nil {
		healthServer.SetReady(true)
	}
	slog.Info("speechfn ready", "transports", len(transports), "backend", synth.Name())

	// Block until shutdown signal.
	<-ctx.Done()
	slog.Info("shutdown signal received, draining...")

	for _, t := range transports {
		if err := t.Close(); err != nil {
			slog.Error("transport close error", "name", t.Name(), "error", err)
		}
	}

	wg.Wait()
	slog.Info("speechfn stopped")
}
