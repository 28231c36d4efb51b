package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"slotgrid/internal/cli"
)

func main() {
	var (
		cfgPath  string
		format   string
		watch    bool
		logLevel string
	)
	flag.StringVar(&cfgPath, "config", "./schedule.yaml", "path to schedule config (yaml or json)")
	flag.StringVar(&format, "format", "json", "output format: json or table")
	flag.BoolVar(&watch, "watch", false, "regenerate when the config file changes")
	flag.StringVar(&logLevel, "log-level", "info", "log level: trace, debug, info, warn, error")
	flag.Parse()

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	run := func() error {
		job, err := cli.Load(cfgPath)
		if err != nil {
			return err
		}
		slots, err := job.Run()
		if err != nil {
			return err
		}
		log.Debug().Int("slots", len(slots)).Msg("generated")
		if format == "table" {
			return cli.RenderTable(os.Stdout, slots)
		}
		return cli.RenderJSON(os.Stdout, slots)
	}

	if !watch {
		if err := run(); err != nil {
			log.Fatal().Err(err).Str("config", cfgPath).Msg("generation failed")
		}
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// First pass up front; later failures keep the last good output.
	if err := run(); err != nil {
		log.Error().Err(err).Str("config", cfgPath).Msg("generation failed")
	}

	w := &cli.Watcher{
		Path: cfgPath,
		Log:  log,
		Run: func() {
			if err := run(); err != nil {
				log.Error().Err(err).Str("config", cfgPath).Msg("generation failed")
			}
		},
	}
	if err := w.Watch(ctx); err != nil {
		log.Fatal().Err(err).Msg("watch failed")
	}
}
