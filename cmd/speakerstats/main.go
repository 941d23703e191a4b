// Command speakerstats computes per-speaker statistics for a manifest of
// transcript payloads and writes a Parquet stats artifact next to each one.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/debatelab/speakerkit/batch"
	"github.com/debatelab/speakerkit/config"
	"github.com/debatelab/speakerkit/identity"
	_ "github.com/debatelab/speakerkit/identity/sqlite"
	"github.com/debatelab/speakerkit/logger"
	_ "github.com/debatelab/speakerkit/storage/local"
	_ "github.com/debatelab/speakerkit/storage/s3"
	"github.com/debatelab/speakerkit/version"
)

func main() {
	var (
		configFile   = flag.String("config", "", "path to a YAML config file")
		manifestFile = flag.String("manifest", "", "path to the payload manifest (text, JSON or YAML)")
		workers      = flag.Int("workers", 0, "worker pool size (overrides config)")
		showVersion  = flag.Bool("version", false, "print the version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Get())
		return
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		logger.NewDefault("speakerstats").WithError(err).Fatal("invalid configuration")
	}
	if *workers > 0 {
		cfg.Batch.Workers = *workers
	}

	log := logger.New(&cfg.Logging, cfg.Name)
	log.Info("starting", map[string]interface{}{"version": version.Get().String()})

	// Open the configured identity store up front so a bad driver or path
	// fails the run before any payload is touched.
	idStore, err := identity.Open(cfg.Identity.Store, cfg.Identity.Path)
	if err != nil {
		log.WithError(err).Fatal("failed to open identity store", map[string]interface{}{
			"store": cfg.Identity.Store,
		})
	}
	if closer, ok := idStore.(io.Closer); ok {
		defer closer.Close()
	}
	log.Debug("identity store ready", map[string]interface{}{
		"store": cfg.Identity.Store,
	})

	if *manifestFile == "" {
		log.Fatal("no manifest given, use -manifest")
	}
	data, err := os.ReadFile(*manifestFile)
	if err != nil {
		log.WithError(err).Fatal("failed to read manifest", map[string]interface{}{
			"manifest": *manifestFile,
		})
	}
	locations, err := batch.ParseManifest(data, batch.FormatForPath(*manifestFile))
	if err != nil {
		log.WithError(err).Fatal("invalid manifest", map[string]interface{}{
			"manifest": *manifestFile,
		})
	}

	runner, err := batch.NewRunner(cfg.Batch, log)
	if err != nil {
		log.WithError(err).Fatal("failed to build runner")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := runner.Run(ctx, locations)
	if err != nil {
		log.WithError(err).Fatal("batch run aborted")
	}

	for _, f := range summary.Failures {
		log.WithError(f.Err).Warn("entry failed", map[string]interface{}{
			logger.FieldLocation: f.Location.String(),
		})
	}
	log.Info("done", map[string]interface{}{
		"processed": summary.Processed,
		"failed":    summary.Failed,
	})
	if summary.Processed == 0 && summary.Failed > 0 {
		os.Exit(1)
	}
}
