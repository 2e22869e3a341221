package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"bookstore-ranking/internal/config"
	"bookstore-ranking/internal/domains/ingestion/model"
	"bookstore-ranking/internal/domains/ingestion/service"
	"bookstore-ranking/pkg/container"
)

// maxParallelFiles bounds concurrent files; each holds one pool connection at a time.
const maxParallelFiles = 4

type ingestFlags struct {
	encoding    string
	onDuplicate string
}

func newIngestCmd() *cobra.Command {
	flags := &ingestFlags{}

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Load catalog or sales files without going through HTTP",
	}
	cmd.PersistentFlags().StringVar(&flags.encoding, "encoding", "", "input encoding: utf-8 or windows-1252 (default from INGEST_ENCODING)")
	cmd.PersistentFlags().StringVar(&flags.onDuplicate, "on-duplicate", "", "duplicate isbn13 policy: skip or update (default from INGEST_ON_DUPLICATE)")

	cmd.AddCommand(
		newIngestKindCmd(model.KindCatalog, "Load book catalog files (isbn13;titulo;autor;editorial;texto_bic_materia_destacada)", flags),
		newIngestKindCmd(model.KindSales, "Load sales files (isbn13;fecha;ventas)", flags),
	)
	return cmd
}

func newIngestKindCmd(kind model.Kind, short string, flags *ingestFlags) *cobra.Command {
	return &cobra.Command{
		Use:   string(kind) + " <file>...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if flags.encoding != "" {
				cfg.Ingest.Encoding = flags.encoding
			}
			if flags.onDuplicate != "" {
				cfg.Ingest.OnDuplicate = flags.onDuplicate
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			return runIngest(cmd.Context(), cfg, kind, args)
		},
	}
}

// runIngest loads every file concurrently, rows within a file in order.
// A stream-level failure in one file does not stop the others; the command
// still exits non-zero.
func runIngest(ctx context.Context, cfg *config.Config, kind model.Kind, files []string) error {
	appContainer, err := container.NewContainer(ctx, cfg)
	if err != nil {
		return err
	}
	defer appContainer.Cleanup()

	svc := appContainer.IngestionService

	var g errgroup.Group
	g.SetLimit(maxParallelFiles)
	errs := make([]error, len(files))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			errs[i] = ingestFile(ctx, svc, kind, path)
			return nil
		})
	}
	_ = g.Wait()

	if err := errors.Join(errs...); err != nil {
		log.Error().Err(err).Msg("Ingestion finished with failures")
		return err
	}
	return nil
}

func ingestFile(ctx context.Context, svc service.ServiceInterface, kind model.Kind, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", path, model.ErrUnreadableInput, err)
	}
	defer f.Close()

	ingest := svc.IngestCatalog
	if kind == model.KindSales {
		ingest = svc.IngestSales
	}

	result, err := ingest(ctx, f, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	fmt.Println(result.Summary())
	return nil
}
