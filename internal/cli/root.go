package cli

import (
	"context"
	"fmt"

	"water-dashboard/config"
	"water-dashboard/internal/catalog"
	"water-dashboard/internal/ledger"
	"water-dashboard/internal/store"
	"water-dashboard/internal/util"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

type rootOptions struct {
	backend string
	dataDir string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "ledgerctl",
		Short:         "Inspect and edit the water-delivery order ledger",
		Long:          "ledgerctl reads the order ledger from the configured storage backend, places orders against the catalog and exports the ledger as a spreadsheet.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			util.InitQuietLogger()
		},
	}
	cmd.PersistentFlags().StringVar(&opts.backend, "backend", "", "storage backend: file, memory, redis or postgres (default from STORAGE_BACKEND)")
	cmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "directory of the file backend (default from DATA_DIR)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newCatalogCmd())
	cmd.AddCommand(newOrdersCmd(opts))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

// openLedger opens the configured backend and restores the ledger from it.
// The caller closes the returned backend.
func (o *rootOptions) openLedger(ctx context.Context) (*ledger.Ledger, store.Backend, error) {
	cfg := config.Load()
	if o.backend != "" {
		cfg.Storage.Backend = o.backend
	}
	if o.dataDir != "" {
		cfg.Storage.DataDir = o.dataDir
	}

	backend, err := store.OpenBackend(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("opening storage: %w", err)
	}

	l := ledger.Open(ctx, backend, catalog.New())
	if !l.Loaded() {
		_ = backend.Close()
		return nil, nil, fmt.Errorf("reading ledger from %s storage failed", cfg.Storage.Backend)
	}
	return l, backend, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show ledgerctl version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "ledgerctl %s (%s)\n", version, commit)
			return nil
		},
	}
}

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List clients and products",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := catalog.New()
			fmt.Fprint(cmd.OutOrStdout(), RenderCatalog(p.ListClients(), p.ListProducts()))
			return nil
		},
	}
}
