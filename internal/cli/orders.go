package cli

import (
	"fmt"
	"os"

	"water-dashboard/internal/ledger"
	"water-dashboard/internal/service"

	"github.com/spf13/cobra"
)

// maxPlaceQuantity bounds --quantity, which is applied one step at a time
const maxPlaceQuantity = 1000

func newOrdersCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Work with the order ledger",
	}
	cmd.AddCommand(newOrdersListCmd(opts))
	cmd.AddCommand(newOrdersPlaceCmd(opts))
	cmd.AddCommand(newOrdersExportCmd(opts))
	return cmd
}

func newOrdersListCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, backend, err := opts.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer backend.Close()

			orders := l.Orders()
			if jsonOutput {
				data, err := ledger.Encode(orders)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), RenderOrders(orders))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the ledger in its stored JSON form")
	return cmd
}

func newOrdersPlaceCmd(opts *rootOptions) *cobra.Command {
	var (
		client   string
		product  string
		quantity int
	)

	cmd := &cobra.Command{
		Use:   "place",
		Short: "Place an order",
		RunE: func(cmd *cobra.Command, args []string) error {
			if quantity < 1 || quantity > maxPlaceQuantity {
				return fmt.Errorf("quantity must be between 1 and %d, got %d", maxPlaceQuantity, quantity)
			}

			l, backend, err := opts.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer backend.Close()

			var persistErr error
			l.SetPersistErrorHandler(func(err error) { persistErr = err })

			l.SetClient(client)
			l.SetProduct(product)
			for i := 1; i < quantity; i++ {
				l.AdjustQuantity(1)
			}

			record, err := l.Submit(cmd.Context())
			if err != nil {
				return fmt.Errorf("placing order: %w", err)
			}

			fmt.Fprint(cmd.OutOrStdout(), RenderPlaced(record))
			if persistErr != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), service.PersistFailureMessage(persistErr))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&client, "client", "", "client name")
	cmd.Flags().StringVar(&product, "product", "", "product name")
	cmd.Flags().IntVar(&quantity, "quantity", 1, "number of units")
	return cmd
}

func newOrdersExportCmd(opts *rootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the ledger as an XLSX workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, backend, err := opts.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer backend.Close()

			data, err := service.OrdersWorkbook(l.Orders())
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d orders to %s\n", l.Len(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "pedidos.xlsx", "output file")
	return cmd
}
