package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"renza-entrega/internal/storage"
)

type contractRow struct {
	ID      string `json:"id"`
	Number  string `json:"numero_contrato"`
	Client  string `json:"cliente"`
	Start   string `json:"inicio_montagem"`
	Status  string `json:"status"`
	Pending int    `json:"itens_pendentes"`
}

func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List stored contracts",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rootOpts.open(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			list, err := a.Store.Contracts(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([]contractRow, 0, len(list))
			for i := range list {
				rows = append(rows, toRow(&list[i]))
			}

			if rootOpts.Format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			return writeTable(cmd.OutOrStdout(), rows)
		},
	}
}

func toRow(c *storage.Contract) contractRow {
	status := "PENDENTE"
	if c.Finalized() {
		status = "FINALIZADO"
	}
	return contractRow{
		ID:      c.ID,
		Number:  c.Number,
		Client:  c.ClientName,
		Start:   c.AssemblyStart,
		Status:  status,
		Pending: len(c.PendingItems),
	}
}

func writeTable(w io.Writer, rows []contractRow) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCONTRATO\tCLIENTE\tINÍCIO\tSTATUS\tPENDENTES")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n", r.ID, r.Number, r.Client, r.Start, r.Status, r.Pending)
	}
	return tw.Flush()
}
