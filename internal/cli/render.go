package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"renza-entrega/internal/storage"
)

type renderResult struct {
	ContractID string `json:"contract_id"`
	File       string `json:"file"`
	Bytes      int    `json:"bytes"`
}

func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render <contract-id>",
		Short: "Render the delivery receipt of a contract to a PDF file",
		Long: `Render the delivery receipt of a contract to a PDF file.

Without --output the file is written to the current directory under the
same name the HTTP download uses.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := rootOpts.open(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			// the server warms the logo in the background; here we wait for it
			_ = a.Logo.Refresh(ctx)

			name, pdf, err := a.Reports.ContractReport(ctx, args[0])
			if errors.Is(err, storage.ErrContractNotFound) {
				return fmt.Errorf("contract %q not found", args[0])
			}
			if err != nil {
				return err
			}

			path := output
			if path == "" {
				path = name
			}
			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}
			if err := os.WriteFile(path, pdf, 0o644); err != nil {
				return err
			}

			res := renderResult{ContractID: args[0], File: path, Bytes: len(pdf)}
			if rootOpts.Format == "json" {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(res)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%d bytes)\n", res.ContractID, res.File, res.Bytes)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")

	return cmd
}
