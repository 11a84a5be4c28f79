package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	brainerrors "github.com/Aman-CERP/brainai/internal/errors"
	"github.com/Aman-CERP/brainai/internal/output"
	"github.com/Aman-CERP/brainai/pkg/brain"
)

func newClearCmd(g *globals) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all data on the service",
		Long:  `Delete every memory, vector, pattern and graph node on the service. Requires --yes.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return brainerrors.ValidationError("refusing to clear without --yes", nil).
					WithSuggestion("Run 'brainai clear --yes' to delete all data")
			}
			client, err := g.client()
			if err != nil {
				return err
			}
			if err := client.ClearAll(cmd.Context()); err != nil {
				return err
			}
			return g.render(cmd, map[string]bool{"cleared": true}, func(out *output.Writer) {
				out.Success("Cleared all data")
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion")
	return cmd
}

func newBatchCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "batch <file|->",
		Short: "Send operations from a JSON file in one request",
		Long: `Send a JSON array of operations in one request. Each operation has
type, endpoint, method and data fields. Use - to read from stdin.`,
		Example: `  echo '[{"type":"memory","endpoint":"/api/memory/store","method":"POST","data":{"content":"x"}}]' | brainai batch -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := readBatchOperations(cmd, args[0])
			if err != nil {
				return err
			}
			client, err := g.client()
			if err != nil {
				return err
			}
			results, err := client.Batch(cmd.Context(), ops)
			if err != nil {
				return err
			}
			return g.render(cmd, results, func(out *output.Writer) {
				out.Successf("Sent %d operations, %d results", len(ops), len(results))
				for i, r := range results {
					out.Header(fmt.Sprintf("Result %d", i+1))
					out.Map(r)
				}
			})
		},
	}
}

func readBatchOperations(cmd *cobra.Command, source string) ([]brain.BatchOperation, error) {
	var r io.Reader
	if source == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(source)
		if err != nil {
			return nil, brainerrors.IOError("cannot open batch file "+source, err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	var ops []brain.BatchOperation
	if err := json.NewDecoder(r).Decode(&ops); err != nil {
		return nil, brainerrors.ValidationError("batch input must be a JSON array of operations", err)
	}
	if len(ops) == 0 {
		return nil, brainerrors.ValidationError("batch input contains no operations", nil)
	}
	return ops, nil
}
