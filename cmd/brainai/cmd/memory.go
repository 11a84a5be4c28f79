package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/brainai/internal/output"
	"github.com/Aman-CERP/brainai/pkg/brain"
)

func newMemoryCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memory",
		Short: "Store, fetch, search and connect memories",
	}
	cmd.AddCommand(newMemoryStoreCmd(g))
	cmd.AddCommand(newMemoryGetCmd(g))
	cmd.AddCommand(newMemorySearchCmd(g))
	cmd.AddCommand(newMemoryConnectCmd(g))
	cmd.AddCommand(newMemoryStrengthenCmd(g))
	return cmd
}

func newMemoryStoreCmd(g *globals) *cobra.Command {
	var (
		memType string
		meta    []string
	)

	cmd := &cobra.Command{
		Use:   "store <content>",
		Short: "Store a memory and print its id",
		Example: `  brainai memory store "the deploy broke on friday" --type episodic --meta team=infra`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mt, err := brain.ParseMemoryType(memType)
			if err != nil {
				return invalidArg(err)
			}
			metadata, err := parseMetadata(meta)
			if err != nil {
				return err
			}

			client, err := g.client()
			if err != nil {
				return err
			}
			id, err := client.StoreMemory(cmd.Context(), args[0], mt, metadata)
			if err != nil {
				return err
			}

			return g.render(cmd, map[string]string{"id": id}, func(out *output.Writer) {
				out.Successf("Stored %s memory %s", mt, id)
			})
		},
	}

	cmd.Flags().StringVar(&memType, "type", string(brain.MemoryEpisodic), "Memory type: episodic, semantic, procedural, emotional")
	cmd.Flags().StringArrayVar(&meta, "meta", nil, "Metadata key=value (repeatable)")
	return cmd
}

func newMemoryGetCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch a memory by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := g.client()
			if err != nil {
				return err
			}
			node, err := client.GetMemory(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return g.render(cmd, node, func(out *output.Writer) {
				out.Header("Memory " + node.ID)
				out.KeyValue("type", node.Type)
				out.KeyValue("content", node.Content)
				out.KeyValue("strength", fmt.Sprintf("%.3f", node.Strength))
				if node.Timestamp > 0 {
					out.KeyValue("stored", time.UnixMilli(node.Timestamp).Format(time.RFC3339))
				}
				if len(node.Connections) > 0 {
					out.KeyValue("connections", node.Connections)
				}
				if len(node.Metadata) > 0 {
					out.Map(map[string]any{"metadata": node.Metadata})
				}
			})
		},
	}
}

func newMemorySearchCmd(g *globals) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search memories by similarity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := g.client()
			if err != nil {
				return err
			}
			results, err := client.SearchMemories(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			return g.render(cmd, results, func(out *output.Writer) {
				printSearchResults(out, results)
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", brain.DefaultSearchLimit, "Maximum results")
	return cmd
}

func printSearchResults(out *output.Writer, results []brain.SearchResult) {
	if len(results) == 0 {
		out.Status("", "No results")
		return
	}
	for i, r := range results {
		out.Statusf(fmt.Sprintf("%2d.", i+1), "%s %.3f  %s", output.Bar(r.Score, 10), r.Score, r.ID)
		if r.Content != nil {
			out.Statusf("", "%v", r.Content)
		}
	}
}

func newMemoryConnectCmd(g *globals) *cobra.Command {
	var strength float64

	cmd := &cobra.Command{
		Use:   "connect <id1> <id2>",
		Short: "Connect two memories",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := g.client()
			if err != nil {
				return err
			}
			if err := client.ConnectMemories(cmd.Context(), args[0], args[1], strength); err != nil {
				return err
			}
			result := map[string]any{"from": args[0], "to": args[1], "strength": strength}
			return g.render(cmd, result, func(out *output.Writer) {
				out.Successf("Connected %s -> %s (strength %.2f)", args[0], args[1], strength)
			})
		},
	}

	cmd.Flags().Float64Var(&strength, "strength", 1.0, "Connection strength")
	return cmd
}

func newMemoryStrengthenCmd(g *globals) *cobra.Command {
	var delta float64

	cmd := &cobra.Command{
		Use:     "strengthen <id>",
		Short:   "Adjust a memory's strength",
		Example: `  brainai memory strengthen m1 --by -0.2`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := g.client()
			if err != nil {
				return err
			}
			if err := client.UpdateMemoryStrength(cmd.Context(), args[0], delta); err != nil {
				return err
			}
			result := map[string]any{"id": args[0], "delta": delta}
			return g.render(cmd, result, func(out *output.Writer) {
				out.Successf("Adjusted strength of %s by %+g", args[0], delta)
			})
		},
	}

	cmd.Flags().Float64Var(&delta, "by", 0.1, "Strength change; negative weakens")
	return cmd
}
