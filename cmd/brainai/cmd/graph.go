package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Aman-CERP/brainai/internal/output"
)

func newGraphCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Manage the knowledge graph",
	}
	cmd.AddCommand(newGraphNodeCmd(g))
	cmd.AddCommand(newGraphConnectCmd(g))
	cmd.AddCommand(newGraphNeighborsCmd(g))
	return cmd
}

func newGraphNodeCmd(g *globals) *cobra.Command {
	var (
		nodeType string
		props    []string
	)

	cmd := &cobra.Command{
		Use:   "node <id> <label>",
		Short: "Create a graph node",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			properties, err := parseMetadata(props)
			if err != nil {
				return err
			}
			client, err := g.client()
			if err != nil {
				return err
			}
			if err := client.CreateGraphNode(cmd.Context(), args[0], args[1], nodeType, properties); err != nil {
				return err
			}
			result := map[string]any{"id": args[0], "label": args[1], "type": nodeType}
			return g.render(cmd, result, func(out *output.Writer) {
				out.Successf("Created node %s (%s)", args[0], args[1])
			})
		},
	}

	cmd.Flags().StringVar(&nodeType, "type", "concept", "Node type")
	cmd.Flags().StringArrayVar(&props, "prop", nil, "Property key=value (repeatable)")
	return cmd
}

func newGraphConnectCmd(g *globals) *cobra.Command {
	var weight float64

	cmd := &cobra.Command{
		Use:   "connect <id1> <id2>",
		Short: "Connect two graph nodes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := g.client()
			if err != nil {
				return err
			}
			if err := client.ConnectGraphNodes(cmd.Context(), args[0], args[1], weight); err != nil {
				return err
			}
			result := map[string]any{"from": args[0], "to": args[1], "weight": weight}
			return g.render(cmd, result, func(out *output.Writer) {
				out.Successf("Connected %s -> %s (weight %.2f)", args[0], args[1], weight)
			})
		},
	}

	cmd.Flags().Float64Var(&weight, "weight", 1.0, "Edge weight")
	return cmd
}

func newGraphNeighborsCmd(g *globals) *cobra.Command {
	var depth int

	cmd := &cobra.Command{
		Use:   "neighbors <id>",
		Short: "List nodes reachable from a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := g.client()
			if err != nil {
				return err
			}
			nodes, err := client.GraphNeighbors(cmd.Context(), args[0], depth)
			if err != nil {
				return err
			}
			return g.render(cmd, nodes, func(out *output.Writer) {
				if len(nodes) == 0 {
					out.Statusf("", "%s has no neighbors", args[0])
					return
				}
				for _, n := range nodes {
					out.Statusf("-", "%s  %s [%s] weight %.2f", n.ID, n.Label, n.Type, n.Weight)
				}
			})
		},
	}

	cmd.Flags().IntVar(&depth, "depth", 1, "Traversal depth")
	return cmd
}
