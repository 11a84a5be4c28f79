package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/brainai/internal/output"
	"github.com/Aman-CERP/brainai/pkg/brain"
	"github.com/Aman-CERP/brainai/pkg/vecmath"
)

func newVectorCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vector",
		Short: "Vector math and vector storage",
		Long: `Vector math and vector storage.

Vectors are written as comma-separated numbers: 0.1,0.2,0.3.
similarity, distance, normalize and random run locally.
Put -- before vectors that start with a minus sign:

  brainai vector similarity -- -1,0 0,1`,
	}
	cmd.AddCommand(newVectorSimilarityCmd(g))
	cmd.AddCommand(newVectorDistanceCmd(g))
	cmd.AddCommand(newVectorNormalizeCmd(g))
	cmd.AddCommand(newVectorRandomCmd(g))
	cmd.AddCommand(newVectorStoreCmd(g))
	cmd.AddCommand(newVectorSearchCmd(g))
	return cmd
}

func parseVectorPair(args []string) ([]float64, []float64, error) {
	a, err := parseVector(args[0])
	if err != nil {
		return nil, nil, err
	}
	b, err := parseVector(args[1])
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func newVectorSimilarityCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "similarity <a> <b>",
		Short: "Cosine similarity of two vectors",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, b, err := parseVectorPair(args)
			if err != nil {
				return err
			}
			sim, err := vecmath.CosineSimilarity(a, b)
			if err != nil {
				return err
			}
			return g.render(cmd, map[string]any{"similarity": jsonFloat(sim)}, func(out *output.Writer) {
				out.Println(sim)
			})
		},
	}
}

func newVectorDistanceCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "distance <a> <b>",
		Short: "Euclidean distance between two vectors",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, b, err := parseVectorPair(args)
			if err != nil {
				return err
			}
			dist, err := vecmath.EuclideanDistance(a, b)
			if err != nil {
				return err
			}
			return g.render(cmd, map[string]any{"distance": jsonFloat(dist)}, func(out *output.Writer) {
				out.Println(dist)
			})
		},
	}
}

func newVectorNormalizeCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <v>",
		Short: "Scale a vector to unit length",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseVector(args[0])
			if err != nil {
				return err
			}
			n := vecmath.Normalize(v)
			return g.render(cmd, jsonFloats(n), func(out *output.Writer) {
				out.Println(formatVector(n))
			})
		},
	}
}

func newVectorRandomCmd(g *globals) *cobra.Command {
	var (
		minVal, maxVal float64
		seed           uint64
	)

	cmd := &cobra.Command{
		Use:   "random <dimensions>",
		Short: "Generate a random vector in [min, max)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dims, err := strconv.Atoi(args[0])
			if err != nil {
				return invalidArg(fmt.Errorf("dimensions %q is not an integer", args[0]))
			}

			var v []float64
			if cmd.Flags().Changed("seed") {
				v, err = vecmath.NewGenerator(seed).Vector(dims, minVal, maxVal)
			} else {
				v, err = vecmath.RandomVector(dims, minVal, maxVal)
			}
			if err != nil {
				return err
			}
			return g.render(cmd, v, func(out *output.Writer) {
				out.Println(formatVector(v))
			})
		},
	}

	cmd.Flags().Float64Var(&minVal, "min", -1, "Lower bound (inclusive)")
	cmd.Flags().Float64Var(&maxVal, "max", 1, "Upper bound (exclusive)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for a reproducible vector")
	return cmd
}

func newVectorStoreCmd(g *globals) *cobra.Command {
	var (
		meta        []string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "store <vector>...",
		Short: "Store one or more vectors and print their ids",
		Example: `  brainai vector store 0.1,0.2,0.3 --meta source=docs
  brainai vector store 1,0,0 0,1,0 0,0,1 --concurrency 2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			metadata, err := parseMetadata(meta)
			if err != nil {
				return err
			}

			entries := make([]brain.VectorEntry, len(args))
			for i, arg := range args {
				v, err := parseVector(arg)
				if err != nil {
					return err
				}
				entries[i] = brain.VectorEntry{Vector: v, Metadata: metadata}
			}

			client, err := g.client()
			if err != nil {
				return err
			}
			ids, err := client.StoreVectors(cmd.Context(), entries, concurrency)
			if err != nil {
				return err
			}

			return g.render(cmd, map[string][]string{"ids": ids}, func(out *output.Writer) {
				for _, id := range ids {
					out.Successf("Stored vector %s", id)
				}
			})
		},
	}

	cmd.Flags().StringArrayVar(&meta, "meta", nil, "Metadata key=value applied to every vector (repeatable)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Parallel uploads (default: client pool size)")
	return cmd
}

func newVectorSearchCmd(g *globals) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <vector>",
		Short: "Find stored vectors similar to a vector",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseVector(args[0])
			if err != nil {
				return err
			}
			client, err := g.client()
			if err != nil {
				return err
			}
			results, err := client.SearchSimilarVectors(cmd.Context(), v, limit)
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
