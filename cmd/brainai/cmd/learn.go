package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/brainai/internal/output"
	"github.com/Aman-CERP/brainai/pkg/brain"
)

func newLearnCmd(g *globals) *cobra.Command {
	var contextItems []string

	cmd := &cobra.Command{
		Use:     "learn <pattern>",
		Short:   "Teach the service a pattern",
		Example: `  brainai learn "retry on 503" --context http --context resilience`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := g.client()
			if err != nil {
				return err
			}
			if err := client.Learn(cmd.Context(), args[0], contextItems); err != nil {
				return err
			}
			result := map[string]any{"pattern": args[0], "context": contextItems}
			return g.render(cmd, result, func(out *output.Writer) {
				out.Successf("Learned pattern %q", args[0])
			})
		},
	}

	cmd.Flags().StringArrayVar(&contextItems, "context", nil, "Context item (repeatable)")
	return cmd
}

func newPatternsCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "List learned patterns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := g.client()
			if err != nil {
				return err
			}
			patterns, err := client.LearningPatterns(cmd.Context())
			if err != nil {
				return err
			}

			return g.render(cmd, patterns, func(out *output.Writer) {
				if len(patterns) == 0 {
					out.Status("", "No patterns learned yet")
					return
				}
				out.Header(fmt.Sprintf("%d patterns", len(patterns)))
				for _, p := range patterns {
					out.Statusf("-", "%s (frequency %d, strength %.2f)", p.Pattern, p.Frequency, p.Strength)
					if p.LastUpdated > 0 {
						out.Statusf("", "updated %s", time.UnixMilli(p.LastUpdated).Format(time.RFC3339))
					}
				}
			})
		},
	}
}

func newReasonCmd(g *globals) *cobra.Command {
	var contextItems []string

	cmd := &cobra.Command{
		Use:   "reason <query>",
		Short: "Ask the service to reason about a query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := g.client()
			if err != nil {
				return err
			}
			result, err := client.Reason(cmd.Context(), args[0], contextItems)
			if err != nil {
				return err
			}

			return g.render(cmd, result, func(out *output.Writer) {
				out.Header("Conclusion")
				out.Status("", result.Conclusion)
				out.KeyValue("confidence", fmt.Sprintf("%s %.2f", output.Bar(result.Confidence, 10), result.Confidence))
				if len(result.ReasoningPath) > 0 {
					out.Newline()
					out.Header("Reasoning path")
					for i, step := range result.ReasoningPath {
						out.Statusf(fmt.Sprintf("%2d.", i+1), "%s", step)
					}
				}
				if len(result.SupportingEvidence) > 0 {
					out.Newline()
					out.Header("Evidence")
					for _, e := range result.SupportingEvidence {
						out.Status("-", e)
					}
				}
			})
		},
	}

	cmd.Flags().StringArrayVar(&contextItems, "context", nil, "Context item (repeatable)")
	return cmd
}

func newFeedbackCmd(g *globals) *cobra.Command {
	var reasoning string

	cmd := &cobra.Command{
		Use:       "feedback <positive|negative|neutral> <information>",
		Short:     "Send feedback to the learning system",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(brain.FeedbackPositive), string(brain.FeedbackNegative), string(brain.FeedbackNeutral)},
		RunE: func(cmd *cobra.Command, args []string) error {
			ft, err := brain.ParseFeedbackType(args[0])
			if err != nil {
				return invalidArg(err)
			}

			client, err := g.client()
			if err != nil {
				return err
			}
			if err := client.AddFeedback(cmd.Context(), ft, args[1], reasoning); err != nil {
				return err
			}
			result := map[string]any{"type": ft, "information": args[1]}
			return g.render(cmd, result, func(out *output.Writer) {
				out.Successf("Recorded %s feedback", ft)
			})
		},
	}

	cmd.Flags().StringVar(&reasoning, "reasoning", "", "Why the feedback was given")
	return cmd
}
