package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cognicore/synsim/pkg/synsim/store"
	"github.com/cognicore/synsim/pkg/synsim/store/sqlite"
)

func newRunsCmd() *cobra.Command {
	var (
		ledger      string
		limit       int
		predictions string
	)
	cmd := &cobra.Command{
		Use:   "runs [RUN_ID]",
		Short: "List recorded runs, or show one run",
		Long: `List the newest runs recorded in a ledger. With a run ID, show its question
sets; add --predictions SET to print that set's answers.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if ledger == "" {
				return errors.New("--ledger is required")
			}
			ctx := cmd.Context()
			st, err := sqlite.OpenSQLite(ctx, ledger)
			if err != nil {
				return err
			}
			defer st.Close()

			tbl := newTable(cmd.OutOrStdout())
			if len(args) == 0 {
				runs, err := st.ListRuns(ctx, limit)
				if err != nil {
					return err
				}
				tbl.row("id", "created", "window", "documents", "vocab", "sets")
				for _, r := range runs {
					tbl.row(r.ID, r.CreatedAt.Format(time.RFC3339), r.Window, r.Documents, r.VocabSize, setSummary(r))
				}
				return tbl.flush()
			}

			run, err := st.GetRun(ctx, args[0])
			if err != nil {
				return err
			}
			if predictions == "" {
				tbl.row("set", "total", "correct", "no_answer", "accuracy", "mean_similarity")
				for _, s := range run.Sets {
					tbl.row(s.Name, s.Total, s.Correct, s.NoAnswer, s.Accuracy(), s.MeanSimilarity)
				}
				return tbl.flush()
			}

			preds, err := st.Predictions(ctx, run.ID, predictions)
			if err != nil {
				return err
			}
			tbl.row("position", "target", "choice", "expected", "similarity", "correct")
			for _, p := range preds {
				choice := p.Choice
				if !p.Answered {
					choice = "-"
				}
				tbl.row(p.Position, p.Target, choice, p.Expected, p.Similarity, p.Correct)
			}
			return tbl.flush()
		},
	}
	cmd.Flags().StringVarP(&ledger, "ledger", "l", "", "path to the SQLite ledger")
	cmd.Flags().IntVarP(&limit, "limit", "n", store.DefaultListLimit, "maximum runs to list")
	cmd.Flags().StringVar(&predictions, "predictions", "", "print the predictions of this question set")
	return cmd
}

// setSummary renders "name=correct/total" for each set of a run.
func setSummary(r store.Run) string {
	parts := make([]string, len(r.Sets))
	for i, s := range r.Sets {
		parts[i] = fmt.Sprintf("%s=%d/%d", s.Name, s.Correct, s.Total)
	}
	return strings.Join(parts, " ")
}
