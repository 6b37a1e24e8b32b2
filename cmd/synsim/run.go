package main

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cognicore/synsim/pkg/synsim"
	"github.com/cognicore/synsim/pkg/synsim/config"
	"github.com/cognicore/synsim/pkg/synsim/report"
	"github.com/cognicore/synsim/pkg/synsim/store/sqlite"
)

type runOptions struct {
	config string
	window int
	report string
	ledger string
}

func newRunCmd(g *globalOptions) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build the model and evaluate every question set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig(opts.config)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("window") {
				cfg.Window = opts.window
			}
			if opts.report != "" {
				cfg.Report = opts.report
			}
			if opts.ledger != "" {
				cfg.Ledger = opts.ledger
			}
			log := g.logger(cfg, cmd.ErrOrStderr())
			_, err = runEvaluation(cmd.Context(), cfg, log, cmd.OutOrStdout())
			return err
		},
	}
	cmd.Flags().StringVarP(&opts.config, "config", "c", "synsim.yaml", "path to the YAML configuration")
	cmd.Flags().IntVarP(&opts.window, "window", "w", 0, "co-occurrence window size (overrides config)")
	cmd.Flags().StringVar(&opts.report, "report", "", "write a JSON report to this path (overrides config)")
	cmd.Flags().StringVar(&opts.ledger, "ledger", "", "record the run in this SQLite ledger (overrides config)")
	return cmd
}

// runEvaluation executes one full run and prints a per-set summary to out.
func runEvaluation(ctx context.Context, cfg *config.Config, log *logrus.Logger, out io.Writer) (report.Report, error) {
	loader := &config.Loader{
		Config: cfg,
		Warn: func(path string, line int, err error) {
			log.WithFields(logrus.Fields{"path": path, "line": line}).WithError(err).Warn("skipped corpus record")
		},
	}
	comp, err := loader.Load(ctx)
	if err != nil {
		return report.Report{}, err
	}
	log.WithFields(logrus.Fields{
		"root":  cfg.Corpus.Root,
		"files": len(comp.Files),
		"sets":  len(comp.Questions),
	}).Info("corpus selected")

	model, err := synsim.Build(ctx, comp.Corpus, synsim.Options{
		Window:    cfg.Window,
		Logger:    log,
		CacheSize: cfg.CacheSize,
	})
	if err != nil {
		return report.Report{}, err
	}

	results := make([]report.SetResult, 0, len(comp.Questions))
	for _, qs := range comp.Questions {
		preds, sum, err := model.Evaluate(qs.Questions)
		if err != nil {
			return report.Report{}, fmt.Errorf("evaluate %s: %w", qs.Name, err)
		}
		for _, p := range preds {
			log.WithFields(logrus.Fields{
				"set":        qs.Name,
				"position":   p.Position,
				"target":     p.Target,
				"choice":     p.Choice,
				"expected":   p.Expected,
				"similarity": p.Similarity,
				"correct":    p.Correct,
			}).Debug("question answered")
		}
		log.WithFields(logrus.Fields{
			"set":       qs.Name,
			"total":     sum.Total,
			"correct":   sum.Correct,
			"wrong":     sum.Wrong(),
			"no_answer": sum.NoAnswer,
			"accuracy":  sum.Accuracy(),
		}).Info("question set evaluated")
		results = append(results, report.SetResult{
			Name:        qs.Name,
			Path:        qs.Path,
			Predictions: preds,
			Summary:     sum,
		})
	}

	rep := report.New().Build(model, comp.Files, results)

	tbl := newTable(out)
	tbl.row("set", "total", "correct", "wrong", "no_answer", "accuracy", "coverage")
	for _, s := range rep.Sets {
		tbl.row(s.Name, s.Summary.Total, s.Summary.Correct, s.Summary.Wrong, s.Summary.NoAnswer,
			s.Summary.Accuracy, s.Summary.Coverage)
	}
	if err := tbl.flush(); err != nil {
		return rep, err
	}
	fmt.Fprintf(out, "run %s\n", rep.ID)

	if cfg.Report != "" {
		if err := rep.WriteJSON(cfg.Report); err != nil {
			return rep, fmt.Errorf("write report: %w", err)
		}
		log.WithField("path", cfg.Report).Info("report written")
	}

	if cfg.Ledger != "" {
		st, err := sqlite.OpenSQLite(ctx, cfg.Ledger)
		if err != nil {
			return rep, err
		}
		defer st.Close()
		if err := st.SaveRun(ctx, rep.Run()); err != nil {
			return rep, fmt.Errorf("record run: %w", err)
		}
		log.WithFields(logrus.Fields{"ledger": cfg.Ledger, "run": rep.ID}).Info("run recorded")
	}
	return rep, nil
}
