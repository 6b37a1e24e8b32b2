package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/cognicore/synsim/pkg/synsim"
	"github.com/cognicore/synsim/pkg/synsim/corpus"
)

func newSimilarCmd(g *globalOptions) *cobra.Command {
	var (
		cfgPath string
		window  int
	)
	cmd := &cobra.Command{
		Use:   "similar WORD WORD...",
		Short: "Print the similarity of the first word to each following word",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig(cfgPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("window") {
				cfg.Window = window
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			log := g.logger(cfg, cmd.ErrOrStderr())

			ctx := cmd.Context()
			files, err := corpus.Discover(ctx, corpus.DiscoverOptions{
				Root:    cfg.Corpus.Root,
				Include: cfg.Corpus.Include,
				Exclude: cfg.Corpus.Exclude,
			})
			if err != nil {
				return err
			}
			files = corpus.Sample(files, cfg.Corpus.Sample, cfg.Corpus.Seed)
			format, err := corpus.ParseFormat(cfg.Corpus.Format)
			if err != nil {
				return err
			}

			model, err := synsim.Build(ctx, corpus.Files{Paths: files, Format: format}, synsim.Options{
				Window: cfg.Window,
				Logger: log,
			})
			if err != nil {
				return err
			}

			target := strings.ToLower(args[0])
			tbl := newTable(cmd.OutOrStdout())
			for _, w := range args[1:] {
				w = strings.ToLower(w)
				if sim, ok := model.Similarity(target, w); ok {
					tbl.row(target, w, sim)
				} else {
					tbl.row(target, w, "n/a")
				}
			}
			return tbl.flush()
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "synsim.yaml", "path to the YAML configuration")
	cmd.Flags().IntVarP(&window, "window", "w", 0, "co-occurrence window size (overrides config)")
	return cmd
}
