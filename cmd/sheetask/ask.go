package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukaji3/sheetask-go/pkg/sheetask/mention"
)

func newAskCmd(flags *rootFlags) *cobra.Command {
	var (
		model  string
		dryRun bool
		render bool
	)
	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a question about the spreadsheet",
		Example: `  sheetask ask --xlsx budget.xlsx 'What is the largest item in @Expenses?'
  sheetask ask --spreadsheet <url> --model gpt-4.1 'Summarize @"Q1 Sales"'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer a.Close()
			ctx := cmd.Context()

			if err := a.openSource(true); err != nil {
				return err
			}
			if _, err := a.openKeys(); err != nil {
				return err
			}
			opts, err := a.options(ctx, dryRun)
			if err != nil {
				return err
			}

			ans, err := a.assistant(opts).Ask(ctx, strings.Join(args, " "), a.modelID(ctx, model))
			if err != nil {
				return err
			}
			a.logger.Debug("answered", zap.String("submission", ans.Submission))

			out := cmd.OutOrStdout()
			if render && !opts.DryRun {
				fmt.Fprint(out, renderMarkdown(ans.Text))
				return nil
			}
			fmt.Fprintln(out, ans.Text)
			return nil
		},
	}
	cmd.Flags().StringVarP(&model, "model", "m", "", "Model id (see 'sheetask models')")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the assembled context instead of calling the model")
	cmd.Flags().BoolVar(&render, "render", false, "Render the answer as terminal markdown")
	return cmd
}

func newContextCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "context [text]",
		Short: "Print the XML context document for the mentions in text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.openSource(true); err != nil {
				return err
			}
			opts, err := a.cfg.Options()
			if err != nil {
				return err
			}

			c, err := a.assistant(opts).Context(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.Document)
			return nil
		},
	}
}

func newMentionsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "mentions [text]",
		Short: "Show which entities the mentions in text resolve to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.openSource(true); err != nil {
				return err
			}
			opts, err := a.cfg.Options()
			if err != nil {
				return err
			}

			meta, err := a.assistant(opts).Refresh(cmd.Context())
			if err != nil {
				return err
			}
			text := strings.Join(args, " ")
			entities := mention.Resolver{Precedence: opts.Precedence}.Parse(text, meta)

			out := cmd.OutOrStdout()
			if len(entities) == 0 {
				fmt.Fprintln(out, mutedStyle.Render("no mentions resolved"))
				return nil
			}
			for _, e := range entities {
				fmt.Fprintf(out, "%s %s %s\n", chip(e.Type, e.Name), e.Raw, mutedStyle.Render(e.Range))
			}
			return nil
		},
	}
}

func newContextsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "contexts",
		Short: "List every sheet, named range and table that can be mentioned",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.openSource(true); err != nil {
				return err
			}

			opts, err := a.cfg.Options()
			if err != nil {
				return err
			}

			meta, err := a.assistant(opts).Refresh(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, meta.Title)
			for _, c := range mention.Candidates(meta) {
				m := c.Mention
				if m == "" {
					m = "(cannot be mentioned)"
				}
				fmt.Fprintf(out, "  %s %s\n", chip(c.Type, c.Label), mutedStyle.Render(m))
			}
			return nil
		},
	}
}
