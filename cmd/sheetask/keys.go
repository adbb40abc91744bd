package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukaji3/sheetask-go/pkg/sheetask/keystore"
)

func newKeyCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage stored API keys and preferences",
		Long: `Manage the local key store. Well-known names:

  ANTHROPIC_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY   provider keys
  LLM_MODEL                                          default model id
  DEBUG_MODE                                         "true" makes ask a dry run

Environment variables and api_keys in the config file take precedence over
stored values.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set NAME VALUE",
			Short: "Store a value",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withKeys(flags, func(keys *keystore.Env) error {
					if err := keys.Set(cmd.Context(), args[0], args[1]); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "stored %s\n", args[0])
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "get NAME",
			Short: "Print a value; API keys are masked",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withKeys(flags, func(keys *keystore.Env) error {
					v, err := keys.Get(cmd.Context(), args[0])
					if errors.Is(err, keystore.ErrNotFound) {
						return fmt.Errorf("%s is not set", args[0])
					}
					if err != nil {
						return err
					}
					if keystore.IsSecret(args[0]) {
						v = keystore.Mask(v)
					}
					fmt.Fprintln(cmd.OutOrStdout(), v)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "delete NAME",
			Short: "Remove a stored value",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withKeys(flags, func(keys *keystore.Env) error {
					return keys.Delete(cmd.Context(), args[0])
				})
			},
		},
	)
	return cmd
}

func withKeys(flags *rootFlags, fn func(*keystore.Env) error) error {
	a, err := loadApp(flags)
	if err != nil {
		return err
	}
	defer a.Close()
	keys, err := a.openKeys()
	if err != nil {
		return err
	}
	return fn(keys)
}
