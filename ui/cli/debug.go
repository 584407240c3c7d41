// Copyright (c) 2026 ToeiRei
// udtc - UTF-8 double transposition cipher
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/toeirei/udtc/internal/config"
	"github.com/toeirei/udtc/internal/logging"
)

func newDebugCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "debug",
		Short: "Dump debug information about config, env, flags and settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, "--- UDTC DEBUG ---")

			path, err := getConfigPathFromCli(cmd)
			if err != nil {
				return err
			}
			v, err := config.NewViper(cmd, config.Defaults(), path)
			if err != nil {
				// Still useful: show where we looked.
				logging.Errorf("could not load config: %v", err)
			} else {
				_, _ = fmt.Fprintf(out, "Config file used: %s\n", v.ConfigFileUsed())
				b, err := json.MarshalIndent(v.AllSettings(), "", "  ")
				if err != nil {
					logging.Errorf("could not marshal settings: %v", err)
				} else {
					_, _ = fmt.Fprintln(out, "-- settings --")
					_, _ = fmt.Fprintln(out, string(b))
				}
			}
			if p, err := config.GetConfigPath(false); err == nil {
				_, _ = fmt.Fprintf(out, "User config path: %s\n", p)
			}
			if p, err := config.GetConfigPath(true); err == nil {
				_, _ = fmt.Fprintf(out, "System config path: %s\n", p)
			}

			_, _ = fmt.Fprintln(out, "-- flags --")
			cmd.Flags().VisitAll(func(f *pflag.Flag) {
				_, _ = fmt.Fprintf(out, "%s = %s\n", f.Name, f.Value.String())
			})

			_, _ = fmt.Fprintln(out, "-- environment (UDTC_*) --")
			for _, e := range os.Environ() {
				if strings.HasPrefix(e, "UDTC_") {
					_, _ = fmt.Fprintln(out, e)
				}
			}
			_, _ = fmt.Fprintln(out, "--- END DEBUG ---")
			return nil
		},
	}
}
