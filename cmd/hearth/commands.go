package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/riordanpawley/hearth/internal/config"
	"github.com/riordanpawley/hearth/internal/logging"
	"github.com/riordanpawley/hearth/internal/store"
)

func newLogsCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Work with the saved application logs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var out string
	export := &cobra.Command{
		Use:   "export",
		Short: "Write the saved log entries as plain text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSavedLogs(cmd, opts, func(buf *logging.Buffer) error {
				w := cmd.OutOrStdout()
				if out != "" {
					f, err := os.Create(config.ExpandPath(out))
					if err != nil {
						return err
					}
					defer f.Close()
					w = f
				}
				if err := buf.Export(w, time.Now()); err != nil {
					return fmt.Errorf("failed to export logs: %w", err)
				}
				if out != "" {
					fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d entries to %s\n", buf.Len(), out)
				}
				return nil
			})
		},
	}
	export.Flags().StringVarP(&out, "output", "o", "", "write to a file instead of stdout")

	clear := &cobra.Command{
		Use:   "clear",
		Short: "Delete the saved log entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSavedLogs(cmd, opts, func(buf *logging.Buffer) error {
				n := buf.Len()
				if err := buf.Clear(cmd.Context()); err != nil {
					return fmt.Errorf("failed to clear logs: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d entries\n", n)
				return nil
			})
		},
	}

	cmd.AddCommand(export, clear)
	return cmd
}

// withSavedLogs restores the persisted log ring from the library database
// and hands it to fn. Nothing is logged while fn runs.
func withSavedLogs(cmd *cobra.Command, opts *rootOptions, fn func(*logging.Buffer) error) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	path := cfg.DatabasePath()
	if path == "" {
		return fmt.Errorf("no data directory configured, logs are not saved")
	}

	st, err := store.Open(path, logging.NullLogger())
	if err != nil {
		return fmt.Errorf("failed to open library (is hearth running?): %w", err)
	}
	defer st.Close()

	logOpts := cfg.Logging.Options()
	logOpts.File = ""
	logOpts.Persist = true
	_, buf, err := logging.Setup(cmd.Context(), logOpts, st)
	if err != nil {
		return err
	}
	return fn(buf)
}

func newSettingsCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect the settings file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the settings file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cfg.Storage.SettingsFile)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective settings as TOML",
		Long:  "Print the effective settings as TOML. A missing file is created with defaults.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			mgr, err := config.OpenSettings(cfg.Storage.SettingsFile, logging.NullLogger())
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
			}
			data, err := config.EncodeSettings(mgr.Get())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printVersion(cmd.OutOrStdout())
		},
	}
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "hearth %s (commit: %s, %s %s/%s)\n", Version, Commit, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
