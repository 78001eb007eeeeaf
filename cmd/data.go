package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/shindan/internal/profile"
	"github.com/abhisek/shindan/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write your data to a JSON file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		text, err := e.profiles.Export(cmd.Context())
		if err != nil {
			return err
		}
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = profile.ExportFilename(time.Now())
		}
		return writeOutput(cmd, out, []byte(text+"\n"))
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace your data with a previously exported file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.profiles.Import(cmd.Context(), string(data)); err != nil {
			return err
		}
		e.log.Info("user data imported", zap.String("file", args[0]))
		fmt.Fprintln(cmd.OutOrStdout(), "Imported.")
		return nil
	},
}

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Troubleshooting tools",
}

var debugDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Write every stored key to a JSON file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		dump, err := store.Dump(cmd.Context(), e.store)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(dump, "", "  ")
		if err != nil {
			return fmt.Errorf("encode dump: %w", err)
		}
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = profile.DebugFilename(time.Now())
		}
		return writeOutput(cmd, out, append(data, '\n'))
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all diagnoses, points and rewards",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return errors.New("this deletes all your data; rerun with --yes to confirm")
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.profiles.Clear(cmd.Context()); err != nil {
			return err
		}
		e.log.Info("user data cleared")
		fmt.Fprintln(cmd.OutOrStdout(), "All data cleared.")
		return nil
	},
}

// writeOutput writes data to path, or to stdout when path is "-".
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

// readInput reads path, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func init() {
	exportCmd.Flags().String("out", "", "Output file, or - for stdout (default shindan-data-<date>.json)")
	debugDumpCmd.Flags().String("out", "", "Output file, or - for stdout (default debug-store-<date>.json)")
	resetCmd.Flags().Bool("yes", false, "Confirm deleting all data")

	debugCmd.AddCommand(debugDumpCmd)
}
