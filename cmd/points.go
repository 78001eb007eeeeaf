package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var pointsCmd = &cobra.Command{
	Use:   "points",
	Short: "Show the point balance",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ud, err := e.profiles.Read(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d pts\n", ud.Points)
		return nil
	},
}

var pointsSetCmd = &cobra.Command{
	Use:   "set <n>",
	Short: "Replace the point balance",
	Example: `  shindan points set 40
  shindan points set -- -5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("points must be an integer: %w", err)
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.profiles.UpdatePoints(cmd.Context(), n); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d pts\n", n)
		return nil
	},
}

func init() {
	// A negative balance looks like a shorthand flag to the parser.
	pointsSetCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		if strings.HasPrefix(err.Error(), "unknown shorthand flag") {
			return fmt.Errorf("%w (for a negative balance use: shindan points set -- -5)", err)
		}
		return err
	})
	pointsCmd.AddCommand(pointsSetCmd)
}
