package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/shindan/internal/aptitude"
	"github.com/abhisek/shindan/internal/profile"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List, inspect, compare and remove past diagnoses",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List completed diagnoses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		term, _ := cmd.Flags().GetString("search")
		sortBy, _ := cmd.Flags().GetString("sort")
		if sortBy != string(profile.SortByDate) && sortBy != string(profile.SortByTitle) {
			return fmt.Errorf("--sort must be %q or %q", profile.SortByDate, profile.SortByTitle)
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ud, err := e.profiles.Read(cmd.Context())
		if err != nil {
			return err
		}
		rows := profile.SearchDiagnoses(ud.CompletedDiagnoses, term, profile.SortKey(sortBy))
		if len(rows) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No diagnoses.")
			return nil
		}

		tw := newTable(cmd.OutOrStdout())
		fmt.Fprintln(tw, "ID\tRESULT\tTYPE\tCOMPLETED")
		for _, d := range rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.ID, d.Result.Title, d.Result.Type, localDate(d.CompletedAt))
		}
		return tw.Flush()
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one diagnosis in full",
	Args:  cobra.ExactArgs(1),
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
		d, ok := ud.Diagnosis(args[0])
		if !ok {
			return fmt.Errorf("diagnosis %q not found", args[0])
		}
		printDiagnosis(cmd, d)
		return nil
	},
}

var historyRemoveCmd = &cobra.Command{
	Use:   "remove <id>...",
	Short: "Remove diagnoses (points are kept)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		n, err := e.profiles.RemoveDiagnoses(cmd.Context(), args)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d of %d diagnoses.\n", n, len(args))
		return nil
	},
}

var historyCompareCmd = &cobra.Command{
	Use:   "compare <id> <id> [<id>]",
	Short: "Compare category scores of two or three diagnoses",
	Args:  cobra.RangeArgs(2, profile.MaxCompare),
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
		list := profile.FindDiagnoses(ud, args)
		if len(list) < 2 {
			return fmt.Errorf("found %d of the given diagnoses, need at least 2", len(list))
		}

		tw := newTable(cmd.OutOrStdout())
		fmt.Fprint(tw, "CATEGORY")
		for _, d := range list {
			fmt.Fprintf(tw, "\t%s (%s)", d.Result.Title, d.CompletedAt.Local().Format("Jan 02"))
		}
		fmt.Fprintln(tw)

		// Every later column is measured against the first diagnosis.
		deltas := make([][]aptitude.ScoreDelta, len(list))
		for i := 1; i < len(list); i++ {
			deltas[i] = aptitude.Compare(list[0].Result.Scores, list[i].Result.Scores)
		}
		for ci, c := range aptitude.Categories() {
			fmt.Fprint(tw, c.Label())
			for i, d := range list {
				fmt.Fprintf(tw, "\t%d", d.Result.Scores[c])
				if i > 0 {
					fmt.Fprintf(tw, " %s", trendText(deltas[i][ci]))
				}
			}
			fmt.Fprintln(tw)
		}
		return tw.Flush()
	},
}

func trendText(d aptitude.ScoreDelta) string {
	switch d.Trend {
	case aptitude.TrendUp:
		return fmt.Sprintf("(+%d)", d.Diff)
	case aptitude.TrendDown:
		return fmt.Sprintf("(-%d)", d.Diff)
	default:
		return "(=)"
	}
}

func init() {
	historyListCmd.Flags().String("search", "", "Filter by result title or type")
	historyListCmd.Flags().String("sort", string(profile.SortByDate), "Sort order: date or title")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyRemoveCmd)
	historyCmd.AddCommand(historyCompareCmd)
}
