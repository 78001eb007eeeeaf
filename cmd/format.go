package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/shindan/internal/aptitude"
	"github.com/abhisek/shindan/internal/profile"
)

const dateLayout = "2006-01-02 15:04"

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printResult(cmd *cobra.Command, r aptitude.DiagnosisResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n\n%s\n\n", r.Title, r.Type, r.Description)

	tw := newTable(out)
	for _, c := range aptitude.Categories() {
		fmt.Fprintf(tw, "%s\t%d\n", c.Label(), r.Scores[c])
	}
	tw.Flush()

	if len(r.Recommendations) > 0 {
		fmt.Fprintln(out, "\nCareers to explore:")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(out, "  - %s\n", rec)
		}
	}
}

func printDiagnosis(cmd *cobra.Command, d profile.Diagnosis) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:        %s\nType:      %s\nCompleted: %s\n\n",
		d.ID, d.Type, d.CompletedAt.Local().Format(dateLayout))
	printResult(cmd, d.Result)

	if len(d.Answers) > 0 {
		fmt.Fprintln(out, "\nAnswers:")
		tw := newTable(out)
		for _, a := range d.Answers {
			fmt.Fprintf(tw, "  %s\t%s\n", a.QuestionID, a.Value)
		}
		tw.Flush()
	}
}

func localDate(t time.Time) string {
	return t.Local().Format(dateLayout)
}
