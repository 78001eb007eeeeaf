package cmd

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/shindan/internal/aptitude"
	"github.com/abhisek/shindan/internal/profile"
	"github.com/abhisek/shindan/internal/quiz"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score answers without the interactive app",
	Example: `  shindan score --answer q1=creativity --answer q3=5
  shindan score --save --answer q1=growth --answer q2=structured ... --answer q10=learning`,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetStringArray("answer")
		save, _ := cmd.Flags().GetBool("save")

		sess := quiz.NewSession(profile.TypeJobAptitude, aptitude.Questions(), nil)
		for _, a := range raw {
			id, v, err := parseAnswer(a)
			if err != nil {
				return err
			}
			if err := sess.Answer(id, v); err != nil {
				return err
			}
		}

		if !save {
			printResult(cmd, aptitude.ComputeResult(sess.Answers()))
			return nil
		}

		d, err := sess.Complete()
		if err != nil {
			return fmt.Errorf("--save needs every question answered: %w", err)
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.profiles.AddDiagnosis(cmd.Context(), d); err != nil {
			return fmt.Errorf("save diagnosis: %w", err)
		}
		e.log.Info("diagnosis saved", zap.String("id", d.ID), zap.String("type", d.Result.Type))

		printResult(cmd, d.Result)
		fmt.Fprintf(cmd.OutOrStdout(), "\nSaved as %s (+%d pts)\n", d.ID, profile.DiagnosisPoints)
		return nil
	},
}

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List the diagnosis questions and their answer values",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for _, q := range aptitude.Questions() {
			fmt.Fprintf(out, "%s  %s\n", q.ID, q.Text)
			if q.Kind == aptitude.KindScale {
				fmt.Fprintf(out, "      %d..%d\n", q.Min, q.Max)
				continue
			}
			for _, o := range q.Options {
				fmt.Fprintf(out, "      %-14s %s\n", o.Value, o.Label)
			}
		}
	},
}

func init() {
	scoreCmd.Flags().StringArray("answer", nil, "Answer as <question>=<value>, repeatable")
	scoreCmd.Flags().Bool("save", false, "Record the diagnosis and award points (requires all answers)")
}

// parseAnswer parses "q3=4" or "q1=growth" against the question catalog.
func parseAnswer(s string) (string, aptitude.Value, error) {
	id, raw, ok := strings.Cut(s, "=")
	if !ok || id == "" || raw == "" {
		return "", aptitude.Value{}, fmt.Errorf("answer %q: want <question>=<value>", s)
	}
	q, ok := aptitude.QuestionByID(id)
	if !ok {
		return "", aptitude.Value{}, fmt.Errorf("answer %q: unknown question %s", s, id)
	}

	if q.Kind == aptitude.KindScale {
		n, err := strconv.Atoi(raw)
		if err != nil || n < q.Min || n > q.Max {
			return "", aptitude.Value{}, fmt.Errorf("answer %q: %s takes a number from %d to %d", s, id, q.Min, q.Max)
		}
		return id, aptitude.NumberValue(float64(n)), nil
	}

	values := make([]string, len(q.Options))
	for i, o := range q.Options {
		values[i] = o.Value
	}
	if !slices.Contains(values, raw) {
		return "", aptitude.Value{}, fmt.Errorf("answer %q: %s takes one of %s", s, id, strings.Join(values, ", "))
	}
	return id, aptitude.StringValue(raw), nil
}
