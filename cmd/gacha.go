package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/shindan/internal/gacha"
	"github.com/abhisek/shindan/internal/profile"
)

var gachaCmd = &cobra.Command{
	Use:   "gacha",
	Short: "Spend points on the reward draw",
}

var gachaSpinCmd = &cobra.Command{
	Use:   "spin",
	Short: fmt.Sprintf("Draw a reward for %d points", profile.SpinCost),
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		res, err := e.gacha.Spin(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "[%s] %s\n%s\n", res.Definition.Rarity.DisplayName(), res.Reward.Title, res.Reward.Description)
		if res.Definition.Points > 0 {
			fmt.Fprintf(out, "+%d pts\n", res.Definition.Points)
		}
		fmt.Fprintf(out, "Balance: %d pts\n", res.Points)
		return nil
	},
}

var gachaCatalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the rewards that can be drawn",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		asYAML, _ := cmd.Flags().GetBool("yaml")

		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		defs := gacha.Catalog()
		if cfg.CatalogFile != "" {
			if defs, err = loadCatalogFile(cfg.CatalogFile); err != nil {
				return err
			}
		}

		if asYAML {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(defs); err != nil {
				return fmt.Errorf("encode catalog: %w", err)
			}
			return enc.Close()
		}

		tw := newTable(cmd.OutOrStdout())
		fmt.Fprintln(tw, "RARITY\tODDS\tID\tTITLE\tTYPE\tPOINTS")
		for _, d := range defs {
			fmt.Fprintf(tw, "%s\t%d%%\t%s\t%s\t%s\t%d\n",
				d.Rarity.DisplayName(), d.Rarity.Weight()*100/gacha.TotalWeight(), d.ID, d.Title, d.Type, d.Points)
		}
		return tw.Flush()
	},
}

var rewardsCmd = &cobra.Command{
	Use:   "rewards",
	Short: "List unlocked rewards",
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
		if len(ud.UnlockedRewards) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No rewards yet.")
			return nil
		}
		tw := newTable(cmd.OutOrStdout())
		fmt.Fprintln(tw, "TITLE\tTYPE\tUNLOCKED\tID")
		for _, r := range ud.UnlockedRewards {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Title, r.Type.DisplayName(), localDate(r.UnlockedAt), r.ID)
		}
		return tw.Flush()
	},
}

func init() {
	gachaCatalogCmd.Flags().Bool("yaml", false, "Print as YAML, usable as catalog_file")

	gachaCmd.AddCommand(gachaSpinCmd)
	gachaCmd.AddCommand(gachaCatalogCmd)
}
