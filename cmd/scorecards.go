package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/truckline/bdm-console/internal/model"
	"github.com/truckline/bdm-console/internal/scorecard"
	"github.com/truckline/bdm-console/internal/scoring"
	"github.com/truckline/bdm-console/internal/store"
)

var (
	scorecardsManager  string
	scorecardsArchived bool
	diffFromVersion    int
)

var scorecardsCmd = &cobra.Command{
	Use:   "scorecards",
	Short: "Inspect qualification scorecards",
}

var scorecardsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List latest scorecard versions with scores",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := initStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		filter := store.ScorecardFilter{AccountManager: scorecardsManager}
		if !scorecardsArchived {
			archived := false
			filter.Archived = &archived
		}
		cards, err := st.ListScorecards(cmd.Context(), filter)
		if err != nil {
			return err
		}

		for i := range cards {
			sc := &cards[i]
			sum := scoring.Score(sc)
			fmt.Printf("%-36s  v%-3d  %-24s  %-28s  %3.0f%%  %s\n",
				sc.ID, sc.Version, sc.AccountManager, sc.CustomerName,
				sum.Confidence, sum.Tier)
		}
		fmt.Printf("%d scorecards\n", len(cards))
		return nil
	},
}

var scorecardsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one scorecard's per-category tallies",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := initStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		sc, err := st.GetScorecard(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if sc == nil {
			return eris.Errorf("scorecard %s not found", args[0])
		}

		sum := scoring.Score(sc)
		fmt.Printf("%s — %s (v%d, %s)\n", sc.CustomerName, sc.OpportunityName, sc.Version, sc.AccountManager)
		for _, cc := range sum.Categories {
			fmt.Printf("  %-10s  +%d  -%d  ?%d  blank %d\n",
				cc.Category, cc.Positive, cc.Negative, cc.Unknown, cc.Blank)
		}
		fmt.Printf("confidence %.0f%% (%s), raw positives %d (%s)\n",
			sum.Confidence, sum.Tier, sum.Positives, scoring.RawScoreTier(sum.Positives))
		return nil
	},
}

var scorecardsDiffCmd = &cobra.Command{
	Use:   "diff <id>",
	Short: "Diff a scorecard version against a prior one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := initStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		sc, err := st.GetScorecard(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if sc == nil {
			return eris.Errorf("scorecard %s not found", args[0])
		}

		versions, err := st.ListVersions(cmd.Context(), sc.Key())
		if err != nil {
			return err
		}

		from := diffFromVersion
		if from == 0 {
			from = sc.Version - 1
		}
		var old *model.Scorecard
		for i := range versions {
			if versions[i].Version == from {
				old = &versions[i]
				break
			}
		}
		if old == nil {
			return eris.Errorf("version %d not found for %s", from, sc.CustomerName)
		}

		diff := scorecard.Compare(old, sc)
		fmt.Printf("v%d -> v%d: %d questions changed, positives %s, negatives %s\n",
			diff.OldVersion, diff.NewVersion, diff.ChangedQuestions,
			scorecard.FormatDelta(diff.PositiveDelta), scorecard.FormatDelta(diff.NegativeDelta))
		for _, cd := range diff.Categories {
			if cd.Changed == 0 {
				continue
			}
			fmt.Printf("  %s: %d changed\n", cd.Category, cd.Changed)
		}
		return nil
	},
}

func init() {
	scorecardsListCmd.Flags().StringVar(&scorecardsManager, "manager", "", "filter by account manager")
	scorecardsListCmd.Flags().BoolVar(&scorecardsArchived, "archived", false, "include archived scorecards")
	scorecardsDiffCmd.Flags().IntVar(&diffFromVersion, "from", 0, "version to compare against (default previous)")
	scorecardsCmd.AddCommand(scorecardsListCmd, scorecardsShowCmd, scorecardsDiffCmd)
	rootCmd.AddCommand(scorecardsCmd)
}
