package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/mining"
	"github.com/pable/go-cricket-metrics/internal/model"
	"github.com/pable/go-cricket-metrics/internal/report"
	"github.com/pable/go-cricket-metrics/internal/segment"
	"github.com/pable/go-cricket-metrics/internal/winprob"
)

var (
	clusterMethod string
	rulesMinSup   float64
	rulesMinConf  float64
	winprobIn     = winprob.DefaultInput()
)

var clustersCmd = &cobra.Command{
	Use:       "clusters players|teams",
	Short:     "Segment batters or teams into three named clusters",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"players", "teams"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return showClusters(os.Stdout, loadDataset(cmd.Context()), args[0], clusterMethod)
	},
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Mine association rules over match teams, city and toss winner",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts := mining.Options{MinSupport: cfg.MinSupport, MinConfidence: cfg.MinConfidence, MaxRules: cfg.MaxRules}
		if cmd.Flags().Changed("min-sup") {
			opts.MinSupport = rulesMinSup
		}
		if cmd.Flags().Changed("min-conf") {
			opts.MinConfidence = rulesMinConf
		}
		return showRules(os.Stdout, loadDataset(cmd.Context()), opts)
	},
}

var winprobCmd = &cobra.Command{
	Use:   "winprob",
	Short: "Estimate the chasing side's win probability",
	Long: `Estimate the chasing side's chance of winning from target, score, wickets
and overs. The estimate is a fixed heuristic clamped to [0.05, 0.95].`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		res, err := winprob.Estimate(winprobIn)
		if err != nil {
			return err
		}
		report.PrintWinProbability(os.Stdout, res)
		return nil
	},
}

func init() {
	clustersCmd.Flags().StringVar(&clusterMethod, "method", "kmeans", "clustering method: kmeans or hierarchical")

	rulesCmd.Flags().Float64Var(&rulesMinSup, "min-sup", mining.DefaultMinSupport, "minimum itemset support in (0,1]")
	rulesCmd.Flags().Float64Var(&rulesMinConf, "min-conf", mining.DefaultMinConfidence, "minimum rule confidence in [0,1]")

	f := winprobCmd.Flags()
	f.StringVar(&winprobIn.BattingTeam, "batting", "", "batting team")
	f.StringVar(&winprobIn.BowlingTeam, "bowling", "", "bowling team")
	f.StringVar(&winprobIn.City, "city", "", "host city (context only)")
	f.IntVar(&winprobIn.Target, "target", winprobIn.Target, "runs to win")
	f.IntVar(&winprobIn.Score, "score", winprobIn.Score, "current score")
	f.IntVar(&winprobIn.Wickets, "wickets", winprobIn.Wickets, "wickets fallen (0-10)")
	f.Float64Var(&winprobIn.Overs, "overs", winprobIn.Overs, "overs completed (0-20)")
	f.IntVar(&winprobIn.RunsLast5, "runs-last-5", winprobIn.RunsLast5, "runs in the last five overs (not used by the estimate)")
}

func showClusters(w io.Writer, ds *model.Dataset, entity, method string) error {
	strategy, err := segment.ByName(method)
	if err != nil {
		return err
	}
	var segs []model.Segment
	var features []string
	switch entity {
	case "players":
		segs, err = segment.ClusterPlayers(ds, strategy, cfg.MinBallsFaced)
		features = []string{"strike_rate", "average"}
	case "teams":
		segs, err = segment.ClusterTeams(ds, strategy)
		features = []string{"win_pct"}
	default:
		return fmt.Errorf("unknown entity %q: want players or teams", entity)
	}
	if err != nil {
		return err
	}
	cHeader.Fprintf(w, "\n%s clusters (%s)\n", entity, method)
	report.PrintSegments(w, segs, features...)
	return nil
}

func showRules(w io.Writer, ds *model.Dataset, opts mining.Options) error {
	rules, err := mining.MineRules(ds, mining.Apriori{}, opts)
	if err != nil {
		return err
	}
	report.PrintRules(w, rules)
	return nil
}
