package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/aggregator"
	"github.com/pable/go-cricket-metrics/internal/mining"
	"github.com/pable/go-cricket-metrics/internal/model"
	"github.com/pable/go-cricket-metrics/internal/report"
	"github.com/pable/go-cricket-metrics/internal/storage"
	"github.com/pable/go-cricket-metrics/internal/winprob"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Load the dataset once and query it interactively. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		sh := &shell{ds: loadDataset(cmd.Context()), out: os.Stdout, errOut: os.Stderr}
		return sh.run(os.Stdin)
	},
}

// shell is a REPL over one loaded dataset.
type shell struct {
	ds     *model.Dataset
	out    io.Writer
	errOut io.Writer
}

func (sh *shell) run(in io.Reader) error {
	cGreeting.Fprintln(sh.out, "cricmetrics shell")
	cMuted.Fprintln(sh.out, "type 'help' or 'exit'")
	fmt.Fprintln(sh.out)

	scanner := bufio.NewScanner(in)
	for {
		cPrompt.Fprint(sh.out, "cricmetrics")
		cMuted.Fprint(sh.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(sh.out)
			break
		}
		if done := sh.exec(scanner.Text()); done {
			return nil
		}
	}
	return scanner.Err()
}

// exec runs one line and reports whether the session should end.
func (sh *shell) exec(line string) bool {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return false
	}
	cmd, args := tokens[0], tokens[1:]

	switch cmd {
	case "exit", "quit":
		return true
	case "help":
		sh.help()
	case "overview":
		showOverview(sh.out, sh.ds)
	case "teams":
		if len(args) == 0 {
			report.PrintTeamTable(sh.out, aggregator.TeamPerformance(sh.ds), "")
		} else {
			showTeam(sh.out, sh.ds, strings.Join(args, " "))
		}
	case "venues":
		report.PrintVenueTable(sh.out, aggregator.VenueAnalysis(sh.ds))
	case "players":
		if len(args) == 0 {
			report.PrintLeaders(sh.out, aggregator.PlayerStats(sh.ds))
		} else {
			report.PrintPlayerProfile(sh.out, aggregator.PlayerProfile(sh.ds, strings.Join(args, " ")))
		}
	case "suggest":
		showSuggestions(sh.out, sh.ds, strings.Join(args, " "))
	case "seasons":
		report.PrintTrendTable(sh.out, aggregator.SeasonTrends(sh.ds))
	case "overs":
		report.PrintOverTable(sh.out, aggregator.MatchDetails(sh.ds), !sh.ds.Columns.Over)
	case "clusters":
		if len(args) == 0 {
			cError.Fprintln(sh.errOut, "usage: clusters players|teams [kmeans|hierarchical]")
			return false
		}
		method := "kmeans"
		if len(args) > 1 {
			method = args[1]
		}
		if err := showClusters(sh.out, sh.ds, args[0], method); err != nil {
			cError.Fprintf(sh.errOut, "error: %v\n", err)
		}
	case "rules":
		sh.rules(args)
	case "winprob":
		sh.winprob(args)
	case "imports":
		sh.imports()
	default:
		cWarn.Fprintf(sh.errOut, "unknown command %q, type 'help'\n", cmd)
	}
	return false
}

func (sh *shell) help() {
	fmt.Fprintln(sh.out)
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"overview", "dataset totals and team standings"},
		{"teams [team]", "win percentages, or one team by season"},
		{"venues", "busiest host cities"},
		{"players [name]", "run/wicket leaders, or one batter"},
		{"suggest <text>", "batters whose name contains text"},
		{"seasons", "sixes and fours per season"},
		{"overs", "runs per over number"},
		{"clusters players|teams [method]", "three-way segmentation"},
		{"rules [min_sup] [min_conf]", "association rules over match context"},
		{"winprob <target> <score> <wkts> <overs>", "chasing side win probability"},
		{"imports", "latest import into the store"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Fprint(sh.out, "  ")
		cCmd.Fprintf(sh.out, "%-42s", r.cmd)
		fmt.Fprintln(sh.out, r.desc)
	}
	fmt.Fprintln(sh.out)
}

func (sh *shell) rules(args []string) {
	opts := mining.DefaultOptions()
	if cfg != nil {
		opts = mining.Options{MinSupport: cfg.MinSupport, MinConfidence: cfg.MinConfidence, MaxRules: cfg.MaxRules}
	}
	for i, dst := range []*float64{&opts.MinSupport, &opts.MinConfidence} {
		if i >= len(args) {
			break
		}
		v, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			cError.Fprintf(sh.errOut, "invalid threshold %q\n", args[i])
			return
		}
		*dst = v
	}
	if err := showRules(sh.out, sh.ds, opts); err != nil {
		cError.Fprintf(sh.errOut, "error: %v\n", err)
	}
}

func (sh *shell) winprob(args []string) {
	in := winprob.DefaultInput()
	ints := []*int{&in.Target, &in.Score, &in.Wickets}
	for i, a := range args {
		var err error
		switch {
		case i < len(ints):
			*ints[i], err = strconv.Atoi(a)
		case i == len(ints):
			in.Overs, err = strconv.ParseFloat(a, 64)
		}
		if err != nil {
			cError.Fprintf(sh.errOut, "invalid number %q\n", a)
			return
		}
	}
	res, err := winprob.Estimate(in)
	if err != nil {
		cError.Fprintf(sh.errOut, "error: %v\n", err)
		return
	}
	report.PrintWinProbability(sh.out, res)
}

func (sh *shell) imports() {
	path := storePath()
	if !fileExists(path) {
		cMuted.Fprintln(sh.out, "No store yet. Run 'cricmetrics import'.")
		return
	}
	db, err := storage.Open(path)
	if err != nil {
		cError.Fprintf(sh.errOut, "error: %v\n", err)
		return
	}
	defer db.Close()
	info, err := db.LatestImport()
	if err != nil {
		cError.Fprintf(sh.errOut, "error: %v\n", err)
		return
	}
	if info == nil {
		cMuted.Fprintln(sh.out, "Store is empty.")
		return
	}
	cHeader.Fprintf(sh.out, "%-36s  %-20s  %8s  %10s\n", "ID", "IMPORTED", "MATCHES", "DELIVERIES")
	fmt.Fprintf(sh.out, "%-36s  %-20s  %8d  %10d\n", info.ID, info.ImportedAt, info.MatchCount, info.DeliveryCount)
}
