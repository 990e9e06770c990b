// compare plays a series of matches between two AI configurations, alternating who moves first, and
// reports the results.
//
// Example:
//
//	$ go run ./cmd/compare --ai1=qlearn:episodes=100000 --ai2=tactical --num_matches=1000
package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/janpfeifer/dropfour/internal/arena"
	"github.com/janpfeifer/dropfour/internal/players"
	defaultplayers "github.com/janpfeifer/dropfour/internal/players/default"
	"github.com/janpfeifer/dropfour/internal/profilers"
	"github.com/janpfeifer/dropfour/internal/state"
	"github.com/janpfeifer/dropfour/internal/ui/spinning"
	"github.com/janpfeifer/must"
	"github.com/logrusorgru/aurora"
	"k8s.io/klog/v2"
	"time"
)

var (
	flagPlayer1Config = flag.String("ai1", "", "1st player configuration, e.g. \"qlearn:episodes=50000\".")
	flagPlayer2Config = flag.String("ai2", "", "2nd player configuration, e.g. \"tactical\".")
	flagNumMatches    = flag.Int("num_matches", 100, "Number of matches to play.")
	flagParallelism   = flag.Int("parallelism", 0, "If > 0 ignore GOMAXPROCS and play "+
		"these many matches simultaneously.")
	flagColor = flag.Bool("color", true, "Use colors in the final report.")
)

// Globals
var (
	// globalCtx used everywhere. It is cancelled when the program is about to exit either by
	// an interrupt (ctrl+C) or by reaching the end.
	globalCtx = context.Background()
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if *flagPlayer1Config == "" || *flagPlayer2Config == "" {
		klog.Exitf("You must configure both players to compare with flags -ai1 and -ai2, registered AIs are %q",
			players.Modules())
	}

	// Capture Control+C
	var globalCancel func()
	globalCtx, globalCancel = context.WithCancel(context.Background())
	spinning.SafeInterrupt(globalCancel, 5*time.Second)
	defer globalCancel()

	// Profilers: HTTP profiler server and CPU profile.
	profilers.Setup(globalCtx)
	defer profilers.OnQuit()

	defaultplayers.TrainingContext = globalCtx
	factories := [2]arena.PlayerFactory{
		players.Factory(*flagPlayer1Config),
		players.Factory(*flagPlayer2Config),
	}
	// Create the players once upfront: this trains the qlearn players, if any, and reports configuration errors.
	for playerIdx, factory := range factories {
		p := must.M1(factory(0, state.PlayerA))
		klog.Infof("AI-%d: %s", playerIdx+1, p)
	}

	s := spinning.New(globalCtx)
	results := must.M1(arena.Run(globalCtx, factories, *flagNumMatches, *flagParallelism, func(r *arena.Results) {
		s.SetStatus("%s", r)
	}))
	s.Done()
	fmt.Println()
	printReport(results, [2]string{*flagPlayer1Config, *flagPlayer2Config})
}

func printReport(r *arena.Results, configs [2]string) {
	au := aurora.NewAurora(*flagColor)
	fmt.Println(au.Bold("Results:"))
	for playerIdx := range 2 {
		wins := r.Wins(playerIdx)
		fmt.Printf("  AI-%d (%s): %s wins (%s), as 1st: %d, as 2nd: %d\n",
			playerIdx+1, au.Cyan(configs[playerIdx]), au.Green(wins), au.Bold(percent(wins, r.Played)),
			r.WinsAs1st[playerIdx], r.WinsAs2nd[playerIdx])
	}
	fmt.Printf("  Draws: %s (%s)\n", au.Yellow(r.NumDraws()), percent(r.NumDraws(), r.Played))
	if r.Played < r.Total {
		fmt.Printf("  %s: only %d of %d matches played\n", au.Red("Interrupted"), r.Played, r.Total)
	}
}

func percent(count, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(count)/float64(total))
}
