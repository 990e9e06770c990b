package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/janpfeifer/dropfour/internal/ai"
	"github.com/janpfeifer/dropfour/internal/arena"
	"github.com/janpfeifer/dropfour/internal/players"
	_ "github.com/janpfeifer/dropfour/internal/players/default"
	. "github.com/janpfeifer/dropfour/internal/state"
	"github.com/janpfeifer/dropfour/internal/trainer"
	"github.com/janpfeifer/dropfour/internal/ui/spinning"
	"github.com/pkg/errors"
	"strings"
)

var (
	flagEvalMatches = flag.Int("eval_matches", 1000, "Number of evaluation matches against each of the --eval_against "+
		"players, after training. Set to 0 to skip evaluation.")
	flagEvalAgainst = flag.String("eval_against", "random;tactical;alphabeta:max_depth=2", "Semicolon-separated list of player "+
		"configurations to evaluate the trained agents against.")
	flagParallelism = flag.Int("parallelism", 0, "If > 0 ignore GOMAXPROCS and play "+
		"these many evaluation matches simultaneously.")
)

// trainedFactory creates greedy (no exploration) players from the trained agents.
func trainedFactory(tr *trainer.Trainer) arena.PlayerFactory {
	return func(matchIdx int, piece Piece) (ai.Player, error) {
		return tr.AgentFor(piece).Frozen(tr.Config().Seed + uint64(matchIdx)), nil
	}
}

// evaluate the trained agents against each of the --eval_against players.
func evaluate(ctx context.Context, tr *trainer.Trainer) error {
	if *flagEvalMatches <= 0 {
		return nil
	}
	for _, opponent := range strings.Split(*flagEvalAgainst, ";") {
		opponent = strings.TrimSpace(opponent)
		if opponent == "" {
			continue
		}
		s := spinning.New(ctx)
		r, err := arena.Run(ctx, [2]arena.PlayerFactory{trainedFactory(tr), players.Factory(opponent)},
			*flagEvalMatches, *flagParallelism, func(r *arena.Results) {
				s.SetStatus("vs %s: %s", opponent, r)
			})
		s.Done()
		fmt.Println()
		if err != nil {
			return errors.WithMessagef(err, "evaluating against %q", opponent)
		}
		printEvaluation(opponent, r)
		if ctx.Err() != nil {
			break
		}
	}
	return nil
}

func printEvaluation(opponent string, r *arena.Results) {
	wins, losses, draws := r.Wins(0), r.Wins(1), r.NumDraws()
	winRate := 0.0
	if r.Played > 0 {
		winRate = 100 * float64(wins) / float64(r.Played)
	}
	fmt.Printf("%s vs %s: %s wins (%s), %s losses, %s draws - as 1st: %d wins, as 2nd: %d wins\n",
		au.Bold("qlearn"), au.Cyan(opponent), au.Green(wins), au.Bold(fmt.Sprintf("%.1f%%", winRate)),
		au.Red(losses), au.Yellow(draws), r.WinsAs1st[0], r.WinsAs2nd[0])
}
