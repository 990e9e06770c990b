// Package arena plays evaluation matches between two players, in parallel, and collects the results.
package arena

import (
	"context"
	"fmt"
	"github.com/janpfeifer/dropfour/internal/ai"
	. "github.com/janpfeifer/dropfour/internal/state"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
	"runtime"
	"strings"
	"sync"
	"time"
)

// PlayerFactory creates the player for one match, playing with the given piece.
//
// Players are used by one match only, but the factory may be called concurrently, and the
// players it returns may share read-only state (e.g. a frozen value table).
type PlayerFactory func(matchIdx int, piece Piece) (ai.Player, error)

// Results of the matches between player 1 and player 2.
// Player 1 plays first (as PlayerA) on even matches, player 2 on odd ones.
type Results struct {
	mu                   sync.Mutex
	start                time.Time
	WinsAs1st, WinsAs2nd [2]int

	// Draws indexed by which player moved first.
	Draws         [2]int
	Played, Total int
}

// Wins of the player (0 or 1) as first or second mover.
func (r *Results) Wins(player int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.WinsAs1st[player] + r.WinsAs2nd[player]
}

// NumDraws returns the total number of draws.
func (r *Results) NumDraws() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Draws[0] + r.Draws[1]
}

// String returns a one-line summary of the results so far.
func (r *Results) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var parts []string
	parts = append(parts, fmt.Sprintf("Played %d of %d: ", r.Played, r.Total))
	for playerIdx := range 2 {
		parts = append(parts,
			fmt.Sprintf("AI-%d: %d Wins (1st: %d, 2nd: %d) / ",
				playerIdx+1, r.WinsAs1st[playerIdx]+r.WinsAs2nd[playerIdx],
				r.WinsAs1st[playerIdx], r.WinsAs2nd[playerIdx]))
	}
	parts = append(parts, fmt.Sprintf("%d draws (%d AI-1 as 1st, %d AI-2 as 1st) - ",
		r.Draws[0]+r.Draws[1], r.Draws[0], r.Draws[1]))
	parts = append(parts, time.Since(r.start).Round(time.Millisecond).String())
	return strings.Join(parts, "")
}

func (r *Results) record(player1st int, winnerIdx int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if winnerIdx < 0 {
		r.Draws[player1st]++
	} else if winnerIdx == player1st {
		r.WinsAs1st[winnerIdx]++
	} else {
		r.WinsAs2nd[winnerIdx]++
	}
	r.Played++
}

// Parallelism returns the number of matches played concurrently: requested if > 0, GOMAXPROCS otherwise.
func Parallelism(requested int) int {
	if requested > 0 {
		return requested
	}
	return runtime.GOMAXPROCS(0)
}

// Run plays numMatches between the players created by factories[0] (player 1) and factories[1] (player 2),
// alternating who moves first. onMatch, if not nil, is called (serialized) after each match.
//
// If ctx is cancelled, it returns the partial results, and no error.
func Run(ctx context.Context, factories [2]PlayerFactory, numMatches, parallelism int, onMatch func(r *Results)) (*Results, error) {
	r := &Results{start: time.Now(), Total: numMatches}
	var onMatchMu sync.Mutex
	var wg errgroup.Group
	wg.SetLimit(Parallelism(parallelism))
	for matchIdx := range numMatches {
		wg.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			player1st := matchIdx % 2
			var players [2]ai.Player // Indexed by piece-PlayerA.
			for ii, piece := range Players {
				playerIdx := (player1st + ii) % 2
				p, err := factories[playerIdx](matchIdx, piece)
				if err != nil {
					return errors.WithMessagef(err, "failed to create AI-%d for match %d", playerIdx+1, matchIdx)
				}
				players[ii] = p
			}
			winner, _, err := PlayMatch(ctx, players)
			if err != nil || ctx.Err() != nil {
				return errors.WithMessagef(err, "match %d", matchIdx)
			}
			winnerIdx := -1
			if winner != Empty {
				winnerIdx = (player1st + int(winner-PlayerA)) % 2
			}
			r.record(player1st, winnerIdx)
			if onMatch != nil {
				onMatchMu.Lock()
				onMatch(r)
				onMatchMu.Unlock()
			}
			return nil
		})
	}
	err := wg.Wait()
	if ctx.Err() != nil {
		klog.Infof("Matches interrupted: %s", ctx.Err())
		return r, nil
	}
	return r, err
}

// PlayMatch plays one game, with players[0] playing PlayerA (moving first) and players[1] playing PlayerB.
// It returns the winner (Empty for a draw) and the number of moves.
func PlayMatch(ctx context.Context, players [2]ai.Player) (winner Piece, moves int, err error) {
	board := NewGame()
	piece := PlayerA
	for !board.IsFinished() {
		if ctx.Err() != nil {
			return Empty, moves, nil
		}
		player := players[piece-PlayerA]
		column := player.Play(board)
		if !AttemptMove(board, column, piece) {
			return Empty, moves, errors.Errorf("player %s (%s) chose invalid column %d:\n%s", player, piece, column, board)
		}
		moves++
		piece = piece.Opponent()
	}
	if klog.V(2).Enabled() {
		klog.Infof("Match finished after %d moves:\n%s", moves, board)
	}
	return board.Winner(), moves, nil
}
