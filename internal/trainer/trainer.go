// Package trainer runs self-play Q-learning: two agents, one per piece, play each other and
// learn from every move.
package trainer

import (
	"context"
	"fmt"
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/dropfour/internal/ai"
	"github.com/janpfeifer/dropfour/internal/ai/qlearning"
	. "github.com/janpfeifer/dropfour/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
	"math/rand/v2"
	"time"
)

// Trainer owns the two self-play agents. It is not safe for concurrent use.
type Trainer struct {
	config Config
	agents [2]*qlearning.Agent
}

// EpisodeResult summarizes one self-play game.
type EpisodeResult struct {
	Episode int

	// Winner of the episode, or Empty if it was a draw.
	Winner Piece

	// Moves played in the episode.
	Moves int

	// FirstColumn and LastColumn played.
	FirstColumn, LastColumn int

	// Final board of the episode.
	Final Grid

	// ExplorationRates and TableSizes of the agents (indexed by PlayerA-1 and PlayerB-1) after the
	// episode's exploration decay.
	ExplorationRates [2]float64
	TableSizes       [2]int
}

// Summary of a training run.
type Summary struct {
	Episodes         int
	Wins             [2]int
	Draws            int
	ExplorationRates [2]float64
	TableSizes       [2]int
	Elapsed          time.Duration
}

// String implements fmt.Stringer.
func (s Summary) String() string {
	if s.Episodes == 0 {
		return "no episodes played"
	}
	ratio := func(n int) float64 { return 100 * float64(n) / float64(s.Episodes) }
	return fmt.Sprintf("%d episodes in %s: %s wins %.1f%%, %s wins %.1f%%, draws %.1f%% - epsilon=[%.3f, %.3f], states=[%d, %d]",
		s.Episodes, s.Elapsed.Round(time.Millisecond),
		PlayerA, ratio(s.Wins[0]), PlayerB, ratio(s.Wins[1]), ratio(s.Draws),
		s.ExplorationRates[0], s.ExplorationRates[1], s.TableSizes[0], s.TableSizes[1])
}

// New creates a Trainer with two fresh agents.
func New(config Config) (*Trainer, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.WithMessage(err, "invalid trainer configuration")
	}
	t := &Trainer{config: config}
	seeds := rand.New(rand.NewPCG(config.Seed, 0))
	for ii, piece := range Players {
		agentConfig := config.Agent
		agentConfig.Seed = seeds.Uint64()
		agent, err := qlearning.NewAgent(piece, agentConfig)
		if err != nil {
			return nil, err
		}
		t.agents[ii] = agent
	}
	return t, nil
}

// Config returns the configuration of the trainer.
func (t *Trainer) Config() Config { return t.config }

// Agents returns the agents for PlayerA and PlayerB.
func (t *Trainer) Agents() (a, b *qlearning.Agent) {
	return t.agents[0], t.agents[1]
}

// AgentFor returns the agent playing piece.
func (t *Trainer) AgentFor(piece Piece) *qlearning.Agent {
	if !piece.IsPlayer() {
		exceptions.Panicf("Trainer.AgentFor(%s): invalid piece", piece)
	}
	return t.agents[piece-PlayerA]
}

// RunEpisode plays one self-play game, updating both agents' tables as it goes, and decays
// both agents' exploration rates at the end.
func (t *Trainer) RunEpisode(episode int) EpisodeResult {
	result := EpisodeResult{Episode: episode, Winner: Empty, FirstColumn: -1, LastColumn: -1}
	board := NewBoard()
	piece := t.config.FirstMover

	// Last board and column played by each side, for CreditOwnLastMove.
	var lastKeys [2]StateKey
	lastColumns := [2]int{-1, -1}

	for {
		agent := t.AgentFor(piece)
		before := board.Clone()
		preKey := Encode(before)
		column := agent.ChooseColumn(board)
		if !board.Drop(column, piece) {
			exceptions.Panicf("episode %d: agent %s chose column %d which is not playable:\n%s",
				episode, piece, column, before)
		}
		if result.Moves == 0 {
			result.FirstColumn = column
		}
		result.Moves++

		won := board.HasWon(piece)
		terminal := won || board.IsFull()
		reward := ai.Reward(before, piece, terminal, column)
		postKey := Encode(board)
		agent.Learn(preKey, column, reward, postKey)
		lastKeys[piece-PlayerA] = preKey
		lastColumns[piece-PlayerA] = column

		if terminal {
			result.LastColumn = column
			result.Final = board.Snapshot()
			if won {
				result.Winner = piece
				opponent := piece.Opponent()
				switch t.config.OpponentCredit {
				case CreditWinnerMove:
					t.AgentFor(opponent).Learn(postKey, column, -ai.WinReward, postKey)
				case CreditOwnLastMove:
					if col := lastColumns[opponent-PlayerA]; col >= 0 {
						t.AgentFor(opponent).Learn(lastKeys[opponent-PlayerA], col, -ai.WinReward, postKey)
					}
				}
			}
			break
		}
		piece = piece.Opponent()
	}

	for ii, agent := range t.agents {
		agent.DecayExploration()
		result.ExplorationRates[ii] = agent.ExplorationRate()
		result.TableSizes[ii] = agent.TableSize()
	}
	if klog.V(2).Enabled() {
		klog.Infof("Episode %d: winner=%q, %d moves, final board:\n%s", episode, result.Winner, result.Moves, board)
	}
	return result
}

// Run all the configured episodes, calling onEpisode (if not nil) after each one.
//
// It returns early with the context error if ctx is cancelled; the summary then covers the
// episodes already played.
func (t *Trainer) Run(ctx context.Context, onEpisode func(EpisodeResult)) (Summary, error) {
	start := time.Now()
	var summary, window Summary
	windowStart := start
	for episode := range t.config.Episodes {
		if err := ctx.Err(); err != nil {
			summary.Elapsed = time.Since(start)
			return summary, errors.Wrapf(err, "training interrupted after %d episodes", episode)
		}
		result := t.RunEpisode(episode)
		for _, s := range []*Summary{&summary, &window} {
			s.add(result)
		}
		if onEpisode != nil {
			onEpisode(result)
		}
		if t.config.LogEvery > 0 && (episode+1)%t.config.LogEvery == 0 {
			window.Elapsed = time.Since(windowStart)
			klog.Infof("Episodes %d-%d: %s", episode+1-window.Episodes, episode, window)
			window = Summary{}
			windowStart = time.Now()
		}
	}
	summary.Elapsed = time.Since(start)
	klog.V(1).Infof("Training finished: %s", summary)
	return summary, nil
}

func (s *Summary) add(result EpisodeResult) {
	s.Episodes++
	if result.Winner == Empty {
		s.Draws++
	} else {
		s.Wins[result.Winner-PlayerA]++
	}
	s.ExplorationRates = result.ExplorationRates
	s.TableSizes = result.TableSizes
}
