package trainer

import (
	"context"
	"github.com/janpfeifer/dropfour/internal/ai"
	"github.com/janpfeifer/dropfour/internal/parameters"
	. "github.com/janpfeifer/dropfour/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func newTestTrainer(t *testing.T, episodes int, seed uint64) *Trainer {
	config := DefaultConfig()
	config.Episodes = episodes
	config.Seed = seed
	config.LogEvery = 0
	tr, err := New(config)
	require.NoError(t, err)
	return tr
}

// TestSelfPlay runs 1000 episodes and checks the exploration schedule and the growth of the tables.
func TestSelfPlay(t *testing.T) {
	tr := newTestTrainer(t, 1000, 42)
	a, b := tr.Agents()
	require.Equal(t, PlayerA, a.Piece())
	require.Equal(t, PlayerB, b.Piece())
	initialRates := [2]float64{a.ExplorationRate(), b.ExplorationRate()}
	floor := tr.Config().Agent.MinExplorationRate

	var previous EpisodeResult
	numResults := 0
	summary, err := tr.Run(context.Background(), func(result EpisodeResult) {
		require.Equal(t, numResults, result.Episode)
		assert.GreaterOrEqual(t, result.Moves, 2*ConnectLength-1)
		assert.LessOrEqual(t, result.Moves, NumCells)
		assert.True(t, result.FirstColumn >= 0 && result.FirstColumn < NumColumns)
		assert.True(t, result.LastColumn >= 0 && result.LastColumn < NumColumns)
		final := FromGrid(result.Final)
		if result.Winner == Empty {
			assert.True(t, IsDraw(final))
		} else {
			assert.True(t, IsWon(final, result.Winner))
		}
		for ii := range 2 {
			assert.GreaterOrEqual(t, result.ExplorationRates[ii], floor)
			if numResults > 0 {
				assert.GreaterOrEqual(t, result.TableSizes[ii], previous.TableSizes[ii])
				assert.LessOrEqual(t, result.ExplorationRates[ii], previous.ExplorationRates[ii])
			}
		}
		previous = result
		numResults++
	})
	require.NoError(t, err)
	assert.Equal(t, 1000, numResults)
	assert.Equal(t, 1000, summary.Episodes)
	assert.Equal(t, 1000, summary.Wins[0]+summary.Wins[1]+summary.Draws)

	for ii, agent := range []interface{ ExplorationRate() float64 }{a, b} {
		assert.Less(t, agent.ExplorationRate(), initialRates[ii])
		assert.GreaterOrEqual(t, agent.ExplorationRate(), floor)
	}
	assert.Greater(t, a.TableSize(), 1000)
	assert.Greater(t, b.TableSize(), 1000)
	assert.Equal(t, [2]int{a.TableSize(), b.TableSize()}, summary.TableSizes)
	assert.Contains(t, summary.String(), "1000 episodes")
}

func TestDeterministic(t *testing.T) {
	var results [2][]EpisodeResult
	for ii := range 2 {
		tr := newTestTrainer(t, 200, 7)
		_, err := tr.Run(context.Background(), func(result EpisodeResult) {
			results[ii] = append(results[ii], result)
		})
		require.NoError(t, err)
	}
	assert.Equal(t, results[0], results[1])
}

// findWonEpisode runs first episodes of fresh trainers until one ends in a win.
func findWonEpisode(t *testing.T, credit OpponentCredit) (*Trainer, EpisodeResult) {
	for seed := range uint64(50) {
		config := DefaultConfig()
		config.Seed = seed
		config.OpponentCredit = credit
		tr, err := New(config)
		require.NoError(t, err)
		result := tr.RunEpisode(0)
		if result.Winner != Empty {
			return tr, result
		}
	}
	t.Fatalf("no episode was won")
	return nil, EpisodeResult{}
}

func TestCreditWinnerMove(t *testing.T) {
	tr, result := findWonEpisode(t, CreditWinnerMove)
	loser := tr.AgentFor(result.Winner.Opponent())
	values, found := loser.Table().Lookup(result.Final.Key())
	require.True(t, found)
	lr := tr.Config().Agent.LearningRate
	assert.InDelta(t, lr*(-ai.WinReward), values[result.LastColumn], 1e-6)

	// The winner learned the win.
	winner := tr.AgentFor(result.Winner)
	assert.Greater(t, winner.TableSize(), 0)
}

func TestCreditOwnLastMove(t *testing.T) {
	tr, result := findWonEpisode(t, CreditOwnLastMove)
	loser := tr.AgentFor(result.Winner.Opponent())
	// The final board is only the next state of the loser's update: it has no value yet.
	values, found := loser.Table().Lookup(result.Final.Key())
	require.True(t, found)
	assert.Equal(t, float32(0), values.Max())
	for _, v := range values {
		assert.Equal(t, float32(0), v)
	}
}

func TestRunCancelled(t *testing.T) {
	tr := newTestTrainer(t, 1000, 1)
	ctx, cancel := context.WithCancel(context.Background())
	numEpisodes := 0
	summary, err := tr.Run(ctx, func(result EpisodeResult) {
		numEpisodes++
		if numEpisodes == 10 {
			cancel()
		}
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 10, numEpisodes)
	assert.Equal(t, 10, summary.Episodes)
}

func TestFirstMover(t *testing.T) {
	config := DefaultConfig()
	config.FirstMover = PlayerB
	config.Episodes = 20
	tr, err := New(config)
	require.NoError(t, err)
	for episode := range 20 {
		result := tr.RunEpisode(episode)
		final := FromGrid(result.Final)
		// B moved first, so it has as many or one more pieces than A.
		var counts [PieceInvalid]int
		for row := range NumRows {
			for col := range NumColumns {
				counts[final.At(row, col)]++
			}
		}
		diff := counts[PlayerB] - counts[PlayerA]
		assert.True(t, diff == 0 || diff == 1, "B=%d, A=%d", counts[PlayerB], counts[PlayerA])
	}
}

func TestConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, 150_000, config.Episodes)
	assert.NoError(t, config.Validate())

	params := parameters.NewFromConfigString("episodes=10,seed=3,first=O,credit=own,log_every=5,lr=0.3")
	config, err := ConfigFromParams(config, params)
	require.NoError(t, err)
	assert.Empty(t, params)
	assert.Equal(t, 10, config.Episodes)
	assert.Equal(t, uint64(3), config.Seed)
	assert.Equal(t, PlayerB, config.FirstMover)
	assert.Equal(t, CreditOwnLastMove, config.OpponentCredit)
	assert.Equal(t, 5, config.LogEvery)
	assert.InDelta(t, 0.3, config.Agent.LearningRate, 1e-6)

	_, err = ConfigFromParams(DefaultConfig(), parameters.NewFromConfigString("credit=both"))
	assert.Error(t, err)
	_, err = ConfigFromParams(DefaultConfig(), parameters.NewFromConfigString("first=Z"))
	assert.Error(t, err)

	config = DefaultConfig()
	config.FirstMover = Empty
	_, err = New(config)
	assert.Error(t, err)
}
