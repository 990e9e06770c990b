package trainer

import (
	"fmt"
	"github.com/janpfeifer/dropfour/internal/ai/qlearning"
	"github.com/janpfeifer/dropfour/internal/parameters"
	. "github.com/janpfeifer/dropfour/internal/state"
	"github.com/pkg/errors"
	"strings"
)

// OpponentCredit selects how the losing agent is told about the game it just lost.
type OpponentCredit int

const (
	// CreditWinnerMove updates the loser's table on the winner's final board and column, with reward
	// -ai.WinReward. It's a simplification: the loser didn't take that action from that board.
	CreditWinnerMove OpponentCredit = iota

	// CreditOwnLastMove updates the loser's table on its own last board and column, with the final
	// board as the next state. It changes the learning dynamics compared to CreditWinnerMove.
	CreditOwnLastMove
)

// String implements fmt.Stringer.
func (c OpponentCredit) String() string {
	switch c {
	case CreditWinnerMove:
		return "winner"
	case CreditOwnLastMove:
		return "own"
	}
	return fmt.Sprintf("OpponentCredit(%d)", int(c))
}

// ParseOpponentCredit converts "winner" or "own" to the corresponding OpponentCredit.
func ParseOpponentCredit(s string) (OpponentCredit, error) {
	switch strings.ToLower(s) {
	case "winner", "":
		return CreditWinnerMove, nil
	case "own":
		return CreditOwnLastMove, nil
	}
	return CreditWinnerMove, errors.Errorf("unknown opponent credit %q, valid values are \"winner\" or \"own\"", s)
}

// Config of a self-play training run.
type Config struct {
	// Episodes (self-play games) to run.
	Episodes int

	// Seed used to derive the seeds of both agents.
	Seed uint64

	// FirstMover is the piece that starts every episode.
	FirstMover Piece

	// OpponentCredit used when a game is won.
	OpponentCredit OpponentCredit

	// LogEvery episodes a progress line is logged. 0 disables it.
	LogEvery int

	// Agent hyperparameters, shared by both agents (except for their seeds).
	Agent qlearning.Config
}

// DefaultEpisodes of a training run.
const DefaultEpisodes = 150_000

// DefaultConfig returns the default training configuration.
func DefaultConfig() Config {
	return Config{
		Episodes:       DefaultEpisodes,
		FirstMover:     PlayerA,
		OpponentCredit: CreditWinnerMove,
		LogEvery:       10_000,
		Agent:          qlearning.DefaultConfig(),
	}
}

// Validate returns an error if the configuration is not valid.
func (c Config) Validate() error {
	if c.Episodes < 0 {
		return errors.Errorf("number of episodes must be >= 0, got %d", c.Episodes)
	}
	if !c.FirstMover.IsPlayer() {
		return errors.Errorf("invalid first mover %s", c.FirstMover)
	}
	if c.OpponentCredit != CreditWinnerMove && c.OpponentCredit != CreditOwnLastMove {
		return errors.Errorf("invalid %s", c.OpponentCredit)
	}
	return c.Agent.Validate()
}

// ConfigFromParams updates config from params, removing the used keys:
// "episodes", "seed", "first" (A or B), "credit" (winner or own), "log_every",
// plus the agent hyperparameters read by qlearning.ConfigFromParams.
func ConfigFromParams(config Config, params parameters.Params) (Config, error) {
	var err error
	if config.Episodes, err = parameters.PopParamOr(params, "episodes", config.Episodes); err != nil {
		return config, err
	}
	seed, err := parameters.PopParamOr(params, "seed", int(config.Seed))
	if err != nil {
		return config, err
	}
	config.Seed = uint64(seed)
	if first, err := parameters.PopParamOr(params, "first", ""); err != nil {
		return config, err
	} else if first != "" {
		if config.FirstMover, err = ParsePiece(first); err != nil {
			return config, err
		}
	}
	credit, err := parameters.PopParamOr(params, "credit", config.OpponentCredit.String())
	if err != nil {
		return config, err
	}
	if config.OpponentCredit, err = ParseOpponentCredit(credit); err != nil {
		return config, err
	}
	if config.LogEvery, err = parameters.PopParamOr(params, "log_every", config.LogEvery); err != nil {
		return config, err
	}
	config.Agent, err = qlearning.ConfigFromParams(config.Agent, params)
	return config, err
}
