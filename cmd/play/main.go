// play is a terminal front-end to play connect-four against an AI, watch two AIs play (--watch), or
// play human against human (--hotseat).
//
// The "qlearn" AI is trained by self-play when the program starts, see the --config flag.
package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/janpfeifer/dropfour/internal/ai"
	"github.com/janpfeifer/dropfour/internal/players"
	defaultplayers "github.com/janpfeifer/dropfour/internal/players/default"
	. "github.com/janpfeifer/dropfour/internal/state"
	"github.com/janpfeifer/dropfour/internal/ui/cli"
	"github.com/janpfeifer/dropfour/internal/ui/spinning"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
	"math/rand/v2"
	"strings"
	"time"
)

var (
	_ = fmt.Printf

	flagHotseat   = flag.Bool("hotseat", false, "Hotseat match: human vs human")
	flagWatch     = flag.Bool("watch", false, "Watch mode: AI vs AI playing")
	flagFirst     = flag.String("first", "", "Who plays first: human or ai. Default is random.")
	flagAIConfig  = flag.String("config", "qlearn", "AI configuration against which to play, e.g. \"qlearn:episodes=50000,seed=3\"")
	flagAIConfig2 = flag.String("config2", "tactical", "Second AI configuration, if playing AI vs AI with --watch")
	flagColor     = flag.Bool("color", true, "Use colors.")
	flagClear     = flag.Bool("clear", false, "Clear the screen before printing the board.")
	flagDelay     = flag.Duration("delay", 0, "Delay after each AI move in --watch mode.")

	// aiPlayers: if nil, it's a human playing. Indexed by piece-PlayerA.
	aiPlayers = [2]ai.Player{nil, nil}

	globalCtx = context.Background()
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	// Capture Control+C
	var cancel func()
	globalCtx, cancel = context.WithCancel(context.Background())
	spinning.SafeInterrupt(cancel, 3*time.Second)
	defer cancel()
	defaultplayers.TrainingContext = globalCtx

	// Create players.
	createPlayers()
	if globalCtx.Err() != nil {
		return
	}

	ui := cli.New(*flagColor, *flagClear)
	board, err := playMatch(ui)
	if err != nil {
		klog.Exitf("Failed to run match: %+v", err)
	}
	if board != nil {
		ui.PrintWinner(board)
	}
}

// playMatch runs the match to the end. It returns a nil board if the match was interrupted.
func playMatch(ui *cli.UI) (*Board, error) {
	board := NewGame()
	piece := PlayerA
	lastColumn := -1
	for !board.IsFinished() {
		if globalCtx.Err() != nil {
			return nil, nil
		}
		var column int
		aiPlayer := aiPlayers[piece-PlayerA]
		if aiPlayer == nil {
			ui.Print(board, piece, lastColumn)
			var err error
			column, err = ui.ReadColumn(board, piece)
			if errors.Is(err, cli.ErrTooManyParsingErrors) {
				continue
			}
			if err != nil {
				return board, err
			}
		} else {
			if *flagWatch {
				ui.Print(board, piece, lastColumn)
			}
			s := spinning.New(globalCtx)
			s.SetStatus("AI %s thinking...", aiPlayer)
			column = aiPlayer.Play(board)
			s.Done()
			fmt.Printf("AI %s (%s) plays column %d\n", aiPlayer, ui.PieceString(piece), column)
			if *flagDelay > 0 {
				time.Sleep(*flagDelay)
			}
		}
		if !AttemptMove(board, column, piece) {
			return board, errors.Errorf("%s chose invalid column %d", ui.PlayerString(piece), column)
		}
		lastColumn = column
		piece = piece.Opponent()
	}
	ui.Print(board, piece, lastColumn)
	return board, nil
}

// createPlayers in aiPlayers.
func createPlayers() {
	if *flagHotseat && *flagWatch {
		klog.Exitf("--hotseat and --watch cannot be used together")
	}
	if *flagHotseat {
		// Both players are human, nothing to do.
		return
	}

	// Create AI player:
	var aiPiece Piece
	if *flagWatch {
		aiPiece = PlayerA
	} else {
		switch strings.ToLower(*flagFirst) {
		case "human":
			aiPiece = PlayerB
		case "ai":
			aiPiece = PlayerA
		case "":
			aiPiece = Players[rand.IntN(2)]
		default:
			klog.Exitf("invalid --first=%q, only valid values are \"human\" or \"ai\"", *flagFirst)
		}
	}
	aiPlayers[aiPiece-PlayerA] = newAIPlayer(aiPiece, *flagAIConfig)
	if !*flagWatch {
		return
	}

	// Create second AI
	otherPiece := aiPiece.Opponent()
	aiPlayers[otherPiece-PlayerA] = newAIPlayer(otherPiece, *flagAIConfig2)
}

func newAIPlayer(piece Piece, config string) ai.Player {
	s := spinning.New(globalCtx)
	s.SetStatus("Creating AI %q for %s, training may take a while...", config, piece)
	player, err := players.New(0, piece, config)
	s.Done()
	player = must.M1(player, err)
	fmt.Printf("AI %s ready\n", player)
	return player
}
