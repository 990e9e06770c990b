// Package cli implements a command-line UI for the game.
package cli

import (
	"bufio"
	"fmt"
	"github.com/charmbracelet/lipgloss"
	. "github.com/janpfeifer/dropfour/internal/state"
	"github.com/pkg/errors"
	"golang.org/x/term"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// CharsPerColumn is the width of each board cell.
const CharsPerColumn = 4

var ansiFilter = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// displayWidth of s removes its color/control sequences and returns the length of what is left.
func displayWidth(s string) int {
	return len([]rune(ansiFilter.ReplaceAllString(s, "")))
}

// terminalWidth returns the width of the terminal, or 0 if out is not a terminal.
func terminalWidth(out io.Writer) int {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func printCentered(out io.Writer, block string) {
	lines := strings.Split(strings.TrimRight(block, "\n"), "\n")
	blockWidth := 0
	for _, line := range lines {
		blockWidth = max(blockWidth, displayWidth(line))
	}
	indent := max((terminalWidth(out)-blockWidth)/2, 0)
	for _, line := range lines {
		if len(line) == 0 {
			_, _ = fmt.Fprintln(out)
			continue
		}
		_, _ = fmt.Fprintf(out, "%s%s\n", strings.Repeat(" ", indent), line)
	}
}

func centerString(s string, fit int) string {
	if len(s) >= fit {
		return s
	}
	marginLeft := (fit - len(s)) / 2
	marginRight := fit - len(s) - marginLeft
	return strings.Repeat(" ", marginLeft) + s + strings.Repeat(" ", marginRight)
}

// UI for a game in the terminal.
type UI struct {
	color, clearScreen bool
	reader             *bufio.Reader
	out                io.Writer
	styles             [PieceInvalid]lipgloss.Style
}

// ErrTooManyParsingErrors is returned by ReadColumn if the user failed to enter a valid column 3 times.
var ErrTooManyParsingErrors = errors.New("failed to read column 3 times")

// New creates a UI reading from stdin and writing to stdout.
func New(color bool, clearScreen bool) *UI {
	return NewWithIO(os.Stdin, os.Stdout, color, clearScreen)
}

// NewWithIO creates a UI with the given input and output.
func NewWithIO(in io.Reader, out io.Writer, color bool, clearScreen bool) *UI {
	ui := &UI{
		color:       color,
		clearScreen: clearScreen,
		reader:      bufio.NewReader(in),
		out:         out,
	}
	base := lipgloss.NewStyle().Bold(true)
	ui.styles[Empty] = base.Foreground(lipgloss.Color("8"))
	ui.styles[PlayerA] = base.Foreground(lipgloss.Color("9"))
	ui.styles[PlayerB] = base.Foreground(lipgloss.Color("11"))
	return ui
}

// PieceString returns the piece letter, colored if the UI is in color mode.
func (ui *UI) PieceString(piece Piece) string {
	if !ui.color {
		return piece.String()
	}
	return ui.styles[piece].Render(piece.String())
}

// PlayerString returns a description of the player, e.g. "X Player".
func (ui *UI) PlayerString(piece Piece) string {
	return ui.PieceString(piece) + " Player"
}

// FormatBoard returns the board drawn with a frame and column numbers. If lastColumn >= 0, the column
// of the last move is marked.
func (ui *UI) FormatBoard(board *Board, lastColumn int) string {
	var sb strings.Builder
	border := "+" + strings.Repeat("-", CharsPerColumn*NumColumns) + "+\n"
	if lastColumn >= 0 && lastColumn < NumColumns {
		sb.WriteString(" " + strings.Repeat(" ", CharsPerColumn*lastColumn) + centerString("v", CharsPerColumn) + "\n")
	}
	sb.WriteString(border)
	for row := range NumRows {
		sb.WriteByte('|')
		for col := range NumColumns {
			piece := board.At(row, col)
			cell := centerString(piece.String(), CharsPerColumn)
			if ui.color {
				cell = strings.Replace(cell, piece.String(), ui.PieceString(piece), 1)
			}
			sb.WriteString(cell)
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(border)
	sb.WriteByte(' ')
	for col := range NumColumns {
		sb.WriteString(centerString(strconv.Itoa(col), CharsPerColumn))
	}
	sb.WriteByte('\n')
	return sb.String()
}

// Print the board, the move number, and whose turn it is, if the game is not finished.
func (ui *UI) Print(board *Board, piece Piece, lastColumn int) {
	if ui.clearScreen {
		_, _ = fmt.Fprint(ui.out, "\033c")
	}
	header := fmt.Sprintf("Move #%d", board.NumPieces()+1)
	if ui.color {
		header = lipgloss.NewStyle().Bold(true).Italic(true).Render(header)
	}
	_, _ = fmt.Fprintf(ui.out, "\n%s\n\n", header)
	printCentered(ui.out, ui.FormatBoard(board, lastColumn))
	_, _ = fmt.Fprintln(ui.out)
	if !board.IsFinished() {
		_, _ = fmt.Fprintf(ui.out, "%s turn to play, playable columns: %v\n", ui.PlayerString(piece), board.PlayableColumns())
	}
}

// ReadColumn reads the column to play for piece. It gives the user 3 chances to enter a valid
// column, and then returns ErrTooManyParsingErrors.
func (ui *UI) ReadColumn(board *Board, piece Piece) (int, error) {
	// ANSI escape codes for:
	// - \033[45m: Set background color to magenta (purple-ish)
	// - \033[0m:  Reset all attributes to defaults
	const (
		inputAreaColor = "\033[30;45;2m"        // Purplish background
		inputAreaReset = "\033[39;49;0m\033[0K" // Reset color and clear to the end-of-line.
		inputWidth     = 6                      // Width of the input area
	)
	for numErrs := 0; numErrs < 3; numErrs++ {
		_, _ = fmt.Fprintf(ui.out, "    %s column > ", ui.PlayerString(piece))
		if ui.color {
			// Print "input area" in purple, and move the cursor back to the beginning of the input area.
			_, _ = fmt.Fprintf(ui.out, "%s%s", inputAreaColor, strings.Repeat(" ", inputWidth))
			_, _ = fmt.Fprintf(ui.out, "\033[%dD", inputWidth-1)
		}
		text, err := ui.reader.ReadString('\n')
		if ui.color {
			_, _ = fmt.Fprint(ui.out, inputAreaReset)
		}
		if err != nil && (err != io.EOF || strings.TrimSpace(text) == "") {
			return -1, errors.Wrap(err, "failed to read column")
		}
		text = strings.TrimSpace(text)
		column, err := strconv.Atoi(text)
		if err != nil {
			_, _ = fmt.Fprintf(ui.out, "    * Failed to parse your input %q, please enter a column number from 0 to %d.\n",
				text, NumColumns-1)
			continue
		}
		if column < 0 || column >= NumColumns {
			_, _ = fmt.Fprintf(ui.out, "    * Column %d is out of the board, valid columns are 0 to %d.\n", column, NumColumns-1)
			continue
		}
		if !board.IsPlayable(column) {
			_, _ = fmt.Fprintf(ui.out, "    * Column %d is full, playable columns are %v.\n", column, board.PlayableColumns())
			continue
		}
		return column, nil
	}
	return -1, ErrTooManyParsingErrors
}

// PrintWinner prints the outcome of a finished game.
func (ui *UI) PrintWinner(board *Board) {
	winner := board.Winner()
	_, _ = fmt.Fprintln(ui.out)
	if winner == Empty {
		msg := "*** DRAW: the board is full! ***"
		if ui.color {
			msg = lipgloss.NewStyle().
				Background(lipgloss.Color("13")).
				Foreground(lipgloss.Color("0")).
				Padding(1, 2).
				Render(msg)
		}
		printCentered(ui.out, msg)
	} else {
		printCentered(ui.out, fmt.Sprintf("*** %s PLAYER WINS!! Congratulations! ***", ui.PieceString(winner)))
	}
	_, _ = fmt.Fprintln(ui.out)
}
