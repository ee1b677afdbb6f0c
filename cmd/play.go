package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beka-birhanu/penguin-maze/difficulty"
	"github.com/beka-birhanu/penguin-maze/game"
	"github.com/beka-birhanu/penguin-maze/maze"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	ansiClear  = "\033[2J\033[H"
	ansiHide   = "\033[?25l"
	ansiShow   = "\033[?25h"
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiWall   = "\033[47m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
	ansiGreen  = "\033[32m"
)

var (
	playLevel int
	playSeed  int64
)

func init() {
	playCmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		Long: `Play the maze game in the terminal.

Keys:
  arrows / WASD  move the penguin
  + / -          harder / easier maze
  n              next level
  g              give up (easier maze)
  r              new maze at the same level
  q              quit`,
		RunE: runPlay,
	}

	playCmd.Flags().IntVarP(&playLevel, "level", "l", difficulty.DefaultLevel, fmt.Sprintf("Starting level %d-%d", difficulty.MinLevel, difficulty.MaxLevel))
	playCmd.Flags().Int64Var(&playSeed, "seed", 0, "Seed for reproducible mazes (0 = random)")

	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	s, err := game.NewSession(game.SessionConfig{
		Level:     playLevel,
		Generator: maze.NewGenerator(&maze.Options{Seed: playSeed}),
	})
	if err != nil {
		return err
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("play needs an interactive terminal")
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("switching terminal to raw mode: %w", err)
	}
	out := cmd.OutOrStdout()
	defer func() {
		_ = term.Restore(fd, oldState)
		fmt.Fprint(out, ansiShow+ansiReset+"\r\n")
	}()

	fmt.Fprint(out, ansiHide+render(s.Snapshot()))
	return playLoop(os.Stdin, out, s)
}

// playLoop feeds every key read from in to the session and redraws after each one.
// It returns when the player quits or in is exhausted.
func playLoop(in io.Reader, out io.Writer, s *game.Session) error {
	buf := make([]byte, 16)
	for {
		n, err := in.Read(buf)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		keep, err := handleKey(s, buf[:n])
		if err != nil {
			return err
		}
		if !keep {
			return nil
		}
		fmt.Fprint(out, render(s.Snapshot()))
	}
}

// handleKey applies every key in one terminal read to the session, in order. A
// read can hold several keys when a key is held down or typed fast. It returns
// false when the player asked to quit; keys after the quit are ignored.
func handleKey(s *game.Session, b []byte) (bool, error) {
	for _, key := range splitKeys(b) {
		keep, err := applyKey(s, key)
		if err != nil || !keep {
			return keep, err
		}
	}
	return true, nil
}

// splitKeys cuts a read into single keys. Escape sequences such as the arrow keys
// (ESC [ A) stay whole: ESC [ is followed by parameter bytes up to a final byte
// in '@'..'~'.
func splitKeys(b []byte) [][]byte {
	var keys [][]byte
	for i := 0; i < len(b); {
		n := 1
		if b[i] == 27 && i+1 < len(b) && b[i+1] == '[' {
			n = 2
			for i+n < len(b) {
				c := b[i+n]
				n++
				if c >= '@' && c <= '~' {
					break
				}
			}
		}
		keys = append(keys, b[i:i+n])
		i += n
	}
	return keys
}

// applyKey applies a single key. Unbound keys and sequences are ignored.
func applyKey(s *game.Session, key []byte) (bool, error) {
	// Arrow keys arrive as ESC [ A/B/C/D.
	if len(key) == 3 && key[0] == 27 && key[1] == '[' {
		switch key[2] {
		case 'A':
			s.AttemptMove(game.Up)
		case 'B':
			s.AttemptMove(game.Down)
		case 'C':
			s.AttemptMove(game.Right)
		case 'D':
			s.AttemptMove(game.Left)
		}
		return true, nil
	}

	if len(key) != 1 {
		return true, nil
	}

	var err error
	switch ch := key[0]; ch {
	case 'q', 'Q', 3: // 3 is ctrl-c in raw mode
		return false, nil
	case 'n', 'N':
		_, err = s.NextLevel()
	case 'g', 'G':
		_, err = s.GiveUp()
	case '+', '=':
		_, err = s.ChangeDifficulty(1)
	case '-', '_':
		_, err = s.ChangeDifficulty(-1)
	case 'r', 'R':
		side := difficulty.SizeFor(s.Level())
		err = s.Regenerate(side, side)
	default:
		if d, perr := game.ParseDirection(string(ch)); perr == nil {
			s.AttemptMove(d)
		}
	}
	return true, err
}

// facingGlyph draws the penguin pointing the way it last tried to move.
var facingGlyph = map[game.Direction]string{
	game.Up:    "^",
	game.Down:  "v",
	game.Left:  "<",
	game.Right: ">",
}

// render draws the snapshot for a raw-mode terminal, two columns per cell.
func render(snap game.Snapshot) string {
	var sb strings.Builder
	m := snap.Maze

	sb.WriteString(ansiClear)
	fmt.Fprintf(&sb, "%sLevel %d%s  %dx%d  moves: %d\r\n\r\n", ansiBold, snap.Level, ansiReset, m.Width, m.Height, snap.State.MoveCount)

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			p := maze.Position{X: x, Y: y}
			switch {
			case p == snap.State.Position:
				sb.WriteString(ansiCyan + facingGlyph[snap.State.Facing] + facingGlyph[snap.State.Facing] + ansiReset)
			case p == m.End:
				sb.WriteString(ansiYellow + "<>" + ansiReset)
			case m.Cell(x, y) == maze.Wall:
				sb.WriteString(ansiWall + "  " + ansiReset)
			default:
				sb.WriteString("  ")
			}
		}
		sb.WriteString("\r\n")
	}

	sb.WriteString("\r\n")
	if snap.Message != "" {
		sb.WriteString(ansiGreen + snap.Message + ansiReset + "\r\n")
	}
	if snap.State.Solved {
		sb.WriteString("n: next level  q: quit\r\n")
	} else {
		sb.WriteString("arrows/WASD: move  +/-: difficulty  n: next  g: give up  r: new maze  q: quit\r\n")
	}
	return sb.String()
}
