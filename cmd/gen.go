package cmd

import (
	"fmt"

	"github.com/beka-birhanu/penguin-maze/difficulty"
	"github.com/beka-birhanu/penguin-maze/maze"
	"github.com/spf13/cobra"
)

var (
	genLevel int
	genSize  int
	genSeed  int64
	genCount int
)

func init() {
	genCmd := &cobra.Command{
		Use:   "gen",
		Short: "Print generated mazes",
		Long: `Generate one or more mazes and print them as text, with S marking the start
and E the end.

Examples:
  penguin-maze gen --level 3
  penguin-maze gen --size 21 --seed 42
  penguin-maze gen -n 3`,
		RunE: runGen,
	}

	genCmd.Flags().IntVarP(&genLevel, "level", "l", difficulty.DefaultLevel, fmt.Sprintf("Difficulty level %d-%d", difficulty.MinLevel, difficulty.MaxLevel))
	genCmd.Flags().IntVarP(&genSize, "size", "s", 0, "Side length; odd and at least 3. Overrides --level")
	genCmd.Flags().Int64Var(&genSeed, "seed", 0, "Seed for reproducible mazes (0 = random)")
	genCmd.Flags().IntVarP(&genCount, "number", "n", 1, "Number of mazes to generate")

	rootCmd.AddCommand(genCmd)
}

// genDimension resolves the side length from the size and level flags.
func genDimension(size, level int) int {
	if size != 0 {
		return size
	}
	return difficulty.SizeFor(difficulty.Clamp(level))
}

func runGen(cmd *cobra.Command, args []string) error {
	if genCount < 1 {
		return fmt.Errorf("number of mazes must be positive, got %d", genCount)
	}

	side := genDimension(genSize, genLevel)
	g := maze.NewGenerator(&maze.Options{Seed: genSeed})
	out := cmd.OutOrStdout()

	for n := 0; n < genCount; n++ {
		m, err := g.Generate(side, side)
		if err != nil {
			return fmt.Errorf("generation failed: %w", err)
		}

		if genCount > 1 {
			fmt.Fprintf(out, "Maze #%d (%dx%d):\n", n+1, side, side)
		}
		fmt.Fprint(out, m.String())
	}
	return nil
}
