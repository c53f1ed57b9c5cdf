package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tstris/internal/core"
	"github.com/vovakirdan/tstris/internal/registry"
	"github.com/vovakirdan/tstris/internal/storage"
)

var (
	flagSimGames    int
	flagSimMaxSteps int
	flagSimSave     bool
)

var simCmd = &cobra.Command{
	Use:   "sim <variant>",
	Short: "Run headless bot games",
	Long: `Play a variant headlessly with a random bot and print the results.

The bot's choices and the piece sequence both come from the seed, so a
seed always reproduces the same game. Useful for checking custom rules
files and difficulty presets.

Examples:
  tstris sim classic
  tstris sim marathon --games 20 --seed 7
  tstris sim classic --config ./my-rules.yaml --save`,
	Args: cobra.ExactArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimGames, "games", 1, "Number of games to play")
	simCmd.Flags().IntVar(&flagSimMaxSteps, "max-steps", 60*60*10, "Stop a game after this many ticks")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Save results to the scores database as player \"bot\"")
}

// botEvery is how many ticks the bot waits between actions.
const botEvery = 6

// botActions is weighted towards hard drops so games finish quickly.
var botActions = []core.Action{
	core.ActionMoveLeft,
	core.ActionMoveRight,
	core.ActionRotateLeft,
	core.ActionRotateRight,
	core.ActionSoftDrop,
	core.ActionHold,
	core.ActionHardDrop,
	core.ActionHardDrop,
}

type simResult struct {
	Seed  int64
	Steps int
	State core.GameState
}

// simulate plays one game until it ends or maxSteps ticks pass.
func simulate(game registry.Game, seed int64, tickRate, maxSteps int) simResult {
	game.Reset(core.RuntimeConfig{
		ScreenW:  core.DefaultConfig().ScreenW,
		ScreenH:  core.DefaultConfig().ScreenH,
		TickRate: tickRate,
		Seed:     seed,
	})
	bot := rand.New(rand.NewSource(seed))

	res := simResult{Seed: seed}
	for res.Steps < maxSteps {
		frame := core.NewInputFrame()
		if res.Steps%botEvery == 0 {
			frame.Set(botActions[bot.Intn(len(botActions))])
		}
		step := game.Step(frame)
		res.Steps++
		res.State = step.State
		if step.State.GameOver {
			break
		}
	}
	return res
}

func runSim(_ *cobra.Command, args []string) {
	variant := args[0]

	if !registry.Exists(variant) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", variant)
		fmt.Fprintln(os.Stderr, "Run 'tstris list' to see available variants.")
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	game, err := registry.Create(variant, registry.Settings{
		ConfigPath: flagConfig,
		Difficulty: flagDifficulty,
		Logger:     logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		closeLog()
		os.Exit(1)
	}

	var store *storage.Store
	if flagSimSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
			store = nil
		}
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	fmt.Printf("  %-4s  %-20s  %-8s  %-5s  %-5s  %s\n", "Game", "Seed", "Score", "Lines", "Level", "Ticks")
	best := simResult{}
	for i := 0; i < flagSimGames; i++ {
		res := simulate(game, seed+int64(i), flagFPS, flagSimMaxSteps)
		fmt.Printf("  %-4d  %-20d  %-8d  %-5d  %-5d  %d\n",
			i+1, res.Seed, res.State.Score, res.State.Lines, res.State.Level, res.Steps)

		if res.State.Score > best.State.Score {
			best = res
		}
		if store != nil {
			if _, err := store.SaveScore(storage.ScoreEntry{
				Variant: variant,
				Player:  "bot",
				Score:   res.State.Score,
				Lines:   res.State.Lines,
				Level:   res.State.Level,
				Seed:    res.Seed,
			}); err != nil {
				logger.Error("could not save score", "error", err)
			}
		}
	}

	if flagSimGames > 1 {
		fmt.Println()
		fmt.Printf("Best: %d (seed %d)\n", best.State.Score, best.Seed)
	}

	if store != nil {
		store.Close()
	}
}
