package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"bitsense/cmd/bitsense/play"
	"bitsense/cmd/bitsense/ui"
	"bitsense/internal/config"
	"bitsense/internal/history"
	"bitsense/internal/logging"
	"bitsense/internal/round"
	"bitsense/internal/session"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	playBits      int
	playDirection string
	playTimeLimit time.Duration
	playMode      string
	playRounds    int
	playSeed      uint64
	noHistory     bool
)

// playCmd runs the interactive trainer
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a practice session",
	Long: `Starts an interactive session of timed conversion rounds.

Modes:
  live    - the answer is checked as you type (default)
  submit  - press enter to check the answer

Keys: enter submit, ctrl+s skip, esc quit (q quits when the input is empty).

Example:
  bitsense play --bits 16 --direction hex2bin --time-limit 8s`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVarP(&playBits, "bits", "b", 8, "Bit width, a multiple of 4 up to 64")
	f.StringVarP(&playDirection, "direction", "d", "random", "bin2hex, hex2bin or random")
	f.DurationVarP(&playTimeLimit, "time-limit", "t", 10*time.Second, "Time allowed per round")
	f.StringVarP(&playMode, "mode", "m", config.ModeLive, "Input mode: live or submit")
	f.IntVarP(&playRounds, "rounds", "n", 0, "Stop after this many rounds (0 = until quit)")
	f.Uint64Var(&playSeed, "seed", 0, "Seed for reproducible challenges (0 = random)")
	f.BoolVar(&noHistory, "no-history", false, "Do not record rounds")
}

// applyPlayFlags layers explicitly set flags over the loaded config.
func applyPlayFlags(cmd *cobra.Command, c *config.Config) {
	f := cmd.Flags()
	if f.Changed("bits") {
		c.Round.Bits = playBits
	}
	if f.Changed("direction") {
		c.Round.Direction = playDirection
	}
	if f.Changed("time-limit") {
		c.Round.TimeLimit = playTimeLimit.String()
	}
	if f.Changed("mode") {
		c.Play.Mode = playMode
	}
	if f.Changed("rounds") {
		c.Play.Rounds = playRounds
	}
	if f.Changed("no-history") && noHistory {
		c.History.Enabled = false
	}
}

// newSource returns the challenge entropy source. A zero seed draws a
// fresh one.
func newSource(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// newSession builds a session from the resolved config. The returned
// closer releases the history store, if one was opened.
func newSession(c *config.Config, seed uint64) (*session.Session, func(), error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}
	rc, err := c.ToRoundConfig()
	if err != nil {
		return nil, nil, err
	}

	closer := func() {}
	opts := session.Options{Round: rc, Rounds: c.Play.Rounds}
	if c.History.Enabled {
		store, err := history.Open(c.HistoryPath(workspace))
		if err != nil {
			return nil, nil, err
		}
		opts.Recorder = store
		closer = func() { store.Close() }
	}

	sess, err := session.New(round.NewEngine(newSource(seed)), opts)
	if err != nil {
		closer()
		return nil, nil, err
	}
	return sess, closer, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	applyPlayFlags(cmd, cfg)

	sess, closeStore, err := newSession(cfg, playSeed)
	if err != nil {
		return err
	}
	defer closeStore()

	logger.Debug("starting session",
		zap.String("session_id", sess.ID().String()),
		zap.String("mode", cfg.Play.Mode))

	stats, err := play.Run(cmdContext(cmd), play.Options{
		Session:       sess,
		Mode:          cfg.Play.Mode,
		FrameInterval: cfg.GetFrameInterval(),
		Styles:        ui.NewStyles(ui.ThemeFor(cfg.UI.Theme)),
	})
	if err != nil {
		return err
	}

	logging.Session("session %s finished: %d/%d correct", sess.ID(), stats.Correct, stats.Total)
	fmt.Fprintln(cmd.OutOrStdout(), formatSessionSummary(stats))
	return nil
}

func formatSessionSummary(st session.Stats) string {
	if st.Total == 0 {
		return "No rounds played."
	}
	return fmt.Sprintf("%d/%d correct (%.0f%%), best streak %d, best %.2f bits/s, avg %.2f bits/s",
		st.Correct, st.Total, st.Accuracy()*100, st.BestStreak, st.BestBitsPerSecond, st.AverageBitsPerSecond())
}
