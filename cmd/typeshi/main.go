// Package main provides the CLI entrypoint for typeshi.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/typeshi/internal/charset"
	"github.com/verte-zerg/typeshi/internal/config"
	"github.com/verte-zerg/typeshi/internal/engine"
	"github.com/verte-zerg/typeshi/internal/generator"
	"github.com/verte-zerg/typeshi/internal/model"
	"github.com/verte-zerg/typeshi/internal/stats"
	"github.com/verte-zerg/typeshi/internal/statsui"
	"github.com/verte-zerg/typeshi/internal/store"
	"github.com/verte-zerg/typeshi/internal/tui"
)

const (
	defaultMode        = string(charset.ModeAlphas)
	defaultTier        = string(charset.TierShort)
	defaultAccuracy    = charset.DefaultAccuracyTarget
	defaultPauseMs     = 500
	defaultStatsWindow = 10
	defaultRecent      = 10
)

var (
	practiceMode      string
	practiceTier      string
	practiceAccuracy  int
	practicePauseMs   int
	practiceSeed      int64
	practiceNoHistory bool

	statsMode   string
	statsSince  string
	statsLast   int
	statsWindow int
	statsRecent int
	statsTUI    bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typeshi",
		Short:         "Character-by-character typing trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceMode, "mode", defaultMode, "character set: alphas, alphanumeric, symbols, all")
	rootCmd.Flags().StringVar(&practiceTier, "tier", defaultTier, "sequence length: short, medium, long, extra")
	rootCmd.Flags().IntVar(&practiceAccuracy, "accuracy", defaultAccuracy, "accuracy target in percent")
	rootCmd.Flags().IntVar(&practicePauseMs, "pause-ms", defaultPauseMs, "pause between sequences in milliseconds")
	rootCmd.Flags().Int64Var(&practiceSeed, "seed", 0, "random seed (0 = time based)")
	rootCmd.Flags().BoolVar(&practiceNoHistory, "no-history", false, "do not record attempts")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newOrdersCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	if err := charset.Validate(); err != nil {
		return fmt.Errorf("invalid character catalog: %w", err)
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	history := !practiceNoHistory
	applyStringConfig(cmd, "mode", &practiceMode, fileCfg.Practice.Mode)
	applyStringConfig(cmd, "tier", &practiceTier, fileCfg.Practice.Tier)
	applyIntConfig(cmd, "accuracy", &practiceAccuracy, fileCfg.Practice.Accuracy)
	applyIntConfig(cmd, "pause-ms", &practicePauseMs, fileCfg.Practice.PauseMs)
	applyInt64Config(cmd, "seed", &practiceSeed, fileCfg.Practice.Seed)
	if !cmd.Flags().Changed("no-history") && fileCfg.Practice.History != nil {
		history = *fileCfg.Practice.History
	}

	cfg := model.Config{
		Mode:           practiceMode,
		Tier:           practiceTier,
		AccuracyTarget: practiceAccuracy,
		PauseMs:        practicePauseMs,
		Seed:           practiceSeed,
		History:        history,
	}
	settings, err := validateConfig(cfg)
	if err != nil {
		return err
	}

	var recorder engine.Recorder
	if cfg.History {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
		recorder = tui.NewHistoryRecorder(st)
	}

	gen := generator.New()
	if cfg.Seed != 0 {
		gen = generator.NewWithSource(rand.NewSource(cfg.Seed))
	}
	sched := tui.NewScheduler()
	eng, err := engine.New(engine.Options{
		Settings:  settings,
		Pause:     time.Duration(cfg.PauseMs) * time.Millisecond,
		Generator: gen,
		Scheduler: sched,
		Recorder:  recorder,
	})
	if err != nil {
		return fmt.Errorf("failed to start practice: %w", err)
	}

	program := tea.NewProgram(tui.NewModel(eng, sched), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newOrdersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "List modes with their learning orders",
		Args:  cobra.NoArgs,
		RunE:  runOrdersCmd,
	}
}

func runOrdersCmd(cmd *cobra.Command, _ []string) error {
	if err := charset.Validate(); err != nil {
		return fmt.Errorf("invalid character catalog: %w", err)
	}
	out := cmd.OutOrStdout()
	for _, mode := range charset.Modes() {
		set, err := charset.Lookup(mode)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(out, "%-13s %2d  %s\n", mode, len(set.Order), string(set.Order)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	for _, tier := range charset.Tiers() {
		band, err := charset.BandFor(tier)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(out, "%-13s %d-%d chars, %d attempts per stage\n", tier, band.Min, band.Max, band.Min); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show attempt history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsMode, "mode", "", "mode filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N attempts")
	cmd.Flags().IntVar(&statsWindow, "window", defaultStatsWindow, "moving average window for the accuracy trend")
	cmd.Flags().IntVar(&statsRecent, "recent", defaultRecent, "number of recent attempts to list")
	cmd.Flags().BoolVar(&statsTUI, "tui", false, "browse history interactively")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "window", &statsWindow, fileCfg.Stats.Window)

	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsMode != "" {
		mode, err := charset.ParseMode(statsMode)
		if err != nil {
			return fmt.Errorf("invalid --mode value: %w", err)
		}
		statsMode = string(mode)
	}
	if statsLast < 0 || statsWindow < 0 || statsRecent < 0 {
		return fmt.Errorf("--last, --window and --recent must be >= 0")
	}

	cfg := model.StatsConfig{
		Mode:   statsMode,
		Since:  sinceTime,
		Last:   statsLast,
		Window: statsWindow,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if statsTUI {
		program := tea.NewProgram(statsui.NewModel(st, cfg), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run stats TUI: %w", err)
		}
		return nil
	}

	report, err := stats.BuildReport(context.Background(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, report.Summaries, cfg.Window, stats.TrendWidth(out)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderRecent(out, report.Attempts, statsRecent); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typeshi configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# mode = %q          # alphas, alphanumeric, symbols, all
# tier = %q           # short, medium, long, extra
# accuracy = %d            # Accuracy target: 50, 60, 70, 80, 90, 95, 100
# pause-ms = %d           # Pause between sequences
# seed = 0                 # Random seed (0 = time based)
# history = true           # Record attempts for "typeshi stats"

[stats]
# window = %d              # Moving average window for the accuracy trend
`,
		defaultMode,
		defaultTier,
		defaultAccuracy,
		defaultPauseMs,
		defaultStatsWindow,
	)
}

func validateConfig(cfg model.Config) (engine.Settings, error) {
	mode, err := charset.ParseMode(cfg.Mode)
	if err != nil {
		return engine.Settings{}, fmt.Errorf("--mode: %w", err)
	}
	tier, err := charset.ParseTier(cfg.Tier)
	if err != nil {
		return engine.Settings{}, fmt.Errorf("--tier: %w", err)
	}
	if !charset.ValidAccuracyTarget(cfg.AccuracyTarget) {
		return engine.Settings{}, fmt.Errorf("--accuracy must be one of %v", charset.AccuracyTargets())
	}
	if cfg.PauseMs < 0 {
		return engine.Settings{}, fmt.Errorf("--pause-ms must be >= 0")
	}
	return engine.Settings{Mode: mode, Tier: tier, AccuracyTarget: cfg.AccuracyTarget}, nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
