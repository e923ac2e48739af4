// Package main provides the CLI entrypoint for spidertype.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"spidertype/internal/config"
	"spidertype/internal/model"
	"spidertype/internal/progress"
	"spidertype/internal/snippets"
	"spidertype/internal/stats"
	"spidertype/internal/statsui"
	"spidertype/internal/store"
	"spidertype/internal/tui"
)

const (
	defaultLanguage    = "javascript"
	defaultMode        = "code"
	defaultDuration    = 30
	defaultWords       = 25
	defaultCaps        = 0.0
	defaultPunct       = 0.0
	defaultCurveWindow = 10
)

const defaultPunctSet = ".,!?;:\"'{}()[]-=/<>`"

var (
	practiceLanguage string
	practiceMode     string
	practiceDuration int
	practiceWords    int
	practiceCaps     float64
	practicePunct    float64
	practicePunctSet string

	statsLanguage    string
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsPlain       bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "spidertype",
		Short:         "TUI typing trainer for developers",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceLanguage, "language", defaultLanguage, "snippet language")
	rootCmd.Flags().StringVar(&practiceMode, "mode", defaultMode, "practice mode: code or words")
	rootCmd.Flags().IntVar(&practiceDuration, "duration", defaultDuration, "test duration in seconds (15, 30, 60, 120)")
	rootCmd.Flags().IntVar(&practiceWords, "words", defaultWords, "words per text in words mode")
	rootCmd.Flags().Float64Var(&practiceCaps, "caps", defaultCaps, "probability of capitalized first letter (0-1)")
	rootCmd.Flags().Float64Var(&practicePunct, "punct", defaultPunct, "punctuation probability per word (0-1)")
	rootCmd.Flags().StringVar(&practicePunctSet, "punct-set", defaultPunctSet, "punctuation set")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLangsCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "language", &practiceLanguage, fileCfg.Practice.Language)
	applyStringConfig(cmd, "mode", &practiceMode, fileCfg.Practice.Mode)
	applyIntConfig(cmd, "duration", &practiceDuration, fileCfg.Practice.Duration)
	applyIntConfig(cmd, "words", &practiceWords, fileCfg.Practice.Words)
	applyFloatConfig(cmd, "caps", &practiceCaps, fileCfg.Practice.CapsPct)
	applyFloatConfig(cmd, "punct", &practicePunct, fileCfg.Practice.PunctPct)
	applyStringConfig(cmd, "punct-set", &practicePunctSet, fileCfg.Practice.PunctSet)

	cfg := model.Config{
		Language:        practiceLanguage,
		Mode:            practiceMode,
		DurationSeconds: practiceDuration,
		Words:           practiceWords,
		CapsPct:         practiceCaps,
		PunctPct:        practicePunct,
		PunctSet:        practicePunctSet,
	}

	if err := validateConfig(cfg); err != nil {
		return err
	}

	provider := snippets.NewProvider()
	snippetsDir := config.DefaultSnippetsDir()
	if err := provider.LoadDir(snippetsDir); err != nil {
		logErrf("failed to load user snippets: %v\n", err)
	}
	if err := provider.LoadWordList(config.DefaultWordListPath()); err != nil && !os.IsNotExist(err) {
		logErrf("failed to load word list: %v\n", err)
	}
	if _, err := os.Stat(snippetsDir); err == nil {
		watcher, werr := provider.Watch(snippetsDir, func(werr error) {
			logErrf("failed to reload snippets: %v\n", werr)
		})
		if werr != nil {
			logErrf("failed to watch snippets: %v\n", werr)
		} else {
			defer func() {
				if cerr := watcher.Close(); cerr != nil {
					logErrf("failed to close watcher: %v\n", cerr)
				}
			}()
		}
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

	svc := progress.NewService(st)
	m := tui.NewModel(cfg, provider, svc, st)
	program := tea.NewProgram(m, tea.WithAltScreen())
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

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List available snippet languages",
		Args:  cobra.NoArgs,
		RunE:  runLangsCmd,
	}
}

func runLangsCmd(cmd *cobra.Command, _ []string) error {
	provider := snippets.NewProvider()
	if err := provider.LoadDir(config.DefaultSnippetsDir()); err != nil {
		logErrf("failed to load user snippets: %v\n", err)
	}
	for _, lang := range provider.Languages() {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), lang); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats dashboard",
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsLanguage, "language", "", "language filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N tests")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a plain-text report instead of the dashboard")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	cfg := model.StatsConfig{
		Language:    statsLanguage,
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
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

	if statsPlain {
		report, err := stats.BuildReport(context.Background(), st, cfg)
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		return stats.RenderReport(cmd.OutOrStdout(), report, cfg)
	}

	m := statsui.NewModel(st, cfg)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
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

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# spidertype configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# language = %q     # Snippet language
# mode = %q             # "code" or "words"
# duration = %d             # Test duration in seconds (15, 30, 60, 120)
# words = %d                # Words per text in words mode
# caps = %.2f              # Probability of capitalized first letter (0-1)
# punct = %.2f             # Punctuation probability per word (0-1)
# punct-set = %q           # Punctuation set
`,
		defaultLanguage,
		defaultMode,
		defaultDuration,
		defaultWords,
		defaultCaps,
		defaultPunct,
		defaultPunctSet,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Mode != "code" && cfg.Mode != "words" {
		return fmt.Errorf("--mode must be \"code\" or \"words\"")
	}
	if !model.ValidDuration(cfg.DurationSeconds) {
		return fmt.Errorf("--duration must be one of %v", model.AllowedDurations)
	}
	if cfg.Words <= 0 {
		return fmt.Errorf("--words must be > 0")
	}
	if cfg.CapsPct < 0 || cfg.CapsPct > 1 {
		return fmt.Errorf("--caps must be between 0 and 1")
	}
	if cfg.PunctPct < 0 || cfg.PunctPct > 1 {
		return fmt.Errorf("--punct must be between 0 and 1")
	}
	if cfg.PunctSet == "" {
		return fmt.Errorf("--punct-set must not be empty")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
