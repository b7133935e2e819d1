// Package main provides the CLI entrypoint for tuiquiz.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/tuiquiz/internal/bank"
	"github.com/verte-zerg/tuiquiz/internal/config"
	"github.com/verte-zerg/tuiquiz/internal/logging"
	"github.com/verte-zerg/tuiquiz/internal/model"
	"github.com/verte-zerg/tuiquiz/internal/quiz"
	"github.com/verte-zerg/tuiquiz/internal/stats"
	"github.com/verte-zerg/tuiquiz/internal/statsui"
	"github.com/verte-zerg/tuiquiz/internal/store"
	"github.com/verte-zerg/tuiquiz/internal/tui"
)

const defaultStatsWindow = 5

var _ quiz.KV = (*store.Store)(nil)

var (
	quizBank    string
	quizLimitID int

	listBank    string
	listAnswers bool

	statsBank   string
	statsLast   int
	statsWindow int
	statsPlain  bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuiquiz",
		Short:         "TUI multiple-choice quiz",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runQuizCmd,
	}

	rootCmd.Flags().StringVar(&quizBank, "bank", bank.DefaultName, "question bank name or path")
	rootCmd.Flags().IntVar(&quizLimitID, "limit-id", 0, "only ask questions with id up to N (default: all)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newBanksCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runQuizCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "bank", &quizBank, fileCfg.Quiz.Bank)
	applyIntConfig(cmd, "limit-id", &quizLimitID, fileCfg.Quiz.LimitID)

	cfg := model.Config{
		Bank:     quizBank,
		LimitID:  quizLimitID,
		LogLevel: logging.DefaultLevel,
	}
	if fileCfg.Log.Level != nil {
		cfg.LogLevel = *fileCfg.Log.Level
	}

	src, err := bank.Resolve(cfg.Bank, config.DefaultBankDir())
	if err != nil {
		return bankLoadError(cfg.Bank, err)
	}
	cfg.Bank = src.Name
	cfg.BankPath = src.Path
	questions, err := loadQuizQuestions(src)
	if err != nil {
		return bankLoadError(cfg.Bank, err)
	}
	if err := validateConfig(&cfg, questions); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, config.DefaultLogPath())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() {
		// Best-effort flush of the log file.
		_ = logger.Sync()
	}()

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	shuffler := quiz.NewShuffler()
	bridge := quiz.NewBridge(st)
	session, restored := restoreSession(context.Background(), bridge, st, questions, cfg, shuffler, logger)
	logger.Info("quiz started",
		zap.String("bank", cfg.Bank),
		zap.String("bank_path", cfg.BankPath),
		zap.Int("limit_id", session.LimitID),
		zap.Bool("restored", restored),
		zap.String("session", session.ID),
	)

	quizModel := tui.NewModel(session, questions, cfg.Bank, bridge, st, shuffler, logger)
	program := tea.NewProgram(quizModel, tea.WithAltScreen())
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

func newBanksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "banks",
		Short: "List available question banks",
		Args:  cobra.NoArgs,
		RunE:  runBanksCmd,
	}
}

func runBanksCmd(cmd *cobra.Command, _ []string) error {
	names, err := bank.List(config.DefaultBankDir())
	if err != nil {
		return fmt.Errorf("failed to list banks: %w", err)
	}
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "%s (built-in)\n", bank.DefaultName); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	for _, name := range names {
		if name == bank.DefaultName {
			logErrf("%s in %s is shadowed by the built-in bank; load it by path\n", name, config.DefaultBankDir())
			continue
		}
		if _, err := fmt.Fprintln(out, name); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print all questions of a bank",
		Args:  cobra.NoArgs,
		RunE:  runListCmd,
	}
	cmd.Flags().StringVar(&listBank, "bank", bank.DefaultName, "question bank name or path")
	cmd.Flags().BoolVar(&listAnswers, "answers", false, "mark correct answers")
	return cmd
}

func runListCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "bank", &listBank, fileCfg.Quiz.Bank)

	src, err := bank.Resolve(listBank, config.DefaultBankDir())
	if err != nil {
		return bankLoadError(listBank, err)
	}
	questions, err := bank.LoadSource(src)
	if err != nil {
		return bankLoadError(listBank, err)
	}
	if err := writeQuestions(cmd.OutOrStdout(), bank.SortByID(questions), listAnswers); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Discard the saved quiz session",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
}

func runResetCmd(_ *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	if err := quiz.NewBridge(st).Clear(context.Background()); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	logErrln("Saved session cleared.")
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show attempt history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsBank, "bank", "", "bank filter")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N attempts")
	cmd.Flags().IntVar(&statsWindow, "window", defaultStatsWindow, "moving average window")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a text report instead of the stats TUI")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	if statsWindow <= 0 {
		return fmt.Errorf("--window must be > 0")
	}
	cfg := model.StatsConfig{
		Bank:   statsBank,
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

	if !statsPlain {
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
	if err := stats.RenderSummary(out, report.Aggregate, report.Attempts); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderHistory(out, report.Attempts); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderTrend(out, report.Attempts, cfg.Window, stats.TerminalWidth(os.Stdout)); err != nil {
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

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tuiquiz configuration
# Uncomment a value to enable it. CLI flags override config values.

[quiz]
# bank = %q          # Bank name in %s, or a path to a .json/.yaml file
# limit-id = 10             # Only ask questions with id up to this value

[log]
# level = %q            # debug, info, warn or error
`,
		bank.DefaultName,
		config.DefaultBankDir(),
		logging.DefaultLevel,
	)
}

func validateConfig(cfg *model.Config, questions []model.Question) error {
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid [log] level: %w", err)
	}
	maxID := bank.MaxID(questions)
	if maxID == 0 {
		cfg.LimitID = 0
		cfg.PinnedLimit = false
		return nil
	}
	if cfg.LimitID == 0 {
		cfg.LimitID = maxID
		cfg.PinnedLimit = false
		return nil
	}
	if err := bank.CheckLimitID(cfg.LimitID, maxID); err != nil {
		return fmt.Errorf("--limit-id: %w", err)
	}
	cfg.PinnedLimit = true
	return nil
}

// loadQuizQuestions loads a bank for the quiz view. An empty bank is not an
// error there; the view shows its empty state.
func loadQuizQuestions(src bank.Source) ([]model.Question, error) {
	questions, err := bank.LoadSource(src)
	if errors.Is(err, bank.ErrEmptyBank) {
		return []model.Question{}, nil
	}
	return questions, err
}

// restoreSession returns the saved session, or a new one when none is usable.
// A pinned limit that differs from the saved one replaces the saved session and
// records it as an attempt when it holds answers.
func restoreSession(ctx context.Context, bridge *quiz.Bridge, history tui.AttemptRecorder, questions []model.Question, cfg model.Config, sh *quiz.Shuffler, logger *zap.Logger) (quiz.Session, bool) {
	session, restored, err := bridge.Restore(ctx, questions, cfg.Bank, cfg.LimitID, sh)
	if err != nil {
		logger.Debug("saved session discarded", zap.Error(err))
	}
	if !restored || !cfg.PinnedLimit || session.LimitID == cfg.LimitID {
		return session, restored
	}
	logger.Info("saved session replaced by configured limit",
		zap.String("session", session.ID),
		zap.Int("saved_limit_id", session.LimitID),
		zap.Int("limit_id", cfg.LimitID),
	)
	if session.Answered() > 0 {
		if err := history.InsertAttempt(ctx, session.Attempt(time.Now())); err != nil {
			logger.Error("failed to record attempt", zap.String("session", session.ID), zap.Error(err))
		}
	}
	if err := bridge.Clear(ctx); err != nil {
		logger.Error("failed to clear saved session", zap.Error(err))
	}
	return quiz.NewSession(questions, cfg.Bank, cfg.LimitID, sh), false
}

func bankLoadError(name string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load question bank: %v", err),
		fmt.Sprintf("bank %q not available", name),
		"Run: tuiquiz banks",
		fmt.Sprintf("Banks directory: %s", config.DefaultBankDir()),
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
