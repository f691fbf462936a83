// Package main provides the CLI entrypoint for lectern.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/lectern/internal/artemis"
	"github.com/verte-zerg/lectern/internal/config"
	"github.com/verte-zerg/lectern/internal/fileext"
	"github.com/verte-zerg/lectern/internal/history"
	"github.com/verte-zerg/lectern/internal/lecture"
	"github.com/verte-zerg/lectern/internal/nav"
	"github.com/verte-zerg/lectern/internal/store"
	"github.com/verte-zerg/lectern/internal/tui"
)

const (
	defaultServer  = "http://localhost:8080"
	defaultTimeout = 30 * time.Second
	defaultRetries = 2
	defaultLast    = 20
	tokenEnv       = "LECTERN_TOKEN"
)

var (
	editCourse       int64
	editLecture      int64
	editList         bool
	editWizard       bool
	editProcessUnits bool
	editServer       string
	editToken        string
	editTimeout      string
	editRetries      int
	editDebug        bool

	historyCourse int64
	historyLast   int

	extensionsAccept bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "lectern",
		Short:         "Terminal lecture editor for course-management servers",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(newEditCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newExtensionsCmd())

	return rootCmd
}

func newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Create or edit a lecture",
		Args:  cobra.NoArgs,
		RunE:  runEditCmd,
	}
	cmd.Flags().Int64Var(&editCourse, "course", 0, "course id (required)")
	cmd.Flags().Int64Var(&editLecture, "lecture", 0, "lecture id to edit (omit to create a new lecture)")
	cmd.Flags().BoolVar(&editList, "list", false, "start on the lecture list of the course")
	cmd.Flags().BoolVar(&editWizard, "wizard", false, "open the form in guided wizard mode")
	cmd.Flags().BoolVar(&editProcessUnits, "process-units", false, "split the selected file into units after saving")
	cmd.Flags().StringVar(&editServer, "server", defaultServer, "server base URL")
	cmd.Flags().StringVar(&editToken, "token", "", "bearer token (default: $"+tokenEnv+")")
	cmd.Flags().StringVar(&editTimeout, "timeout", defaultTimeout.String(), "request timeout")
	cmd.Flags().IntVar(&editRetries, "retries", defaultRetries, "extra attempts for reads")
	cmd.Flags().BoolVar(&editDebug, "debug", false, "write debug messages to the log file")
	return cmd
}

func runEditCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "server", &editServer, fileCfg.Server.URL)
	applyStringConfig(cmd, "token", &editToken, fileCfg.Server.Token)
	applyStringConfig(cmd, "timeout", &editTimeout, fileCfg.Server.Timeout)
	applyIntConfig(cmd, "retries", &editRetries, fileCfg.Server.Retries)
	applyBoolConfig(cmd, "wizard", &editWizard, fileCfg.Editor.Wizard)
	applyBoolConfig(cmd, "process-units", &editProcessUnits, fileCfg.Editor.ProcessUnits)
	if editToken == "" {
		editToken = os.Getenv(tokenEnv)
	}

	timeout, err := config.ParseTimeout(editTimeout, defaultTimeout)
	if err != nil {
		return err
	}
	settings := config.Settings{
		ServerURL:    strings.TrimRight(editServer, "/"),
		Token:        editToken,
		Timeout:      timeout,
		Retries:      editRetries,
		Wizard:       editWizard,
		ProcessUnits: editProcessUnits,
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	if err := validateEditTarget(editCourse, editLecture); err != nil {
		return err
	}

	closeLog, err := setupLogging(editDebug)
	if err != nil {
		return err
	}
	defer closeLog()

	client := artemis.NewClient(artemis.Options{
		BaseURL: settings.ServerURL,
		Token:   settings.Token,
		Timeout: settings.Timeout,
		Retries: uint(settings.Retries),
	})
	defer func() {
		if cerr := client.Close(); cerr != nil {
			logErrf("failed to close client: %v\n", cerr)
		}
	}()

	course, err := client.FindCourse(cmd.Context(), editCourse)
	if err != nil {
		return fmt.Errorf("failed to load course %d: %w", editCourse, err)
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

	start := startRoute(editCourse, editLecture, editList, settings.Wizard)
	slog.Default().Info("starting editor", "server", settings.ServerURL, "path", start.Path())

	app := tui.New(tui.Options{
		Backend:      client,
		Journal:      st,
		Course:       course,
		Start:        start,
		Wizard:       settings.Wizard,
		ProcessUnits: settings.ProcessUnits,
	})
	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func validateEditTarget(courseID, lectureID int64) error {
	if courseID <= 0 {
		return fmt.Errorf("--course must be > 0")
	}
	if lectureID < 0 {
		return fmt.Errorf("--lecture must be >= 0")
	}
	return nil
}

func startRoute(courseID, lectureID int64, list, wizard bool) nav.Route {
	var route nav.Route
	switch {
	case list:
		return nav.Lectures(courseID)
	case lectureID > 0:
		route = nav.LectureEdit(courseID, lectureID)
	default:
		route = nav.LectureNew(courseID)
	}
	route.State = lecture.QueryParams{ShouldBeInWizardMode: wizard}
	return route
}

func setupLogging(debug bool) (func(), error) {
	path := config.DefaultLogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: level})))
	return func() {
		if cerr := file.Close(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}, nil
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
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o600); err != nil {
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

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent lecture saves",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().Int64Var(&historyCourse, "course", 0, "course filter")
	cmd.Flags().IntVar(&historyLast, "last", defaultLast, "limit to last N saves (0 = all)")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
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

	records, err := st.ListSaves(cmd.Context(), historyCourse, historyLast)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if err := history.Render(cmd.OutOrStdout(), records, terminalWidth()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newExtensionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extensions",
		Short: "List file extensions accepted for unit processing",
		Args:  cobra.NoArgs,
		RunE:  runExtensionsCmd,
	}
	cmd.Flags().BoolVar(&extensionsAccept, "accept", false, "print the file chooser filter form (.png,.jpg,...)")
	return cmd
}

func runExtensionsCmd(cmd *cobra.Command, _ []string) error {
	out := fileext.AllowedFileExtensions()
	if extensionsAccept {
		out = fileext.AcceptedFileExtensions()
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return 0
	}
	return width
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

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# lectern configuration
# Uncomment a value to enable it. CLI flags override config values.

[server]
# url = %q   # Server base URL
# token = ""                      # Bearer token (or set $%s)
# timeout = %q                   # Request timeout
# retries = %d                     # Extra attempts for reads

[editor]
# wizard = false         # Open new lectures in wizard mode
# process-units = false  # Split the selected file into units after saving
`,
		defaultServer,
		tokenEnv,
		defaultTimeout.String(),
		defaultRetries,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
