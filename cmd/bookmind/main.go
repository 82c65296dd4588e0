// Package main provides the CLI entrypoint for bookmind.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/anserk/bookmind/internal/analytics"
	"github.com/anserk/bookmind/internal/book"
	"github.com/anserk/bookmind/internal/config"
	"github.com/anserk/bookmind/internal/dashui"
	"github.com/anserk/bookmind/internal/model"
	"github.com/anserk/bookmind/internal/store"
)

const defaultGenre = "Fiction"

var (
	addTitle  string
	addAuthor string
	addGenre  string
	addPages  int
	addRating int
	addDate   string

	listFilter string
	listSearch string

	statsBars  bool
	statsWidth int

	exportOut string

	dbPathFlag string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bookmind",
		Short:         "Personal book tracker",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runDashboardCmd,
	}

	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "database path (default: XDG data dir)")

	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newProgressCmd())
	rootCmd.AddCommand(newToggleCmd())
	rootCmd.AddCommand(newRateCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newGoalCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newInsightsCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	path := dbPathFlag
	if path == "" && fileCfg.Library.DBPath != nil {
		path = *fileCfg.Library.DBPath
	}
	if path == "" {
		path = config.DefaultDBPath()
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func runDashboardCmd(cmd *cobra.Command, _ []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore(st)

	ui := dashui.NewModel(st)
	program := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book",
		Args:  cobra.NoArgs,
		RunE:  runAddCmd,
	}
	cmd.Flags().StringVar(&addTitle, "title", "", "book title (required)")
	cmd.Flags().StringVar(&addAuthor, "author", "", "author (required)")
	cmd.Flags().StringVar(&addGenre, "genre", "", "genre (default from config, else Fiction)")
	cmd.Flags().IntVar(&addPages, "pages", 0, "total pages (required)")
	cmd.Flags().IntVar(&addRating, "rating", 0, "rating 1-5")
	cmd.Flags().StringVar(&addDate, "finished", "", "date finished (YYYY-MM-DD); marks the book read")
	return cmd
}

func runAddCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	genre := defaultGenre
	applyStringConfig(cmd, "genre", &genre, fileCfg.Library.Genre)
	if cmd.Flags().Changed("genre") {
		genre = addGenre
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	books, err := st.LoadBooks(ctx)
	if err != nil {
		return fmt.Errorf("failed to load books: %w", err)
	}
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	b, err := book.Create(books, book.Form{
		Title:      addTitle,
		Author:     addAuthor,
		Genre:      genre,
		TotalPages: addPages,
		Rating:     addRating,
		DateRead:   addDate,
	}, time.Now(), rnd)
	if err != nil {
		return err
	}
	if err := st.InsertBook(ctx, b); err != nil {
		return fmt.Errorf("failed to save book: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %q by %s (%s, %d pages)\n", b.Title, b.Author, b.Genre, b.TotalPages)
	return nil
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List books",
		Args:  cobra.NoArgs,
		RunE:  runListCmd,
	}
	cmd.Flags().StringVar(&listFilter, "filter", "all", "all, read, unread, or inprogress")
	cmd.Flags().StringVar(&listSearch, "search", "", "substring filter over title/author/genre")
	return cmd
}

func runListCmd(cmd *cobra.Command, _ []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore(st)

	books, err := st.LoadBooks(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load books: %w", err)
	}
	filtered := book.Filter(books, listFilter, listSearch)
	if len(filtered) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No books found.")
		return nil
	}
	for _, b := range filtered {
		status := "unread"
		switch {
		case b.Read:
			status = "read " + b.DateRead
		case b.PagesRead > 0:
			status = fmt.Sprintf("%d/%d pages", b.PagesRead, b.TotalPages)
		}
		rating := ""
		if b.Rating > 0 {
			rating = " " + strings.Repeat("★", b.Rating)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s — %s [%s] (%s)%s\n",
			shortID(b.ID), b.Title, b.Author, b.Genre, status, rating)
	}
	return nil
}

func newProgressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress <book> <pages>",
		Short: "Update pages read",
		Args:  cobra.ExactArgs(2),
		RunE:  runProgressCmd,
	}
}

func runProgressCmd(cmd *cobra.Command, args []string) error {
	pages, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid page count %q", args[1])
	}
	return mutateBook(cmd, args[0], func(b *model.Book) {
		wasRead := b.Read
		book.UpdateProgress(b, pages, time.Now())
		if b.Read && !wasRead {
			rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
			fmt.Fprintln(cmd.OutOrStdout(), analytics.Cheer(rnd))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%q: %d/%d pages\n", b.Title, b.PagesRead, b.TotalPages)
	})
}

func newToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <book>",
		Short: "Toggle read/unread",
		Args:  cobra.ExactArgs(1),
		RunE:  runToggleCmd,
	}
}

func runToggleCmd(cmd *cobra.Command, args []string) error {
	return mutateBook(cmd, args[0], func(b *model.Book) {
		book.ToggleRead(b, time.Now())
		if b.Read {
			rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
			fmt.Fprintf(cmd.OutOrStdout(), "%q marked read. %s\n", b.Title, analytics.Cheer(rnd))
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%q marked unread.\n", b.Title)
		}
	})
}

func newRateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rate <book> <rating>",
		Short: "Rate a book 1-5 (0 clears)",
		Args:  cobra.ExactArgs(2),
		RunE:  runRateCmd,
	}
}

func runRateCmd(cmd *cobra.Command, args []string) error {
	rating, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid rating %q", args[1])
	}
	var rateErr error
	err = mutateBook(cmd, args[0], func(b *model.Book) {
		if rateErr = book.SetRating(b, rating); rateErr != nil {
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%q rated %d/5\n", b.Title, rating)
	})
	if rateErr != nil {
		return rateErr
	}
	return err
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <book>",
		Short: "Delete a book",
		Args:  cobra.ExactArgs(1),
		RunE:  runRemoveCmd,
	}
}

func runRemoveCmd(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	books, err := st.LoadBooks(ctx)
	if err != nil {
		return fmt.Errorf("failed to load books: %w", err)
	}
	target, err := resolveBook(books, args[0])
	if err != nil {
		return err
	}
	if err := st.DeleteBook(ctx, target.ID); err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", target.Title)
	return nil
}

func newGoalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "goal [count]",
		Short: "Show or set the monthly reading goal (0 clears)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGoalCmd,
	}
}

func runGoalCmd(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	if len(args) == 0 {
		settings, err := st.LoadSettings(ctx)
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		if settings.MonthlyGoal == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No monthly goal set.")
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Monthly goal: %d books\n", settings.MonthlyGoal)
		}
		return nil
	}
	goal, err := strconv.Atoi(args[0])
	if err != nil || goal < 0 {
		return fmt.Errorf("goal must be a non-negative number")
	}
	if err := st.SaveSettings(ctx, model.Settings{MonthlyGoal: goal}); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	if goal == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Monthly goal cleared.")
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Monthly goal set to %d books.\n", goal)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show library statistics",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().BoolVar(&statsBars, "bars", true, "render genre bar chart")
	cmd.Flags().IntVar(&statsWidth, "width", 0, "output width (default: terminal width)")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyBoolConfig(cmd, "bars", &statsBars, fileCfg.Stats.Bars)
	applyIntConfig(cmd, "width", &statsWidth, fileCfg.Stats.Width)

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore(st)

	report, err := analytics.BuildReport(context.Background(), st, time.Now())
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	out := cmd.OutOrStdout()
	if err := analytics.RenderSummary(out, report); err != nil {
		return err
	}
	if report.Metrics.Total == 0 {
		return nil
	}
	if err := analytics.RenderGenreTable(out, report.GenreStats); err != nil {
		return err
	}
	if statsBars {
		if err := analytics.RenderGenreBars(out, report.GenreStats, statsWidth); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, ""); err != nil {
			return err
		}
	}
	return analytics.RenderBadges(out, report.Badges)
}

func newInsightsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Show reading insights",
		Args:  cobra.NoArgs,
		RunE:  runInsightsCmd,
	}
}

func runInsightsCmd(cmd *cobra.Command, _ []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore(st)

	report, err := analytics.BuildReport(context.Background(), st, time.Now())
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	out := cmd.OutOrStdout()
	if err := analytics.RenderInsights(out, report.Insights); err != nil {
		return err
	}
	if report.Metrics.Total == 0 {
		return nil
	}
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	return analytics.RenderAnalyst(out, report, analytics.Tip(rnd))
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the library as JSON",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVarP(&exportOut, "out", "o", "", "write to file instead of stdout")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore(st)

	data, err := st.ExportData(context.Background())
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}
	if exportOut == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	if err := os.WriteFile(exportOut, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", exportOut)
	return nil
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a JSON export, replacing the library",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore(st)

	count, err := st.ImportData(context.Background(), data)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d books.\n", count)
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

// mutateBook loads the collection, applies fn to the matched record, and
// writes it back. Every mutation round-trips through the store so the next
// render sees fresh state.
func mutateBook(cmd *cobra.Command, key string, fn func(*model.Book)) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	books, err := st.LoadBooks(ctx)
	if err != nil {
		return fmt.Errorf("failed to load books: %w", err)
	}
	target, err := resolveBook(books, key)
	if err != nil {
		return err
	}
	fn(target)
	if err := st.UpdateBook(ctx, *target); err != nil {
		return fmt.Errorf("failed to save book: %w", err)
	}
	return nil
}

// resolveBook matches a book by id, id prefix, or unique case-insensitive
// title substring.
func resolveBook(books []model.Book, key string) (*model.Book, error) {
	if b := book.FindByID(books, key); b != nil {
		return b, nil
	}
	lower := strings.ToLower(key)
	var match *model.Book
	for i := range books {
		if strings.HasPrefix(books[i].ID, key) ||
			strings.Contains(strings.ToLower(books[i].Title), lower) {
			if match != nil {
				return nil, fmt.Errorf("%q matches more than one book; use the id from: bookmind list", key)
			}
			match = &books[i]
		}
	}
	if match == nil {
		return nil, fmt.Errorf("no book matches %q", key)
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
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
	return fmt.Sprintf(`# bookmind configuration
# Uncomment a value to enable it. CLI flags override config values.

[library]
# genre = %q       # Default genre for new books
# db-path = ""     # Override the database location

[stats]
# bars = true      # Render the genre bar chart
# width = 0        # Output width (0 = terminal width)
`, defaultGenre)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
