package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/lixenwraith/strata/domain"
	"github.com/lixenwraith/strata/storage"
)

// Env bundles the process surface so commands are testable without
// touching the real stdout or data directory.
type Env struct {
	Stdout io.Writer
	Stderr io.Writer
	State  *storage.StateStore
	Now    func() time.Time

	// Interactive enables decorated output (separators, relative
	// times). Off when stdout is piped.
	Interactive bool
}

// DefaultEnv builds the production environment.
func DefaultEnv() *Env {
	return &Env{
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		State:       storage.OpenStateStore(),
		Now:         time.Now,
		Interactive: isatty.IsTerminal(os.Stdout.Fd()),
	}
}

// IsSubcommand reports whether the first CLI arg names a known
// subcommand, i.e. whether main should run the CLI instead of the TUI.
func IsSubcommand(arg string) bool {
	switch arg {
	case "start", "stop", "report", "export", "completions", "migrate-csv", "help", "-h", "--help":
		return true
	}
	return false
}

// Run dispatches a subcommand. Returns the process exit code.
func Run(env *Env, args []string) int {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return 2
	}

	var err error
	switch args[0] {
	case "start":
		err = runStart(env, args[1:])
	case "stop":
		err = runStop(env, args[1:])
	case "report":
		err = runReport(env, args[1:])
	case "export":
		err = runExport(env, args[1:])
	case "completions":
		err = runCompletions(env, args[1:])
	case "migrate-csv":
		err = storage.MigrateCSV()
	case "help", "-h", "--help":
		printUsage(env.Stdout)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return 2
	}

	if err != nil {
		fmt.Fprintf(env.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: strata [command]

Running without a command opens the interactive tracker.

Commands:
  start <project> [-desc text] [-category name-or-id]
        Start tracking a session
  stop  Stop the active session and record it
  report [-period today|week|month]
        Print a per-category time report
  export -format json|ics [-out path]
        Export categories and sessions
  completions <bash|zsh|fish>
        Print shell completion script
  migrate-csv
        Rewrite data files in the canonical schema
`)
}

func runStart(env *Env, args []string) error {
	fs := flag.NewFlagSet("start", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	desc := fs.String("desc", "", "session description")
	category := fs.String("category", domain.NoneName, "category name or ID")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("start needs exactly one project argument")
	}
	project := fs.Arg(0)

	loaded := storage.LoadCategories(storage.CategoriesPath())
	cat, ok := findCategory(loaded.Categories, *category)
	if !ok {
		return fmt.Errorf("category %q not found", *category)
	}

	if prev, running := env.State.LoadActiveSession(); running {
		return fmt.Errorf("a session for project %q is already running (started %s)",
			prev.Project, humanize.RelTime(prev.StartTime, env.Now(), "ago", "from now"))
	}

	session := storage.ActiveSession{
		Project:      project,
		Description:  *desc,
		CategoryID:   uint64(cat.ID),
		CategoryName: cat.Name,
		StartTime:    env.Now().UTC(),
	}
	if err := env.State.SaveActiveSession(session); err != nil {
		return err
	}

	fmt.Fprintf(env.Stdout, "Started session for project '%s' in category '%s'\n", project, cat.Name)
	return nil
}

func runStop(env *Env, args []string) error {
	fs := flag.NewFlagSet("stop", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	active, ok := env.State.LoadActiveSession()
	if !ok {
		return fmt.Errorf("no active session to stop")
	}

	now := env.Now()
	elapsed := int(now.Sub(active.StartTime).Seconds())
	if elapsed < 0 {
		elapsed = 0
	}

	catPath, logPath := storage.CategoriesPath(), storage.TimeLogPath()
	categories := storage.LoadCategories(catPath).Categories
	loaded := storage.LoadSessions(logPath, categories)
	sessions := loaded.Sessions

	today := now.Format(domain.DateFormat)
	catID := domain.NoneID
	for _, c := range categories {
		if uint64(c.ID) == active.CategoryID {
			catID = c.ID
		}
	}

	merged := false
	for i := range sessions {
		if sessions[i].Date == today && sessions[i].CategoryID == catID {
			sessions[i].ElapsedSeconds += elapsed
			sessions[i].EndTime = now.Format(domain.ClockFormat)
			merged = true
			break
		}
	}
	if !merged {
		sessions = append(sessions, domain.Session{
			ID:             loaded.NextSessionID,
			Date:           today,
			CategoryID:     catID,
			Description:    active.Description,
			StartTime:      now.Add(-time.Duration(elapsed) * time.Second).Format(domain.ClockFormat),
			EndTime:        now.Format(domain.ClockFormat),
			ElapsedSeconds: elapsed,
		})
	}

	if err := storage.SaveSessions(logPath, sessions, categories); err != nil {
		return err
	}
	if err := env.State.ClearActiveSession(); err != nil {
		return err
	}

	fmt.Fprintf(env.Stdout, "Stopped session. Elapsed time: %s\n", FormatDuration(elapsed))
	if env.Interactive {
		fmt.Fprintf(env.Stdout, "Started %s\n", humanize.RelTime(active.StartTime, now, "ago", "from now"))
	}
	return nil
}

func runReport(env *Env, args []string) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	period := fs.String("period", "today", "today, week, or month")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var p domain.Period
	switch *period {
	case "today":
		p = domain.PeriodToday
	case "week":
		p = domain.PeriodWeek
	case "month":
		p = domain.PeriodMonth
	default:
		return fmt.Errorf("unknown period %q", *period)
	}

	categories := storage.LoadCategories(storage.CategoriesPath()).Categories
	sessions := storage.LoadSessions(storage.TimeLogPath(), categories).Sessions
	summary := domain.BuildPeriodReport(sessions, categories, p)

	WriteReport(env.Stdout, summary, env.Interactive)
	return nil
}

func runExport(env *Env, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	format := fs.String("format", "json", "json or ics")
	out := fs.String("out", "", "output path, stdout when empty")
	if err := fs.Parse(args); err != nil {
		return err
	}

	categories := storage.LoadCategories(storage.CategoriesPath()).Categories
	sessions := storage.LoadSessions(storage.TimeLogPath(), categories).Sessions
	export := storage.BuildExport(categories, sessions, env.Now())

	var data []byte
	switch *format {
	case "json":
		var err error
		if data, err = storage.ExportJSON(export); err != nil {
			return err
		}
	case "ics":
		data = storage.ExportICS(export, env.Now())
	default:
		return fmt.Errorf("unknown export format %q", *format)
	}

	if *out == "" {
		_, err := env.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(env.Stdout, "Exported %s sessions to %s\n",
		humanize.Comma(int64(len(export.Sessions))), *out)
	return nil
}

// findCategory matches by exact name (case-insensitive) or numeric ID.
func findCategory(categories []domain.Category, nameOrID string) (domain.Category, bool) {
	for _, c := range categories {
		if strings.EqualFold(c.Name, nameOrID) {
			return c, true
		}
	}
	if id, err := strconv.ParseUint(nameOrID, 10, 64); err == nil {
		for _, c := range categories {
			if uint64(c.ID) == id {
				return c, true
			}
		}
	}
	return domain.Category{}, false
}

// FormatDuration renders elapsed seconds as HH:MM:SS.
func FormatDuration(seconds int) string {
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

// WriteReport prints a report summary as an aligned table.
func WriteReport(w io.Writer, summary domain.ReportSummary, decorated bool) {
	fmt.Fprintf(w, "Report (%s)\n", summary.Date)
	if decorated {
		fmt.Fprintln(w, strings.Repeat("-", 40))
	}
	for _, e := range summary.Entries {
		fmt.Fprintf(w, "%-20s %s\n", e.CategoryName, FormatDuration(e.ElapsedSeconds))
	}
	if decorated {
		fmt.Fprintln(w, strings.Repeat("-", 40))
	}
	fmt.Fprintf(w, "%-20s %s\n", "TOTAL", FormatDuration(summary.TotalSeconds))
}
