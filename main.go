// pokit — PO Kit: gettext PO/POT catalog formatter and inspector.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/leonelquinteros/gotext"
	"github.com/mattn/go-isatty"
	"github.com/minios-linux/pokit/config"
	"github.com/minios-linux/pokit/i18n"
	"github.com/minios-linux/pokit/lockfile"
	"github.com/minios-linux/pokit/pofile"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

// useColor is set by initLog when stderr is a terminal.
var useColor bool

func paint(color, s string) string {
	if !useColor {
		return s
	}
	return color + s + colorReset
}

// ---------------------------------------------------------------------------
// Logging
// ---------------------------------------------------------------------------

func initLog() {
	useColor = isatty.IsTerminal(os.Stderr.Fd())

	f := new(log.TextFormatter)
	f.DisableTimestamp = true
	f.DisableLevelTruncation = true
	f.ForceColors = useColor
	f.DisableColors = !useColor
	log.SetFormatter(f)
	log.SetOutput(os.Stderr)

	verbose := viper.GetInt("verbose")
	quiet := viper.GetInt("quiet")
	if verbose == 1 {
		log.SetLevel(log.DebugLevel)
	} else if verbose > 1 {
		log.SetLevel(log.TraceLevel)
	} else if quiet == 1 {
		log.SetLevel(log.WarnLevel)
	} else if quiet > 1 {
		log.SetLevel(log.ErrorLevel)
	}
	log.Debugf("interface language %s", i18n.Language())
}

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pokit",
		Short: "PO Kit: gettext catalog formatter and inspector",
		Long: `pokit — PO Kit: gettext PO/POT catalog formatter and inspector.

Reads catalogs leniently, writes them back in one canonical layout, and
reports translation statistics. Catalogs are taken from the command line,
from the "catalogs" globs in .pokit.yaml, or auto-detected under po/.

Commands:
  fmt       Rewrite catalogs in canonical form
  stat      Show translation statistics
  headers   Show or update catalog headers
  check     Cross-check catalogs against an independent gettext reader
  init      Create a new catalog for a language`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flags — inherited by all subcommands
	root.PersistentFlags().String("root", ".", "Project root directory")
	root.PersistentFlags().String("config", "", "Path to .pokit.yaml (default: <root>/.pokit.yaml)")
	root.PersistentFlags().CountP("verbose", "v", "verbose mode")
	root.PersistentFlags().CountP("quiet", "q", "quiet mode")
	for _, name := range []string{"root", "config", "verbose", "quiet"} {
		_ = viper.BindPFlag(name, root.PersistentFlags().Lookup(name))
	}

	root.AddCommand(
		newFmtCmd(),
		newStatCmd(),
		newHeadersCmd(),
		newCheckCmd(),
		newInitCmd(),
		newVersionCmd(),
	)

	return root
}

func init() {
	viper.SetEnvPrefix("POKIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	cobra.OnInitialize(initLog)
}

func main() {
	i18n.Init("")
	if err := newRootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// Project helpers
// ---------------------------------------------------------------------------

func rootDir() string {
	return viper.GetString("root")
}

// loadProjectFile reads --config, or .pokit.yaml under --root.
func loadProjectFile() (*config.ProjectFile, error) {
	if path := viper.GetString("config"); path != "" {
		return config.ReadProjectFile(path)
	}
	return config.LoadProjectFile(rootDir())
}

// resolveCatalogs returns the catalogs named on the command line, or the
// project's catalogs when args is empty. fromProject reports the latter.
func resolveCatalogs(args []string, pf *config.ProjectFile) (files []string, fromProject bool, err error) {
	if len(args) > 0 {
		return args, false, nil
	}
	if pf != nil && len(pf.Catalogs) > 0 {
		files, err = pf.Resolve(rootDir())
		if err != nil {
			return nil, false, err
		}
	} else {
		files = config.Detect(rootDir()).Catalogs()
	}
	if len(files) == 0 {
		return nil, false, errors.New(i18n.T("no catalogs found; pass files or add \"catalogs\" to .pokit.yaml"))
	}
	return files, true, nil
}

// ---------------------------------------------------------------------------
// version (display version information)
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, build date and interface language.`,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "pokit version %s\n", version)
			fmt.Fprintf(w, "  commit:    %s\n", commit)
			fmt.Fprintf(w, "  built:     %s\n", date)
			fmt.Fprintf(w, "  language:  %s\n", i18n.Language())
		},
	}

	return cmd
}

// ---------------------------------------------------------------------------
// fmt (rewrite catalogs in canonical form)
// ---------------------------------------------------------------------------

type fmtArgs struct {
	check  bool
	stdout bool
}

func newFmtCmd() *cobra.Command {
	var a fmtArgs

	cmd := &cobra.Command{
		Use:   "fmt [files...]",
		Short: "Rewrite catalogs in canonical form",
		Long: `Parse each catalog and write it back in canonical form: header
comments, the header entry with every standard header, then each entry
with comments, references, flags, previous strings and keyword lines in a
fixed order.

With the lock enabled (the default), pokit.lock records a checksum of
every canonical catalog so unchanged files are skipped on the next run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(args, a)
		},
	}

	cmd.Flags().BoolVar(&a.check, "check", false, "Only report catalogs that are not canonical (exit 1 if any)")
	cmd.Flags().BoolVar(&a.stdout, "stdout", false, "Print canonical text to stdout instead of writing files")

	return cmd
}

func runFmt(args []string, a fmtArgs) error {
	pf, err := loadProjectFile()
	if err != nil {
		return err
	}
	files, fromProject, err := resolveCatalogs(args, pf)
	if err != nil {
		return err
	}

	var lock *lockfile.LockFile
	if pf.LockEnabled() && !a.stdout {
		if lock, err = lockfile.Load(rootDir()); err != nil {
			return err
		}
	}

	var keys []string
	dirty, formatted := 0, 0
	for _, path := range files {
		key := lockfile.TargetKey(rootDir(), path)
		keys = append(keys, key)

		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("%w: %w", pofile.ErrUnreadable, err)
		}
		if lock != nil && !lock.IsChanged(key, string(raw)) {
			log.Debugf("%s: unchanged since last run", path)
			continue
		}

		cat, out, err := canonicalize(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		if a.stdout {
			if _, err := os.Stdout.Write(out); err != nil {
				return err
			}
			continue
		}
		if bytes.Equal(out, raw) {
			log.Debugf("%s: already canonical", path)
			if lock != nil {
				lock.Update(key, string(raw))
			}
			continue
		}
		if a.check {
			log.Warnf(i18n.T("%s: not in canonical form"), path)
			dirty++
			continue
		}

		if err := cat.WriteFile(path); err != nil {
			return err
		}
		log.Infof(i18n.T("formatted %s"), path)
		formatted++
		if lock != nil {
			lock.Update(key, string(out))
		}
	}

	if a.check {
		if dirty > 0 {
			return fmt.Errorf(i18n.N("%d catalog is not in canonical form", "%d catalogs are not in canonical form", dirty), dirty)
		}
		return nil
	}

	if lock != nil {
		if fromProject {
			lock.Clean(keys)
		}
		if err := lock.Save(); err != nil {
			return err
		}
		log.Debugf("lock: %s", lock.Summary())
	}
	if !a.stdout {
		log.Infof(i18n.N("%d catalog formatted", "%d catalogs formatted", formatted), formatted)
	}
	return nil
}

// canonicalize parses raw catalog bytes and renders them back, encoded in
// the catalog's declared charset.
func canonicalize(raw []byte) (*pofile.Catalog, []byte, error) {
	text, err := pofile.DecodeText(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", pofile.ErrUnreadable, err)
	}
	cat := pofile.Parse(text)
	out, err := pofile.EncodeText(cat.Header("Content-Type"), cat.String())
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", pofile.ErrUnwritable, err)
	}
	return cat, out, nil
}

// ---------------------------------------------------------------------------
// stat (read-only: translation statistics)
// ---------------------------------------------------------------------------

func newStatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stat [files...]",
		Short: "Show translation statistics",
		Long: `Show per-catalog translation statistics: total, translated, fuzzy,
untranslated and obsolete entries with a progress bar. Does not modify any
files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStat(args)
		},
	}

	return cmd
}

func runStat(args []string) error {
	pf, err := loadProjectFile()
	if err != nil {
		return err
	}
	files, _, err := resolveCatalogs(args, pf)
	if err != nil {
		return err
	}

	names := make([]string, len(files))
	for i, path := range files {
		names[i] = lockfile.TargetKey(rootDir(), path)
	}
	width := columnWidth(names, utf8.RuneCountInString(i18n.T("Catalog")))

	fmt.Fprintf(os.Stderr, "\n%s\n", paint(colorBlue, i18n.T("Translation Statistics")))
	fmt.Fprintln(os.Stderr, strings.Repeat("─", width+60))
	fmt.Fprintf(os.Stderr, "%-*s %8s %10s %6s %9s %8s  %s\n", width,
		i18n.T("Catalog"), i18n.T("Total"), i18n.T("Translated"), i18n.T("Fuzzy"),
		i18n.T("Untrans."), i18n.T("Obsolete"), i18n.T("Progress"))
	fmt.Fprintln(os.Stderr, strings.Repeat("─", width+60))

	var sum pofile.Stats
	failed := 0
	for i, path := range files {
		cat, err := pofile.ReadFile(path)
		if err != nil {
			log.Warn(err)
			fmt.Fprintf(os.Stderr, "%-*s %8s\n", width, names[i], "-")
			failed++
			continue
		}
		s := cat.Stats()
		sum.Total += s.Total
		sum.Translated += s.Translated
		sum.Fuzzy += s.Fuzzy
		sum.Untranslated += s.Untranslated
		sum.Obsolete += s.Obsolete
		fmt.Fprintf(os.Stderr, "%-*s %8d %10d %6d %9d %8d  %s\n", width,
			names[i], s.Total, s.Translated, s.Fuzzy, s.Untranslated, s.Obsolete, statBar(s.Percent()))
	}

	fmt.Fprintln(os.Stderr, strings.Repeat("─", width+60))
	fmt.Fprintf(os.Stderr, "%s: %s\n\n",
		fmt.Sprintf(i18n.N("%d catalog", "%d catalogs", len(files)), len(files)), sum)

	if failed > 0 {
		return fmt.Errorf(i18n.N("%d catalog could not be read", "%d catalogs could not be read", failed), failed)
	}
	return nil
}

// statBar renders a progress bar when colors are on and a bare percentage
// otherwise.
func statBar(percent int) string {
	if !useColor {
		return fmt.Sprintf("%3d%%", percent)
	}
	return progressBar(percent, 20)
}

// progressBar renders a colored bar of width cells followed by the
// percentage. percent is clamped to 0..100.
func progressBar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100

	color := colorRed
	switch {
	case percent >= 90:
		color = colorGreen
	case percent >= 50:
		color = colorYellow
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return color + bar + colorReset + fmt.Sprintf(" %3d%%", percent)
}

// columnWidth returns the widest of names and min, in runes.
func columnWidth(names []string, min int) int {
	w := min
	for _, n := range names {
		if l := utf8.RuneCountInString(n); l > w {
			w = l
		}
	}
	return w
}

// ---------------------------------------------------------------------------
// headers (show or update catalog headers)
// ---------------------------------------------------------------------------

func newHeadersCmd() *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:   "headers FILE",
		Short: "Show or update catalog headers",
		Long: `Print the header entry of a catalog, one "Name: value" per line, in
the order pokit writes them. With --set, update the named headers and
write the catalog back in canonical form.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHeaders(args[0], sets)
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Set a header (Name=Value, repeatable)")

	return cmd
}

type headerAssignment struct {
	name  string
	value string
}

// parseHeaderAssignments parses --set values of the form Name=Value.
func parseHeaderAssignments(sets []string) ([]headerAssignment, error) {
	var out []headerAssignment
	for _, s := range sets {
		name, value, ok := strings.Cut(s, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" || strings.ContainsAny(name, ":\n") {
			return nil, fmt.Errorf(i18n.T("invalid header assignment %q (want Name=Value)"), s)
		}
		out = append(out, headerAssignment{name: name, value: strings.TrimSpace(value)})
	}
	return out, nil
}

func runHeaders(path string, sets []string) error {
	assignments, err := parseHeaderAssignments(sets)
	if err != nil {
		return err
	}

	cat, err := pofile.ReadFile(path)
	if err != nil {
		return err
	}

	if len(assignments) == 0 {
		for _, name := range cat.HeaderNames() {
			fmt.Printf("%s: %s\n", name, cat.Header(name))
		}
		return nil
	}

	for _, a := range assignments {
		log.Debugf("%s: %s = %q", path, a.name, a.value)
		cat.SetHeader(a.name, a.value)
	}
	if err := cat.WriteFile(path); err != nil {
		return err
	}
	log.Infof(i18n.N("%s: %d header updated", "%s: %d headers updated", len(assignments)), path, len(assignments))
	return nil
}

// ---------------------------------------------------------------------------
// check (cross-check against gotext)
// ---------------------------------------------------------------------------

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Cross-check catalogs against an independent gettext reader",
		Long: `Read each catalog with pokit and with the gotext library and compare
the translations both readers return for every translated, non-fuzzy
entry. Any disagreement usually points at a malformed literal or escape.
Exits with status 1 when a mismatch is found.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args)
		},
	}

	return cmd
}

func runCheck(args []string) error {
	pf, err := loadProjectFile()
	if err != nil {
		return err
	}
	files, _, err := resolveCatalogs(args, pf)
	if err != nil {
		return err
	}

	bad := 0
	for _, path := range files {
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("%w: %w", pofile.ErrUnreadable, err)
		}
		text, err := pofile.DecodeText(raw)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", pofile.ErrUnreadable, path, err)
		}
		problems := crossCheck(text, pofile.Parse(text))
		for _, p := range problems {
			log.Warnf("%s: %s", path, p)
		}
		if len(problems) > 0 {
			bad++
		} else {
			log.Debugf("%s: ok", path)
		}
	}

	if bad > 0 {
		return fmt.Errorf(i18n.N("%d catalog has mismatches", "%d catalogs have mismatches", bad), bad)
	}
	log.Infof(i18n.N("%d catalog checked", "%d catalogs checked", len(files)), len(files))
	return nil
}

// crossCheck compares the translations of cat with what gotext reads from
// the same text. Only translated, non-fuzzy, live entries are compared,
// every msgstr form against gotext's form of the same index.
func crossCheck(text string, cat *pofile.Catalog) []string {
	ref := gotext.NewPo()
	ref.Parse([]byte(text))
	dom := ref.GetDomain()
	plain, byCtx := dom.GetTranslations(), dom.GetCtxTranslations()

	var problems []string
	for _, e := range cat.Entries {
		if e.Obsolete || !e.IsTranslated() {
			continue
		}
		tr := plain[e.MsgID]
		if e.MsgCtxt != nil && *e.MsgCtxt != "" {
			tr = byCtx[*e.MsgCtxt][e.MsgID]
		}
		if tr == nil {
			problems = append(problems, fmt.Sprintf("msgid %q: not read by gotext", e.MsgID))
			continue
		}
		for i, s := range e.MsgStr {
			if got := tr.Trs[i]; got != s {
				problems = append(problems, fmt.Sprintf("msgid %q: gotext reads msgstr[%d] %q, pokit reads %q", e.MsgID, i, got, s))
			}
		}
	}
	return problems
}

// ---------------------------------------------------------------------------
// init (create a new catalog)
// ---------------------------------------------------------------------------

type initArgs struct {
	lang    string
	project string
	output  string
	force   bool
}

func newInitCmd() *cobra.Command {
	var a initArgs

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new catalog for a language",
		Long: `Create an empty catalog with a standard header: copyright comments,
project name and version (from debian/changelog or .pokit.yaml), the
language's native team name and its Plural-Forms rule.

The default output is po/<lang>.po, or po/<lang>/<project>.po when the
project uses per-language directories.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(a)
		},
	}

	cmd.Flags().StringVar(&a.lang, "lang", "", "Language code (default: \"language\" from .pokit.yaml)")
	cmd.Flags().StringVar(&a.project, "project", "", "Project name (default: auto-detected)")
	cmd.Flags().StringVarP(&a.output, "output", "o", "", "Output file")
	cmd.Flags().BoolVar(&a.force, "force", false, "Overwrite an existing file")

	return cmd
}

func runInit(a initArgs) error {
	pf, err := loadProjectFile()
	if err != nil {
		return err
	}
	proj := config.Detect(rootDir())
	pf.Apply(proj)
	if a.project != "" {
		proj.Name = a.project
	}

	lang := a.lang
	if lang == "" && pf != nil {
		lang = pf.Language
	}
	if lang == "" {
		return errors.New(i18n.T("no language given; use --lang"))
	}

	out := a.output
	if out == "" {
		out = proj.POPath(lang)
	}
	if fileExists(out) && !a.force {
		return fmt.Errorf(i18n.T("%s already exists; use --force to overwrite"), out)
	}
	if slices.Contains(proj.Languages, lang) && !a.force {
		return fmt.Errorf(i18n.T("language %s already has a catalog in %s; use --force to add another"), lang, proj.PODir)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return fmt.Errorf("%w: %w", pofile.ErrUnwritable, err)
	}

	cat := pofile.MakeCatalog(pofile.HeaderOptions{
		Package:         proj.Name,
		Version:         proj.Version,
		BugsEmail:       proj.BugsEmail,
		CopyrightHolder: proj.CopyrightHolder,
		Language:        lang,
	})
	if err := cat.WriteFile(out); err != nil {
		return err
	}
	log.Infof(i18n.T("created %s (%s, %d plural forms)"), out, pofile.LangNameNative(lang), cat.NPlurals())
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// fileExists returns true if path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
