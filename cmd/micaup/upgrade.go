package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"micaup/internal/diagfmt"
	"micaup/internal/frontend"
	"micaup/internal/history"
	"micaup/internal/project"
	"micaup/internal/source"
	"micaup/internal/ui"
	"micaup/internal/upgrade"
)

func init() {
	rootCmd.Flags().Bool("accept-safe", false, "apply changes that preserve semantics")
	rootCmd.Flags().Bool("accept-unsafe", false, "apply changes that may alter semantics")
	rootCmd.Flags().Bool("short-log", false, "one truncated line per change")
	rootCmd.Flags().Bool("verbose", false, "show a unified diff per modified unit")
	rootCmd.Flags().StringSlice("allow-paths", nil, "directories input units may come from")
	rootCmd.Flags().Bool("ignore-missing", false, "skip input files that do not exist")
	rootCmd.Flags().Bool("dry-run", false, "run the migration but do not write files")
	rootCmd.Flags().Bool("ui", false, "interactive progress view")
	rootCmd.Flags().Int("max-cycles", 0, "recompilation budget (0 for the default)")
	rootCmd.Flags().String("diag-format", "pretty", "format for remaining findings (pretty|json)")
}

// upgradeConfig is the merged view of manifest defaults and flags. A flag
// set on the command line wins over the mica.toml value.
type upgradeConfig struct {
	acceptSafe    bool
	acceptUnsafe  bool
	shortLog      bool
	verbose       bool
	allowPaths    []string
	ignoreMissing bool
	dryRun        bool
	interactive   bool
	maxCycles     int
	projectRoot   string
}

func resolveConfig(cmd *cobra.Command) (*upgradeConfig, error) {
	cfg := &upgradeConfig{}

	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg.projectRoot = wd

	manifest, root, found, err := project.LoadForDir(wd)
	if err != nil {
		return nil, err
	}
	if found {
		cfg.projectRoot = root
		cfg.acceptSafe = manifest.Upgrade.AcceptSafe
		cfg.acceptUnsafe = manifest.Upgrade.AcceptUnsafe
		cfg.shortLog = manifest.Upgrade.ShortLog
		cfg.ignoreMissing = manifest.Upgrade.IgnoreMissing
		cfg.allowPaths = manifest.Upgrade.AllowPaths
	}

	flags := cmd.Flags()
	if flags.Changed("accept-safe") {
		cfg.acceptSafe, _ = flags.GetBool("accept-safe")
	}
	if flags.Changed("accept-unsafe") {
		cfg.acceptUnsafe, _ = flags.GetBool("accept-unsafe")
	}
	if flags.Changed("short-log") {
		cfg.shortLog, _ = flags.GetBool("short-log")
	}
	if flags.Changed("ignore-missing") {
		cfg.ignoreMissing, _ = flags.GetBool("ignore-missing")
	}
	if flags.Changed("allow-paths") {
		cfg.allowPaths, _ = flags.GetStringSlice("allow-paths")
	}
	cfg.verbose, _ = flags.GetBool("verbose")
	cfg.dryRun, _ = flags.GetBool("dry-run")
	cfg.interactive, _ = flags.GetBool("ui")
	cfg.maxCycles, _ = flags.GetInt("max-cycles")
	return cfg, nil
}

func runUpgrade(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	units, err := loadUnits(args, cfg)
	if err != nil {
		return err
	}
	if len(units) == 0 {
		return errors.New("no input units")
	}

	maxDiags, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	colorMode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}

	compiler := frontend.New()
	compiler.MaxDiagnostics = maxDiags

	opts := upgrade.Options{
		AcceptSafe:   cfg.acceptSafe,
		AcceptUnsafe: cfg.acceptUnsafe,
		MaxCycles:    cfg.maxCycles,
	}

	var events chan upgrade.Event
	if cfg.interactive && isTerminal(os.Stdout) {
		events = make(chan upgrade.Event, 16)
		opts.Progress = func(ev upgrade.Event) { events <- ev }
	}

	driver := upgrade.NewDriver(compiler, upgrade.DefaultSuite(), units, opts)

	var res *upgrade.Result
	var runErr error
	if events != nil {
		go func() {
			defer close(events)
			res, runErr = driver.Run(cmd.Context())
		}()
		paths := make([]string, len(units))
		for i, u := range units {
			paths[i] = u.Path
		}
		if err := ui.RunProgress("upgrading", paths, events); err != nil {
			return err
		}
	} else {
		res, runErr = driver.Run(cmd.Context())
	}
	if runErr != nil {
		return runErr
	}

	if !cfg.dryRun {
		written, err := driver.WriteBack()
		if err != nil {
			return err
		}
		if len(written) > 0 {
			if err := recordHistory(driver, written); err != nil {
				fmt.Fprintf(os.Stderr, "warning: undo journal not written: %v\n", err)
			}
		}
	}

	if !quiet {
		renderOpts := upgrade.ReportOptions{
			Color:    useColor(colorMode),
			ShortLog: cfg.shortLog,
			Verbose:  cfg.verbose,
		}
		if err := upgrade.RenderResult(os.Stdout, driver, res, renderOpts); err != nil {
			return err
		}
		if err := renderFindings(cmd, cfg, res); err != nil {
			return err
		}
	}

	if res.Outcome == upgrade.OutcomeBlocked {
		return errors.New("sources do not parse")
	}
	return nil
}

// renderFindings prints the diagnostics of the final compilation.
func renderFindings(cmd *cobra.Command, cfg *upgradeConfig, res *upgrade.Result) error {
	if res.Final == nil || res.Final.Bag.Len() == 0 {
		return nil
	}
	format, err := cmd.Flags().GetString("diag-format")
	if err != nil {
		return err
	}
	colorMode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	switch format {
	case "json":
		return diagfmt.JSON(os.Stdout, res.Final.Bag, res.Final.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     !cfg.shortLog,
			BaseDir:          cfg.projectRoot,
		})
	case "pretty":
		diagfmt.Pretty(os.Stdout, res.Final.Bag, res.Final.FileSet, diagfmt.PrettyOpts{
			Color:     useColor(colorMode),
			ShowNotes: !cfg.shortLog,
			BaseDir:   cfg.projectRoot,
		})
		return nil
	default:
		return fmt.Errorf("unsupported diag-format %q (must be pretty or json)", format)
	}
}

// loadUnits reads the input files concurrently, enforcing the allow list
// and the ignore-missing policy. Unit order matches the argument order.
func loadUnits(paths []string, cfg *upgradeConfig) ([]frontend.Unit, error) {
	allow := project.NewAllowList(cfg.projectRoot, cfg.allowPaths)

	type slot struct {
		unit frontend.Unit
		skip bool
	}
	slots := make([]slot, len(paths))

	var g errgroup.Group
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			abs := path
			if a, err := source.AbsolutePath(path); err == nil {
				abs = a
			}
			if !allow.Allowed(abs) {
				return fmt.Errorf("%s: outside allowed paths", path)
			}
			text, err := os.ReadFile(path)
			if err != nil {
				if cfg.ignoreMissing && errors.Is(err, os.ErrNotExist) {
					fmt.Fprintf(os.Stderr, "warning: skipping missing file %s\n", path)
					slots[i].skip = true
					return nil
				}
				return err
			}
			text = bytes.TrimPrefix(text, []byte{0xEF, 0xBB, 0xBF})
			slots[i].unit = frontend.Unit{Path: path, Text: text}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(slots))
	units := make([]frontend.Unit, 0, len(slots))
	for _, s := range slots {
		if s.skip || seen[s.unit.Path] {
			continue
		}
		seen[s.unit.Path] = true
		units = append(units, s.unit)
	}
	return units, nil
}

func recordHistory(driver *upgrade.Driver, written []string) error {
	journal, err := history.Open("micaup")
	if err != nil {
		return err
	}
	wrote := make(map[string]bool, len(written))
	for _, p := range written {
		wrote[p] = true
	}
	entry := &history.Entry{When: time.Now().UTC()}
	for _, u := range driver.Units() {
		if !wrote[u.Path] {
			continue
		}
		orig, _ := driver.Original(u.Path)
		entry.Units = append(entry.Units, history.UnitSnapshot{
			Path:     u.Path,
			Original: orig,
			Upgraded: u.Text,
		})
	}
	sort.Slice(entry.Units, func(i, j int) bool { return entry.Units[i].Path < entry.Units[j].Path })
	return journal.Record(entry)
}
