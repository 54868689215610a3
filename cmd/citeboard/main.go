// Package main provides the CLI entrypoint for citeboard.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/citelab/citeboard/internal/chart"
	"github.com/citelab/citeboard/internal/config"
	"github.com/citelab/citeboard/internal/dashboard"
	"github.com/citelab/citeboard/internal/dataset"
	"github.com/citelab/citeboard/internal/logging"
	"github.com/citelab/citeboard/internal/model"
	"github.com/citelab/citeboard/internal/render"
)

const (
	defaultDataDir = "data"
	dataDirEnv     = "CITEBOARD_DATA_DIR"
)

var (
	dataDir         string
	country         string
	topInstitutions int
	topTopics       int
	noColor         bool

	dashboardDebug bool

	reportVerbose   bool
	exportVerbose   bool
	validateVerbose bool

	exportFormat   string
	exportSections []string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "citeboard",
		Short:         "Citation source analytics dashboard",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runDashboardCmd,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", defaultDataDir, "data directory with the three input files")
	rootCmd.PersistentFlags().StringVar(&country, "country", model.AllCountries, "initial country filter")
	rootCmd.PersistentFlags().IntVar(&topInstitutions, "top-institutions", chart.DefaultTopInstitutions, "institutions shown in detail charts")
	rootCmd.PersistentFlags().IntVar(&topTopics, "top-topics", chart.DefaultTopTopics, "topics shown in detail charts")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.Flags().BoolVar(&dashboardDebug, "debug", false, "write a debug log while the dashboard runs")

	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runDashboardCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	logger := logging.Nop()
	if dashboardDebug {
		logger, err = logging.NewFile(config.DefaultLogPath())
		if err != nil {
			return err
		}
	}
	defer syncLogger(logger)

	session := dashboard.NewSession(cfg, logger)
	program := tea.NewProgram(dashboard.NewModel(session), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render every section to stdout",
		Args:  cobra.NoArgs,
		RunE:  runReportCmd,
	}
	cmd.Flags().BoolVar(&reportVerbose, "verbose", false, "enable debug logging")
	return cmd
}

func runReportCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	logger, err := logging.New(reportVerbose)
	if err != nil {
		return err
	}
	defer syncLogger(logger)

	out := cmd.OutOrStdout()
	color := cfg.Color && render.ShouldColor(os.Stdout, false)
	opts := render.Options{Color: color}
	session := dashboard.NewSession(cfg, logger)

	overview := session.View(model.SectionOverview)
	for _, card := range overview.Cards {
		if _, err := fmt.Fprintf(out, "%s: %s\n", card.Label, card.Value); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	for _, line := range overview.Status {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	for _, section := range model.DataSections {
		if _, err := fmt.Fprintln(out); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		view := session.View(section)
		if view.ErrMsg != "" {
			logErrf("%s: %s\n", section, view.ErrMsg)
			continue
		}
		for _, spec := range view.Charts {
			if err := render.Render(out, spec, opts); err != nil {
				return fmt.Errorf("failed to render %q: %w", spec.Title, err)
			}
			if _, err := fmt.Fprintln(out); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		for _, line := range render.FormatTable(view.Table.Headers, view.Table.Rows, view.Table.RightAlign) {
			if _, err := fmt.Fprintln(out, line); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
	}
	return nil
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Emit chart specifications",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&exportFormat, "format", chart.FormatJSON, "output format (json or yaml)")
	cmd.Flags().StringSliceVar(&exportSections, "section", nil, "sections to export (institutions, topics, types; default all)")
	cmd.Flags().BoolVar(&exportVerbose, "verbose", false, "enable debug logging")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	logger, err := logging.New(exportVerbose)
	if err != nil {
		return err
	}
	defer syncLogger(logger)

	sections, err := resolveExportSections(exportSections)
	if err != nil {
		return err
	}

	session := dashboard.NewSession(cfg, logger)
	specs := make([]chart.Spec, 0, 3*len(sections))
	for _, section := range sections {
		view := session.View(section)
		if view.ErrMsg != "" {
			return fmt.Errorf("failed to load %s: %s", section, view.ErrMsg)
		}
		specs = append(specs, view.Charts...)
	}
	return chart.Encode(cmd.OutOrStdout(), specs, exportFormat)
}

func resolveExportSections(names []string) ([]model.Section, error) {
	if len(names) == 0 {
		return append([]model.Section(nil), model.DataSections...), nil
	}
	known := make(map[model.Section]struct{}, len(model.DataSections))
	for _, section := range model.DataSections {
		known[section] = struct{}{}
	}
	sections := make([]model.Section, 0, len(names))
	for _, name := range names {
		section := model.Section(strings.TrimSpace(strings.ToLower(name)))
		if _, ok := known[section]; !ok {
			return nil, fmt.Errorf("unknown section %q (use institutions, topics, or types)", name)
		}
		sections = append(sections, section)
	}
	return sections, nil
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the input files against their schemas",
		Args:  cobra.NoArgs,
		RunE:  runValidateCmd,
	}
	cmd.Flags().BoolVar(&validateVerbose, "verbose", false, "enable debug logging")
	return cmd
}

func runValidateCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	logger, err := logging.New(validateVerbose)
	if err != nil {
		return err
	}
	defer syncLogger(logger)

	out := cmd.OutOrStdout()
	failed := 0
	for _, schema := range []dataset.Schema{dataset.InstitutionSchema, dataset.TopicSchema, dataset.TypeSchema} {
		rows, err := dataset.Load(cfg.DataDir, schema)
		if err != nil {
			failed++
			logger.Warn("validation failed", zap.String("file", schema.File), zap.Error(err))
			if _, werr := fmt.Fprintf(out, "%s: %v\n", schema.File, err); werr != nil {
				return fmt.Errorf("failed to write output: %w", werr)
			}
			continue
		}
		if _, werr := fmt.Fprintf(out, "%s: OK (%d rows)\n", schema.File, len(rows)); werr != nil {
			return fmt.Errorf("failed to write output: %w", werr)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed validation", failed)
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

// resolveSettings merges defaults, the config file, the data-dir env
// override, and changed flags, in that precedence order (flags win).
func resolveSettings(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "country", &country, fileCfg.Dashboard.Country)
	applyIntConfig(cmd, "top-institutions", &topInstitutions, fileCfg.Dashboard.TopInstitutions)
	applyIntConfig(cmd, "top-topics", &topTopics, fileCfg.Dashboard.TopTopics)

	color := true
	if fileCfg.Dashboard.Color != nil {
		color = *fileCfg.Dashboard.Color
	}
	if noColor {
		color = false
	}

	cfg := model.Config{
		DataDir:         resolveDataDir(cmd, fileCfg),
		Country:         country,
		TopInstitutions: topInstitutions,
		TopTopics:       topTopics,
		Color:           color,
	}
	if err := validateSettings(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func resolveDataDir(cmd *cobra.Command, fileCfg config.FileConfig) string {
	if cmd.Flags().Changed("data") {
		return dataDir
	}
	if env := os.Getenv(dataDirEnv); env != "" {
		return env
	}
	if fileCfg.Data.Dir != nil {
		return *fileCfg.Data.Dir
	}
	return defaultDataDir
}

func validateSettings(cfg model.Config) error {
	if cfg.DataDir == "" {
		return fmt.Errorf("--data must not be empty")
	}
	if cfg.TopInstitutions <= 0 {
		return fmt.Errorf("--top-institutions must be > 0")
	}
	if cfg.TopTopics <= 0 {
		return fmt.Errorf("--top-topics must be > 0")
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
	return fmt.Sprintf(`# citeboard configuration
# Uncomment a value to enable it. CLI flags override config values.

[data]
# dir = %q               # Data directory with the three input files

[dashboard]
# top-institutions = %d  # Institutions shown in detail charts
# top-topics = %d        # Topics shown in detail charts
# country = %q           # Initial country filter
# color = true           # Colored chart output
`,
		defaultDataDir,
		chart.DefaultTopInstitutions,
		chart.DefaultTopTopics,
		model.AllCountries,
	)
}

func syncLogger(logger *zap.Logger) {
	if err := logger.Sync(); err != nil {
		// Sync on stderr fails on some platforms.
		_ = err
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
