// Command simpyson inspects, converts and combines SIMPSON simulation output
// and builds SIMPSON input files.
//
// Usage:
//
//	simpyson [--field 9.4T] [--nucleus 13C] <command> [args]
//
// Examples:
//
//	simpyson info out.fid
//	simpyson --field 400MHz --nucleus 13C convert out.fid out.spe
//	simpyson --field 9.4T --nucleus 13C export-csv out.spe out.csv
//	simpyson combine sum.spe a.spe b.spe
//	simpyson --field 9.4T larmor 1H 13C 15N
//	simpyson build params.json -o run.in
//	simpyson library add out.fid --name glycine
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-nmr/format/simp"
	"github.com/cwbudde/algo-nmr/internal/config"
	"github.com/cwbudde/algo-nmr/internal/logging"
	"github.com/cwbudde/algo-nmr/nmr"
	"github.com/cwbudde/algo-nmr/nmr/field"
	"github.com/cwbudde/algo-nmr/nmr/isotope"
	"github.com/cwbudde/algo-nmr/nmr/record"
	"github.com/cwbudde/algo-nmr/nmr/shift"
)

// Exit statuses.
const (
	exitOK       = 0
	exitInternal = 1
	exitKnown    = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, os.LookupEnv))
}

// run executes the command line and returns the exit status. Errors of a
// known kind are printed with their code and exit with status 2.
func run(args []string, stdout, stderr io.Writer, lookupEnv func(string) (string, bool)) int {
	a := &app{lookupEnv: lookupEnv}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if cerr := a.close(); err == nil {
		err = cerr
	}
	if err == nil {
		return exitOK
	}

	code := nmr.Code(err)
	fmt.Fprintf(stderr, "Error: [%s] %v\n", code, err)
	if code == nmr.CodeInternal {
		return exitInternal
	}
	return exitKnown
}

type app struct {
	lookupEnv func(string) (string, bool)

	configPath string
	flags      config.Config

	cfg    *config.Config
	log    *logrus.Logger
	closer io.Closer
	conv   *shift.Converter
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "simpyson",
		Short:         "Work with SIMPSON NMR simulation files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Config file (default: ~/.simpyson/config.json)")
	pf.StringVar(&a.flags.Field, "field", "", "Magnetic field, e.g. 9.4T or 400MHz")
	pf.StringVar(&a.flags.Nucleus, "nucleus", "", "Observed nucleus, e.g. 13C")
	pf.StringVar(&a.flags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&a.flags.LogFormat, "log-format", "", "Log format (text or json)")
	pf.StringVar(&a.flags.LibraryDir, "library-dir", "", "Spectrum library directory")
	pf.StringVar(&a.flags.IsotopeFile, "isotopes", "", "Isotope table JSON replacing the bundled one")

	cmd.AddCommand(a.infoCmd())
	cmd.AddCommand(a.convertCmd())
	cmd.AddCommand(a.exportCSVCmd())
	cmd.AddCommand(a.combineCmd())
	cmd.AddCommand(a.larmorCmd())
	cmd.AddCommand(a.ppmCmd())
	cmd.AddCommand(a.hzCmd())
	cmd.AddCommand(a.isotopesCmd())
	cmd.AddCommand(a.buildCmd())
	cmd.AddCommand(a.libraryCmd())

	return cmd
}

// setup resolves the configuration (file, then environment, then flags) and
// builds the logger and shift converter.
func (a *app) setup(cmd *cobra.Command) error {
	path := a.configPath
	if path == "" {
		path = filepath.Join(config.DefaultDir(), "config.json")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg = config.Merge(config.ApplyEnv(cfg, a.lookupEnv), &a.flags)
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	log, closer, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	a.log, a.closer = log, closer

	if cfg.IsotopeFile == "" {
		a.conv, err = shift.DefaultConverter()
		return err
	}
	f, err := os.Open(cfg.IsotopeFile)
	if err != nil {
		return fmt.Errorf("isotopes: %w", err)
	}
	defer f.Close()
	table, err := isotope.Load(f)
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.IsotopeFile, err)
	}
	a.conv = shift.NewConverter(table)
	a.log.WithField("file", cfg.IsotopeFile).Debug("isotope table loaded")
	return nil
}

func (a *app) close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// field returns the configured field, if any.
func (a *app) field() (field.Spec, bool, error) {
	if a.cfg.Field == "" {
		return field.Spec{}, false, nil
	}
	b0, err := field.Parse(a.cfg.Field)
	if err != nil {
		return field.Spec{}, false, err
	}
	return b0, true, nil
}

// requireUnits returns the field and nucleus for unit conversions, failing
// when either is missing.
func (a *app) requireUnits() (field.Spec, string, error) {
	b0, ok, err := a.field()
	if err != nil {
		return field.Spec{}, "", err
	}
	var errs []error
	if !ok {
		errs = append(errs, fmt.Errorf("--field is required: %w", nmr.ErrIncompleteParameterSet))
	}
	if a.cfg.Nucleus == "" {
		errs = append(errs, fmt.Errorf("--nucleus is required: %w", nmr.ErrIncompleteParameterSet))
	}
	return b0, a.cfg.Nucleus, errors.Join(errs...)
}

// recordOptions returns the options every loaded record is built with.
func (a *app) recordOptions() ([]record.Option, error) {
	opts := []record.Option{record.WithConverter(a.conv), record.WithLogger(a.log)}
	b0, ok, err := a.field()
	if err != nil {
		return nil, err
	}
	if ok {
		opts = append(opts, record.WithField(b0))
	}
	if a.cfg.Nucleus != "" {
		opts = append(opts, record.WithNucleus(a.cfg.Nucleus))
	}
	return opts, nil
}

// formatFor returns the format named by tag, or by the extension of path
// when tag is empty.
func formatFor(path, tag string) (simp.Format, error) {
	if tag == "" {
		tag = strings.TrimPrefix(filepath.Ext(path), ".")
	}
	return simp.ParseFormat(tag)
}

// load reads the record at path.
func (a *app) load(path, tag string) (*record.Record, error) {
	f, err := formatFor(path, tag)
	if err != nil {
		return nil, err
	}
	opts, err := a.recordOptions()
	if err != nil {
		return nil, err
	}
	rec, err := simp.Load(path, f, opts...)
	if err != nil {
		return nil, err
	}
	a.log.WithFields(logrus.Fields{"file": path, "format": f, "n": rec.Len()}).Info("loaded")
	return rec, nil
}

// output returns the writer for path, where "" or "-" means stdout.
func output(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

// write renders rec in format f to path or stdout.
func (a *app) write(cmd *cobra.Command, path string, rec *record.Record, f simp.Format) (err error) {
	w, done, err := output(cmd, path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, done())
	}()
	if err := simp.Write(w, rec, f); err != nil {
		return err
	}
	if path != "" && path != "-" {
		a.log.WithFields(logrus.Fields{"file": path, "format": f}).Info("written")
	}
	return nil
}
