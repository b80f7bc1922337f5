package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-nmr/format/simp"
	"github.com/cwbudde/algo-nmr/nmr"
	"github.com/cwbudde/algo-nmr/nmr/combine"
	"github.com/cwbudde/algo-nmr/nmr/record"
)

func (a *app) infoCmd() *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "info <file>...",
		Short: "Print size, sweep width and peak of SIMP files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "FILE\tSOURCE\tN\tSW\tPEAK_HZ\tPEAK_PPM")
			for _, path := range args {
				rec, err := a.load(path, from)
				if err != nil {
					return err
				}
				row, err := infoRow(rec)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				fmt.Fprintf(tw, "%s\t%s\n", path, row)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&from, "format", "", "Input format (default: from extension)")
	return cmd
}

func infoRow(rec *record.Record) (string, error) {
	fd, err := rec.FrequencyDomain()
	if errors.Is(err, nmr.ErrNoSourceData) {
		return fmt.Sprintf("%v\t%d\t-\t-\t-", rec.Source(), rec.Len()), nil
	}
	if err != nil {
		return "", err
	}
	p := fd.Peak()
	ppm := "-"
	if p.HasPpm {
		ppm = simp.FormatFloat(p.Ppm)
	}
	return fmt.Sprintf("%v\t%d\t%s\t%s\t%s", rec.Source(), fd.N, simp.FormatFloat(fd.SW), simp.FormatFloat(p.Hz), ppm), nil
}

type processFlags struct {
	lb       float64
	gauss    float64
	zeroFill int
}

func (p *processFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&p.lb, "lb", 0, "Line broadening in Hz applied to the FID")
	cmd.Flags().Float64Var(&p.gauss, "gauss", 0, "Gaussian fraction of the line broadening (0..1)")
	cmd.Flags().IntVar(&p.zeroFill, "zerofill", 0, "Zero-fill the FID to this many points")
}

func (p *processFlags) apply(rec *record.Record) error {
	if p.zeroFill > 0 {
		if err := rec.ZeroFill(p.zeroFill); err != nil {
			return err
		}
	}
	if p.lb != 0 {
		if err := rec.LineBroaden(p.lb, p.gauss); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) convertCmd() *cobra.Command {
	var (
		from, to string
		proc     processFlags
	)
	cmd := &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Convert between FID, SPE and XREIM files",
		Long: `Convert between FID, SPE and XREIM files. Formats default to the file
extensions; "-" as output writes to stdout.

Examples:
  simpyson convert out.fid out.spe
  simpyson convert --lb 20 --zerofill 4096 out.fid broadened.spe
  simpyson convert --to csv out.spe -`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := a.load(args[0], from)
			if err != nil {
				return err
			}
			if err := proc.apply(rec); err != nil {
				return err
			}
			f, err := formatFor(args[1], to)
			if err != nil {
				return err
			}
			return a.write(cmd, args[1], rec, f)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Input format (default: from extension)")
	cmd.Flags().StringVar(&to, "to", "", "Output format (default: from extension)")
	proc.register(cmd)
	return cmd
}

func (a *app) exportCSVCmd() *cobra.Command {
	var (
		from     string
		spectrum bool
	)
	cmd := &cobra.Command{
		Use:   "export-csv <in> [out]",
		Short: "Export the real part against ppm, Hz or time",
		Long: `Export the real part of a record as a two-column CSV. The axis is ppm
when field and nucleus are known, Hz for spectra and time for FIDs.
--spectrum transforms an FID first.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := a.load(args[0], from)
			if err != nil {
				return err
			}
			if spectrum {
				if _, err := rec.FrequencyDomain(); err != nil {
					return err
				}
			}
			out := ""
			if len(args) == 2 {
				out = args[1]
			}
			return a.write(cmd, out, rec, simp.CSV)
		},
	}
	cmd.Flags().StringVar(&from, "format", "", "Input format (default: from extension)")
	cmd.Flags().BoolVar(&spectrum, "spectrum", false, "Export the spectrum of an FID")
	return cmd
}

func (a *app) combineCmd() *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "combine <out> <in>...",
		Short: "Sum the spectra of several files",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			recs := make([]*record.Record, 0, len(args)-1)
			for _, path := range args[1:] {
				rec, err := a.load(path, from)
				if err != nil {
					return err
				}
				recs = append(recs, rec)
			}
			opts, err := a.recordOptions()
			if err != nil {
				return err
			}
			sum, err := combine.Combine(recs, combine.WithRecordOptions(opts...))
			if err != nil {
				return err
			}
			f := simp.SPE
			if to != "" || args[0] != "-" {
				if f, err = formatFor(args[0], to); err != nil {
					return err
				}
			}
			a.log.WithField("records", len(recs)).Info("combined")
			return a.write(cmd, args[0], sum, f)
		},
	}
	cmd.Flags().StringVar(&from, "format", "", "Input format (default: from extension)")
	cmd.Flags().StringVar(&to, "to", "", "Output format (default: from extension, spe for stdout)")
	return cmd
}
