package main

import (
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-nmr/format/simp"
	"github.com/cwbudde/algo-nmr/nmr"
	"github.com/cwbudde/algo-nmr/nmr/isotope"
)

func (a *app) larmorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "larmor [nucleus]...",
		Short: "Print Larmor frequencies in MHz at --field",
		Long: `Print Larmor frequencies in MHz at --field. Without arguments the
configured nucleus is used. The sign follows the gyromagnetic ratio.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			b0, ok, err := a.field()
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("--field is required: %w", nmr.ErrIncompleteParameterSet)
			}
			nuclei := args
			if len(nuclei) == 0 && a.cfg.Nucleus != "" {
				nuclei = []string{a.cfg.Nucleus}
			}
			if len(nuclei) == 0 {
				return fmt.Errorf("no nucleus given: %w", nmr.ErrIncompleteParameterSet)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NUCLEUS\tMHZ")
			for _, n := range nuclei {
				mhz, err := a.conv.LarmorMHz(b0, n)
				if err != nil {
					return err
				}
				entry, err := a.conv.Table().Resolve(n)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\n", entry.Name(), simp.FormatFloat(mhz))
			}
			return tw.Flush()
		},
	}
}

func parseValues(args []string) ([]float64, error) {
	var errs []error
	values := lo.Map(args, func(s string, _ int) float64 {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid number %q", s))
		}
		return v
	})
	return values, errors.Join(errs...)
}

func (a *app) ppmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ppm <hz>...",
		Short: "Convert frequencies in Hz to chemical shifts in ppm",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hz, err := parseValues(args)
			if err != nil {
				return err
			}
			b0, nucleus, err := a.requireUnits()
			if err != nil {
				return err
			}
			ppm, err := a.conv.HzToPpm(hz, b0, nucleus)
			if err != nil {
				return err
			}
			return printColumn(cmd, ppm)
		},
	}
}

func (a *app) hzCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hz <ppm>...",
		Short: "Convert chemical shifts in ppm to frequencies in Hz",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ppm, err := parseValues(args)
			if err != nil {
				return err
			}
			b0, nucleus, err := a.requireUnits()
			if err != nil {
				return err
			}
			hz, err := a.conv.PpmToHz(ppm, b0, nucleus)
			if err != nil {
				return err
			}
			return printColumn(cmd, hz)
		},
	}
}

func printColumn(cmd *cobra.Command, values []float64) error {
	for _, v := range values {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), simp.FormatFloat(v)); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) isotopesCmd() *cobra.Command {
	var quadrupolar bool
	cmd := &cobra.Command{
		Use:   "isotopes [element]...",
		Short: "List isotope constants",
		RunE: func(cmd *cobra.Command, args []string) error {
			table := a.conv.Table()
			elements := table.Elements()
			if len(args) > 0 {
				elements = lo.Uniq(lo.Map(args, func(s string, _ int) string {
					return isotope.CanonicalElement(s)
				}))
			}

			var entries []isotope.Entry
			for _, el := range elements {
				found := table.Isotopes(el)
				if len(found) == 0 {
					return fmt.Errorf("element %q: %w", el, nmr.ErrNucleusNotFound)
				}
				entries = append(entries, found...)
			}
			if quadrupolar {
				entries = lo.Filter(entries, func(e isotope.Entry, _ int) bool {
					return e.Spin.Quadrupolar()
				})
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NUCLEUS\tSPIN\tGAMMA\tQ_FM2\tABUNDANCE")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					e.Name(), e.Spin, simp.FormatFloat(e.Gamma),
					simp.FormatFloat(e.QMoment), simp.FormatFloat(e.NatAbundance))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&quadrupolar, "quadrupolar", false, "Only list nuclei with spin >= 1")
	return cmd
}
