package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-nmr/format/simp"
	"github.com/cwbudde/algo-nmr/internal/library"
)

func (a *app) openLibrary() (*library.Library, error) {
	return library.Open(a.cfg.LibraryDir, library.WithLogger(a.log))
}

func (a *app) libraryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Keep named spectra in the local library",
	}
	cmd.AddCommand(a.libraryAddCmd())
	cmd.AddCommand(a.libraryListCmd())
	cmd.AddCommand(a.libraryGetCmd())
	cmd.AddCommand(a.libraryRmCmd())
	return cmd
}

func (a *app) libraryAddCmd() *cobra.Command {
	var name, from, as string
	cmd := &cobra.Command{
		Use:   "add <file>",
		Short: "Store a file in the library",
		Long: `Store a file in the library. The name defaults to the file name without
extension; --field and --nucleus are stored with it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := a.load(args[0], from)
			if err != nil {
				return err
			}
			f, err := formatFor(args[0], from)
			if err != nil {
				return err
			}
			if as != "" {
				if f, err = simp.ParseFormat(as); err != nil {
					return err
				}
			}
			if name == "" {
				base := filepath.Base(args[0])
				name = strings.TrimSuffix(base, filepath.Ext(base))
			}

			lib, err := a.openLibrary()
			if err != nil {
				return err
			}
			defer lib.Close()
			e, err := lib.Put(cmd.Context(), name, rec, f)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), e.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Entry name")
	cmd.Flags().StringVar(&from, "format", "", "Input format (default: from extension)")
	cmd.Flags().StringVar(&as, "as", "", "Stored format (default: input format)")
	return cmd
}

func (a *app) libraryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List library entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lib, err := a.openLibrary()
			if err != nil {
				return err
			}
			defer lib.Close()
			entries, err := lib.List(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tFORMAT\tN\tSW\tFIELD\tNUCLEUS\tCREATED")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
					e.ID, e.Name, e.Format, e.NP, simp.FormatFloat(e.SW),
					dash(e.Field), dash(e.Nucleus), e.CreatedAt.Format(time.DateTime))
			}
			return tw.Flush()
		},
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func (a *app) libraryGetCmd() *cobra.Command {
	var out, to string
	cmd := &cobra.Command{
		Use:   "get <id|name>",
		Short: "Write a library entry to a file or stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := a.openLibrary()
			if err != nil {
				return err
			}
			defer lib.Close()
			e, err := lib.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			opts, err := a.recordOptions()
			if err != nil {
				return err
			}
			rec, err := e.Record(opts...)
			if err != nil {
				return err
			}

			f := e.Format
			switch {
			case to != "":
				f, err = simp.ParseFormat(to)
			case out != "" && out != "-":
				f, err = formatFor(out, "")
			}
			if err != nil {
				return err
			}
			return a.write(cmd, out, rec, f)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&to, "to", "", "Output format (default: from --out, else stored format)")
	return cmd
}

func (a *app) libraryRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id|name>...",
		Short: "Delete library entries",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := a.openLibrary()
			if err != nil {
				return err
			}
			defer lib.Close()
			for _, key := range args {
				if err := lib.Delete(cmd.Context(), key); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
