package simp

import (
	"bufio"
	"fmt"
	"io"
)

// Encode writes d in the SIMP layout with "\n" line endings.
func Encode(w io.Writer, d *Data) error {
	if len(d.Real) != len(d.Imag) {
		return fmt.Errorf("simp: real/imaginary length mismatch: %d != %d", len(d.Real), len(d.Imag))
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "SIMP\nNP=%d\nSW=%s\n", len(d.Real), FormatFloat(d.SW))
	if d.Type != "" {
		fmt.Fprintf(bw, "TYPE=%s\n", d.Type)
	}
	bw.WriteString("DATA\n")
	for i := range d.Real {
		bw.WriteString(FormatFloat(d.Real[i]))
		bw.WriteByte(' ')
		bw.WriteString(FormatFloat(d.Imag[i]))
		bw.WriteByte('\n')
	}
	bw.WriteString("END\n")
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("simp: write: %w", err)
	}
	return nil
}

// EncodeXREIM writes d as time/real/imaginary triples.
func EncodeXREIM(w io.Writer, d *XREIMData) error {
	if len(d.Time) != len(d.Real) || len(d.Real) != len(d.Imag) {
		return fmt.Errorf("simp: xreim column length mismatch: %d/%d/%d", len(d.Time), len(d.Real), len(d.Imag))
	}
	bw := bufio.NewWriter(w)
	for i := range d.Time {
		bw.WriteString(FormatFloat(d.Time[i]))
		bw.WriteByte(' ')
		bw.WriteString(FormatFloat(d.Real[i]))
		bw.WriteByte(' ')
		bw.WriteString(FormatFloat(d.Imag[i]))
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("simp: write: %w", err)
	}
	return nil
}
