// Package simp reads and writes the SIMPSON text interchange formats.
//
// A SIMP file has the layout
//
//	SIMP
//	NP=<count>
//	SW=<width in Hz>
//	TYPE=<FID|SPE>
//	DATA
//	<real> <imag>
//	...
//	END
//
// Header lines may come in any order before DATA and unrecognized header
// lines are skipped. TYPE is informational; the caller decides whether the
// samples are a FID or a spectrum. An XREIM file has no header and holds one
// "<time> <real> <imag>" triple per line until EOF.
//
// CSV export writes a two-column table headed "<label>,Real", where the label
// is ppm, Hz or Time depending on which view of the record is present.
package simp
