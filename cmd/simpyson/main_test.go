package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-nmr/format/simp"
	"github.com/cwbudde/algo-nmr/internal/testutil"
	"github.com/cwbudde/algo-nmr/nmr/record"
)

type cli struct {
	t   *testing.T
	dir string
	env map[string]string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	return &cli{t: t, dir: t.TempDir(), env: map[string]string{}}
}

func (c *cli) run(args ...string) (stdout, stderr string, code int) {
	c.t.Helper()
	var out, errOut bytes.Buffer
	base := []string{
		"--config", filepath.Join(c.dir, "config.json"),
		"--library-dir", filepath.Join(c.dir, "library"),
		"--log-level", "error",
	}
	lookup := func(key string) (string, bool) {
		v, ok := c.env[key]
		return v, ok
	}
	code = run(append(base, args...), &out, &errOut, lookup)
	return out.String(), errOut.String(), code
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, errOut, code := c.run(args...)
	require.Equal(c.t, exitOK, code, "stderr: %s", errOut)
	return out
}

func (c *cli) path(name string) string {
	return filepath.Join(c.dir, name)
}

// writeFID saves a 64-point decaying cosine at 150 Hz with SW 2500 Hz.
func (c *cli) writeFID(name string) string {
	c.t.Helper()
	re, im := testutil.DecayingCosine(150, 2500, 0.02, 64)
	rec := record.New()
	require.NoError(c.t, rec.FromTime(re, im, 2500))
	path := c.path(name)
	require.NoError(c.t, simp.Save(path, rec, simp.FID))
	return path
}

func TestConvert_FIDToSPE(t *testing.T) {
	c := newCLI(t)
	in := c.writeFID("decay.fid")
	out := c.path("decay.spe")

	c.mustRun("convert", in, out)

	want, err := simp.Load(in, simp.FID)
	require.NoError(t, err)
	wantFD, err := want.FrequencyDomain()
	require.NoError(t, err)

	got, err := simp.Load(out, simp.SPE)
	require.NoError(t, err)
	gotFD, err := got.FrequencyDomain()
	require.NoError(t, err)
	require.Equal(t, wantFD.N, gotFD.N)
	require.InDeltaSlice(t, wantFD.Real, gotFD.Real, 1e-12)
	require.InDeltaSlice(t, wantFD.Imag, gotFD.Imag, 1e-12)
}

func TestConvert_ZeroFillToStdout(t *testing.T) {
	c := newCLI(t)
	in := c.writeFID("decay.fid")

	out := c.mustRun("convert", "--zerofill", "128", "--lb", "10", "--to", "fid", in, "-")
	d, err := simp.Decode(strings.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, 128, d.NP)
	require.Equal(t, 2500.0, d.SW)
	require.Zero(t, d.Real[127])
}

func TestConvert_UnknownExtension(t *testing.T) {
	c := newCLI(t)
	in := c.writeFID("decay.fid")

	_, errOut, code := c.run("convert", in, c.path("decay.wav"))
	require.Equal(t, exitKnown, code)
	require.Contains(t, errOut, "UNSUPPORTED_FORMAT")
}

func TestInfo(t *testing.T) {
	c := newCLI(t)
	in := c.writeFID("decay.fid")

	out := c.mustRun("--field", "400MHz", "--nucleus", "1H", "info", in)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, []string{"FILE", "SOURCE", "N", "SW", "PEAK_HZ", "PEAK_PPM"}, strings.Fields(lines[0]))

	fields := strings.Fields(lines[1])
	require.Equal(t, in, fields[0])
	require.Equal(t, "time", fields[1])
	require.Equal(t, "64", fields[2])
	require.Equal(t, "2500.0", fields[3])
	require.NotEqual(t, "-", fields[5])
}

func TestInfo_RawCapture(t *testing.T) {
	c := newCLI(t)
	path := c.path("capture.xreim")
	require.NoError(t, os.WriteFile(path, []byte("0 1 0\n1 2 0\n"), 0o644))

	out := c.mustRun("info", path)
	fields := strings.Fields(strings.Split(strings.TrimSpace(out), "\n")[1])
	require.Equal(t, []string{path, "raw", "2", "-", "-", "-"}, fields)
}

func TestExportCSV(t *testing.T) {
	c := newCLI(t)
	in := c.writeFID("decay.fid")

	out := c.mustRun("export-csv", in)
	require.True(t, strings.HasPrefix(out, "Time,Real\n"), out)

	out = c.mustRun("--field", "9.4T", "--nucleus", "13C", "export-csv", "--spectrum", in)
	require.True(t, strings.HasPrefix(out, "ppm,Real\n"), out)
	require.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 65)

	csvPath := c.path("decay.csv")
	c.mustRun("export-csv", "--spectrum", in, csvPath)
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "Hz,Real\n"))
}

func TestCombine(t *testing.T) {
	c := newCLI(t)
	a := c.writeFID("a.fid")
	b := c.writeFID("b.fid")
	sum := c.path("sum.spe")

	c.mustRun("combine", sum, a, b)

	one, err := simp.Load(a, simp.FID)
	require.NoError(t, err)
	oneFD, err := one.FrequencyDomain()
	require.NoError(t, err)
	got, err := simp.Load(sum, simp.SPE)
	require.NoError(t, err)
	gotFD, err := got.FrequencyDomain()
	require.NoError(t, err)
	for i := range gotFD.Real {
		require.InDelta(t, 2*oneFD.Real[i], gotFD.Real[i], 1e-9)
	}
}

func TestCombine_Incompatible(t *testing.T) {
	c := newCLI(t)
	a := c.writeFID("a.fid")
	short := c.path("short.spe")
	require.NoError(t, os.WriteFile(short, []byte("SIMP\nNP=2\nSW=2500\nTYPE=SPE\nDATA\n1 0\n2 0\nEND\n"), 0o644))

	_, errOut, code := c.run("combine", c.path("sum.spe"), a, short)
	require.Equal(t, exitKnown, code)
	require.Contains(t, errOut, "INCOMPATIBLE_SPECTRA")
}

func TestLarmor(t *testing.T) {
	c := newCLI(t)
	out := c.mustRun("--field", "400MHz", "larmor", "1h")
	require.Equal(t, []string{"NUCLEUS", "MHZ", "1H", "400.0"}, strings.Fields(out))
}

func TestLarmor_NucleusFromEnv(t *testing.T) {
	c := newCLI(t)
	c.env["SIMPYSON_FIELD"] = "400MHz"
	c.env["SIMPYSON_NUCLEUS"] = "1H"
	out := c.mustRun("larmor")
	require.Contains(t, out, "400.0")
}

func TestLarmor_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code string
	}{
		{"no field", []string{"larmor", "1H"}, "INCOMPLETE_PARAMETER_SET"},
		{"bad unit", []string{"--field", "9.4X", "larmor", "1H"}, "INVALID_FIELD_UNIT"},
		{"bad magnitude", []string{"--field", "T", "larmor", "1H"}, "INVALID_FIELD_MAGNITUDE"},
		{"unknown nucleus", []string{"--field", "9.4T", "larmor", "999C"}, "NUCLEUS_NOT_FOUND"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newCLI(t)
			_, errOut, code := c.run(tc.args...)
			require.Equal(t, exitKnown, code)
			require.Contains(t, errOut, tc.code)
		})
	}
}

func TestPpmHz(t *testing.T) {
	c := newCLI(t)
	out := c.mustRun("--field", "400MHz", "--nucleus", "1H", "ppm", "--", "400", "-800")
	require.Equal(t, "1.0\n-2.0\n", out)

	out = c.mustRun("--field", "400MHz", "--nucleus", "1H", "hz", "2.5")
	require.Equal(t, "1000.0\n", out)
}

func TestPpm_Errors(t *testing.T) {
	c := newCLI(t)
	_, errOut, code := c.run("ppm", "400")
	require.Equal(t, exitKnown, code)
	require.Contains(t, errOut, "INCOMPLETE_PARAMETER_SET")

	_, _, code = c.run("--field", "400MHz", "--nucleus", "1H", "ppm", "abc")
	require.Equal(t, exitInternal, code)
}

func TestIsotopes(t *testing.T) {
	c := newCLI(t)
	out := c.mustRun("isotopes", "h")
	require.Contains(t, out, "1H")
	require.Contains(t, out, "2H")

	out = c.mustRun("isotopes", "--quadrupolar", "H")
	require.NotContains(t, out, "1H ")
	require.Contains(t, out, "2H")

	_, errOut, code := c.run("isotopes", "Xx")
	require.Equal(t, exitKnown, code)
	require.Contains(t, errOut, "NUCLEUS_NOT_FOUND")
}

func TestBuild(t *testing.T) {
	c := newCLI(t)
	params := c.path("params.json")
	require.NoError(t, os.WriteFile(params, []byte(`{
  "OutName": "glycine", "Format": "spe",
  "NP": 1024, "SW": 50000, "ProtonFrequency": 400e6,
  "StartOperator": "Inz", "DetectOperator": "Inp",
  "CrystalFile": "rep100", "GammaAngles": 1,
  "PulseSequence": "pulse_90",
  "Pulses": {"H": {"Length": 2.5, "Power": 100000, "Phase": 0}},
  "System": {"Nuclei": ["1H", "13C"], "Shifts": [{"Spin": 2, "Iso": 40, "Aniso": 20}]},
  "Distances": [{"I": 1, "J": 2, "R": 1.09}]
}`), 0o644))

	out := c.mustRun("build", params)
	require.Contains(t, out, "channels 1H 13C")
	require.Contains(t, out, "shift 2 40.0p 20.0p 0.0 0.0 0.0 0.0")
	require.Contains(t, out, "dipole 1 2 -23328.")
	require.Contains(t, out, "pulse $par(pH) $par(plH) $par(phH)")
	require.Contains(t, out, "fsave $f glycine.spe")

	script := c.path("run.in")
	c.mustRun("build", params, "-o", script)
	data, err := os.ReadFile(script)
	require.NoError(t, err)
	require.Equal(t, out, string(data))
}

func TestBuild_IncompletePulse(t *testing.T) {
	c := newCLI(t)
	params := c.path("params.json")
	require.NoError(t, os.WriteFile(params, []byte(`{
  "OutName": "x", "SpinSystem": "spinsys {\n}\n",
  "Pulses": {"H": {"Length": 2.5}}
}`), 0o644))

	_, errOut, code := c.run("build", params)
	require.Equal(t, exitKnown, code)
	require.Contains(t, errOut, "INCOMPLETE_PARAMETER_SET")
}

func TestLibrary(t *testing.T) {
	c := newCLI(t)
	in := c.writeFID("decay.fid")

	id := strings.TrimSpace(c.mustRun("--field", "9.4T", "--nucleus", "13C", "library", "add", in))
	require.Len(t, id, 26)

	out := c.mustRun("library", "list")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	fields := strings.Fields(lines[1])
	require.Equal(t, []string{id, "decay", "fid", "64", "2500.0", "9.4T", "13C"}, fields[:7])

	_, errOut, code := c.run("library", "add", in)
	require.Equal(t, exitInternal, code)
	require.Contains(t, errOut, "already in use")

	fid := c.mustRun("library", "get", "decay")
	orig, err := os.ReadFile(in)
	require.NoError(t, err)
	require.Equal(t, string(orig), fid)

	csv := c.mustRun("library", "get", "--to", "csv", id)
	require.True(t, strings.HasPrefix(csv, "Time,Real\n"))

	spe := c.path("decay.spe")
	c.mustRun("library", "get", "decay", "-o", spe)
	_, err = simp.Load(spe, simp.SPE)
	require.NoError(t, err)

	c.mustRun("library", "rm", id)
	out = c.mustRun("library", "list")
	require.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 1)

	_, errOut, code = c.run("library", "get", "decay")
	require.Equal(t, exitInternal, code)
	require.Contains(t, errOut, "not found")
}

func TestConfigFile(t *testing.T) {
	c := newCLI(t)
	require.NoError(t, os.WriteFile(c.path("config.json"), []byte(`{"field": "400MHz", "nucleus": "1H"}`), 0o644))

	out := c.mustRun("ppm", "400")
	require.Equal(t, "1.0\n", out)

	require.NoError(t, os.WriteFile(c.path("config.json"), []byte(`{"log_format": "xml"}`), 0o644))
	_, _, code := c.run("ppm", "400")
	require.Equal(t, exitInternal, code)
}

func TestIsotopeFile(t *testing.T) {
	c := newCLI(t)
	table := c.path("isotopes.json")
	require.NoError(t, os.WriteFile(table, []byte(`{
  "H": {"1": {"Gamma": 20, "QMoment": 0, "Spin": "1/2", "NatAbundance": 100}},
  "X": {"7": {"Gamma": 10, "QMoment": 0, "Spin": "1/2", "NatAbundance": 100}}
}`), 0o644))

	out := c.mustRun("--isotopes", table, "--field", "400MHz", "larmor", "7X")
	require.Contains(t, out, "200.0")
}
