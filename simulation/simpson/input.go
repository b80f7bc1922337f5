package simpson

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/samber/lo"

	"github.com/cwbudde/algo-nmr/format/simp"
	"github.com/cwbudde/algo-nmr/nmr"
)

// Named pulse sequence templates.
const (
	NoPulse = "no_pulse"
	Pulse90 = "pulse_90"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(
	template.New("simpson").Funcs(funcMap()).ParseFS(templateFS, "templates/*.tmpl"),
)

func funcMap() template.FuncMap {
	m := sprig.TxtFuncMap()
	m["num"] = simp.FormatFloat
	return m
}

// channels lists the pulse channels in par block order.
var channels = []string{"H", "X", "Y"}

// Pulse holds the optional parameters of one channel. A pulse length needs
// a power level and a phase.
type Pulse struct {
	Length *float64 // microseconds
	Power  *float64 // Hz
	Phase  *float64 // degrees
}

// Value returns a pointer to v for the optional [Pulse] fields.
func Value(v float64) *float64 {
	return &v
}

// Input describes one simulation run.
type Input struct {
	// SpinSystem is the spinsys block; see [SpinSystem.Render].
	SpinSystem string

	OutName   string
	OutFormat simp.Format

	SpinRate        float64 // Hz
	NP              int
	ProtonFrequency float64 // Hz
	StartOperator   string
	DetectOperator  string
	Method          string // "direct" when empty
	CrystalFile     string
	GammaAngles     int
	SW              float64 // Hz
	Verbose         int
	TSW             string // "1e6/<SW>" when empty

	LineBroadening float64 // Hz
	GaussFraction  float64
	ZeroFill       int

	// PulseSequence is a template name or a verbatim pulseq procedure.
	// Empty selects NoPulse.
	PulseSequence string

	// Pulses maps the channels "H", "X" and "Y" to their parameters.
	Pulses map[string]Pulse
}

type renderedPulse struct {
	Channel              string
	Length, Power, Phase float64
}

type view struct {
	Input
	Format        string
	TSW           string
	Method        string
	PulseSequence string
	Pulses        []renderedPulse
}

// Render returns the control script.
func (in *Input) Render() (string, error) {
	var buf bytes.Buffer
	if err := in.Write(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Write writes the control script to w.
func (in *Input) Write(w io.Writer) error {
	v, err := in.view()
	if err != nil {
		return err
	}
	if err := templates.ExecuteTemplate(w, "input.tmpl", v); err != nil {
		return fmt.Errorf("simpson: render: %w", err)
	}
	return nil
}

// Save writes the control script to path.
func (in *Input) Save(path string) error {
	script, err := in.Render()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		return fmt.Errorf("simpson: %w", err)
	}
	return nil
}

func (in *Input) view() (*view, error) {
	switch in.OutFormat {
	case simp.FID, simp.SPE, simp.XREIM:
	default:
		return nil, fmt.Errorf("simpson: output format %v: %w", in.OutFormat, nmr.ErrUnsupportedFormat)
	}
	if strings.TrimSpace(in.SpinSystem) == "" {
		return nil, fmt.Errorf("simpson: spin system is empty")
	}
	if in.OutName == "" {
		return nil, fmt.Errorf("simpson: output name is empty")
	}

	unknown := lo.Filter(lo.Keys(in.Pulses), func(ch string, _ int) bool {
		return !lo.Contains(channels, ch)
	})
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("simpson: unknown pulse channels %v", unknown)
	}

	v := &view{
		Input:  *in,
		Format: in.OutFormat.String(),
		TSW:    in.TSW,
		Method: in.Method,
	}
	if v.TSW == "" {
		v.TSW = "1e6/" + simp.FormatFloat(in.SW)
	}
	if v.Method == "" {
		v.Method = "direct"
	}

	for _, ch := range channels {
		p, ok := in.Pulses[ch]
		if !ok || p.Length == nil {
			continue
		}
		if p.Power == nil || p.Phase == nil {
			return nil, fmt.Errorf("simpson: pl%s and ph%s must be set with p%s: %w", ch, ch, ch, nmr.ErrIncompleteParameterSet)
		}
		v.Pulses = append(v.Pulses, renderedPulse{Channel: ch, Length: *p.Length, Power: *p.Power, Phase: *p.Phase})
	}

	seq, err := in.pulseSequence(v.Pulses)
	if err != nil {
		return nil, err
	}
	v.PulseSequence = seq
	return v, nil
}

func (in *Input) pulseSequence(pulses []renderedPulse) (string, error) {
	name := in.PulseSequence
	if name == "" {
		name = NoPulse
	}
	switch name {
	case NoPulse:
	case Pulse90:
		set := lo.Map(pulses, func(p renderedPulse, _ int) string { return p.Channel })
		if !lo.Contains(set, "H") {
			return "", fmt.Errorf("simpson: %s needs pH, plH and phH: %w", Pulse90, nmr.ErrIncompleteParameterSet)
		}
	default:
		return in.PulseSequence, nil
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name+".tmpl", nil); err != nil {
		return "", fmt.Errorf("simpson: render %s: %w", name, err)
	}
	return buf.String(), nil
}

// Templates returns the names of the built-in pulse sequences.
func Templates() []string {
	return []string{NoPulse, Pulse90}
}
