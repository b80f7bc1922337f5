package record

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-nmr/dsp/spectral"
)

// LineBroaden apodizes the FID with a line-broadening window of lbHz,
// blending exponential and Gaussian decay by gaussFraction. The result
// becomes the new time-domain source.
func (r *Record) LineBroaden(lbHz, gaussFraction float64) error {
	td, err := r.TimeDomain()
	if err != nil {
		return err
	}
	window, err := spectral.BroadeningWindow(td.N, td.SW, lbHz, gaussFraction)
	if err != nil {
		return fmt.Errorf("record: line broadening: %w", err)
	}
	re := cloneFloats(td.Real)
	im := cloneFloats(td.Imag)
	if err := spectral.Apodize(re, im, window); err != nil {
		return fmt.Errorf("record: line broadening: %w", err)
	}
	r.replaceTime(re, im, td.SW)
	r.log.WithFields(logrus.Fields{"lb": lbHz, "gauss": gaussFraction}).Debug("record line broadened")
	return nil
}

// ZeroFill extends the FID with zeros to n samples. The result becomes the
// new time-domain source; records already n samples or longer are left as
// they are.
func (r *Record) ZeroFill(n int) error {
	td, err := r.TimeDomain()
	if err != nil {
		return err
	}
	if n <= td.N {
		return nil
	}
	re, im := spectral.ZeroFill(td.Real, td.Imag, n)
	r.replaceTime(re, im, td.SW)
	r.log.WithFields(logrus.Fields{"from": td.N, "to": n}).Debug("record zero filled")
	return nil
}

// replaceTime installs a new time-domain source; inputs are owned.
func (r *Record) replaceTime(re, im []float64, sw float64) {
	r.reset()
	r.source = KindTime
	r.time = &TimeDomain{
		Real: re,
		Imag: im,
		Time: spectral.TimeAxis(len(re), sw),
		N:    len(re),
		SW:   sw,
	}
}
