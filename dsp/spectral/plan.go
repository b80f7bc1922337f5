package spectral

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

var errEmptySignal = errors.New("spectral: signal must not be empty")

// planner runs forward and normalized inverse transforms of one fixed size.
type planner interface {
	Forward(dst, src []complex128) error
	Inverse(dst, src []complex128) error
}

// gonumPlan adapts gonum's unnormalized CmplxFFT to the planner contract.
type gonumPlan struct {
	fft *fourier.CmplxFFT
	n   int
}

func (p *gonumPlan) Forward(dst, src []complex128) error {
	p.fft.Coefficients(dst, src)
	return nil
}

func (p *gonumPlan) Inverse(dst, src []complex128) error {
	p.fft.Sequence(dst, src)
	scale := complex(1/float64(p.n), 0)
	for i := range dst {
		dst[i] *= scale
	}
	return nil
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// newPlanner returns an algo-fft plan when the size allows it and a gonum
// plan otherwise.
func newPlanner(n int) (planner, error) {
	if n <= 0 {
		return nil, fmt.Errorf("spectral: invalid transform size %d", n)
	}
	if isPowerOfTwo(n) && n >= 2 {
		plan, err := algofft.NewPlan64(n)
		if err == nil {
			return plan, nil
		}
	}
	return &gonumPlan{fft: fourier.NewCmplxFFT(n), n: n}, nil
}
