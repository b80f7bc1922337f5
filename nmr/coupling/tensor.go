package coupling

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

var errNotDiagonalizable = errors.New("coupling: tensor eigendecomposition failed")

// Tensor is a rank-2 Cartesian tensor in row-major order.
type Tensor [3][3]float64

// Symmetric returns the symmetric part (T + T^T) / 2.
func (t Tensor) Symmetric() Tensor {
	var s Tensor
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s[i][j] = 0.5 * (t[i][j] + t[j][i])
		}
	}
	return s
}

// Eigenvalues returns the eigenvalues of the symmetric part of t in
// ascending order.
func (t Tensor) Eigenvalues() ([3]float64, error) {
	s := t.Symmetric()
	data := make([]float64, 0, 9)
	for i := 0; i < 3; i++ {
		data = append(data, s[i][:]...)
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(mat.NewSymDense(3, data), false); !ok {
		return [3]float64{}, errNotDiagonalizable
	}
	vals := eig.Values(nil)
	sort.Float64s(vals)

	var out [3]float64
	copy(out[:], vals)
	return out, nil
}

// Shielding holds the principal-axis description of a shielding tensor.
type Shielding struct {
	// Principal values in ascending order.
	Principal [3]float64

	// Haeberlen convention: |s_zz - iso| >= |s_xx - iso| >= |s_yy - iso|.
	Isotropic  float64
	Anisotropy float64
	Asymmetry  float64

	// Herzfeld-Berger convention.
	Span float64
	Skew float64
}

// AnalyzeShielding reduces a shielding tensor to its conventional parameters.
// An isotropic tensor reports zero asymmetry and skew.
func AnalyzeShielding(t Tensor) (Shielding, error) {
	p, err := t.Eigenvalues()
	if err != nil {
		return Shielding{}, err
	}
	iso := (p[0] + p[1] + p[2]) / 3

	// Order by distance from the isotropic value: yy, xx, zz.
	h := p
	sort.SliceStable(h[:], func(i, j int) bool {
		return math.Abs(h[i]-iso) < math.Abs(h[j]-iso)
	})
	yy, xx, zz := h[0], h[1], h[2]

	s := Shielding{
		Principal:  p,
		Isotropic:  iso,
		Anisotropy: zz - (xx+yy)/2,
		Span:       p[2] - p[0],
	}
	if d := zz - iso; d != 0 {
		s.Asymmetry = (yy - xx) / d
	}
	if s.Span != 0 {
		s.Skew = 3 * (p[1] - iso) / s.Span
	}
	return s, nil
}

// Referenced converts an isotropic shielding to a chemical shift with the
// linear calibration shift = sigma*gradient + reference.
func Referenced(sigma, reference, gradient float64) float64 {
	return sigma*gradient + reference
}

// EFG holds the principal components of an electric field gradient tensor.
type EFG struct {
	// Principal values ordered by magnitude: |Vxx| <= |Vyy| <= |Vzz|.
	Vxx, Vyy, Vzz float64
	Eta           float64
}

// AnalyzeEFG reduces a field gradient tensor to Vzz and the asymmetry
// parameter eta = (Vxx - Vyy) / Vzz. A vanishing Vzz reports eta = 0.
func AnalyzeEFG(t Tensor) (EFG, error) {
	p, err := t.Eigenvalues()
	if err != nil {
		return EFG{}, err
	}
	sort.SliceStable(p[:], func(i, j int) bool { return math.Abs(p[i]) < math.Abs(p[j]) })

	e := EFG{Vxx: p[0], Vyy: p[1], Vzz: p[2]}
	if e.Vzz != 0 {
		e.Eta = (e.Vxx - e.Vyy) / e.Vzz
	}
	if math.IsNaN(e.Eta) {
		return EFG{}, fmt.Errorf("coupling: asymmetry undefined for %v", t)
	}
	return e, nil
}
