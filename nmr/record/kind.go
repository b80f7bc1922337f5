package record

import "fmt"

// Kind names a representation of a record.
type Kind int

const (
	// KindNone marks an empty record.
	KindNone Kind = iota
	// KindTime is the time-domain FID.
	KindTime
	// KindFrequency is the frequency-domain spectrum with its Hz axis.
	KindFrequency
	// KindShift is the chemical-shift (ppm) column of the spectrum.
	KindShift
	// KindRaw is an untransformed time/real/imaginary capture.
	KindRaw
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindTime:
		return "time"
	case KindFrequency:
		return "frequency"
	case KindShift:
		return "shift"
	case KindRaw:
		return "raw"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}
