package nmr

import "errors"

// Error kinds. Detection sites wrap these with context; they are never retried.
var (
	ErrInvalidFieldUnit       = errors.New("invalid field unit")
	ErrInvalidFieldMagnitude  = errors.New("invalid field magnitude")
	ErrNucleusNotFound        = errors.New("nucleus not found")
	ErrNoSourceData           = errors.New("no source data")
	ErrIncompatibleSpectra    = errors.New("incompatible spectra")
	ErrUnsupportedFormat      = errors.New("unsupported format")
	ErrIncompleteParameterSet = errors.New("incomplete parameter set")
	ErrMalformedFile          = errors.New("malformed file")
)

// ErrorCode is a stable, machine-readable name for an error kind.
type ErrorCode string

const (
	CodeInvalidFieldUnit       ErrorCode = "INVALID_FIELD_UNIT"
	CodeInvalidFieldMagnitude  ErrorCode = "INVALID_FIELD_MAGNITUDE"
	CodeNucleusNotFound        ErrorCode = "NUCLEUS_NOT_FOUND"
	CodeNoSourceData           ErrorCode = "NO_SOURCE_DATA"
	CodeIncompatibleSpectra    ErrorCode = "INCOMPATIBLE_SPECTRA"
	CodeUnsupportedFormat      ErrorCode = "UNSUPPORTED_FORMAT"
	CodeIncompleteParameterSet ErrorCode = "INCOMPLETE_PARAMETER_SET"
	CodeMalformedFile          ErrorCode = "MALFORMED_FILE"
	CodeInternal               ErrorCode = "INTERNAL"
)

var codes = []struct {
	err  error
	code ErrorCode
}{
	{ErrInvalidFieldUnit, CodeInvalidFieldUnit},
	{ErrInvalidFieldMagnitude, CodeInvalidFieldMagnitude},
	{ErrNucleusNotFound, CodeNucleusNotFound},
	{ErrNoSourceData, CodeNoSourceData},
	{ErrIncompatibleSpectra, CodeIncompatibleSpectra},
	{ErrUnsupportedFormat, CodeUnsupportedFormat},
	{ErrIncompleteParameterSet, CodeIncompleteParameterSet},
	{ErrMalformedFile, CodeMalformedFile},
}

// Code returns the code of the first error kind found in err's chain.
// It returns "" for a nil error and [CodeInternal] for errors of no known kind.
func Code(err error) ErrorCode {
	if err == nil {
		return ""
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return CodeInternal
}
