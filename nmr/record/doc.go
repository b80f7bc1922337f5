// Package record holds one NMR signal in its time-domain (FID),
// frequency-domain (SPE) and chemical-shift views.
//
// A record is populated once from a single source of truth, either the time
// domain ([Record.FromTime]), the frequency domain ([Record.FromFrequency]) or
// an untransformed capture ([Record.FromRaw]). The other views are derived on
// request by [Record.TimeDomain], [Record.FrequencyDomain] and
// [Record.ChemicalShift] and cached until the source is replaced or
// [Record.Invalidate] drops them. The chemical-shift column exists only when
// both a field and a nucleus are set.
//
// A Record is not safe for concurrent use. Views returned by the accessors
// reference the cache and must not be modified; use [Record.Clone] or copy
// the slices first.
package record
