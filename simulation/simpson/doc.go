// Package simpson renders control scripts for the SIMPSON simulation engine.
//
// A script has four parts: the spin system block, the par block with the
// acquisition parameters, the pulse sequence procedure and the main
// procedure that post-processes and saves the result as a FID, a spectrum
// or an XREIM capture. The pulse sequence is either one of the named
// templates ([NoPulse], [Pulse90]) or supplied verbatim.
package simpson
