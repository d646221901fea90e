// Package spectrum provides the CIE 1931 standard observer color-matching
// functions and the wavelength-to-RGB integration the rasterizer uses to
// turn a set of spectral samples into a displayable color.
package spectrum

// Visible-spectrum bounds in nanometres, and the center wavelength used as
// the ghost task's single reference wavelength (geometry only; chromatic
// variation is reintroduced downstream via [Sample]).
const (
	LambdaMin = 390
	LambdaMax = 730
	LambdaMid = (LambdaMin + LambdaMax) / 2
)
