// Package lens loads lens prescriptions and glass libraries, resolves
// dispersive refractive index via the Sellmeier equation, and enumerates
// the ghost reflection paths a lens stack admits.
package lens
