package lens

import (
	"math"

	"github.com/flarekit/flare"
)

// Refract applies Snell's law to an incident direction crossing an
// interface with the given unit normal (pointing against the incident
// ray) and relative indices n1 (incident side) / n2 (transmitted side).
// Returns false on total internal reflection.
func Refract(incident, normal flare.Vec3, n1, n2 float64) (flare.Vec3, bool) {
	cosI := -incident.Dot(normal)
	eta := n1 / n2
	sin2T := eta * eta * (1 - cosI*cosI)
	if sin2T > 1 {
		return flare.Vec3{}, false
	}
	cosT := math.Sqrt(1 - sin2T)
	out := incident.Mul(eta).Add(normal.Mul(eta*cosI - cosT))
	return out.Normalize(), true
}

// FresnelUncoated returns the unpolarized Fresnel reflectance of a bare
// interface at incidence angle cosTheta (cosine of angle of incidence in
// medium n1) between refractive indices n1 and n2.
func FresnelUncoated(n1, n2, cosTheta float64) float64 {
	sinT2 := (n1 / n2) * (n1 / n2) * (1 - cosTheta*cosTheta)
	if sinT2 > 1 {
		return 1 // total internal reflection
	}
	cosT := math.Sqrt(1 - sinT2)

	rs := (n1*cosTheta - n2*cosT) / (n1*cosTheta + n2*cosT)
	rp := (n2*cosTheta - n1*cosT) / (n2*cosTheta + n1*cosT)
	return 0.5 * (rs*rs + rp*rp)
}

// CoatingThickness returns the quarter-wave coating thickness for a
// reference wavelength and the coating's own refractive index, clamped
// to a minimum physical thickness.
func CoatingThickness(referenceNM, coatingIOR, minThicknessNM float64) float64 {
	d := referenceNM / (4 * coatingIOR)
	if d < minThicknessNM {
		return minThicknessNM
	}
	return d
}

// FresnelAR returns the reflectance of a single-layer anti-reflective
// coating stack (n0 incident medium, n1 coating, n2 substrate) at
// incidence angle cosTheta for light of wavelength nm, given the coating
// physical thickness d (same units as nm). Interference between the
// first-surface and coating/substrate-interface reflections is evaluated
// at the actual wavelength, not just the coating's reference wavelength.
func FresnelAR(n0, n1, n2, cosTheta, d, nm float64) float64 {
	sinT1Sq := (n0 / n1) * (n0 / n1) * (1 - cosTheta*cosTheta)
	if sinT1Sq > 1 {
		return 1
	}
	cosT1 := math.Sqrt(1 - sinT1Sq)

	r01 := (n0*cosTheta - n1*cosT1) / (n0*cosTheta + n1*cosT1)

	sinT2Sq := (n1 / n2) * (n1 / n2) * (1 - cosT1*cosT1)
	var r12 float64
	if sinT2Sq > 1 {
		r12 = 1
	} else {
		cosT2 := math.Sqrt(1 - sinT2Sq)
		r12 = (n1*cosT1 - n2*cosT2) / (n1*cosT1 + n2*cosT2)
	}

	phase := 4 * math.Pi * n1 * d * cosT1 / nm
	num := r01*r01 + r12*r12 + 2*r01*r12*math.Cos(phase)
	den := 1 + r01*r01*r12*r12 + 2*r01*r12*math.Cos(phase)
	if den == 0 {
		return 0
	}
	return num / den
}
