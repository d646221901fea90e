package spectrum

import "github.com/flarekit/flare"

// ToRGB converts a CIE XYZ tristimulus value to linear sRGB using the
// standard sRGB/Rec.709 primaries matrix. Out-of-gamut results (from
// saturated monochromatic wavelengths) are not clipped here; callers
// tone-map after accumulation.
func (xyz XYZ) ToRGB() (r, g, b float64) {
	r = 3.2406*xyz.X - 1.5372*xyz.Y - 0.4986*xyz.Z
	g = -0.9689*xyz.X + 1.8758*xyz.Y + 0.0415*xyz.Z
	b = 0.0557*xyz.X - 0.2040*xyz.Y + 1.0570*xyz.Z
	return r, g, b
}

// Weight returns the per-channel CIE XYZ tristimulus weight at wavelength
// nm, converted to linear RGB. The rasterizer multiplies a ghost
// primitive's spectral intensity by this weight before accumulating it
// into the output image, which is how a single-wavelength ray trace ends
// up contributing the correct hue to the final color image.
func Weight(nm float64) flare.RGBA {
	r, g, b := Sample(nm).ToRGB()
	return flare.RGBA{R: r, G: g, B: b, A: 1}
}
