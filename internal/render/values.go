package render

// This file maps filter percentages onto the parameters of the OpenCV
// operations in compositor.go. Everything here is plain arithmetic so the
// mappings stay testable without a capture device.

// clamp01 limits a ratio to the [0, 1] range.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// toneParams folds brightness and contrast percentages into a single affine
// transform: out = alpha*in + beta. Brightness scales the pixel, contrast
// pivots it around mid gray.
func toneParams(brightnessPct, contrastPct float64) (alpha, beta float64) {
	b := brightnessPct / 100
	c := contrastPct / 100
	alpha = b * c
	beta = 127.5 * (1 - c)
	return alpha, beta
}

// saturationScale converts the saturate percentage to the multiplier applied
// to the HSV saturation channel.
func saturationScale(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	return pct / 100
}

// grayWeight converts the grayscale percentage to the blend weight between
// the original frame and its desaturated version.
func grayWeight(pct float64) float64 {
	return clamp01(pct / 100)
}

// sepiaFull is the standard sepia color matrix in BGR channel order. Row i
// produces output channel i from the input [B G R] vector.
var sepiaFull = [3][3]float64{
	{0.131, 0.534, 0.272},
	{0.168, 0.686, 0.349},
	{0.189, 0.769, 0.393},
}

// sepiaKernel interpolates between the identity matrix and the full sepia
// matrix by the given percentage.
func sepiaKernel(pct float64) [3][3]float64 {
	w := clamp01(pct / 100)
	var k [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			ident := 0.0
			if i == j {
				ident = 1.0
			}
			k[i][j] = ident*(1-w) + sepiaFull[i][j]*w
		}
	}
	return k
}
