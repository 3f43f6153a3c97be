// Package render turns raw camera frames into styled JPEG data URIs. It
// applies the filter chain in its fixed order (brightness, contrast,
// grayscale, sepia, saturate) followed by the optional mirror flip.
package render

import (
	"encoding/base64"
	"fmt"
	"image"
	"time"

	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"gobooth/internal/debug"
	"gobooth/internal/hw/camera"
	"gobooth/internal/logic/filter"
	"gobooth/internal/logic/session"
)

const dataURIPrefix = "data:image/jpeg;base64,"

// Compositor grabs frames from a camera source and renders them with the
// current filter settings. It satisfies the session Capturer interface.
type Compositor struct {
	src camera.Source
}

func NewCompositor(src camera.Source) *Compositor {
	return &Compositor{src: src}
}

// Capture grabs one frame, renders it and wraps it as a gallery capture
// with a fresh id and timestamp.
func (c *Compositor) Capture(s filter.Settings, mirror bool) (session.Capture, error) {
	uri, err := c.Frame(s, mirror)
	if err != nil {
		return session.Capture{}, err
	}
	return session.Capture{
		ID:      uuid.NewString(),
		DataURI: uri,
		TakenAt: time.Now(),
	}, nil
}

// Frame grabs one frame and renders it as a JPEG data URI. The preview loop
// uses it directly, without minting a capture id.
func (c *Compositor) Frame(s filter.Settings, mirror bool) (string, error) {
	img, err := c.src.Grab()
	if err != nil {
		return "", err
	}
	jpg, err := render(img, s, mirror)
	if err != nil {
		return "", err
	}
	return dataURIPrefix + base64.StdEncoding.EncodeToString(jpg), nil
}

// render applies the filter chain to one frame and encodes it as JPEG.
func render(img image.Image, s filter.Settings, mirror bool) ([]byte, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("frame to mat: %w", err)
	}
	defer mat.Close()

	if s.Brightness != filter.Neutral || s.Contrast != filter.Neutral {
		applyTone(&mat, s.Brightness, s.Contrast)
	}
	if s.Grayscale != 0 {
		applyGrayscale(&mat, s.Grayscale)
	}
	if s.Sepia != 0 {
		applySepia(&mat, s.Sepia)
	}
	if s.Saturate != filter.Neutral {
		applySaturation(&mat, s.Saturate)
	}
	if mirror {
		gocv.Flip(mat, &mat, 1)
	}

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, mat)
	if err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	defer buf.Close()

	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())
	debug.Trace("Rendered frame: %d bytes", len(out))
	return out, nil
}

func applyTone(mat *gocv.Mat, brightnessPct, contrastPct float64) {
	alpha, beta := toneParams(brightnessPct, contrastPct)
	dst := gocv.NewMat()
	defer dst.Close()
	mat.ConvertToWithParams(&dst, gocv.MatTypeCV8UC3, float32(alpha), float32(beta))
	dst.CopyTo(mat)
}

func applyGrayscale(mat *gocv.Mat, pct float64) {
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(*mat, &gray, gocv.ColorBGRToGray)
	gocv.CvtColor(gray, &gray, gocv.ColorGrayToBGR)

	w := grayWeight(pct)
	gocv.AddWeighted(*mat, 1-w, gray, w, 0, mat)
}

func applySepia(mat *gocv.Mat, pct float64) {
	k := sepiaKernel(pct)
	kernel := gocv.NewMatWithSize(3, 3, gocv.MatTypeCV64F)
	defer kernel.Close()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			kernel.SetDoubleAt(i, j, k[i][j])
		}
	}
	gocv.Transform(*mat, mat, kernel)
}

func applySaturation(mat *gocv.Mat, pct float64) {
	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(*mat, &hsv, gocv.ColorBGRToHSV)

	chans := gocv.Split(hsv)
	defer func() {
		for i := range chans {
			chans[i].Close()
		}
	}()
	chans[1].MultiplyFloat(float32(saturationScale(pct)))
	gocv.Merge(chans, &hsv)

	gocv.CvtColor(hsv, mat, gocv.ColorHSVToBGR)
}
