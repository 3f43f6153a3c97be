package camera

import (
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"

	"gobooth/internal/debug"
)

// Webcam grabs frames from a V4L2 / DirectShow device through OpenCV.
type Webcam struct {
	deviceID int
	width    int
	height   int

	mu  sync.Mutex
	cap *gocv.VideoCapture
}

func NewWebcam(deviceID, width, height int) *Webcam {
	return &Webcam{deviceID: deviceID, width: width, height: height}
}

func (w *Webcam) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cap != nil {
		return nil
	}
	cap, err := gocv.VideoCaptureDevice(w.deviceID)
	if err != nil {
		return fmt.Errorf("%w: open device %d: %v", ErrUnavailable, w.deviceID, err)
	}
	cap.Set(gocv.VideoCaptureFrameWidth, float64(w.width))
	cap.Set(gocv.VideoCaptureFrameHeight, float64(w.height))

	debug.Section("Camera")
	debug.Value("Device", w.deviceID)
	debug.Value("Resolution", fmt.Sprintf("%dx%d", w.width, w.height))

	w.cap = cap
	return nil
}

func (w *Webcam) Grab() (image.Image, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cap == nil {
		return nil, ErrUnavailable
	}

	mat := gocv.NewMat()
	defer mat.Close()
	if ok := w.cap.Read(&mat); !ok || mat.Empty() {
		return nil, fmt.Errorf("%w: device %d returned no frame", ErrUnavailable, w.deviceID)
	}
	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	return img, nil
}

func (w *Webcam) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cap == nil {
		return nil
	}
	err := w.cap.Close()
	w.cap = nil
	return err
}
