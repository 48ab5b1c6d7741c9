package imageview

import (
	"log/slog"

	"github.com/gogpu/imageview/raster"
	"github.com/gogpu/imageview/text"
)

// Option configures a View during creation.
// Use functional options to customize View behavior.
//
// Example:
//
//	v, err := imageview.New(640, 480, raster.FormatRGB8,
//	    imageview.WithInterpolation(raster.InterpBilinear),
//	    imageview.WithLogger(slog.Default()),
//	)
type Option func(*options)

// options holds optional configuration for View creation.
type options struct {
	interp raster.InterpolationMode
	face   *text.Face
	logger *slog.Logger
	pool   *raster.Pool
}

// defaultOptions returns the default view options.
func defaultOptions() options {
	return options{
		interp: raster.InterpNearest,
		face:   text.Default(),
		logger: nil, // falls back to the package logger
		pool:   raster.DefaultPool,
	}
}

// WithInterpolation sets the resampling kernel used by AddImageAndScale.
func WithInterpolation(mode raster.InterpolationMode) Option {
	return func(o *options) {
		o.interp = mode
	}
}

// WithFace sets the face used to draw text shapes. A nil face keeps the
// built-in bitmap face.
//
// Example:
//
//	face, _ := text.GoRegular(14)
//	v, _ := imageview.New(640, 480, raster.FormatGray8, imageview.WithFace(face))
func WithFace(face *text.Face) Option {
	return func(o *options) {
		if face != nil {
			o.face = face
		}
	}
}

// WithLogger sets a logger for this view instead of the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithPool sets the pool that Compose takes output buffers from.
func WithPool(p *raster.Pool) Option {
	return func(o *options) {
		if p != nil {
			o.pool = p
		}
	}
}
