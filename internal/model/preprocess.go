package model

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/nfnt/resize"
)

var resampleFilters = map[string]resize.InterpolationFunction{
	"nearest":  resize.NearestNeighbor,
	"bilinear": resize.Bilinear,
	"bicubic":  resize.Bicubic,
	"mitchell": resize.MitchellNetravali,
	"lanczos2": resize.Lanczos2,
	"lanczos3": resize.Lanczos3,
	"lanczos":  resize.Lanczos3,
}

func resampleFilter(name string) (resize.InterpolationFunction, bool) {
	f, ok := resampleFilters[strings.ToLower(name)]
	return f, ok
}

// toRGB copies img into an opaque NRGBA bitmap anchored at the origin.
// Alpha is dropped rather than composited; grey and paletted images
// expand to three equal channels.
func toRGB(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			c.A = 0xff
			dst.SetNRGBA(x-b.Min.X, y-b.Min.Y, c)
		}
	}
	return dst
}

// Preprocess turns an image into the CHW float32 tensor the network takes:
// RGB, resized to ImageSize x ImageSize, scaled to [0,1] and normalised
// with the metadata mean and std.
func Preprocess(img image.Image, meta Metadata) ([]float32, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidInput)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrInvalidInput)
	}

	filter, ok := resampleFilter(meta.Resample)
	if !ok {
		return nil, fmt.Errorf("unknown resample filter %q", meta.Resample)
	}

	size := uint(meta.ImageSize)
	resized := resize.Resize(size, size, toRGB(img), filter)

	bounds := resized.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	plane := width * height

	inputData := make([]float32, 3*plane)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := resized.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()

			pixelIndex := y*width + x
			inputData[pixelIndex] = (float32(r)/65535.0 - meta.Mean[0]) / meta.Std[0]
			inputData[plane+pixelIndex] = (float32(g)/65535.0 - meta.Mean[1]) / meta.Std[1]
			inputData[2*plane+pixelIndex] = (float32(b)/65535.0 - meta.Mean[2]) / meta.Std[2]
		}
	}

	return inputData, nil
}
