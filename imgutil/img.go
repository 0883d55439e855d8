package imgutil

import (
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/tiff"
	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	ts "github.com/sugarme/gotch/tensor"
	"golang.org/x/image/draw"
)

// ReadImage reads image from file.
func ReadImage(filename string) (image.Image, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "open image")
	}
	defer f.Close()

	var img image.Image
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".tiff", ".tif":
		img, err = tiff.Decode(f)
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp":
		img, err = imaging.Decode(f)
	default:
		return nil, errors.Errorf("unsupported image format: %q", filepath.Ext(filename))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decode %q", filename)
	}

	return img, nil
}

// Prepare center-crops img to a square and resizes it to size x size.
func Prepare(img image.Image, size int) image.Image {
	b := img.Bounds()
	side := b.Dx()
	if b.Dy() < side {
		side = b.Dy()
	}
	square := imaging.CropCenter(img, side, side)
	if side == size {
		return square
	}

	return resize.Resize(uint(size), uint(size), square, resize.Lanczos3)
}

// ToTensor converts img to a [1 3 H W] float tensor with values in [-1, 1].
func ToTensor(img image.Image) *ts.Tensor {
	src := toNRGBA(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	plane := w * h

	data := make([]float32, 3*plane)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := src.PixOffset(x, y)
			for c := 0; c < 3; c++ {
				data[c*plane+y*w+x] = float32(src.Pix[i+c])/127.5 - 1
			}
		}
	}

	return ts.MustOfSlice(data).MustView([]int64{1, 3, int64(h), int64(w)}, true)
}

// ToImage converts a [1 3 H W] or [3 H W] tensor with values in [-1, 1]
// to an image. Values out of range are clipped.
func ToImage(x *ts.Tensor) (image.Image, error) {
	size := x.MustSize()
	if len(size) == 4 {
		if size[0] != 1 {
			return nil, errors.Errorf("expected a single image, got batch of %d", size[0])
		}
		size = size[1:]
	}
	if len(size) != 3 || size[0] != 3 {
		return nil, errors.Errorf("expected tensor of shape [1 3 H W] or [3 H W]. Got %v", x.MustSize())
	}

	h, w := int(size[1]), int(size[2])
	plane := w * h
	vals := x.Float64Values()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for xx := 0; xx < w; xx++ {
			i := img.PixOffset(xx, y)
			for c := 0; c < 3; c++ {
				img.Pix[i+c] = toUint8(vals[c*plane+y*w+xx])
			}
			img.Pix[i+3] = 255
		}
	}

	return img, nil
}

// SaveTensor saves an image tensor (see ToImage) to file. Format is taken
// from the file extension.
func SaveTensor(x *ts.Tensor, filename string) error {
	img, err := ToImage(x)
	if err != nil {
		return err
	}
	if err := imaging.Save(img, filename); err != nil {
		return errors.Wrapf(err, "save %q", filename)
	}
	return nil
}

func toNRGBA(img image.Image) *image.NRGBA {
	if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Rect.Min == (image.Point{}) {
		return nrgba
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)

	return dst
}

func toUint8(v float64) uint8 {
	v = (v + 1) * 127.5
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v + 0.5)
	}
}
