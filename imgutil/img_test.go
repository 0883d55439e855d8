package imgutil_test

import (
	"image"
	"image/color"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sugarme/gotch"
	ts "github.com/sugarme/gotch/tensor"

	"github.com/sugarme/sketchgan/imgutil"
)

func sketch(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 10), G: uint8(y * 10), B: 255, A: 255})
		}
	}
	return img
}

func tempDir(t *testing.T) string {
	dir, err := ioutil.TempDir("", "imgutil")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

func TestToTensor(t *testing.T) {
	img := sketch(4, 2)
	x := imgutil.ToTensor(img)
	defer x.MustDrop()

	assert.Equal(t, []int64{1, 3, 2, 4}, x.MustSize())

	vals := x.Float64Values()
	// blue plane is all 255
	for _, v := range vals[16:24] {
		assert.InDelta(t, 1.0, v, 1e-6)
	}
	// red of pixel (0, 0) is 0
	assert.InDelta(t, -1.0, vals[0], 1e-6)

	back, err := imgutil.ToImage(x)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), back.Bounds())
	for y := 0; y < 2; y++ {
		for xx := 0; xx < 4; xx++ {
			assert.Equal(t, img.NRGBAAt(xx, y), back.(*image.NRGBA).NRGBAAt(xx, y))
		}
	}
}

func TestToImageInvalid(t *testing.T) {
	x := ts.MustZeros([]int64{2, 3, 4, 4}, gotch.Float, gotch.CPU)
	_, err := imgutil.ToImage(x)
	assert.Error(t, err)
	x.MustDrop()

	y := ts.MustZeros([]int64{1, 1, 4, 4}, gotch.Float, gotch.CPU)
	_, err = imgutil.ToImage(y)
	assert.Error(t, err)
	y.MustDrop()
}

func TestPrepare(t *testing.T) {
	img := imgutil.Prepare(sketch(40, 30), 16)
	assert.Equal(t, image.Rect(0, 0, 16, 16), img.Bounds())

	img = imgutil.Prepare(sketch(20, 30), 20)
	assert.Equal(t, 20, img.Bounds().Dx())
	assert.Equal(t, 20, img.Bounds().Dy())
}

func TestReadImage(t *testing.T) {
	dir := tempDir(t)

	path := filepath.Join(dir, "sketch.png")
	require.NoError(t, imaging.Save(sketch(8, 8), path))

	img, err := imgutil.ReadImage(path)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())

	_, err = imgutil.ReadImage(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)

	other := filepath.Join(dir, "sketch.txt")
	require.NoError(t, ioutil.WriteFile(other, []byte("x"), 0644))
	_, err = imgutil.ReadImage(other)
	assert.Error(t, err)
}

func TestSaveTensor(t *testing.T) {
	dir := tempDir(t)
	path := filepath.Join(dir, "out.png")

	x := imgutil.ToTensor(sketch(8, 8))
	require.NoError(t, imgutil.SaveTensor(x, path))
	x.MustDrop()

	img, err := imgutil.ReadImage(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 8), img.Bounds())
}

func TestSaveHeatmap(t *testing.T) {
	dir := tempDir(t)
	path := filepath.Join(dir, "scores.png")

	scores := ts.MustRand([]int64{1, 1, 6, 6}, gotch.Float, gotch.CPU)
	require.NoError(t, imgutil.SaveHeatmap(scores, "patch scores", path))
	scores.MustDrop()

	_, err := os.Stat(path)
	assert.NoError(t, err)

	bad := ts.MustRand([]int64{2, 1, 6, 6}, gotch.Float, gotch.CPU)
	assert.Error(t, imgutil.SaveHeatmap(bad, "", path))
	bad.MustDrop()
}
