package patchgan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sugarme/gotch"
	"github.com/sugarme/gotch/nn"
	ts "github.com/sugarme/gotch/tensor"

	"github.com/sugarme/sketchgan/patchgan"
)

func TestOutputSize(t *testing.T) {
	assert.Equal(t, int64(30), patchgan.OutputSize(256))
	assert.Equal(t, int64(62), patchgan.OutputSize(512))
	assert.Equal(t, int64(6), patchgan.OutputSize(64))
	assert.Equal(t, int64(2), patchgan.OutputSize(32))
}

func TestNewDiscriminator(t *testing.T) {
	vs := nn.NewVarStore(gotch.CPU)
	net, err := patchgan.NewDiscriminator(vs.Root(), 4)
	require.NoError(t, err)
	assert.Equal(t, "Discriminator", net.Name())
	assert.Equal(t, int64(4), net.FilterSize())

	image := ts.MustRandn([]int64{2, 3, 64, 64}, gotch.Float, gotch.CPU)
	label := ts.MustRandn([]int64{2, 3, 64, 64}, gotch.Float, gotch.CPU)

	var scores *ts.Tensor
	ts.NoGrad(func() {
		scores = net.ForwardT(image, label, false)
	})

	size := patchgan.OutputSize(64)
	assert.Equal(t, []int64{2, 1, size, size}, scores.MustSize())
	for _, v := range scores.Float64Values() {
		require.True(t, v >= 0 && v <= 1, "value %v out of sigmoid range", v)
	}

	image.MustDrop()
	label.MustDrop()
	scores.MustDrop()
}

func TestForwardAll(t *testing.T) {
	vs := nn.NewVarStore(gotch.CPU)
	net, err := patchgan.NewDiscriminator(vs.Root(), 2)
	require.NoError(t, err)

	image := ts.MustRandn([]int64{1, 3, 64, 64}, gotch.Float, gotch.CPU)
	label := ts.MustRandn([]int64{1, 3, 64, 64}, gotch.Float, gotch.CPU)

	var features []*ts.Tensor
	ts.NoGrad(func() {
		features = net.ForwardAll(image, label, false)
	})
	require.Len(t, features, 5)

	want := [][]int64{
		{1, 2, 32, 32},
		{1, 4, 16, 16},
		{1, 8, 8, 8},
		{1, 16, 7, 7},
		{1, 1, 6, 6},
	}
	for i, f := range features {
		assert.Equal(t, want[i], f.MustSize(), "layer %d", i+1)
		f.MustDrop()
	}
}

func TestDiscriminatorInvalid(t *testing.T) {
	vs := nn.NewVarStore(gotch.CPU)
	_, err := patchgan.NewDiscriminator(vs.Root(), 0)
	assert.Error(t, err)
}
