package main

import (
	"io/ioutil"
	"testing"

	"github.com/schollz/progressbar/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sugarme/gotch"
	"github.com/sugarme/gotch/nn"
	ts "github.com/sugarme/gotch/tensor"

	"github.com/sugarme/sketchgan/gan"
)

func TestBenchLoop(t *testing.T) {
	vs := nn.NewVarStore(gotch.CPU)
	model, err := gan.NewDCGAN(vs.Root(), &gan.Config{FilterSize: 4, NumDownsampling: 5})
	require.NoError(t, err)

	sketch := ts.MustRandn([]int64{1, 3, 32, 32}, gotch.Float, gotch.CPU)
	label := ts.MustRandn([]int64{1, 3, 32, 32}, gotch.Float, gotch.CPU)
	defer sketch.MustDrop()
	defer label.MustDrop()

	bar := progressbar.NewOptions(3, progressbar.OptionSetWriter(ioutil.Discard))
	err = benchLoop(model, sketch, label, 3, bar)
	require.NoError(t, err)
	assert.True(t, bar.IsFinished())
}
