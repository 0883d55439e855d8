package main

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/sugarme/gotch"
	ts "github.com/sugarme/gotch/tensor"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/sugarme/sketchgan/gan"
)

// runBench times repeated generator + discriminator forward passes.
func runBench(cfg *gan.Config) {
	if Iters <= 0 {
		klog.Exitf("'iters' must be positive. Got %d", Iters)
	}
	_, model := buildModel(cfg)

	size := int64(ImageSize)
	sketch := ts.MustRandn([]int64{1, 3, size, size}, gotch.Float, Device)
	label := ts.MustRandn([]int64{1, 3, size, size}, gotch.Float, Device)

	bar := progressbar.Default(int64(Iters), "forward")
	start := time.Now()
	err := benchLoop(model, sketch, label, Iters, bar)
	elapsed := time.Since(start)

	sketch.MustDrop()
	label.MustDrop()
	if err != nil {
		klog.Exitf("bench: %v", err)
	}

	klog.Infof("%s passes in %v (%v per pass)", humanize.Comma(int64(Iters)), elapsed, elapsed/time.Duration(Iters))
}

// benchLoop runs iters generator + discriminator forward passes, advancing
// bar once per pass.
func benchLoop(model *gan.DCGAN, sketch, label *ts.Tensor, iters int, bar *progressbar.ProgressBar) error {
	for i := 0; i < iters; i++ {
		ts.NoGrad(func() {
			fake := model.NetG.ForwardT(sketch, false)
			scores := model.NetD.ForwardT(fake, label, false)
			fake.MustDrop()
			scores.MustDrop()
		})
		if err := bar.Add(1); err != nil {
			return errors.Wrapf(err, "progress at pass %d", i)
		}
	}
	return nil
}
