package main

import (
	"fmt"
	"os"

	"github.com/sugarme/gotch"
	ts "github.com/sugarme/gotch/tensor"
	"k8s.io/klog/v2"

	"github.com/sugarme/sketchgan/gan"
	"github.com/sugarme/sketchgan/metric"
)

func runCheckModel(cfg *gan.Config) {
	_, model := buildModel(cfg)

	klog.Infof("%s", model.Name())
	klog.Infof("%s: %d levels", model.NetG.Name(), model.NetG.Unet().Depth())
	for b := model.NetG.Unet().Root(); b != nil; b = b.Subnet() {
		klog.Infof("  %v", b.BlockSpec)
	}

	size := int64(ImageSize)
	sketch := ts.MustRandn([]int64{1, 3, size, size}, gotch.Float, Device)
	label := ts.MustRandn([]int64{1, 3, size, size}, gotch.Float, Device)

	ts.NoGrad(func() {
		fake := model.NetG.ForwardT(sketch, false)
		scores := model.NetD.ForwardT(fake, label, false)

		fakeStats, err := metric.Describe(fake)
		if err != nil {
			klog.Exit(err)
		}
		scoreStats, err := metric.Describe(scores)
		if err != nil {
			klog.Exit(err)
		}

		klog.Infof("%s output: %v, range [%.4f, %.4f]", model.NetG.Name(), fake.MustSize(), fakeStats.Min, fakeStats.Max)
		klog.Infof("%s output: %v, range [%.4f, %.4f], mean %.4f", model.NetD.Name(), scores.MustSize(), scoreStats.Min, scoreStats.Max, scoreStats.Mean)

		fake.MustDrop()
		scores.MustDrop()
	})

	sketch.MustDrop()
	label.MustDrop()
}

func runSummary(cfg *gan.Config) {
	vs, model := buildModel(cfg)

	df := gan.Summary(vs)
	if err := df.WriteCSV(os.Stdout); err != nil {
		klog.Exit(err)
	}

	fmt.Printf("%s params: %s\n", model.NetG.Name(), gan.FormatParams(gan.NumParams(vs, "netG")))
	fmt.Printf("%s params: %s\n", model.NetD.Name(), gan.FormatParams(gan.NumParams(vs, "netD")))
	fmt.Printf("Total params: %s\n", gan.FormatParams(gan.NumParams(vs, "")))
}
