package main

import (
	"github.com/sugarme/gotch"
	ts "github.com/sugarme/gotch/tensor"
	"k8s.io/klog/v2"

	"github.com/sugarme/sketchgan/gan"
	"github.com/sugarme/sketchgan/imgutil"
	"github.com/sugarme/sketchgan/metric"
	"github.com/sugarme/sketchgan/unet"
)

// loadInput reads an image file into a [1 3 size size] tensor on Device.
func loadInput(path string) *ts.Tensor {
	img, err := imgutil.ReadImage(absPath(path))
	if err != nil {
		klog.Exitf("%+v", err)
	}

	x := imgutil.ToTensor(imgutil.Prepare(img, ImageSize))
	return x.MustTo(Device, true)
}

func runGenerate(cfg *gan.Config) {
	size := int64(ImageSize)
	if err := unet.CheckInputSize(size, size, cfg.NumDownsampling); err != nil {
		klog.Exitf("%v", err)
	}

	_, model := buildModel(cfg)
	sketch := loadInput(InputPath)

	var fake *ts.Tensor
	ts.NoGrad(func() {
		fake = model.NetG.ForwardT(sketch, false)
	})
	sketch.MustDrop()

	out := fake.MustTo(gotch.CPU, true)
	if err := imgutil.SaveTensor(out, absPath(OutputPath)); err != nil {
		klog.Exitf("%+v", err)
	}
	out.MustDrop()

	klog.Infof("generated image saved to %s", OutputPath)
}

func runScore(cfg *gan.Config) {
	_, model := buildModel(cfg)
	image := loadInput(InputPath)
	label := loadInput(LabelPath)

	var scores *ts.Tensor
	ts.NoGrad(func() {
		scores = model.NetD.ForwardT(image, label, false)
	})
	image.MustDrop()
	label.MustDrop()

	scores = scores.MustTo(gotch.CPU, true)
	mean, err := metric.MeanScore(scores)
	if err != nil {
		klog.Exit(err)
	}
	klog.Infof("patch scores %v, mean realism %.4f", scores.MustSize(), mean)

	if err := imgutil.SaveHeatmap(scores, "patch realism", absPath(OutputPath)); err != nil {
		klog.Exitf("%+v", err)
	}
	scores.MustDrop()

	klog.Infof("score heatmap saved to %s", OutputPath)
}
