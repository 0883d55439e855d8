package patchgan

import (
	"github.com/pkg/errors"
	"github.com/sugarme/gotch/nn"
	ts "github.com/sugarme/gotch/tensor"
	"k8s.io/klog/v2"

	"github.com/sugarme/sketchgan/base"
)

const (
	// InputChannels is number of channels of image and label concatenated.
	InputChannels int64 = 6

	kernelSize int64 = 4
	padding    int64 = 1
)

// strides of the five layers.
var strides = []int64{2, 2, 2, 1, 1}

// Discriminator is a conditional PatchGAN discriminator. It scores every
// receptive-field patch of an (image, label) pair as real (1) or fake (0).
// Ref: https://arxiv.org/abs/1611.07004
type Discriminator struct {
	layer1 *nn.SequentialT
	layer2 *nn.SequentialT
	layer3 *nn.SequentialT
	layer4 *nn.SequentialT
	layer5 *nn.SequentialT

	filterSize int64
}

// NewDiscriminator creates Discriminator.
//
//   layer1: conv(6 -> F,  s2)         leaky
//   layer2: conv(F -> 2F, s2)   norm  leaky
//   layer3: conv(2F -> 4F, s2)  norm  leaky
//   layer4: conv(4F -> 8F, s1)  norm  leaky
//   layer5: conv(8F -> 1, s1)         sigmoid
func NewDiscriminator(p *nn.Path, filterSize int64) (*Discriminator, error) {
	if filterSize <= 0 {
		return nil, errors.Errorf("filter size must be positive. Got %d", filterSize)
	}

	f := filterSize
	layer1 := base.ConvNormLeaky(p.Sub("layer1"), InputChannels, f, kernelSize, padding, strides[0], false)
	layer2 := base.ConvNormLeaky(p.Sub("layer2"), f, f*2, kernelSize, padding, strides[1], true)
	layer3 := base.ConvNormLeaky(p.Sub("layer3"), f*2, f*4, kernelSize, padding, strides[2], true)
	layer4 := base.ConvNormLeaky(p.Sub("layer4"), f*4, f*8, kernelSize, padding, strides[3], true)
	layer5 := base.NewPatchHead(p.Sub("layer5"), f*8, kernelSize, padding)

	klog.V(1).Infof("patchgan discriminator: filter size %d", filterSize)

	return &Discriminator{
		layer1:     layer1,
		layer2:     layer2,
		layer3:     layer3,
		layer4:     layer4,
		layer5:     layer5,
		filterSize: filterSize,
	}, nil
}

// Name returns name of the network.
func (d *Discriminator) Name() string {
	return "Discriminator"
}

// FilterSize returns number of filters of the first layer.
func (d *Discriminator) FilterSize() int64 {
	return d.filterSize
}

// ForwardT scores image conditioned on label.
// image, label: [B 3 H W] -> [B 1 H' W'] scores in [0, 1]
func (d *Discriminator) ForwardT(image, label *ts.Tensor, train bool) *ts.Tensor {
	features := d.ForwardAll(image, label, train)
	last := len(features) - 1
	for _, f := range features[:last] {
		f.MustDrop()
	}

	return features[last]
}

// ForwardAll forwards through all layers and returns the output of each
// of them, the last one being the patch scores.
//
// E.g. image, label [B 3 256 256]:
//   0- [B  F 128 128]
//   1- [B 2F  64  64]
//   2- [B 4F  32  32]
//   3- [B 8F  31  31]
//   4- [B  1  30  30]
func (d *Discriminator) ForwardAll(image, label *ts.Tensor, train bool) []*ts.Tensor {
	x := ts.MustCat([]ts.Tensor{*image, *label}, 1)
	x1 := d.layer1.ForwardT(x, train)
	x.MustDrop()
	x2 := d.layer2.ForwardT(x1, train)
	x3 := d.layer3.ForwardT(x2, train)
	x4 := d.layer4.ForwardT(x3, train)
	x5 := d.layer5.ForwardT(x4, train)

	return []*ts.Tensor{x1, x2, x3, x4, x5}
}

// OutputSize returns height (or width) of the score map for an input of
// size `size`.
func OutputSize(size int64) int64 {
	for _, s := range strides {
		size = (size+2*padding-kernelSize)/s + 1
	}
	return size
}
