package unet

import (
	"github.com/sugarme/gotch/nn"
	ts "github.com/sugarme/gotch/tensor"
	"k8s.io/klog/v2"
)

// Unet is a recursive encoder-decoder with skip connections at every level
// but the outermost one.
// Ref: https://arxiv.org/abs/1611.07004
type Unet struct {
	model *Block

	numDownsampling int64
	filterSize      int64
}

// NewUnet creates Unet with numDownsampling levels (>= 5). The innermost
// block works on 8*filterSize channels.
//
// Blocks are built from the innermost outward, each new block wrapping the
// previous one as its subnet.
func NewUnet(p *nn.Path, numDownsampling, filterSize int64) (*Unet, error) {
	specs, err := Plan(numDownsampling, filterSize)
	if err != nil {
		return nil, err
	}

	// variable paths go from the root inward: model, model.submodule, ...
	paths := make([]*nn.Path, len(specs))
	paths[len(specs)-1] = p
	for i := len(specs) - 2; i >= 0; i-- {
		paths[i] = paths[i+1].Sub("submodule")
	}

	var block *Block
	for i, spec := range specs {
		block, err = NewBlock(paths[i], spec, block)
		if err != nil {
			return nil, err
		}
	}

	klog.V(1).Infof("unet: %d levels, filter size %d", len(specs), filterSize)

	return &Unet{
		model:           block,
		numDownsampling: numDownsampling,
		filterSize:      filterSize,
	}, nil
}

// ForwardT implements ts.ModuleT for Unet.
// x: [B 3 H W] -> [B 3 H W]
func (n *Unet) ForwardT(x *ts.Tensor, train bool) *ts.Tensor {
	return n.model.ForwardT(x, train)
}

// Root returns the outermost block.
func (n *Unet) Root() *Block {
	return n.model
}

// Depth returns number of nested blocks.
func (n *Unet) Depth() int {
	depth := 0
	for b := n.model; b != nil; b = b.subnet {
		depth++
	}
	return depth
}

// Specs returns the layout of the built blocks, innermost first, as Plan does.
func (n *Unet) Specs() []BlockSpec {
	var specs []BlockSpec
	for b := n.model; b != nil; b = b.subnet {
		specs = append([]BlockSpec{b.BlockSpec}, specs...)
	}
	return specs
}

// NumDownsampling returns number of downsampling levels.
func (n *Unet) NumDownsampling() int64 {
	return n.numDownsampling
}

// FilterSize returns number of filters of the outermost level.
func (n *Unet) FilterSize() int64 {
	return n.filterSize
}

// Generator takes a sketch and outputs a generated image of the same size.
type Generator struct {
	model *Unet
}

// NewGenerator creates Generator.
func NewGenerator(p *nn.Path, numDownsampling, filterSize int64) (*Generator, error) {
	model, err := NewUnet(p.Sub("model"), numDownsampling, filterSize)
	if err != nil {
		return nil, err
	}

	return &Generator{model}, nil
}

// Name returns name of the network.
func (g *Generator) Name() string {
	return "Generator"
}

// Unet returns the underlying Unet.
func (g *Generator) Unet() *Unet {
	return g.model
}

// ForwardT implements ts.ModuleT for Generator.
// x: [B 3 H W] sketch -> [B 3 H W] image with values in [-1, 1]
func (g *Generator) ForwardT(x *ts.Tensor, train bool) *ts.Tensor {
	return g.model.ForwardT(x, train)
}
