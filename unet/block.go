package unet

import (
	"github.com/pkg/errors"
	"github.com/sugarme/gotch/nn"
	ts "github.com/sugarme/gotch/tensor"
	"k8s.io/klog/v2"

	"github.com/sugarme/sketchgan/base"
)

// Block is a UnetBlock: one encoder-decoder stage that wraps a nested
// subnet and, unless outermost, concatenates its input with its output.
type Block struct {
	BlockSpec

	down   ts.ModuleT
	subnet *Block
	up     *nn.SequentialT
}

// NewBlock creates a Block. Innermost blocks take no subnet, every other
// kind needs one whose output has 2*InChannel channels.
//
//   innermost: down = [leaky, conv]               up = [relu, convT, norm]
//   middle:    down = [leaky, conv, norm] subnet  up = [relu, convT, norm]
//   outermost: down = [conv]              subnet  up = [relu, convT, tanh]
func NewBlock(p *nn.Path, spec BlockSpec, subnet *Block) (*Block, error) {
	switch spec.Kind {
	case Innermost:
		if subnet != nil {
			return nil, errors.New("innermost block cannot have a subnet")
		}
	case Middle, Outermost:
		if subnet == nil {
			return nil, errors.Errorf("%v block needs a subnet", spec.Kind)
		}
		if got := subnet.OutputChannel(); got != spec.UpInChannel() {
			return nil, errors.Errorf("%v: subnet outputs %d channels, up convolution expects %d", spec, got, spec.UpInChannel())
		}
	default:
		return nil, errors.Errorf("invalid block kind: %v", spec.Kind)
	}

	downconv := base.Conv2d(p.Sub("downconv"), spec.InputChannel, spec.InChannel, 4, 1, 2)
	upconv := base.ConvTranspose2d(p.Sub("upconv"), spec.UpInChannel(), spec.OutChannel, 4, 1, 2)

	var down ts.ModuleT
	up := nn.SeqT()
	switch spec.Kind {
	case Innermost:
		seq := nn.SeqT()
		seq.AddFn(base.LeakyRelu(base.LeakySlope))
		seq.Add(downconv)
		down = seq

		up.AddFn(base.Relu())
		up.AddFn(base.Module(upconv))
		up.Add(base.NewInstanceNorm2D(spec.OutChannel))
	case Outermost:
		// a single-layer SequentialT does not forward, use the conv as is
		down = downconv

		up.AddFn(base.Relu())
		up.AddFn(base.Module(upconv))
		up.AddFn(base.Tanh())
	default:
		seq := nn.SeqT()
		seq.AddFn(base.LeakyRelu(base.LeakySlope))
		seq.Add(downconv)
		seq.Add(base.NewInstanceNorm2D(spec.InChannel))
		down = seq

		up.AddFn(base.Relu())
		up.AddFn(base.Module(upconv))
		up.Add(base.NewInstanceNorm2D(spec.OutChannel))
	}

	klog.V(1).Infof("unet block: %v", spec)

	return &Block{
		BlockSpec: spec,
		down:      down,
		subnet:    subnet,
		up:        up,
	}, nil
}

// Subnet returns the nested block, nil for the innermost one.
func (b *Block) Subnet() *Block {
	return b.subnet
}

// ForwardT implements ts.ModuleT for Block.
// x should be in shape [B InputChannel H W]; H and W are halved by the down
// path and doubled back by the up path.
func (b *Block) ForwardT(x *ts.Tensor, train bool) *ts.Tensor {
	down := b.down.ForwardT(x, train)
	mid := down
	if b.subnet != nil {
		mid = b.subnet.ForwardT(down, train)
		down.MustDrop()
	}
	up := b.up.ForwardT(mid, train)
	mid.MustDrop()

	if b.Kind == Outermost {
		return up
	}

	// skip connection carries x itself, not leaky(x) as an in-place
	// activation would leave it
	out := ts.MustCat([]ts.Tensor{*x, *up}, 1)
	up.MustDrop()

	return out
}
