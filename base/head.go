package base

import "github.com/sugarme/gotch/nn"

// NewPatchHead creates the scoring head of a PatchGAN discriminator: a
// convolution down to a single channel followed by Sigmoid, so every output
// cell is the realism score of one receptive-field patch.
func NewPatchHead(p *nn.Path, cIn, ksize, padding int64) *nn.SequentialT {
	seq := nn.SeqT()
	seq.Add(Conv2d(p.Sub("0"), cIn, 1, ksize, padding, 1))
	seq.AddFn(Sigmoid())

	return seq
}
