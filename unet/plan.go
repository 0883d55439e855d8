package unet

import (
	"fmt"

	"github.com/pkg/errors"
)

// BlockKind tags the mode of a UnetBlock.
type BlockKind int

const (
	// Middle blocks downsample, run their subnet, upsample and concatenate
	// the result with their input.
	Middle BlockKind = iota
	// Innermost block has no subnet: down then straight back up.
	Innermost
	// Outermost block maps the image in and out. It is the only one
	// without a skip concatenation at its own level.
	Outermost
)

func (k BlockKind) String() string {
	switch k {
	case Middle:
		return "middle"
	case Innermost:
		return "innermost"
	case Outermost:
		return "outermost"
	default:
		return fmt.Sprintf("BlockKind(%d)", int(k))
	}
}

const (
	// MinDownsampling is the smallest number of U-Net levels: innermost,
	// three channel transitions and outermost.
	MinDownsampling int64 = 5

	// ImageChannels is the number of channels of input sketches and
	// generated images (RGB).
	ImageChannels int64 = 3
)

// BlockSpec describes the channel layout of one UnetBlock.
//
// InChannel and OutChannel are named from the transposed convolution side:
// the down convolution maps InputChannel -> InChannel and the up convolution
// maps InChannel (2*InChannel when a subnet output is concatenated) -> OutChannel.
type BlockSpec struct {
	Kind         BlockKind
	InChannel    int64
	OutChannel   int64
	InputChannel int64
}

// NewBlockSpec creates a BlockSpec. InputChannel defaults to OutChannel.
func NewBlockSpec(kind BlockKind, inChannel, outChannel int64, inputChannelOpt ...int64) BlockSpec {
	inputChannel := outChannel
	if len(inputChannelOpt) > 0 {
		inputChannel = inputChannelOpt[0]
	}

	return BlockSpec{
		Kind:         kind,
		InChannel:    inChannel,
		OutChannel:   outChannel,
		InputChannel: inputChannel,
	}
}

// UpInChannel returns number of channels fed to the up (transposed) convolution.
func (s BlockSpec) UpInChannel() int64 {
	if s.Kind == Innermost {
		return s.InChannel
	}
	return 2 * s.InChannel
}

// OutputChannel returns number of channels of the block output.
func (s BlockSpec) OutputChannel() int64 {
	if s.Kind == Outermost {
		return s.OutChannel
	}
	return s.InputChannel + s.OutChannel
}

func (s BlockSpec) String() string {
	return fmt.Sprintf("%v(input=%d in=%d out=%d)", s.Kind, s.InputChannel, s.InChannel, s.OutChannel)
}

// Plan returns the block layout of a U-Net, innermost block first.
//
// The stack is 1 innermost 8F block, numDownsampling-5 middle 8F blocks,
// the 8F->4F, 4F->2F, 2F->F transitions and the outermost F->3 block,
// numDownsampling levels in total.
func Plan(numDownsampling, filterSize int64) ([]BlockSpec, error) {
	if filterSize <= 0 {
		return nil, errors.Errorf("filter size must be positive. Got %d", filterSize)
	}
	if numDownsampling < MinDownsampling {
		return nil, errors.Errorf("number of downsampling layers must be >= %d. Got %d", MinDownsampling, numDownsampling)
	}

	f := filterSize
	specs := make([]BlockSpec, 0, numDownsampling)
	specs = append(specs, NewBlockSpec(Innermost, f*8, f*8))
	for i := int64(0); i < numDownsampling-MinDownsampling; i++ {
		specs = append(specs, NewBlockSpec(Middle, f*8, f*8))
	}
	specs = append(specs,
		NewBlockSpec(Middle, f*8, f*4),
		NewBlockSpec(Middle, f*4, f*2),
		NewBlockSpec(Middle, f*2, f),
		NewBlockSpec(Outermost, f, ImageChannels, ImageChannels),
	)

	return specs, nil
}

// CheckInputSize checks that an image of size h x w goes through
// numDownsampling stride-2 levels and back to the same size.
func CheckInputSize(h, w, numDownsampling int64) error {
	unit := int64(1) << uint(numDownsampling)
	if h <= 0 || w <= 0 || h%unit != 0 || w%unit != 0 {
		return errors.Errorf("input size %dx%d must be a positive multiple of %d (2^%d)", h, w, unit, numDownsampling)
	}
	return nil
}
