package base

import (
	"github.com/sugarme/gotch/nn"
	ts "github.com/sugarme/gotch/tensor"
	"k8s.io/klog/v2"
)

// LeakySlope is the negative slope used by every LeakyReLU in the models.
const LeakySlope = 0.2

// InstanceNormEps is added to the variance before normalizing.
const InstanceNormEps = 1e-5

// Conv2d creates Conv2D module.
func Conv2d(p *nn.Path, cIn, cOut, ksize, padding, stride int64) *nn.Conv2D {
	config := nn.DefaultConv2DConfig()
	config.Stride = []int64{stride, stride}
	config.Padding = []int64{padding, padding}

	return nn.NewConv2D(p, cIn, cOut, ksize, config)
}

// ConvTranspose2d creates ConvTranspose2D module with a square kernel.
func ConvTranspose2d(p *nn.Path, cIn, cOut, ksize, padding, stride int64) *nn.ConvTranspose2D {
	config := nn.DefaultConvTranspose2DConfig()
	config.Stride = []int64{stride, stride}
	config.Padding = []int64{padding, padding}

	return nn.NewConvTranspose2D(p, cIn, cOut, []int64{ksize, ksize}, config)
}

// Module wraps a nn.Module (no train flag) so that it can be added to a SequentialT.
func Module(m ts.Module) ts.ModuleT {
	return nn.NewFunc(func(xs *ts.Tensor) *ts.Tensor {
		return xs.Apply(m)
	})
}

// Relu is a ReLU activation layer.
func Relu() ts.ModuleT {
	return nn.NewFunc(func(xs *ts.Tensor) *ts.Tensor {
		return xs.MustRelu(false)
	})
}

// Tanh is a Tanh activation layer. Output is in [-1, 1].
func Tanh() ts.ModuleT {
	return nn.NewFunc(func(xs *ts.Tensor) *ts.Tensor {
		return xs.MustTanh(false)
	})
}

// Sigmoid is a Sigmoid activation layer. Output is in [0, 1].
func Sigmoid() ts.ModuleT {
	return nn.NewFunc(func(xs *ts.Tensor) *ts.Tensor {
		return xs.MustSigmoid(false)
	})
}

// LeakyRelu is a LeakyReLU activation layer with the given negative slope.
//
// It computes relu(x) + slope * (x - relu(x)), i.e x for x >= 0 and
// slope*x otherwise.
func LeakyRelu(slope float64) ts.ModuleT {
	return nn.NewFunc(func(xs *ts.Tensor) *ts.Tensor {
		pos := xs.MustRelu(false)
		neg := xs.MustSub(pos, false).MustMul1(ts.FloatScalar(slope), true)
		res := pos.MustAdd(neg, true)
		neg.MustDrop()

		return res
	})
}

// InstanceNorm normalizes each (sample, channel) plane to zero mean and unit
// variance over its spatial dims. It has no learnable parameters and keeps no
// running statistics, so train and eval behave the same.
type InstanceNorm struct {
	Features int64
	Eps      float64
}

// NewInstanceNorm2D creates InstanceNorm for inputs with `features` channels.
func NewInstanceNorm2D(features int64, epsOpt ...float64) *InstanceNorm {
	eps := InstanceNormEps
	if len(epsOpt) > 0 {
		eps = epsOpt[0]
	}

	return &InstanceNorm{Features: features, Eps: eps}
}

// ForwardT implements ts.ModuleT for InstanceNorm.
// x should be in shape [B C H W].
func (n *InstanceNorm) ForwardT(x *ts.Tensor, train bool) *ts.Tensor {
	// no affine weight/bias, no running stats
	return ts.MustInstanceNorm(x, ts.NewTensor(), ts.NewTensor(), ts.NewTensor(), ts.NewTensor(), true, 0.1, n.Eps, false)
}

// ConvNormLeaky creates a SequentialT composing of Conv2D, an optional
// InstanceNorm and a LeakyReLU activation.
func ConvNormLeaky(p *nn.Path, cIn, cOut, ksize, padding, stride int64, norm bool) *nn.SequentialT {
	seq := nn.SeqT()
	seq.Add(Conv2d(p.Sub("0"), cIn, cOut, ksize, padding, stride))
	if norm {
		seq.Add(NewInstanceNorm2D(cOut))
	}
	seq.AddFn(LeakyRelu(LeakySlope))

	klog.V(2).Infof("conv block: %d -> %d, k=%d s=%d p=%d norm=%v", cIn, cOut, ksize, stride, padding, norm)

	return seq
}
