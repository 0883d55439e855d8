package gan

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"github.com/sugarme/gotch/nn"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"

	"github.com/sugarme/sketchgan/patchgan"
	"github.com/sugarme/sketchgan/unet"
)

// Config holds hyperparameters of DCGAN.
type Config struct {
	Name            string `yaml:"name"`
	FilterSize      int64  `yaml:"filter_size"`
	NumDownsampling int64  `yaml:"num_downsampling"`
}

// DefaultConfig returns a 64-filter model with an 8-level generator.
func DefaultConfig() *Config {
	return &Config{
		Name:            "DC-GAN",
		FilterSize:      64,
		NumDownsampling: 8,
	}
}

// LoadConfig reads a YAML config file. Missing fields keep their default
// values.
func LoadConfig(path string) (*Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %q", path)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %q", path)
	}

	return cfg, nil
}

// DCGAN pairs a Generator and a Discriminator built with the same filter
// size. It has no combined forward: a training loop calls NetG and NetD
// separately.
type DCGAN struct {
	NetG *unet.Generator
	NetD *patchgan.Discriminator

	name string
}

// NewDCGAN creates DCGAN. Variables are created under `netG` and `netD`.
func NewDCGAN(p *nn.Path, cfg *Config) (*DCGAN, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	netD, err := patchgan.NewDiscriminator(p.Sub("netD"), cfg.FilterSize)
	if err != nil {
		return nil, errors.Wrap(err, "discriminator")
	}
	netG, err := unet.NewGenerator(p.Sub("netG"), cfg.NumDownsampling, cfg.FilterSize)
	if err != nil {
		return nil, errors.Wrap(err, "generator")
	}

	name := cfg.Name
	if name == "" {
		name = DefaultConfig().Name
	}

	klog.V(1).Infof("%s: filter size %d, %d downsampling levels", name, cfg.FilterSize, cfg.NumDownsampling)

	return &DCGAN{
		NetG: netG,
		NetD: netD,
		name: name,
	}, nil
}

// Name returns name of the model.
func (m *DCGAN) Name() string {
	return m.name
}
