package main

import (
	"flag"
	"path/filepath"

	"github.com/sugarme/gotch"
	"github.com/sugarme/gotch/nn"
	"k8s.io/klog/v2"

	"github.com/sugarme/sketchgan/gan"
)

// flag variables
var (
	ConfigPath string
	ModelPath  string
	InputPath  string
	LabelPath  string
	OutputPath string
	Cuda       bool
	task       string
	Device     gotch.Device
)

// model input
var (
	ImageSize int // images are cropped and resized to ImageSize x ImageSize
	Iters     int // number of forward passes of the bench task
)

func init() {
	flag.StringVar(&ConfigPath, "config", "", "specify YAML model config file. Defaults are used if empty.")
	flag.StringVar(&ModelPath, "model", "", "specify full path to model weight file. Weights are random if empty.")
	flag.StringVar(&InputPath, "input", "./sketch.png", "specify input sketch (generate) or image (score)")
	flag.StringVar(&LabelPath, "label", "./label.png", "specify conditioning image for the score task")
	flag.StringVar(&OutputPath, "output", "./output.png", "specify output image file")
	flag.BoolVar(&Cuda, "cuda", false, "specify whether using CUDA or not.")
	flag.StringVar(&task, "task", "model", "specify task to run: model, summary, generate, score, bench")
	flag.IntVar(&ImageSize, "size", 256, "specify image size")
	flag.IntVar(&Iters, "iters", 10, "specify number of forward passes to bench")
}

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	Device = gotch.CPU
	if Cuda {
		Device = gotch.NewCuda().CudaIfAvailable()
	}

	cfg := gan.DefaultConfig()
	if ConfigPath != "" {
		var err error
		cfg, err = gan.LoadConfig(absPath(ConfigPath))
		if err != nil {
			klog.Exitf("%+v", err)
		}
	}

	switch task {
	case "model":
		runCheckModel(cfg)
	case "summary":
		runSummary(cfg)
	case "generate":
		runGenerate(cfg)
	case "score":
		runScore(cfg)
	case "bench":
		runBench(cfg)
	default:
		klog.Exitf("Unknown 'task' name %q. Please specify valid 'task' flag to run.", task)
	}
}

// buildModel creates the model and loads its weights if -model is set.
func buildModel(cfg *gan.Config) (*nn.VarStore, *gan.DCGAN) {
	vs := nn.NewVarStore(Device)
	model, err := gan.NewDCGAN(vs.Root(), cfg)
	if err != nil {
		klog.Exitf("%+v", err)
	}

	if ModelPath != "" {
		err = vs.Load(absPath(ModelPath))
		if err != nil {
			klog.Exitf("load weights: %v", err)
		}
		klog.Infof("%s weights loaded from %s", model.Name(), ModelPath)
	}

	return vs, model
}

// helper to get absolute file path
func absPath(p string) string {
	fullpath, err := filepath.Abs(p)
	if err != nil {
		klog.Exit(err)
	}
	return fullpath
}
