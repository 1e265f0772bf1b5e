// Package gpu probes for a usable CUDA setup so transcription can pick
// between GPU and CPU inference without user configuration.
package gpu

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// cudaToolkitPaths are the conventional install locations checked when
// neither nvidia-smi nor the CUDA environment gives an answer.
var cudaToolkitPaths = []string{
	"/usr/local/cuda",
	"/opt/cuda",
	"/usr/cuda",
}

// Info describes the detected GPU, if any.
type Info struct {
	Available     bool
	DeviceCount   int
	DeviceName    string
	DriverVersion string
}

// Detector checks for CUDA-capable hardware.
type Detector struct {
	logger *zap.Logger
}

// NewDetector creates a Detector with a no-op logger.
func NewDetector() *Detector {
	return NewDetectorWithLogger(zap.NewNop())
}

// NewDetectorWithLogger creates a Detector that logs what it finds.
func NewDetectorWithLogger(logger *zap.Logger) *Detector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Detector{logger: logger}
}

// Detect probes for a GPU. nvidia-smi is authoritative; the CUDA environment
// and toolkit install paths are weaker fallbacks for containers where the
// driver tools are not on PATH. Absence of a GPU is a result, not an error.
func (d *Detector) Detect() Info {
	var info Info

	if err := d.queryNvidiaSMI(&info); err == nil {
		d.logResult("nvidia-smi", info)
		return info
	} else {
		d.logger.Debug("nvidia-smi probe failed", zap.Error(err))
	}

	if err := detectFromEnv(&info); err == nil {
		d.logResult("cuda environment", info)
		return info
	} else {
		d.logger.Debug("CUDA environment probe failed", zap.Error(err))
	}

	if err := detectFromToolkit(&info); err == nil {
		d.logResult("cuda toolkit", info)
		return info
	} else {
		d.logger.Debug("CUDA toolkit probe failed", zap.Error(err))
	}

	return Info{}
}

// Device returns the WhisperX device argument for this machine.
func (d *Detector) Device() string {
	if d.Detect().Available {
		return "cuda"
	}
	return "cpu"
}

func (d *Detector) logResult(source string, info Info) {
	d.logger.Info("GPU detection completed",
		zap.String("source", source),
		zap.Bool("available", info.Available),
		zap.Int("device_count", info.DeviceCount),
		zap.String("device_name", info.DeviceName),
		zap.String("driver_version", info.DriverVersion))
}

// queryNvidiaSMI counts GPUs and reads the first device's name and driver
// version.
func (d *Detector) queryNvidiaSMI(info *Info) error {
	listOut, err := exec.Command("nvidia-smi", "--list-gpus").Output()
	if err != nil {
		return fmt.Errorf("nvidia-smi unavailable: %w", err)
	}

	lines := strings.Split(strings.TrimSpace(string(listOut)), "\n")
	if len(lines) == 0 || lines[0] == "" {
		return fmt.Errorf("nvidia-smi reported no GPUs")
	}

	queryOut, err := exec.Command("nvidia-smi",
		"--query-gpu=name,driver_version", "--format=csv,noheader,nounits", "--id=0").Output()
	if err != nil {
		return fmt.Errorf("nvidia-smi device query failed: %w", err)
	}

	first := strings.SplitN(strings.TrimSpace(string(queryOut)), "\n", 2)[0]
	parts := strings.Split(first, ",")
	if len(parts) < 2 {
		return fmt.Errorf("unexpected nvidia-smi output: %s", first)
	}

	info.Available = true
	info.DeviceCount = len(lines)
	info.DeviceName = strings.TrimSpace(parts[0])
	info.DriverVersion = strings.TrimSpace(parts[1])
	return nil
}

// detectFromEnv reads the CUDA environment. CUDA_VISIBLE_DEVICES=-1
// explicitly hides every device, so it counts as a successful probe with no
// GPU.
func detectFromEnv(info *Info) error {
	visible := os.Getenv("CUDA_VISIBLE_DEVICES")
	path := os.Getenv("CUDA_PATH")

	if visible == "" && path == "" {
		return fmt.Errorf("no CUDA environment variables set")
	}

	if visible == "-1" {
		return nil
	}
	if visible != "" {
		info.DeviceCount = len(strings.Split(visible, ","))
		info.Available = info.DeviceCount > 0
		return nil
	}

	info.Available = true
	info.DeviceCount = 1
	return nil
}

// detectFromToolkit checks the conventional CUDA install directories. A
// toolkit on disk does not guarantee a working driver, but it is the best
// signal left at this point.
func detectFromToolkit(info *Info) error {
	for _, path := range cudaToolkitPaths {
		if _, err := os.Stat(path); err == nil {
			info.Available = true
			info.DeviceCount = 1
			return nil
		}
	}
	return fmt.Errorf("CUDA toolkit not found in standard locations")
}
