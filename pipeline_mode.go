package hqx

// ExecMode selects the backend a Filter runs its passes on.
type ExecMode int

const (
	// ModeAuto uses the GPU accelerator for large outputs when one is
	// registered, and the CPU otherwise. The GPU works on 8-bit texels, so
	// float sources that are not 8-bit exact can classify differently
	// than on the CPU.
	ModeAuto ExecMode = iota

	// ModeCPU always runs the software backend.
	ModeCPU

	// ModeGPU requires a registered accelerator. Passes the accelerator
	// declines still fall back to the CPU.
	ModeGPU
)

// String returns the mode name.
func (m ExecMode) String() string {
	switch m {
	case ModeAuto:
		return "Auto"
	case ModeCPU:
		return "CPU"
	case ModeGPU:
		return "GPU"
	default:
		return "Unknown"
	}
}

// ParseExecMode parses "auto", "cpu" or "gpu" (case-sensitive, as used on
// the command line).
func ParseExecMode(s string) (ExecMode, bool) {
	switch s {
	case "auto", "":
		return ModeAuto, true
	case "cpu":
		return ModeCPU, true
	case "gpu":
		return ModeGPU, true
	default:
		return ModeAuto, false
	}
}

// gpuMinPixels is the output size below which upload and readback cost
// more than the CPU pass.
const gpuMinPixels = 256 * 256

// SelectMode resolves ModeAuto for a pass producing outputPixels pixels.
//
// Heuristics:
//   - No accelerator: CPU
//   - Small outputs (< 256x256): CPU, transfer overhead dominates
//   - Otherwise: GPU
func SelectMode(outputPixels int, hasGPU bool) ExecMode {
	if !hasGPU {
		return ModeCPU
	}
	if outputPixels < gpuMinPixels {
		return ModeCPU
	}
	return ModeGPU
}
