package wav

const (
	scalePCMInt16 = 32768.0
	scalePCMInt24 = 8388608.0
	scalePCMInt32 = 2147483648.0

	// float samples are scaled by the positive full scale on integer encode
	fullScaleInt16 = 32767.0
	fullScaleInt24 = 8388607.0
)

func clampFloat32(value, min, max float32) float32 {
	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// normalizePCMInt maps a signed integer sample to [-1, 1).
func normalizePCMInt(sample int, bitDepth int) float32 {
	switch bitDepth {
	case 16:
		return float32(float64(sample) / scalePCMInt16)
	case 24:
		return float32(float64(sample) / scalePCMInt24)
	case 32:
		return float32(float64(sample) / scalePCMInt32)
	default:
		return 0
	}
}
