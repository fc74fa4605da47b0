package wav

import "testing"

func float32ApproxEqual(a, b, epsilon float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}

	return d <= epsilon
}

func TestClampFloat32(t *testing.T) {
	tests := []struct {
		name     string
		value    float32
		min, max float32
		want     float32
	}{
		{"below min", -2, -1, 1, -1},
		{"at min", -1, -1, 1, -1},
		{"in range", 0.5, -1, 1, 0.5},
		{"at max", 1, -1, 1, 1},
		{"above max", 2, -1, 1, 1},
		{"zero", 0, -1, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clampFloat32(tt.value, tt.min, tt.max)
			if got != tt.want {
				t.Fatalf("clampFloat32(%f, %f, %f)=%f, want %f", tt.value, tt.min, tt.max, got, tt.want)
			}
		})
	}
}

func TestNormalizePCMInt(t *testing.T) {
	tests := []struct {
		name     string
		sample   int
		bitDepth int
		want     float32
	}{
		{"16bit max", 32767, 16, 0.999969482},
		{"16bit min", -32768, 16, -1},
		{"16bit zero", 0, 16, 0},
		{"24bit min", -8388608, 24, -1},
		{"24bit half", 4194304, 24, 0.5},
		{"32bit min", -2147483648, 32, -1},
		{"unsupported bit depth", 100, 48, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizePCMInt(tt.sample, tt.bitDepth)
			if !float32ApproxEqual(got, tt.want, 1e-4) {
				t.Fatalf("normalizePCMInt(%d, %d)=%f, want %f", tt.sample, tt.bitDepth, got, tt.want)
			}
		})
	}
}

func TestTruncateScaled(t *testing.T) {
	tests := []struct {
		name  string
		value float32
		scale float64
		want  int32
	}{
		{"positive truncates down", 0.99999, fullScaleInt16, 32766},
		{"negative truncates up", -0.99999, fullScaleInt16, -32766},
		{"full scale", 1, fullScaleInt24, 8388607},
		{"clamped below", -3, fullScaleInt24, -8388607},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateScaled(tt.value, tt.scale)
			if got != tt.want {
				t.Fatalf("truncateScaled(%f, %f)=%d, want %d", tt.value, tt.scale, got, tt.want)
			}
		})
	}
}
