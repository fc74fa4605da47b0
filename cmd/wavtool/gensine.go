package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	wav "github.com/cwbudde/pcmwav"
	"github.com/cwbudde/pcmwav/internal/config"
	"github.com/spf13/cobra"
)

var errInvalidSine = errors.New("invalid sine settings")

func newGenSineCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "gen-sine",
		Short: "Write a mono sine tone",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return genSine(output, activeCfg)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "output.wav", "filename to write to")

	return cmd
}

func genSine(path string, cfg config.Config) error {
	channels, err := sineChannels(cfg.Sine, cfg.Output)
	if err != nil {
		return err
	}

	slog.Info("generating sine",
		"path", path,
		"frequency", cfg.Sine.Frequency,
		"seconds", cfg.Sine.Seconds,
		"sample_rate", cfg.Output.SampleRate,
		"bit_depth", cfg.Output.BitDepth,
	)

	if err := wav.WriteFile(path, channels, cfg.Output.SampleRate, cfg.Output.BitDepth, nil); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}

	return nil
}

func sineChannels(sine config.SineConfig, out config.OutputConfig) (wav.Channels, error) {
	if sine.Frequency <= 0 || sine.Seconds <= 0 || sine.Amplitude <= 0 || sine.Amplitude > 1 {
		return nil, fmt.Errorf("%w: %+v", errInvalidSine, sine)
	}

	rate := float64(out.SampleRate)
	numSamples := int(rate * sine.Seconds)
	samples := make([]wav.Sample, numSamples)

	for i := range samples {
		v := sine.Amplitude * math.Sin(float64(i)/rate*sine.Frequency*2*math.Pi)
		samples[i] = pcmSample(v, out.BitDepth)
	}

	return wav.Channels{samples}, nil
}

// pcmSample scales v in [-1, 1] to an integer sample of the given depth.
func pcmSample(v float64, bitDepth int) wav.Sample {
	switch bitDepth {
	case 24:
		return wav.Int24(int32(v * 8388607))
	case 32:
		return wav.Int32(int32(v * math.MaxInt32))
	default:
		return wav.Int16(int16(v * 32767))
	}
}
