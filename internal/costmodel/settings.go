package costmodel

import (
	"fmt"
	"math"
	"strconv"
)

// Configuration keys understood by the model
const (
	KeySortMB            = "io.sort.mb"
	KeySortFactor        = "io.sort.factor"
	KeySpillPercent      = "io.sort.spill.percent"
	KeyReduceTasks       = "mapred.reduce.tasks"
	KeyCompressMapOutput = "mapred.compress.map.output"
	KeyCompressionCodec  = "mapred.map.output.compression.codec"
)

// Settings are the job configuration values the model reacts to
type Settings struct {
	SortMB            float64
	SortFactor        float64
	SpillPercent      float64
	ReduceTasks       float64
	CompressMapOutput bool
	Codec             string
}

// DefaultSettings returns the framework defaults used for unset keys
func DefaultSettings() Settings {
	return Settings{
		SortMB:       100,
		SortFactor:   10,
		SpillPercent: 0.8,
		ReduceTasks:  1,
		Codec:        "default",
	}
}

// InvalidSettingError reports a configuration value the model cannot use
type InvalidSettingError struct {
	Key    string
	Value  string
	Reason string
}

func (e *InvalidSettingError) Error() string {
	return fmt.Sprintf("invalid setting %s=%q: %s", e.Key, e.Value, e.Reason)
}

// ParseSettings reads the known keys from a decoded configuration.
// Unknown keys are ignored and missing keys keep their defaults.
func ParseSettings(config map[string]string) (Settings, error) {
	s := DefaultSettings()

	numeric := []struct {
		key string
		dst *float64
		min float64
	}{
		{KeySortMB, &s.SortMB, 1},
		{KeySortFactor, &s.SortFactor, 2},
		{KeyReduceTasks, &s.ReduceTasks, 1},
	}
	for _, n := range numeric {
		raw, ok := config[n.key]
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return Settings{}, &InvalidSettingError{Key: n.key, Value: raw, Reason: "not a finite number"}
		}
		if v < n.min {
			return Settings{}, &InvalidSettingError{Key: n.key, Value: raw, Reason: fmt.Sprintf("must be at least %v", n.min)}
		}
		*n.dst = v
	}

	if raw, ok := config[KeySpillPercent]; ok {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || !(v > 0 && v <= 1) {
			return Settings{}, &InvalidSettingError{Key: KeySpillPercent, Value: raw, Reason: "must be in (0, 1]"}
		}
		s.SpillPercent = v
	}

	if raw, ok := config[KeyCompressMapOutput]; ok {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return Settings{}, &InvalidSettingError{Key: KeyCompressMapOutput, Value: raw, Reason: "not a boolean"}
		}
		s.CompressMapOutput = v
	}

	if raw, ok := config[KeyCompressionCodec]; ok {
		if _, known := codecs[raw]; !known {
			return Settings{}, &InvalidSettingError{Key: KeyCompressionCodec, Value: raw, Reason: "unknown codec"}
		}
		s.Codec = raw
	}

	return s, nil
}

// codec scales the profile's compression ratio and CPU cost
type codec struct {
	ratioScale float64
	cpuScale   float64
}

var codecs = map[string]codec{
	"default": {ratioScale: 1, cpuScale: 1},
	"gzip":    {ratioScale: 0.8, cpuScale: 2.2},
	"snappy":  {ratioScale: 1.3, cpuScale: 0.45},
	"lz4":     {ratioScale: 1.25, cpuScale: 0.35},
}
