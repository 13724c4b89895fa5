package evaluation

import (
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

const (
	// DefaultRPEDelta is the frame offset between the two poses of an RPE pair.
	DefaultRPEDelta = 1
	// DefaultKittiStepSize is the number of frames between consecutive KITTI segment starts.
	DefaultKittiStepSize = 10
)

var (
	// DefaultKittiSegmentLengths are the path lengths, in metres, used for the KITTI drift score.
	// Benchmark sequences such as TartanAir are short, so these are far below the classical
	// KITTI lengths.
	DefaultKittiSegmentLengths = []float64{5, 10, 15, 20, 25, 30, 35, 40}
	// KittiBenchmarkSegmentLengths are the segment lengths of the KITTI odometry devkit.
	KittiBenchmarkSegmentLengths = []float64{100, 200, 300, 400, 500, 600, 700, 800}
)

// Config holds the fixed evaluation parameters.
type Config struct {
	// RPEDelta is the frame offset used for relative pose error.
	RPEDelta int `json:"rpe_delta"`
	// KittiSegmentLengths are the travelled ground-truth distances, in metres, over which KITTI
	// drift is measured.
	KittiSegmentLengths []float64 `json:"kitti_segment_lengths"`
	// KittiStepSize is the number of frames between KITTI segment start indices.
	KittiStepSize int `json:"kitti_step_size"`
	// RequireKitti makes a trajectory too short for every KITTI segment length fail the whole
	// evaluation instead of omitting the KITTI score.
	RequireKitti bool `json:"require_kitti"`
	// ScaleRelativeMetrics applies the alignment scale to the estimate before RPE and KITTI.
	// It only has an effect when evaluating with scale.
	ScaleRelativeMetrics bool `json:"scale_relative_metrics"`
}

// DefaultConfig returns the configuration used by Evaluate.
func DefaultConfig() Config {
	return Config{
		RPEDelta:            DefaultRPEDelta,
		KittiSegmentLengths: append([]float64(nil), DefaultKittiSegmentLengths...),
		KittiStepSize:       DefaultKittiStepSize,
	}
}

// NewConfigFromAttributes decodes a loosely typed attribute map, e.g. parsed from a JSON config
// file, into a Config. Keys use the json field names; missing or zero fields take their defaults.
func NewConfigFromAttributes(attrs map[string]interface{}) (Config, error) {
	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &cfg,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(attrs); err != nil {
		return Config{}, errors.Wrap(err, "invalid evaluation config")
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.RPEDelta == 0 {
		cfg.RPEDelta = DefaultRPEDelta
	}
	if cfg.KittiStepSize == 0 {
		cfg.KittiStepSize = DefaultKittiStepSize
	}
	if len(cfg.KittiSegmentLengths) == 0 {
		cfg.KittiSegmentLengths = append([]float64(nil), DefaultKittiSegmentLengths...)
	}
}

// Validate reports every invalid field.
func (cfg Config) Validate() error {
	var err error
	if cfg.RPEDelta < 1 {
		err = multierr.Append(err, errors.Errorf("rpe_delta must be at least 1, got %d", cfg.RPEDelta))
	}
	if cfg.KittiStepSize < 1 {
		err = multierr.Append(err, errors.Errorf("kitti_step_size must be at least 1, got %d", cfg.KittiStepSize))
	}
	if len(cfg.KittiSegmentLengths) == 0 {
		err = multierr.Append(err, errors.New("kitti_segment_lengths must not be empty"))
	}
	for i, l := range cfg.KittiSegmentLengths {
		if !(l > 0) {
			err = multierr.Append(err, errors.Errorf("kitti_segment_lengths[%d] must be positive, got %v", i, l))
		}
	}
	return err
}
