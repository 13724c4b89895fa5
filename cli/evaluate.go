package cli

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"github.com/yosuke-furukawa/json5/encoding/json5"

	"go.viam.com/trajeval/evaluation"
	"go.viam.com/trajeval/logging"
	"go.viam.com/trajeval/trajectory"
)

// EvaluateAction reads the ground truth and estimate files named by the two arguments, evaluates
// them and prints the result.
func EvaluateAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return errors.Errorf("expected 2 arguments, <ground-truth-file> and <estimate-file>, got %d", c.NArg())
	}
	logger := newLogger(c)
	defer func() {
		//nolint:errcheck
		logger.Sync()
	}()

	cfg, err := loadConfig(c.String(configFlag))
	if err != nil {
		return err
	}
	if lengths := c.Float64Slice(kittiLengthsFlag); len(lengths) > 0 {
		cfg.KittiSegmentLengths = lengths
	}

	groundTruth, err := trajectory.ReadFile(c.Args().Get(0))
	if err != nil {
		return errors.Wrap(err, "could not read ground truth")
	}
	estimate, err := trajectory.ReadFile(c.Args().Get(1))
	if err != nil {
		return errors.Wrap(err, "could not read estimate")
	}
	logger.Debugw("read trajectories", "ground_truth", c.Args().Get(0), "estimate", c.Args().Get(1),
		"poses", groundTruth.Len())

	evaluator, err := evaluation.NewEvaluator(cfg, logger.Sublogger("evaluation"))
	if err != nil {
		return err
	}
	res, err := evaluator.Evaluate(groundTruth, estimate, c.Bool(scaleFlag))
	if err != nil {
		return err
	}

	if c.Bool(jsonFlag) {
		out, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		printf(c.App.Writer, "%s", out)
		return nil
	}
	printf(c.App.Writer, "%s", res.String())
	return nil
}

func newLogger(c *cli.Context) logging.Logger {
	logger := logging.NewBlankLogger("tartaneval")
	logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	if c.Bool(debugFlag) {
		logger.SetLevel(logging.DEBUG)
	} else {
		logger.SetLevel(logging.WARN)
	}
	return logger
}

// loadConfig returns the default configuration when path is empty, and otherwise the JSON5
// configuration at path.
func loadConfig(path string) (evaluation.Config, error) {
	if path == "" {
		return evaluation.DefaultConfig(), nil
	}
	//nolint:gosec
	data, err := os.ReadFile(path)
	if err != nil {
		return evaluation.Config{}, errors.Wrap(err, "could not read config")
	}
	var attrs map[string]interface{}
	if err := json5.Unmarshal(data, &attrs); err != nil {
		return evaluation.Config{}, errors.Wrapf(err, "could not parse config %s", path)
	}
	return evaluation.NewConfigFromAttributes(attrs)
}
