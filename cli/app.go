// Package cli contains the tartaneval command line application.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	scaleFlag        = "scale"
	configFlag       = "config"
	jsonFlag         = "json"
	debugFlag        = "debug"
	kittiLengthsFlag = "kitti-lengths"
)

// NewApp returns a new app with Writer set to out and ErrWriter set to errOut. Results are
// written to out and logs to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "tartaneval",
		Usage:           "score an estimated trajectory against ground truth",
		UsageText:       "tartaneval [options] <ground-truth-file> <estimate-file>",
		Description:     "Each file holds one pose per line as whitespace separated `x y z qx qy qz qw`.",
		Version:         buildVersion(),
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  scaleFlag,
				Value: true,
				Usage: "solve for a global scale when aligning, e.g. for monocular estimates",
			},
			&cli.StringFlag{
				Name:    configFlag,
				Aliases: []string{"c"},
				Usage:   "load evaluation configuration from JSON5 `FILE`",
			},
			&cli.Float64SliceFlag{
				Name:  kittiLengthsFlag,
				Usage: "KITTI segment lengths in metres, overriding the configuration",
			},
			&cli.BoolFlag{
				Name:  jsonFlag,
				Usage: "print the result as JSON",
			},
			&cli.BoolFlag{
				Name:    debugFlag,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Action: EvaluateAction,
	}
}
