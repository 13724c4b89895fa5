package trajectory

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.uber.org/multierr"
)

const commentPrefix = "#"

// Read parses a pose file: one pose per line, fields separated by whitespace, no header.
// Blank lines and lines starting with '#' are skipped. Rows are returned whatever their width
// so that shape checking stays with the caller.
func Read(r io.Reader) (Trajectory, error) {
	var traj Trajectory
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		fields := strings.Fields(line)
		row := make([]float64, len(fields))
		for i, field := range fields {
			v, err := cast.ToFloat64E(field)
			if err != nil {
				return nil, NewParseError(lineNum, i+1, field, err)
			}
			row[i] = v
		}
		traj = append(traj, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "error reading trajectory")
	}
	return traj, nil
}

// ReadFile reads the pose file at path.
func ReadFile(path string) (traj Trajectory, err error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open trajectory file %q", path)
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()

	traj, err = Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "in %q", path)
	}
	return traj, nil
}
