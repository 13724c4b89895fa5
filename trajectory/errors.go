package trajectory

import "github.com/pkg/errors"

var (
	// ErrLengthMismatch is the cause of errors returned when ground truth and estimate have a
	// different number of poses.
	ErrLengthMismatch = errors.New("trajectory lengths differ")
	// ErrFormat is the cause of errors returned when a pose row is not made of exactly seven
	// finite numbers.
	ErrFormat = errors.New("malformed pose")
	// ErrInsufficientLength is the cause of errors returned when a trajectory is too short for
	// a metric to have any sample.
	ErrInsufficientLength = errors.New("trajectory too short")

	errNonFinite = errors.New("pose contains a non-finite value")
)

// NewLengthMismatchError returns an error for ground truth and estimate trajectories whose
// frame counts differ.
func NewLengthMismatchError(groundTruth, estimate int) error {
	return errors.Wrapf(ErrLengthMismatch, "ground truth has %d poses but estimate has %d", groundTruth, estimate)
}

// NewFieldCountError returns an error for a pose row that does not have PoseFields fields.
func NewFieldCountError(name string, row, fields int) error {
	return errors.Wrapf(ErrFormat, "%s pose %d has %d fields, expected %d", name, row, fields, PoseFields)
}

// NewParseError returns an error for a field that could not be read as a number.
func NewParseError(line, column int, field string, cause error) error {
	return errors.Wrapf(ErrFormat, "line %d column %d: cannot parse %q as a number: %v", line, column, field, cause)
}

// NewInsufficientLengthError returns an error for a metric that found no samples.
func NewInsufficientLengthError(metric string, poses int, detail string) error {
	return errors.Wrapf(ErrInsufficientLength, "%s has no samples for %d poses (%s)", metric, poses, detail)
}

// NewInvalidPoseError returns an error for a pose row whose values do not describe a pose.
func NewInvalidPoseError(name string, row int, cause error) error {
	return errors.Wrapf(ErrFormat, "%s pose %d: %v", name, row, cause)
}
