package output

import "errors"

// ErrUnsupportedFormat is returned when no formatter matches the requested name.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// ErrEmptySchedule is returned by exporters when there are no rows to write.
var ErrEmptySchedule = errors.New("schedule is empty")
