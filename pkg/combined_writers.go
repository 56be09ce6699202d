package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter writes to every underlying writer, even when some of them fail.
// Used to fan logs out to stdout and the rotated log file.
type CombinedWriter struct {
	Writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{Writers: writers}
}

// Write reports the smallest count written by any writer, len(p) when all of
// them took the whole buffer, and every writer error combined.
func (cw *CombinedWriter) Write(p []byte) (int, error) {
	n := len(p)
	var err error
	for _, w := range cw.Writers {
		written, werr := w.Write(p)
		if werr != nil {
			err = multierr.Append(err, werr)
		}
		n = min(n, written)
	}
	if n < len(p) && err == nil {
		err = io.ErrShortWrite
	}
	return n, err
}
