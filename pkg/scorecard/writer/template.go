package writer

import (
	"io"
	"time"

	"github.com/ukaji3/scorecard-go/pkg/scorecard/sample"
)

// Template writes the sample scorecard as a workbook users can fill in.
func Template(w io.Writer, today time.Time) error {
	return Write(w, sample.Load(today).Tables(), nil)
}
