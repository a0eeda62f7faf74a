package layout

import (
	"fmt"
)

type Dimension struct {
	Lines   int64
	Columns int64
}

func (d Dimension) Max(other Dimension) Dimension {
	if other.Lines > d.Lines {
		d.Lines = other.Lines
	}
	if other.Columns > d.Columns {
		d.Columns = other.Columns
	}
	return d
}

func (d Dimension) Size() int64 {
	return d.Lines * d.Columns
}

func (d Dimension) String() string {
	return fmt.Sprintf("%dx%d", d.Lines, d.Columns)
}
