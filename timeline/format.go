package timeline

import (
	"fmt"
	"math"
)

// FormatTime renders seconds as MM:SS.d. Every component is floored, so 1.09
// renders as 00:01.0. Negative and non-finite input renders as zero.
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}

	minutes := int(math.Floor(seconds / 60))
	secs := int(math.Floor(math.Mod(seconds, 60)))
	decis := int(math.Floor(math.Mod(seconds, 1) * 10))

	return fmt.Sprintf("%02d:%02d.%d", minutes, secs, decis)
}
