package utils

import (
	"fmt"

	"github.com/hance08/bankcore/internal/constants"
)

// FormatFromCents renders an amount in minor units, e.g. -1505 as "-15.05".
func FormatFromCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/constants.CentsPerUnit, cents%constants.CentsPerUnit)
}
