/*
Determines the Execution Modes supported by the application.
  - adhoc: fetch from the kubeview API once, print the result and exit
  - periodic: re-fetch the namespace list every polling-interval-seconds and print each result
*/
package mode

import "strings"

const (
	AdHoc Mode = iota
	PeriodicPolling
)

var modeStr = []string{
	"adhoc",
	"periodic",
}

var Modes = []Mode{
	AdHoc,
	PeriodicPolling,
}

type Mode int

// Parse the Mode from the user specified string ("watch" is accepted as an alias of periodic). If no matches, we fallback to adhoc
func ParseMode(userStr string) Mode {
	switch strings.ToLower(strings.TrimSpace(userStr)) {
	case PeriodicPolling.String(), "watch":
		return PeriodicPolling
	default:
		return AdHoc
	}
}

// Convert the mode object to a string
func (o Mode) String() string {
	if int(o) >= len(modeStr) || o < 0 {
		return modeStr[0]
	}

	return modeStr[o]
}
