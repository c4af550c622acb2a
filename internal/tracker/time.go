package tracker

import (
	"time"

	"github.com/anchore/kubeview-client/internal/log"
)

// TrackFunctionTime logs, at debug level, how long has passed since start.
//
// Call it deferred at the top of the function being measured:
//
//	func fetch() {
//		defer TrackFunctionTime(time.Now(), "Fetching namespaces")
//		// do stuff
//	}
func TrackFunctionTime(start time.Time, msg string) {
	elapsed := time.Since(start)
	log.Debugf("%s took %s", msg, elapsed)
}
