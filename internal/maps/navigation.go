package maps

import (
	"fmt"
	"regexp"
)

var iosAgent = regexp.MustCompile(`(?i)iPhone|iPad|iPod`)

// NavigationURL returns a directions link suited to the caller's platform:
// Apple Maps on iOS, Google Maps directions elsewhere.
func NavigationURL(lat, lng float64, userAgent string) string {
	if iosAgent.MatchString(userAgent) {
		return fmt.Sprintf("maps://maps.apple.com/?daddr=%g,%g&dirflg=d", lat, lng)
	}
	return fmt.Sprintf("https://www.google.com/maps/dir/?api=1&destination=%g,%g", lat, lng)
}
