package tracker

import "time"

// Now returns the current time. Tests replace it to pin session timestamps.
var Now = time.Now
