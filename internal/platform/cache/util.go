package cache

import (
	"time"
)

// TimeUntilNext8AM returns the duration until the next 08:00 Beijing
// time, shortly before the A-share session opens. Daily history cached
// with this TTL expires before the next trading day's data exists.
func TimeUntilNext8AM() time.Duration {
	loc, _ := time.LoadLocation("Asia/Shanghai")
	now := time.Now().In(loc)

	next8am := time.Date(now.Year(), now.Month(), now.Day(), 8, 0, 0, 0, loc)
	if now.After(next8am) {
		next8am = next8am.Add(24 * time.Hour)
	}
	return next8am.Sub(now)
}
