package billfold

import (
	"os"
	"time"
)

// Now is the clock every record stamp and relative date resolves against.
// It reads BILLFOLD_TESTING_NOW so documentation scenarios can run on a
// stable fake date.
func Now() time.Time {
	if v := os.Getenv("BILLFOLD_TESTING_NOW"); v != "" {
		t, err := time.Parse("2006-01-02 15:04:05", v)
		if err != nil {
			panic(err)
		}
		return t
	}
	return time.Now()
}
