// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"os"
	"strings"
	"sync"
	"time"
)

const DateLayout = "2006-01-02"

var (
	locOnce sync.Once
	appLoc  *time.Location
)

// AppLocation timezone sekolah:
// 1) APP_TIMEZONE
// 2) Fallback: Asia/Ho_Chi_Minh
// 3) Fallback terakhir: time.UTC
func AppLocation() *time.Location {
	locOnce.Do(func() {
		name := strings.TrimSpace(os.Getenv("APP_TIMEZONE"))
		if name == "" {
			name = "Asia/Ho_Chi_Minh"
		}
		if loc, err := time.LoadLocation(name); err == nil {
			appLoc = loc
			return
		}
		appLoc = time.UTC
	})
	return appLoc
}

// ParseDate "YYYY-MM-DD" → tengah malam UTC (nilai kolom DATE).
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// Today tanggal hari ini menurut timezone sekolah, dinormalisasi ke UTC midnight.
func Today() time.Time {
	return DateOf(time.Now())
}

// DateOf ambil komponen tanggal dari t (di timezone sekolah).
func DateOf(t time.Time) time.Time {
	lt := t.In(AppLocation())
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, time.UTC)
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateLayout)
}
