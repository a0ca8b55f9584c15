package entities

import (
	"strconv"
	"strings"
	"time"
)

const (
	secondsPerDay = 24 * 3600

	careWindowStartSec = 19 * 3600 // 19:00, default start of the night-care window
	careWindowEndSec   = 9 * 3600  // 9:00, end of the night-care window
	eveningCutoffSec   = 18 * 3600
)

// OpeningPeriod is one entry of a facility's weekly schedule, using the
// places API convention: days 0–6 with 0=Sunday, times as "HHMM" strings.
// A period whose open and close times are equal denotes 24-hour operation.
type OpeningPeriod struct {
	OpenDay   int    `json:"open_day"`
	OpenTime  string `json:"open_time"`
	CloseDay  int    `json:"close_day"`
	CloseTime string `json:"close_time"`
}

// TimeWindow is the span of time for which night/emergency coverage is
// being sought, in seconds since local midnight of the reference day.
// EndSec exceeds 86400 when the window spills into the next calendar day.
type TimeWindow struct {
	StartSec int
	EndSec   int
	Weekday  int // 0=Sunday, day the window starts on
}

// ComputeCareWindow derives the care window from the current wall-clock
// time:
//   - 18:00–18:59: the upcoming night, 19:00 until 9:00 next day
//   - 19:00 onward, or before 9:00: from now until the next 9:00
//   - daytime: the system still searches, using the default night window
func ComputeCareWindow(now time.Time) TimeWindow {
	s := now.Hour()*3600 + now.Minute()*60 + now.Second()
	w := TimeWindow{Weekday: int(now.Weekday())}

	switch {
	case s >= eveningCutoffSec && s < careWindowStartSec:
		w.StartSec = careWindowStartSec
		w.EndSec = careWindowEndSec + secondsPerDay
	case s >= careWindowStartSec || s < careWindowEndSec:
		w.StartSec = s
		if s < careWindowEndSec {
			w.EndSec = careWindowEndSec
		} else {
			w.EndSec = careWindowEndSec + secondsPerDay
		}
	default:
		w.StartSec = careWindowStartSec
		w.EndSec = careWindowEndSec + secondsPerDay
	}

	return w
}

// IsOpenDuringWindow reports whether any period of the weekly schedule
// overlaps the window. Unknown hours (no periods) count as open — a
// hospital is shown, never hidden, when we cannot tell. 24-hour periods
// always match, and periods spanning midnight are conservatively treated
// as covering the night window.
func IsOpenDuringWindow(periods []OpeningPeriod, window TimeWindow) bool {
	if len(periods) == 0 {
		return true
	}

	for _, p := range periods {
		oh, om, ok := parseHHMM(p.OpenTime)
		if !ok {
			continue
		}
		ch, cm, ok := parseHHMM(p.CloseTime)
		if !ok {
			continue
		}

		// 24-hour operation
		if oh == ch && om == cm {
			return true
		}

		// Spans midnight
		if oh > ch || (oh == ch && om > cm) {
			return true
		}

		openAbs := ((p.OpenDay-window.Weekday+7)%7)*secondsPerDay + oh*3600 + om*60
		closeAbs := ((p.CloseDay-window.Weekday+7)%7)*secondsPerDay + ch*3600 + cm*60

		if openAbs < window.EndSec && closeAbs > window.StartSec {
			return true
		}
	}

	return false
}

var dayNames = [7]string{"日", "月", "火", "水", "木", "金", "土"}

// FormatSchedule renders a weekly schedule as a compact human-readable
// string: days sharing the same hours are grouped, consecutive runs are
// collapsed into ranges, and groups are separated by newlines.
func FormatSchedule(periods []OpeningPeriod) string {
	for _, p := range periods {
		if p.OpenTime != "" && p.OpenTime == p.CloseTime {
			return "24時間対応"
		}
	}

	daySchedule := make(map[int][]string)
	for _, p := range periods {
		oh, om, ok := parseHHMM(p.OpenTime)
		if !ok {
			continue
		}
		ch, cm, ok := parseHHMM(p.CloseTime)
		if !ok {
			continue
		}
		rangeText := formatTimeOfDay(oh, om) + "〜" + formatTimeOfDay(ch, cm)
		daySchedule[p.OpenDay] = append(daySchedule[p.OpenDay], rangeText)
	}

	if len(daySchedule) == 0 {
		return "営業時間不明"
	}

	// Group days that share an identical set of ranges, keeping the
	// groups ordered by their first day of week.
	type timeGroup struct {
		times string
		days  []int
	}
	var groups []*timeGroup
	byTimes := make(map[string]*timeGroup)
	for day := 0; day < 7; day++ {
		times, ok := daySchedule[day]
		if !ok {
			continue
		}
		key := strings.Join(times, "・")
		g, ok := byTimes[key]
		if !ok {
			g = &timeGroup{times: key}
			byTimes[key] = g
			groups = append(groups, g)
		}
		g.days = append(g.days, day)
	}

	lines := make([]string, 0, len(groups))
	for _, g := range groups {
		lines = append(lines, collapseDayRuns(g.days)+": "+g.times)
	}

	return strings.Join(lines, "\n")
}

// collapseDayRuns renders a sorted day list as ranges: a single day by
// name, an adjacent pair joined by a middle dot, three or more
// consecutive days as a wave-dash range.
func collapseDayRuns(days []int) string {
	var ranges []string
	start, end := days[0], days[0]

	flush := func() {
		switch {
		case start == end:
			ranges = append(ranges, dayNames[start])
		case end == start+1:
			ranges = append(ranges, dayNames[start]+"・"+dayNames[end])
		default:
			ranges = append(ranges, dayNames[start]+"〜"+dayNames[end])
		}
	}

	for i := 1; i < len(days); i++ {
		if days[i] == end+1 {
			end = days[i]
			continue
		}
		flush()
		start, end = days[i], days[i]
	}
	flush()

	return strings.Join(ranges, "・")
}

// formatTimeOfDay renders "9時" for whole hours and "9:30" otherwise.
func formatTimeOfDay(hours, minutes int) string {
	if minutes == 0 {
		return strconv.Itoa(hours) + "時"
	}
	return strconv.Itoa(hours) + ":" + twoDigits(minutes)
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func parseHHMM(s string) (hours, minutes int, ok bool) {
	if len(s) != 4 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(s[:2])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(s[2:])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}
