// Package hours stores weekly working hours and answers "is it open now".
package hours

import (
	"time"
)

// Day is one weekday's hours. Weekday follows time.Weekday (0 is Sunday).
// A close time at or before the open time falls on the following day.
type Day struct {
	Weekday     int  `json:"weekday" validate:"min=0,max=6"`
	OpenHour    int  `json:"open_hour" validate:"min=0,max=23"`
	OpenMinute  int  `json:"open_minute" validate:"min=0,max=59"`
	CloseHour   int  `json:"close_hour" validate:"min=0,max=23"`
	CloseMinute int  `json:"close_minute" validate:"min=0,max=59"`
	IsClosed    bool `json:"is_closed"`
}

func (d Day) overnight() bool {
	return d.CloseHour*60+d.CloseMinute <= d.OpenHour*60+d.OpenMinute
}

// window returns the open and close instants of d for the calendar date of
// date, in date's location.
func (d Day) window(date time.Time) (open, close time.Time) {
	y, m, dd := date.Date()
	loc := date.Location()
	open = time.Date(y, m, dd, d.OpenHour, d.OpenMinute, 0, 0, loc)
	close = time.Date(y, m, dd, d.CloseHour, d.CloseMinute, 0, 0, loc)
	if d.overnight() {
		close = time.Date(y, m, dd+1, d.CloseHour, d.CloseMinute, 0, 0, loc)
	}
	return open, close
}

type Status struct {
	IsOpen        bool       `json:"is_open"`
	ClosesAt      *time.Time `json:"closes_at,omitempty"`
	ClosesAtLabel string     `json:"closes_at_label,omitempty"`
	NextOpen      *time.Time `json:"next_open,omitempty"`
	NextOpenLabel string     `json:"next_open_label,omitempty"`
	ClosedAllWeek bool       `json:"closed_all_week"`
}

// Evaluate reports the open status at now. A venue is open strictly after
// its open instant and strictly before its close instant. Yesterday's
// overnight window is honoured, so a Monday 18:00-02:00 venue is open at
// Tuesday 01:00. When closed, the next opening is searched over the
// following seven days.
func Evaluate(week []Day, now time.Time) Status {
	byDay := make(map[time.Weekday]Day, len(week))
	for _, d := range week {
		if !d.IsClosed {
			byDay[time.Weekday(d.Weekday)] = d
		}
	}
	if len(byDay) == 0 {
		return Status{ClosedAllWeek: true}
	}

	y, m, dd := now.Date()
	today := time.Date(y, m, dd, 0, 0, 0, 0, now.Location())

	for _, date := range []time.Time{today.AddDate(0, 0, -1), today} {
		d, ok := byDay[date.Weekday()]
		if !ok {
			continue
		}
		open, close := d.window(date)
		if now.After(open) && now.Before(close) {
			return Status{
				IsOpen:        true,
				ClosesAt:      &close,
				ClosesAtLabel: close.Format("15:04"),
			}
		}
	}

	for i := 0; i <= 7; i++ {
		date := today.AddDate(0, 0, i)
		d, ok := byDay[date.Weekday()]
		if !ok {
			continue
		}
		open, _ := d.window(date)
		if !open.Before(now) {
			return Status{
				NextOpen:      &open,
				NextOpenLabel: open.Format("Mon 15:04"),
			}
		}
	}

	return Status{ClosedAllWeek: true}
}
