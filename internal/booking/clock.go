package booking

import (
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day without a time component, serialized as "2006-01-02".
type Date struct {
	Time time.Time
}

func ParseDate(str string) (Date, error) {
	t, err := time.Parse(dateLayout, str)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", str, err)
	}
	return Date{Time: t}, nil
}

func DateOf(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

func (d Date) Equal(other Date) bool {
	return d.Time.Year() == other.Time.Year() && d.Time.YearDay() == other.Time.YearDay()
}

func (d Date) IsZero() bool {
	return d.Time.IsZero()
}

func (d Date) String() string {
	return d.Time.Format(dateLayout)
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseDate(str)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// ClockTime is a minute-resolution time of day, serialized as "15:04".
type ClockTime struct {
	Minutes int // minutes since midnight
}

func ParseClock(str string) (ClockTime, error) {
	t, err := time.Parse("15:04", str)
	if err != nil {
		return ClockTime{}, fmt.Errorf("parse clock time %q: %w", str, err)
	}
	return ClockTime{Minutes: t.Hour()*60 + t.Minute()}, nil
}

func ClockOf(t time.Time) ClockTime {
	return ClockTime{Minutes: t.Hour()*60 + t.Minute()}
}

func (c ClockTime) Add(minutes int) ClockTime {
	return ClockTime{Minutes: c.Minutes + minutes}
}

func (c ClockTime) Before(other ClockTime) bool {
	return c.Minutes < other.Minutes
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Minutes/60, c.Minutes%60)
}

func (c *ClockTime) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseClock(str)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}
