package utils

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Punch layouts accepted on the wire. Seconds are optional.
var punchLayouts = []string{"15:04:05", "15:04"}

// ParsePunch parses a time-of-day punch such as "09:00" or "17:30:15".
func ParsePunch(s string) (time.Time, error) {
	for _, layout := range punchLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time of day %q, expected HH:MM or HH:MM:SS", s)
}

// ComputeWorkHours derives the net worked duration for a day as "HH:MM".
// The elapsed time between start and end is reduced by the lunch break
// (lunchOut -> lunchIn) and the out break (out -> in); a break with either
// punch missing counts as zero. A negative net duration is clamped to zero.
func ComputeWorkHours(start, end string, lunchOut, lunchIn, out, in *string) (string, error) {
	startAt, err := ParsePunch(start)
	if err != nil {
		return "", err
	}
	endAt, err := ParsePunch(end)
	if err != nil {
		return "", err
	}

	total := endAt.Sub(startAt)

	lunch, err := breakDuration(lunchOut, lunchIn)
	if err != nil {
		return "", err
	}
	outBreak, err := breakDuration(out, in)
	if err != nil {
		return "", err
	}

	net := total - lunch - outBreak
	if net < 0 {
		logrus.WithFields(logrus.Fields{
			"start": start,
			"end":   end,
			"net":   net.String(),
		}).Warn("negative net work duration, clamping to zero")
		net = 0
	}

	minutes := int(net.Minutes())
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60), nil
}

func breakDuration(from, to *string) (time.Duration, error) {
	if from == nil || to == nil {
		return 0, nil
	}
	fromAt, err := ParsePunch(*from)
	if err != nil {
		return 0, err
	}
	toAt, err := ParsePunch(*to)
	if err != nil {
		return 0, err
	}
	return toAt.Sub(fromAt), nil
}
