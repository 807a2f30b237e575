package models

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
)

// StarTime is a star timestamp in epoch seconds. The zero value, NoStars,
// marks a member that has not earned a star yet.
type StarTime int64

const NoStars StarTime = 0

func (t StarTime) IsSet() bool {
	return t != NoStars
}

// NewerThan reports whether a star earned at t is new relative to prev.
// Every real timestamp is newer than NoStars.
func (t StarTime) NewerThan(prev StarTime) bool {
	if !prev.IsSet() {
		return true
	}
	return t > prev
}

func (t StarTime) Time() time.Time {
	return time.Unix(int64(t), 0)
}

// UnmarshalJSON accepts integers and numeric strings; older leaderboard
// payloads send "0" for members without stars.
func (t *StarTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = NoStars
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("star timestamp %s: %w", data, err)
		}
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("star timestamp %s: %w", data, err)
	}
	if v < 0 {
		return fmt.Errorf("star timestamp %s: negative", data)
	}
	*t = StarTime(v)
	return nil
}

// MarshalJSON writes NoStars as the string "0", the form older baselines use.
func (t StarTime) MarshalJSON() ([]byte, error) {
	if !t.IsSet() {
		return []byte(`"0"`), nil
	}
	return strconv.AppendInt(nil, int64(t), 10), nil
}
