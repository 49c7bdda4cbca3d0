package common

import (
	"fmt"
	"strconv"
	"strings"
)

// Minutes is a wall-clock time of day expressed as minutes from midnight.
// It marshals as "HH:MM" to match the column encoding of availability times.
type Minutes int

func (m *Minutes) Get() int { return int(*m) }

func (m Minutes) String() string { return m2t(int(m)) }

func (m *Minutes) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("\"%s\"", m2t(int(*m)))), nil
}

func (m *Minutes) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), "\"")
	if s == "null" || s == "" {
		return nil
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func m2t(m int) string {
	hours := m / 60
	minutes := m % 60
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

// ParseClock reads a wall-clock column value. Both "HH:MM" and "HH:MM:SS"
// occur in stored availability data; seconds are ignored.
func ParseClock(s string) (Minutes, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}

	if hours < 0 || hours > 24 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}

	return Minutes(hours*60 + minutes), nil
}
