package models

import (
	"bytes"
	"errors"

	json "github.com/goccy/go-json"
)

var ErrMalformedBaseline = errors.New("baseline is not an object with a members map")

// Baseline is the only state carried between invocations: each member's
// last star timestamp as of the previous snapshot.
type Baseline struct {
	Members map[string]StarTime `json:"members"`
}

// LastStar returns the recorded timestamp, or NoStars for unknown members.
func (b *Baseline) LastStar(id string) StarTime {
	if b == nil {
		return NoStars
	}
	return b.Members[id]
}

func (b *Baseline) Has(id string) bool {
	if b == nil {
		return false
	}
	_, ok := b.Members[id]
	return ok
}

func (b *Baseline) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Members)
}

// ParseBaseline decodes a persisted baseline. Empty input and JSON null mean
// "no baseline" and return nil without error.
func ParseBaseline(data []byte) (*Baseline, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	var raw struct {
		Members *map[string]StarTime `json:"members"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Join(ErrMalformedBaseline, err)
	}
	if raw.Members == nil || *raw.Members == nil {
		return nil, ErrMalformedBaseline
	}
	return &Baseline{Members: *raw.Members}, nil
}
