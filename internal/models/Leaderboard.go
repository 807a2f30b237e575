package models

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
)

var ErrNoMembers = errors.New("leaderboard has no member collection")

type Completion struct {
	GetStarTS StarTime `json:"get_star_ts"`
}

type Member struct {
	ID                 string                           `json:"-"`
	Name               *string                          `json:"name"`
	Stars              Score                            `json:"stars"`
	LocalScore         Score                            `json:"local_score"`
	GlobalScore        Score                            `json:"global_score"`
	LastStarTS         StarTime                         `json:"last_star_ts"`
	CompletionDayLevel map[string]map[string]Completion `json:"completion_day_level"`
}

// DisplayName falls back to the label the leaderboard itself shows for
// members without a public name.
func (m *Member) DisplayName() string {
	if m.Name == nil || *m.Name == "" {
		return "(anonymous user #" + m.ID + ")"
	}
	return *m.Name
}

// Leaderboard is one snapshot of a private leaderboard.
// Only the member collection is decoded; owner_id and event changed type
// between leaderboard generations and nothing here reads them.
type Leaderboard struct {
	Members *MemberSet `json:"members"`
}

// Validate checks the shape the diff relies on: a member collection and
// numeric day and part keys.
func (l *Leaderboard) Validate() error {
	if l == nil || l.Members == nil {
		return ErrNoMembers
	}
	for _, m := range l.Members.All() {
		if m.ID == "" {
			return errors.New("member with empty id")
		}
		for day, parts := range m.CompletionDayLevel {
			if !isPositiveInt(day) {
				return fmt.Errorf("member %s: invalid day %q", m.ID, day)
			}
			for part := range parts {
				if !isPositiveInt(part) {
					return fmt.Errorf("member %s day %s: invalid part %q", m.ID, day, part)
				}
			}
		}
	}
	return nil
}

// Baseline projects the snapshot onto member id -> last star timestamp.
func (l *Leaderboard) Baseline() *Baseline {
	if l == nil || l.Members == nil {
		return nil
	}
	b := &Baseline{Members: make(map[string]StarTime, l.Members.Len())}
	for _, m := range l.Members.All() {
		b.Members[m.ID] = m.LastStarTS
	}
	return b
}

func DecodeLeaderboard(data []byte) (*Leaderboard, error) {
	var l Leaderboard
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, err
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// MemberSet keeps members in the order the payload listed them.
type MemberSet struct {
	order []string
	byID  map[string]*Member
}

func NewMemberSet(members ...*Member) *MemberSet {
	ms := &MemberSet{byID: make(map[string]*Member, len(members))}
	for _, m := range members {
		ms.put(m)
	}
	return ms
}

func (ms *MemberSet) put(m *Member) {
	if _, ok := ms.byID[m.ID]; !ok {
		ms.order = append(ms.order, m.ID)
	}
	ms.byID[m.ID] = m
}

func (ms *MemberSet) Len() int {
	return len(ms.order)
}

func (ms *MemberSet) Get(id string) (*Member, bool) {
	m, ok := ms.byID[id]
	return m, ok
}

func (ms *MemberSet) All() []*Member {
	out := make([]*Member, 0, len(ms.order))
	for _, id := range ms.order {
		out = append(out, ms.byID[id])
	}
	return out
}

func (ms *MemberSet) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("members: expected object, got %v", tok)
	}

	ms.order = nil
	ms.byID = make(map[string]*Member)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		id, ok := tok.(string)
		if !ok {
			return fmt.Errorf("members: unexpected key %v", tok)
		}
		var m Member
		if err := dec.Decode(&m); err != nil {
			return fmt.Errorf("member %s: %w", id, err)
		}
		m.ID = id
		ms.put(&m)
	}

	_, err = dec.Token()
	return err
}

func isPositiveInt(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n > 0
}
