package services

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"aocbot/internal/models"
	"aocbot/internal/structures"
)

const (
	joinedFormat    = "\U0001F389 %s joined the board\n"
	completedFormat = "⭐ %s has completed day %s part %s at %s\n"
	timestampLayout = "2006-01-02 15:04:05 MST"
)

// Digest is the composed message plus counts of what went into it.
type Digest struct {
	Text   string
	Joined int
	Stars  int
}

type MessageComposer struct {
	location *time.Location
}

func NewMessageComposer(conf *structures.Config) (*MessageComposer, error) {
	location, err := time.LoadLocation(conf.Output.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", conf.Output.Timezone, err)
	}
	return &MessageComposer{location: location}, nil
}

func (mc *MessageComposer) FormatTimestamp(ts models.StarTime) string {
	return strings.TrimRight(ts.Time().In(mc.location).Format(timestampLayout), " \t")
}

// Compose lists members that joined since previous, then every star earned
// after the member's previous last star. A nil previous is treated as empty.
func (mc *MessageComposer) Compose(previous *models.Baseline, current *models.Leaderboard) Digest {
	var (
		sb     strings.Builder
		digest Digest
	)
	members := current.Members.All()

	for _, m := range members {
		if !previous.Has(m.ID) {
			fmt.Fprintf(&sb, joinedFormat, m.DisplayName())
			digest.Joined++
		}
	}

	for _, m := range members {
		lastStar := previous.LastStar(m.ID)
		if m.LastStarTS == lastStar {
			continue
		}
		for _, day := range numericKeys(m.CompletionDayLevel) {
			parts := m.CompletionDayLevel[day]
			for _, part := range numericKeys(parts) {
				ts := parts[part].GetStarTS
				if !ts.NewerThan(lastStar) {
					continue
				}
				fmt.Fprintf(&sb, completedFormat, m.DisplayName(), day, part, mc.FormatTimestamp(ts))
				digest.Stars++
			}
		}
	}

	digest.Text = sb.String()
	return digest
}

// numericKeys orders day and part keys by their integer value, so "9" comes
// before "17". Keys that are not integers sort last, by string.
func numericKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		return cmp.Or(cmp.Compare(keyValue(a), keyValue(b)), cmp.Compare(a, b))
	})
	return keys
}

func keyValue(k string) int {
	n, err := strconv.Atoi(k)
	if err != nil {
		return math.MaxInt
	}
	return n
}
