package services_test

import (
	"strings"
	"testing"

	"aocbot/internal/models"
	"aocbot/internal/services"
	"aocbot/internal/structures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newComposer(t *testing.T) *services.MessageComposer {
	t.Helper()
	mc, err := services.NewMessageComposer(&structures.Config{
		Output: structures.OutputConfig{Timezone: "Europe/Copenhagen"},
	})
	require.NoError(t, err)
	return mc
}

func strPtr(s string) *string { return &s }

func member(id, name string, last models.StarTime, days map[string]map[string]models.Completion) *models.Member {
	m := &models.Member{ID: id, LastStarTS: last, CompletionDayLevel: days}
	if name != "" {
		m.Name = strPtr(name)
	}
	return m
}

func star(ts models.StarTime) models.Completion {
	return models.Completion{GetStarTS: ts}
}

func board(members ...*models.Member) *models.Leaderboard {
	return &models.Leaderboard{Members: models.NewMemberSet(members...)}
}

func TestNewMessageComposer_UnknownTimezone(t *testing.T) {
	_, err := services.NewMessageComposer(&structures.Config{
		Output: structures.OutputConfig{Timezone: "Nowhere/Special"},
	})
	assert.Error(t, err)
}

func TestFormatTimestamp(t *testing.T) {
	mc := newComposer(t)
	assert.Equal(t, "2021-12-23 12:45:48 CET", mc.FormatTimestamp(1640259948))
	assert.Equal(t, "2021-07-01 14:00:00 CEST", mc.FormatTimestamp(1625140800))
}

func TestCompose_SteadyStateIsEmpty(t *testing.T) {
	mc := newComposer(t)
	current := board(
		member("1", "Some One", 1640259948, map[string]map[string]models.Completion{
			"23": {"2": star(1640259948)},
		}),
		member("2", "Idle", models.NoStars, nil),
	)

	digest := mc.Compose(current.Baseline(), current)
	assert.Equal(t, "", digest.Text)
	assert.Equal(t, 0, digest.Joined)
	assert.Equal(t, 0, digest.Stars)
}

func TestCompose_NewMemberJoinedOnce(t *testing.T) {
	mc := newComposer(t)
	previous := &models.Baseline{Members: map[string]models.StarTime{"1": models.NoStars}}
	current := board(
		member("1", "Old Timer", models.NoStars, nil),
		member("2", "New Comer", models.NoStars, nil),
	)

	digest := mc.Compose(previous, current)
	assert.Equal(t, "\U0001F389 New Comer joined the board\n", digest.Text)
	assert.Equal(t, 1, strings.Count(digest.Text, "joined the board"))
	assert.Equal(t, 1, digest.Joined)
}

func TestCompose_NewStarAfterBaseline(t *testing.T) {
	mc := newComposer(t)
	previous := &models.Baseline{Members: map[string]models.StarTime{"1": 1640242291}}
	current := board(member("1", "Some One", 1640259948, map[string]map[string]models.Completion{
		"23": {
			"1": star(1640242291),
			"2": star(1640259948),
		},
	}))

	digest := mc.Compose(previous, current)
	assert.Equal(t, "⭐ Some One has completed day 23 part 2 at 2021-12-23 12:45:48 CET\n", digest.Text)
	assert.Equal(t, 1, digest.Stars)
}

func TestCompose_SentinelIsOlderThanEveryStar(t *testing.T) {
	mc := newComposer(t)
	previous := &models.Baseline{Members: map[string]models.StarTime{"1": models.NoStars}}
	current := board(member("1", "First Timer", 1638336000, map[string]map[string]models.Completion{
		"1": {"1": star(1638335000), "2": star(1638336000)},
	}))

	digest := mc.Compose(previous, current)
	assert.Equal(t, 2, digest.Stars)
	assert.Equal(t, 0, digest.Joined)
}

func TestCompose_NumericDayAndPartOrder(t *testing.T) {
	mc := newComposer(t)
	previous := &models.Baseline{Members: map[string]models.StarTime{"1": models.NoStars}}
	current := board(member("1", "Sorter", 1640259948, map[string]map[string]models.Completion{
		"23": {"2": star(1640259948), "1": star(1640259000)},
		"17": {"1": star(1639730000)},
		"9":  {"1": star(1639040000)},
	}))

	digest := mc.Compose(previous, current)
	lines := strings.Split(strings.TrimSuffix(digest.Text, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "day 9 part 1")
	assert.Contains(t, lines[1], "day 17 part 1")
	assert.Contains(t, lines[2], "day 23 part 1")
	assert.Contains(t, lines[3], "day 23 part 2")
}

func TestCompose_JoinedLinesPrecedeStarsInMemberOrder(t *testing.T) {
	mc := newComposer(t)
	previous := &models.Baseline{Members: map[string]models.StarTime{"5": 100}}
	current := board(
		member("9", "Zulu", models.NoStars, nil),
		member("5", "Mike", 200, map[string]map[string]models.Completion{"1": {"1": star(200)}}),
		member("3", "Alpha", 300, map[string]map[string]models.Completion{"2": {"1": star(300)}}),
	)

	digest := mc.Compose(previous, current)
	lines := strings.Split(strings.TrimSuffix(digest.Text, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "\U0001F389 Zulu joined the board", lines[0])
	assert.Equal(t, "\U0001F389 Alpha joined the board", lines[1])
	assert.Contains(t, lines[2], "Mike has completed day 1 part 1")
	assert.Contains(t, lines[3], "Alpha has completed day 2 part 1")
}

func TestCompose_AnonymousMember(t *testing.T) {
	mc := newComposer(t)
	current := board(member("77", "", models.NoStars, nil))

	digest := mc.Compose(&models.Baseline{Members: map[string]models.StarTime{}}, current)
	assert.Equal(t, "\U0001F389 (anonymous user #77) joined the board\n", digest.Text)
}

func TestCompose_NilPreviousTreatedAsEmpty(t *testing.T) {
	mc := newComposer(t)
	current := board(member("1", "Solo", models.NoStars, nil))

	digest := mc.Compose(nil, current)
	assert.Equal(t, 1, digest.Joined)
}

func TestCompose_EveryLineNewlineTerminated(t *testing.T) {
	mc := newComposer(t)
	current := board(member("1", "Solo", 1640259948, map[string]map[string]models.Completion{
		"23": {"2": star(1640259948)},
	}))

	digest := mc.Compose(nil, current)
	assert.True(t, strings.HasSuffix(digest.Text, "\n"))
	assert.Equal(t, 2, strings.Count(digest.Text, "\n"))
}
