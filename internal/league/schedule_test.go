package league

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair struct{ a, b int }

func unordered(g Game) pair {
	if g.HomeID < g.AwayID {
		return pair{g.HomeID, g.AwayID}
	}
	return pair{g.AwayID, g.HomeID}
}

func TestGenerateSchedule(t *testing.T) {
	t.Run("even number of teams", func(t *testing.T) {
		ids := []int{6, 2, 4, 1, 3, 5}
		rounds := GenerateSchedule(ids, testSeason)
		require.Len(t, rounds, 5)

		seen := make(map[pair]int)
		for i, round := range rounds {
			assert.Len(t, round, 3)
			inRound := make(map[int]bool)
			for _, g := range round {
				assert.Equal(t, i+1, g.Week)
				assert.Equal(t, testSeason, g.SeasonID)
				assert.False(t, g.Completed)
				assert.NotEqual(t, g.HomeID, g.AwayID)
				assert.False(t, inRound[g.HomeID], "team %d twice in week %d", g.HomeID, g.Week)
				assert.False(t, inRound[g.AwayID], "team %d twice in week %d", g.AwayID, g.Week)
				inRound[g.HomeID] = true
				inRound[g.AwayID] = true
				seen[unordered(g)]++
			}
		}
		assert.Len(t, seen, 15)
		for p, n := range seen {
			assert.Equal(t, 1, n, "pair %v", p)
		}
	})

	t.Run("odd number of teams gets a bye", func(t *testing.T) {
		rounds := GenerateSchedule([]int{1, 2, 3, 4, 5}, testSeason)
		require.Len(t, rounds, 5)

		byes := make(map[int]int)
		for _, round := range rounds {
			assert.Len(t, round, 2)
			playing := make(map[int]bool)
			for _, g := range round {
				playing[g.HomeID] = true
				playing[g.AwayID] = true
			}
			for id := 1; id <= 5; id++ {
				if !playing[id] {
					byes[id]++
				}
			}
		}
		for id := 1; id <= 5; id++ {
			assert.Equal(t, 1, byes[id], "team %d", id)
		}
	})

	t.Run("too few teams", func(t *testing.T) {
		assert.Nil(t, GenerateSchedule(nil, testSeason))
		assert.Nil(t, GenerateSchedule([]int{1}, testSeason))
		assert.Nil(t, GenerateFullSeason([]int{1}, testSeason))
	})

	t.Run("two teams meet once", func(t *testing.T) {
		rounds := GenerateSchedule([]int{7, 3}, testSeason)
		require.Len(t, rounds, 1)
		require.Len(t, rounds[0], 1)
		assert.True(t, rounds[0][0].Involves(3))
		assert.True(t, rounds[0][0].Involves(7))
	})

	t.Run("does not reorder the caller's slice", func(t *testing.T) {
		ids := []int{3, 1, 2, 4}
		GenerateSchedule(ids, testSeason)
		assert.Equal(t, []int{3, 1, 2, 4}, ids)
	})
}

func TestGenerateFullSeason(t *testing.T) {
	rounds := GenerateFullSeason([]int{1, 2, 3, 4}, testSeason)
	require.Len(t, rounds, 6)

	homeAway := make(map[[2]int]int)
	for i, round := range rounds {
		for _, g := range round {
			assert.Equal(t, i+1, g.Week)
			homeAway[[2]int{g.HomeID, g.AwayID}]++
		}
	}
	// every ordered pairing exactly once: each side hosts the other
	assert.Len(t, homeAway, 12)
	for k, n := range homeAway {
		assert.Equal(t, 1, n, "fixture %v", k)
	}
}
