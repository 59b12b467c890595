package league

import "sort"

// GenerateSchedule returns a single round-robin for the given teams.
// It outputs a slice of rounds, each round being the games of one week.
// With an odd number of teams one team sits out every round.
func GenerateSchedule(teamIDs []int, season int) [][]Game {
	if len(teamIDs) < 2 {
		return nil
	}
	ids := append([]int(nil), teamIDs...)
	sort.Ints(ids)

	// slots hold indexes into ids, -1 is the bye
	slots := make([]int, len(ids))
	for i := range ids {
		slots[i] = i
	}
	if len(slots)%2 != 0 {
		slots = append(slots, -1)
	}
	n := len(slots)

	rounds := make([][]Game, n-1)
	for i := 0; i < n-1; i++ {
		round := make([]Game, 0, n/2)
		for j := 0; j < n/2; j++ {
			home, away := slots[j], slots[n-1-j]
			if home < 0 || away < 0 {
				continue
			}
			// alternate the fixed slot so it is not always at home
			if j == 0 && i%2 == 1 {
				home, away = away, home
			}
			round = append(round, Game{
				SeasonID: season,
				Week:     i + 1,
				HomeID:   ids[home],
				AwayID:   ids[away],
			})
		}
		rounds[i] = round

		// rotate everyone except the first slot
		last := slots[n-1]
		copy(slots[2:], slots[1:n-1])
		slots[1] = last
	}
	return rounds
}

// GenerateFullSeason plays the round-robin twice, home and away swapped
// in the second half.
func GenerateFullSeason(teamIDs []int, season int) [][]Game {
	firstHalf := GenerateSchedule(teamIDs, season)
	if firstHalf == nil {
		return nil
	}
	secondHalf := make([][]Game, len(firstHalf))
	for i, rnd := range firstHalf {
		swapped := make([]Game, len(rnd))
		for j, g := range rnd {
			swapped[j] = Game{
				SeasonID: season,
				Week:     i + 1 + len(firstHalf),
				HomeID:   g.AwayID,
				AwayID:   g.HomeID,
			}
		}
		secondHalf[i] = swapped
	}
	return append(firstHalf, secondHalf...)
}
