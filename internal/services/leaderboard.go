package services

import (
	"strings"

	"github.com/terraincognita07/titanlift/internal/models"
)

const podiumSize = 3

type RankedEntry struct {
	Username string
	Initials string
	Volume   string
	Rank     int64
	Place    int
}

type LeaderboardView struct {
	Podium []RankedEntry
	Rest   []RankedEntry
	Empty  bool
}

// BuildLeaderboardView splits entries into a podium laid out 2nd, 1st, 3rd and
// the remaining list.
func BuildLeaderboardView(entries []models.LeaderboardEntry) LeaderboardView {
	ranked := make([]RankedEntry, len(entries))
	for index, entry := range entries {
		ranked[index] = rankEntry(entry, index+1)
	}

	top := ranked[:min(podiumSize, len(ranked))]
	view := LeaderboardView{
		Podium: make([]RankedEntry, 0, len(top)),
		Rest:   ranked[len(top):],
		Empty:  len(ranked) == 0,
	}
	for _, position := range []int{1, 0, 2} {
		if position < len(top) {
			view.Podium = append(view.Podium, top[position])
		}
	}
	return view
}

func rankEntry(entry models.LeaderboardEntry, place int) RankedEntry {
	volume := 0.0
	if entry.TotalVolumeKG != nil {
		volume = *entry.TotalVolumeKG
	}
	rank := int64(place)
	if entry.Rank != nil {
		rank = *entry.Rank
	}
	return RankedEntry{
		Username: entry.Username,
		Initials: Initials(entry.Username),
		Volume:   FormatVolumeTonnes(volume),
		Rank:     rank,
		Place:    place,
	}
}

// Initials returns the first two characters of a username in upper case.
func Initials(username string) string {
	runes := []rune(username)
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return strings.ToUpper(string(runes))
}
