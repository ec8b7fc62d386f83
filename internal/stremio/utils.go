package stremio

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseVideoId returns the series ID and (if applicable) the season and episode number from a provided Stremio video id.
//
// ok is false when id is not of the form <seriesId>:<season>:<episode> with numeric season and episode.
func ParseVideoId(id string) (seriesId string, season int, episode int, ok bool) {
	split := strings.Split(id, ":")
	if len(split) != 3 || split[0] == "" {
		return id, 0, 0, false
	}

	season, err := strconv.Atoi(split[1])
	if err != nil {
		return id, 0, 0, false
	}
	episode, err = strconv.Atoi(split[2])
	if err != nil {
		return id, 0, 0, false
	}

	return split[0], season, episode, true
}

// VideoId builds the id of an episode of a series.
func VideoId(seriesId string, season, episode int) string {
	return fmt.Sprintf("%s:%d:%d", seriesId, season, episode)
}
