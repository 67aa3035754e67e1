package scene

import (
	"cmp"
	"slices"

	"github.com/san-kum/streams3d/internal/streams"
)

func sortEntries(entries []Entry) {
	slices.SortFunc(entries, func(a, b Entry) int { return cmp.Compare(a.ID, b.ID) })
}

func sortIDs(ids []streams.StreamID) []streams.StreamID {
	slices.Sort(ids)
	return ids
}
