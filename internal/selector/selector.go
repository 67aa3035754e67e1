// Package selector classifies the streams of one render as active or
// background.
package selector

import (
	"slices"
	"strconv"
	"strings"

	"github.com/san-kum/streams3d/internal/streams"
)

// Partition splits universe into active and background ids. An empty active
// set selects the whole universe. Both results are sorted ascending and free
// of duplicates.
func Partition(universe, activeIDs []streams.StreamID) (active, background []streams.StreamID, err error) {
	all := uniqueSorted(universe)
	want := uniqueSorted(activeIDs)

	var unknown []streams.StreamID
	for _, id := range want {
		if _, found := slices.BinarySearch(all, id); !found {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		return nil, nil, &streams.UnknownStreamError{IDs: unknown}
	}

	if len(want) == 0 {
		return all, []streams.StreamID{}, nil
	}

	active = make([]streams.StreamID, 0, len(want))
	background = make([]streams.StreamID, 0, len(all)-len(want))
	for _, id := range all {
		if _, found := slices.BinarySearch(want, id); found {
			active = append(active, id)
		} else {
			background = append(background, id)
		}
	}
	return active, background, nil
}

// Roles returns the role of every id in universe.
func Roles(universe, activeIDs []streams.StreamID) (map[streams.StreamID]streams.Role, error) {
	active, background, err := Partition(universe, activeIDs)
	if err != nil {
		return nil, err
	}
	roles := make(map[streams.StreamID]streams.Role, len(active)+len(background))
	for _, id := range active {
		roles[id] = streams.Active
	}
	for _, id := range background {
		roles[id] = streams.Background
	}
	return roles, nil
}

func uniqueSorted(ids []streams.StreamID) []streams.StreamID {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

// ParseIDs expands stream-id arguments for a dataset of n streams. A single
// argument may be "all", "start:stop", "start:stop:step" or "::step";
// otherwise every argument must be an integer. Ranges are clipped to [0, n).
func ParseIDs(args []string, n int) ([]streams.StreamID, error) {
	if len(args) == 0 {
		return nil, nil
	}
	if len(args) == 1 {
		arg := strings.TrimSpace(args[0])
		if arg == "all" {
			return span(0, n, 1, n), nil
		}
		if strings.Contains(arg, ":") {
			return parseRange(arg, n)
		}
	}

	ids := make([]streams.StreamID, 0, len(args))
	for _, a := range args {
		v, err := strconv.Atoi(strings.TrimSpace(a))
		if err != nil || v < 0 {
			return nil, streams.NewConfigError("streams", "invalid stream id %q", a)
		}
		ids = append(ids, streams.StreamID(v))
	}
	return ids, nil
}

func parseRange(arg string, n int) ([]streams.StreamID, error) {
	parts := strings.Split(arg, ":")
	if len(parts) > 3 {
		return nil, streams.NewConfigError("streams", "invalid range %q", arg)
	}
	vals := [3]int{0, n, 1}
	for i, p := range parts {
		if p == "" {
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, streams.NewConfigError("streams", "invalid range %q", arg)
		}
		vals[i] = v
	}
	if vals[2] <= 0 {
		return nil, streams.NewConfigError("streams", "range step must be positive in %q", arg)
	}
	if vals[0] < 0 {
		return nil, streams.NewConfigError("streams", "range start must be non-negative in %q", arg)
	}
	return span(vals[0], vals[1], vals[2], n), nil
}

func span(start, stop, step, n int) []streams.StreamID {
	stop = min(stop, n)
	ids := make([]streams.StreamID, 0)
	for i := start; i < stop; i += step {
		ids = append(ids, streams.StreamID(i))
	}
	return ids
}
