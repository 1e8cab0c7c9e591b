package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// parseRunSpec parses a run-number selector like "1,3-5,8" into the sorted
// set of run numbers it names. An empty spec means "every run" and is
// reported via ok=false so the caller can fall back to the full run list.
func parseRunSpec(spec string) (numbers []int, ok bool, err error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, false, nil
	}
	seen := map[int]struct{}{}
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if dash := strings.Index(part, "-"); dash > 0 {
			lo, err := strconv.Atoi(strings.TrimSpace(part[:dash]))
			if err != nil {
				return nil, false, fmt.Errorf("invalid run range %q: %w", part, err)
			}
			hi, err := strconv.Atoi(strings.TrimSpace(part[dash+1:]))
			if err != nil {
				return nil, false, fmt.Errorf("invalid run range %q: %w", part, err)
			}
			if hi < lo {
				return nil, false, fmt.Errorf("invalid run range %q: end before start", part)
			}
			for n := lo; n <= hi; n++ {
				seen[n] = struct{}{}
			}
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, false, fmt.Errorf("invalid run number %q: %w", part, err)
		}
		seen[n] = struct{}{}
	}
	numbers = make([]int, 0, len(seen))
	for n := range seen {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers, true, nil
}
