package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ParseIDRange parses a single integer ("7") or an inclusive range ("3-5")
// into the list of IDs it covers, in ascending order.
func ParseIDRange(input string) ([]int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("empty value")
	}

	if !strings.Contains(input, "-") {
		id, err := strconv.Atoi(input)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", input)
		}
		if id < 0 {
			return nil, fmt.Errorf("negative ID %d", id)
		}
		return []int{id}, nil
	}

	parts := strings.SplitN(input, "-", 2)
	lo, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("invalid range start %q", strings.TrimSpace(parts[0]))
	}
	hi, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, fmt.Errorf("invalid range end %q", strings.TrimSpace(parts[1]))
	}
	if lo > hi {
		return nil, fmt.Errorf("invalid range %d-%d: start exceeds end", lo, hi)
	}

	ids := make([]int, 0, hi-lo+1)
	for id := lo; id <= hi; id++ {
		ids = append(ids, id)
	}
	return ids, nil
}

// ParseSelection parses a comma-separated list of integers and inclusive
// ranges ("1,3-5,9") into a deduplicated ascending list. Any malformed
// token fails the whole selection.
func ParseSelection(input string) ([]int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("empty selection")
	}

	seen := make(map[int]bool)
	var out []int
	for _, token := range strings.Split(input, ",") {
		ids, err := ParseIDRange(token)
		if err != nil {
			return nil, fmt.Errorf("bad token %q: %v", strings.TrimSpace(token), err)
		}
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	sort.Ints(out)
	return out, nil
}
