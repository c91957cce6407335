package main

import (
	"fmt"
	"sort"
)

// AddResult reports the outcome of an add operation.
type AddResult struct {
	Added   []int // NodeIDs appended to the document
	Skipped []int // requested NodeIDs that already existed
}

// AddNodes appends one node per requested ID, all sharing the same
// ApiHost/ApiKey/Timeout. IDs already present in the document are skipped
// and reported rather than duplicated.
func AddNodes(cfg *Config, ids []int, apiHost, apiKey string, timeout int) AddResult {
	existing := make(map[int]bool, len(cfg.Nodes))
	for _, n := range cfg.Nodes {
		existing[n.NodeID] = true
	}

	var res AddResult
	for _, id := range ids {
		if existing[id] {
			res.Skipped = append(res.Skipped, id)
			continue
		}
		cfg.Nodes = append(cfg.Nodes, Node{
			NodeID:  id,
			ApiHost: apiHost,
			ApiKey:  apiKey,
			Timeout: timeout,
		})
		existing[id] = true
		res.Added = append(res.Added, id)
	}
	return res
}

// DeleteResult reports how each requested value resolved.
type DeleteResult struct {
	Deleted []Node // removed records, in their original display order
	Missed  []int  // values matching neither a display index nor a NodeID
}

// DeleteNodes removes the nodes selected by values. Each value is first
// interpreted as a 1-based display index; values outside 1..len(Nodes)
// fall back to NodeID lookup. Duplicate resolutions collapse to one
// deletion. Removal walks storage indices highest-first so earlier
// positions never shift mid-delete.
func DeleteNodes(cfg *Config, values []int) DeleteResult {
	byID := make(map[int]int, len(cfg.Nodes))
	for i, n := range cfg.Nodes {
		byID[n.NodeID] = i
	}

	var res DeleteResult
	selected := make(map[int]bool)
	for _, v := range values {
		if v >= 1 && v <= len(cfg.Nodes) {
			selected[v-1] = true
			continue
		}
		if i, ok := byID[v]; ok {
			selected[i] = true
			continue
		}
		res.Missed = append(res.Missed, v)
	}

	indices := make([]int, 0, len(selected))
	for i := range selected {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	for _, i := range indices {
		res.Deleted = append(res.Deleted, cfg.Nodes[i])
	}
	for k := len(indices) - 1; k >= 0; k-- {
		i := indices[k]
		cfg.Nodes = append(cfg.Nodes[:i], cfg.Nodes[i+1:]...)
	}
	return res
}

// EditNode replaces the record at storage index idx. A NodeID change that
// collides with a different record is rejected, leaving the document
// unchanged.
func EditNode(cfg *Config, idx int, updated Node) error {
	if idx < 0 || idx >= len(cfg.Nodes) {
		return fmt.Errorf("node %d does not exist", idx+1)
	}
	for i, n := range cfg.Nodes {
		if i != idx && n.NodeID == updated.NodeID {
			return fmt.Errorf("NodeID %d is already used by node %d", updated.NodeID, i+1)
		}
	}
	cfg.Nodes[idx] = updated
	return nil
}
