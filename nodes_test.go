package main

import (
	"reflect"
	"testing"
)

func testConfig(ids ...int) *Config {
	cfg := defaultConfig()
	for _, id := range ids {
		cfg.Nodes = append(cfg.Nodes, Node{
			NodeID:  id,
			ApiHost: "https://panel.example.com",
			ApiKey:  "key",
			Timeout: 30,
		})
	}
	return cfg
}

func nodeIDs(cfg *Config) []int {
	ids := make([]int, len(cfg.Nodes))
	for i, n := range cfg.Nodes {
		ids[i] = n.NodeID
	}
	return ids
}

func TestAddNodesRange(t *testing.T) {
	cfg := testConfig()
	ids, err := ParseIDRange("3-5")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	res := AddNodes(cfg, ids, "https://panel.example.com", "secret", 45)
	if !reflect.DeepEqual(res.Added, []int{3, 4, 5}) {
		t.Errorf("expected added 3,4,5, got %v", res.Added)
	}
	if len(res.Skipped) != 0 {
		t.Errorf("expected no skips, got %v", res.Skipped)
	}
	if len(cfg.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(cfg.Nodes))
	}
	for _, n := range cfg.Nodes {
		if n.ApiHost != "https://panel.example.com" || n.ApiKey != "secret" || n.Timeout != 45 {
			t.Errorf("node %d does not share the add settings: %+v", n.NodeID, n)
		}
	}
}

func TestAddNodesSkipsExisting(t *testing.T) {
	cfg := testConfig(4)
	ids, _ := ParseIDRange("3-5")

	res := AddNodes(cfg, ids, "h", "k", 30)
	if !reflect.DeepEqual(res.Added, []int{3, 5}) {
		t.Errorf("expected added 3,5, got %v", res.Added)
	}
	if !reflect.DeepEqual(res.Skipped, []int{4}) {
		t.Errorf("expected skipped 4, got %v", res.Skipped)
	}
	if !reflect.DeepEqual(nodeIDs(cfg), []int{4, 3, 5}) {
		t.Errorf("unexpected node order: %v", nodeIDs(cfg))
	}
}

func TestAddNodesAllExisting(t *testing.T) {
	cfg := testConfig(1, 2)

	res := AddNodes(cfg, []int{1, 2}, "h", "k", 30)
	if len(res.Added) != 0 {
		t.Errorf("expected nothing added, got %v", res.Added)
	}
	if !reflect.DeepEqual(res.Skipped, []int{1, 2}) {
		t.Errorf("expected skipped 1,2, got %v", res.Skipped)
	}
	if len(cfg.Nodes) != 2 {
		t.Errorf("document changed: %v", nodeIDs(cfg))
	}
}

func TestDeleteNodesByDisplayIndex(t *testing.T) {
	cfg := testConfig(10, 20, 30)
	values, _ := ParseSelection("1,3")

	res := DeleteNodes(cfg, values)
	if len(res.Deleted) != 2 {
		t.Fatalf("expected 2 deletions, got %v", res.Deleted)
	}
	if len(res.Missed) != 0 {
		t.Errorf("expected no misses, got %v", res.Missed)
	}
	if !reflect.DeepEqual(nodeIDs(cfg), []int{20}) {
		t.Errorf("expected only NodeID 20 to survive, got %v", nodeIDs(cfg))
	}
}

func TestDeleteNodesFallsBackToNodeID(t *testing.T) {
	// 99 is outside the 1..3 display range, so it must resolve by NodeID.
	cfg := testConfig(10, 99, 30)

	res := DeleteNodes(cfg, []int{99})
	if len(res.Deleted) != 1 || res.Deleted[0].NodeID != 99 {
		t.Fatalf("expected NodeID 99 deleted, got %v", res.Deleted)
	}
	if !reflect.DeepEqual(nodeIDs(cfg), []int{10, 30}) {
		t.Errorf("unexpected survivors: %v", nodeIDs(cfg))
	}
}

func TestDeleteNodesIndexWinsOverNodeID(t *testing.T) {
	// 2 is both a valid display index and an existing NodeID elsewhere;
	// display index resolution wins.
	cfg := testConfig(5, 7, 2)

	res := DeleteNodes(cfg, []int{2})
	if len(res.Deleted) != 1 || res.Deleted[0].NodeID != 7 {
		t.Fatalf("expected position 2 (NodeID 7) deleted, got %v", res.Deleted)
	}
	if !reflect.DeepEqual(nodeIDs(cfg), []int{5, 2}) {
		t.Errorf("unexpected survivors: %v", nodeIDs(cfg))
	}
}

func TestDeleteNodesDeduplicatesResolutions(t *testing.T) {
	// Display index 1 and literal NodeID 10 resolve to the same record.
	cfg := testConfig(10, 20)

	res := DeleteNodes(cfg, []int{1, 10})
	if len(res.Deleted) != 1 || res.Deleted[0].NodeID != 10 {
		t.Fatalf("expected one deletion of NodeID 10, got %v", res.Deleted)
	}
	if !reflect.DeepEqual(nodeIDs(cfg), []int{20}) {
		t.Errorf("unexpected survivors: %v", nodeIDs(cfg))
	}
}

func TestDeleteNodesReportsMisses(t *testing.T) {
	cfg := testConfig(10, 20)

	res := DeleteNodes(cfg, []int{42})
	if len(res.Deleted) != 0 {
		t.Errorf("expected no deletions, got %v", res.Deleted)
	}
	if !reflect.DeepEqual(res.Missed, []int{42}) {
		t.Errorf("expected missed 42, got %v", res.Missed)
	}
	if len(cfg.Nodes) != 2 {
		t.Errorf("document changed: %v", nodeIDs(cfg))
	}
}

func TestDeleteNodesRangeSelection(t *testing.T) {
	cfg := testConfig(10, 20, 30, 40, 50)
	values, _ := ParseSelection("2-4")

	res := DeleteNodes(cfg, values)
	if len(res.Deleted) != 3 {
		t.Fatalf("expected 3 deletions, got %v", res.Deleted)
	}
	if !reflect.DeepEqual(nodeIDs(cfg), []int{10, 50}) {
		t.Errorf("unexpected survivors: %v", nodeIDs(cfg))
	}
}

func TestEditNodeUpdatesRecord(t *testing.T) {
	cfg := testConfig(10, 20)

	updated := Node{NodeID: 10, ApiHost: "https://new.example.com", ApiKey: "new-key", Timeout: 90}
	if err := EditNode(cfg, 0, updated); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(cfg.Nodes[0], updated) {
		t.Errorf("record not updated: %+v", cfg.Nodes[0])
	}
}

func TestEditNodeChangesNodeID(t *testing.T) {
	cfg := testConfig(10, 20)

	updated := cfg.Nodes[0]
	updated.NodeID = 15
	if err := EditNode(cfg, 0, updated); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(nodeIDs(cfg), []int{15, 20}) {
		t.Errorf("unexpected NodeIDs: %v", nodeIDs(cfg))
	}
}

func TestEditNodeRejectsDuplicateNodeID(t *testing.T) {
	cfg := testConfig(10, 20)
	before := append([]Node(nil), cfg.Nodes...)

	updated := cfg.Nodes[0]
	updated.NodeID = 20
	if err := EditNode(cfg, 0, updated); err == nil {
		t.Fatalf("expected duplicate NodeID to be rejected")
	}
	if !reflect.DeepEqual(cfg.Nodes, before) {
		t.Errorf("document changed after rejected edit: %v", nodeIDs(cfg))
	}
}

func TestEditNodeOutOfRange(t *testing.T) {
	cfg := testConfig(10)

	if err := EditNode(cfg, 5, Node{NodeID: 1}); err == nil {
		t.Errorf("expected out of range error")
	}
}
