package domain

import "strings"

// Snapshot is a portable copy of the inventory used by export and import.
// Items carry their category names so a snapshot can be loaded into a
// store whose identities differ.
type Snapshot struct {
	Items      []SnapshotItem `json:"items"`
	Categories []Category     `json:"categories"`
}

// SnapshotItem is an item plus the names of its categories
type SnapshotItem struct {
	Item
	Categories []string `json:"categories"`
}

// CategoryNames returns the snapshot's category names in order, including
// names only referenced by items
func (s *Snapshot) CategoryNames() []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}
	for _, c := range s.Categories {
		add(c.Name)
	}
	for _, item := range s.Items {
		for _, name := range item.Categories {
			add(name)
		}
	}
	return names
}
