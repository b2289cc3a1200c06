package registry

import "github.com/goliatone/go-docskit/internal/openapi"

// SidebarEntry is one leaf link in the sidebar.
type SidebarEntry struct {
	Title  string
	Path   string
	Method openapi.Method
}

// SidebarGroup is an ordered, titled run of entries.
type SidebarGroup struct {
	Title   string
	Entries []SidebarEntry
}

// SidebarTab mirrors the nav config with titles resolved and API prefixes
// expanded into their operation groups.
type SidebarTab struct {
	Title  string
	Groups []SidebarGroup
}

// GetAPISidebarEntries groups the prefix's operations by declared tag, in
// tag declaration order, then tags only seen on operations, then untagged
// operations under "Other".
func (r *Registry) GetAPISidebarEntries(prefix string) ([]SidebarGroup, error) {
	var entry *specEntry
	for _, e := range r.specs {
		if e.prefix == prefix {
			entry = e
			break
		}
	}
	if entry == nil {
		return nil, ErrNotFound
	}

	byTag := map[string][]SidebarEntry{}
	var tagOrder []string
	seen := map[string]bool{}
	for _, tag := range entry.spec.Tags {
		if !seen[tag.Name] {
			seen[tag.Name] = true
			tagOrder = append(tagOrder, tag.Name)
		}
	}

	var other []SidebarEntry
	for i := range entry.spec.Operations {
		op := &entry.spec.Operations[i]
		link := SidebarEntry{
			Title:  op.Title(),
			Path:   prefix + "/" + op.Slug,
			Method: op.Method,
		}
		if len(op.Tags) == 0 {
			other = append(other, link)
			continue
		}
		tag := op.Tags[0]
		if !seen[tag] {
			seen[tag] = true
			tagOrder = append(tagOrder, tag)
		}
		byTag[tag] = append(byTag[tag], link)
	}

	var groups []SidebarGroup
	for _, tag := range tagOrder {
		if len(byTag[tag]) == 0 {
			continue
		}
		groups = append(groups, SidebarGroup{Title: tag, Entries: byTag[tag]})
	}
	if len(other) > 0 {
		groups = append(groups, SidebarGroup{Title: "Other", Entries: other})
	}
	return groups, nil
}

// Sidebar resolves the full navigation tree: document pages get their
// sidebar titles, pages naming an API prefix expand into tag groups.
func (r *Registry) Sidebar() []SidebarTab {
	tabs := make([]SidebarTab, 0, len(r.nav.Tabs))
	for _, tab := range r.nav.Tabs {
		st := SidebarTab{Title: tab.Title}
		for _, group := range tab.Groups {
			sg := SidebarGroup{Title: group.Title}
			for _, page := range group.Pages {
				if apiGroups, err := r.GetAPISidebarEntries(page); err == nil {
					st.Groups = append(st.Groups, apiGroups...)
					continue
				}
				sg.Entries = append(sg.Entries, SidebarEntry{
					Title: r.SidebarTitle(page),
					Path:  page,
				})
			}
			if len(sg.Entries) > 0 {
				st.Groups = append(st.Groups, sg)
			}
		}
		tabs = append(tabs, st)
	}
	return tabs
}
