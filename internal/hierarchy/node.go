// Package hierarchy assembles the nested role → space → page → application
// tree with rollup counts, merging explicit direct relations with the
// provider-id matching fallback.
package hierarchy

// AppNode is a leaf application node. Title is the shortened display form of
// the id; FullID keeps the untruncated id. Fields are pointers so that
// applications from id-less records propagate null instead of being dropped.
type AppNode struct {
	ID     *string `json:"id" yaml:"id"`
	Type   string  `json:"type" yaml:"type"`
	Title  *string `json:"title" yaml:"title"`
	FullID *string `json:"fullId" yaml:"fullId"`
}

// PageNode is a page with its application children and app rollup.
type PageNode struct {
	ID       string    `json:"id" yaml:"id"`
	Type     string    `json:"type" yaml:"type"`
	Title    *string   `json:"title" yaml:"title"`
	AppCount int       `json:"appCount" yaml:"appCount"`
	Children []AppNode `json:"children" yaml:"children"`
}

// SpaceNode is a space with its page children and rollup counts. Canonical
// space nodes are built once as templates; every role that references a
// space works on its own deep copy so rollup mutation never leaks between
// roles or back into the template.
type SpaceNode struct {
	ID        string     `json:"id" yaml:"id"`
	Type      string     `json:"type" yaml:"type"`
	Title     string     `json:"title" yaml:"title"`
	PageCount int        `json:"pageCount" yaml:"pageCount"`
	AppCount  int        `json:"appCount" yaml:"appCount"`
	Children  []PageNode `json:"children" yaml:"children"`
}

// RoleNode is the root of one role's subtree. Children holds the role's
// working space nodes followed by its direct-relation application nodes.
type RoleNode struct {
	ID         *string `json:"id" yaml:"id"`
	Type       string  `json:"type" yaml:"type"`
	Title      *string `json:"title" yaml:"title"`
	FullID     *string `json:"fullId" yaml:"fullId"`
	ProviderID string  `json:"providerId" yaml:"providerId"`
	SpaceCount int     `json:"spaceCount" yaml:"spaceCount"`
	TotalPages int     `json:"totalPages" yaml:"totalPages"`
	TotalApps  int     `json:"totalApps" yaml:"totalApps"`
	Children   []any   `json:"children" yaml:"children"`
}

// DeepCopy returns an independently mutable copy of the space subtree.
// Page and app children are cloned so count accumulation on the copy cannot
// touch the original.
func (n *SpaceNode) DeepCopy() *SpaceNode {
	cp := *n
	cp.Children = make([]PageNode, len(n.Children))
	for i, page := range n.Children {
		pc := page
		pc.Children = make([]AppNode, len(page.Children))
		for j, app := range page.Children {
			ac := app
			ac.ID = copyStringPtr(app.ID)
			ac.Title = copyStringPtr(app.Title)
			ac.FullID = copyStringPtr(app.FullID)
			pc.Children[j] = ac
		}
		pc.Title = copyStringPtr(page.Title)
		cp.Children[i] = pc
	}
	return &cp
}

func copyStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
