// Package snapshot defines the in-memory dataset loaded from a portal
// configuration export. A Snapshot is assembled once by the loader and is
// treated as immutable by every consumer; the report builders are pure
// functions over it.
package snapshot

// PlaceholderTitle is substituted when an entity carries no resolvable title.
const PlaceholderTitle = "Untitled"

// Space is one locale variant of a portal space. The same logical space
// appears once per exported language, sharing its id across variants.
type Space struct {
	ID          string `json:"id"`
	Language    string `json:"language"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	SortNumber  int    `json:"sortNumber,omitempty"`
}

// Page is one locale variant of a work page. VizIDs is the embedded
// visualization id list; it is only populated on the display-locale record.
type Page struct {
	ID          string   `json:"id"`
	Language    string   `json:"language"`
	Title       *string  `json:"title"`
	Description *string  `json:"description,omitempty"`
	VizIDs      []string `json:"vizIds,omitempty"`
}

// SpacePageLink relates a space to one of its work pages.
type SpacePageLink struct {
	SpaceID string `json:"spaceId"`
	PageID  string `json:"pageId"`
}

// PageVizLink relates a work page to one of its visualizations. The
// visualization id carries an application id before its first '#'.
type PageVizLink struct {
	PageID string `json:"pageId"`
	VizID  string `json:"vizId"`
}

// App is a business application record. ID is nil when the record carries no
// identification id; such records are passed through, never dropped.
type App struct {
	ID           *string  `json:"id"`
	ProviderID   string   `json:"providerId,omitempty"`
	Title        string   `json:"title,omitempty"`
	BaseTargetID string   `json:"baseTargetId,omitempty"`
	RoleTargets  []string `json:"roleTargets,omitempty"`
	CreatedBy    string   `json:"createdBy,omitempty"`
	UpdatedBy    string   `json:"updatedBy,omitempty"`
}

// Role is a portal role record. ID is nil when the record carries no
// identification id.
type Role struct {
	ID         *string `json:"id"`
	ProviderID string  `json:"providerId,omitempty"`
	Extends    string  `json:"extends,omitempty"`
	CreatedBy  string  `json:"createdBy,omitempty"`
	UpdatedBy  string  `json:"updatedBy,omitempty"`
}

// DirectRelation is the explicitly curated linkage for one role, as opposed
// to linkage inferred from application relation lists or provider matching.
type DirectRelation struct {
	Spaces []string `json:"space"`
	Apps   []string `json:"businessapp"`
}

// Metadata describes the export itself.
type Metadata struct {
	Time        string   `json:"time,omitempty"`
	Username    string   `json:"username,omitempty"`
	Product     string   `json:"productName,omitempty"`
	Version     string   `json:"transportServiceVersion,omitempty"`
	ProviderIDs []string `json:"providerIds,omitempty"`
}

// Snapshot is the complete loaded dataset. Collections preserve the order of
// the source files.
type Snapshot struct {
	Metadata        *Metadata                 `json:"metadata,omitempty"`
	Spaces          []Space                   `json:"spaces"`
	Pages           []Page                    `json:"pages"`
	SpacePageLinks  []SpacePageLink           `json:"spacePageLinks"`
	PageVizLinks    []PageVizLink             `json:"pageVizLinks"`
	Apps            []App                     `json:"apps"`
	Roles           []Role                    `json:"roles"`
	DirectRelations map[string]DirectRelation `json:"directRelations"`
}

// New returns an empty snapshot with initialized collections.
func New() *Snapshot {
	return &Snapshot{
		Spaces:          make([]Space, 0),
		Pages:           make([]Page, 0),
		SpacePageLinks:  make([]SpacePageLink, 0),
		PageVizLinks:    make([]PageVizLink, 0),
		Apps:            make([]App, 0),
		Roles:           make([]Role, 0),
		DirectRelations: make(map[string]DirectRelation),
	}
}

// FindPage returns the first page with the given id regardless of locale, or
// nil if no page matches.
func (s *Snapshot) FindPage(id string) *Page {
	for i := range s.Pages {
		if s.Pages[i].ID == id {
			return &s.Pages[i]
		}
	}
	return nil
}

// FindPageInLocale returns the first page with the given id in the given
// language, or nil.
func (s *Snapshot) FindPageInLocale(id, language string) *Page {
	for i := range s.Pages {
		if s.Pages[i].ID == id && s.Pages[i].Language == language {
			return &s.Pages[i]
		}
	}
	return nil
}

// Relations returns the direct relations for a role id pointer. A nil id has
// no relation key and yields the zero value.
func (s *Snapshot) Relations(roleID *string) DirectRelation {
	if roleID == nil {
		return DirectRelation{}
	}
	return s.DirectRelations[*roleID]
}
