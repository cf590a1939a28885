package snapshot

import (
	"encoding/json"
	"fmt"
)

// Raw export records are loosely coupled JSON documents with deeply nested
// optional fields. Decoding never fails on an absent field: missing values
// degrade to nil, the empty string, or an empty list so that one record per
// input row survives into the snapshot.

type rawMerged struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	SortNumber  int    `json:"sortNumber"`
	Descriptor  struct {
		Value struct {
			Title       *string `json:"title"`
			Description *string `json:"description"`
		} `json:"value"`
	} `json:"descriptor"`
}

type rawSpace struct {
	ID           string    `json:"id"`
	Language     string    `json:"language"`
	MergedEntity rawMerged `json:"mergedEntity"`
}

type rawPage struct {
	ID           string    `json:"id"`
	Language     string    `json:"language"`
	VizIDs       []string  `json:"workPageVizsId"`
	MergedEntity rawMerged `json:"mergedEntity"`
}

type rawSpacePageLink struct {
	SpaceID    string `json:"spaceId"`
	WorkPageID string `json:"workPageId"`
}

type rawPageVizLink struct {
	WorkPageID string `json:"workPageId"`
	VizID      string `json:"vizId"`
}

type rawRelationTarget struct {
	Target struct {
		ID string `json:"id"`
	} `json:"target"`
}

type rawCDMRecord struct {
	CDM struct {
		Identification struct {
			ID         *string `json:"id"`
			ProviderID string  `json:"providerId"`
		} `json:"identification"`
		Texts map[string]struct {
			Value map[string]string `json:"value"`
		} `json:"texts"`
		Relations struct {
			Base []rawRelationTarget `json:"base"`
			Role []rawRelationTarget `json:"role"`
		} `json:"relations"`
	} `json:"cdm"`
	Metadata struct {
		CreatedBy string `json:"createdBy"`
		UpdatedBy string `json:"updatedBy"`
	} `json:"metadata"`
}

type rawRelationRecord struct {
	ID          string   `json:"id"`
	Space       []string `json:"space"`
	BusinessApp []string `json:"businessapp"`
}

// titleKey is the texts key carrying an application's display title.
const titleKey = "cdm|identification|title"

// DecodeSpaces parses a space collection file.
func DecodeSpaces(data []byte) ([]Space, error) {
	var raw []rawSpace
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode spaces: %w", err)
	}
	spaces := make([]Space, 0, len(raw))
	for _, r := range raw {
		spaces = append(spaces, Space{
			ID:          r.ID,
			Language:    r.Language,
			Title:       r.MergedEntity.Title,
			Description: r.MergedEntity.Description,
			SortNumber:  r.MergedEntity.SortNumber,
		})
	}
	return spaces, nil
}

// DecodePages parses a work-page collection file. The embedded visualization
// id list is kept verbatim; it is empty on non-display locales.
func DecodePages(data []byte) ([]Page, error) {
	var raw []rawPage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode pages: %w", err)
	}
	pages := make([]Page, 0, len(raw))
	for _, r := range raw {
		pages = append(pages, Page{
			ID:          r.ID,
			Language:    r.Language,
			Title:       r.MergedEntity.Descriptor.Value.Title,
			Description: r.MergedEntity.Descriptor.Value.Description,
			VizIDs:      r.VizIDs,
		})
	}
	return pages, nil
}

// DecodeSpacePageLinks parses a space↔page relation file.
func DecodeSpacePageLinks(data []byte) ([]SpacePageLink, error) {
	var raw []rawSpacePageLink
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode space-page links: %w", err)
	}
	links := make([]SpacePageLink, 0, len(raw))
	for _, r := range raw {
		links = append(links, SpacePageLink{SpaceID: r.SpaceID, PageID: r.WorkPageID})
	}
	return links, nil
}

// DecodePageVizLinks parses a page↔visualization relation file.
func DecodePageVizLinks(data []byte) ([]PageVizLink, error) {
	var raw []rawPageVizLink
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode page-viz links: %w", err)
	}
	links := make([]PageVizLink, 0, len(raw))
	for _, r := range raw {
		links = append(links, PageVizLink{PageID: r.WorkPageID, VizID: r.VizID})
	}
	return links, nil
}

// DecodeApps parses a business application collection file. The role target
// list is flattened from the nested relation entries.
func DecodeApps(data []byte) ([]App, error) {
	var raw []rawCDMRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode apps: %w", err)
	}
	apps := make([]App, 0, len(raw))
	for _, r := range raw {
		app := App{
			ID:         r.CDM.Identification.ID,
			ProviderID: r.CDM.Identification.ProviderID,
			CreatedBy:  r.Metadata.CreatedBy,
			UpdatedBy:  r.Metadata.UpdatedBy,
		}
		if t, ok := r.CDM.Texts[titleKey]; ok {
			app.Title = t.Value[""]
		}
		if len(r.CDM.Relations.Base) > 0 {
			app.BaseTargetID = r.CDM.Relations.Base[0].Target.ID
		}
		for _, rel := range r.CDM.Relations.Role {
			app.RoleTargets = append(app.RoleTargets, rel.Target.ID)
		}
		apps = append(apps, app)
	}
	return apps, nil
}

// DecodeRoles parses a role collection file.
func DecodeRoles(data []byte) ([]Role, error) {
	var raw []rawCDMRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode roles: %w", err)
	}
	roles := make([]Role, 0, len(raw))
	for _, r := range raw {
		role := Role{
			ID:         r.CDM.Identification.ID,
			ProviderID: r.CDM.Identification.ProviderID,
			CreatedBy:  r.Metadata.CreatedBy,
			UpdatedBy:  r.Metadata.UpdatedBy,
		}
		if len(r.CDM.Relations.Base) > 0 {
			role.Extends = r.CDM.Relations.Base[0].Target.ID
		}
		roles = append(roles, role)
	}
	return roles, nil
}

// RelationRecord is one direct-relation side record, keyed by its own id.
type RelationRecord struct {
	RoleID   string
	Relation DirectRelation
}

// DecodeRelations parses a direct-relation side file.
func DecodeRelations(data []byte) ([]RelationRecord, error) {
	var raw []rawRelationRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode role relations: %w", err)
	}
	records := make([]RelationRecord, 0, len(raw))
	for _, r := range raw {
		records = append(records, RelationRecord{
			RoleID:   r.ID,
			Relation: DirectRelation{Spaces: r.Space, Apps: r.BusinessApp},
		})
	}
	return records, nil
}

// DecodeMetadata parses the export_data metadata file.
func DecodeMetadata(data []byte) (*Metadata, error) {
	meta := &Metadata{}
	if err := json.Unmarshal(data, meta); err != nil {
		return nil, fmt.Errorf("decode export metadata: %w", err)
	}
	return meta, nil
}

// MergeRelations folds relation records into the snapshot's direct-relation
// map, appending to any entry already present for the same role id.
func (s *Snapshot) MergeRelations(records []RelationRecord) {
	for _, rec := range records {
		existing := s.DirectRelations[rec.RoleID]
		existing.Spaces = append(existing.Spaces, rec.Relation.Spaces...)
		existing.Apps = append(existing.Apps, rec.Relation.Apps...)
		s.DirectRelations[rec.RoleID] = existing
	}
}
