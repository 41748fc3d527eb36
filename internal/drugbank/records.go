// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package drugbank

import "strings"

// Tables names the JSONL files Parse writes, without the .json extension,
// in the order they are opened.
var Tables = []string{
	"drugs",
	"groups",
	"categories",
	"synonyms",
	"organisms",
	"links",
	"external_links",
	"external_identifiers",
	"packagers",
}

type drugRecord struct {
	ID                   string `json:"drugbank-id"`
	Type                 string `json:"drug-type"`
	Created              string `json:"record-creation"`
	Updated              string `json:"record-update"`
	Name                 string `json:"name"`
	Description          string `json:"description"`
	CAS                  string `json:"cas-number"`
	UNII                 string `json:"unii"`
	State                string `json:"state"`
	Indication           string `json:"indication"`
	Pharmacodynamics     string `json:"pharmacodynamics"`
	MechanismOfAction    string `json:"mechanism-of-action"`
	Toxicity             string `json:"toxicity"`
	Metabolism           string `json:"metabolism"`
	Absorption           string `json:"absorption"`
	HalfLife             string `json:"half-life"`
	RouteOfElimination   string `json:"route-of-elimination"`
	VolumeOfDistribution string `json:"volume-of-distribution"`
	Clearance            string `json:"clearance"`
	FDALabel             string `json:"fda-label"`
	MSDS                 string `json:"msds"`
	SynthesisReference   string `json:"synthesis-reference"`
	ProteinBinding       string `json:"protein-binding"`
}

type groupRecord struct {
	DrugID string `json:"drugbank-id"`
	Name   string `json:"name"`
}

type categoryRecord struct {
	DrugID string `json:"drugbank-id"`
	Category
}

type synonymRecord struct {
	DrugID string `json:"drugbank-id"`
	Synonym
}

type organismRecord struct {
	DrugID   string `json:"drugbank-id"`
	Organism string `json:"organism"`
}

type linkRecord struct {
	DrugID string `json:"drugbank-id"`
	Link
}

type externalLinkRecord struct {
	DrugID string `json:"drugbank-id"`
	ExternalLink
}

type externalIdentifierRecord struct {
	DrugID string `json:"drugbank-id"`
	ExternalIdentifier
}

type packagerRecord struct {
	DrugID string `json:"drugbank-id"`
	Packager
}

// emitFunc receives one record destined for the named table.
type emitFunc func(table string, rec any) error

// emit sends the drug row and every child row of d. Child entries with an
// empty identifying field are skipped.
func (d Drug) emit(fn emitFunc) error {
	id := d.PrimaryID()
	if err := fn("drugs", drugRecord{
		ID:                   id,
		Type:                 d.Type,
		Created:              d.Created,
		Updated:              d.Updated,
		Name:                 d.Name,
		Description:          d.Description,
		CAS:                  d.CAS,
		UNII:                 d.UNII,
		State:                d.State,
		Indication:           d.Indication,
		Pharmacodynamics:     d.Pharmacodynamics,
		MechanismOfAction:    d.MechanismOfAction,
		Toxicity:             d.Toxicity,
		Metabolism:           d.Metabolism,
		Absorption:           d.Absorption,
		HalfLife:             d.HalfLife,
		RouteOfElimination:   d.RouteOfElimination,
		VolumeOfDistribution: d.VolumeOfDistribution,
		Clearance:            d.Clearance,
		FDALabel:             d.FDALabel,
		MSDS:                 d.MSDS,
		SynthesisReference:   d.SynthesisReference,
		ProteinBinding:       d.ProteinBinding,
	}); err != nil {
		return err
	}

	for _, g := range d.Groups {
		if blank(g) {
			continue
		}
		if err := fn("groups", groupRecord{id, g}); err != nil {
			return err
		}
	}
	for _, c := range d.Categories {
		if blank(c.Name) {
			continue
		}
		if err := fn("categories", categoryRecord{id, c}); err != nil {
			return err
		}
	}
	for _, s := range d.Synonyms {
		if blank(s.Value) {
			continue
		}
		if err := fn("synonyms", synonymRecord{id, s}); err != nil {
			return err
		}
	}
	for _, o := range d.AffectedOrganisms {
		if blank(o) {
			continue
		}
		if err := fn("organisms", organismRecord{id, o}); err != nil {
			return err
		}
	}
	for _, l := range d.Links {
		if blank(l.URL) {
			continue
		}
		if err := fn("links", linkRecord{id, l}); err != nil {
			return err
		}
	}
	for _, l := range d.ExternalLinks {
		if blank(l.URL) {
			continue
		}
		if err := fn("external_links", externalLinkRecord{id, l}); err != nil {
			return err
		}
	}
	for _, x := range d.ExternalIdentifiers {
		if blank(x.Identifier) {
			continue
		}
		if err := fn("external_identifiers", externalIdentifierRecord{id, x}); err != nil {
			return err
		}
	}
	for _, p := range d.Packagers {
		if blank(p.Name) {
			continue
		}
		if err := fn("packagers", packagerRecord{id, p}); err != nil {
			return err
		}
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
