// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package drugbank

// Drug is one top-level <drug> element of a DrugBank export. Only the
// elements that feed the emitted tables are mapped.
type Drug struct {
	IDs     []ID   `xml:"drugbank-id"`
	Type    string `xml:"type,attr"`
	Created string `xml:"created,attr"`
	Updated string `xml:"updated,attr"`

	Name                 string `xml:"name"`
	Description          string `xml:"description"`
	CAS                  string `xml:"cas-number"`
	UNII                 string `xml:"unii"`
	State                string `xml:"state"`
	Indication           string `xml:"indication"`
	Pharmacodynamics     string `xml:"pharmacodynamics"`
	MechanismOfAction    string `xml:"mechanism-of-action"`
	Toxicity             string `xml:"toxicity"`
	Metabolism           string `xml:"metabolism"`
	Absorption           string `xml:"absorption"`
	HalfLife             string `xml:"half-life"`
	RouteOfElimination   string `xml:"route-of-elimination"`
	VolumeOfDistribution string `xml:"volume-of-distribution"`
	Clearance            string `xml:"clearance"`
	FDALabel             string `xml:"fda-label"`
	MSDS                 string `xml:"msds"`
	SynthesisReference   string `xml:"synthesis-reference"`
	ProteinBinding       string `xml:"protein-binding"`

	Groups              []string             `xml:"groups>group"`
	Categories          []Category           `xml:"categories>category"`
	Synonyms            []Synonym            `xml:"synonyms>synonym"`
	AffectedOrganisms   []string             `xml:"affected-organisms>affected-organism"`
	Links               []Link               `xml:"general-references>links>link"`
	ExternalLinks       []ExternalLink       `xml:"external-links>external-link"`
	ExternalIdentifiers []ExternalIdentifier `xml:"external-identifiers>external-identifier"`
	Packagers           []Packager           `xml:"packagers>packager"`
}

// ID is a <drugbank-id>. A drug lists its current accession first, marked
// primary, followed by retired ones.
type ID struct {
	Primary bool   `xml:"primary,attr"`
	Value   string `xml:",chardata"`
}

// PrimaryID returns the accession marked primary, or the first one listed.
func (d Drug) PrimaryID() string {
	for _, id := range d.IDs {
		if id.Primary {
			return id.Value
		}
	}
	if len(d.IDs) > 0 {
		return d.IDs[0].Value
	}
	return ""
}

type Category struct {
	Name   string `xml:"category" json:"category"`
	MeshID string `xml:"mesh-id" json:"mesh-id"`
}

type Synonym struct {
	Language string `xml:"language,attr" json:"language"`
	Coder    string `xml:"coder,attr" json:"coder"`
	Value    string `xml:",chardata" json:"synonym"`
}

// Link is a general reference to a web page about the drug.
type Link struct {
	Title string `xml:"title" json:"title"`
	URL   string `xml:"url" json:"url"`
}

type ExternalLink struct {
	Resource string `xml:"resource" json:"resource"`
	URL      string `xml:"url" json:"url"`
}

type ExternalIdentifier struct {
	Resource   string `xml:"resource" json:"resource"`
	Identifier string `xml:"identifier" json:"identifier"`
}

type Packager struct {
	Name string `xml:"name" json:"name"`
	URL  string `xml:"url" json:"url"`
}
