//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// demoXML is a one-drug DrugBank export touching every table the
// post-processor reads.
const demoXML = `<?xml version="1.0" encoding="UTF-8"?>
<drugbank xmlns="http://www.drugbank.ca" version="5.1">
<drug type="biotech" created="2005-06-13" updated="2020-06-12">
  <drugbank-id primary="true">DB00001</drugbank-id>
  <name>Lepirudin</name>
  <groups><group>approved</group></groups>
  <general-references><links>
    <link><title>Refludan label</title><url>https://www.accessdata.fda.gov/drugsatfda_docs/label/2006/020807s035lbl.pdf</url></link>
  </links></general-references>
  <packagers><packager><name>Bayer Healthcare</name><url>http://www.bayer.com</url></packager></packagers>
  <affected-organisms><affected-organism> Humans and other mammals </affected-organism></affected-organisms>
  <external-identifiers>
    <external-identifier><resource>UniProtKB</resource><identifier>P01050</identifier></external-identifier>
  </external-identifiers>
  <external-links>
    <external-link><resource>RxList</resource><url>http://www.rxlist.com/cgi/generic/lepirudin.htm</url></external-link>
  </external-links>
</drug>
</drugbank>
`

// Demo parses a small DrugBank export into demo/json, converts it with
// post-processing into demo/csv, and loads the result into demo/tables.db.
func Demo() error {
	mg.Deps(Build)

	if err := os.MkdirAll("demo", 0o755); err != nil {
		return fmt.Errorf("creating demo: %w", err)
	}
	xmlPath := filepath.Join("demo", "drugbank.xml")
	if err := os.WriteFile(xmlPath, []byte(demoXML), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", xmlPath, err)
	}

	bin := filepath.Join(binDir, binName)
	jsonDir := filepath.Join("demo", "json")
	csvDir := filepath.Join("demo", "csv")
	if err := sh.RunV(bin, "parse", xmlPath, jsonDir); err != nil {
		return err
	}
	if err := sh.RunV(bin, "--postprocess", filepath.Join(jsonDir, "*.json"), csvDir); err != nil {
		return err
	}
	return sh.RunV(bin, "load", filepath.Join(csvDir, "*.csv"), filepath.Join("demo", "tables.db"))
}
