// Package catalog holds the read-only stage and document-type reference data.
// It is the only authority for step codes, titles, and the per-claim-kind
// document sets required before a case can be accepted for consideration.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed stages.yaml
var rawCatalog []byte

// BaseStageCode is what the qualifier returns when no stage predicate holds.
const BaseStageCode = 0

// InitialStageCode is assigned when a case is created from a claim.
const InitialStageCode = 1000

// DocTypeFormationOrder is the collegium formation order; stage 2003 is gated
// on this document being head-signed.
const DocTypeFormationOrder = "0005"

// DocTypeMeetingNotice is generated automatically on entering stage 3002.
const DocTypeMeetingNotice = "0015"

type Step struct {
	Code  int    `yaml:"code"`
	Title string `yaml:"title"`
}

type Stage struct {
	Number int    `yaml:"number"`
	Title  string `yaml:"title"`
	Steps  []Step `yaml:"steps"`
}

type DocumentType struct {
	Code  string `yaml:"code"`
	Title string `yaml:"title"`
}

type ClaimKind struct {
	ID                    string   `yaml:"id"`
	Title                 string   `yaml:"title"`
	ConsiderationDocTypes []string `yaml:"consideration_doc_types"`
}

type Catalog struct {
	Stages        []Stage        `yaml:"stages"`
	DocumentTypes []DocumentType `yaml:"document_types"`
	ClaimKinds    []ClaimKind    `yaml:"claim_kinds"`

	stepsByCode  map[int]Step
	kindsByID    map[string]ClaimKind
	docTypeTitle map[string]string
}

// Load parses the embedded reference data.
func Load() (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(rawCatalog, &c); err != nil {
		return nil, fmt.Errorf("parse stage catalog: %w", err)
	}

	c.stepsByCode = make(map[int]Step)
	for _, stage := range c.Stages {
		for _, step := range stage.Steps {
			if _, dup := c.stepsByCode[step.Code]; dup {
				return nil, fmt.Errorf("duplicate step code %d in stage catalog", step.Code)
			}
			c.stepsByCode[step.Code] = step
		}
	}
	c.kindsByID = make(map[string]ClaimKind, len(c.ClaimKinds))
	for _, kind := range c.ClaimKinds {
		c.kindsByID[kind.ID] = kind
	}
	c.docTypeTitle = make(map[string]string, len(c.DocumentTypes))
	for _, dt := range c.DocumentTypes {
		c.docTypeTitle[dt.Code] = dt.Title
	}
	return &c, nil
}

// MustLoad is for wiring and tests where a broken embedded catalog is fatal.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Step resolves a step code to its catalog entry.
func (c *Catalog) Step(code int) (Step, bool) {
	step, ok := c.stepsByCode[code]
	return step, ok
}

// TitleFor returns the step title, or the empty string for unknown codes.
func (c *Catalog) TitleFor(code int) string {
	return c.stepsByCode[code].Title
}

// DocTypesForConsideration returns the document type codes that must exist
// (stage 2004) and be head-signed (stage 3000) for a claim kind.
func (c *Catalog) DocTypesForConsideration(claimKindID string) []string {
	kind, ok := c.kindsByID[claimKindID]
	if !ok {
		return nil
	}
	out := make([]string, len(kind.ConsiderationDocTypes))
	copy(out, kind.ConsiderationDocTypes)
	return out
}

// DocTypeTitle returns the human title of a document type code.
func (c *Catalog) DocTypeTitle(code string) string {
	return c.docTypeTitle[code]
}
