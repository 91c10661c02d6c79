package models

import (
	"time"

	id "appealboard/pkg/domain"
)

// SignerGroup classifies who must sign a document.
type SignerGroup string

const (
	SignerGroupCollegium     SignerGroup = "collegium"
	SignerGroupCollegiumHead SignerGroup = "collegium_head"
	SignerGroupDirector      SignerGroup = "director"
)

// Document belongs to a case, or to the originating claim before the case
// exists. Deleted is a soft flag; deleted documents never count toward stage
// qualification.
type Document struct {
	ID                 id.DocumentID
	CaseID             *id.CaseID
	ClaimID            *id.ClaimID
	TypeCode           string
	SignerGroup        SignerGroup
	AutoGenerated      bool
	PDFConverted       bool
	Deleted            bool
	FileRef            string
	RegistrationNumber string
	CreatedAt          time.Time
}

// Sign is one required signatory's record on a document. It is created
// pending (SignedAt nil) and completed when the signature arrives.
type Sign struct {
	ID         id.SignID
	DocumentID id.DocumentID
	UserID     id.UserID
	Subject    string
	SignedAt   *time.Time
	CreatedAt  time.Time
}

// Completed reports whether the signature has been recorded.
func (s Sign) Completed() bool { return s.SignedAt != nil }

// DocumentWithSigns is the qualifier's view of a document.
type DocumentWithSigns struct {
	Document
	Signs []Sign
}

// FullySigned reports whether every required signatory has signed. A document
// with no sign records is not signed at all.
func (d DocumentWithSigns) FullySigned() bool {
	if len(d.Signs) == 0 {
		return false
	}
	for _, s := range d.Signs {
		if !s.Completed() {
			return false
		}
	}
	return true
}

// SignedByHead reports whether at least one completed sign belongs to a user
// in the given head/deputy-head set.
func (d DocumentWithSigns) SignedByHead(heads map[id.UserID]bool) bool {
	for _, s := range d.Signs {
		if s.Completed() && heads[s.UserID] {
			return true
		}
	}
	return false
}
