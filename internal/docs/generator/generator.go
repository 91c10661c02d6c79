// Package generator abstracts the external template-rendering service. The
// engine only needs a file reference back; rendering and storage mechanics
// live outside this system.
package generator

import (
	"context"
	"fmt"

	id "appealboard/pkg/domain"
)

// Generator renders a document template with the given variables and returns
// a reference to the produced file.
type Generator interface {
	Generate(ctx context.Context, templateCode string, caseID id.CaseID, vars map[string]string) (string, error)
}

// Stub is the in-process placeholder used in development and tests. It
// produces a deterministic file reference without rendering anything.
type Stub struct{}

func NewStub() *Stub { return &Stub{} }

func (s *Stub) Generate(ctx context.Context, templateCode string, caseID id.CaseID, vars map[string]string) (string, error) {
	return fmt.Sprintf("generated/%s/%s.docx", caseID.String(), templateCode), nil
}
