// Package metadata supplies the per-architecture StructureMetadata records
// that drive path resolution. Records are data; adding an architecture
// style means adding a record, not a branch.
package metadata

import (
	"fmt"

	"github.com/archgen/archgen/internal/domain"
)

// Provider is an immutable set of StructureMetadata records keyed by architecture.
// It is safe for concurrent use.
type Provider struct {
	records map[domain.ArchitectureType]domain.StructureMetadata
}

// New builds a provider from records. Later records replace earlier ones
// for the same architecture. Every record must validate.
func New(records ...domain.StructureMetadata) (*Provider, error) {
	p := &Provider{records: make(map[domain.ArchitectureType]domain.StructureMetadata, len(records))}
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("metadata for %q: %w", r.Architecture, err)
		}
		p.records[r.Architecture] = r.Clone()
	}
	return p, nil
}

// Builtin returns a provider holding the built-in record for every architecture.
func Builtin() *Provider {
	p, err := New(builtinRecords()...)
	if err != nil {
		panic(fmt.Sprintf("builtin metadata is invalid: %v", err))
	}
	return p
}

// With returns a new provider holding p's records overlaid by records.
func (p *Provider) With(records ...domain.StructureMetadata) (*Provider, error) {
	all := make([]domain.StructureMetadata, 0, len(p.records)+len(records))
	for _, a := range p.Architectures() {
		all = append(all, p.records[a])
	}
	return New(append(all, records...)...)
}

// MetadataFor returns a private copy of the record for arch.
func (p *Provider) MetadataFor(arch domain.ArchitectureType) (domain.StructureMetadata, error) {
	m, ok := p.records[arch]
	if !ok {
		return domain.StructureMetadata{}, &domain.UnknownArchitectureError{Value: string(arch)}
	}
	return m.Clone(), nil
}

// Has reports whether the provider holds a record for arch.
func (p *Provider) Has(arch domain.ArchitectureType) bool {
	_, ok := p.records[arch]
	return ok
}

// Architectures lists the covered architectures in enumeration order.
func (p *Provider) Architectures() []domain.ArchitectureType {
	var out []domain.ArchitectureType
	for _, a := range domain.ValidArchitectures {
		if p.Has(a) {
			out = append(out, a)
		}
	}
	return out
}
