package catalog

import (
	"github.com/samirnagib/app-lista-compras/internal/domain"
)

// Section is a derived grouping of products sharing a section label.
// It lives for one render pass and is never persisted.
type Section struct {
	Name     Label            `json:"name"`
	Icon     string           `json:"icon"`
	Products []domain.Product `json:"products"`
}

// Sectionize groups products by their effective section. A product's
// stored category wins when it is a known label; otherwise the name is
// categorized. Grouping is stable: products keep their relative order
// inside each section. Only non-empty sections are emitted, in the
// fixed SectionOrder.
func Sectionize(products []domain.Product) []Section {
	grouped := make(map[Label][]domain.Product)
	for _, p := range products {
		label := p.Category
		if !KnownLabel(label) {
			label = Categorize(p.Name)
		}
		grouped[label] = append(grouped[label], p)
	}

	sections := make([]Section, 0, len(grouped))
	for _, label := range SectionOrder {
		if members := grouped[label]; len(members) > 0 {
			sections = append(sections, Section{
				Name:     label,
				Icon:     Icon(label),
				Products: members,
			})
		}
	}
	return sections
}
