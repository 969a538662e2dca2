// Package vault groups documents into the legal categories the product's
// vault screen displays, using keyword matching against document titles.
// The keyword dictionary is a product-configurable convenience, not a
// contract: callers may supply their own wholesale.
package vault

import (
	"strings"

	"github.com/licitadoc/licitadoc-go/api"
)

// The six legal buckets of the default vault layout, in display order.
const (
	CategoryLegal        = "Habilitação Jurídica"
	CategoryFiscal       = "Regularidade Fiscal e Trabalhista"
	CategoryFinancial    = "Qualificação Econômico-Financeira"
	CategoryTechnical    = "Qualificação Técnica"
	CategoryDeclarations = "Declarações"
	CategoryOther        = "Outros Documentos"
)

// Dictionary maps category names to lowercase keywords, with a display
// order and a fallback bucket for unmatched documents.
type Dictionary struct {
	Order    []string
	Keywords map[string][]string
	Fallback string
}

// DefaultDictionary returns the product's default keyword mapping.
func DefaultDictionary() Dictionary {
	return Dictionary{
		Order: []string{
			CategoryLegal,
			CategoryFiscal,
			CategoryFinancial,
			CategoryTechnical,
			CategoryDeclarations,
			CategoryOther,
		},
		Keywords: map[string][]string{
			CategoryLegal: {
				"contrato social", "estatuto", "ato constitutivo",
				"cartão cnpj", "requerimento de empresário",
			},
			CategoryFiscal: {
				"municipal", "estadual", "federal", "união", "fgts",
				"trabalhista", "cnd", "inss", "dívida ativa",
			},
			CategoryFinancial: {
				"balanço", "falência", "concordata", "patrimonial",
				"indices", "contábil",
			},
			CategoryTechnical: {
				"atestado", "crea", "cau", "acervo", "cat", "capacidade",
			},
			CategoryDeclarations: {
				"declaração", "cumprimento", "sustentabilidade", "menor",
			},
		},
		Fallback: CategoryOther,
	}
}

// Group splits one category's documents by validity. Expired documents are
// history; everything else (including expiring-soon warnings) is current.
type Group struct {
	Valid   []api.Document
	Expired []api.Document
}

// Categorizer groups documents by a Dictionary.
type Categorizer struct {
	dict Dictionary
}

// NewCategorizer uses the default dictionary.
func NewCategorizer() *Categorizer {
	return NewCategorizerWithDictionary(DefaultDictionary())
}

// NewCategorizerWithDictionary uses a custom dictionary. An empty fallback
// defaults to the last category of the order.
func NewCategorizerWithDictionary(dict Dictionary) *Categorizer {
	if dict.Fallback == "" && len(dict.Order) > 0 {
		dict.Fallback = dict.Order[len(dict.Order)-1]
	}
	return &Categorizer{dict: dict}
}

// Categories returns the display order, fallback included.
func (c *Categorizer) Categories() []string {
	out := make([]string, len(c.dict.Order))
	copy(out, c.dict.Order)
	return out
}

// Categorize groups documents into categories and validity buckets. Every
// category of the dictionary order is present in the result even when
// empty, so the display order is stable.
func (c *Categorizer) Categorize(documents []api.Document) map[string]*Group {
	structure := make(map[string]*Group, len(c.dict.Order))
	for _, category := range c.dict.Order {
		structure[category] = &Group{}
	}
	if _, ok := structure[c.dict.Fallback]; !ok {
		structure[c.dict.Fallback] = &Group{}
	}

	for _, doc := range documents {
		category := c.identify(strings.ToLower(doc.DisplayName()))
		group := structure[category]
		if doc.Status == api.DocumentStatusExpired {
			group.Expired = append(group.Expired, doc)
		} else {
			group.Valid = append(group.Valid, doc)
		}
	}
	return structure
}

// identify returns the first category in order whose keyword list matches.
func (c *Categorizer) identify(term string) string {
	for _, category := range c.dict.Order {
		for _, keyword := range c.dict.Keywords[category] {
			if strings.Contains(term, keyword) {
				return category
			}
		}
	}
	return c.dict.Fallback
}
