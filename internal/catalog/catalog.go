// Package catalog mantém o registro estático dos relatórios do GA4 e seus
// schemas de destino no warehouse. O catálogo é construído uma única vez na
// inicialização e é seguro para leitura concorrente.
package catalog

import (
	"fmt"

	"github.com/cadastra/analytics-extractor-api/internal/domain"
)

// UnknownReportError indica que a chave de relatório não existe no catálogo
type UnknownReportError struct {
	Key string
}

func (e *UnknownReportError) Error() string {
	return fmt.Sprintf("relatório não encontrado no catálogo: %s", e.Key)
}

// Catalog é o registro imutável de definições de relatório
type Catalog struct {
	byKey map[string]domain.ReportDefinition
	keys  []string
}

// New constrói um catálogo a partir das definições informadas, preservando
// a ordem de enumeração. Chaves duplicadas causam panic: o catálogo é
// definido em código e um conflito é erro de programação, não de runtime.
func New(defs ...domain.ReportDefinition) *Catalog {
	c := &Catalog{
		byKey: make(map[string]domain.ReportDefinition, len(defs)),
		keys:  make([]string, 0, len(defs)),
	}

	for _, def := range defs {
		if _, exists := c.byKey[def.Key]; exists {
			panic(fmt.Sprintf("chave de relatório duplicada no catálogo: %s", def.Key))
		}
		c.byKey[def.Key] = def
		c.keys = append(c.keys, def.Key)
	}

	return c
}

// Default constrói o catálogo padrão com todos os relatórios GA4 conhecidos
func Default() *Catalog {
	return New(defaultReports()...)
}

// Get retorna a definição do relatório com a chave informada
func (c *Catalog) Get(key string) (domain.ReportDefinition, error) {
	def, ok := c.byKey[key]
	if !ok {
		return domain.ReportDefinition{}, &UnknownReportError{Key: key}
	}
	return def, nil
}

// ListByCategory retorna as definições de uma categoria, na ordem do catálogo
func (c *Catalog) ListByCategory(category domain.ReportCategory) []domain.ReportDefinition {
	defs := make([]domain.ReportDefinition, 0)
	for _, key := range c.keys {
		if def := c.byKey[key]; def.Category == category {
			defs = append(defs, def)
		}
	}
	return defs
}

// All retorna todas as definições na ordem de enumeração do catálogo
func (c *Catalog) All() []domain.ReportDefinition {
	defs := make([]domain.ReportDefinition, 0, len(c.keys))
	for _, key := range c.keys {
		defs = append(defs, c.byKey[key])
	}
	return defs
}

// AllKeys retorna todas as chaves na ordem de enumeração do catálogo.
// A ordem é determinística e é a mesma usada na agregação do RunSummary.
func (c *Catalog) AllKeys() []string {
	keys := make([]string, len(c.keys))
	copy(keys, c.keys)
	return keys
}

// Len retorna o número de relatórios registrados
func (c *Catalog) Len() int {
	return len(c.keys)
}
