// Package prompts builds the message lists sent to the model service from
// the analysis-type catalog.
package prompts

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/BerylCAtieno/legal-assistant-api/internal/models"
)

// General is the analysis type used for unknown or empty identifiers.
const General = "general"

// HistoryWindow is the number of prior turns kept in a chat request.
const HistoryWindow = 10

//go:embed catalog.yaml
var defaultCatalog []byte

// AnalysisType is one instruction lens.
type AnalysisType struct {
	ID             string `yaml:"id"`
	Title          string `yaml:"title"`
	Description    string `yaml:"description"`
	Icon           string `yaml:"icon"`
	Hidden         bool   `yaml:"hidden"`
	SystemPrompt   string `yaml:"system_prompt"`
	DocumentPrompt string `yaml:"document_prompt"`
}

type catalogFile struct {
	DocumentSystemPrompt string         `yaml:"document_system_prompt"`
	Types                []AnalysisType `yaml:"types"`
}

// Catalog is read-only after construction and safe for concurrent use.
type Catalog struct {
	documentSystemPrompt string
	ordered              []AnalysisType
	byID                 map[string]AnalysisType
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Parse builds a Catalog from YAML. The catalog must define "general" and
// every type must have a unique id and both prompts.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse analysis catalog: %w", err)
	}
	if strings.TrimSpace(file.DocumentSystemPrompt) == "" {
		return nil, fmt.Errorf("analysis catalog: document_system_prompt is required")
	}

	c := &Catalog{
		documentSystemPrompt: file.DocumentSystemPrompt,
		byID:                 make(map[string]AnalysisType, len(file.Types)),
	}
	for _, t := range file.Types {
		switch {
		case t.ID == "":
			return nil, fmt.Errorf("analysis catalog: type without id")
		case t.SystemPrompt == "" || t.DocumentPrompt == "":
			return nil, fmt.Errorf("analysis catalog: type %q is missing a prompt", t.ID)
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("analysis catalog: duplicate type %q", t.ID)
		}
		c.byID[t.ID] = t
		c.ordered = append(c.ordered, t)
	}
	if _, ok := c.byID[General]; !ok {
		return nil, fmt.Errorf("analysis catalog: %q type is required", General)
	}
	return c, nil
}

// Resolve returns the analysis type for id, falling back to General.
func (c *Catalog) Resolve(id string) AnalysisType {
	if t, ok := c.byID[id]; ok {
		return t
	}
	return c.byID[General]
}

// Known reports whether id names a catalog entry.
func (c *Catalog) Known(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// List returns the visible analysis types in catalog order.
func (c *Catalog) List() []models.AnalysisTypeInfo {
	out := make([]models.AnalysisTypeInfo, 0, len(c.ordered))
	for _, t := range c.ordered {
		if t.Hidden {
			continue
		}
		out = append(out, models.AnalysisTypeInfo{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Icon:        t.Icon,
		})
	}
	return out
}
