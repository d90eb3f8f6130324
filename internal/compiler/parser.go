package compiler

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/nfasim/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Format selects the encoding used by Encode.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Parser is responsible for converting raw bytes into a Definition.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes a YAML or JSON document (JSON is valid YAML) into a Definition.
// Scalars are weakly typed so that `alphabet: [0, 1]` and `to: q1` are accepted;
// `sigma` is an alias of `alphabet` and `on` an alias of a transition's `symbol`.
func (p *Parser) Parse(data []byte) (*domain.Definition, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse definition: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("failed to parse definition: empty document")
	}
	normalize(raw)

	var def domain.Definition
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &def,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid definition: %w", err)
	}
	return &def, nil
}

// Encode renders a definition in the requested format.
func (p *Parser) Encode(def *domain.Definition, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(def, "", "  ")
	case FormatYAML, "":
		return yaml.Marshal(def)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

func normalize(raw map[string]any) {
	if sigma, ok := raw["sigma"]; ok {
		if _, has := raw["alphabet"]; !has {
			raw["alphabet"] = sigma
		}
		delete(raw, "sigma")
	}

	transitions, ok := raw["transitions"].([]any)
	if !ok {
		return
	}
	for _, item := range transitions {
		t, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if on, ok := t["on"]; ok {
			if _, has := t["symbol"]; !has {
				t["symbol"] = on
			}
			delete(t, "on")
		}
	}
}
