// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package corpus

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
)

// ResponseSpec is the structured form of one response definition.
type ResponseSpec struct {
	Keywords []string `json:"keywords" yaml:"keywords"`
	Message  string   `json:"message" yaml:"message"`
}

// ResponseEntry pairs a response name with its spec. Entries keep the order
// in which they appeared in the source document.
type ResponseEntry struct {
	Name string
	Spec ResponseSpec
}

// CategorySpec is one weighted domain-category definition.
type CategorySpec struct {
	Weight float64  `json:"weight" yaml:"weight"`
	Terms  []string `json:"terms" yaml:"terms"`
}

// Document is the raw, order-preserving parse of a corpus file. It still
// carries source spellings; Resolve produces the normalized Corpus.
type Document struct {
	Responses  []ResponseEntry
	Categories map[string]CategorySpec
	Redirects  map[string]string
}

// ParseJSON decodes a JSON corpus document. The responses object is decoded
// with a token walk so member order survives; a plain map decode would
// shuffle it.
func ParseJSON(data []byte) (*Document, error) {
	var plain struct {
		Categories map[string]CategorySpec `json:"categories"`
		Redirects  map[string]string       `json:"redirects"`
	}
	if err := json.Unmarshal(data, &plain); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	responses, err := parseOrderedResponses(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return &Document{
		Responses:  responses,
		Categories: plain.Categories,
		Redirects:  plain.Redirects,
	}, nil
}

// parseOrderedResponses walks the top-level object until it finds the
// "responses" member and decodes that object's members in declaration order.
func parseOrderedResponses(data []byte) ([]ResponseEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("document root is %v, want object", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyTok.(string)
		if key != "responses" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, err
			}
			continue
		}
		return decodeResponseEntries(dec)
	}
	return nil, nil
}

func decodeResponseEntries(dec *json.Decoder) ([]ResponseEntry, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("responses is %v, want object", tok)
	}

	var entries []ResponseEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		spec, err := jsonResponseSpec(raw)
		if err != nil {
			return nil, fmt.Errorf("response %q: %w", name, err)
		}
		entries = append(entries, ResponseEntry{Name: name, Spec: spec})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return entries, nil
}

// jsonResponseSpec accepts both response shapes: a full object, or a bare
// string that is only a message.
func jsonResponseSpec(raw json.RawMessage) (ResponseSpec, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var message string
		if err := json.Unmarshal(trimmed, &message); err != nil {
			return ResponseSpec{}, err
		}
		return ResponseSpec{Message: message}, nil
	}

	var spec ResponseSpec
	if err := json.Unmarshal(trimmed, &spec); err != nil {
		return ResponseSpec{}, err
	}
	return spec, nil
}

// ParseYAML decodes a YAML corpus document. The responses mapping is decoded
// into a yaml.MapSlice to keep member order.
func ParseYAML(data []byte) (*Document, error) {
	var raw struct {
		Responses  yaml.MapSlice           `yaml:"responses"`
		Categories map[string]CategorySpec `yaml:"categories"`
		Redirects  map[string]string       `yaml:"redirects"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	var entries []ResponseEntry
	for _, item := range raw.Responses {
		name, ok := item.Key.(string)
		if !ok {
			return nil, fmt.Errorf("%w: response key %v is not a string", ErrInvalidDocument, item.Key)
		}
		spec, err := yamlResponseSpec(item.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: response %q: %w", ErrInvalidDocument, name, err)
		}
		entries = append(entries, ResponseEntry{Name: name, Spec: spec})
	}

	return &Document{
		Responses:  entries,
		Categories: raw.Categories,
		Redirects:  raw.Redirects,
	}, nil
}

func yamlResponseSpec(value any) (ResponseSpec, error) {
	switch v := value.(type) {
	case nil:
		return ResponseSpec{}, nil
	case string:
		return ResponseSpec{Message: v}, nil
	case map[string]any:
		var spec ResponseSpec
		if message, ok := v["message"].(string); ok {
			spec.Message = message
		}
		if keywords, ok := v["keywords"].([]any); ok {
			for _, kw := range keywords {
				if s, ok := kw.(string); ok {
					spec.Keywords = append(spec.Keywords, s)
				}
			}
		}
		return spec, nil
	case yaml.MapSlice:
		var spec ResponseSpec
		for _, field := range v {
			key, _ := field.Key.(string)
			switch key {
			case "message":
				if s, ok := field.Value.(string); ok {
					spec.Message = s
				}
			case "keywords":
				if list, ok := field.Value.([]any); ok {
					for _, kw := range list {
						if s, ok := kw.(string); ok {
							spec.Keywords = append(spec.Keywords, s)
						}
					}
				}
			}
		}
		return spec, nil
	default:
		return ResponseSpec{}, fmt.Errorf("unsupported response value of type %T", value)
	}
}

// Parse decodes data using the format implied by ext (".yaml"/".yml" for
// YAML, JSON otherwise).
func Parse(data []byte, ext string) (*Document, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}
