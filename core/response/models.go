package response

import (
	"encoding/json"
	"fmt"
)

// ModelTag is one entry in the Ollama /api/tags model list. Depending on the
// server version the identifier arrives under "name" or "model", so both are
// captured and resolved through Identifier.
type ModelTag struct {
	Name  string `json:"name"`
	Model string `json:"model"`
}

// Identifier returns the model identifier regardless of which key the server
// populated. Empty when the entry carries neither.
func (t ModelTag) Identifier() string {
	if t.Name != "" {
		return t.Name
	}
	return t.Model
}

// TagsResponse represents the Ollama /api/tags model listing.
type TagsResponse struct {
	Models []ModelTag `json:"models"`
}

// ParseTags parses a model listing from JSON bytes.
func ParseTags(body []byte) (*TagsResponse, error) {
	var response TagsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse tags response: %w", err)
	}
	return &response, nil
}

// Names returns the identifiers of all listed models, skipping entries with
// no usable identifier.
func (r *TagsResponse) Names() []string {
	names := make([]string, 0, len(r.Models))
	for _, tag := range r.Models {
		if id := tag.Identifier(); id != "" {
			names = append(names, id)
		}
	}
	return names
}

// Has reports whether a model with the given identifier is listed.
func (r *TagsResponse) Has(name string) bool {
	for _, tag := range r.Models {
		if tag.Identifier() == name {
			return true
		}
	}
	return false
}
