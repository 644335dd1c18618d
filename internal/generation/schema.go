package generation

import "google.golang.org/genai"

func stringSchema() *genai.Schema {
	return &genai.Schema{Type: genai.TypeString}
}

func objectArraySchema(fields ...string) *genai.Schema {
	props := make(map[string]*genai.Schema, len(fields))
	for _, f := range fields {
		props[f] = stringSchema()
	}
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type:       genai.TypeObject,
			Properties: props,
		},
	}
}

// contractSchema constrains the reply to the GeneratedContract shape.
func contractSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":      stringSchema(),
			"opening":    stringSchema(),
			"parties":    objectArraySchema("id", "details"),
			"preamble":   stringSchema(),
			"clauses":    objectArraySchema("title", "content"),
			"closing":    stringSchema(),
			"signatures": objectArraySchema("party", "name"),
		},
		PropertyOrdering: []string{"title", "opening", "parties", "preamble", "clauses", "closing", "signatures"},
	}
}
