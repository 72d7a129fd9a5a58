package core

import (
	"fmt"
	"sort"
)

var DefaultModel = "deepseek-v3"

// Model is a type for model name and characteristics
type Model struct {
	Name         string
	TokenLimit   int
	upstreamName string
}

func (m *Model) String() string {
	status := ""
	if m.Name == DefaultModel {
		status = "*"
	}
	return fmt.Sprintf("%1s %-14s %-36s tokens: %d", status, m.Name, m.upstreamName, m.TokenLimit)
}

// Models is a type that manages the set of known model aliases.
type Models struct {
	// The list of known models.
	Available map[string]*Model
}

// NewModels creates a new Models object. The table maps short aliases
// to the identifiers local serving stacks publish. The server is free
// to override the identifier, so the table is advisory.
func NewModels() (models *Models) {
	models = &Models{}
	models.Available = make(map[string]*Model)
	add := func(name string, tokenLimit int, upstreamName string) {
		models.Available[name] = &Model{
			Name:         name,
			TokenLimit:   tokenLimit,
			upstreamName: upstreamName,
		}
	}

	add("deepseek-v3", 65536, "Pro/deepseek-ai/DeepSeek-V3")
	add("deepseek-r1", 65536, "Pro/deepseek-ai/DeepSeek-R1")
	add("llama3.1-8b", 131072, "meta-llama/Llama-3.1-8B-Instruct")
	add("qwen2.5-7b", 131072, "Qwen/Qwen2.5-7B-Instruct")
	add("mistral-7b", 32768, "mistralai/Mistral-7B-Instruct-v0.3")

	return
}

// Resolve returns the upstream identifier for a model name. If the
// given name is empty, the default model is used; if the name is not
// in the table it passes through verbatim, because the receiving
// server owns the model namespace.
func (models *Models) Resolve(name string) (upstream string) {
	if name == "" {
		name = DefaultModel
	}
	m, ok := models.Available[name]
	if !ok {
		return name
	}
	return m.upstreamName
}

// ListModels returns the known models sorted by name.
func (models *Models) ListModels() (list []*Model) {
	for _, m := range models.Available {
		list = append(list, m)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return
}
