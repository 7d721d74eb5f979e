// Package prompt holds the instruction templates and assembles the final
// prompt sent to the language model.
package prompt

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var promptsYAML []byte

// Template is a named instruction template.
type Template struct {
	Name        string `yaml:"name"`
	Instruction string `yaml:"instruction"`
}

// Library is the set of available templates.
type Library struct {
	templates map[string]Template
}

// LoadLibrary parses the embedded template file.
func LoadLibrary() (*Library, error) {
	return parseLibrary(promptsYAML)
}

func parseLibrary(raw []byte) (*Library, error) {
	var doc struct {
		Prompts []Template `yaml:"prompts"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse prompts: %w", err)
	}
	if len(doc.Prompts) == 0 {
		return nil, fmt.Errorf("no prompt templates defined")
	}

	lib := &Library{templates: make(map[string]Template, len(doc.Prompts))}
	for _, t := range doc.Prompts {
		if t.Name == "" || strings.TrimSpace(t.Instruction) == "" {
			return nil, fmt.Errorf("prompt template missing name or instruction")
		}
		lib.templates[t.Name] = t
	}
	return lib, nil
}

// Get returns the template with the given name.
func (l *Library) Get(name string) (Template, error) {
	t, ok := l.templates[name]
	if !ok {
		return Template{}, fmt.Errorf("unknown prompt template %q", name)
	}
	return t, nil
}

// Assemble builds the model prompt from the instruction, the timestamped
// segment overview, and the full transcript text, in that order.
//
// transcriptCap bounds the transcript portion in characters; 0 means no cap.
// Long videos can otherwise overrun the model's input limit.
func Assemble(t Template, segmentOverview, fullText string, transcriptCap int) string {
	if transcriptCap > 0 && len(fullText) > transcriptCap {
		fullText = fullText[:transcriptCap]
	}

	var b strings.Builder
	b.WriteString(strings.TrimSpace(t.Instruction))
	b.WriteString("\n\nUse these timestamps as reference points: ")
	b.WriteString(segmentOverview)
	b.WriteString("\n\nTranscript: ")
	b.WriteString(fullText)
	return b.String()
}
