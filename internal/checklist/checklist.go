// Package checklist loads the SOP checklist the pipeline audits against
// and scrubs checklist identifiers from both prompt text and model output.
package checklist

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Checklist is the ordered set of required procedural steps for a call.
type Checklist struct {
	Name     string    `yaml:"name"`
	Sections []Section `yaml:"sections"`
}

// Section groups related steps, e.g. "Identity Verification".
type Section struct {
	Name  string   `yaml:"name"`
	Steps []string `yaml:"steps"`
}

// Steps flattens all sections into one ordered step list.
func (c *Checklist) Steps() []string {
	var steps []string
	for _, s := range c.Sections {
		steps = append(steps, s.Steps...)
	}
	return steps
}

// PromptText renders the checklist for prompt embedding. Section and step
// identifiers are scrubbed so the model cannot echo them back into
// findings or theme names.
func (c *Checklist) PromptText() string {
	var b strings.Builder
	for _, sec := range c.Sections {
		if name := PreprocessContent(sec.Name); name != "" {
			b.WriteString(name)
			b.WriteString("\n")
		}
		for _, step := range sec.Steps {
			if step = PreprocessContent(step); step != "" {
				b.WriteString("- ")
				b.WriteString(step)
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

// Load reads a checklist from a YAML file (.yaml/.yml) or treats any other
// extension as plain text with one step per non-empty line.
func Load(path string) (*Checklist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "checklist: read file")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAML(data)
	default:
		return parseText(string(data)), nil
	}
}

func parseYAML(data []byte) (*Checklist, error) {
	var c Checklist
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, eris.Wrap(err, "checklist: parse yaml")
	}
	if len(c.Sections) == 0 {
		return nil, eris.New("checklist: no sections defined")
	}
	return &c, nil
}

func parseText(content string) *Checklist {
	sec := Section{Name: "Checklist"}
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "-* \t"))
		if line != "" {
			sec.Steps = append(sec.Steps, line)
		}
	}
	return &Checklist{Name: "Checklist", Sections: []Section{sec}}
}
