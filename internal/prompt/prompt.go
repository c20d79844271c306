package prompt

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultAssistantLabel = "Assistant"

// returns an assembler using the built-in template
func Default(assistantLabel string) *Assembler {
	a, _ := New(defaultTemplate, assistantLabel) //nolint:errcheck // built-in template is valid
	return a
}

// template must contain both {context_str} and {query_str}
func New(template, assistantLabel string) (*Assembler, error) {
	if !strings.Contains(template, PlaceholderContext) {
		return nil, fmt.Errorf("template is missing %s", PlaceholderContext)
	}

	if !strings.Contains(template, PlaceholderQuery) {
		return nil, fmt.Errorf("template is missing %s", PlaceholderQuery)
	}

	if strings.TrimSpace(assistantLabel) == "" {
		assistantLabel = defaultAssistantLabel
	}

	return &Assembler{template: template, assistantLabel: assistantLabel}, nil
}

// loads a YAML template file; an empty path selects the built-in template
func Load(path, assistantLabel string) (*Assembler, error) {
	if path == "" {
		return Default(assistantLabel), nil
	}

	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt template: %w", err)
	}

	var file templateFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse prompt template %s: %w", path, err)
	}

	if file.AssistantLabel != "" {
		assistantLabel = file.AssistantLabel
	}

	return New(file.Template, assistantLabel)
}

// formats history as "User:"/"<assistant>:" lines, oldest first
func (a *Assembler) FormatHistory(history []Turn) string {
	var sb strings.Builder

	for _, turn := range history {
		label := "User"
		if turn.Role == RoleAssistant {
			label = a.assistantLabel
		}

		sb.WriteString(label)
		sb.WriteString(": ")
		sb.WriteString(turn.Content)
		sb.WriteString("\n")
	}

	return sb.String()
}

// history followed by the current message
func (a *Assembler) Query(history []Turn, message string) string {
	return a.FormatHistory(history) + "User: " + message
}

// fills the template. substitution is a single pass, so placeholder text
// inside user content or documents is never expanded.
func (a *Assembler) Assemble(history []Turn, message string, contextTexts []string) string {
	replacer := strings.NewReplacer(
		PlaceholderContext, strings.Join(contextTexts, "\n\n"),
		PlaceholderQuery, a.Query(history, message),
	)

	return replacer.Replace(a.template)
}
