package prompt

// template placeholders
const (
	PlaceholderContext = "{context_str}"
	PlaceholderQuery   = "{query_str}"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// one prior conversation turn, oldest first
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// validated prompt template plus the label used for assistant turns
type Assembler struct {
	template       string
	assistantLabel string
}

// on-disk form of a template override
type templateFile struct {
	Template       string `yaml:"template"`
	AssistantLabel string `yaml:"assistant_label"`
}
