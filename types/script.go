package types

// Script is the canonical in-memory output document. The serializer in
// package script renders it deterministically; nothing here is ordered —
// map keys are sorted at emission time.
type Script struct {
	System      SystemSection
	Config      ConfigSection
	Variables   map[string]Variable
	Language    LanguageSection
	Connections map[string]ConnectionSection
	Topics      map[string]Topic
}

// SystemSection carries agent-level instructions and canned messages.
type SystemSection struct {
	Instructions string
	Messages     MessagesSection
}

// MessagesSection carries the welcome and error messages.
type MessagesSection struct {
	Welcome string
	Error   string
}

// ConfigSection carries service identity fields.
type ConfigSection struct {
	DefaultAgentUser string
	AgentLabel       string
	DeveloperName    string
	Description      string
}

// VariableCategory classifies a script variable.
type VariableCategory string

const (
	// CategoryMutable marks variables the conversation may write.
	CategoryMutable VariableCategory = "mutable"
	// CategoryLinked marks variables bound to an external source.
	CategoryLinked VariableCategory = "linked"
)

// Variable is one entry of the script variable table. Names are unique;
// the first definition of a name wins.
type Variable struct {
	Category    VariableCategory
	Type        string
	Label       string
	Source      string
	Description string
}

// LanguageSection carries locale configuration.
type LanguageSection struct {
	DefaultLocale        string
	AdditionalLocales    string
	AllAdditionalLocales bool
}

// ConnectionSection carries per-channel connection settings.
type ConnectionSection struct {
	AdaptiveResponseAllowed bool
}

// Topic is one area of conversational responsibility.
type Topic struct {
	Label       string
	Description string
	Reasoning   ReasoningSection
	Actions     map[string]Action
}

// ReasoningSection holds a topic's instruction text plus named transition
// and tool references.
type ReasoningSection struct {
	Instructions string
	Actions      map[string]TransitionRef
}

// TransitionRef is a named pointer from a reasoning block to another topic
// or action.
type TransitionRef struct {
	Target      string
	Description string
	WithParams  []string
}

// Action is a detailed callable action definition within a topic. Action
// names are unique within one topic.
type Action struct {
	Description                string
	Label                      string
	RequireUserConfirmation    bool
	IncludeInProgressIndicator bool
	ProgressIndicatorMessage   string
	Source                     string
	Target                     string
	Inputs                     map[string]ActionInputDef
	Outputs                    map[string]ActionOutputDef
}

// ActionInputDef is one typed input of a detailed action.
type ActionInputDef struct {
	Type                string
	Const               any
	Description         string
	Label               string
	IsRequired          bool
	IsUserInput         bool
	ComplexDataTypeName string
}

// ActionOutputDef is one typed output of a detailed action.
type ActionOutputDef struct {
	Type                string
	Description         string
	Label               string
	IsDisplayable       bool
	IsUsedByPlanner     bool
	ComplexDataTypeName string
}

// ActionCount returns the total number of detailed actions across topics.
func (s *Script) ActionCount() int {
	n := 0
	for _, t := range s.Topics {
		n += len(t.Actions)
	}
	return n
}
