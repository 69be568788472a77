package convert

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/nga-tools/agentscript/internal/textutil"
	"github.com/nga-tools/agentscript/rules"
	"github.com/nga-tools/agentscript/script"
	"github.com/nga-tools/agentscript/types"
	"github.com/nga-tools/agentscript/variables"
)

// Result carries the rendered script plus the conversion facts callers
// surface to users. AlertMessage and StatusSuffix are set only when legacy
// placeholders were found in the input.
type Result struct {
	Script             *types.Script
	Text               string
	LegacyPlaceholders bool
	TopicCount         int
	ActionCount        int
	AlertMessage       string
	StatusSuffix       string
}

// Converter converts agent definitions under one rules document. It is
// stateless across calls and safe for concurrent use.
type Converter struct {
	res    *rules.Resolver
	rw     *variables.Rewriter
	logger *zap.Logger
}

// New creates a Converter. Both the rules document and the logger are
// optional.
func New(doc *types.ConversionRules, logger *zap.Logger) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{
		res:    rules.NewResolver(doc, logger),
		rw:     variables.NewRewriter(doc, logger),
		logger: logger,
	}
}

// Convert is the one-shot form of Converter.Convert.
func Convert(def *types.AgentDefinition, doc *types.ConversionRules, logger *zap.Logger) (*Result, error) {
	return New(doc, logger).Convert(def)
}

// Convert transforms one agent definition into a rendered script. Shape
// detection is ordered: capability bundles win over pre-structured topics,
// and anything else converts through the minimal path.
func (c *Converter) Convert(def *types.AgentDefinition) (*Result, error) {
	if def == nil {
		return nil, types.NewError(types.ErrInvalidInput, "nil agent definition")
	}
	if err := validateDefinition(def); err != nil {
		return nil, err
	}

	var s *types.Script
	switch {
	case len(def.Plugins) > 0:
		s = c.convertBundle(def)
	case len(def.Topics) > 0:
		s = c.convertStructured(def)
	default:
		s = c.convertMinimal(def)
	}
	c.ensureDefaultTopics(s)

	result := &Result{
		Script:      s,
		Text:        script.Render(s, c.res, c.rw),
		TopicCount:  len(s.Topics),
		ActionCount: s.ActionCount(),
	}

	// Legacy placeholders are detected over the whole serialized input so
	// fields the converter never reads still trigger the alert.
	if raw, err := json.Marshal(def); err == nil && c.rw.Detect(string(raw)) {
		result.LegacyPlaceholders = true
		result.AlertMessage = rules.AlertMessage(c.res.Doc())
		result.StatusSuffix = rules.StatusSuffix(c.res.Doc())
	}

	c.logger.Debug("converted agent definition",
		zap.Int("topics", result.TopicCount),
		zap.Int("actions", result.ActionCount),
		zap.Bool("legacy_placeholders", result.LegacyPlaceholders))
	return result, nil
}

// convertBundle handles the capability-bundle shape: plugins become topics,
// functions become actions, and function properties seed the variable table.
func (c *Converter) convertBundle(def *types.AgentDefinition) *types.Script {
	agentID := def.ID
	if agentID == "" {
		agentID = "example"
	}

	s := &types.Script{
		System: types.SystemSection{
			Instructions: c.buildSystemInstructions(def),
			Messages: types.MessagesSection{
				Welcome: extractWelcomeMessage(def),
				Error:   c.res.ErrorMessage(),
			},
		},
		Config: types.ConfigSection{
			DefaultAgentUser: "agentforce_service_agent@" + agentID + ".ext",
			AgentLabel:       textutil.FirstNonEmpty(def.Label, def.Name, "Agentforce Service Agent"),
			DeveloperName: textutil.DeveloperName(
				textutil.FirstNonEmpty(def.Name, def.Label, "Agent")),
			Description: textutil.CleanDescription(def.Description),
		},
		Variables: extractBundleVariables(def, c.res),
		Language: types.LanguageSection{
			DefaultLocale:        textutil.FirstNonEmpty(def.Locale, c.res.DefaultLocale()),
			AdditionalLocales:    textutil.FormatLocales(def.SecondaryLocales),
			AllAdditionalLocales: c.res.AllAdditionalLocales(),
		},
		Connections: map[string]types.ConnectionSection{},
		Topics:      map[string]types.Topic{},
	}

	channel := "messaging"
	if def.VoiceConfig != nil {
		channel = "voice"
	}
	s.Connections["connection "+channel] = types.ConnectionSection{
		AdaptiveResponseAllowed: c.res.AdaptiveResponseAllowed(),
	}

	var topicNames []string
	for i := range def.Plugins {
		plugin := &def.Plugins[i]
		if plugin.PluginType != types.PluginTypeTopic {
			continue
		}
		name := textutil.SanitizeTopicName(
			textutil.FirstNonEmpty(plugin.LocalDevName, plugin.Name))
		topicNames = append(topicNames, name)
		s.Topics["topic "+name] = c.pluginToTopic(plugin)
	}
	s.Topics["start_agent topic_selector"] = c.buildTopicSelector(topicNames)

	return s
}

// convertStructured handles the pre-structured shape: topics and actions
// arrive almost in output form and need defaulting more than synthesis.
func (c *Converter) convertStructured(def *types.AgentDefinition) *types.Script {
	s := &types.Script{
		System: types.SystemSection{
			Instructions: textutil.FirstNonEmpty(def.Description, c.res.SystemInstructions()),
			Messages: types.MessagesSection{
				Welcome: textutil.FirstNonEmpty(def.WelcomeMessage, c.res.WelcomeMessage()),
				Error:   c.res.ErrorMessage(),
			},
		},
		Config: types.ConfigSection{
			DefaultAgentUser: "agentforce_service_agent@example.ext",
			AgentLabel:       textutil.FirstNonEmpty(def.Label, def.Name, "Custom Agent"),
			DeveloperName: textutil.DeveloperName(
				textutil.FirstNonEmpty(def.Name, def.Label, "Agent")),
			Description: textutil.FirstNonEmpty(def.Description, "Service Agent"),
		},
		Variables: extractDeclaredVariables(def),
		Language: types.LanguageSection{
			DefaultLocale:        textutil.FirstNonEmpty(def.Locale, c.res.DefaultLocale()),
			AllAdditionalLocales: c.res.AllAdditionalLocales(),
		},
		Connections: map[string]types.ConnectionSection{
			"connection messaging": {AdaptiveResponseAllowed: c.res.AdaptiveResponseAllowed()},
		},
		Topics: map[string]types.Topic{},
	}

	var topicNames []string
	for i := range def.Topics {
		topic := &def.Topics[i]
		name := textutil.SanitizeTopicName(
			textutil.FirstNonEmpty(topic.Name, topic.ID))
		topicNames = append(topicNames, name)

		s.Topics["topic "+name] = types.Topic{
			Label:       textutil.FirstNonEmpty(topic.Label, textutil.FormatLabel(name)),
			Description: textutil.MergeDescriptionScope(topic.Description, topic.Scope, name),
			Reasoning: types.ReasoningSection{
				Instructions: textutil.FirstNonEmpty(
					topic.Instructions, topic.Reasoning, rules.DefaultGenericInstruction),
			},
			Actions: c.structuredActions(topic.Actions),
		}
	}
	s.Topics["start_agent topic_selector"] = c.buildTopicSelector(topicNames)

	return s
}

// structuredActions converts pre-structured action entries into detailed
// definitions, dropping transition and escalation entries which are carried
// by reasoning references instead.
func (c *Converter) structuredActions(entries []types.ActionInput) map[string]types.Action {
	actions := make(map[string]types.Action)

	for i := range entries {
		entry := &entries[i]
		if entry.Target != "" || entry.Type == "transition" || entry.Type == "escalate" {
			continue
		}
		name := textutil.FirstNonEmpty(entry.Name, entry.ID, "action")

		action := types.Action{
			Description:                textutil.FirstNonEmpty(entry.Description, name),
			Label:                      entry.Label,
			RequireUserConfirmation:    entry.RequireUserConfirmation,
			IncludeInProgressIndicator: entry.IncludeInProgressIndicator,
			ProgressIndicatorMessage:   entry.ProgressIndicatorMessage,
			Source:                     entry.Source,
			Target: textutil.FirstNonEmpty(
				entry.InvocationTarget, entry.TargetName, "action://"+name),
		}

		if len(entry.Inputs) > 0 {
			action.Inputs = make(map[string]types.ActionInputDef, len(entry.Inputs))
			for inputName, prop := range entry.Inputs {
				isUserInput := true
				if prop.IsUserInput != nil {
					isUserInput = *prop.IsUserInput
				}
				action.Inputs[inputName] = types.ActionInputDef{
					Type:                textutil.FirstNonEmpty(prop.Type, "string"),
					Const:               prop.Default,
					Description:         prop.Description,
					Label:               textutil.FirstNonEmpty(prop.Label, inputName),
					IsRequired:          prop.Required,
					IsUserInput:         isUserInput,
					ComplexDataTypeName: prop.ComplexType,
				}
			}
		}

		if len(entry.Outputs) > 0 {
			action.Outputs = make(map[string]types.ActionOutputDef, len(entry.Outputs))
			for outputName, prop := range entry.Outputs {
				isDisplayable := false
				if prop.IsDisplayable != nil {
					isDisplayable = *prop.IsDisplayable
				}
				isUsedByPlanner := true
				if prop.IsUsedByPlanner != nil {
					isUsedByPlanner = *prop.IsUsedByPlanner
				}
				action.Outputs[outputName] = types.ActionOutputDef{
					Type:                textutil.FirstNonEmpty(prop.Type, "string"),
					Description:         prop.Description,
					Label:               textutil.FirstNonEmpty(prop.Label, outputName),
					IsDisplayable:       isDisplayable,
					IsUsedByPlanner:     isUsedByPlanner,
					ComplexDataTypeName: prop.ComplexType,
				}
			}
		}

		actions[name] = action
	}

	if len(actions) == 0 {
		return nil
	}
	return actions
}

// convertMinimal handles inputs with neither plugins nor topics: a skeleton
// script built almost entirely from resolved defaults.
func (c *Converter) convertMinimal(def *types.AgentDefinition) *types.Script {
	s := &types.Script{
		System: types.SystemSection{
			Instructions: textutil.FirstNonEmpty(def.PlannerRole, c.res.SystemInstructions()),
			Messages: types.MessagesSection{
				Welcome: c.res.WelcomeMessage(),
				Error:   c.res.ErrorMessage(),
			},
		},
		Config: types.ConfigSection{
			DefaultAgentUser: "agentforce_service_agent@example.ext",
			AgentLabel:       textutil.FirstNonEmpty(def.Label, def.Name, "Custom Agent"),
			DeveloperName: textutil.DeveloperName(
				textutil.FirstNonEmpty(def.Name, "Agent")),
			Description: textutil.FirstNonEmpty(def.Description, "Service Agent"),
		},
		Variables: map[string]types.Variable{},
		Language: types.LanguageSection{
			DefaultLocale:        textutil.FirstNonEmpty(def.Locale, c.res.DefaultLocale()),
			AllAdditionalLocales: c.res.AllAdditionalLocales(),
		},
		Connections: map[string]types.ConnectionSection{
			"connection messaging": {AdaptiveResponseAllowed: c.res.AdaptiveResponseAllowed()},
		},
		Topics: map[string]types.Topic{},
	}

	s.Topics["start_agent topic_selector"] = c.buildTopicSelector(nil)
	s.Topics["topic escalation"] = c.defaultEscalationTopic()
	s.Topics["topic off_topic"] = c.defaultOffTopic()
	s.Topics["topic ambiguous_question"] = c.defaultAmbiguousTopic()

	return s
}
