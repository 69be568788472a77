package convert

import (
	"sort"
	"strings"

	"github.com/nga-tools/agentscript/internal/textutil"
	"github.com/nga-tools/agentscript/rules"
	"github.com/nga-tools/agentscript/types"
)

// buildSystemInstructions assembles agent-level instructions from the
// planner fields, joined with single spaces.
func (c *Converter) buildSystemInstructions(def *types.AgentDefinition) string {
	var parts []string

	if def.PlannerRole != "" {
		parts = append(parts, c.rw.Rewrite(def.PlannerRole))
	}
	if def.PlannerCompany != "" {
		parts = append(parts, c.rw.Rewrite(def.PlannerCompany))
	}
	if tone, ok := toneSentences[def.PlannerToneType]; ok {
		parts = append(parts, tone)
	}
	if def.UserLocation != "" {
		parts = append(parts, "User location: "+def.UserLocation+".")
	}

	if len(parts) == 0 {
		return c.res.SystemInstructions()
	}
	return strings.Join(parts, " ")
}

var toneSentences = map[string]string{
	"CASUAL":  "Maintain a casual and friendly tone.",
	"FORMAL":  "Maintain a formal and professional tone.",
	"NEUTRAL": "Maintain a neutral and balanced tone.",
}

// extractWelcomeMessage picks the first welcome field present, then falls
// back to a greeting built from the agent label.
func extractWelcomeMessage(def *types.AgentDefinition) string {
	if def.WelcomeMessage != "" {
		return def.WelcomeMessage
	}
	if def.WelcomeMessageAlt != "" {
		return def.WelcomeMessageAlt
	}
	label := textutil.FirstNonEmpty(def.Label, def.Name, "AI Assistant")
	return "Hi, I'm " + label + ". How can I help you today?"
}

// pluginToTopic converts one topic-type capability bundle into a topic with
// detailed actions and matching reasoning references.
func (c *Converter) pluginToTopic(plugin *types.Plugin) types.Topic {
	actions := c.buildDetailedActions(plugin)
	fallbackName := textutil.FirstNonEmpty(plugin.Label, plugin.Name, "Unknown")

	return types.Topic{
		Label:       textutil.FirstNonEmpty(plugin.Label, textutil.FormatLabel(plugin.Name)),
		Description: textutil.MergeDescriptionScope(plugin.Description, plugin.Scope, fallbackName),
		Reasoning: types.ReasoningSection{
			Instructions: c.buildTopicInstructions(plugin),
			Actions:      reasoningRefs(actions),
		},
		Actions: actions,
	}
}

// reasoningRefs derives reasoning action references from detailed actions:
// each action gets a tool reference carrying its input names, sorted, as
// with-parameters.
func reasoningRefs(actions map[string]types.Action) map[string]types.TransitionRef {
	if len(actions) == 0 {
		return nil
	}
	refs := make(map[string]types.TransitionRef, len(actions))
	for name, action := range actions {
		var params []string
		if action.Inputs != nil {
			params = make([]string, 0, len(action.Inputs))
			for input := range action.Inputs {
				params = append(params, input)
			}
			sort.Strings(params)
		}
		refs[name] = types.TransitionRef{
			Target:     "@actions." + name,
			WithParams: params,
		}
	}
	return refs
}

// buildTopicInstructions concatenates scope and instruction fragments, then
// appends the resolved security-rule sentences to guard-style topics.
func (c *Converter) buildTopicInstructions(plugin *types.Plugin) string {
	var parts []string

	if plugin.Scope != "" {
		parts = append(parts, c.rw.Rewrite(plugin.Scope))
	}
	for _, instr := range plugin.InstructionDefinitions {
		if instr.Description != "" {
			parts = append(parts, c.rw.Rewrite(instr.Description))
		}
	}

	topicName := textutil.SanitizeTopicName(
		textutil.FirstNonEmpty(plugin.LocalDevName, plugin.Name))
	if isGuardTopicName(topicName) {
		if securityRules := c.res.SecurityRules(); len(securityRules) > 0 {
			parts = append(parts, "Rules:")
			for _, rule := range securityRules {
				parts = append(parts, "  "+rule)
			}
		}
	}

	if len(parts) == 0 {
		return rules.DefaultGenericInstruction
	}
	return strings.Join(parts, "\n")
}

func isGuardTopicName(name string) bool {
	return strings.Contains(name, "off_topic") ||
		strings.Contains(name, "offtopic") ||
		strings.Contains(name, "ambiguous") ||
		strings.Contains(name, "general")
}

// buildDetailedActions converts the functions of a capability bundle into
// detailed action definitions.
func (c *Converter) buildDetailedActions(plugin *types.Plugin) map[string]types.Action {
	if len(plugin.Functions) == 0 {
		return nil
	}
	actions := make(map[string]types.Action, len(plugin.Functions))

	for i := range plugin.Functions {
		fn := &plugin.Functions[i]
		name := textutil.SanitizeActionName(
			textutil.FirstNonEmpty(fn.LocalDevName, fn.Name))

		action := types.Action{
			Description: textutil.CleanDescription(
				textutil.FirstNonEmpty(fn.Description, fn.Label, name)),
			Label:                      fn.Label,
			RequireUserConfirmation:    fn.RequireUserConfirmation,
			IncludeInProgressIndicator: fn.IncludeInProgressIndicator,
			ProgressIndicatorMessage:   fn.ProgressIndicatorMessage,
			Source:                     fn.Source,
			Target:                     c.buildActionTarget(fn),
		}
		if fn.InputType != nil {
			action.Inputs = buildDetailedInputs(fn.InputType, c.res)
		}
		if fn.OutputType != nil {
			action.Outputs = buildDetailedOutputs(fn.OutputType, c.res)
		}
		actions[name] = action
	}
	return actions
}

// buildActionTarget renders the target URI: the mapped invocation type plus
// the best available target identifier.
func (c *Converter) buildActionTarget(fn *types.Function) string {
	targetType := fn.InvocationTargetType
	if targetType == "" {
		targetType = "action"
	}
	if mapped, ok := c.res.TargetMappings()[targetType]; ok {
		targetType = mapped
	}
	targetName := textutil.FirstNonEmpty(
		fn.InvocationTargetName, fn.InvocationTargetID, fn.Name, "unknown")
	return targetType + "://" + targetName
}

func buildDetailedInputs(ps *types.PropertySet, res *rules.Resolver) map[string]types.ActionInputDef {
	inputs := make(map[string]types.ActionInputDef, len(ps.Properties))

	for _, rawName := range sortedPropertyNames(ps) {
		prop := ps.Properties[rawName]
		name := strings.ReplaceAll(rawName, "Input:", "")

		isRequired := false
		for _, req := range ps.Required {
			if req == rawName {
				isRequired = true
				break
			}
		}
		isUserInput := isRequired
		if prop.IsUserInput != nil {
			isUserInput = *prop.IsUserInput
		}

		constValue := prop.ConstValue
		if constValue == nil {
			constValue = prop.DefaultValue
		}

		inputs[name] = types.ActionInputDef{
			Type:                mapPropertyType(res, prop.Type, prop),
			Const:               constValue,
			Description:         textutil.FirstNonEmpty(prop.Description, prop.Title),
			Label:               textutil.FirstNonEmpty(prop.Title, name),
			IsRequired:          isRequired,
			IsUserInput:         isUserInput,
			ComplexDataTypeName: prop.LightningType,
		}
	}
	return inputs
}

func buildDetailedOutputs(ps *types.PropertySet, res *rules.Resolver) map[string]types.ActionOutputDef {
	outputs := make(map[string]types.ActionOutputDef, len(ps.Properties))

	for _, rawName := range sortedPropertyNames(ps) {
		prop := ps.Properties[rawName]
		name := strings.ReplaceAll(rawName, "Output:", "")

		isDisplayable := false
		if prop.IsDisplayable != nil {
			isDisplayable = *prop.IsDisplayable
		}
		isUsedByPlanner := true
		if prop.IsUsedByPlanner != nil {
			isUsedByPlanner = *prop.IsUsedByPlanner
		}

		outputs[name] = types.ActionOutputDef{
			Type:                mapPropertyType(res, prop.Type, prop),
			Description:         textutil.FirstNonEmpty(prop.Description, prop.Title),
			Label:               textutil.FirstNonEmpty(prop.Title, name),
			IsDisplayable:       isDisplayable,
			IsUsedByPlanner:     isUsedByPlanner,
			ComplexDataTypeName: prop.LightningType,
		}
	}
	return outputs
}

// buildTopicSelector builds the entry dispatcher: one transition per topic
// name plus the guaranteed default transitions.
func (c *Converter) buildTopicSelector(topicNames []string) types.Topic {
	actions := make(map[string]types.TransitionRef, len(topicNames)+3)

	for _, name := range topicNames {
		actions["go_to_"+name] = types.TransitionRef{
			Target: "@utils.transition to @topic." + name,
		}
	}
	for name, ref := range c.res.SelectorTransitions() {
		if _, ok := actions[name]; !ok {
			actions[name] = ref
		}
	}

	tmpl := c.res.TopicSelectorTemplate()
	return types.Topic{
		Label:       tmpl.Label,
		Description: tmpl.Description,
		Reasoning: types.ReasoningSection{
			Instructions: tmpl.Instructions,
			Actions:      actions,
		},
	}
}

// ensureDefaultTopics guarantees the escalation, off-topic, and
// ambiguous-question topics exist, matching present topics by name
// substring so input-provided variants are not duplicated.
func (c *Converter) ensureDefaultTopics(s *types.Script) {
	if !hasTopicNamed(s, "escalation") {
		s.Topics["topic escalation"] = c.defaultEscalationTopic()
	}
	if !hasTopicNamed(s, "off_topic") && !hasTopicNamed(s, "offtopic") {
		s.Topics["topic off_topic"] = c.defaultOffTopic()
	}
	if !hasTopicNamed(s, "ambiguous") {
		s.Topics["topic ambiguous_question"] = c.defaultAmbiguousTopic()
	}
}

func hasTopicNamed(s *types.Script, name string) bool {
	name = strings.ToLower(name)
	for key := range s.Topics {
		if !strings.HasPrefix(key, "topic ") && !strings.HasPrefix(key, "start_agent ") {
			continue
		}
		if strings.Contains(strings.ToLower(key), name) {
			return true
		}
	}
	return false
}

func (c *Converter) defaultEscalationTopic() types.Topic {
	tmpl := c.res.EscalationTemplate()

	actions := make(map[string]types.TransitionRef, len(tmpl.Actions)+1)
	for name, ref := range tmpl.Actions {
		actions[name] = ref
	}
	if _, ok := actions["escalate_to_human"]; !ok {
		actions["escalate_to_human"] = types.TransitionRef{
			Target:      rules.DefaultEscalateActionTarget,
			Description: rules.DefaultEscalateActionDescription,
		}
	}

	return types.Topic{
		Label:       tmpl.Label,
		Description: tmpl.Description,
		Reasoning: types.ReasoningSection{
			Instructions: tmpl.Instructions,
			Actions:      actions,
		},
	}
}

func (c *Converter) defaultOffTopic() types.Topic {
	tmpl := c.res.OffTopicTemplate()
	return types.Topic{
		Label:       tmpl.Label,
		Description: tmpl.Description,
		Reasoning: types.ReasoningSection{
			Instructions: c.guardInstructions(tmpl),
		},
	}
}

func (c *Converter) defaultAmbiguousTopic() types.Topic {
	tmpl := c.res.AmbiguousQuestionTemplate()
	return types.Topic{
		Label:       tmpl.Label,
		Description: tmpl.Description,
		Reasoning: types.ReasoningSection{
			Instructions: c.guardInstructions(tmpl),
		},
	}
}

// guardInstructions appends the resolved security-rule block to a guard
// topic's base instructions when the template asks for it.
func (c *Converter) guardInstructions(tmpl rules.Template) string {
	instructions := tmpl.BaseInstructions
	if !tmpl.IncludeSecurityRules {
		return instructions
	}
	securityRules := c.res.SecurityRules()
	if len(securityRules) == 0 {
		return instructions
	}
	return instructions + "\nRules:\n  " + strings.Join(securityRules, "\n  ")
}
