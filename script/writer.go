package script

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nga-tools/agentscript/internal/textutil"
	"github.com/nga-tools/agentscript/rules"
	"github.com/nga-tools/agentscript/types"
	"github.com/nga-tools/agentscript/variables"
)

// Render serializes a script document. The resolver supplies boolean
// literals and instruction block tokens; the rewriter converts legacy
// placeholders in free-text fields at emission time.
func Render(s *types.Script, res *rules.Resolver, rw *variables.Rewriter) string {
	w := &writer{res: res, rw: rw}
	return w.render(s)
}

type writer struct {
	res *rules.Resolver
	rw  *variables.Rewriter
	b   strings.Builder
}

func (w *writer) text(s string) string {
	return textutil.EscapeString(w.rw.Rewrite(s))
}

func (w *writer) render(s *types.Script) string {
	w.writeSystem(&s.System)
	w.writeConfig(&s.Config)
	w.writeVariables(s.Variables)
	w.writeLanguage(&s.Language)
	w.writeConnection(s.Connections)
	w.writeTopics(s.Topics)
	return strings.TrimSpace(w.b.String()) + "\n"
}

func (w *writer) writeSystem(sys *types.SystemSection) {
	w.b.WriteString("system:\n")
	fmt.Fprintf(&w.b, "    instructions: \"%s\"\n", w.text(sys.Instructions))
	w.b.WriteString("    messages:\n")
	fmt.Fprintf(&w.b, "        welcome: \"%s\"\n", w.text(sys.Messages.Welcome))
	fmt.Fprintf(&w.b, "        error: \"%s\"\n", w.text(sys.Messages.Error))
	w.b.WriteString("\n")
}

func (w *writer) writeConfig(cfg *types.ConfigSection) {
	w.b.WriteString("config:\n")
	fmt.Fprintf(&w.b, "  default_agent_user: \"%s\"\n", cfg.DefaultAgentUser)
	fmt.Fprintf(&w.b, "  agent_label: \"%s\"\n", cfg.AgentLabel)
	fmt.Fprintf(&w.b, "  developer_name: \"%s\"\n", cfg.DeveloperName)
	fmt.Fprintf(&w.b, "  description: \"%s\"\n", w.text(cfg.Description))
	w.b.WriteString("\n")
}

func (w *writer) writeVariables(vars map[string]types.Variable) {
	if len(vars) > 0 {
		w.b.WriteString("variables:\n")
		names := make([]string, 0, len(vars))
		for name := range vars {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			v := vars[name]
			fmt.Fprintf(&w.b, "    %s: %s %s\n", name, v.Category, v.Type)
			// Action-produced links are implied by the action outputs; only
			// external sources are worth repeating here.
			if v.Category == types.CategoryLinked && v.Source != "" &&
				!strings.HasPrefix(v.Source, "@action.") {
				fmt.Fprintf(&w.b, "        source: %s\n", v.Source)
			}
			if v.Label != "" {
				fmt.Fprintf(&w.b, "        label: \"%s\"\n", v.Label)
			}
			fmt.Fprintf(&w.b, "        description: \"%s\"\n", w.text(v.Description))
		}
	}
	w.b.WriteString("\n")
}

func (w *writer) writeLanguage(lang *types.LanguageSection) {
	w.b.WriteString("language:\n")
	fmt.Fprintf(&w.b, "    default_locale: \"%s\"\n", lang.DefaultLocale)
	fmt.Fprintf(&w.b, "    additional_locales: \"%s\"\n", lang.AdditionalLocales)
	fmt.Fprintf(&w.b, "    all_additional_locales: %s\n", w.res.FormatBool(lang.AllAdditionalLocales))
	w.b.WriteString("\n")
}

// writeConnection emits exactly one connection block: the first key in
// sorted order.
func (w *writer) writeConnection(conns map[string]types.ConnectionSection) {
	keys := make([]string, 0, len(conns))
	for key := range conns {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if !strings.HasPrefix(key, "connection ") {
			continue
		}
		fmt.Fprintf(&w.b, "%s:\n", key)
		fmt.Fprintf(&w.b, "    adaptive_response_allowed: %s\n",
			w.res.FormatBool(conns[key].AdaptiveResponseAllowed))
		w.b.WriteString("\n")
		break
	}
}

func (w *writer) writeTopics(topics map[string]types.Topic) {
	keys := make([]string, 0, len(topics))
	for key := range topics {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if !strings.HasPrefix(key, "start_agent ") && !strings.HasPrefix(key, "topic ") {
			continue
		}
		topic := topics[key]
		fmt.Fprintf(&w.b, "%s:\n", key)
		fmt.Fprintf(&w.b, "    label: \"%s\"\n", topic.Label)
		w.b.WriteString("\n")
		fmt.Fprintf(&w.b, "    description: \"%s\"\n", w.text(topic.Description))
		w.b.WriteString("\n")

		w.b.WriteString("    reasoning:\n")
		w.writeInstructions(topic.Reasoning.Instructions)
		w.writeReasoningActions(topic.Reasoning.Actions)

		if len(topic.Actions) > 0 {
			w.b.WriteString("\n    actions:\n")
			w.writeDetailedActions(topic.Actions)
		}
		w.b.WriteString("\n")
	}
}

func (w *writer) writeInstructions(instructions string) {
	indicator := w.res.InstructionIndicator()
	prefix := w.res.InstructionLinePrefix()

	if instructions == "" {
		fmt.Fprintf(&w.b, "        instructions: %s\n            %s %s\n",
			indicator, prefix, rules.DefaultGenericInstruction)
		return
	}

	converted := w.rw.Rewrite(instructions)
	lines := strings.Split(converted, "\n")
	if len(lines) == 1 && len(lines[0]) < 100 {
		fmt.Fprintf(&w.b, "        instructions: %s\n            %s %s\n",
			indicator, prefix, lines[0])
		return
	}

	fmt.Fprintf(&w.b, "        instructions: %s\n", indicator)
	for _, line := range lines {
		fmt.Fprintf(&w.b, "            %s %s\n", prefix, line)
	}
}

func (w *writer) writeReasoningActions(refs map[string]types.TransitionRef) {
	if len(refs) == 0 {
		return
	}
	w.b.WriteString("        actions:\n")

	names := make([]string, 0, len(refs))
	for name := range refs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ref := refs[name]
		fmt.Fprintf(&w.b, "            %s: %s\n", name, ref.Target)
		for _, param := range ref.WithParams {
			fmt.Fprintf(&w.b, "                with %s = ...\n", param)
		}
		if ref.Description != "" {
			fmt.Fprintf(&w.b, "                description: \"%s\"\n", w.text(ref.Description))
		}
	}
	w.b.WriteString("\n")
}

func (w *writer) writeDetailedActions(actions map[string]types.Action) {
	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		action := actions[name]
		fmt.Fprintf(&w.b, "        %s:\n", name)
		fmt.Fprintf(&w.b, "            description: \"%s\"\n", w.text(action.Description))
		if action.Label != "" {
			fmt.Fprintf(&w.b, "            label: \"%s\"\n", action.Label)
		}
		fmt.Fprintf(&w.b, "            require_user_confirmation: %s\n",
			w.res.FormatBool(action.RequireUserConfirmation))
		fmt.Fprintf(&w.b, "            include_in_progress_indicator: %s\n",
			w.res.FormatBool(action.IncludeInProgressIndicator))
		if action.Source != "" && isReadableSourceName(action.Source) {
			fmt.Fprintf(&w.b, "            source: \"%s\"\n", action.Source)
		}
		fmt.Fprintf(&w.b, "            target: \"%s\"\n", action.Target)
		if action.ProgressIndicatorMessage != "" {
			fmt.Fprintf(&w.b, "            progress_indicator_message: \"%s\"\n",
				textutil.EscapeString(action.ProgressIndicatorMessage))
		}
		w.writeActionInputs(action.Inputs)
		w.writeActionOutputs(action.Outputs)
	}
}

func (w *writer) writeActionInputs(inputs map[string]types.ActionInputDef) {
	if len(inputs) == 0 {
		return
	}
	w.b.WriteString("                \n")
	w.b.WriteString("            inputs:\n")

	names := make([]string, 0, len(inputs))
	for name := range inputs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		in := inputs[name]
		fmt.Fprintf(&w.b, "                \"%s\": %s\n", name, in.Type)
		if in.Description != "" {
			fmt.Fprintf(&w.b, "                    description: \"%s\"\n", w.text(in.Description))
		}
		if in.Label != "" {
			fmt.Fprintf(&w.b, "                    label: \"%s\"\n", in.Label)
		}
		fmt.Fprintf(&w.b, "                    is_required: %s\n", w.res.FormatBool(in.IsRequired))
		fmt.Fprintf(&w.b, "                    is_user_input: %s\n", w.res.FormatBool(in.IsUserInput))
		if in.ComplexDataTypeName != "" {
			fmt.Fprintf(&w.b, "                    complex_data_type_name: \"%s\"\n", in.ComplexDataTypeName)
		}
	}
}

func (w *writer) writeActionOutputs(outputs map[string]types.ActionOutputDef) {
	if len(outputs) == 0 {
		return
	}
	w.b.WriteString("                \n")
	w.b.WriteString("            outputs:\n")

	names := make([]string, 0, len(outputs))
	for name := range outputs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		out := outputs[name]
		fmt.Fprintf(&w.b, "                \"%s\": %s\n", name, out.Type)
		if out.Description != "" {
			fmt.Fprintf(&w.b, "                    description: \"%s\"\n", w.text(out.Description))
		}
		if out.Label != "" {
			fmt.Fprintf(&w.b, "                    label: \"%s\"\n", out.Label)
		}
		fmt.Fprintf(&w.b, "                    is_displayable: %s\n", w.res.FormatBool(out.IsDisplayable))
		fmt.Fprintf(&w.b, "                    is_used_by_planner: %s\n", w.res.FormatBool(out.IsUsedByPlanner))
		if out.ComplexDataTypeName != "" {
			fmt.Fprintf(&w.b, "                    complex_data_type_name: \"%s\"\n", out.ComplexDataTypeName)
		}
	}
}

// isReadableSourceName separates API names worth emitting from opaque
// record identifiers: underscores or spaces mean readable, a 15- or
// 18-character alphanumeric mix or a run of three digits means an ID.
func isReadableSourceName(source string) bool {
	if strings.Contains(source, "_") || strings.Contains(source, " ") {
		return true
	}

	allAlnum := true
	hasLetter, hasDigit := false, false
	for _, r := range source {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			allAlnum = false
		}
	}

	if (len(source) == 15 || len(source) == 18) && allAlnum && hasLetter && hasDigit {
		return false
	}

	if allAlnum {
		consecutive := 0
		for _, r := range source {
			if r >= '0' && r <= '9' {
				consecutive++
				if consecutive >= 3 {
					return false
				}
			} else {
				consecutive = 0
			}
		}
	}
	return true
}
