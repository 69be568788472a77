package convert

import (
	"sort"
	"strings"
	"unicode"

	"github.com/nga-tools/agentscript/internal/textutil"
	"github.com/nga-tools/agentscript/rules"
	"github.com/nga-tools/agentscript/types"
)

// cleanVariableName strips the role prefix and keeps only identifier runes.
func cleanVariableName(raw, prefix string) string {
	var b strings.Builder
	for _, r := range strings.ReplaceAll(raw, prefix, "") {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func sortedPropertyNames(ps *types.PropertySet) []string {
	names := make([]string, 0, len(ps.Properties))
	for name := range ps.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// extractBundleVariables promotes function inputs and outputs of topic-type
// capability bundles into the script variable table. The first definition
// of a cleaned name wins; later collisions are ignored.
func extractBundleVariables(def *types.AgentDefinition, res *rules.Resolver) map[string]types.Variable {
	vars := make(map[string]types.Variable)

	for _, plugin := range def.Plugins {
		if plugin.PluginType != types.PluginTypeTopic {
			continue
		}
		for _, fn := range plugin.Functions {
			if fn.InputType != nil {
				extractInputVariables(vars, fn.InputType, res)
			}
			if fn.OutputType != nil {
				extractOutputVariables(vars, &fn, res)
			}
		}
	}
	return vars
}

func extractInputVariables(vars map[string]types.Variable, ps *types.PropertySet, res *rules.Resolver) {
	for _, rawName := range sortedPropertyNames(ps) {
		prop := ps.Properties[rawName]
		name := cleanVariableName(rawName, "Input:")
		if name == "" {
			continue
		}
		if _, taken := vars[name]; taken {
			continue
		}
		vars[name] = types.Variable{
			Category: types.CategoryMutable,
			Type:     mapPropertyType(res, prop.Type, prop),
			Label:    prop.Title,
			Description: textutil.FirstNonEmpty(
				prop.Description, prop.Title, "Variable for "+name),
		}
	}
}

func extractOutputVariables(vars map[string]types.Variable, fn *types.Function, res *rules.Resolver) {
	funcName := textutil.FirstNonEmpty(fn.LocalDevName, fn.Name, "unknown")
	funcLabel := textutil.FirstNonEmpty(fn.Label, fn.Name, "unknown")

	for _, rawName := range sortedPropertyNames(fn.OutputType) {
		prop := fn.OutputType.Properties[rawName]
		name := cleanVariableName(rawName, "Output:")
		if name == "" {
			continue
		}
		if _, taken := vars[name]; taken {
			continue
		}

		mapped := mapPropertyType(res, prop.Type, prop)
		v := types.Variable{
			Category: types.CategoryMutable,
			Type:     mapped,
			Label:    prop.Title,
			Description: textutil.FirstNonEmpty(
				prop.Description, prop.Title, "Output from "+funcLabel),
		}
		// Object-shaped outputs stay mutable; everything else links back to
		// the producing action.
		if !strings.Contains(mapped, "object") {
			v.Category = types.CategoryLinked
			v.Source = "@action." + funcName + "." + rawName
		}
		vars[name] = v
	}
}

// extractDeclaredVariables converts the explicit variable declarations of
// the pre-structured shape. Later declarations of the same name overwrite
// earlier ones.
func extractDeclaredVariables(def *types.AgentDefinition) map[string]types.Variable {
	vars := make(map[string]types.Variable)

	for _, decl := range def.Variables {
		name := textutil.FirstNonEmpty(decl.Name, decl.ID)
		if name == "" {
			continue
		}
		varType := decl.Type
		if varType == "" {
			varType = "string"
		}

		v := types.Variable{
			Category:    types.CategoryMutable,
			Type:        varType,
			Label:       decl.Label,
			Description: textutil.FirstNonEmpty(decl.Description, "Variable "+name),
		}
		if !strings.Contains(varType, "object") && decl.Source != "" {
			v.Category = types.CategoryLinked
			v.Source = decl.Source
		}
		vars[name] = v
	}
	return vars
}
