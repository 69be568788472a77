package convert

import (
	"strings"

	"github.com/nga-tools/agentscript/rules"
	"github.com/nga-tools/agentscript/types"
)

// maxTypeDepth bounds recursion over nested array item definitions so a
// self-referential property tree cannot blow the stack.
const maxTypeDepth = 32

// mapPropertyType maps a schema type to a script type: primitive table
// first, then complex table, then the resolved default. Arrays recurse into
// their item definition and substitute it into the list format template.
func mapPropertyType(res *rules.Resolver, declared string, prop *types.Property) string {
	return mapPropertyTypeDepth(res, declared, prop, 0)
}

func mapPropertyTypeDepth(res *rules.Resolver, declared string, prop *types.Property, depth int) string {
	if declared == "" {
		declared = "object"
	}

	if declared == "array" {
		if prop == nil || prop.Items == nil || depth >= maxTypeDepth {
			return "list[object]"
		}
		itemType := mapPropertyTypeDepth(res, prop.Items.Type, prop.Items, depth+1)
		listFormat := rules.DefaultListFormat
		if f, ok := res.ComplexMappings()["array"]; ok {
			listFormat = f
		}
		return strings.ReplaceAll(listFormat, "{itemType}", itemType)
	}

	if mapped, ok := res.PrimitiveMappings()[declared]; ok {
		return mapped
	}
	if mapped, ok := res.ComplexMappings()[declared]; ok {
		return mapped
	}
	return res.MappedTypeDefault()
}
