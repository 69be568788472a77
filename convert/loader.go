package convert

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/nga-tools/agentscript/types"
)

// Input encodings accepted by LoadBytes and LoadRules.
const (
	// FormatAuto sniffs the encoding from the document itself.
	FormatAuto = ""
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FormatFromPath derives the input format from a file extension. Unknown
// extensions fall back to sniffing.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

// LoadBytes parses an agent definition from JSON or YAML text and validates
// the identity fields conversion depends on.
func LoadBytes(data []byte, format string, logger *zap.Logger) (*types.AgentDefinition, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, types.NewError(types.ErrInvalidInput, "empty input document")
	}

	var def types.AgentDefinition
	switch resolveFormat(format, trimmed) {
	case FormatJSON:
		if err := json.Unmarshal(trimmed, &def); err != nil {
			return nil, types.NewError(types.ErrInvalidInput, "failed to parse input JSON").WithCause(err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(trimmed, &def); err != nil {
			return nil, types.NewError(types.ErrInvalidInput, "failed to parse input YAML").WithCause(err)
		}
	default:
		return nil, types.NewError(types.ErrUnsupportedFormat, "unsupported input format: "+format)
	}

	if err := validateDefinition(&def); err != nil {
		return nil, err
	}
	logger.Debug("loaded agent definition",
		zap.Int("plugins", len(def.Plugins)),
		zap.Int("topics", len(def.Topics)))
	return &def, nil
}

// LoadRules parses an optional conversion-rules document. A missing or
// malformed document is not an error: conversion proceeds on defaults, and
// the failure is logged once.
func LoadRules(data []byte, format string, logger *zap.Logger) *types.ConversionRules {
	if logger == nil {
		logger = zap.NewNop()
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	var doc types.ConversionRules
	switch resolveFormat(format, trimmed) {
	case FormatJSON:
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			logger.Warn("failed to parse rules JSON, using defaults", zap.Error(err))
			return nil
		}
	case FormatYAML:
		if err := yaml.Unmarshal(trimmed, &doc); err != nil {
			logger.Warn("failed to parse rules YAML, using defaults", zap.Error(err))
			return nil
		}
	default:
		logger.Warn("unsupported rules format, using defaults", zap.String("format", format))
		return nil
	}
	return &doc
}

func resolveFormat(format string, trimmed []byte) string {
	switch format {
	case FormatJSON, FormatYAML:
		return format
	case FormatAuto, "yml":
		if format == "yml" {
			return FormatYAML
		}
		if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
			return FormatJSON
		}
		return FormatYAML
	default:
		return format
	}
}

// validateDefinition rejects the only inputs conversion cannot degrade
// around: unnamed capability bundles and unnamed functions.
func validateDefinition(def *types.AgentDefinition) error {
	for i, p := range def.Plugins {
		if p.Name == "" {
			return types.NewError(types.ErrInvalidInput,
				fmt.Sprintf("plugin at index %d has no name", i))
		}
		for j, f := range p.Functions {
			if f.Name == "" {
				return types.NewError(types.ErrInvalidInput,
					fmt.Sprintf("function at index %d of plugin %s has no name", j, p.Name))
			}
		}
	}
	return nil
}
