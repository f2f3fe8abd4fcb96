package mcpbridge

import (
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wirebind/mcp-bridge-go/internal/bridge"
	"github.com/wirebind/mcp-bridge-go/internal/catalog"
)

// ToolDescriptor describes a single tool advertised by the server.
type ToolDescriptor = catalog.Descriptor

// ToolResult is the successful outcome of a tool invocation.
// Tool-reported failures surface as *InvocationError instead.
type ToolResult = bridge.Result

// ToolClient is the asynchronous protocol client the bridge drives.
// Provide a custom implementation via WithToolClient; the default wraps
// the official MCP SDK client.
type ToolClient = bridge.ToolClient

// Re-export MCP SDK content types for consumers inspecting results.
type (
	// Content is the interface for content blocks in tool results.
	Content = mcp.Content

	// TextContent represents text content in a tool result.
	TextContent = mcp.TextContent

	// ImageContent represents image content in a tool result.
	ImageContent = mcp.ImageContent

	// Schema is a JSON Schema object describing tool input.
	Schema = jsonschema.Schema
)

// SimpleSchema creates a jsonschema.Schema from a simple type map.
//
// Input format: {"path": "string", "limit": "int"}
//
// Type mappings:
//   - "string"           → {"type": "string"}
//   - "int", "int64"     → {"type": "integer"}
//   - "float64", "float" → {"type": "number"}
//   - "bool"             → {"type": "boolean"}
//   - "[]string"         → {"type": "array", "items": {"type": "string"}}
//   - "any", "object"    → {"type": "object"}
//
// All properties are marked required. Build a jsonschema.Schema directly for
// anything more elaborate.
func SimpleSchema(props map[string]string) *jsonschema.Schema {
	properties := make(map[string]*jsonschema.Schema, len(props))
	required := make([]string, 0, len(props))

	for name, goType := range props {
		properties[name] = goTypeToJSONSchema(goType)
		required = append(required, name)
	}

	return &jsonschema.Schema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

// goTypeToJSONSchema converts a Go type string to a JSON Schema type.
func goTypeToJSONSchema(goType string) *jsonschema.Schema {
	switch goType {
	case "string":
		return &jsonschema.Schema{Type: "string"}
	case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
		return &jsonschema.Schema{Type: "integer"}
	case "float32", "float64", "float", "number":
		return &jsonschema.Schema{Type: "number"}
	case "bool", "boolean":
		return &jsonschema.Schema{Type: "boolean"}
	case "any", "object", "map[string]any":
		return &jsonschema.Schema{Type: "object"}
	default:
		if len(goType) > 2 && goType[:2] == "[]" {
			return &jsonschema.Schema{
				Type:  "array",
				Items: goTypeToJSONSchema(goType[2:]),
			}
		}

		// Default to string
		return &jsonschema.Schema{Type: "string"}
	}
}
