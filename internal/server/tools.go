package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name: "draw_click",
			Description: "Illustrate where a click happened: dims the image except a 100px spotlight around (x, y), " +
				"draws a red crosshair and rings, a \"Click: <label>\" callout and the coordinates, and writes a new image. " +
				"Returns the output path, image size and the boxes of the callout and coordinate readout.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the source image",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "Click X coordinate in pixels (0 = left edge)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Click Y coordinate in pixels (0 = top edge)",
					},
					"label": map[string]interface{}{
						"type":        "string",
						"description": "Text shown after \"Click: \" in the callout",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Where to write the result. Default: name.png -> name-click.png, other extensions get -click before the extension",
					},
				},
				"required": []string{"path", "x", "y", "label"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
