// Package server exposes click annotation as an MCP (Model Context Protocol) tool.
//
// This package provides a JSON-RPC 2.0 server so an agent that drives a UI
// can ask for a screenshot marked with where it just clicked, without
// shelling out to the draw-click binary.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - draw_click: Mark a click on an image and write the result
//   - image_dimensions: Get width and height
//
// # Errors
//
// A line that is not JSON yields a -32700 response with a null id. Malformed
// tools/call params yield -32602, unknown methods -32601, and any failure
// inside a tool -32000 with the error text in data.
//
// # Image Caching
//
// The server shares one ImageCache with its Annotator. Images are cached by
// path and reused across tool calls, and every path draw_click writes is
// evicted so it is decoded fresh next time.
package server
