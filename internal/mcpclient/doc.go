// Package mcpclient provides the default tool client, backed by the
// official MCP SDK over stdio subprocess, SSE, or streamable HTTP
// transports.
package mcpclient
