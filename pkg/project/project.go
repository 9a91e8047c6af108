package project

// Name is the server name advertised to MCP clients
const Name = "csv-chat-service"

// Version is the server version advertised to MCP clients
const Version = "0.1.0"
