package tools

// Tool names
const (
	ToolCSVSchema = "csv_schema"
	ToolCSVHead   = "csv_head"
	ToolSQL       = "sql"
	ToolSummary   = "summary"
)

// Argument defaults
const (
	DefaultHeadRows = 5
	DefaultSQLLimit = 200
)
