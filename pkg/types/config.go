package types

import "time"

// Transport kinds accepted by the HTTP binding
const (
	TransportHTTP           = "http"
	TransportStreamableHTTP = "streamable-http"
	TransportSSE            = "sse"
	TransportStdio          = "stdio"
)

// Config represents the configuration for the csvquery-mcp server
type Config struct {
	CSVPath      string        `mapstructure:"csv_path" json:"csv_path"`
	LimitCap     int           `mapstructure:"limit_cap" json:"limit_cap"`
	QueryTimeout time.Duration `mapstructure:"query_timeout" json:"query_timeout"`
	Transport    string        `mapstructure:"transport" json:"transport"`
	Host         string        `mapstructure:"host" json:"host"`
	Port         int           `mapstructure:"port" json:"port"`
	Path         string        `mapstructure:"path" json:"path"`
	LogLevel     string        `mapstructure:"log_level" json:"log_level,omitempty"`
	LogFormat    string        `mapstructure:"log_format" json:"log_format,omitempty"`
}
