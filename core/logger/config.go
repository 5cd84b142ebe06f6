package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info"`
	// Format is the encoding (console, json, auto).
	// auto selects console when stdout is a terminal and json otherwise.
	Format string `mapstructure:"format" default:"console"`
	// Output is the zap output path (stdout, stderr or a file path).
	Output string `mapstructure:"output" default:"stdout"`
}
