package config

// Version is the current sable-infer version.
// Set at build time via -ldflags or by writing to this file.
var Version = "0.2.0"

// ScenarioFileExtensions are all recognized scenario file extensions.
var ScenarioFileExtensions = []string{".yaml", ".yml"}

// HasScenarioExt returns true if the path ends with any recognized
// scenario file extension.
func HasScenarioExt(path string) bool {
	for _, ext := range ScenarioFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// Prompt is the REPL prompt.
const Prompt = "sable> "

// ReplCommandPrefix marks REPL meta commands (::type, ::method, ...).
const ReplCommandPrefix = "::"
