package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Binding errors (L001-L009)

	"L001": {
		Category: CategorySelector,
		Message:  "Invalid selector",
		Detail:   "The selector could not be compiled. CSS selectors are parsed as CSS; expressions starting with '/', './' or '(' are parsed as XPath.",
	},
	"L002": {
		Category: CategoryBinding,
		Message:  "Context not attached",
		Detail:   "The context element does not exist or is not attached to the document.",
	},

	// Scenario errors

	"L003": {
		Category: CategoryScenario,
		Message:  "Invalid scenario",
		Detail:   "The scenario document could not be parsed or is missing required fields.",
	},
	"L004": {
		Category: CategoryScenario,
		Message:  "Scenario step failed",
		Detail:   "A replay step could not be applied to the document.",
	},
	"L005": {
		Category: CategoryScenario,
		Message:  "Unexpected invocations",
		Detail:   "The replay produced different callback invocations than the scenario expects.",
	},

	// Config errors (L010-L019)

	"L010": {
		Category: CategoryConfig,
		Message:  "Cannot read config file",
		Detail:   "live.json exists but could not be read.",
	},
	"L011": {
		Category: CategoryConfig,
		Message:  "Invalid config JSON",
		Detail:   "live.json is not valid JSON.",
	},
	"L012": {
		Category: CategoryConfig,
		Message:  "Invalid config value",
		Detail:   "A live.json setting has a value outside its allowed range.",
	},

	// Protocol errors (L020-L029)

	"L020": {
		Category: CategoryProtocol,
		Message:  "Malformed frame",
		Detail:   "The websocket frame is not a valid JSON object.",
	},
	"L021": {
		Category: CategoryProtocol,
		Message:  "Unknown frame type",
		Detail:   "Accepted frame types are event, layout, scroll and insert.",
	},
	"L022": {
		Category: CategoryProtocol,
		Message:  "Unknown target",
		Detail:   "No element in the session document matches the frame's target selector.",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
