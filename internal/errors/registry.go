package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Render errors (E001-E099)
	"E001": {
		Category: CategoryRender,
		Message:  "Render failed",
		Detail:   "The host document rejected a structural change while reconciling.",
		DocURL:   "https://vnest.dev/docs/errors/E001",
	},
	"E002": {
		Category: CategoryRender,
		Message:  "Page not mounted",
		Detail:   "The page root is not attached to a document body.",
		DocURL:   "https://vnest.dev/docs/errors/E002",
	},

	// Style errors (E100-E199)
	"E101": {
		Category: CategoryStyle,
		Message:  "Invalid selector",
		Detail:   "The stylesheet could not parse the selector.",
		DocURL:   "https://vnest.dev/docs/errors/E101",
	},
	"E102": {
		Category: CategoryStyle,
		Message:  "Invalid rule",
		Detail:   "The rule text did not contain exactly one style rule.",
		DocURL:   "https://vnest.dev/docs/errors/E102",
	},

	// Config errors (E200-E299)
	"E201": {
		Category: CategoryConfig,
		Message:  "Invalid config file",
		Detail:   "The configuration file could not be read or parsed.",
		DocURL:   "https://vnest.dev/docs/errors/E201",
	},
	"E202": {
		Category: CategoryConfig,
		Message:  "Invalid config value",
		Detail:   "A configuration value is out of range or malformed.",
		DocURL:   "https://vnest.dev/docs/errors/E202",
	},

	// Transport errors (E300-E399)
	"E301": {
		Category: CategoryTransport,
		Message:  "WebSocket upgrade failed",
		Detail:   "The client request could not be upgraded to a WebSocket connection.",
		DocURL:   "https://vnest.dev/docs/errors/E301",
	},
	"E302": {
		Category: CategoryTransport,
		Message:  "Invalid client message",
		Detail:   "The client sent a message that is not valid JSON or has an unknown type.",
		DocURL:   "https://vnest.dev/docs/errors/E302",
	},
	"E303": {
		Category: CategoryTransport,
		Message:  "Server failed",
		Detail:   "The HTTP server stopped with an error.",
		DocURL:   "https://vnest.dev/docs/errors/E303",
	},

	// Publish errors (E400-E499)
	"E401": {
		Category: CategoryPublish,
		Message:  "Publish failed",
		Detail:   "The page snapshot could not be uploaded.",
		DocURL:   "https://vnest.dev/docs/errors/E401",
	},
	"E402": {
		Category: CategoryPublish,
		Message:  "Missing bucket",
		Detail:   "Publishing requires a bucket name.",
		DocURL:   "https://vnest.dev/docs/errors/E402",
	},
}

// GetAllCodes returns all registered error codes in order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
