package handler

const (
	// RootPath is the root path of the console.
	RootPath = "/"

	// APIPath prefixes the json endpoints not gated by the route guard.
	APIPath = "/api"

	// ErrNilDepsFatalLogMsg is used if app or a dependency is nil.
	ErrNilDepsFatalLogMsg = "app or handler dependency is nil"
)
