// Package auth provides the route guard middleware of the local console.
//
// Every page request is resolved against the guard route table and decided
// against the current session snapshot:
//   - protected pages redirect anonymous sessions to the login page
//   - admin pages redirect non-admin sessions to the landing page
//   - the login page redirects authenticated sessions to the landing page
//   - alias routes redirect to their target
//
// Usage:
//
//	app.Use(authmiddleware.Middleware(authmiddleware.Config{Guard: g, Sessions: store}))
//
// Probes, metrics, the json api, logout and the login submit bypass the guard.
package auth
