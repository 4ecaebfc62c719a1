// Package main provides the entry point of the RocketPop SSO client.
// It signs users in to the RocketPop SSO backend with RSA encrypted
// credentials, keeps the session token in a configurable token store and
// guards the navigation of a local fiber console by authentication state
// and role. All commands are implemented in the app package.
package main
