// Package models holds the data shared by the session layer: the session
// snapshot, the user records returned by the backend and the encrypted
// login credential.
package models
