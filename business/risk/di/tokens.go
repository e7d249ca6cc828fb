// Package di contains dependency injection tokens for the risk context.
package di

// DI tokens for the risk module.
const (
	Manager = "risk.Manager"
)
