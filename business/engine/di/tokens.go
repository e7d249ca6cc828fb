// Package di contains dependency injection tokens for the engine context.
package di

// DI tokens for the engine module.
const (
	Engine = "engine.Engine"
)
