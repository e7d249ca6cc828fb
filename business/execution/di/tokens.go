// Package di contains dependency injection tokens for the execution context.
package di

// DI tokens for the execution module.
const (
	Executor = "execution.Executor"
)
