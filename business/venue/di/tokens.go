// Package di contains dependency injection tokens for the venue context.
package di

import (
	"github.com/karb/arbitrage-engine/business/venue/app"
	"github.com/karb/arbitrage-engine/internal/di"
)

// DI tokens for the venue module.
const (
	WrapperA = "venue.WrapperA"
	WrapperB = "venue.WrapperB"
)

// GetWrapperA resolves the quote-first venue's Wrapper.
func GetWrapperA(sr di.ServiceRegistry) app.Wrapper {
	return di.MustGet[app.Wrapper](sr, WrapperA)
}

// GetWrapperB resolves the base-first venue's Wrapper.
func GetWrapperB(sr di.ServiceRegistry) app.Wrapper {
	return di.MustGet[app.Wrapper](sr, WrapperB)
}
