// Package di contains dependency injection tokens for the orderbook context.
package di

// DI tokens for the orderbook module. Managers are keyed per venue since
// each venue maintains its own independent book for the same symbol.
const (
	ManagerA = "orderbook.ManagerA"
	ManagerB = "orderbook.ManagerB"
)
