// Package notify routes reminders to notification channel handlers.
//
// This package defines the handler interface and a registry that maps each
// channel tag to one handler. The scheduler dispatches through the registry
// without knowing which transports are behind it, so new channels plug in
// by registering a handler.
//
// The primary components are:
// - Handler: Interface for delivering one reminder over one channel
// - Registry: Channel-to-handler mapping implementing Dispatcher
// - RegisterDefaults: Installs the built-in logging handlers
package notify
