// Package domain contains the core business entities and domain logic of
// the reminder engine. It is the heart of the system and stays independent
// of any storage, transport, or delivery mechanism.
package domain
