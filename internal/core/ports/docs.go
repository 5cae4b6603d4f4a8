// Package ports declares the outbound interfaces of the application core:
// persistence, the chat message gateway, and the audit sink. Adapters under
// internal/adapters provide the implementations.
package ports
