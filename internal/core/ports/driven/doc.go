// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentStore: Read-only document lookup (Firestore, MongoDB, SQLite snapshot, memory)
//   - CollectionResolver: Selects the active collection version
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or mapping package
package driven
