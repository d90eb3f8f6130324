/*
Package ports defines the driven ports (interfaces) for the nfasim engine.

These interfaces decouple the simulation core from where automaton definitions
come from and where they are kept, allowing the engine to work with files,
Loam repositories, Redis or plain memory.

# Key Interfaces

  - DefinitionLoader: Read-only access to named automaton definitions.
  - DefinitionStore: A loader that can also persist and delete definitions.
  - Watchable: Loaders that can signal that a definition changed on disk.
  - Simulator: The engine surface consumed by the HTTP and MCP adapters.
*/
package ports
