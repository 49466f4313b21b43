/*
Package ports defines the driven ports (interfaces) of the Eden's Hollow engine.

These interfaces decouple the rules engine from the places its content and saves live.

# Key Interfaces

  - ContentLoader: supplies the immutable Content repository (YAML files, embedded story, memory).
  - SaveStore: persists opaque save blobs by key (memory, file, redis, sqlite).
  - DistributedLocker: serializes writers of one save slot across processes.
*/
package ports
