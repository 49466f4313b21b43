/*
Package persistence turns GameState snapshots into save blobs and back.

The Gateway owns the encoding (a versioned JSON envelope) and the slot key; the bytes
themselves live in any ports.SaveStore. Middleware in the middleware sub-package wraps a
store to add behavior such as encryption at rest.
*/
package persistence
