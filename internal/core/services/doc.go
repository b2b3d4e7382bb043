// Package services implements the driving port interfaces.
// Services contain the core business logic: the in-memory chunk index
// with its lexical retrieval engine, and the library lifecycle that
// keeps the index consistent with the backing stores.
//
// Services are pure Go and depend only on domain and the driven ports.
package services
