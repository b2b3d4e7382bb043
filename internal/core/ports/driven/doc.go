// Package driven defines the secondary ports: interfaces the core
// services consume and adapters implement (storage, filesystem,
// extraction). Interfaces live here so the core never imports an
// adapter package.
package driven
