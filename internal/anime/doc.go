// Package anime holds the catalog domain model shared by the metadata client,
// the assistant, and the hosting surfaces.
package anime
