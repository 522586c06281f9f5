// Package catalog holds the gallery catalog model: artworks that own their
// gallery memberships, galleries derived from those memberships, and hubs
// that link to galleries or other hubs.
//
// A Catalog is an immutable snapshot. New rejects colliding identifiers with
// a *LoadError; every other integrity problem is reported by Check as a
// Finding and never aborts the build.
package catalog
