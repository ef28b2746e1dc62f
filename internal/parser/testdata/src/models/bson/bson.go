// Package bson carries the identifier type the fixture models reference.
package bson

// ObjectID is a 24-hex-character document identifier.
type ObjectID string
