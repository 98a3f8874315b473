// Package ident implements the identifier collaborator.
package ident

import "github.com/google/uuid"

// Generator produces process-unique record identifiers.
type Generator struct{}

// New creates a Generator.
func New() Generator { return Generator{} }

// NewID returns a fresh UUIDv4 string.
func (Generator) NewID() string { return uuid.NewString() }
