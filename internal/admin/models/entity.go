// Package models defines the domain entities of the admin service together
// with the inputs used to create, replace and patch them.
//
// Entities are built through their Create functions and changed through
// With* methods. Both validate and return a new value; an entity passed in
// is never mutated.
package models

import (
	"github.com/testnest/admin/internal/admin/guard"
	"github.com/testnest/admin/internal/admin/ids"
)

// Entity is implemented by every aggregate keyed by a strongly-typed ID.
type Entity[K any] interface {
	GetID() ids.ID[K]
}

type emptiable interface {
	IsEmpty() bool
}

// requirePresent fails with code when v is its empty sentinel.
func requirePresent(v emptiable, code, message string) error {
	return guard.AgainstCondition(v.IsEmpty(), guard.Failed(code, message))
}
