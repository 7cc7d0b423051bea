package costing

import "github.com/xraph/costing/id"

// ID is the primary identifier type for costing entities.
type ID = id.ID

// Prefix identifies the entity type encoded in a TypeID.
type Prefix = id.Prefix
