package costing

import (
	"github.com/xraph/costing/item"
	"github.com/xraph/costing/types"
)

// Re-export common types for convenience so users don't have to import types package.

// Money is re-exported from types package.
type Money = types.Money

// LineItem is re-exported from item package.
type LineItem = item.LineItem

// Input is re-exported from item package.
type Input = item.Input

// Re-export Money constructors
var (
	ZAR  = types.ZAR
	USD  = types.USD
	EUR  = types.EUR
	GBP  = types.GBP
	Zero = types.Zero
	Sum  = types.Sum
)
