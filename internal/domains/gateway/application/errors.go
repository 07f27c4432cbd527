package application

import "errors"

// ErrInvalidInput signals the request violated an invariant before any backend call.
var ErrInvalidInput = errors.New("invalid gateway input")

// ErrUnknownProduct signals an order referenced a product id the catalog does not know.
// It is always wrapped with the first offending id in submission order.
var ErrUnknownProduct = errors.New("unknown product")

// ErrProductReferenced signals a delete was refused because at least one order still references the product.
var ErrProductReferenced = errors.New("product referenced by existing order")

// ErrProductDataMissing signals a stored order references a product the catalog no longer serves.
// Enrichment refuses to return a partial view in that case.
var ErrProductDataMissing = errors.New("product data missing")
