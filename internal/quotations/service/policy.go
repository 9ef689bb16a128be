package service

import "expodesk_backend/internal/quotations/repository"

// pickProduct selects the product used when a code matches several catalog
// entries. The first match wins, mirroring how the booth catalog codes are
// expected to be unique prefixes.
func pickProduct(products []repository.Product) (repository.Product, bool) {
	if len(products) == 0 {
		return repository.Product{}, false
	}
	return products[0], true
}
