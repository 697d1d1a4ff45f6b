// Package catalog holds the locally mirrored product collection.
//
// A Collection is a value: every update function returns a new Collection
// and leaves its receiver untouched, so a failed remote call can never leave
// a half-applied change behind.
package catalog

import "github.com/znsio/specmatic-catalog-admin-go/internal/models"

type Collection struct {
	products []models.Product
}

func New(products []models.Product) Collection {
	return Collection{products: clone(products)}
}

func (c Collection) Len() int {
	return len(c.products)
}

// Products returns a copy in server order.
func (c Collection) Products() []models.Product {
	return clone(c.products)
}

func (c Collection) Find(id string) (models.Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// Replace discards the current entries in favour of a fresh load.
func (c Collection) Replace(products []models.Product) Collection {
	return New(products)
}

func (c Collection) PatchFlag(id string, key models.FlagKey, value bool) Collection {
	return c.Merge(id, models.FlagPatch(key, value))
}

// Merge shallow-merges patch into the entry with the given id.
func (c Collection) Merge(id string, patch models.ProductPatch) Collection {
	out := make([]models.Product, len(c.products))
	for i, p := range c.products {
		if p.ID == id {
			p = p.Apply(patch)
		}
		out[i] = p
	}
	return Collection{products: out}
}

func (c Collection) Remove(id string) Collection {
	out := make([]models.Product, 0, len(c.products))
	for _, p := range c.products {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return Collection{products: out}
}

func clone(products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)
	return out
}
