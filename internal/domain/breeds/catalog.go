package breeds

import "context"

// Catalog es el puerto hacia el catálogo remoto (solo lectura).
type Catalog interface {
	// SearchBreeds: GET /breeds/search?q=<term>&limit=<limit>
	SearchBreeds(ctx context.Context, term string, limit int) ([]Breed, error)

	// SearchImages: GET /images/search?breed_id=<id>
	SearchImages(ctx context.Context, breedID string) ([]Image, error)
}
