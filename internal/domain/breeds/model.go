package breeds

// Weight es el par de rangos de peso tal como lo publica el catálogo ("3 - 5").
type Weight struct {
	Metric   string `json:"metric"`
	Imperial string `json:"imperial"`
}

// Breed representa una raza del catálogo remoto. Inmutable una vez obtenida.
type Breed struct {
	ID          string
	Name        string
	Description string
	Origin      string
	Temperament string
	LifeSpan    string // "12 - 16" (años, string tal cual viene)
	Weight      *Weight

	AltNames         string
	WikipediaURL     string
	ReferenceImageID string
}

// Image es la imagen asociada 1:1 a una raza (opcional).
type Image struct {
	ID     string
	URL    string
	Width  int
	Height int
}

// EnrichedBreed es la unidad que se renderiza y ordena: raza + imagen opcional.
type EnrichedBreed struct {
	Breed
	Image *Image
}
