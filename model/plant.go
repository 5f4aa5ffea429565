package models

// Plant is the wire representation of a plant. Image and Price are pointers
// because rows written outside the API may leave them null.
type Plant struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Image *string  `json:"image"`
	Price *float64 `json:"price"`
}
