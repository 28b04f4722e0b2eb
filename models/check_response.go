package models

// CheckRequest ist der Body von POST /check-product.
type CheckRequest struct {
	ProductName string `json:"product_name"`
}

// CheckResponse ist die Antwort von POST /check-product.
// Product ist nur bei einem Treffer gesetzt.
type CheckResponse struct {
	IsBoycott    bool          `json:"is_boycott"`
	Product      *BoycottEntry `json:"product,omitempty"`
	Message      string        `json:"message"`
	Alternatives []Alternative `json:"alternatives"`
}
