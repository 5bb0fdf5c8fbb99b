package models

// Product est une fiche du catalogue, chargée une fois et jamais modifiée ensuite.
type Product struct {
	Reference    string   `json:"reference_produit"`
	Name         string   `json:"nom"`
	Description  string   `json:"description,omitempty"`
	UnitPrice    float64  `json:"prix_unitaire"`
	LotPrice     float64  `json:"prix_lot"`
	Pieces       int      `json:"nombre_pieces"`
	CategoryID   int      `json:"categorie"`
	CollectionID *int     `json:"collection"`
	Ingredients  []string `json:"ingredients"`
	Allergens    []string `json:"allergenes"`
	URL          string   `json:"url,omitempty"`
	Image        string   `json:"image,omitempty"`
}

// Price retourne le prix lot ou le prix unitaire selon la base demandée.
func (p Product) Price(useLot bool) float64 {
	if useLot {
		return p.LotPrice
	}
	return p.UnitPrice
}
