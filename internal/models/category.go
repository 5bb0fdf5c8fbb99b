package models

// AllCategoryID est l'identifiant réservé à la catégorie synthétique "Tout".
const AllCategoryID = 0

type Category struct {
	ID          int    `json:"id"`
	Title       string `json:"titre"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

type Collection struct {
	ID    int    `json:"id"`
	Title string `json:"titre"`
}
