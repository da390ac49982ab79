package models

// CategorySummary is a lightweight listing entry for the wiki API
type CategorySummary struct {
	Name      string `json:"name"`
	Position  int    `json:"position"`
	ItemCount int    `json:"item_count"`
}

// ItemList is a collection of items for one category
type ItemList struct {
	Category   string `json:"category"`
	Items      []Item `json:"items"`
	TotalCount int    `json:"total_count"`
}
