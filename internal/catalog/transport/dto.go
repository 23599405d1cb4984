package transport

// ListProductsRequest is the argument object for the list_products tool.
type ListProductsRequest struct {
	Query    string   `json:"query" validate:"omitempty,max=200"`
	Terms    []string `json:"terms" validate:"omitempty,min=1,max=6,dive,min=1,max=60"`
	Limit    int      `json:"limit" validate:"omitempty,min=1,max=50"`
	MinPrice *int64   `json:"min_price" validate:"omitempty,min=0"`
	MaxPrice *int64   `json:"max_price" validate:"omitempty,min=0"`
}

// ProductResponse is one product in a search result.
type ProductResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       int64   `json:"price"`
	Stock       int     `json:"stock"`
}
