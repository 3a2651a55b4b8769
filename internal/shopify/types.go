package shopify

// Response shapes for the Storefront API product queries. The formatter
// flattens these edge/node graphs into domain records.

// MoneyV2 mirrors the Storefront API MoneyV2 object
type MoneyV2 struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type VariantNode struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	AvailableForSale bool             `json:"availableForSale"`
	SKU              *string          `json:"sku"`
	Price            MoneyV2          `json:"price"`
	CompareAtPrice   *MoneyV2         `json:"compareAtPrice"`
	SelectedOptions  []SelectedOption `json:"selectedOptions"`
}

type VariantEdge struct {
	Node VariantNode `json:"node"`
}

type ImageNode struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
}

type ImageEdge struct {
	Node ImageNode `json:"node"`
}

type PriceRange struct {
	MinVariantPrice MoneyV2 `json:"minVariantPrice"`
}

type ImageConnection struct {
	Edges []ImageEdge `json:"edges"`
}

type VariantConnection struct {
	Edges []VariantEdge `json:"edges"`
}

// ProductNode is the raw product shape returned by the queries in queries.go
type ProductNode struct {
	ID                  string            `json:"id"`
	Title               string            `json:"title"`
	Handle              string            `json:"handle"`
	Description         string            `json:"description"`
	DescriptionHTML     string            `json:"descriptionHtml"`
	AvailableForSale    bool              `json:"availableForSale"`
	Vendor              string            `json:"vendor"`
	ProductType         string            `json:"productType"`
	Tags                []string          `json:"tags"`
	PriceRange          PriceRange        `json:"priceRange"`
	CompareAtPriceRange PriceRange        `json:"compareAtPriceRange"`
	FeaturedImage       *ImageNode        `json:"featuredImage"`
	Images              ImageConnection   `json:"images"`
	Variants            VariantConnection `json:"variants"`
}

type ProductEdge struct {
	Node ProductNode `json:"node"`
}

// ProductPayload decodes queries that return a single product field.
type ProductPayload struct {
	Product *ProductNode `json:"product"`
}

// ProductsPayload decodes the list/search query.
type ProductsPayload struct {
	Products struct {
		Edges []ProductEdge `json:"edges"`
	} `json:"products"`
}
