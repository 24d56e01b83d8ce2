package discount

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/samber/lo"
)

// DiscountClass identifies which kind of target a discount may apply to.
type DiscountClass string

const (
	DiscountClassProduct  DiscountClass = "PRODUCT"
	DiscountClassOrder    DiscountClass = "ORDER"
	DiscountClassShipping DiscountClass = "SHIPPING"
)

// Input is the snapshot supplied for a single discount evaluation.
type Input struct {
	Cart     Cart     `json:"cart"`
	Discount Discount `json:"discount"`
}

// Cart holds the ordered cart lines.
type Cart struct {
	Lines []CartLine `json:"lines" validate:"dive"`
}

// Discount describes the discount being evaluated.
type Discount struct {
	DiscountClasses []DiscountClass `json:"discountClasses"`
	Metafield       *Metafield      `json:"metafield"`
}

// HasClass reports whether the discount declares the given class.
func (d Discount) HasClass(class DiscountClass) bool {
	return lo.Contains(d.DiscountClasses, class)
}

// Metafield carries the raw configuration payload attached to a discount.
type Metafield struct {
	Value string `json:"value"`
}

// CartLine is one entry of the cart.
type CartLine struct {
	ID          string      `json:"id" validate:"required"`
	Quantity    int         `json:"quantity"`
	Merchandise Merchandise `json:"merchandise" validate:"required"`
}

// Merchandise is the purchasable entity referenced by a cart line. The set of
// implementations is closed: ProductVariant, CustomProduct and UnknownMerchandise.
type Merchandise interface {
	merchandiseKind() string
}

// ProductVariant is the only merchandise kind that carries product data.
type ProductVariant struct {
	ID      string  `json:"id"`
	Product Product `json:"product"`
}

func (ProductVariant) merchandiseKind() string { return "ProductVariant" }

// CustomProduct is merchandise created ad hoc at checkout.
type CustomProduct struct {
	Title string `json:"title"`
}

func (CustomProduct) merchandiseKind() string { return "CustomProduct" }

// UnknownMerchandise keeps the discriminator of kinds this package does not model.
type UnknownMerchandise struct {
	TypeName string `json:"__typename"`
}

func (u UnknownMerchandise) merchandiseKind() string { return u.TypeName }

// Product exposes the tag facts queried for a product.
type Product struct {
	HasAnyTag bool          `json:"hasAnyTag"`
	HasTags   []TagPresence `json:"hasTags"`
}

// TagPresence reports whether a product carries a specific tag.
type TagPresence struct {
	Tag    string `json:"tag"`
	HasTag bool   `json:"hasTag"`
}

// UnmarshalJSON resolves the merchandise sum type from its __typename.
func (l *CartLine) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          string          `json:"id"`
		Quantity    int             `json:"quantity"`
		Merchandise json.RawMessage `json:"merchandise"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	merchandise, err := decodeMerchandise(raw.Merchandise)
	if err != nil {
		return fmt.Errorf("cart line %q: %w", raw.ID, err)
	}
	*l = CartLine{ID: raw.ID, Quantity: raw.Quantity, Merchandise: merchandise}
	return nil
}

// MarshalJSON writes the merchandise back with its __typename.
func (l CartLine) MarshalJSON() ([]byte, error) {
	var merchandise any
	switch m := l.Merchandise.(type) {
	case ProductVariant:
		merchandise = struct {
			TypeName string `json:"__typename"`
			ProductVariant
		}{m.merchandiseKind(), m}
	case CustomProduct:
		merchandise = struct {
			TypeName string `json:"__typename"`
			CustomProduct
		}{m.merchandiseKind(), m}
	case UnknownMerchandise:
		merchandise = m
	}
	return json.Marshal(struct {
		ID          string `json:"id"`
		Quantity    int    `json:"quantity"`
		Merchandise any    `json:"merchandise"`
	}{l.ID, l.Quantity, merchandise})
}

func decodeMerchandise(data json.RawMessage) (Merchandise, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var head struct {
		TypeName string `json:"__typename"`
	}
	if err := json.Unmarshal(trimmed, &head); err != nil {
		return nil, fmt.Errorf("decode merchandise: %w", err)
	}
	switch head.TypeName {
	case "ProductVariant":
		var v ProductVariant
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return nil, fmt.Errorf("decode product variant: %w", err)
		}
		return v, nil
	case "CustomProduct":
		var c CustomProduct
		if err := json.Unmarshal(trimmed, &c); err != nil {
			return nil, fmt.Errorf("decode custom product: %w", err)
		}
		return c, nil
	default:
		return UnknownMerchandise{TypeName: head.TypeName}, nil
	}
}
