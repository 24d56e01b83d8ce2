package discount

import (
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// ExclusionPolicy selects how a product is judged ineligible.
type ExclusionPolicy string

const (
	// ExclusionPolicyTag excludes products carrying the configured excluded tag.
	ExclusionPolicyTag ExclusionPolicy = "tag"
	// ExclusionPolicyAnyTag excludes products carrying any tag at all.
	ExclusionPolicyAnyTag ExclusionPolicy = "any_tag"
)

// ParseExclusionPolicy maps a configuration value to a policy. The second
// return value is false when the value is not recognised and the tag policy is used.
func ParseExclusionPolicy(value string) (ExclusionPolicy, bool) {
	switch ExclusionPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case "", ExclusionPolicyTag:
		return ExclusionPolicyTag, true
	case ExclusionPolicyAnyTag:
		return ExclusionPolicyAnyTag, true
	default:
		return ExclusionPolicyTag, false
	}
}

// Generator turns cart lines into product discount candidates.
// The zero value uses ExclusionPolicyTag.
type Generator struct {
	Policy ExclusionPolicy
}

// Generate evaluates input with the default generator.
func Generate(input Input) Result {
	return Generator{}.Run(input)
}

// Run evaluates a single input.
func (g Generator) Run(input Input) Result {
	result, _ := g.run(input)
	return result
}

// run also reports the configuration resolution, or nil when the discount has
// no product class and configuration was never read.
func (g Generator) run(input Input) (Result, *Resolution) {
	if !input.Discount.HasClass(DiscountClassProduct) {
		return EmptyResult(), nil
	}
	resolution := ResolveConfiguration(input.Discount.Metafield)
	candidates := g.Candidates(input.Cart.Lines, resolution.Configuration)
	if len(candidates) == 0 {
		return EmptyResult(), &resolution
	}
	return Result{Operations: []Operation{{
		ProductDiscountsAdd: &ProductDiscountsAddOperation{
			Candidates:        candidates,
			SelectionStrategy: SelectionStrategyAll,
		},
	}}}, &resolution
}

// Candidates returns one candidate per eligible line, in cart order.
func (g Generator) Candidates(lines []CartLine, cfg Configuration) []ProductDiscountCandidate {
	var candidates []ProductDiscountCandidate
	for _, line := range lines {
		switch m := line.Merchandise.(type) {
		case ProductVariant:
			if g.excludes(m.Product, cfg) {
				continue
			}
			candidates = append(candidates, newCandidate(line.ID, cfg))
		case CustomProduct, UnknownMerchandise, nil:
			continue
		}
	}
	return candidates
}

func (g Generator) excludes(product Product, cfg Configuration) bool {
	if g.Policy == ExclusionPolicyAnyTag {
		return product.HasAnyTag
	}
	return lo.ContainsBy(product.HasTags, func(t TagPresence) bool {
		return t.HasTag && t.Tag == cfg.ExcludedTag
	})
}

func newCandidate(lineID string, cfg Configuration) ProductDiscountCandidate {
	return ProductDiscountCandidate{
		Message: Message(cfg.Percentage),
		Targets: []Target{{CartLine: &CartLineTarget{ID: lineID}}},
		Value:   CandidateValue{Percentage: &Percentage{Value: cfg.Percentage}},
	}
}

// Message renders the customer-facing text for a percentage, e.g. "10% off".
func Message(percentage decimal.Decimal) string {
	return percentage.String() + "% off"
}
