package discount

import "github.com/shopspring/decimal"

// SelectionStrategy describes how many candidates of an operation are applied.
type SelectionStrategy string

// SelectionStrategyAll applies every listed candidate.
const SelectionStrategyAll SelectionStrategy = "ALL"

// Result is the value returned for one evaluation. Operations holds at most one entry.
type Result struct {
	Operations []Operation `json:"operations"`
}

// Operation is a single cart operation. Only product discount additions are emitted.
type Operation struct {
	ProductDiscountsAdd *ProductDiscountsAddOperation `json:"productDiscountsAdd,omitempty"`
}

// ProductDiscountsAddOperation proposes product discounts for the listed candidates.
type ProductDiscountsAddOperation struct {
	Candidates        []ProductDiscountCandidate `json:"candidates"`
	SelectionStrategy SelectionStrategy          `json:"selectionStrategy"`
}

// ProductDiscountCandidate is one line's eligibility for the discount.
type ProductDiscountCandidate struct {
	AssociatedDiscountCode *AssociatedDiscountCode `json:"associatedDiscountCode"`
	Message                string                  `json:"message"`
	Targets                []Target                `json:"targets"`
	Value                  CandidateValue          `json:"value"`
}

// AssociatedDiscountCode links a candidate to a redeemed code.
type AssociatedDiscountCode struct {
	Code string `json:"code"`
}

// Target selects what a candidate applies to.
type Target struct {
	CartLine *CartLineTarget `json:"cartLine,omitempty"`
}

// CartLineTarget targets a cart line. A nil Quantity means the whole line.
type CartLineTarget struct {
	ID       string `json:"id"`
	Quantity *int   `json:"quantity"`
}

// CandidateValue is the reduction proposed by a candidate.
type CandidateValue struct {
	Percentage *Percentage `json:"percentage,omitempty"`
}

// Percentage is a percentage off the target's price.
type Percentage struct {
	Value decimal.Decimal `json:"value"`
}

// EmptyResult returns a result with no operations.
func EmptyResult() Result {
	return Result{Operations: []Operation{}}
}

// CandidateCount returns the number of candidates across all operations.
func (r Result) CandidateCount() int {
	total := 0
	for _, op := range r.Operations {
		if op.ProductDiscountsAdd != nil {
			total += len(op.ProductDiscountsAdd.Candidates)
		}
	}
	return total
}
