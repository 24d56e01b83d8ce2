package discount

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestGenerateDefaultConfiguration(t *testing.T) {
	input := productInput(nil, variantLine("gid://shopify/CartLine/1"))
	result := Generate(input)
	candidates := singleOperation(t, result)
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	c := candidates[0]
	if c.Message != "10% off" {
		t.Fatalf("expected message %q, got %q", "10% off", c.Message)
	}
	if !c.Value.Percentage.Value.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected percentage 10, got %s", c.Value.Percentage.Value)
	}
	if len(c.Targets) != 1 || c.Targets[0].CartLine == nil || c.Targets[0].CartLine.ID != "gid://shopify/CartLine/1" {
		t.Fatalf("unexpected targets %+v", c.Targets)
	}
	if c.Targets[0].CartLine.Quantity != nil {
		t.Fatalf("expected whole-line target, got quantity %d", *c.Targets[0].CartLine.Quantity)
	}
	if c.AssociatedDiscountCode != nil {
		t.Fatalf("expected no associated discount code")
	}
	if result.Operations[0].ProductDiscountsAdd.SelectionStrategy != SelectionStrategyAll {
		t.Fatalf("expected ALL strategy")
	}
}

func TestGenerateExcludedTagDefault(t *testing.T) {
	input := productInput(nil, variantLine("line-1", TagPresence{Tag: "NO_DISCOUNT", HasTag: true}))
	if ops := Generate(input).Operations; len(ops) != 0 {
		t.Fatalf("expected no operations, got %d", len(ops))
	}
}

func TestGenerateRequiresProductClass(t *testing.T) {
	lines := []CartLine{variantLine("line-1")}
	for _, classes := range [][]DiscountClass{
		nil,
		{DiscountClassOrder},
		{DiscountClassShipping, DiscountClassOrder},
	} {
		input := Input{
			Cart:     Cart{Lines: lines},
			Discount: Discount{DiscountClasses: classes, Metafield: &Metafield{Value: `{"percentage":50,"excludedTag":"X"}`}},
		}
		if ops := Generate(input).Operations; ops == nil || len(ops) != 0 {
			t.Fatalf("classes %v: expected empty non-nil operations, got %v", classes, ops)
		}
	}
}

func TestGenerateConfiguredTag(t *testing.T) {
	input := productInput(
		&Metafield{Value: `{"percentage":15.0,"excludedTag":"VIP"}`},
		variantLine("vip", TagPresence{Tag: "VIP", HasTag: true}),
		variantLine("regular", TagPresence{Tag: "VIP", HasTag: false}),
	)
	candidates := singleOperation(t, Generate(input))
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if got := candidates[0].Targets[0].CartLine.ID; got != "regular" {
		t.Fatalf("expected regular line, got %s", got)
	}
	if candidates[0].Message != "15% off" {
		t.Fatalf("expected 15%% off, got %q", candidates[0].Message)
	}
}

func TestGenerateMalformedConfigurationUsesDefaults(t *testing.T) {
	input := productInput(&Metafield{Value: `{"percentage":`}, variantLine("line-1"))
	candidates := singleOperation(t, Generate(input))
	if candidates[0].Message != "10% off" {
		t.Fatalf("expected default message, got %q", candidates[0].Message)
	}
}

func TestGenerateEmptyCart(t *testing.T) {
	for _, input := range []Input{
		productInput(nil),
		productInput(&Metafield{Value: `{"percentage":20,"excludedTag":"A"}`}),
		{Discount: Discount{DiscountClasses: []DiscountClass{DiscountClassOrder}}},
	} {
		if ops := Generate(input).Operations; len(ops) != 0 {
			t.Fatalf("expected empty operations, got %d", len(ops))
		}
	}
}

func TestGenerateSkipsNonVariantMerchandise(t *testing.T) {
	input := productInput(nil,
		CartLine{ID: "custom", Quantity: 1, Merchandise: CustomProduct{Title: "Engraving"}},
		CartLine{ID: "gift", Quantity: 1, Merchandise: UnknownMerchandise{TypeName: "GiftCard"}},
		CartLine{ID: "missing", Quantity: 1},
		variantLine("variant"),
	)
	candidates := singleOperation(t, Generate(input))
	if len(candidates) != 1 || candidates[0].Targets[0].CartLine.ID != "variant" {
		t.Fatalf("expected only the variant line, got %+v", candidates)
	}

	onlyOthers := productInput(nil, CartLine{ID: "custom", Merchandise: CustomProduct{}})
	if ops := Generate(onlyOthers).Operations; len(ops) != 0 {
		t.Fatalf("expected empty operations, got %d", len(ops))
	}
}

func TestGeneratePreservesCartOrder(t *testing.T) {
	input := productInput(nil, variantLine("c"), variantLine("a"), variantLine("b"))
	candidates := singleOperation(t, Generate(input))
	want := []string{"c", "a", "b"}
	for i, c := range candidates {
		if got := c.Targets[0].CartLine.ID; got != want[i] {
			t.Fatalf("candidate %d: expected %s, got %s", i, want[i], got)
		}
	}
}

func TestExcludedTagMatchIsExactAndCaseSensitive(t *testing.T) {
	cfg := Configuration{Percentage: decimal.NewFromInt(10), ExcludedTag: "VIP"}
	g := Generator{}
	cases := []struct {
		name     string
		tags     []TagPresence
		excluded bool
	}{
		{"exact", []TagPresence{{Tag: "VIP", HasTag: true}}, true},
		{"lowercase", []TagPresence{{Tag: "vip", HasTag: true}}, false},
		{"prefix", []TagPresence{{Tag: "VIPS", HasTag: true}}, false},
		{"not carried", []TagPresence{{Tag: "VIP", HasTag: false}}, false},
		{"other tag", []TagPresence{{Tag: "SALE", HasTag: true}}, false},
		{"no facts", nil, false},
	}
	for _, tc := range cases {
		if got := g.excludes(Product{HasTags: tc.tags}, cfg); got != tc.excluded {
			t.Fatalf("%s: expected excluded=%v, got %v", tc.name, tc.excluded, got)
		}
	}
}

func TestTagPolicyIgnoresHasAnyTag(t *testing.T) {
	line := CartLine{ID: "line-1", Merchandise: ProductVariant{ID: "v", Product: Product{HasAnyTag: true}}}
	candidates := singleOperation(t, Generate(productInput(nil, line)))
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
}

func TestAnyTagPolicy(t *testing.T) {
	g := Generator{Policy: ExclusionPolicyAnyTag}
	tagged := CartLine{ID: "tagged", Merchandise: ProductVariant{Product: Product{HasAnyTag: true}}}
	untagged := CartLine{ID: "untagged", Merchandise: ProductVariant{Product: Product{
		HasTags: []TagPresence{{Tag: "NO_DISCOUNT", HasTag: true}},
	}}}
	candidates := singleOperation(t, g.Run(productInput(nil, tagged, untagged)))
	if len(candidates) != 1 || candidates[0].Targets[0].CartLine.ID != "untagged" {
		t.Fatalf("expected only the untagged line, got %+v", candidates)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	input := productInput(
		&Metafield{Value: `{"percentage":12.5,"excludedTag":"VIP"}`},
		variantLine("a"),
		variantLine("b", TagPresence{Tag: "VIP", HasTag: true}),
		CartLine{ID: "c", Merchandise: CustomProduct{}},
		variantLine("d"),
	)
	first, err := json.Marshal(Generate(input))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := json.Marshal(Generate(input))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("outputs differ:\n%s\n%s", first, second)
	}
}

func TestResultJSONShape(t *testing.T) {
	data, err := json.Marshal(Generate(productInput(nil, variantLine("line-1"))))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"operations":[{"productDiscountsAdd":{"candidates":[{"associatedDiscountCode":null,"message":"10% off","targets":[{"cartLine":{"id":"line-1","quantity":null}}],"value":{"percentage":{"value":"10"}}}],"selectionStrategy":"ALL"}}]}`
	if string(data) != want {
		t.Fatalf("unexpected json:\n got %s\nwant %s", data, want)
	}

	empty, err := json.Marshal(Generate(Input{}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(empty) != `{"operations":[]}` {
		t.Fatalf("unexpected empty json %s", empty)
	}
}

func TestMessage(t *testing.T) {
	cases := map[string]decimal.Decimal{
		"10% off":   decimal.NewFromInt(10),
		"12.5% off": decimal.NewFromFloat(12.5),
		"0% off":    decimal.Zero,
		"-5% off":   decimal.NewFromInt(-5),
	}
	for want, pct := range cases {
		if got := Message(pct); got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	}
}

func TestParseExclusionPolicy(t *testing.T) {
	cases := []struct {
		in     string
		policy ExclusionPolicy
		ok     bool
	}{
		{"", ExclusionPolicyTag, true},
		{"tag", ExclusionPolicyTag, true},
		{" ANY_TAG ", ExclusionPolicyAnyTag, true},
		{"bogus", ExclusionPolicyTag, false},
	}
	for _, tc := range cases {
		policy, ok := ParseExclusionPolicy(tc.in)
		if policy != tc.policy || ok != tc.ok {
			t.Fatalf("%q: expected (%s,%v), got (%s,%v)", tc.in, tc.policy, tc.ok, policy, ok)
		}
	}
}

func productInput(metafield *Metafield, lines ...CartLine) Input {
	return Input{
		Cart:     Cart{Lines: lines},
		Discount: Discount{DiscountClasses: []DiscountClass{DiscountClassProduct}, Metafield: metafield},
	}
}

func variantLine(id string, tags ...TagPresence) CartLine {
	return CartLine{
		ID:       id,
		Quantity: 1,
		Merchandise: ProductVariant{
			ID:      "gid://shopify/ProductVariant/" + id,
			Product: Product{HasAnyTag: len(tags) > 0, HasTags: tags},
		},
	}
}

func singleOperation(t *testing.T, result Result) []ProductDiscountCandidate {
	t.Helper()
	if len(result.Operations) != 1 {
		t.Fatalf("expected 1 operation, got %d", len(result.Operations))
	}
	op := result.Operations[0].ProductDiscountsAdd
	if op == nil {
		t.Fatalf("expected productDiscountsAdd operation")
	}
	if len(op.Candidates) == 0 {
		t.Fatalf("operation must not be empty")
	}
	return op.Candidates
}
