package discount

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// DefaultExcludedTag is used when the discount carries no usable configuration.
	DefaultExcludedTag = "NO_DISCOUNT"
)

// DefaultPercentage is used when the discount carries no usable configuration.
var DefaultPercentage = decimal.NewFromInt(10)

// Configuration holds the values driving candidate generation.
type Configuration struct {
	Percentage  decimal.Decimal `json:"percentage"`
	ExcludedTag string          `json:"excludedTag"`
}

// DefaultConfiguration returns the fallback configuration.
func DefaultConfiguration() Configuration {
	return Configuration{Percentage: DefaultPercentage, ExcludedTag: DefaultExcludedTag}
}

// ConfigSource records where a resolved configuration came from.
type ConfigSource string

const (
	ConfigSourceMetafield ConfigSource = "metafield"
	ConfigSourceAbsent    ConfigSource = "absent"
	ConfigSourceInvalid   ConfigSource = "invalid"
)

// Resolution is a resolved configuration together with its source.
type Resolution struct {
	Configuration Configuration `json:"configuration"`
	Source        ConfigSource  `json:"source"`
}

type configurationPayload struct {
	Percentage  *float64 `json:"percentage" validate:"required"`
	ExcludedTag *string  `json:"excludedTag" validate:"required"`
}

// ResolveConfiguration decodes the metafield payload. Absent or undecodable
// payloads resolve to DefaultConfiguration; decoded values are used verbatim.
func ResolveConfiguration(metafield *Metafield) Resolution {
	if metafield == nil || strings.TrimSpace(metafield.Value) == "" {
		return Resolution{Configuration: DefaultConfiguration(), Source: ConfigSourceAbsent}
	}
	cfg, ok := parseConfiguration(metafield.Value)
	if !ok {
		return Resolution{Configuration: DefaultConfiguration(), Source: ConfigSourceInvalid}
	}
	return Resolution{Configuration: cfg, Source: ConfigSourceMetafield}
}

func parseConfiguration(raw string) (Configuration, bool) {
	var payload configurationPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return Configuration{}, false
	}
	if err := validate.Struct(payload); err != nil {
		return Configuration{}, false
	}
	return Configuration{
		Percentage:  decimal.NewFromFloat(*payload.Percentage),
		ExcludedTag: *payload.ExcludedTag,
	}, true
}
