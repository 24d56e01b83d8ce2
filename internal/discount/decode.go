package discount

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/noah-isme/discount-function/internal/common"
)

// ErrInvalidInput is wrapped by every envelope decoding failure.
var ErrInvalidInput = errors.New("invalid discount input")

var validate = validator.New()

// envelope distinguishes an absent cart from an empty one.
type envelope struct {
	Cart     *Cart    `json:"cart" validate:"required"`
	Discount Discount `json:"discount"`
}

// DecodeInput reads exactly one JSON input document. Malformed or incomplete
// input is reported as a *common.AppError wrapping ErrInvalidInput.
func DecodeInput(r io.Reader) (Input, error) {
	dec := json.NewDecoder(r)
	var env envelope
	if err := dec.Decode(&env); err != nil {
		return Input{}, invalidInput("decode input", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Input{}, invalidInput("decode input", errors.New("unexpected data after input document"))
	}
	if err := validate.Struct(env); err != nil {
		return Input{}, invalidInput("validate input", err)
	}
	return Input{Cart: *env.Cart, Discount: env.Discount}, nil
}

// DecodeInputYAML reads an input document written as YAML with the same field
// names as the JSON form.
func DecodeInputYAML(r io.Reader) (Input, error) {
	var doc any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return Input{}, invalidInput("decode yaml input", err)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return Input{}, invalidInput("convert yaml input", err)
	}
	return DecodeInput(bytes.NewReader(data))
}

func invalidInput(op string, err error) error {
	return common.InvalidInput(op, fmt.Errorf("%w: %w", ErrInvalidInput, err))
}
