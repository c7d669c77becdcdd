// Package config loads and validates training configuration.
//
// Configuration is read from YAML. Fields absent from the file keep their
// defaults; unknown fields are rejected.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Train configures one training run.
type Train struct {
	Seed int64 `yaml:"seed"`

	// Dataset selects the toy problem: "moons" or "xor".
	Dataset string  `yaml:"dataset" validate:"oneof=moons xor"`
	Samples int     `yaml:"samples" validate:"gte=2"`
	Noise   float64 `yaml:"noise" validate:"gte=0"`

	// Layers lists the output size of each layer. The last entry must be 1.
	Layers     []int  `yaml:"layers" validate:"min=1,dive,gt=0"`
	Activation string `yaml:"activation" validate:"oneof=tanh relu linear"`
	Init       string `yaml:"init" validate:"oneof=uniform xavier"`

	Optimizer string  `yaml:"optimizer" validate:"oneof=sgd adam"`
	Loss      string  `yaml:"loss" validate:"oneof=hinge mse"`
	Epochs    int     `yaml:"epochs" validate:"gt=0"`
	LR        float64 `yaml:"lr" validate:"gt=0"`
	// LREnd enables linear decay from LR to LREnd over the run. Zero disables it.
	LREnd     float64 `yaml:"lr_end" validate:"gte=0"`
	Momentum  float64 `yaml:"momentum" validate:"gte=0,lt=1"`
	Alpha     float64 `yaml:"alpha" validate:"gte=0"`
	BatchSize int     `yaml:"batch_size" validate:"gte=0"`
	LogEvery  int     `yaml:"log_every" validate:"gte=0"`
}

// Default returns the two-moons setup: a 2-16-16-1 ReLU network trained with
// hinge loss, L2 regularization and a linearly decaying learning rate.
func Default() Train {
	return Train{
		Seed:       1337,
		Dataset:    "moons",
		Samples:    100,
		Noise:      0.1,
		Layers:     []int{16, 16, 1},
		Activation: "relu",
		Init:       "uniform",
		Optimizer:  "sgd",
		Loss:       "hinge",
		Epochs:     100,
		LR:         1.0,
		LREnd:      0.1,
		Alpha:      1e-4,
		LogEvery:   1,
	}
}

// Load reads and validates the configuration file at path.
func Load(path string) (Train, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Train{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg, err := Parse(raw)
	if err != nil {
		return Train{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of Default and validates the result.
// An empty document yields the defaults.
func Parse(raw []byte) (Train, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Train{}, fmt.Errorf("decode yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Train{}, err
	}
	return cfg, nil
}

// Write stores cfg at path as YAML.
func Write(path string, cfg Train) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// FieldError describes one rejected field.
type FieldError struct {
	Field string
	Rule  string
	Value any
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s=%v fails %q", e.Field, e.Value, e.Rule)
}

// ValidationError lists every rejected field of a configuration.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return fmt.Sprintf("%v: %s", ErrInvalid, strings.Join(parts, "; "))
}

// Unwrap returns ErrInvalid.
func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks field ranges and cross-field constraints.
func (c Train) Validate() error {
	var fields []FieldError

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("config: validate: %w", err)
		}
		for _, fe := range verrs {
			fields = append(fields, FieldError{
				Field: strings.TrimPrefix(fe.Namespace(), "Train."),
				Rule:  fe.Tag(),
				Value: fe.Value(),
			})
		}
	}

	if n := len(c.Layers); n > 0 && c.Layers[n-1] != 1 {
		fields = append(fields, FieldError{Field: "layers", Rule: "last=1", Value: c.Layers[n-1]})
	}
	if c.LREnd > c.LR {
		fields = append(fields, FieldError{Field: "lr_end", Rule: "ltefield=lr", Value: c.LREnd})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
