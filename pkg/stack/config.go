package stack

import (
	"errors"
	"math"

	errs "github.com/matzehuels/cardstack/pkg/errors"
)

// Default configuration values.
const (
	DefaultItemWidth   = 200.0
	DefaultItemHeight  = 300.0
	DefaultSpacing     = 10.0
	DefaultMaxVisible  = 4
	DefaultScaleFactor = 0.95
)

// ScalePolicy selects the per-depth scale formula.
type ScalePolicy string

const (
	// PolicyAnchored keeps the front card at full size: scale(d) = f^d.
	PolicyAnchored ScalePolicy = "anchored"

	// PolicySymmetric centers the exponent on the middle of the stack:
	// scale(d) = f^(d − MaxVisible/2).
	PolicySymmetric ScalePolicy = "symmetric"
)

// ParsePolicy converts a policy name into a ScalePolicy.
// The empty string maps to [PolicyAnchored].
func ParsePolicy(s string) (ScalePolicy, error) {
	switch ScalePolicy(s) {
	case "", PolicyAnchored:
		return PolicyAnchored, nil
	case PolicySymmetric:
		return PolicySymmetric, nil
	}
	return "", errs.New(errs.ErrCodeInvalidConfig, "invalid scale policy: %q (must be one of: anchored, symmetric)", s)
}

// UnmarshalText implements encoding.TextUnmarshaler so policies can be read
// from TOML and JSON.
func (p *ScalePolicy) UnmarshalText(text []byte) error {
	parsed, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Config holds the parameters of the card stack. A Config is treated as
// immutable during a layout pass.
type Config struct {
	ItemSize    Size        `json:"item_size" toml:"item_size"`
	Spacing     float64     `json:"spacing" toml:"spacing"`
	MaxVisible  int         `json:"max_visible" toml:"max_visible"`
	ScaleFactor float64     `json:"scale_factor" toml:"scale_factor"`
	Policy      ScalePolicy `json:"policy,omitempty" toml:"policy"`
}

// DefaultConfig returns the configuration used when nothing else is given.
func DefaultConfig() Config {
	return Config{
		ItemSize:    Size{Width: DefaultItemWidth, Height: DefaultItemHeight},
		Spacing:     DefaultSpacing,
		MaxVisible:  DefaultMaxVisible,
		ScaleFactor: DefaultScaleFactor,
		Policy:      PolicyAnchored,
	}
}

// Validate reports every violated constraint, joined into one error.
// Each joined error carries [errs.ErrCodeInvalidConfig].
func (c Config) Validate() error {
	var problems []error
	if err := errs.ValidatePositive(errs.ErrCodeInvalidConfig, "item width", c.ItemSize.Width); err != nil {
		problems = append(problems, err)
	}
	if err := errs.ValidatePositive(errs.ErrCodeInvalidConfig, "item height", c.ItemSize.Height); err != nil {
		problems = append(problems, err)
	}
	if err := errs.ValidateNonNegative(errs.ErrCodeInvalidConfig, "spacing", c.Spacing); err != nil {
		problems = append(problems, err)
	}
	if err := errs.ValidateCount(errs.ErrCodeInvalidConfig, "max visible", c.MaxVisible, 1); err != nil {
		problems = append(problems, err)
	}
	if err := errs.ValidateUnitInterval(errs.ErrCodeInvalidConfig, "scale factor", c.ScaleFactor); err != nil {
		problems = append(problems, err)
	}
	if _, err := ParsePolicy(string(c.Policy)); err != nil {
		problems = append(problems, err)
	}
	return errors.Join(problems...)
}

// policy returns the effective policy, treating the zero value as anchored.
func (c Config) policy() ScalePolicy {
	if c.Policy == "" {
		return PolicyAnchored
	}
	return c.Policy
}

// Scale returns the resting scale of a card at depth d (t = 0).
// Scale is non-increasing in d for both policies.
func (c Config) Scale(d int) float64 {
	if c.policy() == PolicySymmetric {
		return math.Pow(c.ScaleFactor, float64(d)-float64(c.MaxVisible)/2)
	}
	if d <= 0 {
		return 1
	}
	return math.Pow(c.ScaleFactor, float64(d))
}

// inset returns the horizontal offset of a resting card at depth d relative
// to the front card. Anchored cards are shifted so their right edges step out
// by Spacing; symmetric cards by Spacing only.
func (c Config) inset(d int) float64 {
	x := c.Spacing * float64(d)
	if c.policy() == PolicyAnchored {
		w := c.ItemSize.Width
		x += (w - w*c.Scale(d)) / 2
	}
	return x
}

// drift is how far every card behind the front moves left over one full
// page: the second card's inset, (w − w·Scale(1))/2 + Spacing, when
// anchored, and Spacing alone when symmetric. All depths drift together.
func (c Config) drift() float64 {
	return c.inset(1) - c.inset(0)
}
