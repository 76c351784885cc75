package governor

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/Gthulhu/cpupower/domain"
)

func emptyMessage(label string) string {
	return fmt.Sprintf("'%s' value cannot be empty.", label)
}

func invalidMessage(label string) string {
	return fmt.Sprintf("Invalid '%s' value.", label)
}

func boundsMessage(label string, b Bounds) string {
	return fmt.Sprintf("Invalid '%s' value. Value must be between %d and %d.", label, b.Min, b.Max)
}

func frequencyMessage(label string) string {
	return fmt.Sprintf("Invalid '%s' value. Value must be an available frequency.", label)
}

func parseInt(raw string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
}

func parseBool(raw string) (bool, error) {
	return strconv.ParseBool(strings.TrimSpace(raw))
}

// Validate checks values against the parameters of kind and returns the message of the
// first failing parameter in catalog order, or "" when every value is acceptable.
func (c *Catalog) Validate(ctx context.Context, kind domain.GovernorKind, backend domain.GovernorBackend, limits domain.DeviceLimits, values map[string]string) string {
	r := &resolver{ctx: ctx, kind: kind, backend: backend, limits: limits, values: values}
	for _, spec := range c.specs[kind] {
		if msg := checkField(r, spec); msg != "" {
			return msg
		}
	}
	return ""
}

func checkField(r *resolver, spec ParameterSpec) string {
	raw := strings.TrimSpace(r.values[spec.Name])
	if raw == "" {
		return emptyMessage(spec.Label)
	}

	switch spec.Type {
	case domain.ParamBoolean:
		if _, err := parseBool(raw); err != nil {
			return invalidMessage(spec.Label)
		}
		return ""
	case domain.ParamFrequency:
		freq, err := parseInt(raw)
		if err != nil {
			return invalidMessage(spec.Label)
		}
		if r.backend == nil {
			return invalidMessage(spec.Label)
		}
		freqs, err := r.backend.AvailableFrequencies(r.ctx)
		if err != nil {
			return invalidMessage(spec.Label)
		}
		if !slices.Contains(freqs, freq) {
			return frequencyMessage(spec.Label)
		}
		return ""
	}

	v, err := parseInt(raw)
	if err != nil {
		return invalidMessage(spec.Label)
	}
	if spec.bounds == nil {
		return ""
	}
	if b := spec.bounds(r); !b.Contains(v) {
		return boundsMessage(spec.Label, b)
	}
	return ""
}

// normalize converts a validated value into the form written to the kernel.
func normalize(spec ParameterSpec, raw string) string {
	raw = strings.TrimSpace(raw)
	if spec.Type == domain.ParamBoolean {
		if b, err := parseBool(raw); err == nil && b {
			return "1"
		}
		return "0"
	}
	return raw
}

// Describe resolves the bounds of each parameter of kind against values and the device.
func (c *Catalog) Describe(ctx context.Context, kind domain.GovernorKind, backend domain.GovernorBackend, limits domain.DeviceLimits, values map[string]string) []domain.ParameterView {
	r := &resolver{ctx: ctx, kind: kind, backend: backend, limits: limits, values: values}
	var freqs []int64
	views := make([]domain.ParameterView, 0, len(c.specs[kind]))
	for _, spec := range c.specs[kind] {
		view := domain.ParameterView{Name: spec.Name, Label: spec.Label, Type: spec.Type}
		switch {
		case spec.Type == domain.ParamFrequency:
			if freqs == nil && backend != nil {
				freqs, _ = backend.AvailableFrequencies(ctx)
			}
			view.Choices = freqs
		case spec.bounds != nil:
			b := spec.bounds(r)
			view.Min, view.Max = &b.Min, &b.Max
		}
		views = append(views, view)
	}
	return views
}
