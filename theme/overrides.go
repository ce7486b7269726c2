package theme

import (
	"fmt"

	"github.com/elizafairlady/go-wheel/draw"
)

// Overrides is the user-editable part of a theme, as it appears in the
// config file. Empty fields keep the defaults.
type Overrides struct {
	Palette      []string `yaml:"palette"`
	Background   string   `yaml:"background"`
	Placeholder  string   `yaml:"placeholder"`
	Stroke       string   `yaml:"stroke"`
	Label        string   `yaml:"label"`
	Hub          string   `yaml:"hub"`
	Pointer      string   `yaml:"pointer"`
	LabelSize    float64  `yaml:"label_size"`
	LabelRadius  float64  `yaml:"label_radius"`
	Margin       int      `yaml:"margin"`
	EmptyMessage string   `yaml:"empty_message"`
}

// Apply overlays o on t. Nothing is changed if any value is invalid.
func (t *Theme) Apply(o Overrides) error {
	next := *t
	next.Palette = append([]draw.Color(nil), t.Palette...)

	if len(o.Palette) > 0 {
		next.Palette = next.Palette[:0]
		for _, s := range o.Palette {
			c, err := ParseColor(s)
			if err != nil {
				return fmt.Errorf("theme: palette: %w", err)
			}
			next.Palette = append(next.Palette, c)
		}
	}

	colors := []struct {
		name string
		src  string
		dst  *draw.Color
	}{
		{"background", o.Background, &next.Background},
		{"placeholder", o.Placeholder, &next.Placeholder},
		{"stroke", o.Stroke, &next.Stroke},
		{"label", o.Label, &next.Label},
		{"hub", o.Hub, &next.Hub},
		{"pointer", o.Pointer, &next.Pointer},
	}
	for _, c := range colors {
		if c.src == "" {
			continue
		}
		v, err := ParseColor(c.src)
		if err != nil {
			return fmt.Errorf("theme: %s: %w", c.name, err)
		}
		*c.dst = v
	}

	if o.LabelSize < 0 {
		return fmt.Errorf("theme: label_size %v is negative", o.LabelSize)
	}
	if o.LabelSize > 0 {
		next.LabelFont.Size = o.LabelSize
	}
	if o.LabelRadius < 0 || o.LabelRadius > 1 {
		return fmt.Errorf("theme: label_radius %v not in [0, 1]", o.LabelRadius)
	}
	if o.LabelRadius > 0 {
		next.LabelRadius = o.LabelRadius
	}
	if o.Margin < 0 {
		return fmt.Errorf("theme: margin %d is negative", o.Margin)
	}
	if o.Margin > 0 {
		next.Margin = o.Margin
	}
	if o.EmptyMessage != "" {
		next.EmptyMessage = o.EmptyMessage
	}

	*t = next
	return nil
}
