// Package style holds the decoded style payload and the codecs that move it
// across the byte boundary.
package style

import (
	"fmt"
	"strings"
)

type SymbolizerKind string

const (
	SymbolizerPoint   SymbolizerKind = "point"
	SymbolizerLine    SymbolizerKind = "line"
	SymbolizerPolygon SymbolizerKind = "polygon"
	SymbolizerText    SymbolizerKind = "text"
	SymbolizerRaster  SymbolizerKind = "raster"
)

// Style describes how one feature collection is rendered.
type Style struct {
	Name              string             `xml:"name,attr" yaml:"name"`
	Default           bool               `xml:"default,attr,omitempty" yaml:"default,omitempty"`
	Title             string             `xml:"Title,omitempty" yaml:"title,omitempty"`
	Abstract          string             `xml:"Abstract,omitempty" yaml:"abstract,omitempty"`
	FeatureTypeStyles []FeatureTypeStyle `xml:"FeatureTypeStyle" yaml:"featureTypeStyles,omitempty"`
}

type FeatureTypeStyle struct {
	Name        string `xml:"name,attr,omitempty" yaml:"name,omitempty"`
	FeatureType string `xml:"featureType,attr,omitempty" yaml:"featureType,omitempty"`
	Rules       []Rule `xml:"Rule" yaml:"rules,omitempty"`
}

type Rule struct {
	Name        string       `xml:"name,attr,omitempty" yaml:"name,omitempty"`
	Title       string       `xml:"Title,omitempty" yaml:"title,omitempty"`
	Filter      string       `xml:"Filter,omitempty" yaml:"filter,omitempty"`
	MinScale    float64      `xml:"MinScaleDenominator,omitempty" yaml:"minScale,omitempty"`
	MaxScale    float64      `xml:"MaxScaleDenominator,omitempty" yaml:"maxScale,omitempty"`
	Symbolizers []Symbolizer `xml:"Symbolizer" yaml:"symbolizers,omitempty"`
}

type Symbolizer struct {
	Kind        SymbolizerKind `xml:"kind,attr" yaml:"kind"`
	Stroke      string         `xml:"stroke,attr,omitempty" yaml:"stroke,omitempty"`
	StrokeWidth float64        `xml:"stroke-width,attr,omitempty" yaml:"strokeWidth,omitempty"`
	Fill        string         `xml:"fill,attr,omitempty" yaml:"fill,omitempty"`
	Opacity     float64        `xml:"opacity,attr,omitempty" yaml:"opacity,omitempty"`
	Label       string         `xml:"label,attr,omitempty" yaml:"label,omitempty"`
}

// Validate reports the first structural problem that would make the style
// unrepresentable. Codecs call it before encoding.
func (s *Style) Validate() error {
	if s == nil {
		return fmt.Errorf("style is nil")
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("style name cannot be empty")
	}
	for i, fts := range s.FeatureTypeStyles {
		for j, rule := range fts.Rules {
			if rule.MinScale < 0 || rule.MaxScale < 0 {
				return fmt.Errorf("featureTypeStyle[%d].rule[%d]: scale denominators cannot be negative", i, j)
			}
			if rule.MaxScale != 0 && rule.MinScale > rule.MaxScale {
				return fmt.Errorf("featureTypeStyle[%d].rule[%d]: min scale %g exceeds max scale %g", i, j, rule.MinScale, rule.MaxScale)
			}
			for k, sym := range rule.Symbolizers {
				if err := sym.validate(); err != nil {
					return fmt.Errorf("featureTypeStyle[%d].rule[%d].symbolizer[%d]: %w", i, j, k, err)
				}
			}
		}
	}
	return nil
}

func (s Symbolizer) validate() error {
	switch s.Kind {
	case SymbolizerPoint, SymbolizerLine, SymbolizerPolygon, SymbolizerText, SymbolizerRaster:
	default:
		return fmt.Errorf("unknown symbolizer kind %q", s.Kind)
	}
	if s.Opacity < 0 || s.Opacity > 1 {
		return fmt.Errorf("opacity %g outside [0,1]", s.Opacity)
	}
	if s.StrokeWidth < 0 {
		return fmt.Errorf("stroke width cannot be negative")
	}
	return nil
}
