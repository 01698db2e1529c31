package style

func roadsStyle() *Style {
	return &Style{
		Name:     "roads",
		Default:  true,
		Title:    "Road network",
		Abstract: "Classified roads with labels",
		FeatureTypeStyles: []FeatureTypeStyle{
			{
				FeatureType: "roads",
				Rules: []Rule{
					{
						Name:     "major",
						Filter:   "class = 'primary'",
						MaxScale: 50000,
						Symbolizers: []Symbolizer{
							{Kind: SymbolizerLine, Stroke: "#333333", StrokeWidth: 2.5, Opacity: 0.9},
							{Kind: SymbolizerText, Label: "name", Fill: "#000000"},
						},
					},
					{
						Name:     "minor",
						MinScale: 1000,
						MaxScale: 25000,
						Symbolizers: []Symbolizer{
							{Kind: SymbolizerLine, Stroke: "#999999", StrokeWidth: 1},
						},
					},
				},
			},
		},
	}
}
