package config

// Theme defines the colors of the board view
type Theme struct {
	// Preset name ("default" or "monochrome") used for unset colors
	Preset string `mapstructure:"preset" yaml:"preset"`

	Accent         string `mapstructure:"accent" yaml:"accent"`
	ColumnBorder   string `mapstructure:"column_border" yaml:"column_border"`
	CardBorder     string `mapstructure:"card_border" yaml:"card_border"`
	SelectedBorder string `mapstructure:"selected_border" yaml:"selected_border"`
	DraggingBorder string `mapstructure:"dragging_border" yaml:"dragging_border"`

	Title  string `mapstructure:"title" yaml:"title"`
	Subtle string `mapstructure:"subtle" yaml:"subtle"`
	Normal string `mapstructure:"normal" yaml:"normal"`

	InfoFg  string `mapstructure:"info_fg" yaml:"info_fg"`
	ErrorFg string `mapstructure:"error_fg" yaml:"error_fg"`
}

// DefaultTheme returns the default color scheme (purple theme)
func DefaultTheme() *Theme {
	return &Theme{
		Preset:         "default",
		Accent:         "#874BFD",
		ColumnBorder:   "#5F87D7",
		CardBorder:     "#585858",
		SelectedBorder: "#D75FD7",
		DraggingBorder: "#FFD700",
		Title:          "#D75FD7",
		Subtle:         "#585858",
		Normal:         "#D0D0D0",
		InfoFg:         "#00AFFF",
		ErrorFg:        "#FF0000",
	}
}

// MonochromeTheme returns a black and white color scheme
func MonochromeTheme() *Theme {
	return &Theme{
		Preset:         "monochrome",
		Accent:         "#FFFFFF",
		ColumnBorder:   "#FFFFFF",
		CardBorder:     "#585858",
		SelectedBorder: "#FFFFFF",
		DraggingBorder: "#D0D0D0",
		Title:          "#FFFFFF",
		Subtle:         "#585858",
		Normal:         "#D0D0D0",
		InfoFg:         "#FFFFFF",
		ErrorFg:        "#FFFFFF",
	}
}

// GetPreset returns a preset theme by name, falling back to the default
func GetPreset(name string) *Theme {
	if name == "monochrome" {
		return MonochromeTheme()
	}
	return DefaultTheme()
}

func (t *Theme) fields() []*string {
	return []*string{
		&t.Accent, &t.ColumnBorder, &t.CardBorder, &t.SelectedBorder, &t.DraggingBorder,
		&t.Title, &t.Subtle, &t.Normal, &t.InfoFg, &t.ErrorFg,
	}
}

// ApplyDefaults fills in missing colors from the preset
func (t *Theme) ApplyDefaults() {
	preset := GetPreset(t.Preset)
	if t.Preset == "" {
		t.Preset = preset.Preset
	}
	base := preset.fields()
	for i, f := range t.fields() {
		if *f == "" {
			*f = *base[i]
		}
	}
}

// MergeFrom overrides colors with the ones set in other
func (t *Theme) MergeFrom(other Theme) {
	if other.Preset != "" && other.Preset != t.Preset {
		*t = *GetPreset(other.Preset)
	}
	src := other.fields()
	for i, f := range t.fields() {
		if *src[i] != "" {
			*f = *src[i]
		}
	}
}
