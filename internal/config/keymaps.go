package config

// KeyMappings defines all configurable key bindings of the board view
type KeyMappings struct {
	// Drag gesture
	PickUp string `mapstructure:"pick_up" yaml:"pick_up"`
	Drop   string `mapstructure:"drop" yaml:"drop"`
	Cancel string `mapstructure:"cancel" yaml:"cancel"`

	// Navigation
	PrevColumn string `mapstructure:"prev_column" yaml:"prev_column"`
	NextColumn string `mapstructure:"next_column" yaml:"next_column"`
	PrevTicket string `mapstructure:"prev_ticket" yaml:"prev_ticket"`
	NextTicket string `mapstructure:"next_ticket" yaml:"next_ticket"`

	// Other
	Refresh  string `mapstructure:"refresh" yaml:"refresh"`
	ShowHelp string `mapstructure:"show_help" yaml:"show_help"`
	Quit     string `mapstructure:"quit" yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		PickUp: " ",
		Drop:   "enter",
		Cancel: "esc",

		PrevColumn: "h",
		NextColumn: "l",
		PrevTicket: "k",
		NextTicket: "j",

		Refresh:  "r",
		ShowHelp: "?",
		Quit:     "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	for _, pair := range []struct {
		value *string
		def   string
	}{
		{&k.PickUp, defaults.PickUp},
		{&k.Drop, defaults.Drop},
		{&k.Cancel, defaults.Cancel},
		{&k.PrevColumn, defaults.PrevColumn},
		{&k.NextColumn, defaults.NextColumn},
		{&k.PrevTicket, defaults.PrevTicket},
		{&k.NextTicket, defaults.NextTicket},
		{&k.Refresh, defaults.Refresh},
		{&k.ShowHelp, defaults.ShowHelp},
		{&k.Quit, defaults.Quit},
	} {
		if *pair.value == "" {
			*pair.value = pair.def
		}
	}
}
