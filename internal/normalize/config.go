package normalize

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Replacement is one title filler phrase and its shorter substitute
// (usually empty).
type Replacement struct {
	Old string `yaml:"old"`
	New string `yaml:"new"`
}

// Config is the editorial data driving the repair pass. It is explicit
// configuration rather than package globals so tests can substitute
// fixtures; the defaults match the production editorial config.
type Config struct {
	AuthorPools       map[string][]string `yaml:"authorPools"`
	FallbackPool      string              `yaml:"fallbackPool"`
	TitleFillers      []Replacement       `yaml:"titleFillers"`
	DefaultCategory   string              `yaml:"defaultCategory"`
	CategoryAliases   map[string]string   `yaml:"categoryAliases"`
	FallbackCategory  string              `yaml:"fallbackCategory"` // for alias consolidation
	MaxTitleLength    int                 `yaml:"maxTitleLength"`
	MaxExcerptLength  int                 `yaml:"maxExcerptLength"`
	MaxMetaDescLength int                 `yaml:"maxMetaDescLength"`
}

// DefaultConfig returns the built-in editorial defaults.
func DefaultConfig() Config {
	defence := []string{"Col. James Parker", "Lt. Sarah Adams", "Maj. David Clark", "Capt. Lisa Moore"}
	return Config{
		AuthorPools: map[string][]string{
			"sports":      {"James Mitchell", "Sarah Collins", "Mike Rodriguez", "Emma Thompson"},
			"business":    {"David Chen", "Lisa Anderson", "Robert Taylor", "Jennifer Walsh"},
			"technology":  {"Alex Kumar", "Maria Gonzalez", "Kevin O'Brien", "Rachel Kim"},
			"finance":     {"Thomas Brown", "Angela Davis", "Mark Wilson", "Priya Patel"},
			"economy":     {"Dr. Richard Smith", "Prof. Jane Miller", "Charles Johnson", "Samantha Lee"},
			"news":        {"John Stevens", "Mary Johnson", "Chris Williams", "Anna Brown"},
			"environment": {"Dr. Michael Green", "Sarah Nature", "Ben Carter", "Emily Forest"},
			"defence":     defence,
			"defense":     defence,
		},
		FallbackPool: "news",
		TitleFillers: []Replacement{
			{Old: ": A Comprehensive Guide"},
			{Old: ": A Deep Dive"},
			{Old: ": An In-Depth Analysis"},
			{Old: " - Will We See a Trilogy?", New: " - Trilogy?"},
			{Old: " and Future Prospects"},
			{Old: ": Decoding the Intense", New: ":"},
			{Old: " in Premier League Classic"},
			{Old: ": Red Devils Dominate in Thrilling Encounter", New: ": Red Devils Win"},
			{Old: " and Safer Alternatives in the US", New: " & Alternatives"},
			{Old: ": The Truth About Free Sports Streaming", New: ": Free Streaming Guide"},
			{Old: ": The Rise of Free Sports Streaming and its Risks", New: ": Free Streaming Risks"},
		},
		DefaultCategory: "News",
		CategoryAliases: map[string]string{
			"Business":                           "Business",
			"Finance":                            "Business",
			"Economy":                            "Business",
			"Business & Finance":                 "Business",
			"Business & Economy":                 "Business",
			"Business & International Relations": "Business",
			"Business and Technology":            "Business",
			"Health":                             "Health",
			"Health & Wellness":                  "Health",
			"Health & Safety":                    "Health",
			"News":                               "World",
			"World Affairs":                      "World",
			"Defence":                            "World",
			"Defense":                            "World",
			"Travel":                             "Lifestyle",
			"Travel News":                        "Lifestyle",
			"Food & Drink":                       "Lifestyle",
			"Career Development":                 "Lifestyle",
			"Sports":                             "Sports",
			"Technology":                         "Technology",
			"Entertainment":                      "Entertainment",
			"Environment":                        "Environment",
			"World":                              "World",
			"Lifestyle":                          "Lifestyle",
		},
		FallbackCategory:  "World",
		MaxTitleLength:    60,
		MaxExcerptLength:  160,
		MaxMetaDescLength: 155,
	}
}

// LoadConfig reads editorial overrides from a YAML file on top of the
// defaults. A missing file just yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to open editorial config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse editorial config %s: %w", path, err)
	}
	if cfg.MaxTitleLength <= 0 {
		cfg.MaxTitleLength = 60
	}
	if cfg.MaxExcerptLength <= 0 {
		cfg.MaxExcerptLength = 160
	}
	if cfg.MaxMetaDescLength <= 0 {
		cfg.MaxMetaDescLength = 155
	}
	return cfg, nil
}
