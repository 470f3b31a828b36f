package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	validator "github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"navsync/common"
	"navsync/match"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	NavItemConfig struct {
		ID    string `yaml:"id" validate:"required"`
		Icon  string `yaml:"icon" validate:"required"`
		Label string `yaml:"label,omitempty"`
	}

	SectionConfig struct {
		Title string          `yaml:"title" validate:"required"`
		Items []NavItemConfig `yaml:"items" validate:"required,min=1,dive"`
	}

	ActiveConfig struct {
		Default string            `yaml:"default"`
		Entries map[string]string `yaml:"entries"`
	}

	BadgeConfig struct {
		ID    string `yaml:"id"`
		Count int    `yaml:"count" validate:"gte=0"`
	}

	NavigationConfig struct {
		Top        []NavItemConfig `yaml:"top" validate:"required,min=1,dive"`
		Sidebar    []SectionConfig `yaml:"sidebar" validate:"dive"`
		ActiveTop  ActiveConfig    `yaml:"active_top"`
		ActiveSide ActiveConfig    `yaml:"active_side"`
		Badge      BadgeConfig     `yaml:"badge"`
	}

	AnchorConfig struct {
		Tag   string            `yaml:"tag" validate:"required"`
		Attrs map[string]string `yaml:"attrs"`
	}

	AnchorsConfig struct {
		Logo    AnchorConfig `yaml:"logo"`
		TopNav  AnchorConfig `yaml:"top_nav"`
		SideNav AnchorConfig `yaml:"side_nav"`
	}

	StylesConfig struct {
		TopActive         string `yaml:"top_active" validate:"required"`
		TopInactive       string `yaml:"top_inactive" validate:"required"`
		TopIconSize       int    `yaml:"top_icon_size" validate:"min=1"`
		SideActive        string `yaml:"side_active" validate:"required"`
		SideInactive      string `yaml:"side_inactive" validate:"required"`
		SideIconSize      int    `yaml:"side_icon_size" validate:"min=1"`
		SectionWrapper    string `yaml:"section_wrapper" validate:"required"`
		SectionHeader     string `yaml:"section_header" validate:"required"`
		BadgeLinkActive   string `yaml:"badge_link_active" validate:"required"`
		BadgeLinkInactive string `yaml:"badge_link_inactive" validate:"required"`
		BadgeLabel        string `yaml:"badge_label" validate:"required"`
		BadgeActive       string `yaml:"badge_active" validate:"required"`
		BadgeInactive     string `yaml:"badge_inactive" validate:"required"`
	}

	ReplacementConfig struct {
		From string `yaml:"from" validate:"required"`
		To   string `yaml:"to"`
	}

	TitleConfig struct {
		OldSuffix string `yaml:"old_suffix" validate:"required"`
		Template  string `yaml:"template" validate:"required"`
	}

	BrandConfig struct {
		Name     string              `yaml:"name" validate:"required"`
		Tagline  string              `yaml:"tagline"`
		Color    string              `yaml:"color" validate:"required"`
		Home     string              `yaml:"home" validate:"required"`
		Icon     string              `yaml:"icon"`
		Colors   []ReplacementConfig `yaml:"colors" validate:"dive"`
		Literals []ReplacementConfig `yaml:"literals" validate:"dive"`
		Logo     string              `yaml:"logo" validate:"required"`
		Title    TitleConfig         `yaml:"title"`
	}

	CorpusConfig struct {
		Include []string `yaml:"include" validate:"required,min=1,dive,required"`
		Exclude []string `yaml:"exclude" validate:"dive,required"`
	}

	ProcessingConfig struct {
		Workers int                   `yaml:"workers" validate:"gte=0"`
		Indent  string                `yaml:"indent"`
		Expect  []common.FragmentKind `yaml:"expect"`
	}

	Config struct {
		Version    int              `yaml:"version" validate:"eq=1"`
		Navigation NavigationConfig `yaml:"navigation"`
		Anchors    AnchorsConfig    `yaml:"anchors"`
		Styles     StylesConfig     `yaml:"styles"`
		Brand      BrandConfig      `yaml:"brand"`
		Corpus     CorpusConfig     `yaml:"corpus"`
		Processing ProcessingConfig `yaml:"processing"`
		Logging    LoggingConfig    `yaml:"logging"`
		Reporting  ReporterConfig   `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, gencfg knows nothing about
	// structure and only sees field names
	LogoTemplateFieldName  TemplateFieldName = "logo"
	TitleTemplateFieldName TemplateFieldName = "template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(LogoTemplateFieldName)),
	gencfg.WithDoNotExpandField(string(TitleTemplateFieldName)),
)

// checkSubstitutions rejects substitution pairs which would keep changing the
// document on every run. Pairs are checked one by one, interaction between
// different pairs is not.
func checkSubstitutions(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(Config)

	for i, r := range cfg.Brand.Colors {
		field := fmt.Sprintf("Brand.Colors[%d]", i)
		if !match.ValidHexColor(r.From) {
			sl.ReportError(r.From, field+".from", "From", "hexcolor", "")
		}
		if !match.ValidHexColor(r.To) {
			sl.ReportError(r.To, field+".to", "To", "hexcolor", "")
		}
		if strings.EqualFold(r.From, r.To) {
			sl.ReportError(r.To, field+".to", "To", "nefield", "From")
		}
	}
	for i, r := range cfg.Brand.Literals {
		if !match.StableLiteral(r.From, r.To) {
			sl.ReportError(r.To, fmt.Sprintf("Brand.Literals[%d].to", i), "To", "stable", r.From)
		}
	}
	if !match.ValidHexColor(cfg.Brand.Color) {
		sl.ReportError(cfg.Brand.Color, "Brand.color", "Color", "hexcolor", "")
	}
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// unknown fields are errors, yaml.Unmarshal would silently ignore them
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg, gencfg.WithAdditionalChecks(checkSubstitutions)); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}

// Anchor converts configured anchor to the form used by matcher.
func (a AnchorConfig) Anchor() match.Anchor {
	return match.Anchor{Tag: a.Tag, Attrs: a.Attrs}
}
