package lighthousedocs

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultEnvPrefix is the prefix of environment variables that override
// configuration values.
const DefaultEnvPrefix = "LIGHTHOUSE_DOCS_"

var ErrUnsupportedFormat = errors.New("unsupported configuration format")

// envKeys maps environment variable names, without prefix, to configuration
// keys.
var envKeys = map[string]string{
	"TITLE":           "title",
	"DESCRIPTION":     "description",
	"BASE":            "base",
	"LOGO":            "themeConfig.logo",
	"SEARCH_PROVIDER": "themeConfig.search.provider",
}

type loadOptions struct {
	envPrefix string
}

type LoadOption func(*loadOptions)

// WithEnvPrefix sets the prefix of the environment variables that are read.
// An empty prefix disables environment overrides.
func WithEnvPrefix(prefix string) LoadOption {
	return func(o *loadOptions) {
		o.envPrefix = prefix
	}
}

// LoadConfig reads a site configuration from a JSON or YAML file and applies
// environment overrides. Keys missing from the file keep the values of
// fileDefaults. An empty path starts from the built in Default configuration.
func LoadConfig(path string, opts ...LoadOption) (SiteConfig, error) {
	o := loadOptions{
		envPrefix: DefaultEnvPrefix,
	}

	for _, opt := range opts {
		opt(&o)
	}

	k := koanf.New(".")

	if path == "" {
		base, err := configMap(Default())
		if err != nil {
			return SiteConfig{}, fmt.Errorf("prepare default config: %w", err)
		}

		err = k.Load(mapProvider(base), nil)
		if err != nil {
			return SiteConfig{}, fmt.Errorf("load default config: %w", err)
		}
	} else {
		format, err := FormatFromPath(path)
		if err != nil {
			return SiteConfig{}, err
		}

		err = k.Load(mapProvider(fileDefaults()), nil)
		if err != nil {
			return SiteConfig{}, fmt.Errorf("load file defaults: %w", err)
		}

		var parser koanf.Parser = yaml.Parser()
		if format == FormatJSON {
			parser = kjson.Parser()
		}

		err = k.Load(file.Provider(path), parser)
		if err != nil {
			return SiteConfig{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if o.envPrefix != "" {
		err := k.Load(env.Provider(o.envPrefix, ".", func(s string) string {
			return envKeys[strings.TrimPrefix(s, o.envPrefix)]
		}), nil)
		if err != nil {
			return SiteConfig{}, fmt.Errorf("load environment: %w", err)
		}
	}

	var conf SiteConfig

	err := k.UnmarshalWithConf("", &conf, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				outlineLevelHook,
				headTagHook,
			),
			Result:           &conf,
			TagName:          "koanf",
			WeaklyTypedInput: true,
		},
	})
	if err != nil {
		return SiteConfig{}, fmt.Errorf("decode config: %w", err)
	}

	return conf, nil
}

// fileDefaults are the values a configuration file starts out from, the
// same the site generator assumes for keys that are left out. Search is off
// unless a provider is set.
func fileDefaults() map[string]any {
	return map[string]any{
		"base": "/",
		"themeConfig": map[string]any{
			"outline": map[string]any{
				"level": []any{2, 2},
			},
		},
	}
}

var (
	outlineLevelType = reflect.TypeOf(OutlineLevel{})
	headTagType      = reflect.TypeOf(HeadTag{})
)

func outlineLevelHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != outlineLevelType {
		return data, nil
	}

	return parseOutlineLevel(data)
}

func headTagHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != headTagType {
		return data, nil
	}

	raw, ok := data.([]any)
	if !ok {
		return data, nil
	}

	h, err := headTagFromTuple(raw)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"tag":     h.Tag,
		"attrs":   h.Attrs,
		"content": h.Content,
	}, nil
}

// configMap converts a configuration to the generic form the file parsers
// produce.
func configMap(conf SiteConfig) (map[string]any, error) {
	data, err := json.Marshal(conf)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	var m map[string]any

	err = json.Unmarshal(data, &m)
	if err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return m, nil
}

// mapProvider is a koanf provider for an already parsed configuration.
type mapProvider map[string]any

func (m mapProvider) ReadBytes() ([]byte, error) {
	return nil, errors.New("map provider does not support ReadBytes")
}

func (m mapProvider) Read() (map[string]any, error) {
	return m, nil
}

// FormatFromPath picks the encoding of a configuration file from its
// extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}
