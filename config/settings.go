package config

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultOutputSuffix = ".SKL.ini"
	DefaultRootName     = "ROOTTRANSFORM"
	DefaultProxy        = "box"
	DefaultListen       = ":8000"
)

// Settings are the knobs shared by the browser and the sklconv tool.
// Command line flags override whatever a settings file provides.
type Settings struct {
	Encoding     string `yaml:"encoding"`
	OutputSuffix string `yaml:"output_suffix"`
	RootName     string `yaml:"root_name"`
	Proxy        string `yaml:"proxy"`
	Listen       string `yaml:"listen"`
	Dir          string `yaml:"dir"`
}

func DefaultSettings() Settings {
	return Settings{
		Encoding:     DefaultEncoding,
		OutputSuffix: DefaultOutputSuffix,
		RootName:     DefaultRootName,
		Proxy:        DefaultProxy,
		Listen:       DefaultListen,
	}
}

// LoadSettings reads a yaml settings file on top of the defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	data, err := ioutil.ReadFile(path)
	if err != nil {
		return s, errors.Wrapf(err, "Cannot read settings file %q", path)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, errors.Wrapf(err, "Cannot parse settings file %q", path)
	}
	s.fillDefaults()

	if _, err := FindEncoding(s.Encoding); err != nil {
		return s, errors.Wrapf(err, "Invalid settings file %q", path)
	}
	return s, nil
}

func (s *Settings) fillDefaults() {
	d := DefaultSettings()
	if s.Encoding == "" {
		s.Encoding = d.Encoding
	}
	if s.OutputSuffix == "" {
		s.OutputSuffix = d.OutputSuffix
	}
	if s.RootName == "" {
		s.RootName = d.RootName
	}
	if s.Proxy == "" {
		s.Proxy = d.Proxy
	}
	if s.Listen == "" {
		s.Listen = d.Listen
	}
}
