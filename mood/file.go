package mood

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var (
	ErrProfileFormat = errors.New(f("profile file must be .toml, .yaml or .yml"))
	ErrProfileKey    = errors.New(f("unknown profile key"))
)

// profileFile is the layout of a profile file: an optional base mood,
// and overrides of any of its profile fields.
//
//	base = "Happy"
//	small = 60
//	no-gain = true
type profileFile struct {
	Base    string `toml:"base" yaml:"base"`
	Profile `yaml:",inline"`
}

// LoadFile reads a profile file. The format is chosen by extension.
func LoadFile(path string) (profile Profile, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("cannot read %s: %w", path, err)
		return
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		profile, err = ParseTOML(data)
	case ".yaml", ".yml":
		profile, err = ParseYAML(data)
	default:
		err = ErrProfileFormat
	}
	if err != nil {
		err = fmt.Errorf("parse error in %s: %w", path, err)
	}

	return
}

// base returns the profile of the named base mood, or the default.
func base(name string) (profile Profile, err error) {
	if len(name) == 0 {
		profile = DefaultProfile
		return
	}

	mood, err := Parse(name)
	if err != nil {
		return
	}

	profile = mood.Profile()
	return
}

// ParseTOML parses a TOML profile.
func ParseTOML(data []byte) (profile Profile, err error) {
	var head profileFile
	_, err = toml.Decode(string(data), &head)
	if err != nil {
		return
	}

	pf := profileFile{}
	pf.Profile, err = base(head.Base)
	if err != nil {
		return
	}

	md, err := toml.Decode(string(data), &pf)
	if err != nil {
		return
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		err = errors.Join(ErrProfileKey, errors.New(undecoded[0].String()))
		return
	}

	profile = pf.Profile
	return
}

// ParseYAML parses a YAML profile.
func ParseYAML(data []byte) (profile Profile, err error) {
	var head profileFile
	err = yaml.Unmarshal(data, &head)
	if err != nil {
		return
	}

	pf := profileFile{}
	pf.Profile, err = base(head.Base)
	if err != nil {
		return
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	err = dec.Decode(&pf)
	if err != nil {
		return
	}

	profile = pf.Profile
	return
}
