package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/knadh/koanf/parsers/hcl"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const EnvPrefix = "HYDRASDR_"

// SearchPaths lists the config file locations, lowest priority first; the
// last one that exists wins.
func SearchPaths() []string {
	paths := []string{"/etc/hydrasdr/config.hcl"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "hydrasdr", "config.hcl"))
	}
	return append(paths, "./config.hcl")
}

func findConfig(paths []string) string {
	found := ""
	for _, path := range paths {
		if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
			found = path
		}
	}
	if found == "" {
		log.Debug("Config file not found, using defaults")
	} else {
		log.Debugf("Found config file: %s", found)
	}
	return found
}

// Load layers the config file picked from paths and then HYDRASDR_*
// environment variables on top of Default().
func Load(paths []string) (Config, error) {
	conf := Default()
	k := koanf.New(".")

	if path := findConfig(paths); path != "" {
		if err := k.Load(file.Provider(path), hcl.Parser(true)); err != nil {
			log.Errorf("Could not read config file: %v", err)
			log.Error("Attempting to use environment variables")
			k = koanf.New(".")
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(k, v string) (string, any) {
			key := strings.ToLower(strings.TrimPrefix(k, EnvPrefix))
			k = strings.Replace(key, "_", ".", 1)
			log.Debugf("Found config env var: %s=%v", k, v)
			return k, v
		},
	}), nil); err != nil {
		return conf, err
	}

	if err := k.UnmarshalWithConf("", &conf, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return conf, err
	}
	return conf, nil
}
