package configutil

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

func splitExt(f string) (string, string) {
	for i := len(f) - 1; i >= 0; i-- {
		if f[i] == '.' {
			return f[0:i], f[i+1:]
		}
	}
	return f, ""
}

func localName(name string) string {
	prefixname, ext := splitExt(filepath.Base(name))
	return filepath.Join(
		filepath.Dir(name),
		fmt.Sprintf("%s.local.%s", prefixname, ext),
	)
}

func readInto[T any](path string, out *T) (bool, error) {
	contents, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if len(contents) == 0 {
		return false, nil
	}
	err = json5.Unmarshal(contents, out)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", path, err)
	}
	return true, nil
}

// reads a configuration file, `name` should come with a file extension,
// it will automatically be lopped off to produce the other extensions.
// this function will merge the following files, where higher number is more prioritized.
// 1. <name>.<ext>
// 2. <name>.local.<ext>
//
// os.ErrNotExist is returned if neither file exists.
func ReadConfig[T any](name string) (T, error) {
	var out T

	foundDefault, err := readInto(name, &out)
	if err != nil {
		return out, err
	}

	localFilepath := localName(name)
	var override T
	foundLocal, err := readInto(localFilepath, &override)
	if err != nil {
		return out, err
	}
	if foundLocal {
		err = mergo.Merge(&out, override, mergo.WithOverride)
		if err != nil {
			return out, err
		}
		slog.Info("merging config with local overrides", "local", localFilepath)
	}

	if !foundDefault && !foundLocal {
		return out, os.ErrNotExist
	}
	return out, nil
}

// Find recursively goes up the filesystem from the cwd until the root to find
// a directory containing a file named `name` (or its .local variant), it
// returns the path of `name` in that directory.
func Find(name string) (string, error) {
	root, err := filepath.Abs("/")
	if err != nil {
		return "", err
	}
	current, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(current, name)
		for _, path := range []string{candidate, localName(candidate)} {
			_, err := os.Stat(path)
			if err == nil {
				return candidate, nil
			}
		}
		if current == root {
			return "", os.ErrNotExist
		}
		current = filepath.Dir(current)
	}
}

// ReadConfig but it recursively goes up the filesystem until the root
// to find a configuration file matching the name.
func ReadRecursively[T any](name string) (T, error) {
	var defaultOut T
	path, err := Find(name)
	if err != nil {
		return defaultOut, err
	}
	return ReadConfig[T](path)
}

// ReadWithDefaults reads the configuration at `path` (or searches for it with
// ReadRecursively if `path` is not absolute and does not exist relative to the cwd)
// and fills every zero field with the value in `defaults`. A missing file is not
// an error, `defaults` is returned as is.
func ReadWithDefaults[T any](path string, defaults T) (T, error) {
	var config T
	var err error

	_, statErr := os.Stat(path)
	_, localStatErr := os.Stat(localName(path))
	if statErr == nil || localStatErr == nil || filepath.IsAbs(path) {
		config, err = ReadConfig[T](path)
	} else {
		config, err = ReadRecursively[T](path)
	}
	if errors.Is(err, os.ErrNotExist) {
		return defaults, nil
	}
	if err != nil {
		return defaults, err
	}

	err = mergo.Merge(&config, defaults)
	if err != nil {
		return defaults, err
	}
	return config, nil
}
