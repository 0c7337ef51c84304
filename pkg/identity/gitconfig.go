package identity

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

// GlobalConfigPaths lists the global git config files in the order git reads
// them: the XDG file, then ~/.gitconfig. GIT_CONFIG_GLOBAL replaces both.
func GlobalConfigPaths() []string {
	if p := os.Getenv("GIT_CONFIG_GLOBAL"); p != "" {
		return []string{p}
	}

	var paths []string

	xdg := os.Getenv("XDG_CONFIG_HOME")
	home, homeErr := os.UserHomeDir()

	switch {
	case xdg != "":
		paths = append(paths, filepath.Join(xdg, "git", "config"))
	case homeErr == nil:
		paths = append(paths, filepath.Join(home, ".config", "git", "config"))
	}

	if homeErr == nil {
		paths = append(paths, filepath.Join(home, ".gitconfig"))
	}

	return paths
}

// GlobalUserName reads user.name from the given git config files. Missing
// files are skipped and later files override earlier ones. With no paths,
// GlobalConfigPaths is used.
func GlobalUserName(paths ...string) (string, error) {
	if len(paths) == 0 {
		paths = GlobalConfigPaths()
	}

	if len(paths) == 0 {
		return "", ErrNoAuthors
	}

	sources := make([]any, len(paths))
	for i, p := range paths {
		sources[i] = p
	}

	cfg, err := ini.LoadSources(ini.LoadOptions{
		Loose:                   true,
		Insensitive:             true,
		AllowBooleanKeys:        true,
		SkipUnrecognizableLines: true,
	}, sources[0], sources[1:]...)
	if err != nil {
		return "", fmt.Errorf("read git config: %w", err)
	}

	name := cfg.Section("user").Key("name").String()
	if name == "" {
		return "", ErrNoAuthors
	}

	return name, nil
}
