package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Load 在默认值之上解码 toml 文件，path 为空时直接返回默认值
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown key %q", ErrInvalidConfig, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Search(customPath string, lookupPaths []string) (string, error) {
	if customPath != "" {
		if _, err := os.Stat(customPath); err != nil {
			return "", fmt.Errorf("no such file: %s", customPath)
		}
		return customPath, nil
	}

	for _, p := range lookupPaths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	// 找不到配置文件时使用默认值
	return "", nil
}

func DefaultLookupPaths() []string {
	paths := []string{"bst.toml", "/etc/bst/bst.toml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, home+"/.config/bst/bst.toml")
	}
	return paths
}
