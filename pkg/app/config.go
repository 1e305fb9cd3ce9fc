package app

import (
	"fmt"
	"log"

	"github.com/decker502/heartworks/pkg/config"
	"github.com/decker502/heartworks/pkg/embedded"
)

// LoadConfig 加载烟花配置
//
// 查找顺序：
//  1. path 非空时读取该文件，失败即返回错误
//  2. 嵌入资源中的 data/fireworks.yaml
//  3. 内置默认配置
func LoadConfig(path string) (config.FireworksConfig, error) {
	if path != "" {
		cfg, err := config.LoadFireworksConfig(path)
		if err != nil {
			return config.FireworksConfig{}, err
		}
		log.Printf("[Config] Loaded fireworks config from %s", path)
		return *cfg, nil
	}

	if embedded.Exists(config.DefaultConfigPath) {
		data, err := embedded.ReadFile(config.DefaultConfigPath)
		if err != nil {
			return config.FireworksConfig{}, fmt.Errorf("read embedded config: %w", err)
		}
		cfg, err := config.ParseFireworksConfig(data)
		if err != nil {
			return config.FireworksConfig{}, err
		}
		log.Printf("[Config] Loaded embedded %s", config.DefaultConfigPath)
		return *cfg, nil
	}

	log.Printf("[Config] No config found, using defaults")
	return config.DefaultFireworksConfig(), nil
}
