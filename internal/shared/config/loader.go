package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const defaultConfigRelPath = "configs/conf.yml"

// Load 把 yml 配置读入 target，并监听文件变更热加载。
//
// 约定：
// 1) 传入 cfgName（相对/绝对路径）则优先使用；
// 2) 否则从当前目录开始向上查找 `configs/conf.yml`。
func Load(cfgName string, target any) {
	curDir, err := os.Getwd()
	if err != nil {
		panic(err)
	}

	if cfgName != "" {
		if filepath.IsAbs(cfgName) {
			load(cfgName, target)
			return
		}
		load(filepath.Join(curDir, cfgName), target)
		return
	}

	load(findConfigUpward(curDir), target)
}

func load(configPath string, target any) {
	if !fileExist(configPath) {
		panic(fmt.Sprintf("config file not exist, configPath=%v", configPath))
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.OnConfigChange(func(e fsnotify.Event) {
		log.Println("配置文件变更，重新加载")
		if err := v.Unmarshal(target, decodeDurations); err != nil {
			panic(fmt.Errorf("viper unmarshal changed config: %w", err))
		}
	})
	v.WatchConfig()
	if err := v.ReadInConfig(); err != nil {
		panic(err)
	}
	if err := v.Unmarshal(target, decodeDurations); err != nil {
		panic(err)
	}
}

// decodeDurations 允许配置里用 "30s"/"5m" 这类人类可读时长。
func decodeDurations(dc *mapstructure.DecoderConfig) {
	dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		dc.DecodeHook,
	)
}

func findConfigUpward(startDir string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, defaultConfigRelPath)
		if fileExist(candidate) {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			panic("config file not exist, searched configs/conf.yml from: " + startDir)
		}
		dir = parent
	}
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
