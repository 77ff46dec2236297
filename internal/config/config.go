package config

import (
	"os"
	"strconv"

	"rtspproxy_go/internal/types"

	ini "gopkg.in/ini.v1"
)

// LoadIni 从指定的 fileName 加载默认配置到传入的 types.Config 结构体中。
// 命令行标志在之后处理，因此总是覆盖这里加载的值。
func LoadIni(cfg *types.Config, fileName string) error {
	iniFile, err := ini.Load(fileName)
	if err != nil {
		return err
	}

	// 使用 MapTo 自动将 .ini 文件的 section 映射到 cfg 结构体的嵌入字段
	if err := iniFile.MapTo(cfg); err != nil {
		return err
	}

	overrideFromEnvInt(&cfg.ServerConf.RTSPPort, "RTSPPROXY_PORT")
	overrideFromEnvInt(&cfg.ServerConf.TunnelPort, "RTSPPROXY_TUNNEL_PORT")

	return nil
}

// overrideFromEnvInt 是一个私有辅助函数
func overrideFromEnvInt(target *int, envName string) {
	envValue := os.Getenv(envName)
	if envValue != "" {
		if intValue, err := strconv.Atoi(envValue); err == nil {
			*target = intValue
		}
	}
}
