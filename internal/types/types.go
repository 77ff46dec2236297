package types

// Verbosity levels accepted on the command line. Higher is chattier.
const (
	Quiet       = 0
	Verbose     = 1 // -v
	VeryVerbose = 2 // -V
)

// DefaultRTSPPort is the IANA-assigned RTSP port, used both as the default
// listen port and as the fallback when a custom port cannot be bound.
const DefaultRTSPPort = 554

// ServerConf 包含 RTSP 服务器的监听配置
type ServerConf struct {
	RTSPPort   int `ini:"rtsp_port"`
	TunnelPort int `ini:"tunnel_port"`
}

// AuthConf 包含转发给上游源的访问凭证
// Username 和 Password 要么都存在，要么都不存在。
type AuthConf struct {
	Username string `ini:"username"`
	Password string `ini:"password"`
}

// LogConf 包含日志系统的配置
type LogConf struct {
	Level  string `ini:"level"`
	Format string `ini:"format"`
}

// Config 是整个应用程序的统一配置结构体。
// 解析完成后不再修改，由 bootstrap 链按值传递。
type Config struct {
	ServerConf `ini:"server"`
	AuthConf   `ini:"auth"`
	LogConf    `ini:"log"`

	// Verbosity 和 DefsPath 只能来自命令行，不映射 ini 文件
	Verbosity int    `ini:"-"`
	DefsPath  string `ini:"-"`
}

// NewConfig returns a Config carrying the documented defaults.
func NewConfig() *Config {
	cfg := new(Config)
	cfg.RTSPPort = DefaultRTSPPort
	return cfg
}
