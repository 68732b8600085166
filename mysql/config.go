package mysql

import (
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/meoying/dbclient/internal/errs"
)

const (
	defaultHost = "127.0.0.1"
	defaultPort = 3306
)

// Config 一个连接（或连接池）的全部配置
// 除了用程序方式构造，也可以用 ParseURL 从连接 URL 解析出来
type Config struct {
	User     string
	Password string
	Host     string
	Port     uint16
	Database string

	// Socket 非空时走 Unix Socket，忽略 Host/Port
	Socket string
	// TLS 在握手阶段升级到 TLS，对应 URL 的 tls/ssl 参数
	TLS bool
	// Compress 压缩协议，解析但不支持，Connect 会直接报错
	Compress bool
	// TCPNoDelay 对 TCP 连接设置 TCP_NODELAY
	TCPNoDelay bool
	// UpgradeToUnixSocket 握手后如果服务端汇报了 socket 路径则改走 Unix Socket
	UpgradeToUnixSocket bool
	// InitCommand 握手完成之后立刻执行的 SQL
	InitCommand string

	// 连接池相关
	PoolResetConn      bool
	PoolMaxIdleConn    int
	PoolMaxConcurrency int
}

func NewConfig() *Config {
	return &Config{
		Host:               defaultHost,
		Port:               defaultPort,
		TCPNoDelay:         true,
		PoolResetConn:      true,
		PoolMaxIdleConn:    10,
		PoolMaxConcurrency: 100,
	}
}

// Addr 返回拨号用的网络类型和地址
func (c *Config) Addr() (network, addr string) {
	if c.Socket != "" {
		return "unix", c.Socket
	}
	return "tcp", net.JoinHostPort(c.Host, strconv.Itoa(int(c.Port)))
}

// ParseURL 解析 mysql://[user[:password]@]host[:port][/database][?k=v&...]
// 未知参数和非法的 bool/整数值都是错误，不会被静默忽略
func ParseURL(raw string) (*Config, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrBadURL, err)
	}
	if u.Scheme != "mysql" {
		return nil, fmt.Errorf("%w，scheme 必须是 mysql，得到 %q", errs.ErrBadURL, u.Scheme)
	}

	cfg := NewConfig()
	if u.User != nil {
		cfg.User = u.User.Username()
		if password, ok := u.User.Password(); ok {
			cfg.Password = password
		}
	}
	if host := u.Hostname(); host != "" {
		cfg.Host = host
	}
	if portStr := u.Port(); portStr != "" {
		port, err1 := strconv.ParseUint(portStr, 10, 16)
		if err1 != nil {
			return nil, errs.NewErrBadURLValue("port", portStr)
		}
		cfg.Port = uint16(port)
	}
	if len(u.Path) > 1 {
		cfg.Database = u.Path[1:]
	}

	for key, values := range u.Query() {
		// 同名参数出现多次取最后一个，和 MySQL 客户端行为一致
		value := values[len(values)-1]
		switch key {
		case "socket":
			cfg.Socket = value
		case "tls", "ssl":
			if cfg.TLS, err = parseBool(key, value); err != nil {
				return nil, err
			}
		case "compress":
			if cfg.Compress, err = parseBool(key, value); err != nil {
				return nil, err
			}
		case "tcp_nodelay":
			if cfg.TCPNoDelay, err = parseBool(key, value); err != nil {
				return nil, err
			}
		case "upgrade_to_unix_socket":
			if cfg.UpgradeToUnixSocket, err = parseBool(key, value); err != nil {
				return nil, err
			}
		case "init_command":
			cfg.InitCommand = value
		case "pool_reset_conn":
			if cfg.PoolResetConn, err = parseBool(key, value); err != nil {
				return nil, err
			}
		case "pool_max_idle_conn":
			if cfg.PoolMaxIdleConn, err = parseUint(key, value); err != nil {
				return nil, err
			}
		case "pool_max_concurrency":
			if cfg.PoolMaxConcurrency, err = parseUint(key, value); err != nil {
				return nil, err
			}
		default:
			return nil, errs.NewErrBadURLKey(key)
		}
	}
	return cfg, nil
}

func parseBool(key, value string) (bool, error) {
	switch value {
	case "1", "true", "TRUE", "True":
		return true, nil
	case "0", "false", "FALSE", "False":
		return false, nil
	default:
		return false, errs.NewErrBadURLValue(key, value)
	}
}

func parseUint(key, value string) (int, error) {
	n, err := strconv.ParseUint(value, 10, 31)
	if err != nil {
		return 0, errs.NewErrBadURLValue(key, value)
	}
	return int(n), nil
}
