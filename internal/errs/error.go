package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrInvalidConn = errors.New("异常连接")
	ErrPktSync     = errors.New("报文乱序")
	ErrPktTooLarge = errors.New("报文过大")

	// ErrUnexpectedEOF 报文剩余字节不足以解析出目标字段
	ErrUnexpectedEOF = errors.New("报文不完整")
	// ErrInvalidPacket 报文格式非法，比如 lenenc 整数首字节是 0xFB 或者 0xFF
	ErrInvalidPacket = errors.New("非法报文")

	ErrUnsupportedAuthPlugin = errors.New("不支持的鉴权插件")
	// ErrFullAuthUnsupported caching_sha2_password 在缓存未命中时要求
	// RSA/TLS 完整鉴权，我们没有实现这条链路
	ErrFullAuthUnsupported = errors.New("不支持 caching_sha2_password 的完整鉴权流程")

	ErrBadURL = errors.New("非法的连接 URL")

	// ErrCompressUnsupported 压缩协议只解析配置，不支持协商
	ErrCompressUnsupported = errors.New("不支持压缩协议")
	// ErrLocalInfileUnsupported 服务端发来 LOCAL INFILE 请求时直接拒绝
	ErrLocalInfileUnsupported = errors.New("不支持 LOCAL INFILE")
)

func NewErrUnsupportedAuthPlugin(plugin string) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedAuthPlugin, plugin)
}

func NewErrUnknownColumnType(typ byte) error {
	return fmt.Errorf("%w，未知的字段类型 %d", ErrInvalidPacket, typ)
}

func NewErrInvalidTemporalLength(kind string, length byte) error {
	return fmt.Errorf("%w，非法的 %s 长度 %d", ErrInvalidPacket, kind, length)
}

func NewErrBadURLKey(key string) error {
	return fmt.Errorf("%w，未知的参数 %s", ErrBadURL, key)
}

func NewErrBadURLValue(key, value string) error {
	return fmt.Errorf("%w，参数 %s 的值非法 %q", ErrBadURL, key, value)
}
