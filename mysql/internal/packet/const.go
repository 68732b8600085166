package packet

// 字符编码类型
const (
	CharSetUtf8mb4GeneralCi uint16 = 45
	CharSetBinary           uint16 = 63
)

const (
	// MaxPacketSize 单一报文最大长度
	MaxPacketSize      = 1<<24 - 1
	MinProtocolVersion = 10
)

// 响应报文的第一个字节，用来区分报文类型
const (
	HeaderOK          byte = 0x00
	HeaderAuthMore    byte = 0x01
	HeaderLocalInfile byte = 0xFB
	HeaderEOF         byte = 0xFE
	HeaderErr         byte = 0xFF
)

// caching_sha2_password 快速鉴权子协议的结果字节
const (
	CachingSha2FastAuthSuccess byte = 0x03
	CachingSha2PerformFullAuth byte = 0x04
)

const (
	AuthNativePassword      = "mysql_native_password"
	AuthCachingSha2Password = "caching_sha2_password"
)
