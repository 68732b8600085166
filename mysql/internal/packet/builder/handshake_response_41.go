package builder

import (
	"github.com/meoying/dbclient/mysql/internal/flags"
	"github.com/meoying/dbclient/mysql/internal/packet/encoding"
)

// HandshakeResponse41 客户端对初始握手包的响应
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_connection_phase_packets_protocol_handshake_response.html#sect_protocol_connection_phase_packets_protocol_handshake_response41
type HandshakeResponse41 struct {
	// ClientFlags 协商后的能力集
	ClientFlags flags.CapabilityFlags
	// MaxPacketSize 客户端允许的最大逻辑报文
	MaxPacketSize uint32
	CharacterSet  byte
	Username      string
	// AuthResponse 鉴权插件算出来的 scramble 响应
	AuthResponse []byte
	// Database 协商了 CONNECT_WITH_DB 才写入
	Database string
	// AuthPluginName 协商了 PLUGIN_AUTH 才写入
	AuthPluginName string
}

func (b *HandshakeResponse41) Build() []byte {
	// 头部的四个字节保留，不需要填充
	p := make([]byte, 4, 64)

	// int<4>	client_flag
	p = append(p, encoding.FixedLengthInteger(uint64(b.ClientFlags), 4)...)

	// int<4>	max_packet_size
	p = append(p, encoding.FixedLengthInteger(uint64(b.MaxPacketSize), 4)...)

	// int<1>	character_set
	p = append(p, b.CharacterSet)

	// string[23]	filler	全 0
	p = append(p, make([]byte, 23)...)

	// string<NUL>	username
	p = append(p, encoding.NullTerminatedString(b.Username)...)

	if b.ClientFlags.Has(flags.ClientPluginAuthLenencClientData) {
		// string<lenenc>	auth_response
		p = append(p, encoding.LengthEncodeBytes(b.AuthResponse)...)
	} else {
		// int<1> 长度 + 内容
		p = append(p, byte(len(b.AuthResponse)))
		p = append(p, b.AuthResponse...)
	}

	if b.ClientFlags.Has(flags.ClientConnectWithDB) {
		// string<NUL>	database
		p = append(p, encoding.NullTerminatedString(b.Database)...)
	}

	if b.ClientFlags.Has(flags.ClientPluginAuth) {
		// string<NUL>	client_plugin_name
		p = append(p, encoding.NullTerminatedString(b.AuthPluginName)...)
	}
	return p
}

// SSLRequest 开启 TLS 时先于 HandshakeResponse41 发送的短包
// 与响应包共享前 32 个字节的布局
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_connection_phase_packets_protocol_ssl_request.html
type SSLRequest struct {
	ClientFlags   flags.CapabilityFlags
	MaxPacketSize uint32
	CharacterSet  byte
}

func (b *SSLRequest) Build() []byte {
	p := make([]byte, 4, 36)
	p = append(p, encoding.FixedLengthInteger(uint64(b.ClientFlags), 4)...)
	p = append(p, encoding.FixedLengthInteger(uint64(b.MaxPacketSize), 4)...)
	p = append(p, b.CharacterSet)
	p = append(p, make([]byte, 23)...)
	return p
}

// AuthSwitchResponse 对 auth switch 请求的响应，payload 就是裸的 scramble 结果
type AuthSwitchResponse struct {
	AuthResponse []byte
}

func (b *AuthSwitchResponse) Build() []byte {
	p := make([]byte, 4, 4+len(b.AuthResponse))
	return append(p, b.AuthResponse...)
}
