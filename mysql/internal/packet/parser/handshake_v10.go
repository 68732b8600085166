package parser

import (
	"fmt"

	"github.com/meoying/dbclient/internal/errs"
	"github.com/meoying/dbclient/mysql/internal/flags"
	"github.com/meoying/dbclient/mysql/internal/packet"
	"github.com/meoying/dbclient/mysql/internal/packet/encoding"
)

// HandshakeV10 解析服务端在 TCP 连接建立之后主动发来的初始握手包
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_connection_phase_packets_protocol_handshake_v10.html
type HandshakeV10 struct {
	ProtocolVersion byte
	ServerVersion   string
	ConnectionID    uint32
	// AuthPluginData 完整的 scramble，8 字节的 part1 拼上 part2（去掉结尾的 0x00）
	AuthPluginData  []byte
	CapabilityFlags flags.CapabilityFlags
	CharacterSet    byte
	StatusFlags     flags.SeverStatus
	AuthPluginName  string
}

func (p *HandshakeV10) Parse(payload []byte) error {
	version, rest, err := encoding.ReadFixedLengthInteger(payload, 1)
	if err != nil {
		return err
	}
	p.ProtocolVersion = byte(version)
	if p.ProtocolVersion < packet.MinProtocolVersion {
		return fmt.Errorf("%w，协议版本过低 %d", errs.ErrInvalidPacket, p.ProtocolVersion)
	}

	// string<NUL>	server version
	p.ServerVersion, rest, err = encoding.ReadNullTerminatedString(rest)
	if err != nil {
		return err
	}

	// int<4>	thread id
	connID, rest, err := encoding.ReadFixedLengthInteger(rest, 4)
	if err != nil {
		return err
	}
	p.ConnectionID = uint32(connID)

	// string[8]	auth-plugin-data-part-1
	part1, rest, err := encoding.ReadFixedLengthBytes(rest, 8)
	if err != nil {
		return err
	}
	p.AuthPluginData = append([]byte{}, part1...)

	// int<1>	filler
	if _, rest, err = encoding.ReadFixedLengthInteger(rest, 1); err != nil {
		return err
	}

	// int<2>	capability_flags_1 低两个字节
	capLow, rest, err := encoding.ReadFixedLengthInteger(rest, 2)
	if err != nil {
		return err
	}
	p.CapabilityFlags = flags.CapabilityFlags(capLow)

	// 老掉牙的服务端到这里就结束了，现实里遇不到，但按协议文档处理
	if len(rest) == 0 {
		return nil
	}

	// int<1>	character_set
	charset, rest, err := encoding.ReadFixedLengthInteger(rest, 1)
	if err != nil {
		return err
	}
	p.CharacterSet = byte(charset)

	// int<2>	status_flags
	status, rest, err := encoding.ReadFixedLengthInteger(rest, 2)
	if err != nil {
		return err
	}
	p.StatusFlags = flags.SeverStatus(status)

	// int<2>	capability_flags_2 高两个字节
	capHigh, rest, err := encoding.ReadFixedLengthInteger(rest, 2)
	if err != nil {
		return err
	}
	p.CapabilityFlags |= flags.CapabilityFlags(capHigh << 16)

	// int<1>	auth_plugin_data_len
	authDataLen, rest, err := encoding.ReadFixedLengthInteger(rest, 1)
	if err != nil {
		return err
	}

	// string[10]	reserved
	if _, rest, err = encoding.ReadFixedLengthBytes(rest, 10); err != nil {
		return err
	}

	// auth-plugin-data-part-2，长度是 max(13, auth_plugin_data_len - 8)
	// 结尾带一个 0x00，不属于 scramble 本体
	part2Len := int(authDataLen) - 8
	if part2Len < 13 {
		part2Len = 13
	}
	part2, rest, err := encoding.ReadFixedLengthBytes(rest, part2Len)
	if err != nil {
		return err
	}
	if part2[len(part2)-1] == 0x00 {
		part2 = part2[:len(part2)-1]
	}
	p.AuthPluginData = append(p.AuthPluginData, part2...)

	if p.CapabilityFlags.Has(flags.ClientPluginAuth) {
		// string<NUL>	auth_plugin_name
		// 某些版本的服务端漏掉了结尾的 0x00，容忍一下
		name, _, err1 := encoding.ReadNullTerminatedString(rest)
		if err1 != nil {
			name = string(rest)
		}
		p.AuthPluginName = name
	}
	return nil
}
