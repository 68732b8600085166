package parser

import (
	"fmt"

	"github.com/meoying/dbclient/internal/errs"
	"github.com/meoying/dbclient/mysql/internal/packet/encoding"
)

// AuthSwitchRequest 服务端要求改用另一个鉴权插件重新计算响应
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_connection_phase_packets_protocol_auth_switch_request.html
type AuthSwitchRequest struct {
	// PluginName 新插件名
	PluginName string
	// PluginData 新插件的 scramble，去掉了结尾的 0x00
	PluginData []byte
}

func (p *AuthSwitchRequest) Parse(payload []byte) error {
	if len(payload) == 0 || payload[0] != 0xFE {
		return fmt.Errorf("%w，不是 auth switch 包", errs.ErrInvalidPacket)
	}
	name, rest, err := encoding.ReadNullTerminatedString(payload[1:])
	if err != nil {
		return err
	}
	p.PluginName = name
	// string<EOF> plugin provided data，结尾可能带一个 0x00
	if n := len(rest); n > 0 && rest[n-1] == 0x00 {
		rest = rest[:n-1]
	}
	p.PluginData = append([]byte{}, rest...)
	return nil
}

// AuthMoreData caching_sha2_password 的中间结果包，0x01 开头
type AuthMoreData struct {
	Data []byte
}

func (p *AuthMoreData) Parse(payload []byte) error {
	if len(payload) == 0 || payload[0] != 0x01 {
		return fmt.Errorf("%w，不是 auth more data 包", errs.ErrInvalidPacket)
	}
	p.Data = append([]byte{}, payload[1:]...)
	return nil
}
