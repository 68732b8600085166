package parser

import (
	"fmt"

	"github.com/meoying/dbclient/internal/errs"
	"github.com/meoying/dbclient/mysql/internal/packet/encoding"
)

// ErrorPacket 解析 ERR_Packet
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_basic_err_packet.html
type ErrorPacket struct {
	// Code 错误码
	Code uint16
	// SQLState 固定五个字符
	SQLState string
	// Message 人可读的错误信息
	Message string
}

func (p *ErrorPacket) Parse(payload []byte) error {
	if len(payload) == 0 || payload[0] != 0xFF {
		return fmt.Errorf("%w，不是 ERR 包", errs.ErrInvalidPacket)
	}
	code, rest, err := encoding.ReadFixedLengthInteger(payload[1:], 2)
	if err != nil {
		return err
	}
	p.Code = uint16(code)

	// string[1] sql_state_marker	固定的 # 作为分隔符
	// 主流服务端都带，但协议上允许不带
	if len(rest) > 0 && rest[0] == '#' {
		var state []byte
		state, rest, err = encoding.ReadFixedLengthBytes(rest[1:], 5)
		if err != nil {
			return err
		}
		p.SQLState = string(state)
	}

	// string<EOF>	error_message
	p.Message = string(rest)
	return nil
}
