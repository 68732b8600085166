package mysql

import (
	"fmt"

	"github.com/meoying/dbclient/mysql/internal/packet/parser"
)

// ServerError 服务端通过 ERR 包返回的错误
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_basic_err_packet.html
type ServerError struct {
	Code     uint16
	SQLState string
	Message  string
}

func (e *ServerError) Error() string {
	if e.SQLState != "" {
		return fmt.Sprintf("mysql: 服务端错误 %d (%s): %s", e.Code, e.SQLState, e.Message)
	}
	return fmt.Sprintf("mysql: 服务端错误 %d: %s", e.Code, e.Message)
}

func newServerError(payload []byte) error {
	var pkt parser.ErrorPacket
	if err := pkt.Parse(payload); err != nil {
		return err
	}
	return &ServerError{
		Code:     pkt.Code,
		SQLState: pkt.SQLState,
		Message:  pkt.Message,
	}
}
