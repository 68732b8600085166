package parser

import (
	"fmt"

	"github.com/meoying/dbclient/internal/errs"
	"github.com/meoying/dbclient/mysql/internal/packet/encoding"
)

// StmtPrepareOK 解析 COM_STMT_PREPARE 的首个响应包
// 后面还会跟 num_params + num_columns 个字段描述包，由调用方继续读取
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_com_stmt_prepare.html#sect_protocol_com_stmt_prepare_response_ok
type StmtPrepareOK struct {
	StatementID  uint32
	NumColumns   uint16
	NumParams    uint16
	WarningCount uint16
}

func (p *StmtPrepareOK) Parse(payload []byte) error {
	status, rest, err := encoding.ReadFixedLengthInteger(payload, 1)
	if err != nil {
		return err
	}
	if status != 0x00 {
		return fmt.Errorf("%w，COM_STMT_PREPARE 响应 status 非法 %#x", errs.ErrInvalidPacket, status)
	}

	// int<4>	statement_id
	stmtID, rest, err := encoding.ReadFixedLengthInteger(rest, 4)
	if err != nil {
		return err
	}
	p.StatementID = uint32(stmtID)

	// int<2>	num_columns
	numColumns, rest, err := encoding.ReadFixedLengthInteger(rest, 2)
	if err != nil {
		return err
	}
	p.NumColumns = uint16(numColumns)

	// int<2>	num_params
	numParams, rest, err := encoding.ReadFixedLengthInteger(rest, 2)
	if err != nil {
		return err
	}
	p.NumParams = uint16(numParams)

	// int<1>	reserved_1
	if _, rest, err = encoding.ReadFixedLengthInteger(rest, 1); err != nil {
		return err
	}

	// int<2>	warning_count 个别老版本不带，容忍缺失
	if len(rest) >= 2 {
		warnings, _, err1 := encoding.ReadFixedLengthInteger(rest, 2)
		if err1 != nil {
			return err1
		}
		p.WarningCount = uint16(warnings)
	}
	return nil
}
