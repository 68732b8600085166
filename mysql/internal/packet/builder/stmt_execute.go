package builder

import (
	"fmt"
	"math"
	"time"

	"github.com/meoying/dbclient/mysql/internal/packet"
	"github.com/meoying/dbclient/mysql/internal/packet/encoding"
)

// StmtExecute 构建 COM_STMT_EXECUTE 请求
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_com_stmt_execute.html
type StmtExecute struct {
	StatementID uint32
	// Flags 游标类型，我们不用游标，固定 CURSOR_TYPE_NO_CURSOR
	Flags packet.CursorType
	// Args 的个数必须等于 prepare 时服务端返回的参数个数
	Args []any

	// NewParamsBound 参数类型是否需要随包发送，首次执行必须为 true
	NewParamsBound bool
}

func (b *StmtExecute) Build() ([]byte, error) {
	p := make([]byte, 4, 32)

	// int<1>	status	COM_STMT_EXECUTE
	p = append(p, packet.CmdStmtExecute.Byte())

	// int<4>	statement_id
	p = append(p, encoding.FixedLengthInteger(uint64(b.StatementID), 4)...)

	// int<1>	flags
	p = append(p, byte(b.Flags))

	// int<4>	iteration_count	固定是 1
	p = append(p, encoding.FixedLengthInteger(1, 4)...)

	if len(b.Args) == 0 {
		return p, nil
	}

	// binary<var>	null_bitmap	长度 (parameter_count + 7) / 8
	nullBitmap := make([]byte, (len(b.Args)+7)/8)
	for i, arg := range b.Args {
		if arg == nil {
			nullBitmap[i/8] |= 1 << (uint(i) % 8)
		}
	}
	p = append(p, nullBitmap...)

	// int<1>	new_params_bind_flag
	if !b.NewParamsBound {
		return append(p, 0x00), nil
	}
	p = append(p, 0x01)

	// 先写全部参数的类型，每个参数两个字节：类型 + 符号标记
	types := make([]byte, 0, len(b.Args)*2)
	values := make([]byte, 0, len(b.Args)*8)
	for i, arg := range b.Args {
		typ, unsigned, val, err := encodeBinaryParam(arg)
		if err != nil {
			return nil, fmt.Errorf("编码参数[%d]失败: %w", i, err)
		}
		var signFlag byte
		if unsigned {
			signFlag = 0x80
		}
		types = append(types, byte(typ), signFlag)
		values = append(values, val...)
	}
	p = append(p, types...)
	return append(p, values...), nil
}

// encodeBinaryParam 把一个 Go 值转成二进制协议的参数表示
// 返回 MySQL 类型、是否无符号以及编码后的值字节
func encodeBinaryParam(arg any) (packet.MySQLType, bool, []byte, error) {
	switch v := arg.(type) {
	case nil:
		// NULL 的值不占字节，类型照常发送
		return packet.MySQLTypeNULL, false, nil, nil
	case bool:
		b := byte(0)
		if v {
			b = 1
		}
		return packet.MySQLTypeTiny, false, []byte{b}, nil
	case int:
		return packet.MySQLTypeLongLong, false, encoding.FixedLengthInteger(uint64(int64(v)), 8), nil
	case int8:
		return packet.MySQLTypeLongLong, false, encoding.FixedLengthInteger(uint64(int64(v)), 8), nil
	case int16:
		return packet.MySQLTypeLongLong, false, encoding.FixedLengthInteger(uint64(int64(v)), 8), nil
	case int32:
		return packet.MySQLTypeLongLong, false, encoding.FixedLengthInteger(uint64(int64(v)), 8), nil
	case int64:
		return packet.MySQLTypeLongLong, false, encoding.FixedLengthInteger(uint64(v), 8), nil
	case uint:
		return packet.MySQLTypeLongLong, true, encoding.FixedLengthInteger(uint64(v), 8), nil
	case uint64:
		return packet.MySQLTypeLongLong, true, encoding.FixedLengthInteger(v, 8), nil
	case float32:
		return packet.MySQLTypeFloat, false, encoding.FixedLengthInteger(uint64(math.Float32bits(v)), 4), nil
	case float64:
		return packet.MySQLTypeDouble, false, encoding.FixedLengthInteger(math.Float64bits(v), 8), nil
	case string:
		return packet.MySQLTypeString, false, encoding.LengthEncodeString(v), nil
	case []byte:
		if v == nil {
			return packet.MySQLTypeNULL, false, nil, nil
		}
		return packet.MySQLTypeBlob, false, encoding.LengthEncodeBytes(v), nil
	case time.Time:
		return packet.MySQLTypeDatetime, false, encodeBinaryDatetime(v), nil
	case time.Duration:
		return packet.MySQLTypeTime, false, encodeBinaryTime(v), nil
	default:
		return 0, false, nil, fmt.Errorf("不支持的参数类型 %T", arg)
	}
}

// encodeBinaryDatetime 固定使用 11 字节变体
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_binary_resultset.html#sect_protocol_binary_resultset_row_value_date
func encodeBinaryDatetime(t time.Time) []byte {
	year, month, day := t.Date()
	hour, minute, second := t.Clock()
	micro := t.Nanosecond() / int(time.Microsecond)

	p := make([]byte, 0, 12)
	p = append(p, 11)
	p = append(p, encoding.FixedLengthInteger(uint64(year), 2)...)
	p = append(p, byte(month), byte(day), byte(hour), byte(minute), byte(second))
	return append(p, encoding.FixedLengthInteger(uint64(micro), 4)...)
}

// encodeBinaryTime 固定使用 12 字节变体
func encodeBinaryTime(d time.Duration) []byte {
	var negative byte
	if d < 0 {
		negative = 1
		d = -d
	}
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d / time.Second
	d -= seconds * time.Second
	micro := d / time.Microsecond

	p := make([]byte, 0, 13)
	p = append(p, 12, negative)
	p = append(p, encoding.FixedLengthInteger(uint64(days), 4)...)
	p = append(p, byte(hours), byte(minutes), byte(seconds))
	return append(p, encoding.FixedLengthInteger(uint64(micro), 4)...)
}
