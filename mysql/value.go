package mysql

import (
	"fmt"
	"math"
	"strconv"

	"github.com/meoying/dbclient/internal/errs"
	"github.com/meoying/dbclient/mysql/internal/packet"
	"github.com/meoying/dbclient/mysql/internal/packet/encoding"
)

// ValueKind Value 实际承载的数据种类
type ValueKind uint8

const (
	// KindNull SQL NULL
	KindNull ValueKind = iota
	// KindInt 有符号整数，TINYINT 到 BIGINT
	KindInt
	// KindUint 无符号整数
	KindUint
	// KindFloat FLOAT，保存在 Double 字段
	KindFloat
	// KindDouble DOUBLE
	KindDouble
	// KindBytes 字符串、BLOB、DECIMAL、文本协议的一切值
	KindBytes
	// KindTimestamp DATE/DATETIME/TIMESTAMP
	KindTimestamp
	// KindTime TIME，时长语义，可以为负也可以超过 24 小时
	KindTime
)

// Timestamp DATE/DATETIME/TIMESTAMP 的二进制表示
// 零值表示 0000-00-00 00:00:00
type Timestamp struct {
	Year  uint16
	Month uint8
	Day   uint8
	Hour  uint8
	Min   uint8
	Sec   uint8
	Micro uint32
}

func (t Timestamp) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d.%06d",
		t.Year, t.Month, t.Day, t.Hour, t.Min, t.Sec, t.Micro)
}

// Time TIME 列的二进制表示，是时长不是时刻
type Time struct {
	Negative bool
	Days     uint32
	Hours    uint8
	Minutes  uint8
	Seconds  uint8
	Micro    uint32
}

func (t Time) String() string {
	sign := ""
	if t.Negative {
		sign = "-"
	}
	return fmt.Sprintf("%s%d:%02d:%02d.%06d",
		sign, uint64(t.Days)*24+uint64(t.Hours), t.Minutes, t.Seconds, t.Micro)
}

// Value 一个解码出来的列值
// Bytes 指向网络缓冲区，只在 Handler.Row 回调内有效，
// 需要长期持有时调用 Clone
type Value struct {
	Kind      ValueKind
	Int       int64
	Uint      uint64
	Double    float64
	Bytes     []byte
	Timestamp Timestamp
	Time      Time
}

// IsNull 是否为 SQL NULL
func (v Value) IsNull() bool {
	return v.Kind == KindNull
}

// Clone 拷贝借用的字节，返回可以长期持有的副本
func (v Value) Clone() Value {
	if v.Kind == KindBytes && v.Bytes != nil {
		cp := make([]byte, len(v.Bytes))
		copy(cp, v.Bytes)
		v.Bytes = cp
	}
	return v
}

func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "NULL"
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindUint:
		return strconv.FormatUint(v.Uint, 10)
	case KindFloat, KindDouble:
		return strconv.FormatFloat(v.Double, 'g', -1, 64)
	case KindBytes:
		return string(v.Bytes)
	case KindTimestamp:
		return v.Timestamp.String()
	case KindTime:
		return v.Time.String()
	default:
		return fmt.Sprintf("Value(kind=%d)", v.Kind)
	}
}

// DecodeTextRow 解码文本协议的一行
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_com_query_response_text_resultset_row.html
func DecodeTextRow(payload []byte, cols []Column, dst []Value) ([]Value, error) {
	if dst == nil {
		dst = make([]Value, 0, len(cols))
	}
	dst = dst[:0]
	rest := payload
	for range cols {
		if len(rest) == 0 {
			return nil, fmt.Errorf("%w，文本行数据不足", errs.ErrUnexpectedEOF)
		}
		if rest[0] == 0xFB {
			dst = append(dst, Value{Kind: KindNull})
			rest = rest[1:]
			continue
		}
		var (
			data []byte
			err  error
		)
		data, rest, err = encoding.ReadLengthEncodedBytes(rest)
		if err != nil {
			return nil, err
		}
		dst = append(dst, Value{Kind: KindBytes, Bytes: data})
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w，文本行尾部多出 %d 字节", errs.ErrInvalidPacket, len(rest))
	}
	return dst, nil
}

// DecodeBinaryRow 解码二进制协议的一行
// 布局是 0x00 头 + NULL 位图 + 各个非 NULL 列的值，
// 位图长度 (len(cols)+7+2)/8，位偏移从 2 开始
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_binary_resultset.html
func DecodeBinaryRow(payload []byte, cols []Column, dst []Value) ([]Value, error) {
	if len(payload) == 0 || payload[0] != 0x00 {
		return nil, fmt.Errorf("%w，二进制行的头字节不是 0x00", errs.ErrInvalidPacket)
	}
	bitmapLen := (len(cols) + 7 + 2) / 8
	if len(payload) < 1+bitmapLen {
		return nil, fmt.Errorf("%w，NULL 位图不完整", errs.ErrUnexpectedEOF)
	}
	bitmap := payload[1 : 1+bitmapLen]
	rest := payload[1+bitmapLen:]

	if dst == nil {
		dst = make([]Value, 0, len(cols))
	}
	dst = dst[:0]
	for i := range cols {
		pos := i + 2
		if bitmap[pos/8]&(1<<(pos%8)) != 0 {
			dst = append(dst, Value{Kind: KindNull})
			continue
		}
		var (
			v   Value
			err error
		)
		v, rest, err = decodeBinaryValue(rest, &cols[i])
		if err != nil {
			return nil, err
		}
		dst = append(dst, v)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w，二进制行尾部多出 %d 字节", errs.ErrInvalidPacket, len(rest))
	}
	return dst, nil
}

func decodeBinaryValue(data []byte, col *Column) (Value, []byte, error) {
	switch col.Type {
	case packet.MySQLTypeTiny:
		return decodeBinaryInt(data, 1, col.Unsigned())
	case packet.MySQLTypeShort, packet.MySQLTypeYear:
		return decodeBinaryInt(data, 2, col.Unsigned())
	case packet.MySQLTypeInt24, packet.MySQLTypeLong:
		return decodeBinaryInt(data, 4, col.Unsigned())
	case packet.MySQLTypeLongLong:
		return decodeBinaryInt(data, 8, col.Unsigned())
	case packet.MySQLTypeFloat:
		raw, rest, err := encoding.ReadFixedLengthInteger(data, 4)
		if err != nil {
			return Value{}, nil, err
		}
		return Value{Kind: KindFloat, Double: float64(math.Float32frombits(uint32(raw)))}, rest, nil
	case packet.MySQLTypeDouble:
		raw, rest, err := encoding.ReadFixedLengthInteger(data, 8)
		if err != nil {
			return Value{}, nil, err
		}
		return Value{Kind: KindDouble, Double: math.Float64frombits(raw)}, rest, nil
	case packet.MySQLTypeDate, packet.MySQLTypeDatetime, packet.MySQLTypeTimestamp:
		return decodeBinaryTimestamp(data)
	case packet.MySQLTypeTime:
		return decodeBinaryTime(data)
	case packet.MySQLTypeDecimal, packet.MySQLTypeNewDecimal,
		packet.MySQLTypeVarchar, packet.MySQLTypeVarString, packet.MySQLTypeString,
		packet.MySQLTypeEnum, packet.MySQLTypeSet,
		packet.MySQLTypeTinyBlob, packet.MySQLTypeMediumBlob,
		packet.MySQLTypeLongBlob, packet.MySQLTypeBlob,
		packet.MySQLTypeBit, packet.MySQLTypeJSON, packet.MySQLTypeGeometry:
		raw, rest, err := encoding.ReadLengthEncodedBytes(data)
		if err != nil {
			return Value{}, nil, err
		}
		return Value{Kind: KindBytes, Bytes: raw}, rest, nil
	default:
		return Value{}, nil, errs.NewErrUnknownColumnType(byte(col.Type))
	}
}

func decodeBinaryInt(data []byte, byteSize int, unsigned bool) (Value, []byte, error) {
	raw, rest, err := encoding.ReadFixedLengthInteger(data, byteSize)
	if err != nil {
		return Value{}, nil, err
	}
	if unsigned {
		return Value{Kind: KindUint, Uint: raw}, rest, nil
	}
	// 按实际宽度做符号扩展
	shift := uint(64 - byteSize*8)
	return Value{Kind: KindInt, Int: int64(raw<<shift) >> shift}, rest, nil
}

// 合法长度 0/4/7/11，其余一律报错
func decodeBinaryTimestamp(data []byte) (Value, []byte, error) {
	if len(data) == 0 {
		return Value{}, nil, fmt.Errorf("%w，时间值数据不足", errs.ErrUnexpectedEOF)
	}
	length := data[0]
	rest := data[1:]
	if int(length) > len(rest) {
		return Value{}, nil, fmt.Errorf("%w，时间值数据不足", errs.ErrUnexpectedEOF)
	}
	v := Value{Kind: KindTimestamp}
	switch length {
	case 11:
		v.Timestamp.Micro = uint32(rest[7]) | uint32(rest[8])<<8 | uint32(rest[9])<<16 | uint32(rest[10])<<24
		fallthrough
	case 7:
		v.Timestamp.Hour = rest[4]
		v.Timestamp.Min = rest[5]
		v.Timestamp.Sec = rest[6]
		fallthrough
	case 4:
		v.Timestamp.Year = uint16(rest[0]) | uint16(rest[1])<<8
		v.Timestamp.Month = rest[2]
		v.Timestamp.Day = rest[3]
	case 0:
		// 全零
	default:
		return Value{}, nil, errs.NewErrInvalidTemporalLength("DATETIME", length)
	}
	return v, rest[length:], nil
}

// 合法长度 0/8/12
func decodeBinaryTime(data []byte) (Value, []byte, error) {
	if len(data) == 0 {
		return Value{}, nil, fmt.Errorf("%w，时间值数据不足", errs.ErrUnexpectedEOF)
	}
	length := data[0]
	rest := data[1:]
	if int(length) > len(rest) {
		return Value{}, nil, fmt.Errorf("%w，时间值数据不足", errs.ErrUnexpectedEOF)
	}
	v := Value{Kind: KindTime}
	switch length {
	case 12:
		v.Time.Micro = uint32(rest[8]) | uint32(rest[9])<<8 | uint32(rest[10])<<16 | uint32(rest[11])<<24
		fallthrough
	case 8:
		v.Time.Negative = rest[0] == 1
		v.Time.Days = uint32(rest[1]) | uint32(rest[2])<<8 | uint32(rest[3])<<16 | uint32(rest[4])<<24
		v.Time.Hours = rest[5]
		v.Time.Minutes = rest[6]
		v.Time.Seconds = rest[7]
	case 0:
		// 00:00:00
	default:
		return Value{}, nil, errs.NewErrInvalidTemporalLength("TIME", length)
	}
	return v, rest[length:], nil
}
