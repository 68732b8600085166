package encoding

import (
	"encoding/binary"

	"github.com/meoying/dbclient/internal/errs"
)

// 读取方向的原语。所有函数都遵循同一个契约：
// 传入待解析的字节切片，返回解析出来的值和剩余切片。
// 剩余字节不足返回 errs.ErrUnexpectedEOF，
// 格式非法返回 errs.ErrInvalidPacket。

// ReadFixedLengthInteger 读取指定字节数的小端整数
// byteSize 的合法取值 1,2,3,4,6,8
func ReadFixedLengthInteger(b []byte, byteSize int) (uint64, []byte, error) {
	if len(b) < byteSize {
		return 0, nil, errs.ErrUnexpectedEOF
	}
	var value uint64
	for i := 0; i < byteSize; i++ {
		value |= uint64(b[i]) << (8 * i)
	}
	return value, b[byteSize:], nil
}

// ReadLengthEncodedInteger 读取 int<lenenc> 编码的整数
// 0xFB 与 0xFF 在整数语境下是保留值（NULL/错误标记），视为非法报文
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_basic_dt_integers.html#sect_protocol_basic_dt_int_le
func ReadLengthEncodedInteger(b []byte) (uint64, []byte, error) {
	if len(b) == 0 {
		return 0, nil, errs.ErrUnexpectedEOF
	}
	switch first := b[0]; first {
	case 0xFB, 0xFF:
		return 0, nil, errs.ErrInvalidPacket
	case 0xFC:
		if len(b) < 3 {
			return 0, nil, errs.ErrUnexpectedEOF
		}
		return uint64(binary.LittleEndian.Uint16(b[1:3])), b[3:], nil
	case 0xFD:
		if len(b) < 4 {
			return 0, nil, errs.ErrUnexpectedEOF
		}
		return uint64(b[1]) | uint64(b[2])<<8 | uint64(b[3])<<16, b[4:], nil
	case 0xFE:
		if len(b) < 9 {
			return 0, nil, errs.ErrUnexpectedEOF
		}
		return binary.LittleEndian.Uint64(b[1:9]), b[9:], nil
	default:
		// 0-250: 第一个字节就是数字
		return uint64(first), b[1:], nil
	}
}

// ReadLengthEncodedBytes 读取 string<lenenc> 编码的内容
// 返回的切片引用入参，调用方负责在需要的时候拷贝
func ReadLengthEncodedBytes(b []byte) ([]byte, []byte, error) {
	length, rest, err := ReadLengthEncodedInteger(b)
	if err != nil {
		return nil, nil, err
	}
	if uint64(len(rest)) < length {
		return nil, nil, errs.ErrUnexpectedEOF
	}
	return rest[:length:length], rest[length:], nil
}

// ReadLengthEncodedString 同 ReadLengthEncodedBytes，返回拷贝出来的字符串
func ReadLengthEncodedString(b []byte) (string, []byte, error) {
	data, rest, err := ReadLengthEncodedBytes(b)
	if err != nil {
		return "", nil, err
	}
	return string(data), rest, nil
}

// ReadNullTerminatedString 读取 string<NUL>
func ReadNullTerminatedString(b []byte) (string, []byte, error) {
	for i, c := range b {
		if c == 0x00 {
			return string(b[:i]), b[i+1:], nil
		}
	}
	return "", nil, errs.ErrUnexpectedEOF
}

// ReadFixedLengthBytes 读取 string[n]
func ReadFixedLengthBytes(b []byte, n int) ([]byte, []byte, error) {
	if len(b) < n {
		return nil, nil, errs.ErrUnexpectedEOF
	}
	return b[:n:n], b[n:], nil
}
