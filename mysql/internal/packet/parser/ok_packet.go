package parser

import (
	"fmt"

	"github.com/meoying/dbclient/internal/errs"
	"github.com/meoying/dbclient/mysql/internal/flags"
	"github.com/meoying/dbclient/mysql/internal/packet/encoding"
)

// OKPacket 解析 OK_Packet，也兼作 CLIENT_DEPRECATE_EOF 之后代替 EOF 的那种 OK
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_basic_ok_packet.html
type OKPacket struct {
	Header       byte
	AffectedRows uint64
	LastInsertID uint64
	StatusFlags  flags.SeverStatus
	Warnings     uint16
	Info         string
}

func (p *OKPacket) Parse(payload []byte) error {
	header, rest, err := encoding.ReadFixedLengthInteger(payload, 1)
	if err != nil {
		return err
	}
	p.Header = byte(header)
	if p.Header != 0x00 && p.Header != 0xFE {
		return fmt.Errorf("%w，OK 包的 header 非法 %#x", errs.ErrInvalidPacket, p.Header)
	}

	// int<lenenc>	affected_rows
	p.AffectedRows, rest, err = encoding.ReadLengthEncodedInteger(rest)
	if err != nil {
		return err
	}

	// int<lenenc>	last_insert_id
	p.LastInsertID, rest, err = encoding.ReadLengthEncodedInteger(rest)
	if err != nil {
		return err
	}

	// 我们必然协商了 CLIENT_PROTOCOL_41
	// int<2>	status_flags
	status, rest, err := encoding.ReadFixedLengthInteger(rest, 2)
	if err != nil {
		return err
	}
	p.StatusFlags = flags.SeverStatus(status)

	// int<2>	warnings
	warnings, rest, err := encoding.ReadFixedLengthInteger(rest, 2)
	if err != nil {
		return err
	}
	p.Warnings = uint16(warnings)

	// string<EOF>	info 没协商 CLIENT_SESSION_TRACK 时就是人可读信息
	p.Info = string(rest)
	return nil
}

// MoreResults 是否还有下一个结果集
func (p *OKPacket) MoreResults() bool {
	return p.StatusFlags.Has(flags.ServerMoreResultsExists)
}

// EOFPacket 解析 5.7.5 之前的 EOF_Packet，header 0xFE 且包体长度 < 9
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_basic_eof_packet.html
type EOFPacket struct {
	Warnings    uint16
	StatusFlags flags.SeverStatus
}

func (p *EOFPacket) Parse(payload []byte) error {
	if len(payload) == 0 || payload[0] != 0xFE || len(payload) >= 9 {
		return fmt.Errorf("%w，不是 EOF 包", errs.ErrInvalidPacket)
	}
	warnings, rest, err := encoding.ReadFixedLengthInteger(payload[1:], 2)
	if err != nil {
		return err
	}
	p.Warnings = uint16(warnings)
	status, _, err := encoding.ReadFixedLengthInteger(rest, 2)
	if err != nil {
		return err
	}
	p.StatusFlags = flags.SeverStatus(status)
	return nil
}

// IsEOFShaped 判断一个 payload 是不是 EOF 形状的包
// 0xFE 开头且长度 < 9，否则有可能是以 0xFE 开头的 lenenc 整数
func IsEOFShaped(payload []byte) bool {
	return len(payload) > 0 && payload[0] == 0xFE && len(payload) < 9
}
