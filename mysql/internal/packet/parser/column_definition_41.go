package parser

import (
	"fmt"

	"github.com/meoying/dbclient/internal/errs"
	"github.com/meoying/dbclient/mysql/internal/packet"
	"github.com/meoying/dbclient/mysql/internal/packet/encoding"
)

// ColumnDefinition41 解析字段描述包
// 六个 lenenc 字符串之后是固定 12 字节的尾部
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_com_query_response_text_resultset_column_definition.html
type ColumnDefinition41 struct {
	Catalog  string
	Schema   string
	Table    string
	OrgTable string
	Name     string
	OrgName  string

	// 以下为固定尾部字段
	CharacterSet uint16
	ColumnLength uint32
	Type         packet.MySQLType
	Flags        packet.ColumnFlag
	Decimals     byte
}

func (p *ColumnDefinition41) Parse(payload []byte) error {
	var err error
	rest := payload
	// 字符串字段统一拷贝出来，字段描述的生命周期经常比读缓冲区长，
	// 比如预处理语句缓存的元数据
	for _, dst := range []*string{&p.Catalog, &p.Schema, &p.Table, &p.OrgTable, &p.Name, &p.OrgName} {
		*dst, rest, err = encoding.ReadLengthEncodedString(rest)
		if err != nil {
			return err
		}
	}

	// int<lenenc>	length of fixed length fields	固定是 0x0c
	fixedLen, rest, err := encoding.ReadLengthEncodedInteger(rest)
	if err != nil {
		return err
	}
	if fixedLen != 0x0C {
		return fmt.Errorf("%w，字段描述包固定长度非法 %d", errs.ErrInvalidPacket, fixedLen)
	}

	// int<2>	character_set
	charset, rest, err := encoding.ReadFixedLengthInteger(rest, 2)
	if err != nil {
		return err
	}
	p.CharacterSet = uint16(charset)

	// int<4>	column_length
	length, rest, err := encoding.ReadFixedLengthInteger(rest, 4)
	if err != nil {
		return err
	}
	p.ColumnLength = uint32(length)

	// int<1>	type
	typ, rest, err := encoding.ReadFixedLengthInteger(rest, 1)
	if err != nil {
		return err
	}
	p.Type = packet.MySQLType(typ)

	// int<2>	flags
	colFlags, rest, err := encoding.ReadFixedLengthInteger(rest, 2)
	if err != nil {
		return err
	}
	p.Flags = packet.ColumnFlag(colFlags)

	// int<1>	decimals
	decimals, _, err := encoding.ReadFixedLengthInteger(rest, 1)
	if err != nil {
		return err
	}
	p.Decimals = byte(decimals)

	// 后面还有 int<2> 的保留字段，直接忽略
	return nil
}
