package mysql

import (
	"github.com/meoying/dbclient/mysql/internal/packet"
	"github.com/meoying/dbclient/mysql/internal/packet/parser"
)

// Column 结果集的一列的元数据，字符串已拷贝，可以在回调之外长期持有
type Column struct {
	Schema   string
	Table    string
	OrgTable string
	Name     string
	OrgName  string

	CharacterSet uint16
	ColumnLength uint32
	Type         ColumnType
	Flags        ColumnFlag
	Decimals     byte
}

// Unsigned 数值列是否无符号，解码二进制行时决定符号扩展
func (c *Column) Unsigned() bool {
	return c.Flags&packet.ColumnFlagUnsigned != 0
}

// Binary 字符集是否为 binary(63)，区分 BLOB 和 TEXT
func (c *Column) Binary() bool {
	return c.CharacterSet == packet.CharSetBinary
}

func newColumn(def *parser.ColumnDefinition41) Column {
	return Column{
		Schema:       def.Schema,
		Table:        def.Table,
		OrgTable:     def.OrgTable,
		Name:         def.Name,
		OrgName:      def.OrgName,
		CharacterSet: def.CharacterSet,
		ColumnLength: def.ColumnLength,
		Type:         def.Type,
		Flags:        def.Flags,
		Decimals:     def.Decimals,
	}
}
