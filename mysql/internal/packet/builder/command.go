package builder

import (
	"github.com/meoying/dbclient/mysql/internal/packet"
	"github.com/meoying/dbclient/mysql/internal/packet/encoding"
)

// Command 只有一个命令字节的请求包，比如 COM_PING、COM_QUIT
type Command struct {
	Cmd packet.Cmd
}

func (b *Command) Build() []byte {
	return append(make([]byte, 4, 5), b.Cmd.Byte())
}

// CommandStr 命令字节后面跟 string<EOF> 参数的请求包
// COM_QUERY、COM_STMT_PREPARE、COM_INIT_DB 都是这个形状
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_com_query.html
type CommandStr struct {
	Cmd packet.Cmd
	Arg string
}

func (b *CommandStr) Build() []byte {
	p := make([]byte, 4, 5+len(b.Arg))
	p = append(p, b.Cmd.Byte())
	return append(p, b.Arg...)
}

// StmtClose COM_STMT_CLOSE，没有响应
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_com_stmt_close.html
type StmtClose struct {
	StatementID uint32
}

func (b *StmtClose) Build() []byte {
	p := make([]byte, 4, 9)
	p = append(p, packet.CmdStmtClose.Byte())
	return append(p, encoding.FixedLengthInteger(uint64(b.StatementID), 4)...)
}
