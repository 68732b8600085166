package mysql

import (
	"context"
	"fmt"

	"github.com/meoying/dbclient/internal/errs"
	"github.com/meoying/dbclient/mysql/internal/flags"
	"github.com/meoying/dbclient/mysql/internal/packet"
	"github.com/meoying/dbclient/mysql/internal/packet/builder"
	"github.com/meoying/dbclient/mysql/internal/packet/parser"
)

// Stmt 一条预编译语句，生命周期不能超过它所属的连接
type Stmt struct {
	conn *Conn
	id   uint32

	// params 服务端返回的参数元数据，个数就是占位符个数
	params []Column
	// columns 结果集的列元数据，执行时服务端还会再发一份
	columns []Column

	// firstExec 首次执行必须带上参数类型
	firstExec bool
	closed    bool
}

// Prepare 预编译一条语句
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_com_stmt_prepare.html
func (c *Conn) Prepare(ctx context.Context, query string) (*Stmt, error) {
	cmd := builder.CommandStr{Cmd: packet.CmdStmtPrepare, Arg: query}
	if err := c.writeCommand(ctx, cmd.Build()); err != nil {
		return nil, err
	}

	payload, err := c.readPacket()
	if err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w，收到空报文", errs.ErrInvalidPacket)
	}
	if payload[0] == packet.HeaderErr {
		return nil, newServerError(payload)
	}
	var ok parser.StmtPrepareOK
	if err = ok.Parse(payload); err != nil {
		return nil, err
	}

	stmt := &Stmt{
		conn:      c,
		id:        ok.StatementID,
		firstExec: true,
	}
	// 参数定义和列定义各自一段，旧协议段后各有一个 EOF
	if stmt.params, err = c.readColumnDefinitions(int(ok.NumParams)); err != nil {
		return nil, err
	}
	if stmt.columns, err = c.readColumnDefinitions(int(ok.NumColumns)); err != nil {
		return nil, err
	}
	return stmt, nil
}

// readColumnDefinitions 读取 count 个字段描述包
// 没协商 CLIENT_DEPRECATE_EOF 时后面还跟一个 EOF
func (c *Conn) readColumnDefinitions(count int) ([]Column, error) {
	if count == 0 {
		return nil, nil
	}
	cols := make([]Column, 0, count)
	for i := 0; i < count; i++ {
		payload, err := c.readPacket()
		if err != nil {
			return nil, err
		}
		if len(payload) == 0 {
			return nil, fmt.Errorf("%w，收到空报文", errs.ErrInvalidPacket)
		}
		if payload[0] == packet.HeaderErr {
			return nil, newServerError(payload)
		}
		var def parser.ColumnDefinition41
		if err = def.Parse(payload); err != nil {
			return nil, err
		}
		cols = append(cols, newColumn(&def))
	}
	if !c.capabilities.Has(flags.ClientDeprecateEOF) {
		payload, err := c.readPacket()
		if err != nil {
			return nil, err
		}
		if _, err = c.parseEOF(payload); err != nil {
			return nil, err
		}
	}
	return cols, nil
}

// NumParams 占位符个数
func (s *Stmt) NumParams() int {
	return len(s.params)
}

// Columns prepare 时服务端预告的结果集列，执行时可能会变
func (s *Stmt) Columns() []Column {
	return s.columns
}

// Exec 执行预编译语句，args 个数必须和占位符一致
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_com_stmt_execute.html
func (s *Stmt) Exec(ctx context.Context, args []any, h Handler) error {
	if s.closed {
		return errs.ErrInvalidConn
	}
	if len(args) != len(s.params) {
		return fmt.Errorf("参数个数不匹配，语句需要 %d 个，传入 %d 个", len(s.params), len(args))
	}

	exec := builder.StmtExecute{
		StatementID:    s.id,
		Flags:          packet.CURSOR_TYPE_NO_CURSOR,
		Args:           args,
		NewParamsBound: s.firstExec,
	}
	data, err := exec.Build()
	if err != nil {
		return err
	}
	if err = s.conn.writeCommand(ctx, data); err != nil {
		return err
	}
	s.firstExec = false
	return s.conn.readResults(h, true)
}

// ExecDrop 执行并丢掉全部行
func (s *Stmt) ExecDrop(ctx context.Context, args ...any) (OK, error) {
	var h discardHandler
	if err := s.Exec(ctx, args, &h); err != nil {
		return OK{}, err
	}
	return h.lastOK, nil
}

// ExecFirst 执行并只取第一行
func (s *Stmt) ExecFirst(ctx context.Context, args ...any) ([]Value, error) {
	var h firstRowHandler
	if err := s.Exec(ctx, args, &h); err != nil {
		return nil, err
	}
	return h.row, nil
}

// Close 发 COM_STMT_CLOSE，这个命令没有响应
func (s *Stmt) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	cmd := builder.StmtClose{StatementID: s.id}
	s.conn.resetSequence()
	return s.conn.writePacket(cmd.Build())
}
