package mysql

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/meoying/dbclient/internal/errs"
	"github.com/meoying/dbclient/mysql/internal/flags"
	"github.com/meoying/dbclient/mysql/internal/packet"
	"github.com/meoying/dbclient/mysql/internal/packet/builder"
	"github.com/meoying/dbclient/mysql/internal/packet/encoding"
	"github.com/meoying/dbclient/mysql/internal/packet/parser"
)

// Query 用文本协议执行一条语句，结果通过 h 逐行推送
// 语句里可以带多条 SQL，也可以是返回多个结果集的存储过程，
// 每个结果集各自走一轮回调
func (c *Conn) Query(ctx context.Context, query string, h Handler) error {
	cmd := builder.CommandStr{Cmd: packet.CmdQuery, Arg: query}
	if err := c.writeCommand(ctx, cmd.Build()); err != nil {
		return err
	}
	return c.readResults(h, false)
}

// QueryDrop 执行语句并丢掉全部行，返回最后一个结果的 OK
func (c *Conn) QueryDrop(ctx context.Context, query string) (OK, error) {
	var h discardHandler
	if err := c.Query(ctx, query, &h); err != nil {
		return OK{}, err
	}
	return h.lastOK, nil
}

// QueryFirst 执行语句并只取第一个结果集的第一行，其余照常读完丢弃
// 没有任何行时返回 nil
func (c *Conn) QueryFirst(ctx context.Context, query string) ([]Value, error) {
	var h firstRowHandler
	if err := c.Query(ctx, query, &h); err != nil {
		return nil, err
	}
	return h.row, nil
}

// Exec 预编译并用二进制协议执行一条语句，执行完立刻关闭语句
// 反复执行同一条语句时应该自己 Prepare 并复用 Stmt
func (c *Conn) Exec(ctx context.Context, query string, args []any, h Handler) error {
	stmt, err := c.Prepare(ctx, query)
	if err != nil {
		return err
	}
	err = stmt.Exec(ctx, args, h)
	return multierr.Append(err, stmt.Close())
}

// ExecDrop 预编译执行并丢掉全部行，返回最后一个结果的 OK
func (c *Conn) ExecDrop(ctx context.Context, query string, args ...any) (OK, error) {
	var h discardHandler
	if err := c.Exec(ctx, query, args, &h); err != nil {
		return OK{}, err
	}
	return h.lastOK, nil
}

// ExecFirst 预编译执行并只取第一行
func (c *Conn) ExecFirst(ctx context.Context, query string, args ...any) ([]Value, error) {
	var h firstRowHandler
	if err := c.Exec(ctx, query, args, &h); err != nil {
		return nil, err
	}
	return h.row, nil
}

// resultState 命令响应状态机的状态
type resultState uint8

const (
	// stateResponse 命令已发出，等第一个响应包
	stateResponse resultState = iota
	// stateColumn 在读列定义
	stateColumn
	// stateColumnEOF 旧协议在列定义之后还有一个 EOF
	stateColumnEOF
	// stateRow 在读行数据
	stateRow
)

// readResults 命令响应的状态机，文本协议和二进制协议共用
// 回调一旦报错就不再回调，但协议照常读完，保证连接还能继续用
func (c *Conn) readResults(h Handler, binary bool) error {
	var (
		state      resultState = stateResponse
		cols       []Column
		remaining  int
		handlerErr error
	)
	call := func(f func() error) {
		if handlerErr == nil {
			handlerErr = f()
		}
	}

	for {
		payload, err := c.readPacket()
		if err != nil {
			return err
		}
		if len(payload) == 0 {
			return fmt.Errorf("%w，收到空报文", errs.ErrInvalidPacket)
		}
		if payload[0] == packet.HeaderErr {
			return newServerError(payload)
		}

		switch state {
		case stateResponse:
			switch payload[0] {
			case packet.HeaderOK:
				ok, err1 := c.parseOK(payload)
				if err1 != nil {
					return err1
				}
				call(func() error { return h.NoResultSet(ok) })
				if ok.MoreResults() {
					continue
				}
				return handlerErr
			case packet.HeaderLocalInfile:
				return c.rejectLocalInfile(payload)
			default:
				// int<lenenc> 列数
				count, rest, err1 := encoding.ReadLengthEncodedInteger(payload)
				if err1 != nil {
					return err1
				}
				if len(rest) != 0 {
					return fmt.Errorf("%w，列数包尾部多出 %d 字节", errs.ErrInvalidPacket, len(rest))
				}
				remaining = int(count)
				cols = make([]Column, 0, remaining)
				call(func() error { return h.ResultSetStart(remaining) })
				state = stateColumn
			}

		case stateColumn:
			var def parser.ColumnDefinition41
			if err = def.Parse(payload); err != nil {
				return err
			}
			col := newColumn(&def)
			cols = append(cols, col)
			call(func() error { return h.Col(col) })
			remaining--
			if remaining == 0 {
				if c.capabilities.Has(flags.ClientDeprecateEOF) {
					state = stateRow
				} else {
					state = stateColumnEOF
				}
			}

		case stateColumnEOF:
			if _, err = c.parseEOF(payload); err != nil {
				return err
			}
			state = stateRow

		case stateRow:
			deprecateEOF := c.capabilities.Has(flags.ClientDeprecateEOF)
			var terminal bool
			if deprecateEOF {
				// 0xFE 开头的行只可能出现在超过 16MB 的报文里
				terminal = payload[0] == packet.HeaderEOF && len(payload) < packet.MaxPacketSize
			} else {
				terminal = parser.IsEOFShaped(payload)
			}
			if terminal {
				var ok OK
				if deprecateEOF {
					ok, err = c.parseOK(payload)
				} else {
					ok, err = c.parseEOF(payload)
				}
				if err != nil {
					return err
				}
				call(func() error { return h.ResultSetEnd(ok) })
				if ok.MoreResults() {
					state = stateResponse
					continue
				}
				return handlerErr
			}
			// 回调已经报错时只排空，不再解码
			if handlerErr != nil {
				continue
			}
			var vals []Value
			if binary {
				vals, err = DecodeBinaryRow(payload, cols, c.valueBuf)
			} else {
				vals, err = DecodeTextRow(payload, cols, c.valueBuf)
			}
			if err != nil {
				return err
			}
			c.valueBuf = vals
			call(func() error { return h.Row(cols, vals) })
		}
	}
}

// rejectLocalInfile 服务端发来 LOCAL INFILE 请求
// 按协议回一个空包表示没有数据，读掉服务端的收尾响应，然后报错
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_com_query_response_local_infile_request.html
func (c *Conn) rejectLocalInfile(payload []byte) error {
	filename := string(payload[1:])
	if err := c.writePacket(make([]byte, 4)); err != nil {
		return err
	}
	// 服务端会回 OK 或者 ERR，读掉保持流同步
	if _, err := c.readOKPacket(); err != nil {
		return multierr.Append(
			fmt.Errorf("%w: %s", errs.ErrLocalInfileUnsupported, filename), err)
	}
	return fmt.Errorf("%w: %s", errs.ErrLocalInfileUnsupported, filename)
}
