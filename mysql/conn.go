package mysql

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"go.uber.org/multierr"

	"github.com/meoying/dbclient/internal/errs"
	"github.com/meoying/dbclient/mysql/internal/flags"
	"github.com/meoying/dbclient/mysql/internal/packet"
	"github.com/meoying/dbclient/mysql/internal/packet/builder"
	"github.com/meoying/dbclient/mysql/internal/packet/parser"
)

// Conn 一条到 MySQL/MariaDB 服务端的连接
// 不是并发安全的，同一时刻只能有一个 goroutine 在上面跑命令，
// 需要并发就用 Pool
type Conn struct {
	cfg    *Config
	conn   net.Conn
	reader *bufio.Reader
	logger *slog.Logger

	// sequence 当前期望的报文序号，每条命令从 0 重新计数
	sequence uint8

	// capabilities 握手协商出来的能力集
	capabilities  flags.CapabilityFlags
	serverVersion string
	connectionID  uint32
	status        flags.SeverStatus

	// readBuf 复用的 payload 缓冲区，跨 readPacket 调用会被覆盖
	readBuf []byte
	// valueBuf 复用的行解码缓冲区
	valueBuf []Value

	closed bool
}

type Option func(*Conn)

// WithLogger 替换默认的 slog.Default()
func WithLogger(logger *slog.Logger) Option {
	return func(c *Conn) {
		c.logger = logger
	}
}

// Connect 建立连接并完成握手，之后连接处于可以发命令的状态
func Connect(ctx context.Context, cfg *Config, opts ...Option) (*Conn, error) {
	if cfg.Compress {
		return nil, errs.ErrCompressUnsupported
	}

	network, addr := cfg.Addr()
	var dialer net.Dialer
	rawConn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidConn, err)
	}
	if tcpConn, ok := rawConn.(*net.TCPConn); ok {
		_ = tcpConn.SetNoDelay(cfg.TCPNoDelay)
	}
	return NewConn(ctx, cfg, rawConn, opts...)
}

// NewConn 在一条已经建立好的连接上完成握手
// 自定义拨号逻辑（代理、SSH 隧道）时用这个入口
func NewConn(ctx context.Context, cfg *Config, rawConn net.Conn, opts ...Option) (*Conn, error) {
	if cfg.Compress {
		return nil, errs.ErrCompressUnsupported
	}

	c := &Conn{
		cfg:    cfg,
		conn:   rawConn,
		reader: bufio.NewReader(rawConn),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.handshake(ctx); err != nil {
		_ = rawConn.Close()
		return nil, err
	}
	c.logger.Debug("握手完成",
		slog.String("serverVersion", c.serverVersion),
		slog.Uint64("connectionID", uint64(c.connectionID)))

	if cfg.InitCommand != "" {
		if _, err := c.QueryDrop(ctx, cfg.InitCommand); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("执行 init_command 失败: %w", err)
		}
	}

	if cfg.UpgradeToUnixSocket && cfg.Socket == "" {
		upgraded, err1 := c.upgradeToUnixSocket(ctx, opts...)
		if err1 != nil {
			// 升级失败不是致命错误，继续用 TCP 连接
			c.logger.Warn("切换 Unix Socket 失败，继续使用 TCP", slog.Any("err", err1))
			return c, nil
		}
		return upgraded, nil
	}
	return c, nil
}

// upgradeToUnixSocket 询问服务端的 socket 路径，换一条本地连接
func (c *Conn) upgradeToUnixSocket(ctx context.Context, opts ...Option) (*Conn, error) {
	row, err := c.QueryFirst(ctx, "SELECT @@socket")
	if err != nil {
		return nil, err
	}
	if len(row) != 1 || row[0].Kind != KindBytes || len(row[0].Bytes) == 0 {
		return nil, fmt.Errorf("服务端没有汇报 socket 路径")
	}
	socketCfg := *c.cfg
	socketCfg.Socket = string(row[0].Bytes)
	socketCfg.UpgradeToUnixSocket = false
	upgraded, err := Connect(ctx, &socketCfg, opts...)
	if err != nil {
		return nil, err
	}
	_ = c.Close()
	return upgraded, nil
}

// ServerVersion 服务端在握手包里汇报的版本字符串
func (c *Conn) ServerVersion() string {
	return c.serverVersion
}

// ConnectionID 服务端分配的连接 id，可以用来 KILL
func (c *Conn) ConnectionID() uint32 {
	return c.connectionID
}

// Capabilities 协商之后双方共同支持的能力集
func (c *Conn) Capabilities() CapabilityFlags {
	return c.capabilities
}

// Status 最近一个 OK/EOF 包里的服务端状态
func (c *Conn) Status() ServerStatus {
	return c.status
}

// Closed 连接是否已经关闭或者因协议错误报废
func (c *Conn) Closed() bool {
	return c.closed
}

// Ping 检查连接是否存活
func (c *Conn) Ping(ctx context.Context) error {
	cmd := builder.Command{Cmd: packet.CmdPing}
	if err := c.writeCommand(ctx, cmd.Build()); err != nil {
		return err
	}
	_, err := c.readOKPacket()
	return err
}

// InitDB 切换默认数据库，等价于 USE
func (c *Conn) InitDB(ctx context.Context, db string) error {
	cmd := builder.CommandStr{Cmd: packet.CmdInitDB, Arg: db}
	if err := c.writeCommand(ctx, cmd.Build()); err != nil {
		return err
	}
	_, err := c.readOKPacket()
	return err
}

// Reset 让服务端清掉会话状态，比回收重连便宜得多
func (c *Conn) Reset(ctx context.Context) error {
	cmd := builder.Command{Cmd: packet.CmdResetConnection}
	if err := c.writeCommand(ctx, cmd.Build()); err != nil {
		return err
	}
	_, err := c.readOKPacket()
	return err
}

// Close 尽力而为地发 COM_QUIT 再关闭底层连接
func (c *Conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	var err error
	// COM_QUIT 没有响应，发送失败也要继续关 socket
	quit := builder.Command{Cmd: packet.CmdQuit}
	c.resetSequence()
	_ = c.conn.SetWriteDeadline(time.Now().Add(time.Second))
	err = multierr.Append(err, c.writePacket(quit.Build()))
	err = multierr.Append(err, c.conn.Close())
	return err
}

// writeCommand 开始一条新命令，序号从 0 重新计数
func (c *Conn) writeCommand(ctx context.Context, data []byte) error {
	if c.closed {
		return errs.ErrInvalidConn
	}
	if err := c.applyDeadline(ctx); err != nil {
		return err
	}
	c.resetSequence()
	return c.writePacket(data)
}

// applyDeadline 把 ctx 的截止时间落到 socket 上
func (c *Conn) applyDeadline(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Time{}
	}
	return c.conn.SetDeadline(deadline)
}

func (c *Conn) resetSequence() {
	c.sequence = 0
}

// readOKPacket 读取一个包并要求它是 OK 或 ERR
func (c *Conn) readOKPacket() (OK, error) {
	payload, err := c.readPacket()
	if err != nil {
		return OK{}, err
	}
	if len(payload) == 0 {
		return OK{}, fmt.Errorf("%w，收到空报文", errs.ErrInvalidPacket)
	}
	switch payload[0] {
	case packet.HeaderErr:
		return OK{}, newServerError(payload)
	default:
		return c.parseOK(payload)
	}
}

func (c *Conn) parseOK(payload []byte) (OK, error) {
	var pkt parser.OKPacket
	if err := pkt.Parse(payload); err != nil {
		return OK{}, err
	}
	c.status = pkt.StatusFlags
	return OK{
		AffectedRows: pkt.AffectedRows,
		LastInsertID: pkt.LastInsertID,
		Warnings:     pkt.Warnings,
		StatusFlags:  pkt.StatusFlags,
	}, nil
}

func (c *Conn) parseEOF(payload []byte) (OK, error) {
	var pkt parser.EOFPacket
	if err := pkt.Parse(payload); err != nil {
		return OK{}, err
	}
	c.status = pkt.StatusFlags
	return OK{
		Warnings:    pkt.Warnings,
		StatusFlags: pkt.StatusFlags,
	}, nil
}
