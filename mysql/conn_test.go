package mysql

import (
	"bufio"
	"bytes"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/meoying/dbclient/mysql/internal/flags"
)

// fakeNetConn 预先灌好服务端响应，记录客户端写出的全部字节
type fakeNetConn struct {
	incoming bytes.Buffer
	outgoing bytes.Buffer
	closed   bool
}

func (f *fakeNetConn) Read(b []byte) (int, error) {
	if f.incoming.Len() == 0 {
		return 0, io.EOF
	}
	return f.incoming.Read(b)
}

func (f *fakeNetConn) Write(b []byte) (int, error) {
	return f.outgoing.Write(b)
}

func (f *fakeNetConn) Close() error {
	f.closed = true
	return nil
}

func (f *fakeNetConn) LocalAddr() net.Addr                { return &net.TCPAddr{} }
func (f *fakeNetConn) RemoteAddr() net.Addr               { return &net.TCPAddr{} }
func (f *fakeNetConn) SetDeadline(t time.Time) error      { return nil }
func (f *fakeNetConn) SetReadDeadline(t time.Time) error  { return nil }
func (f *fakeNetConn) SetWriteDeadline(t time.Time) error { return nil }

// frame 给 payload 加上四字节头部
func frame(seq uint8, payload []byte) []byte {
	p := make([]byte, 0, 4+len(payload))
	p = append(p, byte(len(payload)), byte(len(payload)>>8), byte(len(payload)>>16), seq)
	return append(p, payload...)
}

// newTestConn 构造一条已经完成握手的连接，服务端响应按 frames 顺序灌入
func newTestConn(capabilities flags.CapabilityFlags, frames ...[]byte) (*Conn, *fakeNetConn) {
	fake := &fakeNetConn{}
	for _, f := range frames {
		fake.incoming.Write(f)
	}
	c := &Conn{
		cfg:    NewConfig(),
		conn:   fake,
		reader: bufio.NewReader(fake),
		logger: slog.Default(),
	}
	c.capabilities = capabilities
	return c, fake
}
