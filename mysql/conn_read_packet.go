package mysql

import (
	"fmt"
	"io"

	"github.com/meoying/dbclient/internal/errs"
	"github.com/meoying/dbclient/mysql/internal/packet"
)

// readPacket 读出一个完整的逻辑报文
// 长度是 0xFFFFFF 的帧说明后面还有延续帧，要拼起来，
// 刚好 16MB-1 的报文以一个空帧收尾
// 空报文在帧层是合法的，各阶段自己判断语义上能不能接受
// 返回的切片指向内部缓冲区，下一次 readPacket 就失效
func (c *Conn) readPacket() ([]byte, error) {
	c.readBuf = c.readBuf[:0]
	for {
		var header [4]byte
		if _, err := io.ReadFull(c.reader, header[:]); err != nil {
			c.closed = true
			return nil, fmt.Errorf("%w，读取报文头失败: %w", errs.ErrInvalidConn, err)
		}

		// 序号必须严格递增，乱序说明流已经不同步了
		if header[3] != c.sequence {
			c.closed = true
			return nil, fmt.Errorf("%w，期望 %d 收到 %d", errs.ErrPktSync, c.sequence, header[3])
		}
		c.sequence++

		length := int(header[0]) | int(header[1])<<8 | int(header[2])<<16
		if length > 0 {
			start := len(c.readBuf)
			c.readBuf = append(c.readBuf, make([]byte, length)...)
			if _, err := io.ReadFull(c.reader, c.readBuf[start:]); err != nil {
				c.closed = true
				return nil, fmt.Errorf("%w，读取报文体失败: %w", errs.ErrInvalidConn, err)
			}
		}

		if length < packet.MaxPacketSize {
			return c.readBuf, nil
		}
	}
}
