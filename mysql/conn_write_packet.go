package mysql

import (
	"fmt"

	"github.com/meoying/dbclient/internal/errs"
	"github.com/meoying/dbclient/mysql/internal/packet"
	"github.com/meoying/dbclient/mysql/internal/packet/builder"
)

// writePacket 写出一个逻辑报文
// data 的前 4 个字节是 Builder 预留的头部空间，
// 超过 16MB-1 的报文按最大帧长拆分，刚好写满一帧时补一个空帧
func (c *Conn) writePacket(data []byte) error {
	payload := data[4:]

	// 单帧快路径，直接在预留空间里填头部
	if len(payload) < packet.MaxPacketSize {
		frame, err := builder.NewSetHeader(c.sequence, data).Build()
		if err != nil {
			return err
		}
		c.sequence++
		if _, err = c.conn.Write(frame); err != nil {
			c.closed = true
			return fmt.Errorf("%w，写入报文失败: %w", errs.ErrInvalidConn, err)
		}
		return nil
	}

	for {
		chunk := payload
		if len(chunk) > packet.MaxPacketSize {
			chunk = chunk[:packet.MaxPacketSize]
		}
		header := [4]byte{
			byte(len(chunk)),
			byte(len(chunk) >> 8),
			byte(len(chunk) >> 16),
			c.sequence,
		}
		c.sequence++
		if _, err := c.conn.Write(header[:]); err != nil {
			c.closed = true
			return fmt.Errorf("%w，写入报文头失败: %w", errs.ErrInvalidConn, err)
		}
		if len(chunk) > 0 {
			if _, err := c.conn.Write(chunk); err != nil {
				c.closed = true
				return fmt.Errorf("%w，写入报文体失败: %w", errs.ErrInvalidConn, err)
			}
		}
		payload = payload[len(chunk):]
		// 最后一帧必须短于最大帧长，写满了就再补一个空帧
		if len(chunk) < packet.MaxPacketSize {
			return nil
		}
	}
}
