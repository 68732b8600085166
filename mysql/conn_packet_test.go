package mysql

import (
	"bufio"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meoying/dbclient/internal/errs"
	"github.com/meoying/dbclient/mysql/internal/packet"
)

// 写出去再读回来，覆盖拆包边界
func TestPacketRoundTrip(t *testing.T) {
	sizes := []int{0, 1, 2, 100, packet.MaxPacketSize - 1, packet.MaxPacketSize, packet.MaxPacketSize + 1, 2*packet.MaxPacketSize + 7}
	for _, size := range sizes {
		payload := make([]byte, size)
		for i := range payload {
			payload[i] = byte(i)
		}

		writer, fake := newTestConn(0)
		data := append(make([]byte, 4), payload...)
		require.NoError(t, writer.writePacket(data))

		reader, _ := newTestConn(0)
		reader.conn = fake
		reader.reader = bufio.NewReader(&fake.outgoing)
		got, err := reader.readPacket()
		require.NoError(t, err, "size=%d", size)
		assert.Equal(t, payload, got, "size=%d", size)
		// 双方的序号推进必须一致
		assert.Equal(t, writer.sequence, reader.sequence, "size=%d", size)
	}
}

// 刚好 16MB-1 的报文要带一个空的收尾帧
func TestWritePacket_ExactMaxAppendsEmptyFrame(t *testing.T) {
	c, fake := newTestConn(0)
	data := make([]byte, 4+packet.MaxPacketSize)
	require.NoError(t, c.writePacket(data))

	out := fake.outgoing.Bytes()
	assert.Len(t, out, 4+packet.MaxPacketSize+4)
	// 第一帧头
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0x00}, out[:4])
	// 收尾空帧
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x01}, out[len(out)-4:])
	assert.Equal(t, uint8(2), c.sequence)
}

func TestReadPacket_SequenceMismatch(t *testing.T) {
	c, _ := newTestConn(0, frame(5, []byte{0x00}))
	_, err := c.readPacket()
	assert.ErrorIs(t, err, errs.ErrPktSync)
	// 流已经不同步，连接必须报废
	assert.True(t, c.Closed())
}

// 空报文在帧层合法，LOCAL INFILE 的应答就是空报文，
// 语义层面收到空报文才算协议错误
func TestReadPacket_EmptyPacket(t *testing.T) {
	c, _ := newTestConn(0, frame(0, nil))
	payload, err := c.readPacket()
	require.NoError(t, err)
	assert.Empty(t, payload)
	assert.False(t, c.Closed())
}

func TestReadOKPacket_EmptyPayload(t *testing.T) {
	c, _ := newTestConn(0, frame(0, nil))
	_, err := c.readOKPacket()
	assert.ErrorIs(t, err, errs.ErrInvalidPacket)
}

func TestReadPacket_TruncatedStream(t *testing.T) {
	c, _ := newTestConn(0, []byte{0x05, 0x00, 0x00, 0x00, 0x01})
	_, err := c.readPacket()
	assert.ErrorIs(t, err, errs.ErrInvalidConn)
	assert.True(t, c.Closed())
}
