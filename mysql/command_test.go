package mysql

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meoying/dbclient/internal/errs"
	"github.com/meoying/dbclient/mysql/internal/flags"
	"github.com/meoying/dbclient/mysql/internal/packet/encoding"
)

// 这个能力集在握手协商里是必然的结果，测试默认按它走
const testCaps = flags.AlwaysEnabled

// colDefPayload 拼一个 INT 列的字段描述包
func colDefPayload(name string) []byte {
	var p []byte
	for _, s := range []string{"def", "test", "t", "t", name, name} {
		p = append(p, encoding.LengthEncodeString(s)...)
	}
	p = append(p, 0x0C)
	p = append(p, 0x3F, 0x00) // binary
	p = append(p, 0x0B, 0x00, 0x00, 0x00)
	p = append(p, 0x03)       // LONG
	p = append(p, 0x00, 0x00) // flags
	p = append(p, 0x00)       // decimals
	p = append(p, 0x00, 0x00)
	return p
}

func okPayload(header byte, status uint16) []byte {
	return []byte{header, 0x00, 0x00, byte(status), byte(status >> 8), 0x00, 0x00}
}

// recordingHandler 把回调按发生顺序记录下来
type recordingHandler struct {
	events []string
	rows   [][]Value
	// failOn 非空时在对应事件上返回错误
	failOn string
}

func (h *recordingHandler) hit(event string) error {
	h.events = append(h.events, event)
	if h.failOn == event {
		return fmt.Errorf("handler 在 %s 上失败", event)
	}
	return nil
}

func (h *recordingHandler) NoResultSet(ok OK) error    { return h.hit("no-result-set") }
func (h *recordingHandler) ResultSetStart(n int) error { return h.hit(fmt.Sprintf("start(%d)", n)) }
func (h *recordingHandler) Col(col Column) error       { return h.hit("col(" + col.Name + ")") }
func (h *recordingHandler) ResultSetEnd(ok OK) error   { return h.hit("end") }
func (h *recordingHandler) Row(cols []Column, data []Value) error {
	row := make([]Value, len(data))
	for i, v := range data {
		row[i] = v.Clone()
	}
	h.rows = append(h.rows, row)
	return h.hit("row")
}

func TestConn_Query_SingleResultSet(t *testing.T) {
	c, fake := newTestConn(testCaps,
		frame(1, []byte{0x01}),           // 列数
		frame(2, colDefPayload("id")),    // 字段描述
		frame(3, []byte{0x02, '4', '2'}), // 文本行
		frame(4, okPayload(0xFE, 0x0002)),
	)

	var h recordingHandler
	err := c.Query(context.Background(), "SELECT id FROM t", &h)
	require.NoError(t, err)
	assert.Equal(t, []string{"start(1)", "col(id)", "row", "end"}, h.events)
	require.Len(t, h.rows, 1)
	assert.Equal(t, []byte("42"), h.rows[0][0].Bytes)

	// 发出去的是 COM_QUERY
	out := fake.outgoing.Bytes()
	assert.Equal(t, byte(0x03), out[4])
	assert.Equal(t, "SELECT id FROM t", string(out[5:]))
}

// 两个结果集，第一个带 SERVER_MORE_RESULTS_EXISTS
func TestConn_Query_MultiResultSet(t *testing.T) {
	c, _ := newTestConn(testCaps,
		frame(1, []byte{0x01}),
		frame(2, colDefPayload("a")),
		frame(3, []byte{0x01, '1'}),
		frame(4, okPayload(0xFE, 0x000A)), // more results
		frame(5, []byte{0x01}),
		frame(6, colDefPayload("b")),
		frame(7, []byte{0x01, '2'}),
		frame(8, okPayload(0xFE, 0x0002)),
	)

	var h recordingHandler
	err := c.Query(context.Background(), "CALL p()", &h)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"start(1)", "col(a)", "row", "end",
		"start(1)", "col(b)", "row", "end",
	}, h.events)
}

// 多语句里混着没有结果集的语句
func TestConn_Query_MultiStatementWithOK(t *testing.T) {
	c, _ := newTestConn(testCaps,
		frame(1, okPayload(0x00, 0x000A)), // 第一条是 UPDATE，还有后续
		frame(2, []byte{0x01}),
		frame(3, colDefPayload("a")),
		frame(4, okPayload(0xFE, 0x0002)), // 空结果集直接收尾
	)

	var h recordingHandler
	err := c.Query(context.Background(), "UPDATE ...; SELECT ...", &h)
	require.NoError(t, err)
	assert.Equal(t, []string{"no-result-set", "start(1)", "col(a)", "end"}, h.events)
}

func TestConn_Query_ServerError(t *testing.T) {
	errPayload := append([]byte{0xFF, 0x48, 0x04, '#'}, []byte("HY000No tables used")...)
	c, _ := newTestConn(testCaps, frame(1, errPayload))

	var h recordingHandler
	err := c.Query(context.Background(), "SELECT", &h)
	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, uint16(1096), serverErr.Code)
	assert.Equal(t, "HY000", serverErr.SQLState)
	assert.Equal(t, "No tables used", serverErr.Message)
	assert.Empty(t, h.events)
}

// LOCAL INFILE 请求被拒绝，但要按协议回空包并读掉服务端的收尾
func TestConn_Query_RejectLocalInfile(t *testing.T) {
	c, fake := newTestConn(testCaps,
		frame(1, append([]byte{0xFB}, []byte("/etc/passwd")...)),
		frame(3, okPayload(0x00, 0x0002)), // 服务端对空包的收尾
	)

	var h recordingHandler
	err := c.Query(context.Background(), "LOAD DATA LOCAL INFILE ...", &h)
	assert.ErrorIs(t, err, errs.ErrLocalInfileUnsupported)
	assert.Contains(t, err.Error(), "/etc/passwd")

	// 客户端回了一个空包（seq = 2）
	out := fake.outgoing.Bytes()
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x02}, out[len(out)-4:])
	// 流保持同步，连接还能用
	assert.False(t, c.Closed())
}

// 回调报错后不再回调，但整个响应要读完，连接不报废
func TestConn_Query_HandlerErrorDrains(t *testing.T) {
	c, fake := newTestConn(testCaps,
		frame(1, []byte{0x01}),
		frame(2, colDefPayload("a")),
		frame(3, []byte{0x01, '1'}),
		frame(4, []byte{0x01, '2'}),
		frame(5, []byte{0x01, '3'}),
		frame(6, okPayload(0xFE, 0x0002)),
	)

	h := recordingHandler{failOn: "row"}
	err := c.Query(context.Background(), "SELECT", &h)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "handler 在 row 上失败")
	// 只有第一行触发了回调
	assert.Equal(t, []string{"start(1)", "col(a)", "row"}, h.events)
	// 响应全部读完
	assert.Zero(t, fake.incoming.Len())
	assert.False(t, c.Closed())
}

// 没协商 CLIENT_DEPRECATE_EOF 时列定义后面还有一个 EOF
func TestConn_Query_LegacyEOF(t *testing.T) {
	legacyCaps := testCaps &^ flags.CapabilityFlags(flags.ClientDeprecateEOF)
	c, _ := newTestConn(legacyCaps,
		frame(1, []byte{0x01}),
		frame(2, colDefPayload("a")),
		frame(3, []byte{0xFE, 0x00, 0x00, 0x02, 0x00}), // 列定义结束的 EOF
		frame(4, []byte{0x01, '1'}),
		frame(5, []byte{0xFE, 0x00, 0x00, 0x02, 0x00}), // 行结束的 EOF
	)

	var h recordingHandler
	err := c.Query(context.Background(), "SELECT", &h)
	require.NoError(t, err)
	assert.Equal(t, []string{"start(1)", "col(a)", "row", "end"}, h.events)
}

func TestConn_QueryDrop(t *testing.T) {
	c, _ := newTestConn(testCaps,
		frame(1, []byte{0x00, 0x01, 0x05, 0x02, 0x00, 0x00, 0x00}), // affected=1 lastID=5
	)
	ok, err := c.QueryDrop(context.Background(), "DELETE FROM t")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), ok.AffectedRows)
	assert.Equal(t, uint64(5), ok.LastInsertID)
}

// QueryFirst 只留第一行，其余行照常读完
func TestConn_QueryFirst_DrainsRemaining(t *testing.T) {
	frames := [][]byte{
		frame(1, []byte{0x01}),
		frame(2, colDefPayload("a")),
	}
	for i := 0; i < 5; i++ {
		frames = append(frames, frame(uint8(3+i), []byte{0x01, byte('1' + i)}))
	}
	frames = append(frames, frame(8, okPayload(0xFE, 0x0002)))

	c, fake := newTestConn(testCaps, frames...)
	row, err := c.QueryFirst(context.Background(), "SELECT")
	require.NoError(t, err)
	require.Len(t, row, 1)
	assert.Equal(t, []byte("1"), row[0].Bytes)
	assert.Zero(t, fake.incoming.Len())
}

func TestConn_QueryFirst_NoRows(t *testing.T) {
	c, _ := newTestConn(testCaps,
		frame(1, []byte{0x01}),
		frame(2, colDefPayload("a")),
		frame(3, okPayload(0xFE, 0x0002)),
	)
	row, err := c.QueryFirst(context.Background(), "SELECT")
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestConn_Ping(t *testing.T) {
	c, fake := newTestConn(testCaps, frame(1, okPayload(0x00, 0x0002)))
	require.NoError(t, c.Ping(context.Background()))
	assert.Equal(t, byte(0x0E), fake.outgoing.Bytes()[4])
}

func TestConn_Reset(t *testing.T) {
	c, fake := newTestConn(testCaps, frame(1, okPayload(0x00, 0x0002)))
	require.NoError(t, c.Reset(context.Background()))
	assert.Equal(t, byte(0x1F), fake.outgoing.Bytes()[4])
}

func TestConn_InitDB(t *testing.T) {
	c, fake := newTestConn(testCaps, frame(1, okPayload(0x00, 0x0002)))
	require.NoError(t, c.InitDB(context.Background(), "orders"))
	out := fake.outgoing.Bytes()
	assert.Equal(t, byte(0x02), out[4])
	assert.Equal(t, "orders", string(out[5:]))
}

func TestConn_Close_SendsQuit(t *testing.T) {
	c, fake := newTestConn(testCaps)
	require.NoError(t, c.Close())
	assert.Equal(t, []byte{0x01, 0x00, 0x00, 0x00, 0x01}, fake.outgoing.Bytes())
	assert.True(t, fake.closed)
	// 二次关闭幂等
	require.NoError(t, c.Close())
}

func TestConn_CommandOnClosedConn(t *testing.T) {
	c, _ := newTestConn(testCaps)
	require.NoError(t, c.Close())
	err := c.Ping(context.Background())
	assert.ErrorIs(t, err, errs.ErrInvalidConn)
}

func TestConn_CommandContextCanceled(t *testing.T) {
	c, _ := newTestConn(testCaps)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.Ping(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}
