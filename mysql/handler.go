package mysql

import "github.com/meoying/dbclient/mysql/internal/flags"

//go:generate mockgen -source=handler.go -destination=mocks/handler.mock.go -package=mocks -typed Handler

// OK 一条语句执行完的结果，来自 OK 包或者结果集末尾的 EOF/OK 包
type OK struct {
	AffectedRows uint64
	LastInsertID uint64
	Warnings     uint16
	StatusFlags  ServerStatus
}

// MoreResults 后面是否还有下一个结果集
func (ok *OK) MoreResults() bool {
	return ok.StatusFlags.Has(flags.ServerMoreResultsExists)
}

// Handler 结果集的推式回调
// 一条语句可能产生多个结果集，每个结果集对应一轮
// ResultSetStart、若干次 Col、若干次 Row、ResultSetEnd；
// 没有结果集的语句只回调一次 NoResultSet。
// Row 收到的 data 是网络缓冲区的借用切片，回调返回后失效，
// 需要跨回调持有的数据必须自行拷贝。
type Handler interface {
	// NoResultSet 语句没有产生结果集
	NoResultSet(ok OK) error
	// ResultSetStart 一个结果集开始，columnCount 是列数
	ResultSetStart(columnCount int) error
	// Col 按顺序收到每一列的元数据
	Col(col Column) error
	// Row 收到一行数据，cols 是本结果集全部列的元数据
	Row(cols []Column, data []Value) error
	// ResultSetEnd 结果集结束
	ResultSetEnd(ok OK) error
}

// BaseHandler 全空实现，嵌入之后按需覆盖个别方法
type BaseHandler struct{}

func (BaseHandler) NoResultSet(OK) error        { return nil }
func (BaseHandler) ResultSetStart(int) error    { return nil }
func (BaseHandler) Col(Column) error            { return nil }
func (BaseHandler) Row([]Column, []Value) error { return nil }
func (BaseHandler) ResultSetEnd(OK) error       { return nil }

var _ Handler = BaseHandler{}

// discardHandler 丢弃全部行，只保留最后一个 OK，ExecDrop/QueryDrop 在用
type discardHandler struct {
	BaseHandler
	lastOK OK
}

func (h *discardHandler) NoResultSet(ok OK) error {
	h.lastOK = ok
	return nil
}

func (h *discardHandler) ResultSetEnd(ok OK) error {
	h.lastOK = ok
	return nil
}

// firstRowHandler 只留第一个结果集的第一行，其余照常读取后丢弃
type firstRowHandler struct {
	lastOK OK
	cols   []Column
	row    []Value
	seen   bool
}

func (h *firstRowHandler) NoResultSet(ok OK) error {
	h.lastOK = ok
	return nil
}

func (h *firstRowHandler) ResultSetStart(columnCount int) error {
	if !h.seen {
		h.cols = make([]Column, 0, columnCount)
	}
	return nil
}

func (h *firstRowHandler) Col(col Column) error {
	if !h.seen {
		h.cols = append(h.cols, col)
	}
	return nil
}

func (h *firstRowHandler) Row(cols []Column, data []Value) error {
	if h.seen {
		return nil
	}
	h.seen = true
	// data 是借用的，拷贝一份
	h.row = make([]Value, len(data))
	for i, v := range data {
		h.row[i] = v.Clone()
	}
	return nil
}

func (h *firstRowHandler) ResultSetEnd(ok OK) error {
	h.lastOK = ok
	return nil
}
