package mysql

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ecodeclub/ekit/syncx"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/semaphore"

	"github.com/meoying/dbclient/internal/errs"
)

// Pool 连接池
// Get 拿到的连接在归还之前由调用方独占，
// 并发上限由 pool_max_concurrency 控制
type Pool struct {
	cfg    *Config
	logger *slog.Logger
	opts   []Option

	// sem 限制在外加空闲的连接总数
	sem *semaphore.Weighted

	mu   sync.Mutex
	idle []*Conn

	// conns 全部存活连接，按服务端分配的连接 id 索引
	conns  syncx.Map[uint32, *Conn]
	closed bool
}

func NewPool(cfg *Config, opts ...Option) *Pool {
	maxConcurrency := cfg.PoolMaxConcurrency
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}
	return &Pool{
		cfg:    cfg,
		logger: slog.Default(),
		opts:   opts,
		sem:    semaphore.NewWeighted(int64(maxConcurrency)),
	}
}

// OpenPool 从连接 URL 直接构建连接池
func OpenPool(rawURL string, opts ...Option) (*Pool, error) {
	cfg, err := ParseURL(rawURL)
	if err != nil {
		return nil, err
	}
	return NewPool(cfg, opts...), nil
}

// Get 取一条连接，池子空了就新建，并发满了就阻塞到有归还或者 ctx 超时
func (p *Pool) Get(ctx context.Context) (*Conn, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.sem.Release(1)
		return nil, errs.ErrInvalidConn
	}
	if n := len(p.idle); n > 0 {
		conn := p.idle[n-1]
		p.idle = p.idle[:n-1]
		p.mu.Unlock()
		return conn, nil
	}
	p.mu.Unlock()

	conn, err := Connect(ctx, p.cfg, p.opts...)
	if err != nil {
		p.sem.Release(1)
		return nil, err
	}
	p.conns.Store(conn.ConnectionID(), conn)
	return conn, nil
}

// Put 归还连接
// 报废的连接直接丢弃，配置了 pool_reset_conn 时先让服务端清会话状态
func (p *Pool) Put(conn *Conn) {
	defer p.sem.Release(1)

	if conn.Closed() {
		p.discard(conn)
		return
	}
	if p.cfg.PoolResetConn {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		err := conn.Reset(ctx)
		cancel()
		if err != nil {
			p.logger.Warn("归还时重置连接失败，丢弃", slog.Any("err", err))
			p.discard(conn)
			return
		}
	}

	p.mu.Lock()
	if p.closed || len(p.idle) >= p.cfg.PoolMaxIdleConn {
		p.mu.Unlock()
		p.discard(conn)
		return
	}
	p.idle = append(p.idle, conn)
	p.mu.Unlock()
}

func (p *Pool) discard(conn *Conn) {
	p.conns.Delete(conn.ConnectionID())
	if err := conn.Close(); err != nil {
		p.logger.Warn("关闭连接失败", slog.Any("err", err))
	}
}

// Do 取一条连接跑 f，跑完自动归还
func (p *Pool) Do(ctx context.Context, f func(conn *Conn) error) error {
	conn, err := p.Get(ctx)
	if err != nil {
		return err
	}
	defer p.Put(conn)
	return f(conn)
}

// Close 关闭池子和全部存活连接，包括借出去还没归还的
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.idle = nil
	p.mu.Unlock()

	var err *multierror.Error
	p.conns.Range(func(id uint32, conn *Conn) bool {
		err = multierror.Append(err, conn.Close())
		p.conns.Delete(id)
		return true
	})
	return err.ErrorOrNil()
}
