package mysql

import (
	"bufio"
	"context"
	"crypto/tls"
	"fmt"

	"github.com/meoying/dbclient/internal/errs"
	"github.com/meoying/dbclient/mysql/internal/auth"
	"github.com/meoying/dbclient/mysql/internal/flags"
	"github.com/meoying/dbclient/mysql/internal/packet"
	"github.com/meoying/dbclient/mysql/internal/packet/builder"
	"github.com/meoying/dbclient/mysql/internal/packet/parser"
)

// handshake 完成连接阶段的状态机
// 服务端先发 HandshakeV10，客户端（可选地先升级 TLS）回
// HandshakeResponse41，之后在 OK、ERR、auth switch、auth more data
// 之间流转，直到 OK 或者出错
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_connection_phase.html
func (c *Conn) handshake(ctx context.Context) error {
	if err := c.applyDeadline(ctx); err != nil {
		return err
	}

	payload, err := c.readPacket()
	if err != nil {
		return err
	}
	if len(payload) == 0 {
		return fmt.Errorf("%w，收到空报文", errs.ErrInvalidPacket)
	}
	// 服务端可能一上来就拒绝，比如超过 max_connections
	if payload[0] == packet.HeaderErr {
		return newServerError(payload)
	}

	var hs parser.HandshakeV10
	if err = hs.Parse(payload); err != nil {
		return err
	}
	c.serverVersion = hs.ServerVersion
	c.connectionID = hs.ConnectionID
	c.status = hs.StatusFlags

	requested, err := c.requestedFlags(hs.CapabilityFlags)
	if err != nil {
		return err
	}
	c.capabilities = requested

	if c.cfg.TLS {
		if err = c.upgradeTLS(requested); err != nil {
			return err
		}
	}

	plugin := hs.AuthPluginName
	if plugin == "" {
		plugin = packet.AuthNativePassword
	}
	// 未知插件在这里就失败，一个字节都不会写出去
	authResp, err := auth.Response(plugin, c.cfg.Password, hs.AuthPluginData)
	if err != nil {
		return err
	}

	resp := builder.HandshakeResponse41{
		ClientFlags:    requested,
		MaxPacketSize:  packet.MaxPacketSize,
		CharacterSet:   byte(packet.CharSetUtf8mb4GeneralCi),
		Username:       c.cfg.User,
		AuthResponse:   authResp,
		Database:       c.cfg.Database,
		AuthPluginName: plugin,
	}
	if err = c.writePacket(resp.Build()); err != nil {
		return err
	}

	return c.authLoop(plugin)
}

// requestedFlags 算出要向服务端请求的能力集
// 必选位全开，可配置位按连接配置开，其余永远不开，
// 最后和服务端支持的求交集
func (c *Conn) requestedFlags(server flags.CapabilityFlags) (flags.CapabilityFlags, error) {
	if !server.Has(flags.ClientProtocol41) {
		return 0, fmt.Errorf("%w，服务端不支持 CLIENT_PROTOCOL_41", errs.ErrInvalidPacket)
	}

	configured := flags.CapabilityFlags(0)
	if c.cfg.Database != "" {
		configured = configured.Add(flags.ClientConnectWithDB)
	}
	if c.cfg.TLS {
		configured = configured.Add(flags.ClientSSL)
	}

	requested := (flags.AlwaysEnabled | configured).And(server)

	if c.cfg.TLS && !requested.Has(flags.ClientSSL) {
		return 0, fmt.Errorf("%w，服务端不支持 TLS", errs.ErrInvalidConn)
	}
	if c.cfg.Database != "" && !requested.Has(flags.ClientConnectWithDB) {
		return 0, fmt.Errorf("%w，服务端不支持 CONNECT_WITH_DB", errs.ErrInvalidConn)
	}
	return requested, nil
}

// upgradeTLS 先发一个 SSLRequest 短包，然后在裸连接上做 TLS 握手
// 序号接着短包继续计数
func (c *Conn) upgradeTLS(requested flags.CapabilityFlags) error {
	req := builder.SSLRequest{
		ClientFlags:   requested,
		MaxPacketSize: packet.MaxPacketSize,
		CharacterSet:  byte(packet.CharSetUtf8mb4GeneralCi),
	}
	if err := c.writePacket(req.Build()); err != nil {
		return err
	}

	tlsConn := tls.Client(c.conn, &tls.Config{
		ServerName: c.cfg.Host,
		MinVersion: tls.VersionTLS12,
	})
	if err := tlsConn.Handshake(); err != nil {
		return fmt.Errorf("%w，TLS 握手失败: %w", errs.ErrInvalidConn, err)
	}
	c.conn = tlsConn
	c.reader = bufio.NewReader(tlsConn)
	return nil
}

// authLoop 鉴权阶段的响应循环
func (c *Conn) authLoop(plugin string) error {
	for {
		payload, err := c.readPacket()
		if err != nil {
			return err
		}
		if len(payload) == 0 {
			return fmt.Errorf("%w，鉴权阶段收到空报文", errs.ErrInvalidPacket)
		}
		switch payload[0] {
		case packet.HeaderOK:
			_, err = c.parseOK(payload)
			return err
		case packet.HeaderErr:
			return newServerError(payload)
		case packet.HeaderEOF:
			// auth switch，换插件重新算一遍
			var req parser.AuthSwitchRequest
			if err = req.Parse(payload); err != nil {
				return err
			}
			plugin = req.PluginName
			authResp, err1 := auth.Response(plugin, c.cfg.Password, req.PluginData)
			if err1 != nil {
				return err1
			}
			resp := builder.AuthSwitchResponse{AuthResponse: authResp}
			if err = c.writePacket(resp.Build()); err != nil {
				return err
			}
		case packet.HeaderAuthMore:
			var more parser.AuthMoreData
			if err = more.Parse(payload); err != nil {
				return err
			}
			if err = c.handleAuthMoreData(plugin, more.Data); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w，鉴权阶段收到未知报文 %#x", errs.ErrInvalidPacket, payload[0])
		}
	}
}

// handleAuthMoreData caching_sha2_password 的快速鉴权子协议
// 0x03 表示缓存命中，后面跟最终的 OK；0x04 要求走 RSA/TLS 的
// 完整流程，我们不支持
func (c *Conn) handleAuthMoreData(plugin string, data []byte) error {
	if plugin != packet.AuthCachingSha2Password {
		return fmt.Errorf("%w，插件 %s 不应该收到 auth more data", errs.ErrInvalidPacket, plugin)
	}
	if len(data) != 1 {
		return fmt.Errorf("%w，快速鉴权结果长度非法 %d", errs.ErrInvalidPacket, len(data))
	}
	switch data[0] {
	case packet.CachingSha2FastAuthSuccess:
		return nil
	case packet.CachingSha2PerformFullAuth:
		return errs.ErrFullAuthUnsupported
	default:
		return fmt.Errorf("%w，未知的快速鉴权结果 %#x", errs.ErrInvalidPacket, data[0])
	}
}
