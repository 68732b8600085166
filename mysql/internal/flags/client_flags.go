package flags

// CapabilityFlags 是客户端告诉服务端，它支持什么样的功能特性
// 握手阶段协商完成之后不再变化
type CapabilityFlags uint32

func (flags CapabilityFlags) Has(flag CapabilityFlag) bool {
	return uint32(flags)&uint32(flag) > 0
}

func (flags CapabilityFlags) Add(flag CapabilityFlag) CapabilityFlags {
	return flags | CapabilityFlags(flag)
}

// And 与服务端返回的 flags 求交集，得到最终协商结果
func (flags CapabilityFlags) And(other CapabilityFlags) CapabilityFlags {
	return flags & other
}

// CapabilityFlag
// https://dev.mysql.com/doc/dev/mysql-server/latest/group__group__cs__capabilities__flags.html
type CapabilityFlag uint32

const (
	ClientLongPassword CapabilityFlag = 1 << iota
	ClientFoundRows
	ClientLongFlag
	ClientConnectWithDB
	ClientNoSchema
	ClientCompress
	ClientODBC
	ClientLocalFiles
	ClientIgnoreSpace
	ClientProtocol41
	ClientInteractive
	ClientSSL
	ClientIgnoreSigpipe
	ClientTransactions
	ClientReserved
	ClientSecureConnection
	ClientMultiStatements
	ClientMultiResults
	ClientPSMultiResults
	ClientPluginAuth
	ClientConnectAttrs
	ClientPluginAuthLenencClientData
	ClientCanHandleExpiredPasswords
	ClientSessionTrack
	ClientDeprecateEOF
	ClientOptionalResultsetMetadata
	ClientZstdCompressionAlgorithm
	ClientQueryAttributes
	ClientMultiFactorAuthentication
	ClientCapabilityExtension
	ClientSSLVerifyServerCert
	ClientRememberOptions
)

// 客户端的 32 位特性空间被切成三份：必选、可配置、永不开启。
// 三者两两不相交，并集覆盖全部 32 位，connect 阶段据此计算请求的 flags。
const (
	// AlwaysEnabled 协议正确运行的前提，不开启这些我们的解析就是错的
	AlwaysEnabled = CapabilityFlags(ClientLongPassword) |
		CapabilityFlags(ClientLongFlag) |
		CapabilityFlags(ClientProtocol41) |
		CapabilityFlags(ClientTransactions) |
		CapabilityFlags(ClientSecureConnection) |
		CapabilityFlags(ClientMultiStatements) |
		CapabilityFlags(ClientMultiResults) |
		CapabilityFlags(ClientPSMultiResults) |
		CapabilityFlags(ClientPluginAuth) |
		CapabilityFlags(ClientPluginAuthLenencClientData) |
		CapabilityFlags(ClientDeprecateEOF)

	// Configurable 由连接配置决定是否请求
	Configurable = CapabilityFlags(ClientFoundRows) |
		CapabilityFlags(ClientConnectWithDB) |
		CapabilityFlags(ClientCompress) |
		CapabilityFlags(ClientSSL) |
		CapabilityFlags(ClientIgnoreSpace) |
		CapabilityFlags(ClientLocalFiles)

	// AlwaysDisabled 剩下的全部，永远不主动请求
	AlwaysDisabled = ^(AlwaysEnabled | Configurable)
)
