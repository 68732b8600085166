package mysql

import (
	"github.com/meoying/dbclient/mysql/internal/flags"
	"github.com/meoying/dbclient/mysql/internal/packet"
)

// 协议相关的枚举定义在 internal 包里，这里起别名并重导出常量，
// 调用方不需要也不能直接引用 internal 包
type (
	ColumnType      = packet.MySQLType
	ColumnFlag      = packet.ColumnFlag
	CapabilityFlags = flags.CapabilityFlags
	ServerStatus    = flags.SeverStatus
)

const (
	TypeDecimal    = packet.MySQLTypeDecimal
	TypeTiny       = packet.MySQLTypeTiny
	TypeShort      = packet.MySQLTypeShort
	TypeLong       = packet.MySQLTypeLong
	TypeFloat      = packet.MySQLTypeFloat
	TypeDouble     = packet.MySQLTypeDouble
	TypeNULL       = packet.MySQLTypeNULL
	TypeTimestamp  = packet.MySQLTypeTimestamp
	TypeLongLong   = packet.MySQLTypeLongLong
	TypeInt24      = packet.MySQLTypeInt24
	TypeDate       = packet.MySQLTypeDate
	TypeTime       = packet.MySQLTypeTime
	TypeDatetime   = packet.MySQLTypeDatetime
	TypeYear       = packet.MySQLTypeYear
	TypeVarchar    = packet.MySQLTypeVarchar
	TypeBit        = packet.MySQLTypeBit
	TypeJSON       = packet.MySQLTypeJSON
	TypeNewDecimal = packet.MySQLTypeNewDecimal
	TypeEnum       = packet.MySQLTypeEnum
	TypeSet        = packet.MySQLTypeSet
	TypeTinyBlob   = packet.MySQLTypeTinyBlob
	TypeMediumBlob = packet.MySQLTypeMediumBlob
	TypeLongBlob   = packet.MySQLTypeLongBlob
	TypeBlob       = packet.MySQLTypeBlob
	TypeVarString  = packet.MySQLTypeVarString
	TypeString     = packet.MySQLTypeString
	TypeGeometry   = packet.MySQLTypeGeometry
)

const (
	FlagNotNull       = packet.ColumnFlagNotNull
	FlagPriKey        = packet.ColumnFlagPriKey
	FlagUniqueKey     = packet.ColumnFlagUniqueKey
	FlagBlob          = packet.ColumnFlagBlob
	FlagUnsigned      = packet.ColumnFlagUnsigned
	FlagZerofill      = packet.ColumnFlagZerofill
	FlagBinary        = packet.ColumnFlagBinary
	FlagAutoIncrement = packet.ColumnFlagAutoIncrement
)
