package flags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// 三个分区必须两两不相交，并集覆盖全部 32 位，
// 否则协商阶段会漏掉或者重复请求某些能力
func TestCapabilityPartition(t *testing.T) {
	assert.Zero(t, AlwaysEnabled&Configurable, "必选和可配置有交集")
	assert.Zero(t, AlwaysEnabled&AlwaysDisabled, "必选和禁用有交集")
	assert.Zero(t, Configurable&AlwaysDisabled, "可配置和禁用有交集")
	assert.Equal(t, ^CapabilityFlags(0), AlwaysEnabled|Configurable|AlwaysDisabled)
}

func TestCapabilityFlags_Has(t *testing.T) {
	f := CapabilityFlags(0).Add(ClientProtocol41).Add(ClientDeprecateEOF)
	assert.True(t, f.Has(ClientProtocol41))
	assert.True(t, f.Has(ClientDeprecateEOF))
	assert.False(t, f.Has(ClientSSL))
}

func TestCapabilityFlags_And(t *testing.T) {
	server := CapabilityFlags(ClientProtocol41) | CapabilityFlags(ClientSSL)
	client := CapabilityFlags(ClientProtocol41) | CapabilityFlags(ClientDeprecateEOF)
	negotiated := client.And(server)
	assert.True(t, negotiated.Has(ClientProtocol41))
	assert.False(t, negotiated.Has(ClientSSL))
	assert.False(t, negotiated.Has(ClientDeprecateEOF))
}
