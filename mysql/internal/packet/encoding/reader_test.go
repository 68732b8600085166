package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meoying/dbclient/internal/errs"
)

func TestReadLengthEncodedInteger(t *testing.T) {
	tests := []struct {
		name          string
		input         []byte
		expected      uint64
		expectedRest  []byte
		errAssertFunc assert.ErrorAssertionFunc
	}{
		{
			name:          "单字节_0",
			input:         []byte{0x00},
			expected:      0,
			expectedRest:  []byte{},
			errAssertFunc: assert.NoError,
		},
		{
			name:          "单字节_250",
			input:         []byte{0xFA},
			expected:      250,
			expectedRest:  []byte{},
			errAssertFunc: assert.NoError,
		},
		{
			name:          "两字节_251",
			input:         []byte{0xFC, 0xFB, 0x00},
			expected:      251,
			expectedRest:  []byte{},
			errAssertFunc: assert.NoError,
		},
		{
			name:          "两字节_65535",
			input:         []byte{0xFC, 0xFF, 0xFF},
			expected:      65535,
			expectedRest:  []byte{},
			errAssertFunc: assert.NoError,
		},
		{
			name:          "三字节_65536",
			input:         []byte{0xFD, 0x00, 0x00, 0x01},
			expected:      65536,
			expectedRest:  []byte{},
			errAssertFunc: assert.NoError,
		},
		{
			name:          "三字节_16777215",
			input:         []byte{0xFD, 0xFF, 0xFF, 0xFF},
			expected:      1<<24 - 1,
			expectedRest:  []byte{},
			errAssertFunc: assert.NoError,
		},
		{
			name:          "八字节_16777216",
			input:         []byte{0xFE, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00},
			expected:      1 << 24,
			expectedRest:  []byte{},
			errAssertFunc: assert.NoError,
		},
		{
			name:          "后面带剩余字节",
			input:         []byte{0x05, 0xAA, 0xBB},
			expected:      5,
			expectedRest:  []byte{0xAA, 0xBB},
			errAssertFunc: assert.NoError,
		},
		{
			name:  "空输入",
			input: []byte{},
			errAssertFunc: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, errs.ErrUnexpectedEOF)
			},
		},
		{
			name:  "首字节0xFB保留",
			input: []byte{0xFB},
			errAssertFunc: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, errs.ErrInvalidPacket)
			},
		},
		{
			name:  "首字节0xFF保留",
			input: []byte{0xFF},
			errAssertFunc: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, errs.ErrInvalidPacket)
			},
		},
		{
			name:  "两字节前缀但字节不够",
			input: []byte{0xFC, 0x01},
			errAssertFunc: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, errs.ErrUnexpectedEOF)
			},
		},
		{
			name:  "八字节前缀但字节不够",
			input: []byte{0xFE, 0x01, 0x02, 0x03},
			errAssertFunc: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, errs.ErrUnexpectedEOF)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, rest, err := ReadLengthEncodedInteger(tt.input)
			tt.errAssertFunc(t, err)
			if err != nil {
				return
			}
			assert.Equal(t, tt.expected, value)
			assert.Equal(t, tt.expectedRest, rest)
		})
	}
}

// 写出来再读回去，编码和解码必须互逆
func TestLengthEncodedIntegerRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 250, 251, 65535, 65536, 1<<24 - 1, 1 << 24, 1<<40 + 7, 1<<64 - 1}
	for _, v := range values {
		encoded := LengthEncodeInteger(v)
		decoded, rest, err := ReadLengthEncodedInteger(encoded)
		assert.NoError(t, err)
		assert.Equal(t, v, decoded)
		assert.Empty(t, rest)
	}
}

func TestReadLengthEncodedString(t *testing.T) {
	t.Run("正常", func(t *testing.T) {
		input := append(LengthEncodeString("hello"), 0x01)
		s, rest, err := ReadLengthEncodedString(input)
		assert.NoError(t, err)
		assert.Equal(t, "hello", s)
		assert.Equal(t, []byte{0x01}, rest)
	})
	t.Run("长度超过剩余字节", func(t *testing.T) {
		_, _, err := ReadLengthEncodedString([]byte{0x05, 'a', 'b'})
		assert.ErrorIs(t, err, errs.ErrUnexpectedEOF)
	})
}

func TestReadNullTerminatedString(t *testing.T) {
	t.Run("正常", func(t *testing.T) {
		s, rest, err := ReadNullTerminatedString([]byte{'a', 'b', 0x00, 'c'})
		assert.NoError(t, err)
		assert.Equal(t, "ab", s)
		assert.Equal(t, []byte{'c'}, rest)
	})
	t.Run("没有结束符", func(t *testing.T) {
		_, _, err := ReadNullTerminatedString([]byte{'a', 'b'})
		assert.ErrorIs(t, err, errs.ErrUnexpectedEOF)
	})
}

func TestReadFixedLengthInteger(t *testing.T) {
	value, rest, err := ReadFixedLengthInteger([]byte{0xE8, 0x07, 0xFF}, 2)
	assert.NoError(t, err)
	assert.Equal(t, uint64(2024), value)
	assert.Equal(t, []byte{0xFF}, rest)

	_, _, err = ReadFixedLengthInteger([]byte{0x01}, 4)
	assert.ErrorIs(t, err, errs.ErrUnexpectedEOF)
}
