package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meoying/dbclient/internal/errs"
)

func TestErrorPacket_Parse(t *testing.T) {
	tests := []struct {
		name          string
		payload       []byte
		expected      ErrorPacket
		errAssertFunc assert.ErrorAssertionFunc
	}{
		{
			name: "带sql_state",
			payload: []byte{
				0xFF,       // header
				0x48, 0x04, // 错误码 1096
				0x23,                         // sql state marker
				0x48, 0x59, 0x30, 0x30, 0x30, // HY000
				0x4E, 0x6F, 0x20, 0x74, 0x61, 0x62, 0x6C, 0x65,
				0x73, 0x20, 0x75, 0x73, 0x65, 0x64, // No tables used
			},
			expected: ErrorPacket{
				Code:     1096,
				SQLState: "HY000",
				Message:  "No tables used",
			},
			errAssertFunc: assert.NoError,
		},
		{
			name: "不带sql_state",
			payload: append([]byte{
				0xFF,
				0x15, 0x04, // 1045
			}, []byte("Access denied")...),
			expected: ErrorPacket{
				Code:    1045,
				Message: "Access denied",
			},
			errAssertFunc: assert.NoError,
		},
		{
			name:    "header非法",
			payload: []byte{0x00, 0x48, 0x04},
			errAssertFunc: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, errs.ErrInvalidPacket)
			},
		},
		{
			name:    "包被截断",
			payload: []byte{0xFF, 0x48},
			errAssertFunc: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, errs.ErrUnexpectedEOF)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pkt ErrorPacket
			err := pkt.Parse(tt.payload)
			tt.errAssertFunc(t, err)
			if err != nil {
				return
			}
			assert.Equal(t, tt.expected, pkt)
		})
	}
}
