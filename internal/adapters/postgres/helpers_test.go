package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNullHelpers(t *testing.T) {
	assert.False(t, nullText("").Valid)
	assert.Equal(t, "x", nullText("x").String)

	assert.False(t, nullInt4(nil).Valid)
	code := 8
	assert.Equal(t, int32(8), nullInt4(&code).Int32)
	assert.Equal(t, &code, intPtr(nullInt4(&code)))
	assert.Nil(t, intPtr(nullInt4(nil)))

	var amount int64 = 1250
	assert.True(t, nullInt8(&amount).Valid)
	assert.Equal(t, &amount, int64Ptr(nullInt8(&amount)))
	assert.Nil(t, int64Ptr(nullInt8(nil)))
}
