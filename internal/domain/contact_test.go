package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseContacts_Valid(t *testing.T) {
	raw := `[{"name":"A","phone":"111","relation":"Child"},{"name":"B","phone":"222","relation":"Doctor"}]`

	contacts, ok := ParseContacts(raw)

	assert.True(t, ok)
	assert.Len(t, contacts, 2)
	assert.Equal(t, "A", contacts[0].Name)
	assert.Equal(t, "111", contacts[0].Phone)
	assert.Equal(t, "Child", contacts[0].Relation)
	assert.Equal(t, "222", contacts[1].Phone)
}

func TestParseContacts_Empty(t *testing.T) {
	contacts, ok := ParseContacts("")

	assert.True(t, ok)
	assert.Empty(t, contacts)
}

func TestParseContacts_Malformed(t *testing.T) {
	// 解析失败 -> 空列表 + ok=false（软失败，调用方记录日志）
	contacts, ok := ParseContacts(`{"name": broken`)

	assert.False(t, ok)
	assert.Empty(t, contacts)
}

func TestParseContacts_NullJSON(t *testing.T) {
	contacts, ok := ParseContacts("null")

	assert.True(t, ok)
	assert.NotNil(t, contacts)
	assert.Empty(t, contacts)
}

func TestParseContacts_MissingFields(t *testing.T) {
	// 缺字段的条目保留（电话为空的联系人由分发端跳过）
	contacts, ok := ParseContacts(`[{"name":"A","phone":"111"},{"phone":""}]`)

	assert.True(t, ok)
	assert.Len(t, contacts, 2)
	assert.Equal(t, "", contacts[1].Phone)
}
