package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestName(t *testing.T) {
	require.NoError(t, Name("Ana"))
	assert.Error(t, Name(""))
	assert.Error(t, Name("   "))
	assert.Error(t, Name(strings.Repeat("x", 256)))
	assert.NoError(t, Name(strings.Repeat("x", 255)))
}

func TestDreamDate(t *testing.T) {
	assert.NoError(t, DreamDate(nil))
	assert.NoError(t, DreamDate(strptr("2026-08-24")))
	assert.Error(t, DreamDate(strptr("24-08-2026")))
	assert.Error(t, DreamDate(strptr("2026-13-01")))
	assert.Error(t, DreamDate(strptr("not a date")))
}

func TestCreatePerson(t *testing.T) {
	require.NoError(t, CreatePerson(strptr("Ana"), nil, nil))
	assert.Error(t, CreatePerson(nil, nil, nil))
	assert.Error(t, CreatePerson(strptr(""), nil, nil))

	long := strings.Repeat("d", 2001)
	assert.Error(t, CreatePerson(strptr("Ana"), &long, nil))

	longURL := strings.Repeat("u", 501)
	assert.Error(t, CreatePerson(strptr("Ana"), nil, &longURL))
}

func TestCreateTag(t *testing.T) {
	require.NoError(t, CreateTag(strptr("lucid"), strptr("aware while dreaming")))
	assert.Error(t, CreateTag(nil, nil))
}

func TestCreateDream(t *testing.T) {
	require.NoError(t, CreateDream(strptr("flying over a city"), nil))
	require.NoError(t, CreateDream(strptr("flying"), strptr("2026-08-24")))
	assert.Error(t, CreateDream(nil, nil))
	assert.Error(t, CreateDream(strptr("  "), nil))
	assert.Error(t, CreateDream(strptr("flying"), strptr("yesterday")))

	long := strings.Repeat("z", 10001)
	assert.Error(t, CreateDream(&long, nil))
}
