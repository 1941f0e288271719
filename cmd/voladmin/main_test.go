package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommands_TableIsConsistent(t *testing.T) {
	for key, cmd := range commands() {
		assert.Equal(t, key, cmd.name, "map key must match command name")
		assert.NotEmpty(t, cmd.description)
		assert.NotNil(t, cmd.run)
	}
}

func TestParseIDList(t *testing.T) {
	ids, err := parseIDList("3, 1,2")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2}, ids)

	ids, err = parseIDList("")
	require.NoError(t, err)
	assert.Nil(t, ids)

	_, err = parseIDList("1,x")
	assert.Error(t, err)

	_, err = parseIDList("0")
	assert.Error(t, err)
}

func TestArgID(t *testing.T) {
	id, err := argID([]string{"42"})
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	_, err = argID(nil)
	assert.Error(t, err)

	_, err = argID([]string{"42", "43"})
	assert.Error(t, err)

	_, err = argID([]string{"-1"})
	assert.Error(t, err)
}
