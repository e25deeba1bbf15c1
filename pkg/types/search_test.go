package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRoomDetailsDropsZeroChildRooms(t *testing.T) {
	input := []RoomDetail{
		{AdultCount: 2, ChildCount: 1, Children: []int{6}},
		{AdultCount: 1, ChildCount: 0, Children: []int{}},
	}

	normalized, adults, children := NormalizeRoomDetails(input)

	require.Len(t, normalized, 2)
	assert.Equal(t, 3, adults)
	assert.Equal(t, 1, children)

	assert.Equal(t, 1, normalized[0].ChildCount)
	assert.Equal(t, []int{6}, normalized[0].Children)
	assert.Zero(t, normalized[1].ChildCount)
	assert.Nil(t, normalized[1].Children)

	raw, err := json.Marshal(normalized)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"child_count":0`)

	var rooms []map[string]any
	require.NoError(t, json.Unmarshal(raw, &rooms))
	assert.NotContains(t, rooms[1], "child_count")
	assert.NotContains(t, rooms[1], "children")
	assert.Contains(t, rooms[0], "child_count")
}

func TestNormalizeRoomDetailsDoesNotMutateInput(t *testing.T) {
	input := []RoomDetail{
		{AdultCount: 2, ChildCount: 2, Children: []int{4, 9}},
		{AdultCount: 1, ChildCount: 0, Children: []int{}},
	}

	normalized, _, _ := NormalizeRoomDetails(input)

	normalized[0].AdultCount = 99
	normalized[0].Children[0] = 99

	assert.Equal(t, 2, input[0].AdultCount)
	assert.Equal(t, []int{4, 9}, input[0].Children)
	assert.NotNil(t, input[1].Children)
}
