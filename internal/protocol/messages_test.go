package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeekType(t *testing.T) {
	data, err := Marshal(&Action{Type: TypeAction, Action: ActionHit, Hand: 0})
	require.NoError(t, err)

	typ, err := PeekType(data)
	require.NoError(t, err)
	assert.Equal(t, TypeAction, typ)
}

func TestPeekTypeRejectsUnknown(t *testing.T) {
	_, err := PeekType([]byte(`{"type":"raise"}`))
	assert.ErrorIs(t, err, ErrUnknownMessageType)
}

func TestPeekTypeRejectsMissingType(t *testing.T) {
	_, err := PeekType([]byte(`{"amount":10}`))
	assert.ErrorIs(t, err, ErrUnknownMessageType)
}

func TestPeekTypeRejectsMalformedJSON(t *testing.T) {
	_, err := PeekType([]byte(`{"type":`))
	assert.Error(t, err)
}

func TestStateRoundTrip(t *testing.T) {
	in := &State{
		Type:      TypeState,
		GameState: "player",
		Holdings:  480,
		NextBet:   5,
		Dealer: &HandView{
			Cards: []string{"9♥", "??"},
			Score: 9,
			State: "single",
		},
		Hands: []HandView{
			{Cards: []string{"A♠", "7♦"}, Score: 18, Bet: 20, State: "pair"},
		},
		Remaining: 48,
	}

	data, err := Marshal(in)
	require.NoError(t, err)

	var out State
	require.NoError(t, Unmarshal(data, &out))
	assert.Equal(t, in, &out)
}

func TestOmittedFieldsStayCompact(t *testing.T) {
	data, err := Marshal(&State{Type: TypeState, GameState: "pregame", Holdings: 500, NextBet: 5})
	require.NoError(t, err)

	assert.NotContains(t, string(data), "dealer")
	assert.NotContains(t, string(data), "hands")
	assert.NotContains(t, string(data), "outcome")
}
