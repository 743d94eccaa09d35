package tracegraph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awmpietro/palindrome-trace/internal/palindrome"
)

func TestBuild_CountsTransitions(t *testing.T) {
	tr, _, err := palindrome.Visualize("ab", string(palindrome.BruteForce))
	require.NoError(t, err)

	g := Build(tr)
	assert.Equal(t, "brute_force", g.Name)
	assert.Equal(t, []palindrome.Kind{
		palindrome.KindInit, palindrome.KindLoopI, palindrome.KindSelect, palindrome.KindCheck,
		palindrome.KindUpdateMax, palindrome.KindCompare, palindrome.KindMismatch, palindrome.KindFound,
	}, g.Kinds)

	assert.Equal(t, 2, g.Visits[palindrome.KindLoopI])
	assert.Equal(t, 3, g.Visits[palindrome.KindSelect])
	assert.Equal(t, 3, g.Counts[Transition{From: palindrome.KindSelect, To: palindrome.KindCheck}])
	assert.Equal(t, 1, g.Counts[Transition{From: palindrome.KindMismatch, To: palindrome.KindLoopI}])
	assert.Equal(t, Transition{From: palindrome.KindInit, To: palindrome.KindLoopI}, g.Order[0])

	total := 0
	for _, n := range g.Counts {
		total += n
	}
	assert.Equal(t, tr.Len()-1, total)
}

func TestExport_RoundTrip(t *testing.T) {
	for _, algo := range palindrome.Algorithms() {
		t.Run(string(algo), func(t *testing.T) {
			tr, _, err := palindrome.Visualize("abacaba", string(algo))
			require.NoError(t, err)

			dot, err := Export(tr)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(dot, "digraph"))

			want := Build(tr)
			got, err := Parse(dot)
			require.NoError(t, err)
			assert.Equal(t, want.Name, got.Name)
			assert.Equal(t, want.Visits, got.Visits)
			assert.Equal(t, want.Counts, got.Counts)
			assert.ElementsMatch(t, want.Kinds, got.Kinds)
		})
	}
}

func TestBuild_EmptyInput(t *testing.T) {
	tr, _, err := palindrome.Visualize("", string(palindrome.Manacher))
	require.NoError(t, err)

	g := Build(tr)
	assert.Len(t, g.Kinds, 2)
	assert.Equal(t, []Transition{{From: palindrome.KindInit, To: palindrome.KindFound}}, g.Order)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse("digraph {")
	require.Error(t, err)

	_, err = Parse(`digraph g { init [comment="x"]; }`)
	require.Error(t, err)
}
