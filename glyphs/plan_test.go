package glyphs

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classicadventures/mixcreator/util"
)

func pairs(ps ...string) []Pair {
	var out []Pair
	for i := 0; i+1 < len(ps); i += 2 {
		out = append(out, Pair{From: ps[i], To: ps[i+1]})
	}
	return out
}

func TestNewPlan_Order(t *testing.T) {
	tests := []struct {
		name string
		in   []Pair
		want []Rule
	}{
		{
			name: "independent rules keep input order",
			in:   pairs("í", "Ά", "ñ", "¥", "â", "¦", "é", "§"),
			want: []Rule{{'í', 'Ά'}, {'ñ', '¥'}, {'â', '¦'}, {'é', '§'}},
		},
		{
			name: "chain is reversed",
			in:   pairs("a", "b", "b", "c"),
			want: []Rule{{'b', 'c'}, {'a', 'b'}},
		},
		{
			name: "longer chain",
			in:   pairs("a", "b", "b", "c", "c", "d"),
			want: []Rule{{'c', 'd'}, {'b', 'c'}, {'a', 'b'}},
		},
		{
			name: "already ordered",
			in:   pairs("b", "c", "a", "b"),
			want: []Rule{{'b', 'c'}, {'a', 'b'}},
		},
		{
			name: "self mapping",
			in:   pairs("x", "x", "y", "x"),
			want: []Rule{{'x', 'x'}, {'y', 'x'}},
		},
		{
			name: "empty",
			in:   nil,
			want: []Rule{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := NewPlan("SUBTLS_E", tt.in)
			require.NoError(t, err)
			assert.Equal(t, "SUBTLS_E", plan.Font)
			assert.Equal(t, tt.want, plan.Rules)
			assert.Zero(t, Conflicts(plan.Rules))
		})
	}
}

func TestNewPlan_Apply(t *testing.T) {
	plan, err := NewPlan("KIA6PT", pairs("a", "b", "b", "c"))
	require.NoError(t, err)

	// Every a becomes b and every b becomes c; no a ends up as c.
	assert.Equal(t, "bc", plan.Apply("ab"))
	assert.Equal(t, "xyz", plan.Apply("xyz"))
}

func TestNewPlan_Cycle(t *testing.T) {
	tests := []struct {
		name string
		in   []Pair
	}{
		{"swap", pairs("a", "b", "b", "a")},
		{"three way", pairs("a", "b", "b", "c", "c", "a")},
		{"cycle behind a chain", pairs("z", "a", "a", "b", "b", "a")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPlan("TAHOMA", tt.in)
			var ce *ConfigError
			require.ErrorAs(t, err, &ce)
			assert.True(t, errors.Is(err, util.ErrConfiguration))
			assert.Contains(t, err.Error(), "TAHOMA")
		})
	}
}

func TestNewPlan_InvalidPair(t *testing.T) {
	tests := []struct {
		name string
		in   []Pair
	}{
		{"empty source", pairs("", "a")},
		{"empty delegate", pairs("a", "")},
		{"two characters", pairs("ab", "c")},
		{"invalid utf-8", pairs("\xff", "c")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPlan("KIA6PT", tt.in)
			assert.ErrorIs(t, err, util.ErrConfiguration)
		})
	}
}

func TestNewPlan_RandomRuleSets(t *testing.T) {
	alphabet := []rune("abcdefg")
	r := rand.New(rand.NewPCG(42, 1997))

	planned := 0
	for round := 0; round < 2000; round++ {
		var in []Pair
		for n := r.IntN(7); n > 0; n-- {
			in = append(in, Pair{
				From: string(alphabet[r.IntN(len(alphabet))]),
				To:   string(alphabet[r.IntN(len(alphabet))]),
			})
		}

		plan, err := NewPlan("F", in)
		if err != nil {
			require.ErrorIs(t, err, util.ErrConfiguration, "round %d", round)
			continue
		}
		planned++
		require.Len(t, plan.Rules, len(in), "round %d: rules dropped", round)
		require.Zero(t, Conflicts(plan.Rules), "round %d: %v", round, plan.Rules)
	}
	assert.Greater(t, planned, 0)
}

func TestPlansFor(t *testing.T) {
	plan, err := NewPlan("KIA6PT", pairs("é", "§"))
	require.NoError(t, err)
	plans := Plans{"KIA6PT": plan}

	assert.Equal(t, plan, plans.For("kia6pt"))

	empty := plans.For("TAHOMA")
	assert.Equal(t, "TAHOMA", empty.Font)
	assert.Empty(t, empty.Rules)
	assert.Equal(t, "unchanged", empty.Apply("unchanged"))
}

func TestNewPlan_NormalizesPairs(t *testing.T) {
	// OHM SIGN and a decomposed e-acute only ever reach the plan in their
	// composed forms, so the rules must use those forms too.
	plan, err := NewPlan("SUBTLS_E", pairs("\u2126", "#", "e\u0301", "§"))
	require.NoError(t, err)
	assert.Equal(t, []Rule{{'\u03A9', '#'}, {'é', '§'}}, plan.Rules)
	assert.Equal(t, "# caf§", plan.Apply("\u03A9 caf\u00e9"))
}
