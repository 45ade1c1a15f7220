package issuer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Register(t *testing.T) {
	t.Run("preserves registration order", func(t *testing.T) {
		reg := NewRegistry()
		for _, p := range BuiltinProfiles() {
			require.NoError(t, reg.Register(p))
		}

		ids := make([]ID, 0, 5)
		for _, p := range reg.Profiles() {
			ids = append(ids, p.ID)
		}
		assert.Equal(t, []ID{AmericanExpress, Chase, Citi, BankOfAmerica, HSBC}, ids)
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, reg.Register(&Profile{ID: "acme"}))
		assert.ErrorIs(t, reg.Register(&Profile{ID: "acme"}), ErrDuplicateIssuer)
	})

	t.Run("rejects the reserved unknown id", func(t *testing.T) {
		reg := NewRegistry()
		assert.Error(t, reg.Register(&Profile{ID: Unknown}))
	})

	t.Run("is sealed after Build", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, reg.Register(&Profile{ID: "acme"}))
		require.NoError(t, reg.Build())

		assert.True(t, reg.Sealed())
		assert.ErrorIs(t, reg.Register(&Profile{ID: "other"}), ErrRegistrySealed)
	})

	t.Run("Build surfaces invalid rule patterns", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, reg.Register(&Profile{
			ID: "broken",
			Rules: map[Field][]Rule{
				FieldDueDate: {{Pattern: `([unclosed`, Priority: 1}},
			},
		}))
		assert.Error(t, reg.Build())
	})
}

func TestNewDefaultRegistry(t *testing.T) {
	reg := NewDefaultRegistry()

	assert.True(t, reg.Sealed())
	assert.Len(t, reg.Profiles(), 5)
	require.NotNil(t, reg.Get(Chase))
	assert.Equal(t, "Chase", reg.Get(Chase).DisplayName)
	assert.Nil(t, reg.Get("nope"))

	// Rules compiled at build time.
	rules := reg.Get(Chase).Rules[FieldDueDate]
	require.NotEmpty(t, rules)
	assert.NotNil(t, rules[0].Regexp())
}

func TestProfile_Fields(t *testing.T) {
	p := BuiltinProfiles()[0]
	fields := p.Fields()

	// Required fields always come first, in fixed order.
	assert.Equal(t, RequiredFields(), fields[:5])
	assert.Contains(t, fields, FieldCardVariant)

	bare := &Profile{ID: "bare"}
	assert.Equal(t, RequiredFields(), bare.Fields())
}

func TestSignature_EffectiveWeight(t *testing.T) {
	assert.Equal(t, 5, Signature{Pattern: "x", Weight: 5}.effectiveWeight())
	// Longer literals are more specific and weigh more.
	long := Signature{Pattern: "american express"}.effectiveWeight()
	short := Signature{Pattern: "amex"}.effectiveWeight()
	assert.Greater(t, long, short)
}
