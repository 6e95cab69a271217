package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	t.Run("case accents and punctuation collapse", func(t *testing.T) {
		want := "dolarmep"
		assert.Equal(t, want, NormalizeName("Dólar MEP"))
		assert.Equal(t, want, NormalizeName("dolar mep"))
		assert.Equal(t, want, NormalizeName("DOLAR-MEP"))
	})

	t.Run("idempotent", func(t *testing.T) {
		for _, raw := range []string{"YPF S.A.", "Pampa Energía", "AL30D", "  ", "Ñandú 2030"} {
			once := NormalizeName(raw)
			assert.Equal(t, once, NormalizeName(once), raw)
		}
	})

	t.Run("keeps digits", func(t *testing.T) {
		assert.Equal(t, "al30", NormalizeName("AL 30"))
	})
}

func TestFoldName(t *testing.T) {
	assert.Equal(t, "ypf s.a.", FoldName("  YPF   S.A. "))
	assert.Equal(t, "dolar mep", FoldName("Dólar MEP"))
	assert.NotEqual(t, FoldName("YPF S.A."), FoldName("YPFSA"))
}

func TestToggleSuffixD(t *testing.T) {
	assert.Equal(t, "ypf", ToggleSuffixD("ypfd"))
	assert.Equal(t, "ypfd", ToggleSuffixD("ypf"))
	assert.Equal(t, "", ToggleSuffixD(""))
	assert.Equal(t, "al30", ToggleSuffixD(ToggleSuffixD("al30")))
}
