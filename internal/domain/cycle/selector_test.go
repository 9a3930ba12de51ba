package cycle

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRoleAndTone(t *testing.T) {
	require.Equal(t, RolePartner, NormalizeRole("partner"))
	require.Equal(t, RoleSelf, NormalizeRole(" Partner "))
	require.Equal(t, RoleSelf, NormalizeRole("PARTNER"))
	require.Equal(t, RoleSelf, NormalizeRole("partner "))
	require.Equal(t, RoleSelf, NormalizeRole("self"))
	require.Equal(t, RoleSelf, NormalizeRole("other"))
	require.Equal(t, RoleSelf, NormalizeRole(""))

	require.Equal(t, TonePlayful, NormalizeTone("playful"))
	require.Equal(t, ToneGentle, NormalizeTone("PLAYFUL"))
	require.Equal(t, ToneGentle, NormalizeTone(" playful"))
	require.Equal(t, ToneGentle, NormalizeTone("sarcastic"))
	require.Equal(t, ToneGentle, NormalizeTone(""))
}

func TestAdviceSeed(t *testing.T) {
	require.Equal(t, "luteal-partner-gentle-2024-01-20-20", AdviceSeed(PhaseLuteal, RolePartner, ToneGentle, "2024-01-20-20"))
}

func TestSelectAdviceIsReproducible(t *testing.T) {
	lib := testLibrary()
	first := SelectAdvice(lib, PhaseLuteal, RolePartner, ToneGentle, "2024-01-20-20")
	for i := 0; i < 20; i++ {
		got := SelectAdvice(lib, PhaseLuteal, RolePartner, ToneGentle, "2024-01-20-20")
		if diff := cmp.Diff(first, got); diff != "" {
			t.Fatalf("selection changed between calls (-first +got):\n%s", diff)
		}
	}
	// A freshly decoded copy of the same content gives the same pick.
	require.Equal(t, first, SelectAdvice(testLibrary(), PhaseLuteal, RolePartner, ToneGentle, "2024-01-20-20"))
}

// Picks for fixed seeds are frozen; changing the hash or generator breaks stored expectations.
func TestSeededIndexIsStable(t *testing.T) {
	cases := []struct {
		seed string
		n    int
		want int
	}{
		{"luteal-partner-gentle-2024-01-20-20", 3, 1},
		{"luteal-partner-gentle-2024-01-20-20", 5, 2},
		{"luteal-self-gentle-x", 2, 1},
		{"luteal-self-gentle-x", 3, 0},
		{"menstruation-self-gentle-2024-01-01-1", 5, 4},
		{"ovulation-self-playful-2024-05-0", 5, 1},
		{"ovulation-self-playful-2024-05-1", 5, 3},
		{"ovulation-self-playful-2024-05-2", 5, 2},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, seededIndex(tc.seed, tc.n), "%s/%d", tc.seed, tc.n)
	}
}

func TestSelectAdviceFixedSeedsPickFixedVariants(t *testing.T) {
	lib := testLibrary()
	require.Equal(t, "be specific", SelectAdvice(lib, PhaseLuteal, RolePartner, ToneGentle, "2024-01-20-20").Headline)
	require.Equal(t, "sleep early", SelectAdvice(lib, PhaseLuteal, RoleSelf, ToneGentle, "x").Headline)
	// playful pool order: promoted variant, then ov one..four
	require.Equal(t, "ov one", SelectAdvice(lib, PhaseOvulation, RoleSelf, TonePlayful, "2024-05-0").Headline)
	require.Equal(t, "ov three", SelectAdvice(lib, PhaseOvulation, RoleSelf, TonePlayful, "2024-05-1").Headline)
	require.Equal(t, "ov two", SelectAdvice(lib, PhaseOvulation, RoleSelf, TonePlayful, "2024-05-2").Headline)
}

func TestSelectAdviceVariesWithContext(t *testing.T) {
	lib := testLibrary()
	seen := map[string]struct{}{}
	for day := 1; day <= 28; day++ {
		advice := SelectAdvice(lib, PhaseLuteal, RolePartner, ToneGentle, fmt.Sprintf("2024-03-%02d-%d", day, day))
		seen[advice.Headline] = struct{}{}
	}
	require.Greater(t, len(seen), 1)
}

func TestSelectAdviceFallsBackToFollicular(t *testing.T) {
	lib := testLibrary()
	advice := SelectAdvice(lib, PhaseMenstruation, RolePartner, ToneGentle, "seed")
	headlines := []string{"plan a date", "cheer her on"}
	require.Contains(t, headlines, advice.Headline)
	require.NotEmpty(t, advice.Tips)
	require.Empty(t, advice.Items)
}

func TestSelectAdviceDoesNotShareLibraryMemory(t *testing.T) {
	lib := testLibrary()
	advice := SelectAdvice(lib, PhaseFollicular, RoleSelf, ToneGentle, "seed")
	advice.Items[0] = "mutated"
	for _, v := range lib.Advice[RoleSelf][PhaseFollicular] {
		require.NotEqual(t, "mutated", v.Items[0])
	}
}

func TestPromotePlayful(t *testing.T) {
	lib := testLibrary()
	pool := promotePlayful(lib.Variants(PhaseOvulation, RoleSelf), lib.Playful)
	require.Len(t, pool, 5)
	require.Equal(t, "playful mode on, respect boundaries", pool[0].Headline)
	require.Equal(t, []string{"ov one", "ov two", "ov three", "ov four"},
		[]string{pool[1].Headline, pool[2].Headline, pool[3].Headline, pool[4].Headline})
	// The library itself keeps the original headline.
	require.Equal(t, "if you go playful, respect boundaries", lib.Advice[RoleSelf][PhaseOvulation][4].Headline)
}

func TestPromotePlayfulWithoutMarker(t *testing.T) {
	lib := testLibrary()
	pool := lib.Variants(PhaseLuteal, RoleSelf)
	require.Equal(t, pool, promotePlayful(pool, lib.Playful))
	require.Equal(t, pool, promotePlayful(pool, PlayfulRewrite{}))
}

func TestSelectAdvicePlayfulOnlyReordersPool(t *testing.T) {
	lib := testLibrary()
	promoted := promotePlayful(lib.Variants(PhaseOvulation, RoleSelf), lib.Playful)
	playfulHits, otherHits := 0, 0
	for i := 0; i < 60; i++ {
		extra := fmt.Sprintf("2024-05-%d", i)
		got := SelectAdvice(lib, PhaseOvulation, RoleSelf, TonePlayful, extra)
		want := promoted[seededIndex(AdviceSeed(PhaseOvulation, RoleSelf, TonePlayful, extra), len(promoted))]
		require.Equal(t, want, got)
		if strings.HasPrefix(got.Headline, "playful mode on") {
			playfulHits++
		} else {
			otherHits++
		}
	}
	require.Positive(t, playfulHits)
	require.Positive(t, otherHits)
}

func TestSelectAdvicePlayfulRewriteNeedsPlayfulTone(t *testing.T) {
	lib := testLibrary()
	for i := 0; i < 30; i++ {
		extra := fmt.Sprintf("seed-%d", i)
		got := SelectAdvice(lib, PhaseOvulation, RoleSelf, ToneGentle, extra)
		require.NotContains(t, got.Headline, "playful mode on")
	}
}

func TestSelectAdviceEmptyLibrary(t *testing.T) {
	require.Equal(t, Advice{}, SelectAdvice(&Library{}, PhaseLuteal, RoleSelf, ToneGentle, ""))
}
