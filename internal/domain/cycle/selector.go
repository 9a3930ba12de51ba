package cycle

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
)

// NormalizeRole maps anything other than exactly "partner" to RoleSelf. Matching is case sensitive.
func NormalizeRole(value string) Role {
	if Role(value) == RolePartner {
		return RolePartner
	}
	return RoleSelf
}

// NormalizeTone maps anything other than exactly "playful" to ToneGentle.
func NormalizeTone(value string) Tone {
	if Tone(value) == TonePlayful {
		return TonePlayful
	}
	return ToneGentle
}

// AdviceSeed builds the selection seed. Identical seeds always select the same variant.
func AdviceSeed(phase PhaseKey, role Role, tone Tone, extra string) string {
	return fmt.Sprintf("%s-%s-%s-%s", phase, role, tone, extra)
}

// SelectAdvice picks one variant for (phase, role, tone) using a generator seeded by
// AdviceSeed. The pick depends only on the library contents and the inputs.
func SelectAdvice(lib *Library, phase PhaseKey, role Role, tone Tone, extra string) Advice {
	pool := lib.Variants(phase, role)
	if role == RoleSelf && phase == PhaseOvulation && tone == TonePlayful {
		pool = promotePlayful(pool, lib.Playful)
	}
	if len(pool) == 0 {
		return Advice{}
	}
	return pool[seededIndex(AdviceSeed(phase, role, tone, extra), len(pool))]
}

// promotePlayful moves the variant whose headline carries the playful marker to the front,
// rewriting the marker. The rest keep their order. Only the pool order changes; the seeded
// pick still decides which variant is returned.
func promotePlayful(pool []Advice, rewrite PlayfulRewrite) []Advice {
	if rewrite.Marker == "" {
		return pool
	}
	idx := -1
	for i, v := range pool {
		if strings.Contains(v.Headline, rewrite.Marker) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return pool
	}
	lead := pool[idx]
	lead.Headline = strings.ReplaceAll(lead.Headline, rewrite.Marker, rewrite.Replacement)

	out := make([]Advice, 0, len(pool))
	out = append(out, lead)
	out = append(out, pool[:idx]...)
	out = append(out, pool[idx+1:]...)
	return out
}

// seededIndex maps seed onto [0,n). The math/rand v1 source sequence is frozen for a given seed.
func seededIndex(seed string, n int) int {
	h := fnv.New64a()
	_, _ = h.Write([]byte(seed))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))
	return rng.Intn(n)
}
