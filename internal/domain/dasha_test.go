package domain

import (
	"math"
	"testing"
	"time"
)

func TestDashaLord_Cyclic(t *testing.T) {
	for i := range NakshatraCount {
		a := DashaLord(Nakshatra(i))
		b := DashaLord(Nakshatra((i + 9) % NakshatraCount))
		if a != b {
			t.Errorf("nakshatra %d lord %v, nakshatra %d lord %v", i, a, (i+9)%NakshatraCount, b)
		}
	}
}

func TestDashaLord(t *testing.T) {
	tests := []struct {
		n    Nakshatra
		want Planet
	}{
		{Ashwini, Ketu},
		{Bharani, Venus},
		{Rohini, Moon},
		{Ardra, Rahu},
		{Ashlesha, Mercury},
		{Magha, Ketu},
		{Revati, Mercury},
	}

	for _, tt := range tests {
		if got := DashaLord(tt.n); got != tt.want {
			t.Errorf("DashaLord(%v) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestDashaYears_SumTo120(t *testing.T) {
	total := 0.0
	for _, p := range dashaSequence {
		total += DashaYears(p)
	}
	if total != VimshottariYears {
		t.Errorf("total = %v, want %v", total, VimshottariYears)
	}
}

func TestBirthBalance(t *testing.T) {
	// Moon halfway through Rohini (40 + 6.6667): Moon dasha with 5 of 10 years left
	lord, balance := BirthBalance(40 + NakshatraSpan/2)
	if lord != Moon {
		t.Errorf("lord = %v, want Moon", lord)
	}
	if math.Abs(balance-5) > 1e-9 {
		t.Errorf("balance = %v, want 5", balance)
	}

	_, balance = BirthBalance(0)
	if balance != DashaYears(Ketu) {
		t.Errorf("balance at 0° = %v, want full Ketu period", balance)
	}
}

func TestMahadashaTimeline(t *testing.T) {
	birth := time.Date(1990, 5, 15, 4, 30, 0, 0, time.UTC)
	moon := 40 + NakshatraSpan/2
	periods := MahadashaTimeline(moon, birth)

	if len(periods) != 9 {
		t.Fatalf("len = %d, want 9", len(periods))
	}
	if periods[0].Planet != Moon || periods[1].Planet != Mars || periods[8].Planet != Sun {
		t.Errorf("order = %v, %v ... %v", periods[0].Planet, periods[1].Planet, periods[8].Planet)
	}
	if !periods[0].Start.Before(birth) || !periods[0].Contains(birth) {
		t.Errorf("first period %v-%v should straddle birth", periods[0].Start, periods[0].End)
	}

	wantBalance := time.Duration(5 * DashaYearDays * 24 * float64(time.Hour))
	if got := periods[0].End.Sub(birth); absDuration(got-wantBalance) > time.Second {
		t.Errorf("balance duration = %v, want %v", got, wantBalance)
	}

	for i := 1; i < len(periods); i++ {
		if !periods[i].Start.Equal(periods[i-1].End) {
			t.Errorf("gap between period %d and %d", i-1, i)
		}
		want := time.Duration(DashaYears(periods[i].Planet) * DashaYearDays * 24 * float64(time.Hour))
		if got := periods[i].End.Sub(periods[i].Start); absDuration(got-want) > time.Second {
			t.Errorf("%v lasts %v, want %v", periods[i].Planet, got, want)
		}
	}
}

func TestCurrentMahadasha(t *testing.T) {
	birth := time.Date(1990, 5, 15, 4, 30, 0, 0, time.UTC)
	moon := 40 + NakshatraSpan/2
	timeline := MahadashaTimeline(moon, birth)

	tests := []struct {
		name string
		asOf time.Time
		want Planet
	}{
		{"at birth", birth, Moon},
		{"before birth", birth.AddDate(-1, 0, 0), Moon},
		{"second period", timeline[1].Start.Add(time.Hour), Mars},
		{"exact boundary", timeline[2].Start, Rahu},
		{"after full cycle", timeline[8].End.Add(24 * time.Hour), Moon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CurrentMahadasha(moon, birth, tt.asOf)
			if got.Planet != tt.want {
				t.Errorf("CurrentMahadasha = %v, want %v", got.Planet, tt.want)
			}
			if got.Level != LevelMahadasha {
				t.Errorf("Level = %v", got.Level)
			}
		})
	}
}

func TestAntardashas(t *testing.T) {
	birth := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	maha := MahadashaTimeline(100, birth)[1]
	subs := Antardashas(maha)

	if len(subs) != 9 {
		t.Fatalf("len = %d, want 9", len(subs))
	}
	if subs[0].Planet != maha.Planet {
		t.Errorf("first antardasha %v, want %v", subs[0].Planet, maha.Planet)
	}
	if !subs[0].Start.Equal(maha.Start) || !subs[8].End.Equal(maha.End) {
		t.Error("antardashas must span the mahadasha exactly")
	}

	var total time.Duration
	for i, s := range subs {
		if s.Level != LevelAntardasha {
			t.Errorf("Level = %v", s.Level)
		}
		if i > 0 && !s.Start.Equal(subs[i-1].End) {
			t.Errorf("gap before antardasha %d", i)
		}
		total += s.End.Sub(s.Start)
	}
	if total != maha.End.Sub(maha.Start) {
		t.Errorf("sum = %v, want %v", total, maha.End.Sub(maha.Start))
	}

	mid := subs[4].Start.Add(time.Hour)
	cur, ok := CurrentAntardasha(maha, mid)
	if !ok || cur.Planet != subs[4].Planet {
		t.Errorf("CurrentAntardasha = %v, %v; want %v", cur.Planet, ok, subs[4].Planet)
	}
	if _, ok := CurrentAntardasha(maha, maha.End); ok {
		t.Error("end is exclusive")
	}
}

func TestCurrentMahadasha_CenturiesAfterBirth(t *testing.T) {
	birth := time.Date(1700, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []time.Time{
		time.Date(1850, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
		time.Date(2999, 12, 31, 0, 0, 0, 0, time.UTC),
	}

	for _, asOf := range tests {
		t.Run(asOf.Format("2006-01-02"), func(t *testing.T) {
			got := CurrentMahadasha(100, birth, asOf)
			if !got.Contains(asOf) {
				t.Errorf("period %v..%v does not contain %v", got.Start, got.End, asOf)
			}
			want := time.Duration(DashaYears(got.Planet) * DashaYearDays * 24 * float64(time.Hour))
			if d := got.End.Sub(got.Start); absDuration(d-want) > time.Second {
				t.Errorf("%v lasts %v, want %v", got.Planet, d, want)
			}
		})
	}
}

func TestCurrentMahadasha_CycleSkipMatchesWalk(t *testing.T) {
	birth := time.Date(1700, 1, 1, 0, 0, 0, 0, time.UTC)
	timeline := MahadashaTimeline(100, birth)
	cycle := timeline[8].End.Sub(timeline[0].Start)

	// two cycles later the same lord runs again
	asOf := timeline[3].Start.Add(time.Hour).Add(cycle).Add(cycle)
	if got := CurrentMahadasha(100, birth, asOf); got.Planet != timeline[3].Planet {
		t.Errorf("CurrentMahadasha = %v, want %v", got.Planet, timeline[3].Planet)
	}
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
