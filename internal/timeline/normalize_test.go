package timeline

import "testing"

func TestNormalize(t *testing.T) {
	roster := []Combatant{{ID: "a", Team: TeamBlue}, {ID: "b", Team: TeamRed}}
	events := []MatchEvent{
		// owner "adc" is not in the roster
		tx(EventItemPurchased, 2, 1001),
		// executed: no known killer
		killAt(minutes(5), "tower", "a", pt(100, 100)),
		killAt(minutes(3), "b", "a", pt(200, 200)),
		// nothing resolves
		killAt(minutes(4), "ghost", "nobody", pt(1, 1)),
		{Kind: EventKill, TimestampMs: -5, KillerRef: "a", VictimRef: "b"},
		ward(1, WardSight, "", pt(1, 1)),
		ward(1, WardSight, "a", nil),
		ward(2, WardSight, "b", pt(2, 2)),
		{Kind: EventBuildingDestroyed, TimestampMs: minutes(6), BuildingType: BuildingTower},
		{Kind: EventItemPurchased, TimestampMs: minutes(1), OwnerRef: "a", ItemID: 1055},
	}

	tl := Normalize(events, roster)

	for i := 1; i < len(tl.Events); i++ {
		if tl.Events[i].TimestampMs < tl.Events[i-1].TimestampMs {
			t.Fatalf("events not sorted at %d", i)
		}
	}

	a := tl.For("a")
	if len(a) != 3 {
		t.Fatalf("a has %d entries, want 3 (purchase, two deaths): %+v", len(a), a)
	}
	if a[0].Role != RoleOwner || a[1].Role != RoleVictim || a[2].Role != RoleVictim {
		t.Errorf("unexpected roles for a: %v %v %v", a[0].Role, a[1].Role, a[2].Role)
	}
	if a[2].Event.KillerRef != "" {
		t.Errorf("unresolved killer kept: %q", a[2].Event.KillerRef)
	}

	if got := len(tl.For("b", RoleCreator)); got != 1 {
		t.Errorf("b has %d wards, want 1", got)
	}
	if got := len(tl.For("b", RoleKiller)); got != 1 {
		t.Errorf("b has %d kills, want 1", got)
	}

	// adc, tower, ghost, nobody, ward without creator
	if got := tl.Report.Count(IssueMissingReference); got != 5 {
		t.Errorf("missing references = %d, want 5: %v", got, tl.Report.Drops)
	}
	// negative timestamp, ward without position
	if got := tl.Report.Count(IssueMalformedEvent); got != 2 {
		t.Errorf("malformed = %d, want 2: %v", got, tl.Report.Drops)
	}
}

func TestNormalize_StableTies(t *testing.T) {
	roster := []Combatant{{ID: "a"}}
	events := []MatchEvent{
		{Kind: EventItemPurchased, TimestampMs: 1000, OwnerRef: "a", ItemID: 1},
		{Kind: EventItemPurchased, TimestampMs: 1000, OwnerRef: "a", ItemID: 2},
		{Kind: EventItemPurchased, TimestampMs: 500, OwnerRef: "a", ItemID: 3},
		{Kind: EventItemPurchased, TimestampMs: 1000, OwnerRef: "a", ItemID: 4},
	}
	got := tl2ids(Normalize(events, roster).For("a"))
	want := []int{3, 1, 2, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func tl2ids(entries []Entry) []int {
	ids := make([]int, len(entries))
	for i, e := range entries {
		ids[i] = e.Event.ItemID
	}
	return ids
}

func TestEventKindText(t *testing.T) {
	for kind := range eventKindNames {
		text, _ := kind.MarshalText()
		var got EventKind
		if err := got.UnmarshalText(text); err != nil || got != kind {
			t.Errorf("round trip of %s = %v, %v", kind, got, err)
		}
	}
	var k EventKind
	if err := k.UnmarshalText([]byte("teleport")); err == nil {
		t.Error("expected error for unknown kind")
	}
}
