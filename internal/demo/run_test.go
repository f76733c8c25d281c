package demo

import (
	"testing"

	"gcworkbench/internal/heapvm"
)

const sampleLog = `10,alice,sword
5,bob,shield
7,alice,bow
3,bob,shield
2,carol,staff
`

func TestParseRecordsSplitsThreeFields(t *testing.T) {
	recs, err := parseRecords([]byte(sampleLog))
	if err != nil {
		t.Fatalf("parseRecords: %v", err)
	}
	if len(recs) != 5 {
		t.Fatalf("len(records) = %d, want 5", len(recs))
	}
	if recs[0] != (Transaction{Amount: 10, Person: "alice", Item: "sword"}) {
		t.Fatalf("first record = %+v", recs[0])
	}
}

func TestParseRecordsRejectsMalformedLine(t *testing.T) {
	if _, err := parseRecords([]byte("10,alice\n")); err == nil {
		t.Fatal("expected an error for a 2-field record")
	}
}

func runWithMode(t *testing.T, mode heapvm.Mode) Result {
	t.Helper()
	m := heapvm.NewMachine(mode, heapvm.HeapSize, nil, nil)
	res, err := Run(m, []byte(sampleLog))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return res
}

// TestRunGroupsAndSumsByPerson checks the grouping+reduce stages
// against a hand-computed total regardless of which collector ran
// underneath — the four algorithms must agree on the answer.
func TestRunGroupsAndSumsByPerson(t *testing.T) {
	for _, mode := range []heapvm.Mode{heapvm.ModeRefCount, heapvm.ModeMarkSweep, heapvm.ModeCopy, heapvm.ModeMarkCompact} {
		t.Run(mode.String(), func(t *testing.T) {
			res := runWithMode(t, mode)
			totals := map[string]int{}
			for _, s := range res.Standings {
				totals[s.Person] = s.Total
			}
			if totals["alice"] != 17 {
				t.Fatalf("alice total = %d, want 17", totals["alice"])
			}
			if totals["bob"] != 8 {
				t.Fatalf("bob total = %d, want 8", totals["bob"])
			}
			if totals["carol"] != 2 {
				t.Fatalf("carol total = %d, want 2", totals["carol"])
			}
			if len(res.Standings) != 3 {
				t.Fatalf("len(standings) = %d, want 3", len(res.Standings))
			}
		})
	}
}

// TestRunRanksDescending checks the "world's most terrible sort" pass
// produces a non-increasing sequence of totals.
func TestRunRanksDescending(t *testing.T) {
	res := runWithMode(t, heapvm.ModeMarkSweep)
	for i := 1; i < len(res.Standings); i++ {
		if res.Standings[i].Total > res.Standings[i-1].Total {
			t.Fatalf("standings not descending at %d: %+v", i, res.Standings)
		}
	}
}

func TestRunOnDefaultBundledLog(t *testing.T) {
	m := heapvm.NewMachine(heapvm.ModeCopy, heapvm.HeapSize, nil, nil)
	res, err := Run(m, DefaultLog())
	if err != nil {
		t.Fatalf("Run(DefaultLog): %v", err)
	}
	if len(res.Standings) == 0 {
		t.Fatal("expected at least one standing from the bundled log")
	}
}
