package demo

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"

	"gcworkbench/internal/heapvm"
	"gcworkbench/internal/trace"
)

// Transaction is a parsed DKP record: amount, the person who earned it,
// and the item it paid for.
type Transaction struct {
	Amount int
	Person string
	Item   string
}

// Standing is one entry of the final, rank-ordered output: a person and
// their summed point total.
type Standing struct {
	Person string
	Total  int
}

// Result is everything a caller of Run might want after the demo's heap
// has been torn down: the final ranking plus the machine that produced
// it (for inspecting final refcounts, heap occupancy, and so on).
type Result struct {
	Standings []Standing
	Machine   *heapvm.Machine
}

// Run parses input as a DKP ledger (one "amount,person,item" record per
// line), groups by person, sums each person's point total, and ranks
// everyone from highest total to lowest. Every intermediate value lives
// on m's heap so the whole computation is visible in the trace; the
// returned Standings are read back out into plain Go values only once
// the computation is complete.
//
// This is dkp.cc's main() translated instruction for instruction: the
// same collection cadence (one every fifth parsed transaction, plus
// three explicit calls between stages), the same six breakpoints, and
// the same "world's most terrible sort" ranking pass.
func Run(m *heapvm.Machine, input []byte) (Result, error) {
	records, err := parseRecords(input)
	if err != nil {
		return Result{}, err
	}

	dkpLog := m.AllocVec(1)
	bp := 0
	for _, rec := range records {
		trans := buildTransaction(m, rec)
		m.VecPush(dkpLog, trans.Loc())
		trans.Close()

		if bp == 1 {
			m.Breakpoint("line parsed")
		}
		bp++
		if bp%5 == 0 {
			m.RequestGC()
		}
	}
	m.Breakpoint("file parsed")

	dkpGroup := groupByPerson(m, dkpLog)
	dkpLog.Close()
	m.RequestGC()
	m.Breakpoint("data grouped")

	dkpStanding := reduceHistories(m, dkpGroup)
	dkpGroup.Close()
	m.RequestGC()

	dkpRank := rankByTotal(m, dkpStanding)
	dkpStanding.Close()
	m.RequestGC()
	m.Breakpoint("ranking finished")

	standings := readStandings(m, dkpRank)
	dkpRank.Close()

	m.Heap.Emit(trace.Stop())
	return Result{Standings: standings, Machine: m}, nil
}

// parseRecords splits input into amount,person,item records, matching
// dkp.cc's "File.foreach.map { line.strip.split(',') }" Ruby analogue
// stated in its own header comment.
func parseRecords(input []byte) ([]Transaction, error) {
	var out []Transaction
	scanner := bufio.NewScanner(bytes.NewReader(input))
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		fields := heapvm.SplitBytes(line, ',')
		if len(fields) != 3 {
			return nil, fmt.Errorf("demo: malformed record %q: want 3 comma-separated fields, got %d", line, len(fields))
		}
		amount, err := strconv.Atoi(string(bytes.TrimSpace(fields[0])))
		if err != nil {
			return nil, fmt.Errorf("demo: bad amount in record %q: %w", line, err)
		}
		out = append(out, Transaction{
			Amount: amount,
			Person: normalizeField(string(bytes.TrimSpace(fields[1]))),
			Item:   normalizeField(string(bytes.TrimSpace(fields[2]))),
		})
	}
	return out, scanner.Err()
}

// buildTransaction allocates a 3-tuple (amount, person, item) on m's
// heap for one parsed record, matching dkp.cc's per-line body:
// NumRef amt; trans.set(0, amt); trans.set(1, field.get(1)); trans.set(2, field.get(2));
// The returned handle is still open: the caller owns it and must push
// it somewhere reachable before closing it, the same way dkp.cc's local
// TupRef trans stays alive only because dkp_log->push(trans) shares it
// before trans goes out of scope.
func buildTransaction(m *heapvm.Machine, rec Transaction) heapvm.Handle {
	amt := m.AllocNum(heapvm.Word(rec.Amount))
	person := m.AllocStr([]byte(rec.Person))
	item := m.AllocStr([]byte(rec.Item))

	trans := m.AllocTup(3)
	m.AssignTupSlot(trans.Loc(), 0, amt.Loc())
	m.AssignTupSlot(trans.Loc(), 1, person.Loc())
	m.AssignTupSlot(trans.Loc(), 2, item.Loc())

	amt.Close()
	person.Close()
	item.Close()
	return trans
}

// groupByPerson is dkp.cc's "first match wins" linear grouping pass: for
// every log entry not yet seen, start a new (person, history) group and
// scan the remainder of the log for every entry belonging to that
// person.
func groupByPerson(m *heapvm.Machine, dkpLog heapvm.Handle) heapvm.Handle {
	dkpGroup := m.AllocVec(1)
	length := heapvm.VecLen(m.Heap, dkpLog.Loc())
	bp := 0

	for i := 0; i < length; i++ {
		personName := heapvm.TupGet(m.Heap, heapvm.VecGet(m.Heap, dkpLog.Loc(), i), 1)

		_, found := m.VecContains(dkpGroup, func(el heapvm.Location) bool {
			return heapvm.Equals(m.Heap, heapvm.TupGet(m.Heap, el, 0), personName)
		})
		if found {
			continue
		}

		group := m.AllocTup(2)
		m.AssignTupSlot(group.Loc(), 0, personName)
		history := m.AllocVec(1)
		m.AssignTupSlot(group.Loc(), 1, history.Loc())
		m.VecPush(dkpGroup, group.Loc())

		for j := i; j < length; j++ {
			rec := heapvm.VecGet(m.Heap, dkpLog.Loc(), j)
			if heapvm.Equals(m.Heap, heapvm.TupGet(m.Heap, rec, 1), personName) {
				m.VecPush(history, rec)
			}
		}

		history.Close()
		group.Close()

		if bp == 1 {
			m.Breakpoint("group found")
		}
		bp++
	}
	return dkpGroup
}

// reduceHistories sums each group's transaction amounts into a final
// (person, total) standing, matching dkp.cc's reduce loop.
func reduceHistories(m *heapvm.Machine, dkpGroup heapvm.Handle) heapvm.Handle {
	dkpStanding := m.AllocVec(1)
	length := heapvm.VecLen(m.Heap, dkpGroup.Loc())
	bp := 0

	for i := 0; i < length; i++ {
		group := heapvm.VecGet(m.Heap, dkpGroup.Loc(), i)
		name := heapvm.TupGet(m.Heap, group, 0)
		history := heapvm.TupGet(m.Heap, group, 1)

		var sum heapvm.Word
		for j := 0; j < heapvm.VecLen(m.Heap, history); j++ {
			rec := heapvm.VecGet(m.Heap, history, j)
			sum += heapvm.NumValue(m.Heap, heapvm.TupGet(m.Heap, rec, 0))
		}

		standing := m.AllocTup(2)
		m.AssignTupSlot(standing.Loc(), 0, name)
		total := m.AllocNum(sum)
		m.AssignTupSlot(standing.Loc(), 1, total.Loc())
		total.Close()
		m.VecPush(dkpStanding, standing.Loc())
		standing.Close()

		if bp == 1 {
			m.Breakpoint("transaction history reduced")
		}
		bp++
	}
	return dkpStanding
}

// rankByTotal is dkp.cc's own "world's most terrible sort": instead of
// an actual sort, it walks every candidate point total from the highest
// (20 when no total exceeds it) down to the lowest (0 when no total is
// negative) and appends every standing matching that total, in log
// order. Its cost grows with the spread of the totals, not with the
// number of standings; a REDESIGN FLAG notes it is worth calling out as a degenerate-case
// sort rather than quietly replacing it with something better, since
// watching this pass run is part of the point of the visualization.
func rankByTotal(m *heapvm.Machine, dkpStanding heapvm.Handle) heapvm.Handle {
	length := heapvm.VecLen(m.Heap, dkpStanding.Loc())
	capacity := length
	if capacity == 0 {
		capacity = 1
	}
	dkpRank := m.AllocVec(capacity)

	hi, lo := 20, 0
	for i := 0; i < length; i++ {
		standing := heapvm.VecGet(m.Heap, dkpStanding.Loc(), i)
		total := int(heapvm.NumValue(m.Heap, heapvm.TupGet(m.Heap, standing, 1)))
		if total > hi {
			hi = total
		}
		if total < lo {
			lo = total
		}
	}

	for rank := hi; rank >= lo; rank-- {
		for i := 0; i < length; i++ {
			standing := heapvm.VecGet(m.Heap, dkpStanding.Loc(), i)
			total := heapvm.NumValue(m.Heap, heapvm.TupGet(m.Heap, standing, 1))
			if int(total) == rank {
				m.VecPush(dkpRank, standing)
			}
		}
	}
	return dkpRank
}

// readStandings materializes the final heap-resident ranking into plain
// Go values, after every pass that could move or free them is done.
func readStandings(m *heapvm.Machine, dkpRank heapvm.Handle) []Standing {
	length := heapvm.VecLen(m.Heap, dkpRank.Loc())
	out := make([]Standing, length)
	for i := 0; i < length; i++ {
		standing := heapvm.VecGet(m.Heap, dkpRank.Loc(), i)
		name := heapvm.TupGet(m.Heap, standing, 0)
		total := heapvm.TupGet(m.Heap, standing, 1)
		out[i] = Standing{
			Person: string(heapvm.StrBytes(m.Heap, name)),
			Total:  int(heapvm.NumValue(m.Heap, total)),
		}
	}
	return out
}
