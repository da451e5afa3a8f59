package recon

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"Gin_boardgame_lending_tool/catalog"
	"Gin_boardgame_lending_tool/ledger"
	"Gin_boardgame_lending_tool/models"
)

// fakeGateway implements Gateway in memory. SubmitReturn actually mutates
// the loan list so idempotence scenarios behave like the real ledger.
type fakeGateway struct {
	mu    sync.Mutex
	loans []models.LoanRecord

	fetchErr  error
	returnErr error
	borrowErr error

	fetchCalls  int32
	writeCalls  int32
	inFlight    int32
	maxInFlight int32
	delay       time.Duration
}

func (f *fakeGateway) track() func() {
	n := atomic.AddInt32(&f.inFlight, 1)
	for {
		max := atomic.LoadInt32(&f.maxInFlight)
		if n <= max || atomic.CompareAndSwapInt32(&f.maxInFlight, max, n) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return func() { atomic.AddInt32(&f.inFlight, -1) }
}

func (f *fakeGateway) FetchActiveLoans(ctx context.Context) ([]models.LoanRecord, error) {
	defer f.track()()
	atomic.AddInt32(&f.fetchCalls, 1)
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.LoanRecord, len(f.loans))
	copy(out, f.loans)
	return out, nil
}

func (f *fakeGateway) SubmitBorrow(ctx context.Context, info models.BorrowerInfo) error {
	defer f.track()()
	atomic.AddInt32(&f.writeCalls, 1)
	return f.borrowErr
}

func (f *fakeGateway) SubmitReturn(ctx context.Context, studentID, gameName string) error {
	defer f.track()()
	atomic.AddInt32(&f.writeCalls, 1)
	if f.returnErr != nil {
		return f.returnErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, l := range f.loans {
		if l.StudentID == studentID && l.GameName == gameName {
			f.loans = append(f.loans[:i], f.loans[i+1:]...)
			return nil
		}
	}
	return &ledger.Error{Kind: ledger.Rejected, Status: ledger.StatusNotFound, Message: "no open loan"}
}

func testEngine(gw *fakeGateway) *Engine {
	idx := catalog.NewIndex([]models.BoardGame{
		{ID: 1, Name: "Catan", Barcode: "007"},
		{ID: 2, Name: "Splendor", Barcode: "008"},
	})
	return NewEngine(idx, gw, zap.NewNop())
}

func TestScanReturnByBarcode(t *testing.T) {
	gw := &fakeGateway{loans: []models.LoanRecord{
		{GameName: "Catan", StudentID: "12345"},
	}}
	e := testEngine(gw)

	o := e.ScanReturn(context.Background(), "007")
	if o.Kind != KindReturned {
		t.Fatalf("kind = %s (%s)", o.Kind, o.Message)
	}
	if o.StudentID != "12345" || o.GameName != "Catan" {
		t.Fatalf("outcome %+v", o)
	}
}

func TestScanReturnNotBorrowed(t *testing.T) {
	gw := &fakeGateway{}
	e := testEngine(gw)

	o := e.ScanReturn(context.Background(), "Catan")
	if o.Kind != KindNotCurrentlyBorrowed {
		t.Fatalf("kind = %s", o.Kind)
	}
	if !o.Informational() {
		t.Fatal("shelf outcome must be informational")
	}
	if atomic.LoadInt32(&gw.writeCalls) != 0 {
		t.Fatalf("writes = %d, want 0", gw.writeCalls)
	}
}

func TestScanReturnIdempotent(t *testing.T) {
	gw := &fakeGateway{loans: []models.LoanRecord{
		{GameName: "Catan", StudentID: "12345"},
	}}
	e := testEngine(gw)

	if o := e.ScanReturn(context.Background(), "007"); o.Kind != KindReturned {
		t.Fatalf("first scan: %s", o.Kind)
	}
	// same token again: fresh fetch sees the loan gone
	if o := e.ScanReturn(context.Background(), "007"); o.Kind != KindNotCurrentlyBorrowed {
		t.Fatalf("second scan: %s", o.Kind)
	}
}

func TestScanReturnUnknownToken(t *testing.T) {
	gw := &fakeGateway{}
	e := testEngine(gw)

	o := e.ScanReturn(context.Background(), "mystery")
	if o.Kind != KindItemNotFound {
		t.Fatalf("kind = %s", o.Kind)
	}
	if o.Token != "mystery" {
		t.Fatalf("token not echoed: %+v", o)
	}
	if atomic.LoadInt32(&gw.fetchCalls) != 0 {
		t.Fatal("resolution failure must not touch the network")
	}
}

func TestScanReturnFetchFailure(t *testing.T) {
	gw := &fakeGateway{fetchErr: &ledger.Error{Kind: ledger.Transport, Message: "down"}}
	e := testEngine(gw)

	o := e.ScanReturn(context.Background(), "007")
	if o.Kind != KindConnectionError {
		t.Fatalf("kind = %s", o.Kind)
	}
	if atomic.LoadInt32(&gw.writeCalls) != 0 {
		t.Fatal("no write after failed fetch")
	}
}

func TestScanReturnPicksFirstOfDuplicates(t *testing.T) {
	gw := &fakeGateway{loans: []models.LoanRecord{
		{GameName: "Catan", StudentID: "11111"},
		{GameName: "Catan", StudentID: "22222"},
	}}
	e := testEngine(gw)

	o := e.ScanReturn(context.Background(), "Catan")
	if o.Kind != KindReturned {
		t.Fatalf("kind = %s", o.Kind)
	}
	// deterministic: first in gateway order, ambiguity surfaced alongside
	if o.StudentID != "11111" {
		t.Fatalf("picked %s, want 11111", o.StudentID)
	}
	if len(o.Candidates) != 2 {
		t.Fatalf("candidates = %d, want 2", len(o.Candidates))
	}
}

func TestScanReturnRejectedRace(t *testing.T) {
	gw := &fakeGateway{
		loans:     []models.LoanRecord{{GameName: "Catan", StudentID: "12345"}},
		returnErr: &ledger.Error{Kind: ledger.Rejected, Status: ledger.StatusNotFound, Message: "already returned"},
	}
	e := testEngine(gw)

	o := e.ScanReturn(context.Background(), "007")
	if o.Kind != KindReturnRejected {
		t.Fatalf("kind = %s", o.Kind)
	}
}

func TestManualReturnIDFormat(t *testing.T) {
	gw := &fakeGateway{}
	e := testEngine(gw)
	target := models.LoanRecord{GameName: "Catan", StudentID: "12345"}

	for _, bad := range []string{"", "1234", "123456", "12a45", "๑๒๓๔๕"} {
		o := e.ManualReturn(context.Background(), target, bad)
		if o.Kind != KindInvalidIDFormat {
			t.Fatalf("%q: kind = %s", bad, o.Kind)
		}
	}
	if atomic.LoadInt32(&gw.writeCalls)+atomic.LoadInt32(&gw.fetchCalls) != 0 {
		t.Fatal("format failures must stay local")
	}
}

func TestManualReturnIdentityMismatch(t *testing.T) {
	gw := &fakeGateway{}
	e := testEngine(gw)
	target := models.LoanRecord{GameName: "Catan", StudentID: "12345"}

	o := e.ManualReturn(context.Background(), target, "54321")
	if o.Kind != KindIdentityMismatch {
		t.Fatalf("kind = %s", o.Kind)
	}
	if atomic.LoadInt32(&gw.writeCalls) != 0 {
		t.Fatal("mismatch must not reach the ledger")
	}
}

func TestManualReturnSuccessTrimsInput(t *testing.T) {
	gw := &fakeGateway{loans: []models.LoanRecord{
		{GameName: "Catan", StudentID: "12345"},
	}}
	e := testEngine(gw)
	target := models.LoanRecord{GameName: "Catan", StudentID: "12345"}

	o := e.ManualReturn(context.Background(), target, "  12345 ")
	if o.Kind != KindReturned {
		t.Fatalf("kind = %s (%s)", o.Kind, o.Message)
	}
}

func TestBorrowValidation(t *testing.T) {
	gw := &fakeGateway{}
	e := testEngine(gw)

	o := e.Borrow(context.Background(), models.BorrowerInfo{StudentID: "12x45", Games: []string{"Catan"}})
	if o.Kind != KindInvalidIDFormat {
		t.Fatalf("kind = %s", o.Kind)
	}
	o = e.Borrow(context.Background(), models.BorrowerInfo{StudentID: "12345"})
	if o.Kind != KindEmptyCart {
		t.Fatalf("kind = %s", o.Kind)
	}
	if atomic.LoadInt32(&gw.writeCalls) != 0 {
		t.Fatal("validation failures must stay local")
	}
}

func TestBorrowBlocked(t *testing.T) {
	gw := &fakeGateway{borrowErr: &ledger.Error{
		Kind: ledger.Rejected, Status: ledger.StatusBlocked, Message: "Splendor already out",
	}}
	e := testEngine(gw)

	o := e.Borrow(context.Background(), models.BorrowerInfo{
		StudentID: "12345", Games: []string{"Catan", "Splendor", "Uno"},
	})
	if o.Kind != KindBorrowBlocked {
		t.Fatalf("kind = %s", o.Kind)
	}
	if o.Message != "Splendor already out" {
		t.Fatalf("conflict message lost: %q", o.Message)
	}
}

func TestSingleFlightGuard(t *testing.T) {
	gw := &fakeGateway{
		loans: []models.LoanRecord{
			{GameName: "Catan", StudentID: "12345"},
			{GameName: "Splendor", StudentID: "54321"},
		},
		delay: 5 * time.Millisecond,
	}
	e := testEngine(gw)

	var wg sync.WaitGroup
	for _, token := range []string{"007", "008", "007", "008"} {
		wg.Add(1)
		go func(tok string) {
			defer wg.Done()
			e.ScanReturn(context.Background(), tok)
		}(token)
	}
	wg.Wait()

	if max := atomic.LoadInt32(&gw.maxInFlight); max > 1 {
		t.Fatalf("gateway saw %d overlapping calls, want at most 1", max)
	}
}
