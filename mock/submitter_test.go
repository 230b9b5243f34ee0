package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/bulletinchain/go-sdk/bulletin"
)

func TestSubmitStoreRecordsOperation(t *testing.T) {
	m := New()
	payload := []byte("hello")
	receipt, err := m.SubmitStore(context.Background(), payload, bulletin.MilestoneFinalized, nil)
	if err != nil {
		t.Fatal(err)
	}
	if receipt.BlockNumber == nil || *receipt.BlockNumber != 1 {
		t.Errorf("BlockNumber = %v, want 1", receipt.BlockNumber)
	}
	if receipt.TxIndex != nil {
		t.Errorf("TxIndex = %v, want nil", receipt.TxIndex)
	}

	ops := m.Operations()
	if len(ops) != 1 {
		t.Fatalf("len(ops) = %d, want 1", len(ops))
	}
	if ops[0].Kind != OpStore {
		t.Errorf("Kind = %s, want %s", ops[0].Kind, OpStore)
	}
	if ops[0].CID == "" {
		t.Error("expected a computed CID on the recorded operation")
	}
}

func TestSubmitStoreStreamsLifecycleEvents(t *testing.T) {
	m := New()
	var kinds []bulletin.LifecycleEventKind
	_, err := m.SubmitStore(context.Background(), []byte("x"), bulletin.MilestoneFinalized, func(ev bulletin.LifecycleEvent) {
		kinds = append(kinds, ev.Kind)
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []bulletin.LifecycleEventKind{
		bulletin.LifecycleSigned,
		bulletin.LifecycleBroadcasted,
		bulletin.LifecycleBestBlock,
		bulletin.LifecycleFinalized,
	}
	if len(kinds) != len(want) {
		t.Fatalf("got %d lifecycle events, want %d", len(kinds), len(want))
	}
	for i, k := range want {
		if kinds[i] != k {
			t.Errorf("event %d kind = %v, want %v", i, kinds[i], k)
		}
	}
}

func TestSubmitStoreDoesNotFinalizeAtBestBlockMilestone(t *testing.T) {
	m := New()
	var sawFinalized bool
	_, err := m.SubmitStore(context.Background(), []byte("x"), bulletin.MilestoneBestBlock, func(ev bulletin.LifecycleEvent) {
		if ev.Kind == bulletin.LifecycleFinalized {
			sawFinalized = true
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	if sawFinalized {
		t.Error("expected no Finalized event when waiting only for BestBlock")
	}
}

func TestFailNextStoreIsConsumedOnce(t *testing.T) {
	m := New()
	m.FailNextStore(ErrInjectedTransactionFailed)

	_, err := m.SubmitStore(context.Background(), []byte("x"), bulletin.MilestoneFinalized, nil)
	if !errors.Is(err, ErrInjectedTransactionFailed) {
		t.Fatalf("expected injected failure, got %v", err)
	}

	_, err = m.SubmitStore(context.Background(), []byte("y"), bulletin.MilestoneFinalized, nil)
	if err != nil {
		t.Fatalf("expected the injected failure to be consumed, got %v", err)
	}
}

func TestQueryAccountAuthorizationReturnsNilByDefault(t *testing.T) {
	m := New()
	snap, err := m.QueryAccountAuthorization(context.Background(), "alice")
	if err != nil {
		t.Fatal(err)
	}
	if snap != nil {
		t.Errorf("expected nil snapshot by default, got %+v", snap)
	}
}

func TestSetAccountAuthorizationIsReturnedByQuery(t *testing.T) {
	m := New()
	want := &bulletin.AuthorizationSnapshot{
		Scope:                 bulletin.ScopeAccount,
		TransactionsRemaining: 10,
		BytesRemaining:        1 << 20,
	}
	m.SetAccountAuthorization(want)

	got, err := m.QueryAccountAuthorization(context.Background(), "alice")
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("got %+v, want the same snapshot pointer %+v", got, want)
	}
}

func TestAuthorizeAndRenewAreRecorded(t *testing.T) {
	m := New()
	if _, err := m.SubmitAuthorizeAccount(context.Background(), "alice", 5, 1<<20); err != nil {
		t.Fatal(err)
	}
	if _, err := m.SubmitAuthorizePreimage(context.Background(), []byte{1, 2, 3}, 1<<20); err != nil {
		t.Fatal(err)
	}
	if _, err := m.SubmitRenew(context.Background(), 100, 2); err != nil {
		t.Fatal(err)
	}

	ops := m.Operations()
	if len(ops) != 3 {
		t.Fatalf("len(ops) = %d, want 3", len(ops))
	}
	wantKinds := []OperationKind{OpAuthorizeAccount, OpAuthorizePreimage, OpRenew}
	for i, k := range wantKinds {
		if ops[i].Kind != k {
			t.Errorf("op %d kind = %s, want %s", i, ops[i].Kind, k)
		}
	}
}
