package balance

import (
	"testing"

	"github.com/tallyhq/tally/internal/models"
	"github.com/tallyhq/tally/internal/money"
)

func TestSummarizeExpenseThenSettlement(t *testing.T) {
	txns := []models.Transaction{
		{
			ID: "t1", Type: models.TypeExpense, Amount: 1000, Payer: "me",
			Splits: map[string]money.Amount{"me": 500, "p1": 500},
		},
		{
			ID: "s1", IsReturn: true, Amount: 500, Payer: "p1",
			Participants: []string{"me"},
		},
	}

	positions := Summarize(txns)

	p1, ok := positions["p1"]
	if !ok {
		t.Fatal("expected a position for p1")
	}
	if p1.OwedToMe != 0 {
		t.Errorf("OwedToMe = %d, want 0 (500 credit minus 500 settlement)", p1.OwedToMe)
	}
	if p1.IOwe != 0 {
		t.Errorf("IOwe = %d, want 0", p1.IOwe)
	}
	if p1.Net() != 0 {
		t.Errorf("Net() = %d, want settled 0", p1.Net())
	}
	if len(p1.Entries) != 2 {
		t.Fatalf("len(Entries) = %d, want 2", len(p1.Entries))
	}
	if p1.Entries[0].Kind != KindCredit || p1.Entries[0].Amount != 500 {
		t.Errorf("entry 0 = %+v, want credit of 500", p1.Entries[0])
	}
	if p1.Entries[1].Kind != KindSettlementIn || p1.Entries[1].Amount != 500 {
		t.Errorf("entry 1 = %+v, want settlement-in of 500", p1.Entries[1])
	}
}

func TestSummarizeClassification(t *testing.T) {
	tests := []struct {
		name         string
		txns         []models.Transaction
		validateFunc func(t *testing.T, positions map[string]*Position)
	}{
		{
			name: "owner pays shared expense",
			txns: []models.Transaction{
				{
					ID: "t1", Type: models.TypeExpense, Amount: 3000, Payer: "me",
					Splits: map[string]money.Amount{"me": 1000, "p1": 1000, "p2": 1000},
				},
			},
			validateFunc: func(t *testing.T, positions map[string]*Position) {
				for _, id := range []string{"p1", "p2"} {
					p := positions[id]
					if p == nil || p.OwedToMe != 1000 {
						t.Errorf("%s position = %+v, want OwedToMe 1000", id, p)
					}
				}
				if _, ok := positions["me"]; ok {
					t.Error("owner must not appear as a counterparty")
				}
			},
		},
		{
			name: "other pays and owner has a share",
			txns: []models.Transaction{
				{
					ID: "t1", Type: models.TypeExpense, Amount: 2000, Payer: "p1",
					Splits: map[string]money.Amount{"me": 800, "p1": 1200},
				},
			},
			validateFunc: func(t *testing.T, positions map[string]*Position) {
				p := positions["p1"]
				if p == nil || p.IOwe != 800 {
					t.Fatalf("p1 position = %+v, want IOwe 800", p)
				}
				if p.Entries[0].Kind != KindDebt {
					t.Errorf("entry kind = %s, want debt", p.Entries[0].Kind)
				}
				if p.Net() != -800 {
					t.Errorf("Net() = %d, want -800", p.Net())
				}
			},
		},
		{
			name: "expense not involving the owner contributes nothing",
			txns: []models.Transaction{
				{
					ID: "t1", Type: models.TypeExpense, Amount: 2000, Payer: "p1",
					Splits: map[string]money.Amount{"p1": 1000, "p2": 1000},
				},
			},
			validateFunc: func(t *testing.T, positions map[string]*Position) {
				if len(positions) != 0 {
					t.Errorf("positions = %+v, want none", positions)
				}
			},
		},
		{
			name: "owner settles a debt",
			txns: []models.Transaction{
				{
					ID: "s1", IsReturn: true, Amount: 700, Payer: "me",
					Participants: []string{"p1"},
				},
			},
			validateFunc: func(t *testing.T, positions map[string]*Position) {
				p := positions["p1"]
				if p == nil || p.IOwe != -700 {
					t.Fatalf("p1 position = %+v, want IOwe -700", p)
				}
				if p.Entries[0].Kind != KindSettlementOut {
					t.Errorf("entry kind = %s, want settlement-out", p.Entries[0].Kind)
				}
			},
		},
		{
			name: "negative settlement amount uses absolute value",
			txns: []models.Transaction{
				{
					ID: "s1", IsReturn: true, Amount: -700, Payer: "p1",
					Participants: []string{"me"},
				},
			},
			validateFunc: func(t *testing.T, positions map[string]*Position) {
				p := positions["p1"]
				if p == nil || p.OwedToMe != -700 {
					t.Fatalf("p1 position = %+v, want OwedToMe -700", p)
				}
			},
		},
		{
			name: "settlement between two other people is not tracked",
			txns: []models.Transaction{
				{
					ID: "s1", IsReturn: true, Amount: 500, Payer: "p1",
					Participants: []string{"p2"},
				},
			},
			validateFunc: func(t *testing.T, positions map[string]*Position) {
				if len(positions) != 0 {
					t.Errorf("positions = %+v, want none", positions)
				}
			},
		},
		{
			name: "self settlement is skipped",
			txns: []models.Transaction{
				{
					ID: "s1", IsReturn: true, Amount: 500, Payer: "p1",
					Participants: []string{"p1"},
				},
			},
			validateFunc: func(t *testing.T, positions map[string]*Position) {
				if len(positions) != 0 {
					t.Errorf("positions = %+v, want none", positions)
				}
			},
		},
		{
			name: "settlement without recipient is skipped",
			txns: []models.Transaction{
				{ID: "s1", IsReturn: true, Amount: 500, Payer: "p1"},
			},
			validateFunc: func(t *testing.T, positions map[string]*Position) {
				if len(positions) != 0 {
					t.Errorf("positions = %+v, want none", positions)
				}
			},
		},
		{
			name: "income without splits contributes nothing",
			txns: []models.Transaction{
				{ID: "t1", Type: models.TypeIncome, Amount: 5000, Payer: "me"},
			},
			validateFunc: func(t *testing.T, positions map[string]*Position) {
				if len(positions) != 0 {
					t.Errorf("positions = %+v, want none", positions)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validateFunc(t, Summarize(tt.txns))
		})
	}
}

func TestSummarizeAccumulatesAcrossHistory(t *testing.T) {
	txns := []models.Transaction{
		{
			ID: "t1", Type: models.TypeExpense, Amount: 1000, Payer: "me",
			Splits: map[string]money.Amount{"me": 500, "p1": 500},
		},
		{
			ID: "t2", Type: models.TypeExpense, Amount: 600, Payer: "p1",
			Splits: map[string]money.Amount{"me": 300, "p1": 300},
		},
		{
			ID: "s1", IsReturn: true, Amount: 200, Payer: "p1",
			Participants: []string{"me"},
		},
	}

	positions := Summarize(txns)
	p := positions["p1"]
	if p == nil {
		t.Fatal("expected a position for p1")
	}
	if p.OwedToMe != 300 {
		t.Errorf("OwedToMe = %d, want 300 (500 credit - 200 settlement)", p.OwedToMe)
	}
	if p.IOwe != 300 {
		t.Errorf("IOwe = %d, want 300", p.IOwe)
	}
	if p.Net() != 0 {
		t.Errorf("Net() = %d, want 0", p.Net())
	}
	if len(p.Entries) != 3 {
		t.Errorf("len(Entries) = %d, want 3", len(p.Entries))
	}
}

func TestSummarizeOrderIndependentSums(t *testing.T) {
	a := models.Transaction{
		ID: "t1", Type: models.TypeExpense, Amount: 1000, Payer: "me",
		Splits: map[string]money.Amount{"me": 500, "p1": 500},
	}
	b := models.Transaction{
		ID: "s1", IsReturn: true, Amount: 200, Payer: "p1",
		Participants: []string{"me"},
	}

	forward := Summarize([]models.Transaction{a, b})
	backward := Summarize([]models.Transaction{b, a})

	if forward["p1"].Net() != backward["p1"].Net() {
		t.Errorf("net differs by order: %d vs %d", forward["p1"].Net(), backward["p1"].Net())
	}
	if forward["p1"].Entries[0].Kind == backward["p1"].Entries[0].Kind {
		t.Error("feed order should follow supply order")
	}
}
