package service

import (
	"testing"

	"github.com/ferroline/ferro-erp/internal/erp/entity"
)

func TestSuggestFIFOCoversRequirement(t *testing.T) {
	batches := []entity.Batch{
		{ID: "b1", BatchCode: "B-001", AvailableWeightKG: 40},
		{ID: "b2", BatchCode: "B-002", AvailableWeightKG: 100},
		{ID: "b3", BatchCode: "B-003", AvailableWeightKG: 200},
	}

	suggestions := SuggestFIFO(batches, 120)

	if len(suggestions) != 2 {
		t.Fatalf("got %d suggestions, want 2", len(suggestions))
	}
	if suggestions[0].BatchID != "b1" || !floatEquals(suggestions[0].AllocateKG, 40) {
		t.Errorf("first pick = %v, want all 40 kg of b1", suggestions[0])
	}
	if suggestions[1].BatchID != "b2" || !floatEquals(suggestions[1].AllocateKG, 80) {
		t.Errorf("second pick = %v, want 80 kg of b2", suggestions[1])
	}
}

func TestSuggestFIFOSkipsEmptyBatches(t *testing.T) {
	batches := []entity.Batch{
		{ID: "b1", AvailableWeightKG: 0},
		{ID: "b2", AvailableWeightKG: -5},
		{ID: "b3", AvailableWeightKG: 30},
	}

	suggestions := SuggestFIFO(batches, 20)

	if len(suggestions) != 1 || suggestions[0].BatchID != "b3" {
		t.Fatalf("suggestions = %v, want single pick from b3", suggestions)
	}
	if !floatEquals(suggestions[0].AllocateKG, 20) {
		t.Errorf("allocate = %v, want 20", suggestions[0].AllocateKG)
	}
}

func TestSuggestFIFOShortfall(t *testing.T) {
	batches := []entity.Batch{
		{ID: "b1", AvailableWeightKG: 25},
	}

	suggestions := SuggestFIFO(batches, 100)

	if len(suggestions) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(suggestions))
	}
	if !floatEquals(suggestions[0].AllocateKG, 25) {
		t.Errorf("allocate = %v, want the 25 kg that exists", suggestions[0].AllocateKG)
	}
	var covered float64
	for _, s := range suggestions {
		covered += s.AllocateKG
	}
	if covered >= 100 {
		t.Error("shortfall should leave the requirement uncovered")
	}
}

func TestSuggestFIFOZeroRequirement(t *testing.T) {
	batches := []entity.Batch{{ID: "b1", AvailableWeightKG: 50}}

	if got := SuggestFIFO(batches, 0); len(got) != 0 {
		t.Errorf("zero requirement produced %d suggestions", len(got))
	}
}
