package entity

import "testing"

func TestBatchCheckWeights(t *testing.T) {
	cases := []struct {
		name    string
		batch   Batch
		wantErr bool
	}{
		{"balanced", Batch{TotalWeightKG: 100, AvailableWeightKG: 60, ReservedWeightKG: 40}, false},
		{"partial", Batch{TotalWeightKG: 100, AvailableWeightKG: 50, ReservedWeightKG: 20}, false},
		{"negative available", Batch{TotalWeightKG: 100, AvailableWeightKG: -1, ReservedWeightKG: 0}, true},
		{"negative reserved", Batch{TotalWeightKG: 100, AvailableWeightKG: 10, ReservedWeightKG: -5}, true},
		{"over-allocated", Batch{TotalWeightKG: 100, AvailableWeightKG: 80, ReservedWeightKG: 30}, true},
		{"exactly full", Batch{TotalWeightKG: 100, AvailableWeightKG: 100, ReservedWeightKG: 0}, false},
	}
	for _, tc := range cases {
		err := tc.batch.CheckWeights()
		if (err != nil) != tc.wantErr {
			t.Errorf("%s: CheckWeights() error = %v, wantErr %v", tc.name, err, tc.wantErr)
		}
	}
}
