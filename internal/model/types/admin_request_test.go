package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roadwatch.dev/backend/internal/model/types"
	"roadwatch.dev/backend/internal/util/rekuest"
)

func TestCreateRejectRuleRequestReliabilityRange(t *testing.T) {
	cases := []struct {
		name        string
		reliability int
		wantErr     bool
	}{
		{"lower bound accepted", -99, false},
		{"typical value accepted", -50, false},
		{"just inside upper bound accepted", -10, false},
		{"upper bound is exclusive", -9, true},
		{"below lower bound rejected", -100, true},
		{"zero rejected", 0, true},
		{"positive rejected", 5, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := rekuest.ValidStruct(&types.CreateRejectRuleRequest{
				Expr:            `Report.Title contains "spam"`,
				WithReliability: tc.reliability,
			})
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
