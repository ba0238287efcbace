package types

import (
	"gopkg.in/guregu/null.v3"
)

type PurgeCacheRequest struct {
	Name string      `json:"name" validate:"required" required:"true"`
	Key  null.String `json:"key" swaggertype:"string"`
}

type CreateRejectRuleRequest struct {
	Expr string `json:"expr" validate:"required,max=2000"`

	// WithReliability must fall in [-99, -9): -9 itself is outside the
	// range the verifier accepts.
	WithReliability int `json:"withReliability" validate:"min=-99,max=-10"`
}
