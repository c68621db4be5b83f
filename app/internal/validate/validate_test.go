package validate

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-kanban/app/model/field"
)

type sample struct {
	Status      *field.TaskStatus      `validate:"omitempty,enum"`
	Color       field.Optional[string] `validate:"omitempty,hexcolor,len=7"`
	Description field.Optional[string] `validate:"omitempty,max=5"`
	Order       field.Optional[int]    `validate:"omitempty,min=0"`
}

func TestRegister(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v))

	done := field.TaskDone
	assert.NoError(t, v.Struct(sample{Status: &done}))
	assert.NoError(t, v.Struct(sample{}))
	assert.NoError(t, v.Struct(sample{Color: field.Null[string](), Order: field.Null[int]()}))
	assert.NoError(t, v.Struct(sample{Color: field.Some("#A1B2C3"), Order: field.Some(0)}))

	bad := field.TaskStatus("FINISHED")
	assert.Error(t, v.Struct(sample{Status: &bad}))
	assert.Error(t, v.Struct(sample{Color: field.Some("red")}))
	assert.Error(t, v.Struct(sample{Description: field.Some("too long")}))
	assert.Error(t, v.Struct(sample{Order: field.Some(-1)}))
}
