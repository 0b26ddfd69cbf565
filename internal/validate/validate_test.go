package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type account struct {
	Name    string
	Balance int
	Owner   string

	objectErr error
}

func (a *account) ValidationRules() Rules {
	return Rules{
		"name": {Check: func() error {
			if a.Name == "" {
				return Fail("name is required")
			}
			return nil
		}},
		"balance": {Check: func() error {
			if a.Balance < 0 {
				return Fail("balance cannot be negative")
			}
			return nil
		}},
		"owner": {Check: func() error {
			if a.Owner == "" {
				return Fail("owner is required")
			}
			return nil
		}, NonEditable: true},
	}
}

func (a *account) ValidateObject() error { return a.objectErr }

func TestRunValid(t *testing.T) {
	a := &account{Name: "savings", Balance: 10, Owner: "alice"}
	assert.NoError(t, Run(a, Config{}))
}

func TestRunCollectsAllViolations(t *testing.T) {
	a := &account{Balance: -5}
	err := Run(a, Config{})
	require.Error(t, err)

	var verrs Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, []string{"name is required"}, verrs["name"])
	assert.Equal(t, []string{"balance cannot be negative"}, verrs["balance"])
	assert.NotContains(t, verrs, "owner")
}

func TestRunDisabled(t *testing.T) {
	a := &account{Balance: -5}
	assert.NoError(t, Run(a, Config{Disabled: true}))
}

func TestRunNonEditable(t *testing.T) {
	a := &account{Name: "savings"}

	err := Run(a, Config{})
	assert.NoError(t, err)

	err = Run(a, Config{IncludeNonEditable: true})
	require.Error(t, err)
	var verrs Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, []string{"owner is required"}, verrs["owner"])
}

func TestRunExclude(t *testing.T) {
	a := &account{Balance: -5, Owner: "alice"}
	err := Run(a, Config{}, "name")
	require.Error(t, err)

	var verrs Errors
	require.ErrorAs(t, err, &verrs)
	assert.NotContains(t, verrs, "name")
	assert.Contains(t, verrs, "balance")
}

func TestRunObjectViolation(t *testing.T) {
	a := &account{Name: "savings", Owner: "alice", objectErr: Fail("account is frozen")}
	err := Run(a, Config{})
	require.Error(t, err)

	var verrs Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, []string{"account is frozen"}, verrs[NonFieldKey])
}

func TestRunObjectErrorsMerged(t *testing.T) {
	a := &account{Name: "savings", Owner: "alice",
		objectErr: Errors{"owner": {"owner is not allowed"}}}
	err := Run(a, Config{})
	require.Error(t, err)

	var verrs Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, []string{"owner is not allowed"}, verrs["owner"])
}

func TestErrorsMessageIsStable(t *testing.T) {
	verrs := Errors{
		"b": {"second"},
		"a": {"first", "also first"},
	}
	assert.Equal(t, "validation failed: a: first; also first, b: second", verrs.Error())
}
