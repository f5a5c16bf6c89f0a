package attendance

import (
	"testing"

	"github.com/cmlabs-hris/workledger/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchAttendanceRequest_Validate_NamesEntryIndex(t *testing.T) {
	req := BatchAttendanceRequest{
		TeamID:   "team-1",
		WorkDate: "2024-03-04",
		Entries: []BatchEntry{
			{EmployeeID: "emp-1", DayCount: decimal.NewFromInt(1)},
			{EmployeeID: " ", DayCount: decimal.NewFromInt(1)},
			{EmployeeID: "", DayCount: decimal.RequireFromString("0.5")},
		},
	}

	err := req.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 2)
	assert.Equal(t, "entries[1].employee_id", errs[0].Field)
	assert.Equal(t, "entries[2].employee_id", errs[1].Field)
}

func TestBatchAttendanceRequest_Validate_AcceptsWellFormedBatch(t *testing.T) {
	req := BatchAttendanceRequest{
		TeamID:   "team-1",
		WorkDate: "2024-03-04",
		Entries:  []BatchEntry{{EmployeeID: "emp-1", DayCount: decimal.NewFromInt(1)}},
	}

	assert.NoError(t, req.Validate())
}
