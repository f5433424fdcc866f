package leave

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(DateLayout, s)
	require.NoError(t, err)
	return d
}

func TestGenerateLeaveDetails(t *testing.T) {
	details, err := GenerateLeaveDetails(date(t, "2025-01-06"), date(t, "2025-01-08"))
	require.NoError(t, err)

	assert.Equal(t, Details{
		"2025-01-06": DayFull,
		"2025-01-07": DayFull,
		"2025-01-08": DayFull,
	}, details)
	assert.True(t, details.DayEquivalents().Equal(decimal.NewFromInt(3)))
}

func TestGenerateLeaveDetails_SingleDay(t *testing.T) {
	details, err := GenerateLeaveDetails(date(t, "2025-02-28"), date(t, "2025-02-28"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-02-28"}, details.Dates())
}

func TestGenerateLeaveDetails_CrossesMonthAndLeapDay(t *testing.T) {
	details, err := GenerateLeaveDetails(date(t, "2024-02-28"), date(t, "2024-03-01"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-02-28", "2024-02-29", "2024-03-01"}, details.Dates())
}

func TestGenerateLeaveDetails_IgnoresClockAndZone(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	start := time.Date(2025, 3, 10, 23, 30, 0, 0, loc)
	end := time.Date(2025, 3, 11, 0, 15, 0, 0, loc)

	details, err := GenerateLeaveDetails(start, end)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-03-10", "2025-03-11"}, details.Dates())
}

func TestGenerateLeaveDetails_InvalidRange(t *testing.T) {
	_, err := GenerateLeaveDetails(date(t, "2025-01-08"), date(t, "2025-01-06"))
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestApplyHalfDayOverrides(t *testing.T) {
	details, err := GenerateLeaveDetails(date(t, "2025-01-06"), date(t, "2025-01-08"))
	require.NoError(t, err)

	merged := ApplyHalfDayOverrides(details, map[string]string{
		"2025-01-06": "First Half",
		"2025-01-08": "Second Half",
		"2025-01-07": "Evening",    // unknown session resets to Full Day
		"2025-02-01": "First Half", // outside the range
	})

	assert.Equal(t, Details{
		"2025-01-06": DayFirstHalf,
		"2025-01-07": DayFull,
		"2025-01-08": DaySecondHalf,
	}, merged)
	assert.True(t, merged.DayEquivalents().Equal(decimal.NewFromInt(2)))

	// the input map is left untouched
	assert.Equal(t, DayFull, details["2025-01-06"])
}

func TestApplyHalfDayOverrides_NilOverrides(t *testing.T) {
	details := Details{"2025-01-06": DayFull}
	assert.Equal(t, details, ApplyHalfDayOverrides(details, nil))
}

func TestDetails_DayEquivalents(t *testing.T) {
	tests := []struct {
		name    string
		details Details
		want    string
	}{
		{"empty", Details{}, "0"},
		{"single half", Details{"2025-01-06": DayFirstHalf}, "0.5"},
		{"mixed", Details{"2025-01-06": DayFull, "2025-01-07": DaySecondHalf, "2025-01-08": DayFull}, "2.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.details.DayEquivalents().String())
		})
	}
}

func TestDetails_Covers(t *testing.T) {
	details := Details{"2025-01-06": DaySecondHalf}
	assert.True(t, details.Covers(date(t, "2025-01-06")))
	assert.False(t, details.Covers(date(t, "2025-01-07")))
}

func TestDetails_ValueScan(t *testing.T) {
	details := Details{"2025-01-06": DayFirstHalf, "2025-01-07": DayFull}

	v, err := details.Value()
	require.NoError(t, err)

	var scanned Details
	require.NoError(t, scanned.Scan(v))
	assert.Equal(t, details, scanned)

	var fromString Details
	require.NoError(t, fromString.Scan(`{"2025-01-06":"Second Half"}`))
	assert.Equal(t, Details{"2025-01-06": DaySecondHalf}, fromString)

	assert.Error(t, fromString.Scan(42))
}

func TestType_BalanceCategory(t *testing.T) {
	_, ok := TypeUnpaid.BalanceCategory()
	assert.False(t, ok)

	category, ok := TypeSick.BalanceCategory()
	assert.True(t, ok)
	assert.EqualValues(t, "sick", category)

	category, ok = TypePaid.BalanceCategory()
	assert.True(t, ok)
	assert.EqualValues(t, "paid", category)
}

func TestCreateLeaveRequest_Validate(t *testing.T) {
	valid := CreateLeaveRequest{
		StartDate: "2025-01-06",
		EndDate:   "2025-01-08",
		Reason:    "family function",
		LeaveType: "Paid",
	}
	require.NoError(t, valid.Validate())

	missing := CreateLeaveRequest{}
	err := missing.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "startDate")
	assert.Contains(t, err.Error(), "reason")
	assert.Contains(t, err.Error(), "leaveType")

	reversed := valid
	reversed.StartDate, reversed.EndDate = valid.EndDate, valid.StartDate
	assert.ErrorIs(t, reversed.Validate(), ErrInvalidDateRange)

	badType := valid
	badType.LeaveType = "Casual"
	assert.Error(t, badType.Validate())
}

func TestUpdateLeaveRequest_RejectsStatus(t *testing.T) {
	status := "Approved"
	req := UpdateLeaveRequest{Status: &status}
	assert.ErrorIs(t, req.Validate(), ErrStatusChangeNotAllowed)
}

func TestUpdateLeaveStatusRequest_Validate(t *testing.T) {
	assert.NoError(t, (&UpdateLeaveStatusRequest{Status: "Approved"}).Validate())
	assert.NoError(t, (&UpdateLeaveStatusRequest{Status: "Rejected"}).Validate())
	assert.ErrorIs(t, (&UpdateLeaveStatusRequest{Status: "Pending"}).Validate(), ErrInvalidStatus)
	assert.Error(t, (&UpdateLeaveStatusRequest{}).Validate())
}

func TestAttachment_Validate(t *testing.T) {
	var none *Attachment
	assert.NoError(t, none.Validate())

	assert.NoError(t, (&Attachment{Filename: "note.PDF", Size: 1024}).Validate())
	assert.ErrorIs(t, (&Attachment{Filename: "script.exe", Size: 10}).Validate(), ErrFileTypeNotAllowed)
	assert.ErrorIs(t, (&Attachment{Filename: "scan.png", Size: MaxAttachmentSize + 1}).Validate(), ErrFileSizeExceeds)
}
